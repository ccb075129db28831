/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package instance

import (
	"fmt"
	"math"

	"sigs.k8s.io/yaml"

	"github.com/llm-d/llm-d-stable-matcher/pkg/core"
)

// ParseDocument reads the YAML or JSON document format. Unknown fields are
// rejected.
func ParseDocument(data []byte, source string) (*Instance, error) {
	inst := &Instance{}
	if err := yaml.UnmarshalStrict(data, inst); err != nil {
		return nil, core.NewMalformedInputError(source, "parsing instance document: %v", err)
	}
	for i := range inst.Schools {
		inst.Schools[i].Source = fmt.Sprintf("%s:schools[%d]", source, i)
		if err := checkFinite(inst.Schools[i].Weights, inst.Schools[i].Source); err != nil {
			return nil, err
		}
	}
	for i := range inst.Students {
		inst.Students[i].Source = fmt.Sprintf("%s:students[%d]", source, i)
		if err := checkFinite(inst.Students[i].Scores, inst.Students[i].Source); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func checkFinite(vector []float64, at string) error {
	for i, v := range vector {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewMalformedInputError(at, "factor %d is not a finite number", i)
		}
	}
	return nil
}
