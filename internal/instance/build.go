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
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/llm-d/llm-d-stable-matcher/pkg/core"
)

// Build validates inst and creates its schools and students, in input order.
// Input problems (empty or duplicate names, vectors of the wrong length, unknown
// or repeated preferences) are returned together as MalformedInputErrors. An
// instance whose students do not divide evenly among its schools yields a
// ConfigurationError.
func (inst *Instance) Build(factors int) ([]*core.School, []*core.Student, error) {
	if err := inst.validate(factors); err != nil {
		return nil, nil, err
	}
	capacity, err := core.CapacityFor(len(inst.Students), len(inst.Schools))
	if err != nil {
		return nil, nil, err
	}

	schools := make([]*core.School, len(inst.Schools))
	byName := make(map[string]*core.School, len(inst.Schools))
	for i, entry := range inst.Schools {
		schools[i] = core.NewSchool(entry.Name, entry.Weights, capacity)
		byName[entry.Name] = schools[i]
	}
	students := make([]*core.Student, len(inst.Students))
	for i, entry := range inst.Students {
		prefs := make([]*core.School, len(entry.Preferences))
		for j, ref := range entry.Preferences {
			prefs[j] = byName[ref]
		}
		students[i] = core.NewStudent(entry.Name, entry.Scores, prefs)
	}
	return schools, students, nil
}

func (inst *Instance) validate(factors int) error {
	var errs []error
	schoolNames := sets.New[string]()
	for _, s := range inst.Schools {
		if s.Name == "" {
			errs = append(errs, core.NewMalformedInputError(s.Source, "school without a name"))
		} else if schoolNames.Has(s.Name) {
			errs = append(errs, core.NewMalformedInputError(s.Source, "duplicate school %q", s.Name))
		}
		schoolNames.Insert(s.Name)
		if len(s.Weights) != factors {
			errs = append(errs, core.NewMalformedInputError(s.Source,
				"school %q has %d weights, want %d", s.Name, len(s.Weights), factors))
		}
	}

	studentNames := sets.New[string]()
	for _, s := range inst.Students {
		if s.Name == "" {
			errs = append(errs, core.NewMalformedInputError(s.Source, "student without a name"))
		} else if studentNames.Has(s.Name) {
			errs = append(errs, core.NewMalformedInputError(s.Source, "duplicate student %q", s.Name))
		}
		studentNames.Insert(s.Name)
		if len(s.Scores) != factors {
			errs = append(errs, core.NewMalformedInputError(s.Source,
				"student %q has %d scores, want %d", s.Name, len(s.Scores), factors))
		}
		listed := sets.New[string]()
		for _, ref := range s.Preferences {
			switch {
			case !schoolNames.Has(ref) || ref == "":
				errs = append(errs, core.NewMalformedInputError(s.Source,
					"student %q prefers unknown school %q", s.Name, ref))
			case listed.Has(ref):
				errs = append(errs, core.NewMalformedInputError(s.Source,
					"student %q lists school %q more than once", s.Name, ref))
			}
			listed.Insert(ref)
		}
	}
	return utilerrors.NewAggregate(errs)
}
