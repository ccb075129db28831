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

package core

import (
	"gonum.org/v1/gonum/floats"
)

// Rating returns the affinity between school and student: the dot product of the
// school's weights and the student's scores. The school's weights are used
// regardless of which side asks. Both vectors must have the same length.
func Rating(school *School, student *Student) float64 {
	return floats.Dot(school.weights, student.scores)
}
