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

// Package instance reads matching instances and turns them into validated
// schools and students.
//
// Two formats are understood. The line format has one entity per line:
//
//	U U0 A:7 B:3 C:10
//	S S0 A:3 B:9 C:2 U2,U0,U1
//
// where a school line carries a name and one labelled weight per factor, and a
// student line carries a name, one labelled score per factor and an optional
// comma-separated list of preferred schools, best first. Lines starting with
// anything else are ignored. The document format is YAML or JSON:
//
//	schools:
//	  - name: U0
//	    weights: [7, 3, 10]
//	students:
//	  - name: S0
//	    scores: [3, 9, 2]
//	    preferences: [U2, U0, U1]
package instance

// SchoolSpec is a school as read from the input.
type SchoolSpec struct {
	Name    string    `json:"name"`
	Weights []float64 `json:"weights"`
	// Source locates the entry in the input, e.g. "input.txt:3".
	Source string `json:"-"`
}

// StudentSpec is a student as read from the input.
type StudentSpec struct {
	Name        string    `json:"name"`
	Scores      []float64 `json:"scores"`
	Preferences []string  `json:"preferences,omitempty"`
	Source      string    `json:"-"`
}

// Instance is an unvalidated matching instance in input order.
type Instance struct {
	Schools  []SchoolSpec  `json:"schools"`
	Students []StudentSpec `json:"students"`
}
