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

package solver

import (
	"fmt"

	"github.com/llm-d/llm-d-stable-matcher/pkg/core"
)

// Result is the final assignment of a solved problem.
type Result struct {
	Capacity int            `json:"capacity" yaml:"capacity"`
	Steps    int            `json:"steps" yaml:"steps"`
	Schools  []SchoolResult `json:"schools" yaml:"schools"`
}

// SchoolResult is one school's roster, best rated first.
type SchoolResult struct {
	Name     string      `json:"name" yaml:"name"`
	Admitted []Placement `json:"admitted" yaml:"admitted"`
}

// Placement is one admitted student.
type Placement struct {
	Student string  `json:"student" yaml:"student"`
	Rating  float64 `json:"rating" yaml:"rating"`
	// Rank is the position of the school in the student's effective preference list.
	Rank int `json:"rank" yaml:"rank"`
	// Fallback is true when the school came from the generated fallback list.
	Fallback bool `json:"fallback" yaml:"fallback"`
	// Preferences rates the student against each explicitly preferred school.
	Preferences []PreferenceRating `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// PreferenceRating is the rating of a student with one of its preferred schools.
type PreferenceRating struct {
	School string  `json:"school" yaml:"school"`
	Rating float64 `json:"rating" yaml:"rating"`
}

// Result returns the final rosters. It fails with an UnsolvedStateError while
// any student is still unmatched, so that no partial roster is ever reported.
func (p *Problem) Result() (*Result, error) {
	if !p.Solved() {
		return nil, core.NewUnsolvedStateError(core.ErrNotSolved,
			"%d students still unmatched %v", p.unmatched.len(), p.unmatched.names())
	}
	result := &Result{
		Capacity: p.capacity,
		Steps:    p.steps,
		Schools:  make([]SchoolResult, 0, len(p.schools)),
	}
	for _, school := range p.schools {
		roster := school.Roster()
		sr := SchoolResult{Name: school.Name(), Admitted: make([]Placement, 0, len(roster))}
		for _, admission := range roster {
			placement, err := placementOf(school, admission)
			if err != nil {
				return nil, err
			}
			sr.Admitted = append(sr.Admitted, placement)
		}
		result.Schools = append(result.Schools, sr)
	}
	return result, nil
}

func placementOf(school *core.School, admission core.Admission) (Placement, error) {
	student := admission.Student
	rank, set := student.Cursor()
	if !set || student.Current() != school {
		return Placement{}, core.NewUnsolvedStateError(nil,
			"student %s is on the roster of %s but its cursor points elsewhere", student.Name(), school.Name())
	}
	explicit := student.ExplicitPreferences()
	prefs := make([]PreferenceRating, len(explicit))
	for i, s := range explicit {
		prefs[i] = PreferenceRating{School: s.Name(), Rating: core.Rating(s, student)}
	}
	return Placement{
		Student:     student.Name(),
		Rating:      admission.Rating,
		Rank:        rank,
		Fallback:    rank >= len(explicit),
		Preferences: prefs,
	}, nil
}

// String renders the placement as name:rating.
func (pl Placement) String() string {
	return fmt.Sprintf("%s:%s", pl.Student, FormatRating(pl.Rating))
}
