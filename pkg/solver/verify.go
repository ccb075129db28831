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
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/llm-d/llm-d-stable-matcher/pkg/core"
)

// Verify checks a solved problem and returns every violation found, aggregated:
//   - each roster is full and sorted by non-increasing rating
//   - every student sits on exactly one roster, the one its cursor points to
//   - no student prefers a school whose lowest admitted rating is below its own
//     rating with that school
//
// All violations are UnsolvedStateErrors.
func Verify(p *Problem) error {
	if !p.Solved() {
		return core.NewUnsolvedStateError(core.ErrNotSolved, "%d students still unmatched", p.unmatched.len())
	}

	var errs []error
	seen := sets.New[string]()
	for _, school := range p.schools {
		roster := school.Roster()
		if len(roster) != school.Capacity() {
			errs = append(errs, core.NewUnsolvedStateError(nil,
				"school %s admitted %d students, capacity is %d", school.Name(), len(roster), school.Capacity()))
		}
		for i, admission := range roster {
			name := admission.Student.Name()
			if seen.Has(name) {
				errs = append(errs, core.NewUnsolvedStateError(nil, "student %s admitted more than once", name))
			}
			seen.Insert(name)
			if i > 0 && roster[i-1].Rating < admission.Rating {
				errs = append(errs, core.NewUnsolvedStateError(nil,
					"roster of %s out of order at position %d", school.Name(), i))
			}
			if admission.Student.Current() != school {
				errs = append(errs, core.NewUnsolvedStateError(nil,
					"student %s admitted by %s but its cursor points elsewhere", name, school.Name()))
			}
		}
	}
	if seen.Len() != len(p.students) {
		errs = append(errs, core.NewUnsolvedStateError(nil,
			"%d of %d students admitted", seen.Len(), len(p.students)))
	}

	for _, student := range p.students {
		errs = append(errs, blockingPairs(student)...)
	}
	return utilerrors.NewAggregate(errs)
}

// blockingPairs returns a violation for every school the student ranks ahead of
// its assignment that would rather take the student than its lowest occupant.
func blockingPairs(student *core.Student) []error {
	cursor, set := student.Cursor()
	if !set {
		return nil
	}
	var errs []error
	preferences := student.Preferences()
	for _, preferred := range preferences[:min(cursor, len(preferences))] {
		rating := core.Rating(preferred, student)
		lowest, ok := preferred.Lowest()
		if !ok || !preferred.Full() || lowest.Rating < rating {
			errs = append(errs, core.NewUnsolvedStateError(nil,
				"student %s (rating %s) prefers %s over its assignment and %s would admit it",
				student.Name(), FormatRating(rating), preferred.Name(), preferred.Name()))
		}
	}
	return errs
}
