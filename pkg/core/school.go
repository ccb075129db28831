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
	"context"
	"slices"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/llm-d/llm-d-stable-matcher/internal/logging"
)

// Admission is one roster slot: the admitted student and its rating with the school.
type Admission struct {
	Student *Student
	Rating  float64
}

// School is a named weight vector with a fixed capacity and a roster of admitted
// students sorted by non-increasing rating.
type School struct {
	name     string
	weights  []float64
	capacity int
	roster   []Admission
}

// NewSchool creates a school with an empty roster. weights is copied.
func NewSchool(name string, weights []float64, capacity int) *School {
	return &School{
		name:     name,
		weights:  slices.Clone(weights),
		capacity: capacity,
		roster:   make([]Admission, 0, capacity+1),
	}
}

func (s *School) Name() string {
	return s.name
}

// Weights returns a copy of the school's weight vector.
func (s *School) Weights() []float64 {
	return slices.Clone(s.weights)
}

func (s *School) Capacity() int {
	return s.capacity
}

// Roster returns a copy of the admitted students, best rated first.
func (s *School) Roster() []Admission {
	return slices.Clone(s.roster)
}

// Len returns the number of admitted students.
func (s *School) Len() int {
	return len(s.roster)
}

// Full reports whether the roster holds capacity students.
func (s *School) Full() bool {
	return len(s.roster) >= s.capacity
}

// Lowest returns the lowest rated admission, if any.
func (s *School) Lowest() (Admission, bool) {
	if len(s.roster) == 0 {
		return Admission{}, false
	}
	return s.roster[len(s.roster)-1], true
}

// Admit offers the school a candidate and returns the student left without a
// place, if any: the previous lowest rated occupant when the candidate displaces
// it, or the candidate itself when every occupant rates at least as high and the
// roster is full. Incumbents win ties.
func (s *School) Admit(ctx context.Context, candidate *Student) *Student {
	logger := log.FromContext(ctx).V(logging.TRACE).WithValues("school", s.name, "student", candidate.name)
	logger.Info("Student wants to join school")

	rating := Rating(s, candidate)
	if len(s.roster) == 0 {
		s.roster = append(s.roster, Admission{Student: candidate, Rating: rating})
		logger.Info("School accepts student", "rating", rating, "admitted", len(s.roster))
		return nil
	}

	for i, occupant := range s.roster {
		if rating <= occupant.Rating {
			continue
		}
		s.roster = slices.Insert(s.roster, i, Admission{Student: candidate, Rating: rating})
		logger.Info("School accepts student", "rating", rating, "position", i, "admitted", len(s.roster))
		if len(s.roster) > s.capacity {
			return s.dropLowest(logger)
		}
		return nil
	}

	if len(s.roster) >= s.capacity {
		logger.Info("School already has enough better-matched students", "rating", rating)
		return candidate
	}
	s.roster = append(s.roster, Admission{Student: candidate, Rating: rating})
	logger.Info("School accepts student", "rating", rating, "position", len(s.roster)-1, "admitted", len(s.roster))
	return nil
}

// dropLowest removes and returns the last roster entry.
func (s *School) dropLowest(logger logr.Logger) *Student {
	last := len(s.roster) - 1
	bumped := s.roster[last]
	s.roster[last] = Admission{}
	s.roster = s.roster[:last]
	logger.Info("School bumps student", "bumped", bumped.Student.name, "bumpedRating", bumped.Rating)
	return bumped.Student
}
