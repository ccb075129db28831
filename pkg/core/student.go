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
	"cmp"
	"context"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/llm-d/llm-d-stable-matcher/internal/logging"
)

// Student is a named score vector with an ordered list of preferred schools and
// a cursor into that list. The cursor is unset until the first Advance.
type Student struct {
	name        string
	scores      []float64
	preferences []*School
	explicit    int
	cursor      *int
	fallback    bool
}

// NewStudent creates a student with the given explicit preferences, best first.
// scores and preferences are copied.
func NewStudent(name string, scores []float64, preferences []*School) *Student {
	return &Student{
		name:        name,
		scores:      slices.Clone(scores),
		preferences: slices.Clone(preferences),
		explicit:    len(preferences),
	}
}

func (s *Student) Name() string {
	return s.name
}

// Scores returns a copy of the student's score vector.
func (s *Student) Scores() []float64 {
	return slices.Clone(s.scores)
}

// Preferences returns the effective preference list: the explicit list followed
// by the fallback list once it has been generated.
func (s *Student) Preferences() []*School {
	return slices.Clone(s.preferences)
}

// ExplicitPreferences returns the preference list as given.
func (s *Student) ExplicitPreferences() []*School {
	return slices.Clone(s.preferences[:s.explicit])
}

// Cursor returns the index of the school the student is currently attempting,
// and false while the student has not advanced yet.
func (s *Student) Cursor() (int, bool) {
	return ptr.Deref(s.cursor, -1), s.cursor != nil
}

// FallbackGenerated reports whether the preference list has been extended.
func (s *Student) FallbackGenerated() bool {
	return s.fallback
}

// Current returns the school at the cursor, or nil while the cursor is unset.
func (s *Student) Current() *School {
	if s.cursor == nil || *s.cursor >= len(s.preferences) {
		return nil
	}
	return s.preferences[*s.cursor]
}

// Advance moves the cursor to the next preferred school and asks that school to
// admit the student, returning whoever was left without a place.
//
// When the cursor passes the end of the explicit list for the first time, the
// schools the student never listed are appended, best rated first. schools is
// the full school set of the instance in enumeration order. A student that has
// been turned away by every school gets an UnsolvedStateError.
func (s *Student) Advance(ctx context.Context, schools []*School) (*Student, error) {
	logger := log.FromContext(ctx).V(logging.TRACE).WithValues("student", s.name)
	if s.cursor == nil {
		logger.Info("Student initiates a school join")
	}
	next := ptr.Deref(s.cursor, -1) + 1
	s.cursor = ptr.To(next)

	if next >= s.explicit && !s.fallback {
		s.extendPreferences(ctx, schools)
	}
	if next >= len(s.preferences) {
		return nil, NewUnsolvedStateError(ErrPreferencesExhausted,
			"student %s was turned away by all %d schools", s.name, len(s.preferences))
	}
	return s.preferences[next].Admit(ctx, s), nil
}

// extendPreferences appends every unlisted school, sorted by descending rating
// with this student. Equal ratings keep the enumeration order of schools.
func (s *Student) extendPreferences(ctx context.Context, schools []*School) {
	listed := sets.New(s.preferences...)
	remaining := make([]*School, 0, len(schools))
	for _, school := range schools {
		if !listed.Has(school) {
			remaining = append(remaining, school)
		}
	}
	slices.SortStableFunc(remaining, func(a, b *School) int {
		return cmp.Compare(Rating(b, s), Rating(a, s))
	})
	s.preferences = append(s.preferences, remaining...)
	s.fallback = true

	names := make([]string, len(remaining))
	for i, school := range remaining {
		names[i] = school.name
	}
	log.FromContext(ctx).V(logging.TRACE).Info("Student exhausted its preference list, falling back to school ratings",
		"student", s.name, "remaining", names)
}
