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
	"context"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/llm-d/llm-d-stable-matcher/internal/logging"
	"github.com/llm-d/llm-d-stable-matcher/pkg/core"
)

// Problem is one matching instance together with its unmatched pool.
type Problem struct {
	schools   []*core.School
	students  []*core.Student
	capacity  int
	unmatched *pool
	steps     int
	observer  Observer
}

// Option configures a Problem.
type Option func(*Problem)

// WithObserver sets the observer notified of solve events.
func WithObserver(o Observer) Option {
	return func(p *Problem) {
		if o != nil {
			p.observer = o
		}
	}
}

// NewProblem creates a problem over the given schools and students. Every school
// must have the capacity students ÷ schools; otherwise a ConfigurationError is
// returned. The pool starts with all students in the given order, so the last
// student is the first to advance.
func NewProblem(schools []*core.School, students []*core.Student, opts ...Option) (*Problem, error) {
	capacity, err := core.CapacityFor(len(students), len(schools))
	if err != nil {
		return nil, err
	}
	for _, school := range schools {
		if school.Capacity() != capacity {
			return nil, core.NewConfigurationError(nil,
				"school %s has capacity %d, want %d (%d students / %d schools)",
				school.Name(), school.Capacity(), capacity, len(students), len(schools))
		}
	}
	p := &Problem{
		schools:   schools,
		students:  students,
		capacity:  capacity,
		unmatched: newPool(students),
		observer:  NopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Solve runs deferred acceptance until the unmatched pool is empty. The context
// only carries the logger; the loop is not interruptible. Calling Solve on a
// solved problem is a no-op.
func (p *Problem) Solve(ctx context.Context) error {
	logger := log.FromContext(ctx)
	start := time.Now()
	logger.V(logging.DEBUG).Info("Solving matching problem",
		"schools", len(p.schools), "students", len(p.students), "capacity", p.capacity)

	err := p.run(ctx)
	elapsed := time.Since(start)
	p.observer.Finished(p.steps, elapsed, err)
	if err != nil {
		logger.Error(err, "Matching did not complete", "steps", p.steps, "unmatched", p.unmatched.names())
		return err
	}

	logger.V(logging.VERBOSE).Info("Matching completed", "steps", p.steps, "elapsed", elapsed)
	return nil
}

func (p *Problem) run(ctx context.Context) error {
	limit := p.MaxSteps()
	for p.unmatched.len() > 0 {
		if p.steps >= limit {
			return core.NewUnsolvedStateError(core.ErrStepLimit,
				"%d students still unmatched after %d advances", p.unmatched.len(), p.steps)
		}
		student := p.unmatched.pop()
		hadFallback := student.FallbackGenerated()

		displaced, err := student.Advance(ctx, p.schools)
		p.steps++
		if err != nil {
			p.unmatched.push(student)
			return err
		}

		if !hadFallback && student.FallbackGenerated() {
			p.observer.FallbackGenerated(student)
		}
		school := student.Current()
		p.observer.Advanced(student, school)
		if displaced == nil {
			continue
		}
		reason := ReasonBumped
		if displaced == student {
			reason = ReasonRejected
		}
		p.observer.Displaced(displaced, school, reason)
		p.unmatched.push(displaced)
	}
	return nil
}

// Schools returns the schools in enumeration order.
func (p *Problem) Schools() []*core.School {
	return p.schools
}

// Students returns the students in input order.
func (p *Problem) Students() []*core.Student {
	return p.students
}

// Capacity returns the per-school capacity.
func (p *Problem) Capacity() int {
	return p.capacity
}

// Steps returns the number of advances performed so far.
func (p *Problem) Steps() int {
	return p.steps
}

// MaxSteps returns the advance bound for this instance: students × schools.
func (p *Problem) MaxSteps() int {
	return len(p.students) * len(p.schools)
}

// Solved reports whether the unmatched pool is empty.
func (p *Problem) Solved() bool {
	return p.unmatched.len() == 0
}

// Unmatched returns the names of the students still in the pool, oldest first.
func (p *Problem) Unmatched() []string {
	return p.unmatched.names()
}
