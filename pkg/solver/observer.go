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
	"time"

	"github.com/llm-d/llm-d-stable-matcher/pkg/core"
)

// DisplacementReason tells why a student returned to the unmatched pool.
type DisplacementReason string

const (
	// ReasonBumped means an admitted student lost its place to a better candidate.
	ReasonBumped DisplacementReason = "bumped"
	// ReasonRejected means the candidate was turned away by a full school.
	ReasonRejected DisplacementReason = "rejected"
)

// Observer receives the events of a solve. Implementations must not mutate the
// entities they are handed.
type Observer interface {
	// Advanced is called after student attempted school.
	Advanced(student *core.Student, school *core.School)
	// Displaced is called when student goes back to the pool.
	Displaced(student *core.Student, school *core.School, reason DisplacementReason)
	// FallbackGenerated is called once per student whose explicit list ran out,
	// before the Advanced call for the school taken from the new list.
	FallbackGenerated(student *core.Student)
	// Finished is called when Solve returns.
	Finished(steps int, elapsed time.Duration, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

var _ Observer = NopObserver{}

func (NopObserver) Advanced(*core.Student, *core.School) {}
func (NopObserver) Displaced(*core.Student, *core.School, DisplacementReason) {}
func (NopObserver) FallbackGenerated(*core.Student) {}
func (NopObserver) Finished(int, time.Duration, error) {}
