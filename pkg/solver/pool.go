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

import "github.com/llm-d/llm-d-stable-matcher/pkg/core"

// pool is the last-in-first-out collection of unmatched students.
type pool struct {
	students []*core.Student
}

func newPool(students []*core.Student) *pool {
	p := &pool{students: make([]*core.Student, 0, len(students))}
	p.students = append(p.students, students...)
	return p
}

func (p *pool) push(s *core.Student) {
	p.students = append(p.students, s)
}

// pop removes the most recently added student. It returns nil when empty.
func (p *pool) pop() *core.Student {
	n := len(p.students)
	if n == 0 {
		return nil
	}
	s := p.students[n-1]
	p.students[n-1] = nil
	p.students = p.students[:n-1]
	return s
}

func (p *pool) len() int {
	return len(p.students)
}

func (p *pool) names() []string {
	names := make([]string, len(p.students))
	for i, s := range p.students {
		names[i] = s.Name()
	}
	return names
}
