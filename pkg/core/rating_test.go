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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Rating", func() {
	It("should return the dot product of school weights and student scores", func() {
		school := NewSchool("U0", []float64{7, 3, 10}, 1)
		student := NewStudent("S0", []float64{3, 9, 2}, nil)
		Expect(Rating(school, student)).To(Equal(7.0*3 + 3*9 + 10*2))
	})

	It("should use the school's weights whichever side asks", func() {
		a := NewSchool("U0", []float64{1, 0, 0}, 1)
		b := NewSchool("U1", []float64{0, 1, 0}, 1)
		student := NewStudent("S0", []float64{5, 1, 0}, []*School{a, b})
		Expect(Rating(a, student)).To(Equal(5.0))
		Expect(Rating(b, student)).To(Equal(1.0))
	})

	It("should be idempotent", func() {
		school := NewSchool("U0", []float64{0.5, 2, 4}, 1)
		student := NewStudent("S0", []float64{2, 0.25, 1}, nil)
		first := Rating(school, student)
		for i := 0; i < 10; i++ {
			Expect(Rating(school, student)).To(Equal(first))
		}
	})

	It("should not see later changes to the caller's vectors", func() {
		weights := []float64{1, 1, 1}
		scores := []float64{2, 2, 2}
		school := NewSchool("U0", weights, 1)
		student := NewStudent("S0", scores, nil)
		weights[0] = 100
		scores[0] = 100
		Expect(Rating(school, student)).To(Equal(6.0))
	})
})
