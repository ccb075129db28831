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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("School.Admit", func() {
	var (
		ctx    context.Context
		school *School
	)

	student := func(name string, rating float64) *Student {
		return NewStudent(name, []float64{rating, 0, 0}, nil)
	}

	BeforeEach(func() {
		ctx = context.Background()
		school = NewSchool("U0", []float64{1, 0, 0}, 2)
	})

	Context("with an empty roster", func() {
		It("should admit the candidate as sole member", func() {
			Expect(school.Admit(ctx, student("S0", 3))).To(BeNil())
			Expect(rosterNames(school)).To(Equal([]string{"S0"}))
			Expect(school.Roster()[0].Rating).To(Equal(3.0))
		})
	})

	Context("with room left", func() {
		It("should insert a better candidate ahead", func() {
			Expect(school.Admit(ctx, student("S1", 4))).To(BeNil())
			Expect(school.Admit(ctx, student("S0", 5))).To(BeNil())
			Expect(rosterNames(school)).To(Equal([]string{"S0", "S1"}))
		})

		It("should append a worse candidate", func() {
			Expect(school.Admit(ctx, student("S0", 5))).To(BeNil())
			Expect(school.Admit(ctx, student("S1", 4))).To(BeNil())
			Expect(rosterNames(school)).To(Equal([]string{"S0", "S1"}))
			Expect(school.Full()).To(BeTrue())
		})

		It("should place an equally rated candidate behind the incumbent", func() {
			Expect(school.Admit(ctx, student("S0", 5))).To(BeNil())
			Expect(school.Admit(ctx, student("S1", 5))).To(BeNil())
			Expect(rosterNames(school)).To(Equal([]string{"S0", "S1"}))
		})
	})

	Context("with a full roster", func() {
		var s0, s1 *Student

		BeforeEach(func() {
			s0 = student("S0", 5)
			s1 = student("S1", 3)
			Expect(school.Admit(ctx, s0)).To(BeNil())
			Expect(school.Admit(ctx, s1)).To(BeNil())
		})

		It("should bump the lowest rated occupant for a better candidate", func() {
			Expect(school.Admit(ctx, student("S2", 4))).To(BeIdenticalTo(s1))
			Expect(rosterNames(school)).To(Equal([]string{"S0", "S2"}))
			Expect(school.Len()).To(Equal(2))
		})

		It("should bump the lowest rated occupant for a new best candidate", func() {
			Expect(school.Admit(ctx, student("S2", 9))).To(BeIdenticalTo(s1))
			Expect(rosterNames(school)).To(Equal([]string{"S2", "S0"}))
		})

		It("should reject a worse candidate", func() {
			candidate := student("S2", 1)
			Expect(school.Admit(ctx, candidate)).To(BeIdenticalTo(candidate))
			Expect(rosterNames(school)).To(Equal([]string{"S0", "S1"}))
		})

		It("should reject a candidate tied with the lowest occupant", func() {
			candidate := student("S2", 3)
			Expect(school.Admit(ctx, candidate)).To(BeIdenticalTo(candidate))
			Expect(rosterNames(school)).To(Equal([]string{"S0", "S1"}))
		})

		It("should report the lowest admission", func() {
			lowest, ok := school.Lowest()
			Expect(ok).To(BeTrue())
			Expect(lowest.Student).To(BeIdenticalTo(s1))
			Expect(lowest.Rating).To(Equal(3.0))
		})
	})

	It("should keep the roster sorted and bounded over many offers", func() {
		school = NewSchool("U0", []float64{1, 0, 0}, 3)
		for i, r := range []float64{2, 8, 5, 5, 1, 9, 3, 8, 7} {
			school.Admit(ctx, student(string(rune('a'+i)), r))
			Expect(school.Len()).To(BeNumerically("<=", school.Capacity()))
			roster := school.Roster()
			for j := 1; j < len(roster); j++ {
				Expect(roster[j-1].Rating).To(BeNumerically(">=", roster[j].Rating))
			}
		}
		Expect(rosterNames(school)).To(Equal([]string{"f", "b", "h"}))
	})
})

var _ = Describe("School accessors", func() {
	It("should report no lowest admission while empty", func() {
		_, ok := NewSchool("U0", []float64{1}, 1).Lowest()
		Expect(ok).To(BeFalse())
	})

	It("should return copies", func() {
		school := NewSchool("U0", []float64{1, 2}, 1)
		w := school.Weights()
		w[0] = 42
		Expect(school.Weights()).To(Equal([]float64{1, 2}))
	})
})
