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

var _ = Describe("Student.Advance", func() {
	var (
		ctx            context.Context
		u0, u1, u2, u3 *School
		schools        []*School
	)

	BeforeEach(func() {
		ctx = context.Background()
		u0 = NewSchool("U0", []float64{1, 0, 0}, 1)
		u1 = NewSchool("U1", []float64{0, 1, 0}, 1)
		u2 = NewSchool("U2", []float64{0, 0, 1}, 1)
		u3 = NewSchool("U3", []float64{0, 1, 0}, 1)
		schools = []*School{u0, u1, u2, u3}
	})

	It("should start with an unset cursor", func() {
		s := NewStudent("S0", []float64{1, 2, 3}, []*School{u1})
		_, set := s.Cursor()
		Expect(set).To(BeFalse())
		Expect(s.Current()).To(BeNil())
	})

	It("should try the first preference on the first advance", func() {
		s := NewStudent("S0", []float64{1, 2, 3}, []*School{u1, u0})
		displaced, err := s.Advance(ctx, schools)
		Expect(err).NotTo(HaveOccurred())
		Expect(displaced).To(BeNil())
		cursor, set := s.Cursor()
		Expect(set).To(BeTrue())
		Expect(cursor).To(Equal(0))
		Expect(s.Current()).To(BeIdenticalTo(u1))
		Expect(rosterNames(u1)).To(Equal([]string{"S0"}))
	})

	It("should move to the next preference after a rejection", func() {
		incumbent := NewStudent("S1", []float64{0, 9, 0}, []*School{u1})
		_, err := incumbent.Advance(ctx, schools)
		Expect(err).NotTo(HaveOccurred())

		s := NewStudent("S0", []float64{1, 2, 3}, []*School{u1, u0})
		displaced, err := s.Advance(ctx, schools)
		Expect(err).NotTo(HaveOccurred())
		Expect(displaced).To(BeIdenticalTo(s))

		displaced, err = s.Advance(ctx, schools)
		Expect(err).NotTo(HaveOccurred())
		Expect(displaced).To(BeNil())
		Expect(s.Current()).To(BeIdenticalTo(u0))
		Expect(s.FallbackGenerated()).To(BeFalse())
	})

	It("should return the student bumped by the admission", func() {
		weak := NewStudent("S1", []float64{1, 0, 0}, []*School{u0})
		_, err := weak.Advance(ctx, schools)
		Expect(err).NotTo(HaveOccurred())

		strong := NewStudent("S0", []float64{5, 0, 0}, []*School{u0})
		displaced, err := strong.Advance(ctx, schools)
		Expect(err).NotTo(HaveOccurred())
		Expect(displaced).To(BeIdenticalTo(weak))
	})

	Context("when the explicit list runs out", func() {
		It("should append unlisted schools by descending rating, ties in school order", func() {
			s := NewStudent("S0", []float64{1, 4, 2}, []*School{u0})
			_, err := s.Advance(ctx, schools)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.FallbackGenerated()).To(BeFalse())

			// S0 was admitted at U0; force the next step as if bumped.
			_, err = s.Advance(ctx, schools)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.FallbackGenerated()).To(BeTrue())
			Expect(schoolNames(s.Preferences())).To(Equal([]string{"U0", "U1", "U3", "U2"}))
			Expect(schoolNames(s.ExplicitPreferences())).To(Equal([]string{"U0"}))
			Expect(s.Current()).To(BeIdenticalTo(u1))
		})

		It("should generate the fallback for an empty explicit list on the first advance", func() {
			s := NewStudent("S0", []float64{0, 0, 7}, nil)
			displaced, err := s.Advance(ctx, schools)
			Expect(err).NotTo(HaveOccurred())
			Expect(displaced).To(BeNil())
			Expect(s.FallbackGenerated()).To(BeTrue())
			Expect(s.Current()).To(BeIdenticalTo(u2))
			Expect(schoolNames(s.Preferences())).To(Equal([]string{"U2", "U0", "U1", "U3"}))
		})

		It("should extend the list only once", func() {
			s := NewStudent("S0", []float64{1, 1, 1}, []*School{u3})
			for i := 0; i < 3; i++ {
				_, err := s.Advance(ctx, schools)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(s.Preferences()).To(HaveLen(len(schools)))
			Expect(schoolNames(s.Preferences())[0]).To(Equal("U3"))
		})

		It("should fail with an unsolved state error once every school was tried", func() {
			s := NewStudent("S0", []float64{1, 1, 1}, []*School{u0, u1})
			for i := 0; i < len(schools); i++ {
				_, err := s.Advance(ctx, schools)
				Expect(err).NotTo(HaveOccurred())
			}
			_, err := s.Advance(ctx, schools)
			Expect(err).To(MatchError(ErrPreferencesExhausted))
			Expect(IsUnsolvedStateError(err)).To(BeTrue())
		})
	})
})
