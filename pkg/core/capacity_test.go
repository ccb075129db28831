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

var _ = Describe("CapacityFor", func() {
	It("should divide students evenly among schools", func() {
		capacity, err := CapacityFor(6, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(capacity).To(Equal(2))
	})

	DescribeTable("should reject instances that cannot be split",
		func(students, schools int) {
			_, err := CapacityFor(students, schools)
			Expect(err).To(HaveOccurred())
			Expect(IsConfigurationError(err)).To(BeTrue())
		},
		Entry("uneven", 5, 2),
		Entry("fewer students than schools", 1, 2),
		Entry("no schools", 4, 0),
		Entry("no students", 0, 2),
	)

	It("should wrap ErrUnevenCapacity", func() {
		_, err := CapacityFor(5, 2)
		Expect(err).To(MatchError(ErrUnevenCapacity))
		Expect(err.Error()).To(ContainSubstring("5 students and 2 schools"))
	})
})
