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

package instance

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/llm-d/llm-d-stable-matcher/internal/logging"
	"github.com/llm-d/llm-d-stable-matcher/pkg/config"
)

var _ = Describe("Load", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
		return path
	}

	DescribeTable("DetectFormat",
		func(path, expected string) {
			Expect(DetectFormat(path)).To(Equal(expected))
		},
		Entry("yaml", "a/b.yaml", config.InputDocument),
		Entry("yml", "b.YML", config.InputDocument),
		Entry("json", "b.json", config.InputDocument),
		Entry("txt", "input/input.txt", config.InputLines),
		Entry("no extension", "input", config.InputLines),
	)

	It("should pick the line reader by extension", func() {
		path := write("input.txt", "U U0 A:1 B:0 C:0\nS S0 A:5 B:0 C:0\n")
		inst, err := Load(path, config.InputAuto, 3, logging.NewTestLogger())
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Schools).To(HaveLen(1))
		Expect(inst.Students[0].Source).To(Equal(path + ":2"))
	})

	It("should pick the document reader by extension", func() {
		path := write("instance.yaml", "schools:\n- name: U0\n  weights: [1]\nstudents:\n- name: S0\n  scores: [2]\n")
		inst, err := Load(path, "", 1, logging.NewTestLogger())
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Students[0].Scores).To(Equal([]float64{2}))
	})

	It("should honour an explicit format", func() {
		path := write("instance.data", `{"schools":[{"name":"U0","weights":[1]}]}`)
		inst, err := Load(path, config.InputDocument, 1, logging.NewTestLogger())
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Schools[0].Name).To(Equal("U0"))
	})

	It("should fail on a missing file", func() {
		_, err := Load(filepath.Join(dir, "missing.txt"), config.InputAuto, 3, logging.NewTestLogger())
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("should fail on an unknown format", func() {
		path := write("input.txt", "")
		_, err := Load(path, "csv", 3, logging.NewTestLogger())
		Expect(err).To(MatchError(ContainSubstring(`unsupported input format "csv"`)))
	})
})
