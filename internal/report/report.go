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

// Package report renders the rosters of a solved matching problem.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/llm-d/llm-d-stable-matcher/pkg/config"
	"github.com/llm-d/llm-d-stable-matcher/pkg/solver"
)

// Write renders the rosters of p to w in the given format. It writes nothing
// when p is not solved.
func Write(w io.Writer, p *solver.Problem, format string) error {
	result, err := p.Result()
	if err != nil {
		return err
	}
	return WriteResult(w, result, format)
}

// WriteResult renders result to w in the given format.
func WriteResult(w io.Writer, result *solver.Result, format string) error {
	switch format {
	case config.FormatText, "":
		return writeLines(w, result, textLine)
	case config.FormatLegacy:
		return writeLines(w, result, legacyLine)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func writeLines(w io.Writer, result *solver.Result, line func(solver.SchoolResult) string) error {
	bw := bufio.NewWriter(w)
	for _, school := range result.Schools {
		if _, err := fmt.Fprintln(bw, line(school)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// textLine renders "U0: S0:5, S1:4".
func textLine(school solver.SchoolResult) string {
	entries := make([]string, len(school.Admitted))
	for i, pl := range school.Admitted {
		entries[i] = pl.String()
	}
	return school.Name + ": " + strings.Join(entries, ", ")
}

// legacyLine renders "U0 S0 U0:5 U1:0, S1 U0:4": every admitted student
// followed by its ratings with each explicitly preferred school.
func legacyLine(school solver.SchoolResult) string {
	entries := make([]string, len(school.Admitted))
	for i, pl := range school.Admitted {
		fields := make([]string, 0, len(pl.Preferences)+1)
		fields = append(fields, pl.Student)
		for _, pref := range pl.Preferences {
			fields = append(fields, pref.School+":"+solver.FormatRating(pref.Rating))
		}
		entries[i] = strings.Join(fields, " ")
	}
	return school.Name + " " + strings.Join(entries, ", ")
}
