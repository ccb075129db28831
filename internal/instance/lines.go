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
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"

	"github.com/llm-d/llm-d-stable-matcher/internal/logging"
	"github.com/llm-d/llm-d-stable-matcher/pkg/core"
)

const (
	schoolMarker  = "U"
	studentMarker = "S"
)

// ParseLines reads the line format. source names the input in error messages.
// Every malformed line is reported, aggregated into one error.
func ParseLines(r io.Reader, source string, factors int, logger logr.Logger) (*Instance, error) {
	inst := &Instance{}
	var errs []error

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		at := fmt.Sprintf("%s:%d", source, lineNo)
		switch fields[0] {
		case schoolMarker:
			school, err := parseSchoolLine(fields, at, factors)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			inst.Schools = append(inst.Schools, school)
		case studentMarker:
			student, err := parseStudentLine(fields, at, factors)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			inst.Students = append(inst.Students, student)
		default:
			logger.V(logging.DEBUG).Info("Skipping unrecognized line", "source", at, "marker", fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	if len(errs) > 0 {
		return nil, utilerrors.NewAggregate(errs)
	}
	return inst, nil
}

// parseSchoolLine parses "U <name> <factor>...".
func parseSchoolLine(fields []string, at string, factors int) (SchoolSpec, error) {
	if len(fields) != 2+factors {
		return SchoolSpec{}, core.NewMalformedInputError(at,
			"school line needs a name and %d weights, got %d fields", factors, len(fields)-1)
	}
	weights, err := parseVector(fields[2:], at)
	if err != nil {
		return SchoolSpec{}, err
	}
	return SchoolSpec{Name: fields[1], Weights: weights, Source: at}, nil
}

// parseStudentLine parses "S <name> <factor>... [<pref>,<pref>,...]".
func parseStudentLine(fields []string, at string, factors int) (StudentSpec, error) {
	if len(fields) != 2+factors && len(fields) != 3+factors {
		return StudentSpec{}, core.NewMalformedInputError(at,
			"student line needs a name, %d scores and an optional preference list, got %d fields", factors, len(fields)-1)
	}
	scores, err := parseVector(fields[2:2+factors], at)
	if err != nil {
		return StudentSpec{}, err
	}
	student := StudentSpec{Name: fields[1], Scores: scores, Source: at}
	if len(fields) == 3+factors {
		for _, ref := range strings.Split(fields[2+factors], ",") {
			if ref == "" {
				return StudentSpec{}, core.NewMalformedInputError(at, "empty entry in preference list %q", fields[2+factors])
			}
			student.Preferences = append(student.Preferences, ref)
		}
	}
	return student, nil
}

// parseVector parses tokens of the form "A:7" or "7".
func parseVector(tokens []string, at string) ([]float64, error) {
	vector := make([]float64, len(tokens))
	for i, token := range tokens {
		raw := token
		if idx := strings.LastIndex(token, ":"); idx >= 0 {
			raw = token[idx+1:]
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, core.NewMalformedInputError(at, "factor %d: %q is not a number", i, token)
		}
		vector[i] = value
	}
	return vector, nil
}
