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
	"errors"
	"fmt"
)

// Error codes carried by Error.
const (
	ConfigurationErrorCode  = "ConfigurationError"
	MalformedInputErrorCode = "MalformedInputError"
	UnsolvedStateErrorCode  = "UnsolvedStateError"
)

var (
	// ErrUnevenCapacity is wrapped when the student count is not a multiple of the school count.
	ErrUnevenCapacity = errors.New("students do not divide evenly among schools")
	// ErrPreferencesExhausted is wrapped when a student was rejected by every school.
	ErrPreferencesExhausted = errors.New("student preference list exhausted")
	// ErrStepLimit is wrapped when a solve performs more advances than students × schools.
	ErrStepLimit = errors.New("advance limit reached")
	// ErrNotSolved is wrapped when a result is requested while students remain unmatched.
	ErrNotSolved = errors.New("solution not found yet")
)

// Error is the error type returned by the matcher. Code classifies the failure,
// Source optionally locates it in the input (file:line).
type Error struct {
	Code   string
	Source string
	Msg    string
	Err    error
}

// Error returns a string version of the error.
func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Source != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Source, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigurationError reports an instance that cannot be solved as configured.
func NewConfigurationError(err error, format string, args ...any) *Error {
	return &Error{Code: ConfigurationErrorCode, Msg: fmt.Sprintf(format, args...), Err: err}
}

// NewMalformedInputError reports input that cannot be turned into schools and students.
// source may be empty.
func NewMalformedInputError(source string, format string, args ...any) *Error {
	return &Error{Code: MalformedInputErrorCode, Source: source, Msg: fmt.Sprintf(format, args...)}
}

// NewUnsolvedStateError reports a violated termination invariant.
func NewUnsolvedStateError(err error, format string, args ...any) *Error {
	return &Error{Code: UnsolvedStateErrorCode, Msg: fmt.Sprintf(format, args...), Err: err}
}

// CanonicalCode returns the code of the first *Error found in err, looking
// through wrapped and aggregated errors, or "Unknown".
func CanonicalCode(err error) string {
	code := "Unknown"
	walk(err, func(e *Error) bool {
		code = e.Code
		return true
	})
	return code
}

func IsConfigurationError(err error) bool {
	return hasCode(err, ConfigurationErrorCode)
}

func IsMalformedInputError(err error) bool {
	return hasCode(err, MalformedInputErrorCode)
}

func IsUnsolvedStateError(err error) bool {
	return hasCode(err, UnsolvedStateErrorCode)
}

func hasCode(err error, code string) bool {
	return walk(err, func(e *Error) bool {
		return e.Code == code
	})
}

// walk visits every *Error in err depth first, descending through Unwrap and
// through aggregates (Errors() []error or Unwrap() []error). It stops and
// returns true as soon as visit does.
func walk(err error, visit func(*Error) bool) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(*Error); ok && visit(e) {
		return true
	}
	switch wrapped := err.(type) {
	case interface{ Errors() []error }:
		return walkAll(wrapped.Errors(), visit)
	case interface{ Unwrap() []error }:
		return walkAll(wrapped.Unwrap(), visit)
	case interface{ Unwrap() error }:
		return walk(wrapped.Unwrap(), visit)
	}
	return false
}

func walkAll(errs []error, visit func(*Error) bool) bool {
	for _, err := range errs {
		if walk(err, visit) {
			return true
		}
	}
	return false
}
