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

// Package logging configures the process-wide logr logger backed by zap and
// defines the verbosity levels used across the matcher.
package logging

import (
	"context"

	"github.com/go-logr/logr"
	uberzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Verbosity levels passed to logger.V().
const (
	DEFAULT = 0
	VERBOSE = 3
	DEBUG   = 4
	TRACE   = 5
)

// atomicLevel is shared by every logger built by InitLogging so the verbosity
// can be raised after the global logger has been installed.
var atomicLevel = uberzap.NewAtomicLevelAt(zapcore.InfoLevel)

// InitLogging installs the global logger. verbosity is a logr V level: 0 logs
// Info and above, TRACE logs every admission decision.
func InitLogging(verbosity int, development bool) logr.Logger {
	SetVerbosity(verbosity)
	logger := zap.New(
		zap.UseDevMode(development),
		zap.Level(atomicLevel),
		zap.RawZapOpts(uberzap.AddCaller()),
	)
	log.SetLogger(logger)
	return logger
}

// SetVerbosity adjusts the level of all loggers created by InitLogging.
func SetVerbosity(verbosity int) {
	if verbosity < 0 {
		verbosity = 0
	}
	atomicLevel.SetLevel(zapcore.Level(-1 * verbosity))
}

// NewTestLogger creates a new Zap logger using the dev mode.
func NewTestLogger() logr.Logger {
	return zap.New(
		zap.UseDevMode(true),
		zap.Level(uberzap.NewAtomicLevelAt(zapcore.Level(-1*TRACE))),
		zap.RawZapOpts(uberzap.AddCaller()),
	)
}

// NewTestLoggerIntoContext creates a new Zap logger using the dev mode and inserts it into the given context.
func NewTestLoggerIntoContext(ctx context.Context) context.Context {
	return log.IntoContext(ctx, NewTestLogger())
}
