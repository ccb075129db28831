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

// Package runner implements the matcher command: it loads one or more
// instances, solves each, and writes the reports and metrics.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/llm-d/llm-d-stable-matcher/internal/instance"
	"github.com/llm-d/llm-d-stable-matcher/internal/logging"
	"github.com/llm-d/llm-d-stable-matcher/internal/metrics"
	"github.com/llm-d/llm-d-stable-matcher/internal/report"
	"github.com/llm-d/llm-d-stable-matcher/pkg/config"
	"github.com/llm-d/llm-d-stable-matcher/pkg/core"
	"github.com/llm-d/llm-d-stable-matcher/pkg/solver"
)

var setupLog = log.Log.WithName("setup")

// Runner runs the matcher command.
type Runner struct {
	executableName string
	stdout         io.Writer
}

func NewRunner() *Runner {
	return &Runner{
		executableName: "matcher",
		stdout:         os.Stdout,
	}
}

// WithExecutableName sets the command name.
func (r *Runner) WithExecutableName(name string) *Runner {
	r.executableName = name
	return r
}

// WithStdout sets the writer used when the output is "-".
func (r *Runner) WithStdout(w io.Writer) *Runner {
	r.stdout = w
	return r
}

// Command returns the cobra command. Positional arguments replace the
// configured inputs.
func (r *Runner) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.executableName + " [input...]",
		Short: "Compute a capacity-constrained stable matching between schools and students",
		Long: `Reads schools and students, runs student-proposing deferred acceptance with
identical school capacities and writes every school's roster, best match first.

With more than one input, the instances are solved concurrently and each report
is written to <output-dir>/<input name>.solution.<ext>.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(cmd.Flags())
			if err != nil {
				logging.InitLogging(logging.DEFAULT, false)
				setupLog.Error(err, "Failed to read configuration")
				return core.NewConfigurationError(err, "loading configuration")
			}
			logging.InitLogging(v.GetInt(config.KeyVerbosity), v.GetBool(config.KeyDevelopment))
			if len(args) > 0 {
				v.Set(config.KeyInputs, args)
			}
			cfg, err := config.Load(v)
			if err != nil {
				setupLog.Error(err, "Invalid configuration")
				return core.NewConfigurationError(err, "loading configuration")
			}
			return r.Run(cmd.Context(), cfg)
		},
	}
	config.AddFlags(cmd.Flags())
	return cmd
}

// Run solves every input of cfg. A failing input does not stop the others in
// batch mode; all failures are returned together.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) error {
	setupLog.Info("Configuration loaded", "inputs", cfg.Inputs, "format", cfg.Format,
		"factors", cfg.Factors, "verify", cfg.Verify, "parallelism", cfg.Parallelism)

	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return err
	}

	if cfg.Batch() {
		err = r.runBatch(ctx, cfg, recorder)
	} else {
		err = r.solve(ctx, cfg, cfg.Inputs[0], cfg.Output, recorder)
	}

	if cfg.MetricsFile != "" {
		if merr := metrics.WriteTextfile(cfg.MetricsFile, registry); merr != nil {
			setupLog.Error(merr, "Failed to write metrics", "path", cfg.MetricsFile)
			err = errors.Join(err, merr)
		}
	}
	if err != nil {
		setupLog.Error(err, "Matching failed")
		return err
	}
	return nil
}

func (r *Runner) runBatch(ctx context.Context, cfg *config.Config, recorder *metrics.Recorder) error {
	outputs, err := batchOutputs(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	p := pool.New().WithMaxGoroutines(cfg.Parallelism).WithErrors()
	for i, input := range cfg.Inputs {
		output := outputs[i]
		p.Go(func() error {
			return r.solve(ctx, cfg, input, output, recorder)
		})
	}
	return p.Wait()
}

// batchOutputs maps every input to <output-dir>/<stem>.solution.<ext>.
func batchOutputs(cfg *config.Config) ([]string, error) {
	ext := reportExtension(cfg.Format)
	seen := sets.New[string]()
	outputs := make([]string, len(cfg.Inputs))
	for i, input := range cfg.Inputs {
		base := filepath.Base(input)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		outputs[i] = filepath.Join(cfg.OutputDir, stem+".solution"+ext)
		if seen.Has(outputs[i]) {
			return nil, core.NewConfigurationError(nil, "inputs share the report path %s", outputs[i])
		}
		seen.Insert(outputs[i])
	}
	return outputs, nil
}

func reportExtension(format string) string {
	switch format {
	case config.FormatYAML:
		return ".yaml"
	case config.FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// solve loads, solves and reports one instance and records its outcome.
func (r *Runner) solve(ctx context.Context, cfg *config.Config, input, output string, recorder *metrics.Recorder) error {
	logger := setupLog.WithName("solve").WithValues("run", uuid.NewString(), "input", input)
	ctx = log.IntoContext(ctx, logger)

	err := r.solveAndReport(ctx, cfg, input, output, recorder, logger)
	recorder.RecordResult(err)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	return nil
}

func (r *Runner) solveAndReport(ctx context.Context, cfg *config.Config, input, output string,
	recorder *metrics.Recorder, logger logr.Logger) error {
	p, err := load(cfg, input, recorder, logger)
	if err != nil {
		logger.Error(err, "Failed to load instance")
		return err
	}
	if err := p.Solve(ctx); err != nil {
		return err
	}
	if cfg.Verify {
		if err := solver.Verify(p); err != nil {
			logger.Error(err, "Matching is not stable")
			return fmt.Errorf("verifying matching: %w", err)
		}
		logger.V(logging.VERBOSE).Info("Matching verified")
	}
	if err := r.writeReport(p, output, cfg.Format); err != nil {
		logger.Error(err, "Failed to write report", "output", output)
		return err
	}
	logger.Info("Instance solved", "schools", len(p.Schools()), "students", len(p.Students()),
		"capacity", p.Capacity(), "steps", p.Steps(), "output", output)
	return nil
}

func load(cfg *config.Config, input string, recorder *metrics.Recorder, logger logr.Logger) (*solver.Problem, error) {
	inst, err := instance.Load(input, cfg.InputFormat, cfg.Factors, logger)
	if err != nil {
		return nil, err
	}
	schools, students, err := inst.Build(cfg.Factors)
	if err != nil {
		return nil, err
	}
	return solver.NewProblem(schools, students, solver.WithObserver(recorder))
}

// writeReport renders the report in memory first so that a failure never
// leaves a partial file behind.
func (r *Runner) writeReport(p *solver.Problem, output, format string) error {
	var buf bytes.Buffer
	if err := report.Write(&buf, p, format); err != nil {
		return err
	}
	if output == config.StdStream {
		_, err := r.stdout.Write(buf.Bytes())
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
