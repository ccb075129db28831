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

package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Output formats.
const (
	FormatText   = "text"
	FormatLegacy = "legacy"
	FormatYAML   = "yaml"
	FormatJSON   = "json"
)

// Input formats. InputAuto picks by file extension.
const (
	InputAuto     = "auto"
	InputLines    = "lines"
	InputDocument = "document"
)

// Flag and viper keys.
const (
	KeyConfig      = "config"
	KeyOutput      = "output"
	KeyOutputDir   = "output-dir"
	KeyFormat      = "format"
	KeyInputFormat = "input-format"
	KeyFactors     = "factors"
	KeyVerify      = "verify"
	KeyVerbosity   = "v"
	KeyDevelopment = "log-dev"
	KeyMetricsFile = "metrics-file"
	KeyParallelism = "parallelism"
	KeyInputs      = "inputs"

	// EnvPrefix is prepended to every key to form its environment variable.
	EnvPrefix = "MATCHER"

	// StdStream selects stdout for the output.
	StdStream = "-"
)

// Defaults.
const (
	DefaultInput       = "input/input.txt"
	DefaultOutput      = "output/solution.txt"
	DefaultOutputDir   = "output"
	DefaultFactors     = 3
	DefaultParallelism = 4
)

var (
	outputFormats = []string{FormatText, FormatLegacy, FormatYAML, FormatJSON}
	inputFormats  = []string{InputAuto, InputLines, InputDocument}
)

// Config holds the settings of one matcher run.
type Config struct {
	// Inputs are the instance files to solve. More than one input switches the
	// run to batch mode, writing one report per input under OutputDir.
	Inputs []string
	// Output is the report path for a single input; "-" writes to stdout.
	Output string
	// OutputDir receives the reports in batch mode.
	OutputDir string
	// Format is the report format: text, legacy, yaml or json.
	Format string
	// InputFormat forces the instance format: auto, lines or document.
	InputFormat string
	// Factors is the length of every weight and score vector.
	Factors int
	// Verify re-checks capacity, ordering and stability after solving.
	Verify bool
	// Verbosity is the logr V level; 5 traces every admission decision.
	Verbosity int
	// Development switches the logger to human-readable console output.
	Development bool
	// MetricsFile, when set, receives Prometheus metrics in text exposition format.
	MetricsFile string
	// Parallelism bounds how many instances are solved at once in batch mode.
	Parallelism int
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Inputs:      []string{DefaultInput},
		Output:      DefaultOutput,
		OutputDir:   DefaultOutputDir,
		Format:      FormatText,
		InputFormat: InputAuto,
		Factors:     DefaultFactors,
		Parallelism: DefaultParallelism,
	}
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("at least one input is required")
	}
	for _, in := range c.Inputs {
		if strings.TrimSpace(in) == "" {
			return fmt.Errorf("input paths must not be empty")
		}
	}
	if len(c.Inputs) == 1 && c.Output == "" {
		return fmt.Errorf("output must be set, use %q for stdout", StdStream)
	}
	if len(c.Inputs) > 1 && c.OutputDir == "" {
		return fmt.Errorf("output-dir must be set when solving %d inputs", len(c.Inputs))
	}
	if !slices.Contains(outputFormats, c.Format) {
		return fmt.Errorf("format must be one of %v, got %q", outputFormats, c.Format)
	}
	if !slices.Contains(inputFormats, c.InputFormat) {
		return fmt.Errorf("input-format must be one of %v, got %q", inputFormats, c.InputFormat)
	}
	if c.Factors < 1 {
		return fmt.Errorf("factors must be >= 1, got %d", c.Factors)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("v must be >= 0, got %d", c.Verbosity)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be >= 1, got %d", c.Parallelism)
	}
	return nil
}

// Batch reports whether more than one input is configured.
func (c *Config) Batch() bool {
	return len(c.Inputs) > 1
}

// AddFlags registers the matcher flags on fs with their defaults.
func AddFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyConfig, "", "Path to a YAML config file")
	fs.StringP(KeyOutput, "o", d.Output, fmt.Sprintf("Report path for a single input (%q for stdout)", StdStream))
	fs.String(KeyOutputDir, d.OutputDir, "Report directory when solving several inputs")
	fs.StringP(KeyFormat, "f", d.Format, fmt.Sprintf("Report format, one of %v", outputFormats))
	fs.String(KeyInputFormat, d.InputFormat, fmt.Sprintf("Instance format, one of %v", inputFormats))
	fs.Int(KeyFactors, d.Factors, "Number of factors in every weight and score vector")
	fs.Bool(KeyVerify, d.Verify, "Check capacity, ordering and stability after solving")
	fs.IntP(KeyVerbosity, "v", d.Verbosity, "Log verbosity (0-5, 5 traces every admission)")
	fs.Bool(KeyDevelopment, d.Development, "Human-readable development logging")
	fs.String(KeyMetricsFile, d.MetricsFile, "Write Prometheus metrics to this file after solving")
	fs.Int(KeyParallelism, d.Parallelism, "Maximum number of inputs solved concurrently")
}

// NewViper binds fs and the MATCHER_ environment to a new viper instance and
// reads the config file named by --config, if any.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyInputs, Default().Inputs)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}
	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return v, nil
}

// Load builds and validates a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Inputs:      v.GetStringSlice(KeyInputs),
		Output:      v.GetString(KeyOutput),
		OutputDir:   v.GetString(KeyOutputDir),
		Format:      strings.ToLower(v.GetString(KeyFormat)),
		InputFormat: strings.ToLower(v.GetString(KeyInputFormat)),
		Factors:     v.GetInt(KeyFactors),
		Verify:      v.GetBool(KeyVerify),
		Verbosity:   v.GetInt(KeyVerbosity),
		Development: v.GetBool(KeyDevelopment),
		MetricsFile: v.GetString(KeyMetricsFile),
		Parallelism: v.GetInt(KeyParallelism),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
