// Package config provides configuration management for the matcher CLI.
//
// Configuration Sources:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables prefixed with MATCHER_ (dashes become underscores,
//     e.g. MATCHER_OUTPUT_DIR)
//  3. A YAML config file named by --config
//  4. Default values (lowest priority)
//
// Example usage:
//
//	fs := pflag.NewFlagSet("matcher", pflag.ContinueOnError)
//	config.AddFlags(fs)
//	_ = fs.Parse(os.Args[1:])
//
//	v, err := config.NewViper(fs)
//	if err != nil {
//	    return err
//	}
//	cfg, err := config.Load(v)
//	if err != nil {
//	    return err
//	}
//
// All values are validated on load.
package config
