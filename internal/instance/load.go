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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"

	"github.com/llm-d/llm-d-stable-matcher/internal/logging"
	"github.com/llm-d/llm-d-stable-matcher/pkg/config"
)

// DetectFormat returns config.InputDocument for .yaml, .yml and .json paths and
// config.InputLines otherwise.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return config.InputDocument
	default:
		return config.InputLines
	}
}

// Load reads the instance at path. format is one of the config input formats;
// config.InputAuto picks by extension.
func Load(path, format string, factors int, logger logr.Logger) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading instance: %w", err)
	}
	if format == "" || format == config.InputAuto {
		format = DetectFormat(path)
	}
	logger.V(logging.DEBUG).Info("Loading instance", "path", path, "format", format, "bytes", len(data))

	switch format {
	case config.InputDocument:
		return ParseDocument(data, path)
	case config.InputLines:
		return ParseLines(bytes.NewReader(data), path, factors, logger)
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
}
