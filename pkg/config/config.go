// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🧹 Cleanup configures the empty-directory sweep that runs after a move
type Cleanup struct {
	Enabled     bool     `json:"enabled" yaml:"enabled"`
	Recursive   bool     `json:"recursive" yaml:"recursive"`
	IgnoreNames []string `json:"ignore_names,omitempty" yaml:"ignore_names,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Destination  string  `json:"destination" yaml:"destination"`
	DeleteSource bool    `json:"delete_source,omitempty" yaml:"delete_source,omitempty"`
	DryRun       bool    `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Recursive    bool    `json:"recursive,omitempty" yaml:"recursive,omitempty"`
	Type         string  `json:"type,omitempty" yaml:"type,omitempty"`
	Workers      int     `json:"workers,omitempty" yaml:"workers,omitempty"`
	Cleanup      Cleanup `json:"cleanup,omitempty" yaml:"cleanup,omitempty"`
}

// 🗂️ DefaultIgnoreNames are directory names never swept or descended into
var DefaultIgnoreNames = []string{
	".git",
	"__pycache__",
	".pytest_cache",
	".mypy_cache",
	"node_modules",
	"venv",
	".venv",
}

// 🏭 Default returns the default configuration
func Default() *Config {
	return &Config{
		Workers: runtime.NumCPU(),
		Cleanup: Cleanup{
			Enabled:     true,
			Recursive:   true,
			IgnoreNames: DefaultIgnoreNames,
		},
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills zero values that carry non-zero defaults
func (cfg *Config) applyDefaults() {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Cleanup.IgnoreNames == nil {
		cfg.Cleanup.IgnoreNames = DefaultIgnoreNames
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Destination == "" {
		return errors.Errorf("destination is required")
	}
	if cfg.Workers <= 0 {
		return errors.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	return nil
}
