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
	"strings"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&YAMLParser{})
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	// Define YAML schema
	type yamlCleanup struct {
		Enabled     *bool    `yaml:"enabled,omitempty"`
		Recursive   *bool    `yaml:"recursive,omitempty"`
		IgnoreNames []string `yaml:"ignore_names,omitempty"`
	}
	type yamlConfig struct {
		Destination  string       `yaml:"destination"`
		DeleteSource bool         `yaml:"delete_source,omitempty"`
		DryRun       bool         `yaml:"dry_run,omitempty"`
		Recursive    bool         `yaml:"recursive,omitempty"`
		Type         string       `yaml:"type,omitempty"`
		Workers      int          `yaml:"workers,omitempty"`
		Cleanup      *yamlCleanup `yaml:"cleanup,omitempty"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, errors.Errorf("unmarshaling YAML: %w", err)
	}

	// Convert to model, starting from defaults so the cleanup block
	// can be omitted entirely
	cfg := Default()
	cfg.Destination = yamlCfg.Destination
	cfg.DeleteSource = yamlCfg.DeleteSource
	cfg.DryRun = yamlCfg.DryRun
	cfg.Recursive = yamlCfg.Recursive
	cfg.Type = yamlCfg.Type
	if yamlCfg.Workers > 0 {
		cfg.Workers = yamlCfg.Workers
	}

	if yamlCfg.Cleanup != nil {
		if yamlCfg.Cleanup.Enabled != nil {
			cfg.Cleanup.Enabled = *yamlCfg.Cleanup.Enabled
		}
		if yamlCfg.Cleanup.Recursive != nil {
			cfg.Cleanup.Recursive = *yamlCfg.Cleanup.Recursive
		}
		if yamlCfg.Cleanup.IgnoreNames != nil {
			cfg.Cleanup.IgnoreNames = yamlCfg.Cleanup.IgnoreNames
		}
	}

	return cfg, nil
}
