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

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclCleanup struct {
		Enabled     *bool    `hcl:"enabled,optional"`
		Recursive   *bool    `hcl:"recursive,optional"`
		IgnoreNames []string `hcl:"ignore_names,optional"`
	}
	type hclConfig struct {
		Destination  string      `hcl:"destination"`
		DeleteSource bool        `hcl:"delete_source,optional"`
		DryRun       bool        `hcl:"dry_run,optional"`
		Recursive    bool        `hcl:"recursive,optional"`
		Type         string      `hcl:"type,optional"`
		Workers      int         `hcl:"workers,optional"`
		Cleanup      *hclCleanup `hcl:"cleanup,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := Default()
	cfg.Destination = hclCfg.Destination
	cfg.DeleteSource = hclCfg.DeleteSource
	cfg.DryRun = hclCfg.DryRun
	cfg.Recursive = hclCfg.Recursive
	cfg.Type = hclCfg.Type
	if hclCfg.Workers > 0 {
		cfg.Workers = hclCfg.Workers
	}

	if hclCfg.Cleanup != nil {
		if hclCfg.Cleanup.Enabled != nil {
			cfg.Cleanup.Enabled = *hclCfg.Cleanup.Enabled
		}
		if hclCfg.Cleanup.Recursive != nil {
			cfg.Cleanup.Recursive = *hclCfg.Cleanup.Recursive
		}
		if hclCfg.Cleanup.IgnoreNames != nil {
			cfg.Cleanup.IgnoreNames = hclCfg.Cleanup.IgnoreNames
		}
	}

	return cfg, nil
}
