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

package transfer

import (
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/walteh/filesort/pkg/config"
	"github.com/walteh/filesort/pkg/resolve"
	"github.com/walteh/filesort/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the engine
type Options struct {
	// Ledger is the shared progress ledger
	Ledger *status.Ledger
	// Resolver decides duplicate handling for taken destinations
	Resolver *resolve.Resolver
	// DeleteSource moves files instead of copying them
	DeleteSource bool
	// DryRun resolves and records but performs no filesystem mutation
	DryRun bool
	// Cleanup configures the post-move empty-directory sweep
	Cleanup config.Cleanup
	// Workers bounds the parallel transfer pool; defaults to the
	// available CPU parallelism
	Workers int
}

// 🎮 Engine fans independent file transfers out across a bounded
// worker pool, reporting per-file and aggregate progress through the
// ledger
type Engine struct {
	ledger       *status.Ledger
	resolver     *resolve.Resolver
	deleteSource bool
	dryRun       bool
	cleanup      config.Cleanup
	workers      int
}

// 🏭 New creates a new engine with the given options
func New(opts Options) (*Engine, error) {
	if opts.Ledger == nil {
		return nil, errors.Errorf("ledger is required")
	}
	if opts.Resolver == nil {
		return nil, errors.Errorf("resolver is required")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{
		ledger:       opts.Ledger,
		resolver:     opts.Resolver,
		deleteSource: opts.DeleteSource,
		dryRun:       opts.DryRun,
		cleanup:      opts.Cleanup,
		workers:      workers,
	}, nil
}

// 📦 unit is one source-to-destination transfer handed to a worker
type unit struct {
	src  string
	dest string
	size int64
}

// cleanupRoots derives the sweep roots for a source list. Each source
// file's parent directory must itself be removable once emptied, and
// the sweeper never removes its own root, so the sweep starts one
// level above the parent directories. Roots nested inside another
// root are collapsed into it, which also keeps a non-recursive sweep
// from reaching directories that are not direct children of the
// outermost root. The result is sorted for deterministic order.
func cleanupRoots(sources []string) []string {
	seen := map[string]struct{}{}
	for _, src := range sources {
		seen[filepath.Dir(filepath.Dir(src))] = struct{}{}
	}
	candidates := make([]string, 0, len(seen))
	for dir := range seen {
		candidates = append(candidates, dir)
	}
	sort.Strings(candidates)

	var roots []string
	for _, c := range candidates {
		nested := false
		for _, r := range roots {
			if strings.HasPrefix(c, r+string(filepath.Separator)) {
				nested = true
				break
			}
		}
		if !nested {
			roots = append(roots, c)
		}
	}
	return roots
}
