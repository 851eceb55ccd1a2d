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

// Package scan materializes the source file list for a transfer.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/filesort/pkg/classify"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options controls which files a scan yields
type Options struct {
	// Recursive descends into subdirectories; otherwise only files
	// directly under root are listed
	Recursive bool
	// Kind keeps only files of one media kind when non-empty
	Kind classify.Kind
	// IgnorePatterns are doublestar globs matched against the path
	// relative to root; matching files and directories are skipped
	IgnorePatterns []string
}

// 🔍 Files lists the regular files under root that pass the filters,
// in sorted order.
func Files(ctx context.Context, root string, opts Options) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("stating source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("source %s is not a directory", root)
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Errorf("scanning %s: %w", path, err)
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Errorf("relativizing %s: %w", path, err)
		}

		if d.IsDir() {
			if !opts.Recursive || ignored(opts.IgnorePatterns, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if ignored(opts.IgnorePatterns, rel) {
			return nil
		}
		if opts.Kind != "" && classify.Classify(path) != opts.Kind {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(files)
	logger.Debug().Int("files", len(files)).Str("root", root).Msg("scanned source directory")
	return files, nil
}

func ignored(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, filepath.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}
