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

// Package sweep removes directories left empty after a move, walking
// bottom-up so removing a child can free its parent in the same pass.
package sweep

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options controls a sweep pass
type Options struct {
	// Recursive makes every empty directory under root eligible;
	// otherwise only direct children of root are removed.
	Recursive bool
	// IgnoreNames are glob patterns for entry names that are excluded
	// from emptiness checks and never descended into or removed.
	IgnoreNames []string
}

// 📋 Report describes what one sweep pass did
type Report struct {
	Removed  []string // paths actually removed, deepest-first
	Found    int      // directories observed empty, removable or not
	Failures int      // scan or removal failures that were skipped over
}

// 🧹 Sweep removes empty directories under root. The root itself is
// never removed. Per-directory failures are logged, counted and
// skipped; only a failure to scan root itself is returned as an error.
func Sweep(ctx context.Context, root string, opts Options) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Errorf("stating sweep root: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("sweep root %s is not a directory", root)
	}

	s := &sweeper{
		opts:   opts,
		logger: zerolog.Ctx(ctx),
		report: &Report{},
	}
	if err := s.walk(root, true); err != nil {
		return nil, err
	}
	return s.report, nil
}

type sweeper struct {
	opts   Options
	logger *zerolog.Logger
	report *Report
}

// walk visits dir's children before deciding about dir itself and
// reports whether dir is empty once eligible children are gone.
// Ignored entries are excluded from the emptiness check.
func (s *sweeper) walk(dir string, isRoot bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if isRoot {
			return errors.Errorf("scanning %s: %w", dir, err)
		}
		s.logger.Warn().Err(err).Str("dir", dir).Msg("skipping unreadable directory")
		s.report.Failures++
		return nil
	}

	for _, entry := range entries {
		if !entry.IsDir() || s.ignored(entry.Name()) {
			continue
		}
		child := filepath.Join(dir, entry.Name())
		if err := s.walk(child, false); err != nil {
			return err
		}
		if !s.isEmpty(child) {
			continue
		}
		s.report.Found++
		if !s.opts.Recursive && !isRoot {
			// Only direct children of root are eligible
			continue
		}
		s.remove(child)
	}
	return nil
}

// isEmpty checks emptiness after excluding ignored names. Unreadable
// directories count as non-empty.
func (s *sweeper) isEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !s.ignored(entry.Name()) {
			return false
		}
	}
	return true
}

// remove deletes dir if it is physically empty. A directory that is
// empty only after excluding ignored entries stays on disk.
func (s *sweeper) remove(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(dir); err != nil {
		s.logger.Warn().Err(err).Str("dir", dir).Msg("could not remove empty directory")
		s.report.Failures++
		return
	}
	s.logger.Debug().Str("dir", dir).Msg("removed empty directory")
	s.report.Removed = append(s.report.Removed, dir)
}

func (s *sweeper) ignored(name string) bool {
	for _, pattern := range s.opts.IgnoreNames {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
