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
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/filesort/pkg/status"
	"github.com/walteh/filesort/pkg/sweep"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🚚 Transfer moves or copies every source file into destDir. All
// sources are admitted into the ledger before any work starts, skips
// and per-file errors are recorded there, and the call fails only when
// a dispatched transfer fails — after every sibling has finished.
func (e *Engine) Transfer(ctx context.Context, sources []string, destDir string) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Int("sources", len(sources)).
		Str("destination", destDir).
		Bool("dry_run", e.dryRun).
		Msg("starting transfer")

	batch := e.admit(ctx, sources, destDir)

	if e.dryRun {
		logger.Info().Int("batch", len(batch)).Msg("dry run, skipping transfers")
		return nil
	}

	// Dispatch the batch to a bounded pool. Wait blocks until every
	// unit has finished and yields the first error observed; in-flight
	// siblings are never cancelled.
	var g errgroup.Group
	g.SetLimit(e.workers)
	for _, u := range batch {
		u := u
		g.Go(func() error {
			return e.transferOne(ctx, u)
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Errorf("transferring files: %w", err)
	}

	if e.deleteSource && e.cleanup.Enabled {
		e.sweepSourceDirs(ctx, cleanupRoots(sources))
	}
	return nil
}

// admit tracks every source in the ledger, resolves duplicates, and
// returns the surviving work batch. Resolution failures are recorded
// as per-file errors and excluded from the batch.
func (e *Engine) admit(ctx context.Context, sources []string, destDir string) []unit {
	logger := zerolog.Ctx(ctx)

	var batch []unit
	for _, src := range sources {
		proposed := filepath.Join(destDir, filepath.Base(src))

		var size int64
		info, statErr := os.Stat(src)
		if statErr == nil {
			size = info.Size()
		}
		e.ledger.Track(src, proposed, size)

		if statErr != nil {
			err := errors.Errorf("stating source %s: %w", src, statErr)
			logger.Error().Err(err).Str("source", src).Msg("admission failed")
			e.ledger.Update(src, status.StateError, 0, 0, err.Error())
			continue
		}

		dec, err := e.resolver.Resolve(src, proposed)
		if err != nil {
			logger.Error().Err(err).Str("source", src).Msg("duplicate resolution failed")
			e.ledger.Update(src, status.StateError, 0, 0, err.Error())
			continue
		}
		if !dec.Proceed {
			logger.Debug().Str("source", src).Msg("skipping duplicate file")
			e.ledger.Update(src, status.StateSkipped, 100, 0, "")
			continue
		}
		batch = append(batch, unit{src: src, dest: dec.Path, size: size})
	}
	return batch
}

// transferOne executes a single unit: in_progress, byte transfer,
// terminal state. Failures are recorded before they propagate.
func (e *Engine) transferOne(ctx context.Context, u unit) error {
	logger := zerolog.Ctx(ctx)
	e.ledger.Update(u.src, status.StateInProgress, 0, 0, "")

	if err := e.moveOrCopy(u); err != nil {
		e.ledger.Update(u.src, status.StateError, 0, 0, err.Error())
		return err
	}

	e.ledger.Update(u.src, status.StateCompleted, 100, u.size, "")
	logger.Debug().Str("source", u.src).Str("dest", u.dest).Msg("transferred file")
	return nil
}

// moveOrCopy performs the byte transfer. MkdirAll keeps concurrent
// creation of the same destination directory from being an error.
func (e *Engine) moveOrCopy(u unit) error {
	if err := os.MkdirAll(filepath.Dir(u.dest), 0755); err != nil {
		return errors.Errorf("creating destination directory: %w", err)
	}
	if e.deleteSource {
		return moveFile(u.src, u.dest)
	}
	return copyFile(u.src, u.dest)
}

// sweepSourceDirs runs the cleanup pass once per cleanup root. Sweep
// failures are logged and counted, never propagated.
func (e *Engine) sweepSourceDirs(ctx context.Context, dirs []string) {
	logger := zerolog.Ctx(ctx)
	for _, dir := range dirs {
		rep, err := sweep.Sweep(ctx, dir, sweep.Options{
			Recursive:   e.cleanup.Recursive,
			IgnoreNames: e.cleanup.IgnoreNames,
		})
		if err != nil {
			logger.Error().Err(err).Str("dir", dir).Msg("cleaning up source directory")
			e.ledger.AddCleanup(0, 0, 1)
			continue
		}
		e.ledger.AddCleanup(rep.Found, len(rep.Removed), rep.Failures)
		if len(rep.Removed) > 0 {
			logger.Info().
				Str("dir", dir).
				Int("removed", len(rep.Removed)).
				Msg("removed empty directories")
		}
	}
}
