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

package sweep_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filesort/pkg/sweep"
)

// 🧪 testContext returns a context with a test logger attached
func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestSweepRecursive(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "a/b/c", "d")
	touch(t, filepath.Join(root, "keep", "file.txt"))

	rep, err := sweep.Sweep(testContext(t), root, sweep.Options{Recursive: true})
	require.NoError(t, err)

	// Deepest-first: c before b before a
	assert.Equal(t, []string{
		filepath.Join(root, "a", "b", "c"),
		filepath.Join(root, "a", "b"),
		filepath.Join(root, "a"),
		filepath.Join(root, "d"),
	}, rep.Removed)
	assert.Equal(t, 4, rep.Found)
	assert.Equal(t, 0, rep.Failures)

	assert.NoDirExists(t, filepath.Join(root, "a"))
	assert.DirExists(t, filepath.Join(root, "keep"))
	assert.DirExists(t, root, "root itself is never removed")
}

func TestSweepNonRecursive(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "empty", "parent/nested")

	rep, err := sweep.Sweep(testContext(t), root, sweep.Options{Recursive: false})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "empty")}, rep.Removed)
	assert.DirExists(t, filepath.Join(root, "parent"))
	assert.DirExists(t, filepath.Join(root, "parent", "nested"),
		"deeper empties stay in non-recursive mode")
}

func TestSweepEmptyRootStays(t *testing.T) {
	root := t.TempDir()

	rep, err := sweep.Sweep(testContext(t), root, sweep.Options{Recursive: true})
	require.NoError(t, err)

	assert.Empty(t, rep.Removed)
	assert.DirExists(t, root)
}

func TestSweepIgnoreNames(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, ".git/objects", "empty")
	touch(t, filepath.Join(root, "holder", ".git", "config"))

	rep, err := sweep.Sweep(testContext(t), root, sweep.Options{
		Recursive:   true,
		IgnoreNames: []string{".git"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "empty")}, rep.Removed)
	assert.DirExists(t, filepath.Join(root, ".git", "objects"),
		"ignored directories are never descended into")
	assert.DirExists(t, filepath.Join(root, "holder"),
		"a directory holding only ignored entries stays on disk")
}

func TestSweepIgnoredHolderCountsAsFound(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "holder", ".git", "config"))

	rep, err := sweep.Sweep(testContext(t), root, sweep.Options{
		Recursive:   true,
		IgnoreNames: []string{".git"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Found,
		"holder is empty after exclusions even though it cannot be removed")
	assert.Empty(t, rep.Removed)
	assert.Equal(t, 0, rep.Failures)
}

func TestSweepGlobIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "cache-a", "cache-b", "empty")

	rep, err := sweep.Sweep(testContext(t), root, sweep.Options{
		Recursive:   true,
		IgnoreNames: []string{"cache-*"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "empty")}, rep.Removed)
	assert.DirExists(t, filepath.Join(root, "cache-a"))
	assert.DirExists(t, filepath.Join(root, "cache-b"))
}

func TestSweepFilesBlockRemoval(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "occupied", "file.txt"))

	rep, err := sweep.Sweep(testContext(t), root, sweep.Options{Recursive: true})
	require.NoError(t, err)

	assert.Empty(t, rep.Removed)
	assert.Equal(t, 0, rep.Found)
	assert.DirExists(t, filepath.Join(root, "occupied"))
}

func TestSweepMissingRoot(t *testing.T) {
	_, err := sweep.Sweep(testContext(t), filepath.Join(t.TempDir(), "nope"), sweep.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stating sweep root")
}

func TestSweepRootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	touch(t, file)

	_, err := sweep.Sweep(testContext(t), file, sweep.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
