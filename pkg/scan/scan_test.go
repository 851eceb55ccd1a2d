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

package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filesort/pkg/classify"
	"github.com/walteh/filesort/pkg/scan"
)

// 🧪 testContext returns a context with a test logger attached
func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestFilesNonRecursive(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.txt"))
	touch(t, filepath.Join(root, "b.jpg"))
	touch(t, filepath.Join(root, "sub", "deep.txt"))

	files, err := scan.Files(testContext(t), root, scan.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.jpg"),
	}, files)
}

func TestFilesRecursive(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.txt"))
	touch(t, filepath.Join(root, "sub", "deep.txt"))
	touch(t, filepath.Join(root, "sub", "deeper", "deepest.txt"))

	files, err := scan.Files(testContext(t), root, scan.Options{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join(root, "sub", "deeper", "deepest.txt"))
}

func TestFilesKindFilter(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "photo.jpg"))
	touch(t, filepath.Join(root, "clip.mp4"))
	touch(t, filepath.Join(root, "notes.txt"))

	files, err := scan.Files(testContext(t), root, scan.Options{Kind: classify.KindImage})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "photo.jpg")}, files)
}

func TestFilesIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "keep.txt"))
	touch(t, filepath.Join(root, "skip.tmp"))
	touch(t, filepath.Join(root, ".git", "config"))
	touch(t, filepath.Join(root, "sub", "also.tmp"))

	files, err := scan.Files(testContext(t), root, scan.Options{
		Recursive:      true,
		IgnorePatterns: []string{"*.tmp", ".git"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "keep.txt")}, files)
}

func TestFilesMissingRoot(t *testing.T) {
	_, err := scan.Files(testContext(t), filepath.Join(t.TempDir(), "nope"), scan.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stating source directory")
}

func TestFilesRootIsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f.txt")
	touch(t, file)

	_, err := scan.Files(testContext(t), file, scan.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
