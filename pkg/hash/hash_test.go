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

package hash_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/filesort/pkg/hash"
)

// 🧪 writeFile creates a file with the given content
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDigest(t *testing.T) {
	tmpDir := t.TempDir()

	a := writeFile(t, tmpDir, "a.txt", "hello world")
	b := writeFile(t, tmpDir, "b.txt", "hello world")
	c := writeFile(t, tmpDir, "c.txt", "something else")

	aSum, err := hash.Digest(a)
	require.NoError(t, err)
	bSum, err := hash.Digest(b)
	require.NoError(t, err)
	cSum, err := hash.Digest(c)
	require.NoError(t, err)

	assert.Equal(t, aSum, bSum, "identical content should produce identical digests")
	assert.NotEqual(t, aSum, cSum, "different content should produce different digests")
}

func TestDigestMissingFile(t *testing.T) {
	_, err := hash.Digest(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening file for hashing")
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		contentA string
		contentB string
		want     bool
	}{
		{
			name:     "identical_content",
			contentA: "same bytes",
			contentB: "same bytes",
			want:     true,
		},
		{
			name:     "different_content_same_size",
			contentA: "aaaa",
			contentB: "bbbb",
			want:     false,
		},
		{
			name:     "different_size",
			contentA: "short",
			contentB: "much longer content",
			want:     false,
		},
		{
			name:     "both_empty",
			contentA: "",
			contentB: "",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			a := writeFile(t, tmpDir, "a.bin", tt.contentA)
			b := writeFile(t, tmpDir, "b.bin", tt.contentB)

			got, err := hash.Equal(a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEqualMissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	a := writeFile(t, tmpDir, "a.txt", "content")

	_, err := hash.Equal(a, filepath.Join(tmpDir, "missing.txt"))
	require.Error(t, err)
}
