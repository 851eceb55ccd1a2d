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

// Package hash computes content digests for duplicate detection.
package hash

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Digest computes the xxhash64 digest of the file's contents.
func Digest(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Errorf("opening file for hashing: %w", err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, errors.Errorf("hashing %s: %w", path, err)
	}
	return h.Sum64(), nil
}

// ⚖️ Equal reports whether two files have byte-identical contents.
// Files of different sizes are unequal without reading either.
func Equal(a, b string) (bool, error) {
	aInfo, err := os.Stat(a)
	if err != nil {
		return false, errors.Errorf("stating %s: %w", a, err)
	}
	bInfo, err := os.Stat(b)
	if err != nil {
		return false, errors.Errorf("stating %s: %w", b, err)
	}
	if aInfo.Size() != bInfo.Size() {
		return false, nil
	}

	aSum, err := Digest(a)
	if err != nil {
		return false, err
	}
	bSum, err := Digest(b)
	if err != nil {
		return false, err
	}
	return aSum == bSum, nil
}
