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

// Package resolve decides what to do when a destination path is
// already taken: skip content-identical sources, rename the rest.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🎯 Decision is the outcome of resolving one destination path
type Decision struct {
	Proceed bool   // false means the source is redundant and is skipped
	Path    string // final destination path, set when Proceed is true
}

// Skip returns the decision to leave the source untouched
func Skip() Decision {
	return Decision{}
}

// ProceedTo returns the decision to transfer to path
func ProceedTo(path string) Decision {
	return Decision{Proceed: true, Path: path}
}

// 🔧 Resolver resolves destination collisions. Equal is the content
// equality collaborator: true iff the two files have identical bytes.
type Resolver struct {
	Equal func(a, b string) (bool, error)
}

// 🏭 New creates a resolver backed by the given equality function
func New(equal func(a, b string) (bool, error)) (*Resolver, error) {
	if equal == nil {
		return nil, errors.Errorf("equality function is required")
	}
	return &Resolver{Equal: equal}, nil
}

// 🔍 Resolve decides the fate of src relative to the proposed
// destination. A missing destination proceeds unchanged; an identical
// destination skips; a differing destination proceeds to the first
// free name_1.ext, name_2.ext, ... candidate. Filesystem failures are
// returned to the caller, which records them as transfer-level errors.
func (r *Resolver) Resolve(src, proposed string) (Decision, error) {
	exists, err := pathExists(proposed)
	if err != nil {
		return Decision{}, err
	}
	if !exists {
		return ProceedTo(proposed), nil
	}

	same, err := r.Equal(src, proposed)
	if err != nil {
		return Decision{}, errors.Errorf("comparing %s with %s: %w", src, proposed, err)
	}
	if same {
		return Skip(), nil
	}

	// Differing content: synthesize name_1.ext, name_2.ext, ...
	ext := filepath.Ext(proposed)
	base := strings.TrimSuffix(proposed, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", base, counter, ext)
		exists, err := pathExists(candidate)
		if err != nil {
			return Decision{}, err
		}
		if !exists {
			return ProceedTo(candidate), nil
		}
	}
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking existence of %s: %w", path, err)
}
