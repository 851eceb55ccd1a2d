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
	"io"
	"os"
	"syscall"
	"time"

	"gitlab.com/tozd/go/errors"
)

// 🚚 moveFile renames src to dest, falling back to copy-and-delete
// when the two paths live on different filesystems
func moveFile(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return errors.Errorf("renaming %s: %w", src, err)
	}

	if err := copyFile(src, dest); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return errors.Errorf("removing source after copy: %w", err)
	}
	return nil
}

// 📄 copyFile copies src to dest, carrying over the permission bits
// and the modification time
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Errorf("stating source file: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return errors.Errorf("copying file content: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	if err := os.Chtimes(dest, time.Now(), info.ModTime()); err != nil {
		return errors.Errorf("preserving timestamps: %w", err)
	}
	return nil
}
