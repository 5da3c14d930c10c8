// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"os"
	"path/filepath"

	"github.com/kraklabs/fnpool/pkg/poolerr"
)

// writeFileAtomic creates parent directories, writes data to a uniquely
// named temporary sibling of path, fsyncs it, and renames it into place.
// If a file already exists at path, the write is skipped: content is
// content-addressed, so any existing file already holds identical bytes
// modulo metadata (spec.md §4.6 idempotent-write note).
func writeFileAtomic(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return poolerr.Wrap(poolerr.IoError, "stat "+path, err)
	}

	// IoError from a tentative temp-file write may be retried at most
	// twice before propagating (spec.md §7).
	const maxAttempts = 3
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := writeFileAtomicOnce(path, data); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

func writeFileAtomicOnce(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return poolerr.Wrap(poolerr.IoError, "create directory "+dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return poolerr.Wrap(poolerr.IoError, "create temp file in "+dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return poolerr.Wrap(poolerr.IoError, "write "+tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return poolerr.Wrap(poolerr.IoError, "fsync "+tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return poolerr.Wrap(poolerr.IoError, "close "+tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return poolerr.Wrap(poolerr.IoError, "rename "+tmpPath+" to "+path, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, poolerr.New(poolerr.NotFound, "not found").WithPath(path)
		}
		return nil, poolerr.Wrap(poolerr.IoError, "read "+path, err)
	}
	return data, nil
}
