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

	"github.com/kraklabs/fnpool/pkg/hashing"
	"github.com/kraklabs/fnpool/pkg/poolerr"
)

// Validate checks a function object and every overlay beneath it against
// spec.md §4.8: the object must parse, carry the supported schema version,
// report the hash its own directory implies, and re-hash its normalized
// code to that same value; every overlay must parse, carry all four
// fields, and re-hash to the overlay hash its directory implies.
//
// It returns every violation found rather than stopping at the first, so a
// single scrambled file doesn't hide other corruption.
func (s *Store) Validate(hash string) []error {
	objPath := s.objectPath(hash)
	obj, err := s.GetObject(hash)
	if err != nil {
		return []error{err}
	}

	var errs []error

	if obj.SchemaVersion != SchemaVersion {
		errs = append(errs, poolerr.Newf(poolerr.SchemaMismatch, "unsupported schema_version %d", obj.SchemaVersion).WithPath(objPath))
	}
	if obj.Hash != hash {
		errs = append(errs, poolerr.Newf(poolerr.IntegrityFailure, "object.json hash %q does not match directory hash %q", obj.Hash, hash).WithPath(objPath))
	}
	if got := hashing.FunctionHash(obj.NormalizedCode); got != hash {
		errs = append(errs, poolerr.Newf(poolerr.IntegrityFailure, "normalized_code re-hashes to %q, expected %q", got, hash).WithPath(objPath))
	}

	langs, err := s.ListLanguages(hash)
	if err != nil {
		errs = append(errs, err)
		return errs
	}
	for _, lang := range langs {
		errs = append(errs, s.validateOverlays(hash, lang)...)
	}
	return errs
}

func (s *Store) validateOverlays(hash, lang string) []error {
	langDir := s.languageDir(hash, lang)
	top, err := os.ReadDir(langDir)
	if err != nil {
		return nil
	}

	var errs []error
	for _, prefix := range top {
		if !prefix.IsDir() {
			continue
		}
		rest, err := os.ReadDir(langDir + "/" + prefix.Name())
		if err != nil {
			continue
		}
		for _, suffix := range rest {
			if !suffix.IsDir() {
				continue
			}
			overlayHash := prefix.Name() + suffix.Name()
			path := s.mappingPath(hash, lang, overlayHash)
			m, err := s.GetOverlay(hash, lang, overlayHash)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			got, err := hashing.OverlayHash(m.toOverlay())
			if err != nil {
				errs = append(errs, poolerr.Wrap(poolerr.IoError, "re-hash overlay", err).WithPath(path))
				continue
			}
			if got != overlayHash {
				errs = append(errs, poolerr.Newf(poolerr.IntegrityFailure, "mapping.json re-hashes to %q, expected %q", got, overlayHash).WithPath(path))
			}
		}
	}
	return errs
}
