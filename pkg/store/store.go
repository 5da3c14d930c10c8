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
	"encoding/json"
	"os"
	"regexp"

	"github.com/kraklabs/fnpool/pkg/poolerr"
)

var languageTagPattern = regexp.MustCompile(`^[A-Za-z0-9-]{3,256}$`)

// ValidateLanguageTag enforces spec.md §4.6/§6.2's character class and
// length bounds.
func ValidateLanguageTag(lang string) error {
	if !languageTagPattern.MatchString(lang) {
		return poolerr.Newf(poolerr.InvalidLanguageTag, "language tag %q must be 3-256 characters of [A-Za-z0-9-]", lang)
	}
	return nil
}

// HasFunction reports whether a function object exists under hash.
func (s *Store) HasFunction(hash string) bool {
	_, err := os.Stat(s.objectPath(hash))
	return err == nil
}

// PutObject writes object.json for hash if it doesn't already exist.
func (s *Store) PutObject(hash string, obj ObjectFile) error {
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return poolerr.Wrap(poolerr.IoError, "marshal object.json", err)
	}
	return writeFileAtomic(s.objectPath(hash), data)
}

// GetObject reads and parses object.json for hash.
func (s *Store) GetObject(hash string) (*ObjectFile, error) {
	data, err := readFile(s.objectPath(hash))
	if err != nil {
		return nil, err
	}
	var obj ObjectFile
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, poolerr.Wrap(poolerr.SchemaMismatch, "parse object.json", err).WithPath(s.objectPath(hash))
	}
	return &obj, nil
}

// PutOverlay writes mapping.json for (hash, lang, overlayHash) if it
// doesn't already exist. It returns InvalidLanguageTag if lang fails
// ValidateLanguageTag and NotFound if the parent function doesn't exist.
func (s *Store) PutOverlay(hash, lang, overlayHash string, m MappingFile) error {
	if err := ValidateLanguageTag(lang); err != nil {
		return err
	}
	if !s.HasFunction(hash) {
		return poolerr.New(poolerr.NotFound, "function not found").WithPath(s.functionDir(hash))
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return poolerr.Wrap(poolerr.IoError, "marshal mapping.json", err)
	}
	return writeFileAtomic(s.mappingPath(hash, lang, overlayHash), data)
}

// GetOverlay reads and parses mapping.json for (hash, lang, overlayHash).
func (s *Store) GetOverlay(hash, lang, overlayHash string) (*MappingFile, error) {
	data, err := readFile(s.mappingPath(hash, lang, overlayHash))
	if err != nil {
		return nil, err
	}
	var m MappingFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, poolerr.Wrap(poolerr.SchemaMismatch, "parse mapping.json", err).WithPath(s.mappingPath(hash, lang, overlayHash))
	}
	if m.NameMapping == nil || m.AliasMapping == nil {
		return nil, poolerr.New(poolerr.SchemaMismatch, "mapping.json missing required field").WithPath(s.mappingPath(hash, lang, overlayHash))
	}
	return &m, nil
}

// ListLanguages enumerates the non-empty language directories under a
// function's directory.
func (s *Store) ListLanguages(hash string) ([]string, error) {
	entries, err := os.ReadDir(s.functionDir(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, poolerr.New(poolerr.NotFound, "function not found").WithPath(s.functionDir(hash))
		}
		return nil, poolerr.Wrap(poolerr.IoError, "list "+s.functionDir(hash), err)
	}

	var langs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub, err := os.ReadDir(s.languageDir(hash, e.Name()))
		if err != nil || len(sub) == 0 {
			continue
		}
		langs = append(langs, e.Name())
	}
	return langs, nil
}

// ListOverlays enumerates the two-level overlay-hash directories under a
// function's language directory, returning (overlay_hash, comment) pairs
// with the hash reconstructed from the directory path, never recomputed.
func (s *Store) ListOverlays(hash, lang string) ([]poolerr.Overlay, error) {
	langDir := s.languageDir(hash, lang)
	top, err := os.ReadDir(langDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, poolerr.Wrap(poolerr.IoError, "list "+langDir, err)
	}

	var overlays []poolerr.Overlay
	for _, prefix := range top {
		if !prefix.IsDir() {
			continue
		}
		prefixDir := langDir + "/" + prefix.Name()
		rest, err := os.ReadDir(prefixDir)
		if err != nil {
			continue
		}
		for _, suffix := range rest {
			if !suffix.IsDir() {
				continue
			}
			overlayHash := prefix.Name() + suffix.Name()
			m, err := s.GetOverlay(hash, lang, overlayHash)
			if err != nil {
				continue
			}
			overlays = append(overlays, poolerr.Overlay{OverlayHash: overlayHash, Comment: m.Comment})
		}
	}
	return overlays, nil
}
