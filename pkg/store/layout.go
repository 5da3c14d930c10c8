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

// Package store implements the on-disk content-addressed layout of
// spec.md §4.6/§4.8: a two-level hash fan-out directory tree, atomic
// temp-write-then-rename file creation, and schema validation.
package store

import "path/filepath"

const (
	SchemaVersion = 1

	objectFileName  = "object.json"
	mappingFileName = "mapping.json"
)

// Store holds a single filesystem root all CAS paths are resolved under.
type Store struct {
	Root string
}

// New returns a Store rooted at root. The directory need not already exist;
// it is created on first write.
func New(root string) *Store {
	return &Store{Root: root}
}

// functionDir is <root>/pool/<h[:2]>/<h[2:]>.
func (s *Store) functionDir(hash string) string {
	return filepath.Join(s.Root, "pool", hash[:2], hash[2:])
}

// objectPath is <root>/pool/<h[:2]>/<h[2:]>/object.json.
func (s *Store) objectPath(hash string) string {
	return filepath.Join(s.functionDir(hash), objectFileName)
}

// languageDir is <root>/pool/<h[:2]>/<h[2:]>/<lang>.
func (s *Store) languageDir(hash, lang string) string {
	return filepath.Join(s.functionDir(hash), lang)
}

// overlayDir is <root>/pool/<h[:2]>/<h[2:]>/<lang>/<m[:2]>/<m[2:]>.
func (s *Store) overlayDir(hash, lang, overlayHash string) string {
	return filepath.Join(s.languageDir(hash, lang), overlayHash[:2], overlayHash[2:])
}

// mappingPath is .../<lang>/<m[:2]>/<m[2:]>/mapping.json.
func (s *Store) mappingPath(hash, lang, overlayHash string) string {
	return filepath.Join(s.overlayDir(hash, lang, overlayHash), mappingFileName)
}
