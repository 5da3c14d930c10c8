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

// Package hashing computes the two content hashes the pool is addressed by:
// the function hash of canonical source text, and the overlay hash of a
// canonical-JSON presentation object.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
)

// FunctionHash returns the 64-hex-lowercase SHA-256 of canonical source
// text's UTF-8 bytes (spec.md §4.5).
func FunctionHash(canonicalCode string) string {
	sum := sha256.Sum256([]byte(canonicalCode))
	return hex.EncodeToString(sum[:])
}

// Overlay is the exact four-field shape that is hashed and stored; field
// order here is irrelevant to the hash (CanonicalJSON sorts keys), but
// matches mapping.json's documented shape (spec.md §6.1).
type Overlay struct {
	Docstring    string            `json:"docstring"`
	NameMapping  map[string]string `json:"name_mapping"`
	AliasMapping map[string]string `json:"alias_mapping"`
	Comment      string            `json:"comment"`
}

// OverlayHash returns the 64-hex-lowercase SHA-256 of the canonical-JSON
// serialization of o's four fields (spec.md §4.5, §6.1).
func OverlayHash(o Overlay) (string, error) {
	data, err := CanonicalJSON(o)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
