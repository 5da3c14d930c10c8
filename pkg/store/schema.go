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

import "github.com/kraklabs/fnpool/pkg/hashing"

// Metadata is object.json's non-hashed envelope (spec.md §6.1).
type Metadata struct {
	Created string `json:"created"`
	Author  string `json:"author"`
}

// ObjectFile is the on-disk shape of object.json. Only NormalizedCode
// participates in the function hash; SchemaVersion, Hash and Metadata are
// envelope fields.
type ObjectFile struct {
	SchemaVersion  int      `json:"schema_version"`
	Hash           string   `json:"hash"`
	NormalizedCode string   `json:"normalized_code"`
	Metadata       Metadata `json:"metadata"`
}

// MappingFile is the on-disk shape of mapping.json: the exact four-field
// overlay object, all of whose fields participate in the overlay hash.
type MappingFile struct {
	Docstring    string            `json:"docstring"`
	NameMapping  map[string]string `json:"name_mapping"`
	AliasMapping map[string]string `json:"alias_mapping"`
	Comment      string            `json:"comment"`
}

func (m MappingFile) toOverlay() hashing.Overlay {
	return hashing.Overlay{
		Docstring:    m.Docstring,
		NameMapping:  m.NameMapping,
		AliasMapping: m.AliasMapping,
		Comment:      m.Comment,
	}
}
