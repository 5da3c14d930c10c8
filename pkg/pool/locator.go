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

package pool

import (
	"regexp"
	"strings"

	"github.com/kraklabs/fnpool/pkg/poolerr"
	"github.com/kraklabs/fnpool/pkg/store"
)

var hashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidateHash enforces the 64-hex-lowercase shape spec.md §6.2 requires of
// both function_hash and overlay_hash.
func ValidateHash(hash string) error {
	if !hashPattern.MatchString(hash) {
		return poolerr.Newf(poolerr.InvalidHash, "hash %q is not 64-hex-lowercase", hash)
	}
	return nil
}

// Locator is a parsed HASH[@LANG[@MHASH]] surface reference.
type Locator struct {
	FunctionHash string
	LanguageTag  string // "" if absent
	OverlayHash  string // "" if absent
}

// ParseLocator parses the HASH[@LANG[@MHASH]] surface syntax (spec.md §6.2).
func ParseLocator(s string) (Locator, error) {
	parts := strings.Split(s, "@")
	if len(parts) == 0 || len(parts) > 3 {
		return Locator{}, poolerr.Newf(poolerr.InvalidLocator, "malformed locator %q", s)
	}

	if err := ValidateHash(parts[0]); err != nil {
		return Locator{}, err
	}
	loc := Locator{FunctionHash: parts[0]}

	if len(parts) >= 2 {
		if err := store.ValidateLanguageTag(parts[1]); err != nil {
			return Locator{}, err
		}
		loc.LanguageTag = parts[1]
	}

	if len(parts) == 3 {
		if err := ValidateHash(parts[2]); err != nil {
			return Locator{}, err
		}
		loc.OverlayHash = parts[2]
	}

	return loc, nil
}
