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

package denorm

import (
	"strings"

	"github.com/kraklabs/fnpool/pkg/normalize"
	"github.com/kraklabs/fnpool/pkg/parse"
)

// canonicalImport is one of canonical_code's already-sorted, already
// alias-stripped import statements, classified the same way the normalizer
// classifies a contributor's original imports.
type canonicalImport struct {
	isPool bool
	module string
	hash   string // set only when isPool; the bound name is always object_<hash>
	text   string
}

// classifyCanonical partitions canonical_code's imports and collects
// importedNames, the exclusion set every identifier-renaming site must
// respect (spec.md §4.7 step 3's "same excluded-name rules").
func classifyCanonical(u *parse.Unit) (imports []canonicalImport, importedNames map[string]bool) {
	importedNames = make(map[string]bool)

	for _, imp := range u.Imports {
		if imp.IsFrom && imp.Module == normalize.PoolModule && len(imp.Names) == 1 {
			if hash, ok := normalize.PoolObjectHash(imp.Names[0].Name); ok {
				imports = append(imports, canonicalImport{
					isPool: true,
					module: normalize.PoolModule,
					hash:   hash,
					text:   "from " + normalize.PoolModule + " import object_" + hash,
				})
				importedNames["object_"+hash] = true
				continue
			}
		}

		for _, n := range imp.Names {
			importedNames[n.Bound()] = true
		}
		imports = append(imports, canonicalImport{
			isPool: false,
			module: imp.Module,
			text:   strings.TrimSpace(u.Text(imp.Start, imp.End)),
		})
	}

	return imports, importedNames
}
