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

package normalize

import (
	"sort"
	"strings"

	"github.com/kraklabs/fnpool/pkg/parse"
)

// classifiedImport is one source import statement after pool/external
// classification, ready for sorting and rendering (spec.md §4.2-§4.3 steps
// 1-2).
type classifiedImport struct {
	isPool  bool
	module  string
	names   []string // bound names, for sort key + imported_names
	hash    string   // set only when isPool
	aliasOr string   // alias if given, else the default bound name; set only when isPool
	text    string   // rendered canonical text
}

// classify partitions a Unit's imports into pool and external classes and
// collects the two name sets spec.md §4.2 defines.
//
// Returns the classified imports (unsorted), the imported_names set, and
// pool_aliases: a mapping from every name that can appear as a bare
// callable/decorator head (alias, or bare object_<hex> if unaliased) to the
// referenced hash.
func classify(u *parse.Unit) (imports []classifiedImport, importedNames map[string]bool, poolAliases map[string]string) {
	importedNames = make(map[string]bool)
	poolAliases = make(map[string]string)

	for _, imp := range u.Imports {
		if imp.IsFrom && imp.Module == PoolModule && len(imp.Names) == 1 {
			if hash, ok := PoolObjectHash(imp.Names[0].Name); ok {
				alias := imp.Names[0].Alias
				boundDefault := "object_" + hash
				aliasOr := alias
				if aliasOr == "" {
					aliasOr = boundDefault
				}
				imports = append(imports, classifiedImport{
					isPool:  true,
					module:  PoolModule,
					names:   []string{boundDefault},
					hash:    hash,
					aliasOr: aliasOr,
					text:    "from " + PoolModule + " import object_" + hash,
				})
				importedNames[aliasOr] = true
				poolAliases[aliasOr] = hash
				continue
			}
		}

		// External import: preserve verbatim, collect bound names.
		names := make([]string, 0, len(imp.Names))
		for _, n := range imp.Names {
			bound := n.Bound()
			names = append(names, bound)
			importedNames[bound] = true
		}
		imports = append(imports, classifiedImport{
			isPool: false,
			module: imp.Module,
			names:  names,
			text:   strings.TrimSpace(u.Text(imp.Start, imp.End)),
		})
	}

	return imports, importedNames, poolAliases
}

// sortImports orders imports lexicographically by module path, then by
// imported-name list, per spec.md §4.3 step 1.
func sortImports(imports []classifiedImport) {
	sort.SliceStable(imports, func(i, j int) bool {
		a, b := imports[i], imports[j]
		if a.module != b.module {
			return a.module < b.module
		}
		return strings.Join(a.names, ",") < strings.Join(b.names, ",")
	})
}

// PoolObjectHash reports whether name has the mandatory "object_" prefix
// followed by exactly 64 lowercase hex digits, returning the hash payload.
// Exported so pkg/denorm can recognize the same bound-name shape when
// reversing a normalized import.
func PoolObjectHash(name string) (string, bool) {
	const prefix = "object_"
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	hash := name[len(prefix):]
	if len(hash) != 64 {
		return "", false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return "", false
		}
	}
	return hash, true
}
