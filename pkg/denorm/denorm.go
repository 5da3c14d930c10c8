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

// Package denorm implements spec.md §4.7: the inverse of pkg/normalize. It
// takes a function's canonical_code plus its stored overlay fields
// (docstring, reverse name mapping, alias mapping) and reconstructs a
// presentable source text in a contributor's chosen naming and import
// style.
package denorm

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kraklabs/fnpool/pkg/normalize"
	"github.com/kraklabs/fnpool/pkg/parse"
	"github.com/kraklabs/fnpool/pkg/splice"
)

// Overlay bundles the stored presentation fields a denormalize call needs,
// mirroring hashing.Overlay's shape.
type Overlay struct {
	Docstring    string
	NameMapping  map[string]string // slot -> original
	AliasMapping map[string]string // hash -> alias-or-default
}

// Denormalize reconstructs source text from canonical_code and an overlay.
// It is the inverse of normalize.Normalize: for any Unit u, given
// r := normalize.Normalize(u), Denormalize(r.CanonicalCode, overlayOf(r))
// parses and re-normalizes to the same canonical_code (the round-trip law
// of spec.md §4.7).
func Denormalize(canonicalCode string, overlay Overlay) (string, error) {
	u, err := parse.Parse([]byte(canonicalCode))
	if err != nil {
		return "", err
	}
	defer u.Close()

	imports, importedNames := classifyCanonical(u)

	excluded := make(map[string]bool, len(normalize.BuiltinNames())+len(importedNames))
	for k := range normalize.BuiltinNames() {
		excluded[k] = true
	}
	for k := range importedNames {
		excluded[k] = true
	}

	roots := make([]*sitter.Node, 0, len(u.Decorators)+1)
	roots = append(roots, u.Decorators...)
	roots = append(roots, u.Function)

	var renames []renameSite
	var calls []callSite
	for _, root := range roots {
		walkDenorm(root, u.Source, excluded, overlay.NameMapping, &renames, &calls)
	}

	var edits []splice.Edit
	for _, r := range renames {
		edits = append(edits, splice.Edit{Start: r.start, End: r.end, Text: r.name})
	}
	for _, c := range calls {
		bare := overlay.AliasMapping[c.hash]
		if bare == "" {
			bare = "object_" + c.hash
		}
		edits = append(edits, splice.Edit{Start: c.start, End: c.end, Text: bare})
	}

	if overlay.Docstring != "" {
		indent := bodyIndent(u.Function, u.Source)
		first := u.Function.ChildByFieldName("body").Child(0)
		text := docstringLiteral(overlay.Docstring) + "\n" + indent
		edits = append(edits, splice.Edit{Start: first.StartByte(), End: first.StartByte(), Text: text})
	}

	regionStart := roots[0].StartByte()
	regionEnd := u.Function.EndByte()
	body := strings.TrimRight(splice.Apply(u.Source, regionStart, regionEnd, edits), " \t\r\n")
	body += "\n"

	var out strings.Builder
	if len(imports) > 0 {
		texts := make([]string, len(imports))
		for i, imp := range imports {
			texts[i] = renderImport(imp, overlay.AliasMapping)
		}
		out.WriteString(strings.Join(texts, "\n"))
		out.WriteString("\n\n")
	}
	out.WriteString(body)

	return out.String(), nil
}

// renderImport restores a canonical pool import's "as <alias>" clause when
// the overlay's alias differs from the bound default, per spec.md §4.7
// step 4. External imports pass through unchanged.
func renderImport(imp canonicalImport, aliasMapping map[string]string) string {
	if !imp.isPool {
		return imp.text
	}
	alias := aliasMapping[imp.hash]
	if alias == "" || alias == "object_"+imp.hash {
		return imp.text
	}
	return imp.text + " as " + alias
}
