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

// Package normalize implements spec.md §4.2-§4.4: import classification,
// the canonical-form rewriter, and the deterministic name-mapping builder.
// It turns a *parse.Unit into canonical source text plus the overlay fields
// needed to reconstruct the contributor's original presentation later.
package normalize

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kraklabs/fnpool/pkg/parse"
)

// Result is everything the normalizer produces from one Unit: the canonical
// source text that gets hashed, plus the overlay fields a store operation
// persists alongside it.
type Result struct {
	CanonicalCode string
	Docstring     string
	// NameMapping is the reverse slot->original map (every key is a
	// canonical slot that actually appears in CanonicalCode).
	NameMapping map[string]string
	// AliasMapping is hash->alias-or-default, keyed without the "object_"
	// prefix, covering every pool import this unit uses.
	AliasMapping map[string]string
}

// Normalize applies the full canonical rewrite to a parsed unit.
func Normalize(u *parse.Unit) (*Result, error) {
	imports, importedNames, poolAliases := classify(u)
	sortImports(imports)

	excluded := make(map[string]bool, len(builtinNames)+len(importedNames)+len(poolAliases)+1)
	for k := range builtinNames {
		excluded[k] = true
	}
	for k := range importedNames {
		excluded[k] = true
	}
	for k := range poolAliases {
		excluded[k] = true
	}
	excluded[OuterSlot] = true

	// Slot-assignment traversal visits the function node before its
	// decorators, even though decorators render first in source, so that
	// the function's own name always claims slot 0 (spec.md §4.4's hard
	// invariant) regardless of identifiers a decorator might introduce.
	// Byte ranges recorded during this walk are position-tagged, so
	// visiting roots out of textual order has no effect on where edits
	// land; only the slot *numbering* depends on this order.
	slotRoots := make([]*sitter.Node, 0, len(u.Decorators)+1)
	slotRoots = append(slotRoots, u.Function)
	slotRoots = append(slotRoots, u.Decorators...)

	occurrences, rewrites := collectSites(slotRoots, u.Source, excluded, poolAliases)

	// A function named after a builtin or an imported name is skipped by the
	// walk above; its definition-site name still claims slot 0, while other
	// uses of that name keep referring to the builtin or import.
	if nameNode := u.Function.ChildByFieldName("name"); nameNode != nil {
		if name := nodeText(nameNode, u.Source); excluded[name] {
			occurrences = append([]occurrence{{start: nameNode.StartByte(), end: nameNode.EndByte(), name: name}}, occurrences...)
		}
	}

	// The edit region itself must span from the first root in *textual*
	// order (a decorator, if any) through the end of the function.
	roots := make([]*sitter.Node, 0, len(u.Decorators)+1)
	roots = append(roots, u.Decorators...)
	roots = append(roots, u.Function)

	forward := make(map[string]int)
	var order []string
	for _, o := range occurrences {
		if _, ok := forward[o.name]; !ok {
			forward[o.name] = len(order)
			order = append(order, o.name)
		}
	}

	var edits []edit
	for _, o := range occurrences {
		edits = append(edits, edit{Start: o.start, End: o.end, Text: slotName(forward[o.name])})
	}
	for _, r := range rewrites {
		edits = append(edits, edit{Start: r.start, End: r.end, Text: "object_" + r.hash + "." + OuterSlot})
	}

	docstring := ""
	if stmt := findDocstring(u.Function); stmt != nil {
		docstring = docstringText(u.Text(stmt.Child(0).StartByte(), stmt.Child(0).EndByte()))
		start, end := docstringRemovalSpan(stmt, u.Source)
		edits = append(edits, edit{Start: start, End: end, Text: ""})
	}

	regionStart := roots[0].StartByte()
	regionEnd := u.Function.EndByte()
	body := strings.TrimRight(applyEdits(u.Source, regionStart, regionEnd, edits), " \t\r\n")
	body += "\n"

	var codeBuilder strings.Builder
	if len(imports) > 0 {
		texts := make([]string, len(imports))
		for i, imp := range imports {
			texts[i] = imp.text
		}
		codeBuilder.WriteString(strings.Join(texts, "\n"))
		codeBuilder.WriteString("\n\n")
	}
	codeBuilder.WriteString(body)

	nameMapping := make(map[string]string, len(order))
	for i, name := range order {
		nameMapping[slotName(i)] = name
	}

	aliasMapping := make(map[string]string, len(poolAliases))
	for _, imp := range imports {
		if imp.isPool {
			aliasMapping[imp.hash] = imp.aliasOr
		}
	}

	return &Result{
		CanonicalCode: codeBuilder.String(),
		Docstring:     docstring,
		NameMapping:   nameMapping,
		AliasMapping:  aliasMapping,
	}, nil
}
