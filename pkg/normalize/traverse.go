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
	sitter "github.com/smacker/go-tree-sitter"
)

// occurrence is one identifier-leaf site eligible for slot renaming.
type occurrence struct {
	start, end uint32
	name       string
}

// rewriteSite is a callable-head span (a call's function, or a decorator's
// target) that names a pool alias and must become an attribute access on
// the referenced hash, per spec.md §4.3 step 4 and this repository's
// decorator policy (SPEC_FULL.md §0).
type rewriteSite struct {
	start, end uint32
	hash       string
}

// collectSites walks every root in the order given (Normalize passes the
// function definition first, then its decorators) depth-first, pre-order,
// in definitional child order,
// gathering identifier occurrences and pool-call/decorator rewrite sites in
// one deterministic pass. This single traversal is also what the
// name-mapping builder uses for slot assignment, so "encountered order"
// here and "encountered order" there are the same order by construction.
func collectSites(roots []*sitter.Node, source []byte, excluded map[string]bool, poolAliases map[string]string) ([]occurrence, []rewriteSite) {
	var occ []occurrence
	var rew []rewriteSite
	for _, root := range roots {
		walkSites(root, source, excluded, poolAliases, &occ, &rew)
	}
	return occ, rew
}

func walkSites(node *sitter.Node, source []byte, excluded map[string]bool, poolAliases map[string]string, occ *[]occurrence, rew *[]rewriteSite) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "attribute":
		// The "attribute" field (the member name) is never a variable
		// reference; only the "object" side can contain renameable names.
		walkSites(node.ChildByFieldName("object"), source, excluded, poolAliases, occ, rew)
		return

	case "keyword_argument":
		// The "name" field is the callee's parameter name, not a local
		// variable; only the "value" side can contain renameable names.
		walkSites(node.ChildByFieldName("value"), source, excluded, poolAliases, occ, rew)
		return

	case "call":
		detectRewrite(node, source, poolAliases, rew)

	case "decorator":
		detectRewrite(node, source, poolAliases, rew)

	case "identifier":
		name := nodeText(node, source)
		if !excluded[name] {
			*occ = append(*occ, occurrence{start: node.StartByte(), end: node.EndByte(), name: name})
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkSites(node.Child(i), source, excluded, poolAliases, occ, rew)
	}
}

// detectRewrite finds the bare callable identifier of a call or decorator
// node, if any, and records a rewrite site when that identifier is a pool
// alias. Both a direct `@name`/`name(...)` and a called decorator
// `@name(...)` resolve to the same identifier lookup.
func detectRewrite(node *sitter.Node, source []byte, poolAliases map[string]string, rew *[]rewriteSite) {
	var target *sitter.Node
	if node.Type() == "call" {
		target = node.ChildByFieldName("function")
	} else {
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Type() != "@" {
				target = child
				break
			}
		}
	}
	ident := resolveBareIdentifier(target)
	if ident == nil {
		return
	}
	name := nodeText(ident, source)
	if hash, ok := poolAliases[name]; ok {
		*rew = append(*rew, rewriteSite{start: ident.StartByte(), end: ident.EndByte(), hash: hash})
	}
}

// resolveBareIdentifier peels through a called decorator (`@name(args)`) to
// the bare name underneath, or returns the node itself if it already is a
// bare name. Any other shape (attribute access, subscript, ...) cannot name
// a pool alias directly and is left alone.
func resolveBareIdentifier(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case "identifier":
		return node
	case "call":
		return resolveBareIdentifier(node.ChildByFieldName("function"))
	default:
		return nil
	}
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
