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
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kraklabs/fnpool/pkg/normalize"
)

// callSite is a call or decorator whose callable head is the canonical
// pool-attribute form `object_<hash>._ns_v_0`, found as a single contiguous
// span so it can be replaced wholesale with the bare alias text (spec.md
// §4.7 step 5).
type callSite struct {
	start, end uint32
	hash       string
}

// walkDenorm mirrors normalize's traversal exactly (same special-casing of
// attribute/keyword_argument node shapes) so "every identifier site the
// normalizer would have rewritten" is visited in precisely the same set,
// just with slot names looked up in the reverse map instead of original
// names looked up in a forward one.
func walkDenorm(node *sitter.Node, source []byte, excluded map[string]bool, reverse map[string]string, renames *[]renameSite, calls *[]callSite) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "attribute":
		// Only the "object" side can contain a renameable identifier; the
		// "attribute" field is a fixed member name, never a variable.
		walkDenorm(node.ChildByFieldName("object"), source, excluded, reverse, renames, calls)
		return

	case "keyword_argument":
		walkDenorm(node.ChildByFieldName("value"), source, excluded, reverse, renames, calls)
		return

	case "call":
		detectCallSite(node, source, calls)

	case "decorator":
		detectCallSite(node, source, calls)

	case "identifier":
		name := nodeText(node, source)
		if !excluded[name] {
			if original, ok := reverse[name]; ok {
				*renames = append(*renames, renameSite{start: node.StartByte(), end: node.EndByte(), name: original})
			}
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkDenorm(node.Child(i), source, excluded, reverse, renames, calls)
	}
}

// renameSite is one identifier occurrence to restore to its original name.
type renameSite struct {
	start, end uint32
	name       string
}

// detectCallSite records a callSite when node's callable head (a call's
// function, or a decorator's target) is exactly `object_<hash>.<OuterSlot>`.
// Any other shape (a bare name, a deeper attribute chain) is left alone: it
// was never produced by the normalizer's rewrite and so isn't this
// package's concern to undo.
func detectCallSite(node *sitter.Node, source []byte, calls *[]callSite) {
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
	if target == nil || target.Type() != "attribute" {
		return
	}
	if hash, ok := poolAttributeHash(target, source); ok {
		*calls = append(*calls, callSite{start: target.StartByte(), end: target.EndByte(), hash: hash})
	}
}

// poolAttributeHash reports whether node is exactly `object_<hash>.<OuterSlot>`.
func poolAttributeHash(node *sitter.Node, source []byte) (string, bool) {
	obj := node.ChildByFieldName("object")
	attr := node.ChildByFieldName("attribute")
	if obj == nil || attr == nil || obj.Type() != "identifier" {
		return "", false
	}
	if nodeText(attr, source) != normalize.OuterSlot {
		return "", false
	}
	return normalize.PoolObjectHash(nodeText(obj, source))
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
