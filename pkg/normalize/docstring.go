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
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// findDocstring returns the bare string-literal statement that is the first
// statement of a function body, or nil if the body doesn't start with one.
func findDocstring(funcNode *sitter.Node) *sitter.Node {
	body := funcNode.ChildByFieldName("body")
	if body == nil || body.ChildCount() == 0 {
		return nil
	}
	first := body.Child(0)
	if first.Type() != "expression_statement" || first.ChildCount() != 1 {
		return nil
	}
	if first.Child(0).Type() != "string" {
		return nil
	}
	return first
}

// docstringText strips the quote delimiters (and any string prefix letters)
// from a string-literal statement's source text, returning its literal
// inner content.
func docstringText(stmt string) string {
	i := 0
	for i < len(stmt) && isStringPrefix(stmt[i]) {
		i++
	}
	rest := stmt[i:]
	if strings.HasPrefix(rest, `"""`) && strings.HasSuffix(rest, `"""`) && len(rest) >= 6 {
		return rest[3 : len(rest)-3]
	}
	if strings.HasPrefix(rest, "'''") && strings.HasSuffix(rest, "'''") && len(rest) >= 6 {
		return rest[3 : len(rest)-3]
	}
	if len(rest) >= 2 {
		return rest[1 : len(rest)-1]
	}
	return ""
}

func isStringPrefix(c byte) bool {
	switch c {
	case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		return true
	default:
		return false
	}
}

// docstringRemovalSpan returns the byte range of the full source line(s)
// occupied by stmt, including leading indentation and the trailing newline,
// so removing it leaves no blank artifact behind.
func docstringRemovalSpan(stmt *sitter.Node, source []byte) (uint32, uint32) {
	start := stmt.StartByte()
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	end := stmt.EndByte()
	for end < uint32(len(source)) && source[end] != '\n' {
		end++
	}
	if end < uint32(len(source)) {
		end++
	}
	return start, end
}
