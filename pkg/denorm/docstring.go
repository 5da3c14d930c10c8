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

	sitter "github.com/smacker/go-tree-sitter"
)

// bodyIndent returns the whitespace prefix of the outer function body's
// first statement, used to indent a restored docstring at the same depth.
// Canonical code always has a non-empty body (the normalizer never strips
// the last statement), so there is always a statement to measure against.
func bodyIndent(funcNode *sitter.Node, source []byte) string {
	body := funcNode.ChildByFieldName("body")
	first := body.Child(0)
	start := first.StartByte()
	lineStart := start
	for lineStart > 0 && source[lineStart-1] != '\n' {
		lineStart--
	}
	return string(source[lineStart:start])
}

// docstringLiteral renders text as a triple-double-quoted string literal,
// escaping the one sequence ("""") that would otherwise terminate it early.
func docstringLiteral(text string) string {
	escaped := strings.ReplaceAll(text, `"""`, `\"\"\"`)
	return `"""` + escaped + `"""`
}
