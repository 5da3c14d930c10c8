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

package parse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/kraklabs/fnpool/pkg/poolerr"
)

// parseImportStatement handles `import a`, `import a.b`, `import a as b`,
// and comma-separated forms of any of those.
func parseImportStatement(node *sitter.Node, source []byte) (Import, error) {
	imp := Import{Start: node.StartByte(), End: node.EndByte(), IsFrom: false}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "dotted_name", "identifier":
			imp.Names = append(imp.Names, ImportedName{
				Name:      string(source[child.StartByte():child.EndByte()]),
				NameStart: child.StartByte(),
				NameEnd:   child.EndByte(),
			})
		case "aliased_import":
			name, alias, nameRange, aliasRange, err := parseAliasedImport(child, source)
			if err != nil {
				return Import{}, err
			}
			imp.Names = append(imp.Names, ImportedName{
				Name: name, Alias: alias,
				NameStart: nameRange[0], NameEnd: nameRange[1],
				AliasStart: aliasRange[0], AliasEnd: aliasRange[1],
			})
		}
	}
	if len(imp.Names) == 0 {
		return Import{}, poolerr.New(poolerr.InvalidSource, "import statement binds no names")
	}
	imp.Module = imp.Names[0].Name
	return imp, nil
}

// parseImportFromStatement handles `from a.b import c`, `from a import c as
// d, e`, and `from a import *`.
func parseImportFromStatement(node *sitter.Node, source []byte) (Import, error) {
	imp := Import{Start: node.StartByte(), End: node.EndByte(), IsFrom: true}

	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return Import{}, poolerr.New(poolerr.InvalidSource, "from-import has no module name")
	}
	imp.Module = string(source[moduleNode.StartByte():moduleNode.EndByte()])

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == moduleNode {
			continue
		}
		switch child.Type() {
		case "dotted_name", "identifier":
			imp.Names = append(imp.Names, ImportedName{
				Name:      string(source[child.StartByte():child.EndByte()]),
				NameStart: child.StartByte(),
				NameEnd:   child.EndByte(),
			})
		case "aliased_import":
			name, alias, nameRange, aliasRange, err := parseAliasedImport(child, source)
			if err != nil {
				return Import{}, err
			}
			imp.Names = append(imp.Names, ImportedName{
				Name: name, Alias: alias,
				NameStart: nameRange[0], NameEnd: nameRange[1],
				AliasStart: aliasRange[0], AliasEnd: aliasRange[1],
			})
		case "wildcard_import":
			// `from x import *` binds no statically-known name; left
			// unrenamed by construction since it never appears in
			// imported_names.
		}
	}
	if len(imp.Names) == 0 {
		// Wildcard-only import: still a structurally valid statement.
		return imp, nil
	}
	return imp, nil
}

func parseAliasedImport(node *sitter.Node, source []byte) (name, alias string, nameRange, aliasRange [2]uint32, err error) {
	nameNode := node.ChildByFieldName("name")
	aliasNode := node.ChildByFieldName("alias")
	if nameNode == nil || aliasNode == nil {
		return "", "", nameRange, aliasRange, poolerr.New(poolerr.InvalidSource, "malformed aliased import")
	}
	name = string(source[nameNode.StartByte():nameNode.EndByte()])
	alias = string(source[aliasNode.StartByte():aliasNode.EndByte()])
	nameRange = [2]uint32{nameNode.StartByte(), nameNode.EndByte()}
	aliasRange = [2]uint32{aliasNode.StartByte(), aliasNode.EndByte()}
	return name, alias, nameRange, aliasRange, nil
}
