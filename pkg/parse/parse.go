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

// Package parse turns Python source text into a single-function Unit: an
// ordered list of top-level import statements plus the one top-level
// function definition. Imports are captured as plain records with byte
// ranges; the function and its decorators stay live *sitter.Node values that
// pkg/normalize and pkg/denorm walk directly.
package parse

import (
	"context"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/kraklabs/fnpool/pkg/poolerr"
)

// parserPool hands out *sitter.Parser instances preconfigured for Python.
// Parsers are not safe for concurrent use, so every call to Parse borrows
// one, uses it, and returns it.
var parserPool = sync.Pool{
	New: func() any {
		p := sitter.NewParser()
		p.SetLanguage(python.GetLanguage())
		return p
	},
}

// Import is one top-level import statement, captured structurally rather
// than as raw node references: pkg/normalize classifies and reorders these
// without ever walking tree-sitter nodes itself.
type Import struct {
	// Start/End are byte offsets into Source spanning the whole statement,
	// including any leading "from ... " text.
	Start, End uint32
	// IsFrom distinguishes `import x` from `from x import y`.
	IsFrom bool
	// Module is the dotted module path: the only name for `import x`, or
	// the "from" target for `from x import y`.
	Module string
	// Names is the list of names this statement binds. For `import a, b`
	// each is a plain name; for `from x import a as b` each carries its
	// own alias.
	Names []ImportedName
}

// ImportedName is one name bound by an import statement.
type ImportedName struct {
	// Name is the dotted or simple name as written (e.g. "os.path" for
	// `import os.path`, "object_<hex>" for a pool import with no alias).
	Name string
	// Alias is the local alias ("" if none was given).
	Alias string
	// NameStart/NameEnd bound just the bare name token (post module-prefix)
	// so pool-import alias stripping can replace only the alias clause.
	NameStart, NameEnd uint32
	// AliasStart/AliasEnd bound the alias identifier, if Alias != "".
	AliasStart, AliasEnd uint32
}

// Bound returns the name introduced into scope by this import: the alias
// if present, otherwise the last dotted component of Name.
func (n ImportedName) Bound() string {
	if n.Alias != "" {
		return n.Alias
	}
	return lastComponent(n.Name)
}

// Unit is a single parsed source function: its imports, its target function
// definition, and any decorators applied to it, plus the raw source bytes
// every byte range in this tree is relative to. Decorators are siblings of
// Function inside the source's decorated_definition node, not descendants
// of it, so they are captured separately rather than dropped.
//
// Function and Decorators are live *sitter.Node values backed by tree, which
// Parse keeps open rather than closing before it returns them. Every caller
// must call Close once it is done traversing Function/Decorators (directly,
// or via pkg/normalize or pkg/denorm) — after Close, those nodes must not be
// touched again.
type Unit struct {
	Source     []byte
	Imports    []Import
	Decorators []*sitter.Node
	Function   *sitter.Node
	Async      bool
	tree       *sitter.Tree
}

// Close releases the tree-sitter tree backing Function and Decorators.
func (u *Unit) Close() {
	u.tree.Close()
}

// Parse builds a Unit from Python source text. The caller owns the returned
// Unit's tree and must call Unit.Close once finished with it.
//
// Fails with InvalidSource if the text does not parse to a syntactically
// valid tree, and with UnsupportedUnit if the top level contains anything
// other than import statements and exactly one function definition (an
// ordinary def or an async def, optionally decorated).
func Parse(source []byte) (unit *Unit, err error) {
	parserAny := parserPool.Get()
	parser, ok := parserAny.(*sitter.Parser)
	if !ok {
		return nil, poolerr.New(poolerr.IoError, "tree-sitter parser pool returned unexpected type")
	}
	defer parserPool.Put(parser)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, poolerr.Wrap(poolerr.InvalidSource, "tree-sitter parse failed", err)
	}
	// Every return below this point that does not hand back a *Unit must
	// still close tree itself, since no Unit.Close will ever be called for
	// it; the final successful return clears closeTree so ownership passes
	// to the caller.
	closeTree := true
	defer func() {
		if closeTree {
			tree.Close()
		}
	}()

	root := tree.RootNode()
	if root.HasError() && countErrorNodes(root) > 0 {
		return nil, poolerr.New(poolerr.InvalidSource, "source contains syntax errors")
	}

	var imports []Import
	var decorators []*sitter.Node
	var funcNode *sitter.Node
	var isAsync bool

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "import_statement":
			imp, err := parseImportStatement(child, source)
			if err != nil {
				return nil, err
			}
			imports = append(imports, imp)
		case "import_from_statement":
			imp, err := parseImportFromStatement(child, source)
			if err != nil {
				return nil, err
			}
			imports = append(imports, imp)
		case "comment":
			// Comments between imports/around the function are not part
			// of the structural unit; dropped, not rejected.
		case "decorated_definition":
			if funcNode != nil {
				return nil, poolerr.New(poolerr.UnsupportedUnit, "top level defines more than one function")
			}
			decos, fn, async, err := unwrapDecorated(child)
			if err != nil {
				return nil, err
			}
			decorators, funcNode, isAsync = decos, fn, async
		case "function_definition":
			if funcNode != nil {
				return nil, poolerr.New(poolerr.UnsupportedUnit, "top level defines more than one function")
			}
			funcNode = child
			isAsync = isAsyncFunctionDef(child, source)
		default:
			return nil, poolerr.Newf(poolerr.UnsupportedUnit, "unsupported top-level statement %q", child.Type())
		}
	}

	if funcNode == nil {
		return nil, poolerr.New(poolerr.UnsupportedUnit, "top level defines no function")
	}

	closeTree = false
	return &Unit{Source: source, Imports: imports, Decorators: decorators, Function: funcNode, Async: isAsync, tree: tree}, nil
}

// unwrapDecorated validates a decorated_definition wraps exactly one
// function_definition (class definitions are not a supported unit) and
// returns its decorator nodes, in source order, plus the inner function.
func unwrapDecorated(node *sitter.Node) ([]*sitter.Node, *sitter.Node, bool, error) {
	var decorators []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "decorator":
			decorators = append(decorators, child)
		case "function_definition":
			return decorators, child, isAsyncFunctionDef(child, nil), nil
		}
	}
	return nil, nil, false, poolerr.New(poolerr.UnsupportedUnit, "decorated top-level definition is not a function")
}

// isAsyncFunctionDef reports whether a function_definition node carries the
// "async" marker. tree-sitter-python includes "async" as a direct token
// child of the function_definition node preceding "def", so a type scan
// over direct children is robust across grammar versions that might nest
// it differently than a simple text-prefix check would assume.
func isAsyncFunctionDef(node *sitter.Node, _ []byte) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "async" {
			return true
		}
	}
	return false
}

// countErrorNodes counts ERROR nodes in the tree.
func countErrorNodes(node *sitter.Node) int {
	count := 0
	if node.Type() == "ERROR" {
		count++
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		count += countErrorNodes(node.Child(i))
	}
	return count
}

func lastComponent(dotted string) string {
	last := dotted
	for i := len(dotted) - 1; i >= 0; i-- {
		if dotted[i] == '.' {
			last = dotted[i+1:]
			break
		}
	}
	return last
}

// Text returns the exact original source slice for a byte range.
func (u *Unit) Text(start, end uint32) string {
	return string(u.Source[start:end])
}
