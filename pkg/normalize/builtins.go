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

// builtinNames is the fixed set of Python keywords and common builtins that
// are never renamed, regardless of where they occur. Kept as a constant
// value-copyable map built once, per spec.md §9's "excluded-name set"
// redesign note.
var builtinNames = map[string]bool{
	"False": true, "None": true, "True": true, "and": true,
	"as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true,
	"del": true, "elif": true, "else": true, "except": true,
	"finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true,
	"while": true, "with": true, "yield": true,

	"print": true, "len": true, "range": true, "str": true,
	"int": true, "float": true, "list": true, "dict": true,
	"set": true, "tuple": true, "bool": true, "bytes": true,
	"type": true, "isinstance": true, "issubclass": true,
	"hasattr": true, "getattr": true, "setattr": true, "delattr": true,
	"open": true, "input": true, "super": true, "self": true, "cls": true,
	"enumerate": true, "zip": true, "map": true, "filter": true,
	"sorted": true, "reversed": true, "sum": true, "min": true, "max": true,
	"abs": true, "round": true, "all": true, "any": true, "iter": true,
	"next": true, "repr": true, "format": true, "id": true, "hash": true,
	"vars": true, "dir": true, "callable": true, "staticmethod": true,
	"classmethod": true, "property": true, "object": true,
	"Exception": true, "BaseException": true, "ValueError": true,
	"TypeError": true, "KeyError": true, "IndexError": true,
	"AttributeError": true, "StopIteration": true, "RuntimeError": true,
	"NotImplementedError": true, "NotImplemented": true, "Ellipsis": true,
}

// BuiltinNames exposes the excluded-builtins set for pkg/denorm, which must
// apply the identical exclusion rule in reverse.
func BuiltinNames() map[string]bool {
	return builtinNames
}
