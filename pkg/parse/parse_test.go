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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/fnpool/pkg/poolerr"
)

func TestParse_SimpleFunction(t *testing.T) {
	u, err := Parse([]byte("def add(a, b):\n    return a + b\n"))
	require.NoError(t, err)
	defer u.Close()

	assert.Empty(t, u.Imports)
	assert.Empty(t, u.Decorators)
	assert.False(t, u.Async)
	require.NotNil(t, u.Function)
	assert.Equal(t, "add", u.Text(u.Function.ChildByFieldName("name").StartByte(), u.Function.ChildByFieldName("name").EndByte()))
}

func TestParse_AsyncFunction(t *testing.T) {
	u, err := Parse([]byte("async def fetch(url):\n    r = await get(url)\n    return r\n"))
	require.NoError(t, err)
	defer u.Close()

	assert.True(t, u.Async)
}

func TestParse_DecoratorsPreservedAsSiblings(t *testing.T) {
	u, err := Parse([]byte("@staticmethod\n@cached\ndef f(x):\n    return x\n"))
	require.NoError(t, err)
	defer u.Close()

	require.Len(t, u.Decorators, 2)
	assert.Equal(t, "@staticmethod", u.Text(u.Decorators[0].StartByte(), u.Decorators[0].EndByte()))
	assert.Equal(t, "@cached", u.Text(u.Decorators[1].StartByte(), u.Decorators[1].EndByte()))
}

func TestParse_Imports(t *testing.T) {
	src := "import os\nfrom bb.pool import object_" + testHash + " as twice\n\ndef f(x):\n    return twice(x)\n"
	u, err := Parse([]byte(src))
	require.NoError(t, err)
	defer u.Close()

	require.Len(t, u.Imports, 2)
	assert.False(t, u.Imports[0].IsFrom)
	assert.Equal(t, "os", u.Imports[0].Module)

	assert.True(t, u.Imports[1].IsFrom)
	assert.Equal(t, "bb.pool", u.Imports[1].Module)
	require.Len(t, u.Imports[1].Names, 1)
	assert.Equal(t, "twice", u.Imports[1].Names[0].Alias)
	assert.Equal(t, "twice", u.Imports[1].Names[0].Bound())
}

func TestParse_InvalidSource(t *testing.T) {
	_, err := Parse([]byte("def f(:\n"))
	require.Error(t, err)
	assert.Equal(t, poolerr.InvalidSource, poolerr.KindOf(err))
}

func TestParse_RejectsMultipleTopLevelFunctions(t *testing.T) {
	_, err := Parse([]byte("def f():\n    pass\n\ndef g():\n    pass\n"))
	require.Error(t, err)
	assert.Equal(t, poolerr.UnsupportedUnit, poolerr.KindOf(err))
}

func TestParse_RejectsClassDefinition(t *testing.T) {
	_, err := Parse([]byte("class Foo:\n    pass\n"))
	require.Error(t, err)
	assert.Equal(t, poolerr.UnsupportedUnit, poolerr.KindOf(err))
}

func TestParse_RejectsNoFunction(t *testing.T) {
	_, err := Parse([]byte("import os\n"))
	require.Error(t, err)
	assert.Equal(t, poolerr.UnsupportedUnit, poolerr.KindOf(err))
}

func TestParse_NestedFunctionIsNotTheTarget(t *testing.T) {
	u, err := Parse([]byte("def outer(x):\n    def inner(y):\n        return y\n    return inner(x)\n"))
	require.NoError(t, err)
	defer u.Close()

	name := u.Function.ChildByFieldName("name")
	assert.Equal(t, "outer", u.Text(name.StartByte(), name.EndByte()))
}

const testHash = "1111111111111111111111111111111111111111111111111111111111111111"[:64]
