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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/fnpool/pkg/parse"
)

func normalizeSource(t *testing.T, src string) *Result {
	t.Helper()
	u, err := parse.Parse([]byte(src))
	require.NoError(t, err)
	defer u.Close()
	r, err := Normalize(u)
	require.NoError(t, err)
	return r
}

// Scenario A: cross-language identity (spec.md §8).
func TestNormalize_ScenarioA_CrossLanguageIdentity(t *testing.T) {
	eng := normalizeSource(t, "def add(a, b):\n    \"\"\"Add two numbers\"\"\"\n    return a + b\n")
	fra := normalizeSource(t, "def additionner(x, y):\n    \"\"\"Additionne deux nombres\"\"\"\n    return x + y\n")

	const want = "def _bb_v_0(_bb_v_1, _bb_v_2):\n    return _bb_v_1 + _bb_v_2\n"
	assert.Equal(t, want, eng.CanonicalCode)
	assert.Equal(t, want, fra.CanonicalCode)

	assert.Equal(t, "Add two numbers", eng.Docstring)
	assert.Equal(t, "Additionne deux nombres", fra.Docstring)

	assert.Equal(t, map[string]string{"_bb_v_0": "add", "_bb_v_1": "a", "_bb_v_2": "b"}, eng.NameMapping)
	assert.Equal(t, map[string]string{"_bb_v_0": "additionner", "_bb_v_1": "x", "_bb_v_2": "y"}, fra.NameMapping)
}

// Scenario B: pool reference rewriting (spec.md §8).
func TestNormalize_ScenarioB_PoolReference(t *testing.T) {
	hash := strings.Repeat("a", 64)
	src := "from bb.pool import object_" + hash + " as twice\n\n" +
		"def double_all(xs):\n    \"\"\"Double each element\"\"\"\n    return [twice(x) for x in xs]\n"

	r := normalizeSource(t, src)

	assert.Contains(t, r.CanonicalCode, "from bb.pool import object_"+hash+"\n")
	assert.NotContains(t, r.CanonicalCode, "as twice")
	assert.Contains(t, r.CanonicalCode, "object_"+hash+"."+OuterSlot+"(")
	assert.NotContains(t, r.CanonicalCode, "twice(")

	assert.Equal(t, map[string]string{hash: "twice"}, r.AliasMapping)
}

// Scenario D: async functions preserve their marker and the await keyword;
// the free variable "get" (not imported, not locally bound) is slot-assigned
// like any other user-defined name, per this repository's resolution of
// spec.md §9's free-variable open question (SPEC_FULL.md §0).
func TestNormalize_ScenarioD_AsyncPreserved(t *testing.T) {
	r := normalizeSource(t, "async def fetch(url):\n    \"\"\"Fetch\"\"\"\n    r = await get(url)\n    return r\n")

	assert.True(t, strings.HasPrefix(r.CanonicalCode, "async def "+OuterSlot+"("))
	assert.Contains(t, r.CanonicalCode, "await ")

	var gotGet bool
	for _, original := range r.NameMapping {
		if original == "get" {
			gotGet = true
		}
	}
	assert.True(t, gotGet, "free variable %q should be slot-assigned", "get")
}

func TestNormalize_DecoratorReferencingPoolImportIsRewritten(t *testing.T) {
	hash := strings.Repeat("b", 64)
	src := "from bb.pool import object_" + hash + " as memo\n\n" +
		"@memo\ndef f(x):\n    return x\n"

	r := normalizeSource(t, src)

	assert.Contains(t, r.CanonicalCode, "@object_"+hash+"."+OuterSlot+"\n")
	assert.NotContains(t, r.CanonicalCode, "@memo")
}

func TestNormalize_DecoratorNotReferencingPoolImportIsRenamed(t *testing.T) {
	r := normalizeSource(t, "@tracer\ndef f(x):\n    return x\n")

	assert.Contains(t, r.CanonicalCode, "@_bb_v_1\n")
	assert.Equal(t, "tracer", r.NameMapping["_bb_v_1"])
}

func TestNormalize_ExternalImportPreservedVerbatim(t *testing.T) {
	r := normalizeSource(t, "import math\n\ndef area(r):\n    return math.pi * r * r\n")

	assert.Contains(t, r.CanonicalCode, "import math\n")
	assert.Contains(t, r.CanonicalCode, "math.pi")
}

func TestNormalize_OuterSlotClaimedByBuiltinNamedFunction(t *testing.T) {
	r := normalizeSource(t, "def len(x):\n    return x\n")

	// "len" is a builtin; the function's own name still always claims slot 0.
	assert.Equal(t, "len", r.NameMapping[OuterSlot])
}

func TestNormalize_DocstringIndependence(t *testing.T) {
	a := normalizeSource(t, "def f(x):\n    \"\"\"one\"\"\"\n    return x\n")
	b := normalizeSource(t, "def f(x):\n    \"\"\"two\"\"\"\n    return x\n")

	assert.Equal(t, a.CanonicalCode, b.CanonicalCode)
	assert.NotEqual(t, a.Docstring, b.Docstring)
}

func TestNormalize_NoDocstring(t *testing.T) {
	r := normalizeSource(t, "def f(x):\n    return x\n")

	assert.Empty(t, r.Docstring)
	assert.Equal(t, "def _bb_v_0(_bb_v_1):\n    return _bb_v_1\n", r.CanonicalCode)
}
