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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/fnpool/pkg/normalize"
	"github.com/kraklabs/fnpool/pkg/parse"
)

// roundTrip exercises spec.md §4.7's round-trip law: normalize, denormalize
// with the overlay it produced, then re-normalize and assert the canonical
// code (and hence the function hash) is unchanged.
func roundTrip(t *testing.T, src string) (*normalize.Result, string) {
	t.Helper()
	u, err := parse.Parse([]byte(src))
	require.NoError(t, err)
	defer u.Close()
	r, err := normalize.Normalize(u)
	require.NoError(t, err)

	reconstructed, err := Denormalize(r.CanonicalCode, Overlay{
		Docstring:    r.Docstring,
		NameMapping:  r.NameMapping,
		AliasMapping: r.AliasMapping,
	})
	require.NoError(t, err)
	return r, reconstructed
}

func TestDenormalize_RoundTripLaw_ScenarioA(t *testing.T) {
	r, reconstructed := roundTrip(t, "def add(a, b):\n    \"\"\"Add two numbers\"\"\"\n    return a + b\n")

	assert.Contains(t, reconstructed, "def add(a, b):")
	assert.Contains(t, reconstructed, "Add two numbers")
	assert.Contains(t, reconstructed, "return a + b")

	u2, err := parse.Parse([]byte(reconstructed))
	require.NoError(t, err)
	defer u2.Close()
	r2, err := normalize.Normalize(u2)
	require.NoError(t, err)
	assert.Equal(t, r.CanonicalCode, r2.CanonicalCode)
}

func TestDenormalize_ScenarioB_PoolReferenceAliasRestored(t *testing.T) {
	hash := strings.Repeat("a", 64)
	src := "from bb.pool import object_" + hash + " as twice\n\n" +
		"def double_all(xs):\n    \"\"\"Double each element\"\"\"\n    return [twice(x) for x in xs]\n"

	r, reconstructed := roundTrip(t, src)

	assert.Contains(t, reconstructed, "from bb.pool import object_"+hash+" as twice")
	assert.Contains(t, reconstructed, "twice(x)")
	assert.NotContains(t, reconstructed, normalize.OuterSlot)

	u2, err := parse.Parse([]byte(reconstructed))
	require.NoError(t, err)
	defer u2.Close()
	r2, err := normalize.Normalize(u2)
	require.NoError(t, err)
	assert.Equal(t, r.CanonicalCode, r2.CanonicalCode)
}

func TestDenormalize_NoAliasKeepsBareImport(t *testing.T) {
	hash := strings.Repeat("c", 64)
	src := "from bb.pool import object_" + hash + "\n\n" +
		"def f(x):\n    return object_" + hash + "." + normalize.OuterSlot + "(x)\n"

	reconstructed, err := Denormalize(src, Overlay{
		NameMapping:  map[string]string{normalize.OuterSlot: "f", "_bb_v_1": "x"},
		AliasMapping: map[string]string{},
	})
	require.NoError(t, err)
	assert.Contains(t, reconstructed, "from bb.pool import object_"+hash+"\n")
	assert.NotContains(t, reconstructed, " as ")
	assert.Contains(t, reconstructed, "object_"+hash+"(x)")
}

func TestDenormalize_EmptyDocstringNotInserted(t *testing.T) {
	_, reconstructed := roundTrip(t, "def f(x):\n    return x\n")
	assert.NotContains(t, reconstructed, `"""`)
}

func TestDenormalize_AsyncPreserved(t *testing.T) {
	_, reconstructed := roundTrip(t, "async def fetch(url):\n    \"\"\"Fetch\"\"\"\n    r = await get(url)\n    return r\n")
	assert.Contains(t, reconstructed, "async def fetch(url):")
	assert.Contains(t, reconstructed, "await get(url)")
}
