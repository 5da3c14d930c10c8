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

package hashing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalJSON_SortsKeys(t *testing.T) {
	data, err := CanonicalJSON(map[string]any{"z": 1, "a": 2, "m": 3})
	require.NoError(t, err)

	assert.Equal(t, `{"a":2,"m":3,"z":1}`, string(data))
}

func TestCanonicalJSON_NoTrailingNewline(t *testing.T) {
	data, err := CanonicalJSON(map[string]any{"a": 1})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "\n")
}

func TestCanonicalJSON_PreservesUnicodeAndHTMLChars(t *testing.T) {
	data, err := CanonicalJSON(map[string]any{"doc": "Additionne <deux> & nombres été"})
	require.NoError(t, err)

	assert.Equal(t, `{"doc":"Additionne <deux> & nombres été"}`, string(data))
}

func TestCanonicalJSON_SortsNestedObjects(t *testing.T) {
	data, err := CanonicalJSON(map[string]any{
		"outer": map[string]any{"z": 1, "a": 2},
	})
	require.NoError(t, err)

	assert.Equal(t, `{"outer":{"a":2,"z":1}}`, string(data))
}

func TestCanonicalJSON_StructMarshalsLikeMap(t *testing.T) {
	type pair struct {
		B string `json:"b"`
		A string `json:"a"`
	}
	data, err := CanonicalJSON(pair{B: "bval", A: "aval"})
	require.NoError(t, err)

	assert.Equal(t, `{"a":"aval","b":"bval"}`, string(data))
}
