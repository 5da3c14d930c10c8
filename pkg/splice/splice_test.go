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

package splice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_NoEdits(t *testing.T) {
	src := []byte("hello world")
	assert.Equal(t, "hello world", Apply(src, 0, uint32(len(src)), nil))
}

func TestApply_SingleReplacement(t *testing.T) {
	src := []byte("def f(x):\n    return x\n")
	edits := []Edit{{Start: 4, End: 5, Text: "g"}}
	assert.Equal(t, "def g(x):\n    return x\n", Apply(src, 0, uint32(len(src)), edits))
}

func TestApply_MultipleNonOverlappingEditsOutOfOrder(t *testing.T) {
	src := []byte("aXbYc")
	edits := []Edit{
		{Start: 3, End: 4, Text: "Q"},
		{Start: 1, End: 2, Text: "P"},
	}
	assert.Equal(t, "aPbQc", Apply(src, 0, uint32(len(src)), edits))
}

func TestApply_RestrictedRegion(t *testing.T) {
	src := []byte("PREFIX[abc]SUFFIX")
	edits := []Edit{{Start: 7, End: 8, Text: "Z"}}
	got := Apply(src, 6, 11, edits)
	assert.Equal(t, "[Zbc]", got)
}

func TestApply_DeletionEdit(t *testing.T) {
	src := []byte("keep-drop-keep")
	edits := []Edit{{Start: 4, End: 9, Text: ""}}
	assert.Equal(t, "keep-keep", Apply(src, 0, uint32(len(src)), edits))
}

func TestApply_OverlappingEditSkippedDefensively(t *testing.T) {
	src := []byte("abcdef")
	edits := []Edit{
		{Start: 0, End: 3, Text: "XXX"},
		{Start: 1, End: 2, Text: "Y"}, // overlaps the first; dropped
	}
	assert.Equal(t, "XXXdef", Apply(src, 0, uint32(len(src)), edits))
}
