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

// Package splice implements byte-range source rewriting: a set of
// non-overlapping replacement edits applied to a source buffer in one pass.
// Both the normalizer and the denormalizer are pure tree-to-tree
// transformations that never reorder content within a region, so this is
// enough to realize renaming, call-site rewriting, and docstring
// insertion/removal without a full serializer.
package splice

import "sort"

// Edit replaces source[Start:End] with Text.
type Edit struct {
	Start, End uint32
	Text       string
}

// Apply splices non-overlapping edits into source[regionStart:regionEnd],
// in source order. Edits need not be pre-sorted. A zero-width insertion that
// starts where a replacement starts is applied before that replacement.
func Apply(source []byte, regionStart, regionEnd uint32, edits []Edit) string {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		return edits[i].End < edits[j].End
	})

	var out []byte
	cursor := regionStart
	for _, e := range edits {
		if e.Start < cursor {
			// Overlapping edits should never be produced by callers; skip
			// defensively rather than corrupt output.
			continue
		}
		out = append(out, source[cursor:e.Start]...)
		out = append(out, e.Text...)
		cursor = e.End
	}
	out = append(out, source[cursor:regionEnd]...)
	return string(out)
}
