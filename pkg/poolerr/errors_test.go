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

package poolerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs_MatchesOnKindAloneIgnoringMessage(t *testing.T) {
	a := New(NotFound, "function abc not found")
	b := New(NotFound, "a totally different message")
	assert.True(t, errors.Is(a, b))
}

func TestIs_DifferentKindsDoNotMatch(t *testing.T) {
	a := New(NotFound, "x")
	b := New(InvalidHash, "x")
	assert.False(t, errors.Is(a, b))
}

func TestKindOf_UnwrapsWrappedError(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := Wrap(IoError, "write object.json", cause)
	assert.Equal(t, IoError, KindOf(wrapped))
	assert.ErrorIs(t, wrapped, cause)
}

func TestKindOf_EmptyForPlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("not a poolerr")))
}

func TestError_MessageIncludesPathAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(IntegrityFailure, "re-hash mismatch", cause).WithPath("/pool/ab/cdef/object.json")
	msg := err.Error()
	assert.Contains(t, msg, "IntegrityFailure")
	assert.Contains(t, msg, "re-hash mismatch")
	assert.Contains(t, msg, "/pool/ab/cdef/object.json")
	assert.Contains(t, msg, "boom")
}

func TestWithOverlays_CarriesEnumerableList(t *testing.T) {
	overlays := []Overlay{{OverlayHash: "a", Comment: "formal"}, {OverlayHash: "b", Comment: "casual"}}
	err := New(AmbiguousOverlay, "multiple overlays").WithOverlays(overlays)
	assert.Equal(t, overlays, err.Overlays)
}
