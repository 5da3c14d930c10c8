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

package pool

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/fnpool/pkg/poolerr"
)

func newTestPool(t *testing.T) *Pool {
	t.Helper()
	p := Open(t.TempDir())
	p.Now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	return p
}

// Scenario A: cross-language identity (spec.md §8).
func TestStore_ScenarioA_CrossLanguageIdentity(t *testing.T) {
	p := newTestPool(t)

	hashEng, _, err := p.Store("def add(a, b):\n    \"\"\"Add two numbers\"\"\"\n    return a + b\n", "eng", "alice", "")
	require.NoError(t, err)
	hashFra, _, err := p.Store("def additionner(x, y):\n    \"\"\"Additionne deux nombres\"\"\"\n    return x + y\n", "fra", "bob", "")
	require.NoError(t, err)

	assert.Equal(t, hashEng, hashFra)

	langs, err := p.ListLanguages(hashEng)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"eng", "fra"}, langs)

	eng, err := p.Denormalize(hashEng, "eng", "")
	require.NoError(t, err)
	assert.Contains(t, eng, "def add(a, b):")
	assert.Contains(t, eng, "Add two numbers")

	fra, err := p.Denormalize(hashFra, "fra", "")
	require.NoError(t, err)
	assert.Contains(t, fra, "def additionner(x, y):")
	assert.Contains(t, fra, "Additionne deux nombres")
}

// Scenario B: pool reference rewriting across a store/denormalize round trip.
func TestStore_ScenarioB_PoolReference(t *testing.T) {
	p := newTestPool(t)

	h1, _, err := p.Store("def helper(z):\n    return z * 2\n", "eng", "alice", "")
	require.NoError(t, err)

	src := "from bb.pool import object_" + h1 + " as twice\n\n" +
		"def double_all(xs):\n    \"\"\"Double each element\"\"\"\n    return [twice(x) for x in xs]\n"
	h2, overlayHash, err := p.Store(src, "eng", "alice", "")
	require.NoError(t, err)

	obj, err := p.LoadObject(h2)
	require.NoError(t, err)
	assert.Contains(t, obj.NormalizedCode, "from bb.pool import object_"+h1+"\n")
	assert.NotContains(t, obj.NormalizedCode, "as twice")

	m, _, err := p.LoadOverlay(h2, "eng", overlayHash)
	require.NoError(t, err)
	assert.Equal(t, "twice", m.AliasMapping[h1])

	reconstructed, err := p.Denormalize(h2, "eng", "")
	require.NoError(t, err)
	assert.Contains(t, reconstructed, "as twice")
	assert.Contains(t, reconstructed, "twice(x)")
}

// Scenario C: multiple overlays under one language.
func TestStore_ScenarioC_MultipleOverlaysSameLanguage(t *testing.T) {
	p := newTestPool(t)
	src := "def add(a, b):\n    \"\"\"Add two numbers\"\"\"\n    return a + b\n"

	hash, m1, err := p.Store(src, "eng", "alice", "formal")
	require.NoError(t, err)
	_, m2, err := p.Store(src, "eng", "alice", "casual")
	require.NoError(t, err)
	require.NotEqual(t, m1, m2)

	overlays, err := p.ListOverlays(hash, "eng")
	require.NoError(t, err)
	require.Len(t, overlays, 2)

	comments := map[string]string{}
	for _, o := range overlays {
		comments[o.OverlayHash] = o.Comment
	}
	assert.Equal(t, "formal", comments[m1])
	assert.Equal(t, "casual", comments[m2])

	_, _, err = p.LoadOverlay(hash, "eng", "")
	require.Error(t, err)
	require.Equal(t, poolerr.AmbiguousOverlay, poolerr.KindOf(err))
	var pe *poolerr.Error
	require.ErrorAs(t, err, &pe)
	assert.Len(t, pe.Overlays, 2)

	got, hashGot, err := p.LoadOverlay(hash, "eng", m1)
	require.NoError(t, err)
	assert.Equal(t, m1, hashGot)
	assert.Equal(t, "formal", got.Comment)
}

func TestStore_ScenarioC_IdenticalCommentDedupesToOneFile(t *testing.T) {
	p := newTestPool(t)
	src := "def add(a, b):\n    \"\"\"Add two numbers\"\"\"\n    return a + b\n"

	hash, m1, err := p.Store(src, "eng", "alice", "formal")
	require.NoError(t, err)
	_, m2, err := p.Store(src, "eng", "bob", "formal")
	require.NoError(t, err)
	assert.Equal(t, m1, m2)

	overlays, err := p.ListOverlays(hash, "eng")
	require.NoError(t, err)
	assert.Len(t, overlays, 1)
}

// Scenario E: locator parsing.
func TestParseLocator_ScenarioE(t *testing.T) {
	hash := strings.Repeat("a", 64)
	mhash := strings.Repeat("b", 64)

	loc, err := ParseLocator(hash + "@eng")
	require.NoError(t, err)
	assert.Equal(t, hash, loc.FunctionHash)
	assert.Equal(t, "eng", loc.LanguageTag)
	assert.Empty(t, loc.OverlayHash)

	_, err = ParseLocator(hash + "@en")
	require.Error(t, err)
	assert.Equal(t, poolerr.InvalidLanguageTag, poolerr.KindOf(err))

	_, err = ParseLocator("nothex@eng")
	require.Error(t, err)
	assert.Equal(t, poolerr.InvalidHash, poolerr.KindOf(err))

	loc, err = ParseLocator(hash + "@eng@" + mhash)
	require.NoError(t, err)
	assert.Equal(t, hash, loc.FunctionHash)
	assert.Equal(t, "eng", loc.LanguageTag)
	assert.Equal(t, mhash, loc.OverlayHash)
}

// Scenario F: integrity violation. Mutating mapping.json's comment field
// in place, bypassing the store's write path entirely, must surface as
// IntegrityFailure against that overlay's path (spec.md §8 Scenario F).
func TestValidate_ScenarioF_IntegrityViolation(t *testing.T) {
	root := t.TempDir()
	p := Open(root)
	p.Now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	src := "def add(a, b):\n    \"\"\"Add two numbers\"\"\"\n    return a + b\n"

	hash, overlayHash, err := p.Store(src, "eng", "alice", "original")
	require.NoError(t, err)
	assert.Empty(t, p.Validate(hash))

	path := filepath.Join(root, "pool", hash[:2], hash[2:], "eng", overlayHash[:2], overlayHash[2:], "mapping.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	mutated := strings.Replace(string(data), "original", "tampered", 1)
	require.NoError(t, os.WriteFile(path, []byte(mutated), 0o644))

	errs := p.Validate(hash)
	require.NotEmpty(t, errs)
	var sawIntegrity bool
	for _, e := range errs {
		if poolerr.KindOf(e) == poolerr.IntegrityFailure {
			sawIntegrity = true
		}
	}
	assert.True(t, sawIntegrity)
}

// Universal property 1: determinism.
func TestStore_Determinism(t *testing.T) {
	p := newTestPool(t)
	src := "def f(x):\n    return x\n"

	h1, m1, err := p.Store(src, "eng", "alice", "c")
	require.NoError(t, err)
	h2, m2, err := p.Store(src, "eng", "alice", "c")
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, m1, m2)
}

// Universal property 9: idempotent store creates no duplicate overlay files.
func TestStore_IdempotentNoDuplicateOverlay(t *testing.T) {
	p := newTestPool(t)
	src := "def f(x):\n    return x\n"

	hash, _, err := p.Store(src, "eng", "alice", "only")
	require.NoError(t, err)
	_, _, err = p.Store(src, "eng", "alice", "only")
	require.NoError(t, err)

	overlays, err := p.ListOverlays(hash, "eng")
	require.NoError(t, err)
	assert.Len(t, overlays, 1)
}

func TestHasFunction_InvalidHashRejected(t *testing.T) {
	p := newTestPool(t)
	_, err := p.HasFunction("not-a-hash")
	require.Error(t, err)
	assert.Equal(t, poolerr.InvalidHash, poolerr.KindOf(err))
}

func TestLoadObject_NotFound(t *testing.T) {
	p := newTestPool(t)
	_, err := p.LoadObject(strings.Repeat("0", 64))
	require.Error(t, err)
	assert.Equal(t, poolerr.NotFound, poolerr.KindOf(err))
}

func TestAddOverlay_ThenListedAndLoaded(t *testing.T) {
	p := newTestPool(t)
	hash, _, err := p.Store("def f(x):\n    return x\n", "eng", "alice", "")
	require.NoError(t, err)

	overlayHash, err := p.AddOverlay(hash, "fra", "", map[string]string{"_bb_v_0": "f", "_bb_v_1": "x"}, map[string]string{}, "added-later")
	require.NoError(t, err)

	overlays, err := p.ListOverlays(hash, "fra")
	require.NoError(t, err)
	require.Len(t, overlays, 1)
	assert.Equal(t, overlayHash, overlays[0].OverlayHash)
	assert.Equal(t, "added-later", overlays[0].Comment)
}

func TestAddOverlay_NotFoundWhenFunctionMissing(t *testing.T) {
	p := newTestPool(t)
	_, err := p.AddOverlay(strings.Repeat("9", 64), "eng", "", map[string]string{}, map[string]string{}, "")
	require.Error(t, err)
	assert.Equal(t, poolerr.NotFound, poolerr.KindOf(err))
}

func TestStore_InvalidSourceRejected(t *testing.T) {
	p := newTestPool(t)
	_, _, err := p.Store("def f(:\n", "eng", "alice", "")
	require.Error(t, err)
	assert.Equal(t, poolerr.InvalidSource, poolerr.KindOf(err))
}

func TestStore_UnsupportedUnitRejected(t *testing.T) {
	p := newTestPool(t)
	_, _, err := p.Store("x = 1\n", "eng", "alice", "")
	require.Error(t, err)
	assert.Equal(t, poolerr.UnsupportedUnit, poolerr.KindOf(err))
}

func TestStore_InvalidLanguageTagRejected(t *testing.T) {
	p := newTestPool(t)
	_, _, err := p.Store("def f(x):\n    return x\n", "en", "alice", "")
	require.Error(t, err)
	assert.Equal(t, poolerr.InvalidLanguageTag, poolerr.KindOf(err))
}
