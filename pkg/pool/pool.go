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

// Package pool implements spec.md §4.9: the external interface a client
// drives to store, retrieve, and validate function objects. It composes
// pkg/parse, pkg/normalize, pkg/hashing, pkg/store and pkg/denorm into the
// ten operations the core exposes, translating every failure into a
// pkg/poolerr Kind.
package pool

import (
	"time"

	"github.com/kraklabs/fnpool/pkg/denorm"
	"github.com/kraklabs/fnpool/pkg/hashing"
	"github.com/kraklabs/fnpool/pkg/normalize"
	"github.com/kraklabs/fnpool/pkg/parse"
	"github.com/kraklabs/fnpool/pkg/poolerr"
	"github.com/kraklabs/fnpool/pkg/store"
)

// Pool is the single entry point clients use; it holds no in-process state
// beyond the storage root (spec.md §5: "no in-process locks are held
// across calls").
type Pool struct {
	store *store.Store
	// Now returns the current time; overridable in tests so object metadata
	// is deterministic.
	Now func() time.Time
}

// Open returns a Pool rooted at root. The directory need not already exist.
func Open(root string) *Pool {
	return &Pool{store: store.New(root), Now: time.Now}
}

// Function is the client-facing view of object.json (spec.md's PoolFunction).
type Function struct {
	Hash           string
	NormalizedCode string
	Created        string
	Author         string
}

// Store normalizes sourceText, persists the function object (if new) and an
// overlay recording its original presentation, and returns both hashes.
func (p *Pool) Store(sourceText, languageTag, author, comment string) (functionHash, overlayHash string, err error) {
	if err := store.ValidateLanguageTag(languageTag); err != nil {
		return "", "", err
	}

	unit, err := parse.Parse([]byte(sourceText))
	if err != nil {
		return "", "", err
	}
	defer unit.Close()

	result, err := normalize.Normalize(unit)
	if err != nil {
		return "", "", err
	}

	functionHash = hashing.FunctionHash(result.CanonicalCode)
	if err := p.store.PutObject(functionHash, store.ObjectFile{
		SchemaVersion:  store.SchemaVersion,
		Hash:           functionHash,
		NormalizedCode: result.CanonicalCode,
		Metadata: store.Metadata{
			Created: p.Now().UTC().Format(time.RFC3339),
			Author:  author,
		},
	}); err != nil {
		return "", "", err
	}

	overlay := hashing.Overlay{
		Docstring:    result.Docstring,
		NameMapping:  result.NameMapping,
		AliasMapping: result.AliasMapping,
		Comment:      comment,
	}
	overlayHash, err = hashing.OverlayHash(overlay)
	if err != nil {
		return "", "", poolerr.Wrap(poolerr.IoError, "compute overlay hash", err)
	}

	if err := p.store.PutOverlay(functionHash, languageTag, overlayHash, store.MappingFile{
		Docstring:    overlay.Docstring,
		NameMapping:  overlay.NameMapping,
		AliasMapping: overlay.AliasMapping,
		Comment:      overlay.Comment,
	}); err != nil {
		return "", "", err
	}

	return functionHash, overlayHash, nil
}

// HasFunction reports whether hash names a stored function object.
func (p *Pool) HasFunction(hash string) (bool, error) {
	if err := ValidateHash(hash); err != nil {
		return false, err
	}
	return p.store.HasFunction(hash), nil
}

// LoadObject returns the function object stored under hash.
func (p *Pool) LoadObject(hash string) (*Function, error) {
	if err := ValidateHash(hash); err != nil {
		return nil, err
	}
	obj, err := p.store.GetObject(hash)
	if err != nil {
		return nil, err
	}
	return &Function{
		Hash:           obj.Hash,
		NormalizedCode: obj.NormalizedCode,
		Created:        obj.Metadata.Created,
		Author:         obj.Metadata.Author,
	}, nil
}

// ListLanguages returns every language tag with at least one stored overlay.
func (p *Pool) ListLanguages(hash string) ([]string, error) {
	if err := ValidateHash(hash); err != nil {
		return nil, err
	}
	return p.store.ListLanguages(hash)
}

// ListOverlays returns (overlay_hash, comment) pairs for hash/languageTag,
// or an empty slice if the language is absent.
func (p *Pool) ListOverlays(hash, languageTag string) ([]poolerr.Overlay, error) {
	if err := ValidateHash(hash); err != nil {
		return nil, err
	}
	if err := store.ValidateLanguageTag(languageTag); err != nil {
		return nil, err
	}
	return p.store.ListOverlays(hash, languageTag)
}

// LoadOverlay resolves and returns a single overlay. If overlayHash is
// empty and exactly one overlay exists for (hash, languageTag), that one is
// returned; if several exist, AmbiguousOverlay carries the enumerable list;
// if none exist, NotFound.
func (p *Pool) LoadOverlay(hash, languageTag, overlayHash string) (*store.MappingFile, string, error) {
	if err := ValidateHash(hash); err != nil {
		return nil, "", err
	}
	if err := store.ValidateLanguageTag(languageTag); err != nil {
		return nil, "", err
	}

	if overlayHash != "" {
		if err := ValidateHash(overlayHash); err != nil {
			return nil, "", err
		}
		m, err := p.store.GetOverlay(hash, languageTag, overlayHash)
		if err != nil {
			return nil, "", err
		}
		return m, overlayHash, nil
	}

	overlays, err := p.store.ListOverlays(hash, languageTag)
	if err != nil {
		return nil, "", err
	}
	switch len(overlays) {
	case 0:
		return nil, "", poolerr.New(poolerr.NotFound, "no overlays for language").WithPath(languageTag)
	case 1:
		m, err := p.store.GetOverlay(hash, languageTag, overlays[0].OverlayHash)
		if err != nil {
			return nil, "", err
		}
		return m, overlays[0].OverlayHash, nil
	default:
		return nil, "", poolerr.New(poolerr.AmbiguousOverlay, "multiple overlays, none specified").WithOverlays(overlays)
	}
}

// AddOverlay stores a presentation overlay for an existing function.
func (p *Pool) AddOverlay(hash, languageTag, docstring string, nameMapping, aliasMapping map[string]string, comment string) (string, error) {
	if err := ValidateHash(hash); err != nil {
		return "", err
	}
	if err := store.ValidateLanguageTag(languageTag); err != nil {
		return "", err
	}
	if !p.store.HasFunction(hash) {
		return "", poolerr.New(poolerr.NotFound, "function not found")
	}

	overlay := hashing.Overlay{
		Docstring:    docstring,
		NameMapping:  nameMapping,
		AliasMapping: aliasMapping,
		Comment:      comment,
	}
	overlayHash, err := hashing.OverlayHash(overlay)
	if err != nil {
		return "", poolerr.Wrap(poolerr.IoError, "compute overlay hash", err)
	}

	if err := p.store.PutOverlay(hash, languageTag, overlayHash, store.MappingFile{
		Docstring:    docstring,
		NameMapping:  nameMapping,
		AliasMapping: aliasMapping,
		Comment:      comment,
	}); err != nil {
		return "", err
	}
	return overlayHash, nil
}

// Denormalize reconstructs presentable source text for (hash, languageTag,
// overlayHash), resolving an unspecified overlay the same way LoadOverlay
// does.
func (p *Pool) Denormalize(hash, languageTag, overlayHash string) (string, error) {
	obj, err := p.LoadObject(hash)
	if err != nil {
		return "", err
	}
	m, _, err := p.LoadOverlay(hash, languageTag, overlayHash)
	if err != nil {
		return "", err
	}
	return denorm.Denormalize(obj.NormalizedCode, denorm.Overlay{
		Docstring:    m.Docstring,
		NameMapping:  m.NameMapping,
		AliasMapping: m.AliasMapping,
	})
}

// Validate checks a function object and every overlay beneath it,
// returning every violation found.
func (p *Pool) Validate(hash string) []error {
	if err := ValidateHash(hash); err != nil {
		return []error{err}
	}
	return p.store.Validate(hash)
}
