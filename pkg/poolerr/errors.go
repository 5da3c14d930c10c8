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

// Package poolerr defines the machine-inspectable error kinds surfaced by
// every pool operation (parsing, normalization, storage, and the external
// interface). A poolerr.Error always carries exactly one Kind and, where
// relevant, a structured payload (e.g. the ambiguous overlay list).
package poolerr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of failure. Callers should switch on Kind,
// never on the error string.
type Kind string

const (
	InvalidSource      Kind = "InvalidSource"
	UnsupportedUnit    Kind = "UnsupportedUnit"
	InvalidLanguageTag Kind = "InvalidLanguageTag"
	InvalidHash        Kind = "InvalidHash"
	InvalidLocator     Kind = "InvalidLocator"
	NotFound           Kind = "NotFound"
	AmbiguousOverlay   Kind = "AmbiguousOverlay"
	SchemaMismatch     Kind = "SchemaMismatch"
	IntegrityFailure   Kind = "IntegrityFailure"
	IoError            Kind = "IoError"
)

// Overlay is the minimal shape list_overlays/AmbiguousOverlay need: an
// overlay identity plus its human-facing comment, never the full content.
type Overlay struct {
	OverlayHash string
	Comment     string
}

// Error is the concrete error type returned by every package in this
// repository. Path and Overlays are populated only by the Kinds that need
// them (NotFound, IntegrityFailure, SchemaMismatch and some IoError values
// set Path; AmbiguousOverlay sets Overlays).
type Error struct {
	Kind     Kind
	Message  string
	Path     string
	Overlays []Overlay
	Cause    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is match on Kind alone, so callers can write
// errors.Is(err, poolerr.New(poolerr.NotFound, "")) without comparing messages.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds a bare Error of the given Kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds a bare Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches an underlying cause to a new Error of the given Kind.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithPath attaches the on-disk path a NotFound/IntegrityFailure/SchemaMismatch
// error concerns.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithOverlays attaches the enumerable overlay list an AmbiguousOverlay error
// carries, per spec.md §7's "carries the enumerable list" requirement.
func (e *Error) WithOverlays(overlays []Overlay) *Error {
	e.Overlays = overlays
	return e
}

// KindOf extracts the Kind from err if it is (or wraps) a *Error, or ""
// otherwise.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
