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

// Package errors wraps pkg/poolerr's machine-inspectable Kinds in a
// human-facing shape: a title, a detail, a suggested remedy, and an
// optional cause.
package errors

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kraklabs/fnpool/pkg/poolerr"
)

// UserError is a failure meant to be read by a human operating the CLI:
// what happened, why, and what to do about it.
type UserError struct {
	Kind       poolerr.Kind
	Title      string
	Detail     string
	Suggestion string
	Cause      error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Title, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

func (e *UserError) Unwrap() error { return e.Cause }

func newUserError(kind poolerr.Kind, title, detail, suggestion string, cause error) *UserError {
	return &UserError{Kind: kind, Title: title, Detail: detail, Suggestion: suggestion, Cause: cause}
}

// NewConfigError reports a malformed or missing .fnpool/project.yaml.
func NewConfigError(title, detail, suggestion string, cause error) *UserError {
	return newUserError(poolerr.SchemaMismatch, title, detail, suggestion, cause)
}

// NewInputError reports a locator, language tag, or source file the user
// supplied that the core rejected.
func NewInputError(title, detail, suggestion string, cause error) *UserError {
	return newUserError(poolerr.InvalidSource, title, detail, suggestion, cause)
}

// NewNotFoundError reports a function, language, or overlay that does not
// exist in the pool.
func NewNotFoundError(title, detail, suggestion string, cause error) *UserError {
	return newUserError(poolerr.NotFound, title, detail, suggestion, cause)
}

// NewAmbiguousError reports an unresolved overlay selection.
func NewAmbiguousError(title, detail, suggestion string, cause error) *UserError {
	return newUserError(poolerr.AmbiguousOverlay, title, detail, suggestion, cause)
}

// NewIntegrityError reports a pool object whose stored content no longer
// re-hashes to its path.
func NewIntegrityError(title, detail, suggestion string, cause error) *UserError {
	return newUserError(poolerr.IntegrityFailure, title, detail, suggestion, cause)
}

// NewPermissionError reports a filesystem permission failure.
func NewPermissionError(title, detail, suggestion string, cause error) *UserError {
	return newUserError(poolerr.IoError, title, detail, suggestion, cause)
}

// NewInternalError reports a bug: something the CLI should have handled
// itself.
func NewInternalError(title, detail, suggestion string, cause error) *UserError {
	return newUserError("", title, detail, suggestion, cause)
}

// FromPoolError classifies a raw pkg/poolerr error into a UserError with a
// CLI-appropriate title and suggestion, preserving its Kind.
func FromPoolError(err error) *UserError {
	kind := poolerr.KindOf(err)
	switch kind {
	case poolerr.InvalidSource:
		return newUserError(kind, "Cannot parse source", err.Error(), "Check the file contains valid, syntactically complete source", err)
	case poolerr.UnsupportedUnit:
		return newUserError(kind, "Unsupported source unit", err.Error(), "The source must contain only imports and exactly one function definition", err)
	case poolerr.InvalidLanguageTag:
		return newUserError(kind, "Invalid language tag", err.Error(), "Language tags must be 3-256 characters of letters, digits, and hyphens", err)
	case poolerr.InvalidHash:
		return newUserError(kind, "Invalid hash", err.Error(), "Hashes must be 64 lowercase hex characters", err)
	case poolerr.InvalidLocator:
		return newUserError(kind, "Invalid locator", err.Error(), "Locators are HASH[@LANG[@OVERLAY_HASH]]", err)
	case poolerr.NotFound:
		return newUserError(kind, "Not found", err.Error(), "Check the hash, language tag, and overlay hash are correct", err)
	case poolerr.AmbiguousOverlay:
		return newUserError(kind, "Ambiguous overlay", err.Error(), "Specify an overlay hash with 'fnpoolctl list' to disambiguate", err)
	case poolerr.SchemaMismatch:
		return newUserError(kind, "Schema mismatch", err.Error(), "This pool was written by an incompatible version of fnpoolctl", err)
	case poolerr.IntegrityFailure:
		return newUserError(kind, "Integrity failure", err.Error(), "Stored content no longer matches its hash; the pool directory may be corrupt", err)
	case poolerr.IoError:
		return newUserError(kind, "I/O error", err.Error(), "Check disk space and filesystem permissions", err)
	default:
		return NewInternalError("Unexpected error", err.Error(), "This is a bug. Please report it.", err)
	}
}

// jsonError is the machine-readable shape FatalError prints in --json mode.
type jsonError struct {
	Kind       poolerr.Kind `json:"kind"`
	Title      string       `json:"title"`
	Detail     string       `json:"detail"`
	Suggestion string       `json:"suggestion,omitempty"`
}

// FatalError prints err (human or JSON, depending on jsonMode) to stderr and
// exits the process with status 1. It is the one place the CLI terminates
// the program on failure.
func FatalError(err error, jsonMode bool) {
	ue, ok := err.(*UserError)
	if !ok {
		ue = FromPoolError(err)
	}

	if jsonMode {
		enc := json.NewEncoder(os.Stderr)
		_ = enc.Encode(jsonError{
			Kind:       ue.Kind,
			Title:      ue.Title,
			Detail:     ue.Detail,
			Suggestion: ue.Suggestion,
		})
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", ue.Title)
	if ue.Detail != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", ue.Detail)
	}
	if ue.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", ue.Suggestion)
	}
	if ue.Cause != nil && ue.Cause.Error() != ue.Detail {
		fmt.Fprintf(os.Stderr, "  Cause: %v\n", ue.Cause)
	}
	os.Exit(1)
}
