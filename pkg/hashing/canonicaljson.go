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
	"bytes"
	"encoding/json"
	"sort"
)

// CanonicalJSON serializes v the way spec.md §6.1 requires: object keys
// sorted lexicographically, no indentation, no insignificant whitespace,
// and Unicode characters emitted as themselves rather than \uXXXX escapes.
//
// encoding/json's Marshal sorts map keys but emits struct fields in
// declaration order, and by default HTML-escapes '<', '>' and '&' as \uXXXX.
// To get sorted keys for structs too and no HTML escaping, v is marshaled
// once to get generic values, walked to sort every object's keys
// recursively, then re-encoded with SetEscapeHTML(false).
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(canonicalize(generic)); err != nil {
		return nil, err
	}

	// Encode appends a trailing newline; the hash preimage has none.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// canonicalize rebuilds v using ordered map so object keys serialize
// sorted, recursing into arrays and nested objects.
func canonicalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return canonicalizeObject(val)
	case []any:
		return canonicalizeArray(val)
	default:
		return val
	}
}

func canonicalizeObject(m map[string]any) *orderedObject {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	o := &orderedObject{keys: keys, values: make(map[string]any, len(m))}
	for _, k := range keys {
		o.values[k] = canonicalize(m[k])
	}
	return o
}

func canonicalizeArray(a []any) []any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = canonicalize(v)
	}
	return out
}

// orderedObject marshals as a JSON object with keys emitted in the fixed
// sorted order captured at construction time, with every value encoded
// without HTML escaping.
type orderedObject struct {
	keys   []string
	values map[string]any
}

func (o *orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := marshalValue(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalString(s string) ([]byte, error) {
	return marshalValue(s)
}

// marshalValue encodes a single value with HTML escaping disabled so
// Unicode and '<','>','&' pass through unescaped, per spec.md §6.1.
func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
