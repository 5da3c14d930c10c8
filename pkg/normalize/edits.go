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

package normalize

import "github.com/kraklabs/fnpool/pkg/splice"

// edit and applyEdits are thin aliases over pkg/splice, kept so the rest of
// this package reads in terms of its own vocabulary.
type edit = splice.Edit

func applyEdits(source []byte, regionStart, regionEnd uint32, edits []edit) string {
	return splice.Apply(source, regionStart, regionEnd, edits)
}
