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

import "fmt"

// Namespace is the build-time-fixed constant substituted into every
// canonical slot name (_ns_v_<N>) and pool-module path (ns.pool). Chosen to
// match the worked examples in spec.md so golden-output tests can assert
// literal canonical code.
const Namespace = "bb"

// PoolModule is the fixed dotted import path that marks a pool import.
const PoolModule = Namespace + ".pool"

// OuterSlot is the slot name always assigned to the outer function, the
// hard invariant spec.md §4.4 calls out.
const OuterSlot = "_" + Namespace + "_v_0"

// slotName formats the canonical identifier for slot n.
func slotName(n int) string {
	return fmt.Sprintf("_%s_v_%d", Namespace, n)
}
