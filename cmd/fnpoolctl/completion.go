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

package main

import (
	"fmt"
	"os"

	"github.com/kraklabs/fnpool/internal/errors"
)

const bashCompletion = `_fnpoolctl() {
    local cur prev
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    commands="init config import-dir watch get list validate serve-metrics completion"
    COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
}
complete -F _fnpoolctl fnpoolctl
`

const zshCompletion = `#compdef fnpoolctl
_fnpoolctl() {
    local -a commands
    commands=(init config import-dir watch get list validate serve-metrics completion)
    _describe 'command' commands
}
_fnpoolctl
`

const fishCompletion = `complete -c fnpoolctl -f -a "init config import-dir watch get list validate serve-metrics completion"
`

// runCompletion executes the 'completion' CLI command, printing a shell
// completion script for bash, zsh, or fish to stdout.
func runCompletion(args []string, globals GlobalFlags) {
	if len(args) != 1 {
		errors.FatalError(errors.NewInputError("Missing shell argument", "completion requires exactly one shell name", "Usage: fnpoolctl completion {bash|zsh|fish}", nil), globals.JSON)
	}

	switch args[0] {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unsupported shell: %s (expected bash, zsh, or fish)\n", args[0])
		os.Exit(1)
	}
}
