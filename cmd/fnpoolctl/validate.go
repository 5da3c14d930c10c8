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

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/fnpool/internal/config"
	"github.com/kraklabs/fnpool/internal/errors"
	"github.com/kraklabs/fnpool/internal/metrics"
	"github.com/kraklabs/fnpool/internal/ui"
	"github.com/kraklabs/fnpool/pkg/pool"
	"github.com/kraklabs/fnpool/pkg/poolerr"
)

// runValidate executes the 'validate' CLI command: it re-hashes the stored
// function object and every overlay beneath it, printing every violation
// found (spec.md §4.9's validate()). Exits nonzero if any violation exists.
func runValidate(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fnpoolctl validate <hash>\n\nOptions:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		errors.FatalError(errors.NewInputError("Missing hash argument", "validate requires exactly one function hash", "Usage: fnpoolctl validate <hash>", nil), globals.JSON)
	}
	hash := rest[0]

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	p := pool.Open(cfg.StorageRoot())

	violations := p.Validate(hash)
	for _, v := range violations {
		if poolerr.KindOf(v) == poolerr.IntegrityFailure {
			metrics.IntegrityFailuresTotal.Inc()
		}
	}

	if len(violations) == 0 {
		if !globals.Quiet {
			ui.Successf("%s is valid", hash)
		}
		return
	}

	for _, v := range violations {
		ui.Warningf("%v", v)
	}
	os.Exit(1)
}
