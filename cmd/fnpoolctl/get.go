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
	"github.com/kraklabs/fnpool/pkg/pool"
)

// runGet executes the 'get' CLI command: it resolves a HASH[@LANG[@MHASH]]
// locator and prints the denormalized source text to stdout. If the locator
// carries no language tag, the config's default_language is used; if it
// carries a language but no overlay hash and several overlays exist, the
// underlying AmbiguousOverlay error is surfaced with its candidate list.
func runGet(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	lang := fs.String("lang", "", "Language tag, if the locator omits one")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fnpoolctl get <locator> [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		errors.FatalError(errors.NewInputError("Missing locator argument", "get requires exactly one locator", "Usage: fnpoolctl get <hash>[@lang[@overlay_hash]]", nil), globals.JSON)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	p := pool.Open(cfg.StorageRoot())

	loc, err := pool.ParseLocator(rest[0])
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	if loc.LanguageTag == "" {
		loc.LanguageTag = *lang
	}
	if loc.LanguageTag == "" {
		loc.LanguageTag = cfg.DefaultLanguage
	}

	src, err := p.Denormalize(loc.FunctionHash, loc.LanguageTag, loc.OverlayHash)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	fmt.Print(src)
}
