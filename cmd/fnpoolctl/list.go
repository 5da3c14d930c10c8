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
	"encoding/json"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/fnpool/internal/config"
	"github.com/kraklabs/fnpool/internal/errors"
	"github.com/kraklabs/fnpool/internal/ui"
	"github.com/kraklabs/fnpool/pkg/pool"
)

// languageOverlays is the JSON shape printed by 'list --json': one entry
// per language tag, each carrying its overlays' hash and comment.
type languageOverlays struct {
	Language string          `json:"language"`
	Overlays []overlaySummary `json:"overlays"`
}

type overlaySummary struct {
	OverlayHash string `json:"overlay_hash"`
	Comment     string `json:"comment"`
}

// runList executes the 'list' CLI command. With no --lang it enumerates
// every language the function hash carries and, per language, every overlay
// hash and comment (spec.md §4.9's list_languages composed with
// list_overlays); with --lang it narrows to just that language.
func runList(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	lang := fs.String("lang", "", "Restrict listing to a single language tag")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fnpoolctl list <hash> [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		errors.FatalError(errors.NewInputError("Missing hash argument", "list requires exactly one function hash", "Usage: fnpoolctl list <hash>", nil), globals.JSON)
	}
	hash := rest[0]

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	p := pool.Open(cfg.StorageRoot())

	var langs []string
	if *lang != "" {
		langs = []string{*lang}
	} else {
		langs, err = p.ListLanguages(hash)
		if err != nil {
			errors.FatalError(err, globals.JSON)
		}
	}

	results := make([]languageOverlays, 0, len(langs))
	for _, l := range langs {
		overlays, err := p.ListOverlays(hash, l)
		if err != nil {
			errors.FatalError(err, globals.JSON)
		}
		summaries := make([]overlaySummary, 0, len(overlays))
		for _, o := range overlays {
			summaries = append(summaries, overlaySummary{OverlayHash: o.OverlayHash, Comment: o.Comment})
		}
		results = append(results, languageOverlays{Language: l, Overlays: summaries})
	}

	if globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(results)
		return
	}

	ui.Header(fmt.Sprintf("Function %s", hash))
	if len(results) == 0 {
		ui.Warning("no languages stored for this hash")
		return
	}
	for _, entry := range results {
		ui.SubHeader(fmt.Sprintf("%s (%s overlays)", entry.Language, ui.CountText(len(entry.Overlays))))
		for _, o := range entry.Overlays {
			comment := o.Comment
			if comment == "" {
				comment = ui.DimText("(no comment)")
			}
			fmt.Printf("    %s  %s\n", o.OverlayHash, comment)
		}
	}
}
