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
)

// runConfig executes the 'config' CLI command, printing the resolved
// .fnpool/project.yaml either as formatted text or, with --json, as JSON.
func runConfig(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fnpoolctl config [options]\n\nShow the resolved .fnpool/project.yaml.\n\nOptions:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}

	if globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(cfg)
		return
	}

	ui.Header("fnpool Configuration")
	fmt.Printf("%s  %s\n", ui.Label("Config File:"), ui.DimText(cfg.ConfigPath))
	fmt.Printf("%s     %s\n", ui.Label("Version:"), cfg.Version)
	fmt.Printf("%s  %s\n", ui.Label("Project ID:"), cfg.ProjectID)
	fmt.Printf("%s  %s\n", ui.Label("Storage Root:"), cfg.StorageRoot())
	fmt.Printf("%s  %s\n", ui.Label("Default Language:"), cfg.DefaultLanguage)
	if cfg.DefaultAuthor != "" {
		fmt.Printf("%s  %s\n", ui.Label("Default Author:"), cfg.DefaultAuthor)
	}
	if len(cfg.Exclude) > 0 {
		ui.SubHeader("Exclude patterns:")
		for _, pattern := range cfg.Exclude {
			fmt.Printf("  - %s\n", ui.DimText(pattern))
		}
	}
}
