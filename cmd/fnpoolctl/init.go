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
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/fnpool/internal/config"
	"github.com/kraklabs/fnpool/internal/errors"
	"github.com/kraklabs/fnpool/internal/ui"
)

// runInit executes the 'init' CLI command, writing a fresh
// .fnpool/project.yaml into the current directory.
//
// Flags:
//   - --force: overwrite an existing configuration file
//   - --project-id: project identifier (default: directory name)
//   - --root: pool storage root, relative to the current directory (default: "pool")
//   - --lang: default language tag for import-dir/watch
//   - --author: default author recorded on stored objects
func runInit(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite existing configuration")
	projectID := fs.String("project-id", "", "Project identifier (default: directory name)")
	root := fs.String("root", "pool", "Pool storage root, relative to the current directory")
	lang := fs.String("lang", "eng", "Default language tag")
	author := fs.String("author", "", "Default author recorded on stored objects")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fnpoolctl init [options]

Creates .fnpool/project.yaml in the current directory.

Options:
`)
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	wd, err := os.Getwd()
	if err != nil {
		errors.FatalError(errors.NewInternalError("Cannot access working directory", err.Error(), "Check system permissions and try again", err), globals.JSON)
	}

	cfgPath := config.ConfigPath(wd)
	if _, statErr := os.Stat(cfgPath); statErr == nil && !*force {
		errors.FatalError(errors.NewConfigError(
			"Configuration already exists",
			fmt.Sprintf("%s already exists", cfgPath),
			"Pass --force to overwrite it",
			nil,
		), globals.JSON)
	}

	id := *projectID
	if id == "" {
		id = filepath.Base(wd)
	}

	cfg := config.DefaultConfig(id)
	cfg.Root = *root
	cfg.DefaultLanguage = *lang
	if *author != "" {
		cfg.DefaultAuthor = *author
	}

	if err := config.SaveConfig(cfg, cfgPath); err != nil {
		errors.FatalError(err, globals.JSON)
	}

	if !globals.Quiet {
		ui.Successf("Created %s", cfgPath)
	}
}
