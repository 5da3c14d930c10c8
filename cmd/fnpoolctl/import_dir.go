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
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/schollz/progressbar/v3"

	"github.com/kraklabs/fnpool/internal/config"
	"github.com/kraklabs/fnpool/internal/errors"
	"github.com/kraklabs/fnpool/internal/metrics"
	"github.com/kraklabs/fnpool/internal/ui"
	"github.com/kraklabs/fnpool/pkg/pool"
)

// runImportDir executes the 'import-dir' CLI command: it walks dir, stores
// every .py file as one overlay, and prints a progress bar (suppressed in
// --quiet/--json mode).
//
// Flags:
//   - --lang: language tag recorded for every file (default: config's default_language)
//   - --author: author recorded on every stored object (default: config's default_author)
//   - --comment: overlay comment recorded for every file
func runImportDir(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("import-dir", flag.ExitOnError)
	lang := fs.String("lang", "", "Language tag for every file (default: config default)")
	author := fs.String("author", "", "Author recorded on stored objects (default: config default)")
	comment := fs.String("comment", "", "Overlay comment for every file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: fnpoolctl import-dir <dir> [options]

Walks <dir> and stores every .py file found as one overlay each.

Options:
`)
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		errors.FatalError(errors.NewInputError("Missing directory argument", "import-dir requires exactly one directory path", "Usage: fnpoolctl import-dir <dir>", nil), globals.JSON)
	}
	dir := rest[0]

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		errors.FatalError(err, globals.JSON)
	}
	if *lang == "" {
		*lang = cfg.DefaultLanguage
	}
	if *author == "" {
		*author = cfg.DefaultAuthor
	}

	p := pool.Open(cfg.StorageRoot())

	var files []string
	walkErr := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if isExcluded(path, cfg.Exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".py") && !isExcluded(path, cfg.Exclude) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		errors.FatalError(errors.NewInternalError("Cannot walk directory", walkErr.Error(), "Check the path exists and is readable", walkErr), globals.JSON)
	}

	var bar *progressbar.ProgressBar
	if !globals.Quiet {
		bar = progressbar.Default(int64(len(files)), "importing")
	}

	stored, failed := 0, 0
	for _, path := range files {
		src, err := os.ReadFile(path) //nolint:gosec // user-supplied project file
		if err != nil {
			failed++
			metrics.StoreTotal.WithLabelValues("read_error").Inc()
			ui.Warningf("skip %s: %v", path, err)
			if bar != nil {
				_ = bar.Add(1)
			}
			continue
		}

		fnHash, overlayHash, err := p.Store(string(src), *lang, *author, *comment)
		if err != nil {
			failed++
			metrics.StoreTotal.WithLabelValues("rejected").Inc()
			ui.Warningf("skip %s: %v", path, err)
		} else {
			stored++
			metrics.StoreTotal.WithLabelValues("ok").Inc()
			metrics.OverlayTotal.Inc()
			if globals.Verbose >= 1 {
				ui.Infof("%s -> %s@%s@%s", path, fnHash, *lang, overlayHash)
			}
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	if !globals.Quiet {
		ui.Header("Import Complete")
		fmt.Printf("Stored: %s\n", ui.CountText(stored))
		fmt.Printf("Failed: %s\n", ui.CountText(failed))
	}
}

func isExcluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = strings.TrimSuffix(pattern, "/**")
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}
