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
	"time"

	"github.com/fsnotify/fsnotify"
	flag "github.com/spf13/pflag"

	"github.com/kraklabs/fnpool/internal/config"
	"github.com/kraklabs/fnpool/internal/errors"
	"github.com/kraklabs/fnpool/internal/metrics"
	"github.com/kraklabs/fnpool/internal/ui"
	"github.com/kraklabs/fnpool/pkg/pool"
)

var watchSkipDirs = map[string]bool{
	".git": true, "node_modules": true, "vendor": true,
	"dist": true, "build": true, ".fnpool": true,
}

const watchDebounce = 500 * time.Millisecond

// runWatch executes the 'watch' CLI command: it watches dir for .py file
// writes and re-stores each one on save, debounced per file with a
// restartable timer keyed by path.
//
// Flags:
//   - --lang: language tag recorded for every stored file (default: config default)
//   - --author: author recorded on stored objects (default: config default)
//   - --comment: overlay comment recorded for every stored file
func runWatch(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	lang := fs.String("lang", "", "Language tag for stored files (default: config default)")
	author := fs.String("author", "", "Author recorded on stored objects (default: config default)")
	comment := fs.String("comment", "", "Overlay comment for stored files")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fnpoolctl watch <dir> [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	rest := fs.Args()
	if len(rest) != 1 {
		errors.FatalError(errors.NewInputError("Missing directory argument", "watch requires exactly one directory path", "Usage: fnpoolctl watch <dir>", nil), globals.JSON)
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

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		errors.FatalError(errors.NewInternalError("Cannot start file watcher", err.Error(), "Check inotify/kqueue limits on this system", err), globals.JSON)
	}
	defer watcher.Close()

	watchCount := 0
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if watchSkipDirs[base] || (strings.HasPrefix(base, ".") && base != ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err == nil {
			watchCount++
		}
		return nil
	})

	if !globals.Quiet {
		ui.Infof("watching %d directories under %s", watchCount, dir)
	}

	storeOne := func(path string) {
		src, err := os.ReadFile(path) //nolint:gosec // user-supplied project file
		if err != nil {
			ui.Warningf("skip %s: %v", path, err)
			return
		}
		fnHash, overlayHash, err := p.Store(string(src), *lang, *author, *comment)
		if err != nil {
			metrics.StoreTotal.WithLabelValues("rejected").Inc()
			ui.Warningf("skip %s: %v", path, err)
			return
		}
		metrics.StoreTotal.WithLabelValues("ok").Inc()
		metrics.OverlayTotal.Inc()
		if !globals.Quiet {
			ui.Infof("%s -> %s@%s@%s", path, fnHash, *lang, overlayHash)
		}
	}

	timers := map[string]*time.Timer{}
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".py") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := event.Name
			if t, exists := timers[path]; exists {
				t.Stop()
			}
			timers[path] = time.AfterFunc(watchDebounce, func() { storeOne(path) })
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			ui.Warningf("watch error: %v", err)
		}
	}
}
