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

// Package main implements the fnpoolctl CLI: a thin client of pkg/pool that
// adds a file, watches a directory, reads a function back, and lists what
// a function's pool entry holds.
//
// Usage:
//
//	fnpoolctl init                         Create .fnpool/project.yaml
//	fnpoolctl import-dir <dir>              Store every .py file under dir
//	fnpoolctl watch <dir>                   Re-store files on save
//	fnpoolctl get <locator>                 Print denormalized source
//	fnpoolctl list <hash>                   List languages/overlays
//	fnpoolctl validate <hash>               Re-hash and check integrity
//	fnpoolctl serve-metrics                 Serve Prometheus /metrics
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/fnpool/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags holds the flags that apply to every subcommand.
type GlobalFlags struct {
	JSON    bool
	NoColor bool
	Verbose int
	Quiet   bool
}

func main() {
	var (
		showVersion = flag.BoolP("version", "V", false, "Show version and exit")
		configPath  = flag.StringP("config", "c", "", "Path to .fnpool/project.yaml (default: auto-discover)")
		jsonOutput  = flag.Bool("json", false, "Output in JSON format (for applicable commands)")
		noColor     = flag.Bool("no-color", false, "Disable color output")
		verbose     = flag.CountP("verbose", "v", "Increase verbosity (-v for info, -vv for debug)")
		quiet       = flag.BoolP("quiet", "q", false, "Suppress non-essential output")
	)

	flag.SetInterspersed(false)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `fnpoolctl - content-addressed source function pool

Usage:
  fnpoolctl <command> [options]

Commands:
  init           Create .fnpool/project.yaml configuration
  config         Show current configuration
  import-dir     Store every .py file under a directory as one overlay each
  watch          Watch a directory and re-store files on save
  get            Print the denormalized source text for a locator
  list           List languages and overlays for a function hash
  validate       Re-hash a stored function and its overlays
  serve-metrics  Serve Prometheus metrics over HTTP
  completion     Generate shell completion script (bash|zsh|fish)

Global Options:
  --json            Output in JSON format (for applicable commands)
  --no-color        Disable color output (respects NO_COLOR env var)
  -v, --verbose     Increase verbosity (-v for info, -vv for debug)
  -q, --quiet       Suppress non-essential output
  -c, --config      Path to .fnpool/project.yaml
  -V, --version     Show version and exit

For detailed command help: fnpoolctl <command> --help
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("fnpoolctl version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	if os.Getenv("NO_COLOR") != "" {
		*noColor = true
	}

	if *quiet && *verbose > 0 {
		fmt.Fprintf(os.Stderr, "Error: cannot use --quiet and --verbose together\n")
		os.Exit(1)
	}

	if *jsonOutput {
		*quiet = true
	}

	globals := GlobalFlags{
		JSON:    *jsonOutput,
		NoColor: *noColor,
		Verbose: *verbose,
		Quiet:   *quiet,
	}

	ui.InitColors(globals.NoColor)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "init":
		runInit(cmdArgs, globals)
	case "config":
		runConfig(cmdArgs, *configPath, globals)
	case "import-dir":
		runImportDir(cmdArgs, *configPath, globals)
	case "watch":
		runWatch(cmdArgs, *configPath, globals)
	case "get":
		runGet(cmdArgs, *configPath, globals)
	case "list":
		runList(cmdArgs, *configPath, globals)
	case "validate":
		runValidate(cmdArgs, *configPath, globals)
	case "serve-metrics":
		runServeMetrics(cmdArgs, *configPath, globals)
	case "completion":
		runCompletion(cmdArgs, globals)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
