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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/fnpool/internal/errors"
	"github.com/kraklabs/fnpool/internal/metrics"
)

// runServeMetrics executes the 'serve-metrics' CLI command: a foreground
// HTTP server exposing fnpool_store_total, fnpool_overlay_total, and
// fnpool_integrity_failures_total on /metrics, for scraping independently
// of any single long-running operation.
func runServeMetrics(args []string, _ string, globals GlobalFlags) {
	fs := flag.NewFlagSet("serve-metrics", flag.ExitOnError)
	addr := fs.String("addr", ":9090", "HTTP listen address")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fnpoolctl serve-metrics [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(globals),
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := metrics.Serve(ctx, *addr, logger); err != nil {
		errors.FatalError(errors.NewInternalError("Metrics server failed", err.Error(), "Check the address is not already in use", err), globals.JSON)
	}
}

func slogLevel(globals GlobalFlags) slog.Level {
	switch {
	case globals.Verbose >= 2:
		return slog.LevelDebug
	case globals.Verbose >= 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}
