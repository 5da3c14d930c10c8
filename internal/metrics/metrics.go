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

// Package metrics exposes Prometheus counters for pool operations, served
// over HTTP by the serve-metrics subcommand.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StoreTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fnpool_store_total",
		Help: "Number of store() calls, partitioned by outcome.",
	}, []string{"outcome"})

	OverlayTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fnpool_overlay_total",
		Help: "Number of overlays successfully written by store() calls.",
	})

	IntegrityFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fnpool_integrity_failures_total",
		Help: "Number of IntegrityFailure errors raised by validate().",
	})
)

func init() {
	prometheus.MustRegister(StoreTotal, OverlayTotal, IntegrityFailuresTotal)
}

// Serve starts the /metrics HTTP endpoint at addr and blocks until ctx is
// cancelled.
func Serve(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics.http.start", "addr", addr, "path", "/metrics")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Warn("metrics.http.error", "err", err)
		}
		return err
	}
}
