/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Piptable Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/google/piptable/core/config"
	"github.com/google/piptable/core/controller"
	"github.com/google/piptable/core/query"
	"github.com/google/piptable/core/rendering"
	"github.com/google/piptable/core/views"
	"github.com/google/piptable/demo"
)

// Wasm assets served from ServerConfig.WasmDir.
const (
	wasmBinary = "piptable.wasm"
	wasmExecJS = "wasm_exec.js"
)

// Server represents the demo server with all its dependencies
type Server struct {
	cfg      config.Config
	log      zerolog.Logger
	renderer *rendering.PageRenderer
	dataset  *demo.Dataset
}

// NewServer creates a new server for the given dataset
func NewServer(cfg config.Config, dataset *demo.Dataset, log zerolog.Logger) (*Server, error) {
	renderer, err := rendering.NewPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		renderer: renderer,
		dataset:  dataset,
	}, nil
}

// wasmEnabled reports whether the wasm controller can be served.
func (s *Server) wasmEnabled() bool {
	if s.cfg.Server.WasmDir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(s.cfg.Server.WasmDir, wasmBinary))
	return err == nil
}

// Handler returns the HTTP routes of the demo.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		s.handlePage(w, r, !s.wasmEnabled())
	})
	mux.HandleFunc("GET /static", func(w http.ResponseWriter, r *http.Request) {
		s.handlePage(w, r, true)
	})
	mux.HandleFunc("GET /"+wasmBinary, s.handleAsset(wasmBinary, "application/wasm"))
	mux.HandleFunc("GET /"+wasmExecJS, s.handleAsset(wasmExecJS, "text/javascript; charset=utf-8"))
	return s.logRequests(mux)
}

// TimingCollector collects timing measurements for various operations
type TimingCollector struct {
	start time.Time
	event *zerolog.Event
}

// NewTimingCollector creates a new timing collector writing to event
func NewTimingCollector(event *zerolog.Event) *TimingCollector {
	return &TimingCollector{start: time.Now(), event: event}
}

// Record records the time elapsed since since under operation
func (tc *TimingCollector) Record(operation string, since time.Time) {
	tc.event.Dur(operation, time.Since(since))
}

// Done writes the collected timings
func (tc *TimingCollector) Done(msg string) {
	tc.event.Dur("total", time.Since(tc.start)).Msg(msg)
}

// handlePage renders the demo page. A static page is prerendered with the
// first page applied; otherwise every row is sent for the wasm controller.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request, static bool) {
	timing := NewTimingCollector(s.log.Debug().Str("path", r.URL.Path).Bool("static", static))

	parseStart := time.Now()
	q := query.NewQuery(r.URL, s.cfg.Table.Controller())
	timing.Record("parse_query", parseStart)

	vmStart := time.Now()
	vm := views.BuildPageViewModel(s.dataset.Title, s.dataset.Columns, s.dataset.Rows, q, !static)
	timing.Record("build_viewmodel", vmStart)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	renderStart := time.Now()
	var err error
	if static {
		err = s.renderer.Prerender(w, vm, rendering.StepsFromQuery(r.URL.Query()),
			controller.WithConfig(q.Config()),
			controller.WithLogger(s.log),
		)
	} else {
		err = s.renderer.Render(w, vm)
	}
	timing.Record("render", renderStart)
	if err != nil {
		// The response may already be partially written.
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("page rendering error")
		return
	}
	timing.Done("page rendered")
}

func (s *Server) handleAsset(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Server.WasmDir == "" {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(s.cfg.Server.WasmDir, name)
		if _, err := os.Stat(path); err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		http.ServeFile(w, r, path)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", "http://"+s.cfg.Server.Addr).Bool("wasm", s.wasmEnabled()).Msg("server starting")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	}
}
