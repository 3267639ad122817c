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

package main

import (
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/google/piptable/core/config"
	"github.com/google/piptable/core/controller"
	"github.com/google/piptable/core/query"
	"github.com/google/piptable/core/rendering"
	"github.com/google/piptable/core/server"
	"github.com/google/piptable/core/views"
	"github.com/google/piptable/demo"
)

var csvFlag = &cli.StringFlag{
	Name:  "csv",
	Usage: "load the table from a CSV file instead of the built-in inventory",
}

// snapshotFlags drive the controller before a snapshot is written.
var snapshotFlags = []cli.Flag{
	csvFlag,
	&cli.IntFlag{Name: "per-page", Usage: "rows per page (0 keeps the configured value)"},
	&cli.StringFlag{Name: "search", Usage: "filter term"},
	&cli.IntSliceFlag{Name: "sort", Usage: "sort by column index; repeat to toggle direction"},
	&cli.IntFlag{Name: "page", Value: 1, Usage: "page to show"},
}

func main() {
	app := &cli.App{
		Name:  "piptable",
		Usage: "sortable, searchable, paginated tables",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve the demo page",
				Flags: []cli.Flag{
					csvFlag,
					&cli.StringFlag{Name: "addr", Usage: "listen address (overrides server.addr)"},
					&cli.StringFlag{Name: "wasm-dir", Usage: "directory holding piptable.wasm and wasm_exec.js"},
				},
				Action: serve,
			},
			{
				Name:   "render",
				Usage:  "write a prerendered page snapshot to stdout",
				Flags:  snapshotFlags,
				Action: render,
			},
			{
				Name:   "preview",
				Usage:  "print the current page as a terminal table",
				Flags:  snapshotFlags,
				Action: preview,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "piptable: %v\n", err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) (config.Config, zerolog.Logger, *demo.Dataset, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, err
	}
	log := cfg.Log.Logger()

	path := cfg.Data.CSVPath
	if c.IsSet("csv") {
		path = c.String("csv")
	}
	if path == "" {
		return cfg, log, demo.Inventory(), nil
	}
	ds, err := demo.LoadCSV(path)
	if err != nil {
		return config.Config{}, log, nil, err
	}
	log.Info().Str("path", path).Int("rows", len(ds.Rows)).Msg("loaded CSV dataset")
	return cfg, log, ds, nil
}

func serve(c *cli.Context) error {
	cfg, log, ds, err := setup(c)
	if err != nil {
		return err
	}
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}
	if c.IsSet("wasm-dir") {
		cfg.Server.WasmDir = c.String("wasm-dir")
	}

	srv, err := server.NewServer(cfg, ds, log)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

// snapshot renders the dataset, attaches a controller and applies the
// snapshot flags. The controller is returned still attached.
func snapshot(c *cli.Context, cfg config.Config, log zerolog.Logger, ds *demo.Dataset) (*controller.Controller, error) {
	tc := cfg.Table.Controller()
	if n := c.Int("per-page"); n > 0 {
		tc.ItemsPerPage = n
	}
	q := query.NewQuery(&url.URL{Path: "/"}, tc)

	renderer, err := rendering.NewPageRenderer()
	if err != nil {
		return nil, err
	}
	doc, err := renderer.Document(views.BuildPageViewModel(ds.Title, ds.Columns, ds.Rows, q, false))
	if err != nil {
		return nil, err
	}
	ctl := controller.New(doc, views.TableID, controller.WithConfig(q.Config()), controller.WithLogger(log))
	for _, step := range snapshotSteps(c) {
		step(ctl)
	}
	return ctl, nil
}

func snapshotSteps(c *cli.Context) []rendering.Step {
	var steps []rendering.Step
	if term := c.String("search"); term != "" {
		steps = append(steps, func(ctl *controller.Controller) { ctl.Search(term) })
	}
	for _, col := range c.IntSlice("sort") {
		steps = append(steps, func(ctl *controller.Controller) { ctl.Sort(col) })
	}
	if page := c.Int("page"); page > 1 {
		steps = append(steps, func(ctl *controller.Controller) { ctl.GoTo(page) })
	}
	return steps
}

func render(c *cli.Context) error {
	cfg, log, ds, err := setup(c)
	if err != nil {
		return err
	}
	tc := cfg.Table.Controller()
	if n := c.Int("per-page"); n > 0 {
		tc.ItemsPerPage = n
	}
	q := query.NewQuery(&url.URL{Path: "/"}, tc)

	renderer, err := rendering.NewPageRenderer()
	if err != nil {
		return err
	}
	vm := views.BuildPageViewModel(ds.Title, ds.Columns, ds.Rows, q, false)
	return renderer.Prerender(os.Stdout, vm, snapshotSteps(c),
		controller.WithConfig(q.Config()),
		controller.WithLogger(log),
	)
}

func preview(c *cli.Context) error {
	cfg, log, ds, err := setup(c)
	if err != nil {
		return err
	}
	ctl, err := snapshot(c, cfg, log, ds)
	if err != nil {
		return err
	}
	defer ctl.Dispose()
	fmt.Println(rendering.Preview(ctl, ds.Columns))
	return nil
}

