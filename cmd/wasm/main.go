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

//go:build js && wasm

// Command wasm attaches table controllers inside the browser. Build with
//
//	GOOS=js GOARCH=wasm go build -o piptable.wasm ./cmd/wasm
package main

import (
	"net/url"
	"strconv"
	"syscall/js"

	"github.com/rs/zerolog"

	"github.com/google/piptable/core/controller"
	"github.com/google/piptable/core/dom/jsdom"
	"github.com/google/piptable/core/query"
)

func main() {
	doc := jsdom.Global()
	log := zerolog.New(zerolog.ConsoleWriter{Out: consoleWriter{}, NoColor: true}).Level(zerolog.InfoLevel)

	defaults := controller.DefaultConfig()
	if u, err := url.Parse(js.Global().Get("location").Get("href").String()); err == nil {
		defaults = query.NewQuery(u, defaults).Config()
	}

	api := js.Global().Get("Object").New()
	api.Set("create", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return js.Null()
		}
		cfg := defaults
		if len(args) > 1 {
			cfg = optionsFromObject(args[1], cfg)
		}
		c := controller.New(doc, args[0].String(), controller.WithConfig(cfg), controller.WithLogger(log))
		return handle(c)
	}))
	js.Global().Set("PipTable", api)

	attached := 0
	for _, el := range doc.QueryAll("table[data-pip-table]") {
		if el.ID() == "" {
			log.Warn().Msg("skipping table without id")
			continue
		}
		cfg := optionsFromDataset(el.(*jsdom.Element).JSValue(), defaults)
		controller.New(doc, el.ID(), controller.WithConfig(cfg), controller.WithLogger(log))
		attached++
	}
	log.Info().Int("tables", attached).Msg("piptable ready")

	select {}
}

// handle exposes c to JavaScript. Its functions are released on dispose.
func handle(c *controller.Controller) js.Value {
	obj := js.Global().Get("Object").New()
	var funcs []js.Func
	bind := func(name string, fn func(args []js.Value) any) {
		f := js.FuncOf(func(this js.Value, args []js.Value) any { return fn(args) })
		funcs = append(funcs, f)
		obj.Set(name, f)
	}

	bind("sort", func(args []js.Value) any {
		if len(args) > 0 {
			c.Sort(args[0].Int())
		}
		return nil
	})
	bind("search", func(args []js.Value) any {
		term := ""
		if len(args) > 0 {
			term = args[0].String()
		}
		c.Search(term)
		return nil
	})
	bind("goTo", func(args []js.Value) any {
		if len(args) > 0 {
			c.GoTo(args[0].Int())
		}
		return nil
	})
	bind("next", func([]js.Value) any { c.Next(); return nil })
	bind("prev", func([]js.Value) any { c.Prev(); return nil })
	bind("state", func([]js.Value) any {
		s := c.State()
		p := c.Page()
		out := map[string]any{
			"currentPage":   s.CurrentPage,
			"sortColumn":    s.SortColumn,
			"sortDirection": s.SortDirection.String(),
			"searchTerm":    s.SearchTerm,
			"totalPages":    p.Pages,
			"totalItems":    p.TotalItems,
		}
		return js.ValueOf(out)
	})
	bind("dispose", func([]js.Value) any {
		c.Dispose()
		for _, f := range funcs {
			f.Release()
		}
		funcs = nil
		return nil
	})
	obj.Set("active", c.Active())
	return obj
}

// optionsFromObject reads {itemsPerPage, sortable, searchable, paginated}.
func optionsFromObject(v js.Value, cfg controller.Config) controller.Config {
	if v.Type() != js.TypeObject {
		return cfg
	}
	if n := v.Get("itemsPerPage"); n.Type() == js.TypeNumber {
		cfg.ItemsPerPage = n.Int()
	}
	for name, dst := range map[string]*bool{
		"sortable":   &cfg.Sortable,
		"searchable": &cfg.Searchable,
		"paginated":  &cfg.Paginated,
	} {
		if b := v.Get(name); b.Type() == js.TypeBoolean {
			*dst = b.Bool()
		}
	}
	return cfg
}

// optionsFromDataset reads data-items-per-page, data-sortable,
// data-searchable and data-paginated.
func optionsFromDataset(el js.Value, cfg controller.Config) controller.Config {
	ds := el.Get("dataset")
	if s := ds.Get("itemsPerPage"); s.Type() == js.TypeString {
		if n, err := strconv.Atoi(s.String()); err == nil {
			cfg.ItemsPerPage = n
		}
	}
	for name, dst := range map[string]*bool{
		"sortable":   &cfg.Sortable,
		"searchable": &cfg.Searchable,
		"paginated":  &cfg.Paginated,
	} {
		if s := ds.Get(name); s.Type() == js.TypeString {
			if b, err := strconv.ParseBool(s.String()); err == nil {
				*dst = b
			}
		}
	}
	return cfg
}

type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}
