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

// Package controller attaches sorting, text filtering and pagination to a
// table already present in an element tree.
//
// A Controller is driven by events on a single goroutine, the way a UI
// event loop delivers them. It is not safe for concurrent use.
package controller

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/google/piptable/core/dom"
	"github.com/google/piptable/core/pagination"
	"github.com/google/piptable/core/tables"
)

// State is the mutable part of a controller.
type State struct {
	CurrentPage int
	// SortColumn is the active sort column, or -1 before the first sort.
	SortColumn    int
	SortDirection tables.Direction
	SearchTerm    string
	// AllRows is the canonical row order: original order until the first
	// sort, then the order of the most recent sort.
	AllRows []*tables.Row
}

// Sorted reports whether a sort column is active.
func (s State) Sorted() bool {
	return s.SortColumn >= 0
}

// Controller owns the state of one table.
type Controller struct {
	cfg Config
	log zerolog.Logger
	doc dom.Document
	cmp *tables.Comparer

	table       dom.Element
	body        dom.Element
	headers     []dom.Element
	searchInput dom.Element
	region      dom.Element
	info        dom.Element
	controls    dom.Element

	state   State
	page    pagination.Page
	visible []*tables.Row

	regs       dom.Registrations
	buttonRegs dom.Registrations
	active     bool
	disposed   bool
}

// New binds a controller to the table with the given id. When the table is
// missing the returned controller is inactive and every method is a no-op.
func New(doc dom.Document, tableID string, opts ...Option) *Controller {
	o := options{cfg: DefaultConfig(), logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cfg.ItemsPerPage <= 0 {
		o.cfg.ItemsPerPage = DefaultItemsPerPage
	}

	c := &Controller{
		cfg:   o.cfg,
		log:   o.logger.With().Str("table", tableID).Logger(),
		state: State{CurrentPage: 1, SortColumn: -1},
	}
	if doc == nil {
		c.log.Debug().Msg("no document, controller inactive")
		return c
	}
	c.table = doc.GetElementByID(tableID)
	if c.table == nil {
		c.log.Debug().Msg("table not found, controller inactive")
		return c
	}

	c.doc = doc
	c.active = true
	c.cmp = tables.NewComparer(c.cfg.Locale)
	c.body = c.table.Query("tbody")
	c.state.AllRows = tables.CaptureRows(c.body)

	if c.cfg.Sortable {
		c.setupSorting()
	}
	if c.cfg.Searchable {
		c.setupSearch(o.searchBox)
	}
	if c.cfg.Paginated {
		c.setupPagination(o.paginationRegion)
	}

	c.log.Debug().
		Int("rows", len(c.state.AllRows)).
		Int("sortable_headers", len(c.headers)).
		Bool("search", c.searchInput != nil).
		Bool("pagination", c.region != nil).
		Msg("table controller attached")

	c.render()
	return c
}

func (c *Controller) setupSorting() {
	c.headers = c.table.QueryAll("th." + ClassSortable)
	for i, h := range c.headers {
		column := i
		c.regs.Add(h.AddEventListener(dom.EventClick, func(dom.Event) {
			c.Sort(column)
		}))
	}
}

func (c *Controller) setupSearch(box dom.Element) {
	if box == nil {
		if prev := c.table.PreviousElementSibling(); prev != nil && prev.HasClass(ClassSearch) {
			box = prev
		}
	}
	if box == nil {
		c.log.Debug().Msg("no search box, search disabled")
		return
	}
	input := box
	if box.Tag() != "input" {
		input = box.Query("input")
	}
	if input == nil {
		c.log.Debug().Msg("search box has no input, search disabled")
		return
	}
	c.searchInput = input
	c.regs.Add(input.AddEventListener(dom.EventInput, func(ev dom.Event) {
		c.Search(ev.Value)
	}))
}

func (c *Controller) setupPagination(region dom.Element) {
	if region == nil {
		if next := c.table.NextElementSibling(); next != nil && next.HasClass(ClassPagination) {
			region = next
		}
	}
	if region == nil {
		c.log.Debug().Msg("no pagination region, pagination controls disabled")
		return
	}
	c.region = region
	c.info = region.Query("." + ClassPaginationInfo)
	c.controls = region.Query("." + ClassPaginationControls)
}

func (c *Controller) live() bool {
	return c.active && !c.disposed
}

// Active reports whether the controller found its table and is not disposed.
func (c *Controller) Active() bool {
	return c.live()
}

// Config returns the configuration in effect.
func (c *Controller) Config() Config {
	return c.cfg
}

// Sort activates column, or flips the direction when it is already active.
func (c *Controller) Sort(column int) {
	if !c.live() || column < 0 {
		return
	}
	if c.state.SortColumn == column {
		c.state.SortDirection = c.state.SortDirection.Toggle()
	} else {
		c.state.SortColumn = column
		c.state.SortDirection = tables.Ascending
	}

	for _, h := range c.headers {
		h.RemoveClass(ClassSortAsc, ClassSortDesc)
	}
	if column < len(c.headers) {
		c.headers[column].AddClass("sort-" + c.state.SortDirection.String())
	}

	tables.SortRows(c.state.AllRows, column, c.state.SortDirection, c.cmp)
	c.render()
}

// Search sets the filter term and returns to the first page.
func (c *Controller) Search(term string) {
	if !c.live() {
		return
	}
	c.state.SearchTerm = term
	c.state.CurrentPage = 1
	c.render()
}

// GoTo shows page n, clamped to the available pages.
func (c *Controller) GoTo(n int) {
	if !c.live() {
		return
	}
	c.state.CurrentPage = n
	c.render()
}

// Next moves forward one page unless on the last page.
func (c *Controller) Next() {
	if c.live() && c.page.HasNext {
		c.GoTo(c.page.Number + 1)
	}
}

// Prev moves back one page unless on the first page.
func (c *Controller) Prev() {
	if c.live() && c.page.HasPrev {
		c.GoTo(c.page.Number - 1)
	}
}

// State returns a snapshot of the controller state.
func (c *Controller) State() State {
	s := c.state
	s.AllRows = append([]*tables.Row(nil), c.state.AllRows...)
	return s
}

// Page returns the page computed by the last render.
func (c *Controller) Page() pagination.Page {
	return c.page
}

// VisibleRows returns the rows of the current page slice.
func (c *Controller) VisibleRows() []*tables.Row {
	return append([]*tables.Row(nil), c.visible...)
}

// Dispose detaches every listener the controller registered. Later events
// and method calls are ignored.
func (c *Controller) Dispose() {
	if !c.active || c.disposed {
		return
	}
	c.regs.RemoveAll()
	c.buttonRegs.RemoveAll()
	c.disposed = true
	c.log.Debug().Msg("table controller disposed")
}

func (c *Controller) render() {
	filtered := tables.FilterRows(c.state.AllRows, c.state.SearchTerm)
	c.page = pagination.Compute(len(filtered), c.cfg.ItemsPerPage, c.state.CurrentPage)
	c.state.CurrentPage = c.page.Number
	c.visible = append(c.visible[:0], filtered[c.page.Start:c.page.End]...)

	if c.body != nil {
		copies := make([]dom.Element, 0, len(c.visible))
		for _, r := range c.visible {
			if r.Element != nil {
				copies = append(copies, r.Element.Clone())
			}
		}
		c.body.ReplaceChildren(copies...)
	}

	if c.cfg.Paginated && c.region != nil {
		c.renderPagination()
	}

	c.log.Trace().
		Int("page", c.page.Number).
		Int("pages", c.page.Pages).
		Int("matches", c.page.TotalItems).
		Msg("rendered")
}

func (c *Controller) renderPagination() {
	if c.info != nil {
		c.info.SetText(c.page.Info())
	}
	if c.controls == nil {
		return
	}

	// The old buttons are discarded with their listeners.
	c.buttonRegs.RemoveAll()

	buttons := make([]dom.Element, 0, len(c.page.Window)+2)
	buttons = append(buttons, c.button(PrevLabel, !c.page.HasPrev, c.Prev))
	for _, n := range c.page.Window {
		target := n
		b := c.button(strconv.Itoa(n), false, func() { c.GoTo(target) })
		b.ToggleClass(ClassActive, n == c.page.Number)
		buttons = append(buttons, b)
	}
	buttons = append(buttons, c.button(NextLabel, !c.page.HasNext, c.Next))

	c.controls.ReplaceChildren(buttons...)
}

func (c *Controller) button(label string, disabled bool, onClick func()) dom.Element {
	b := c.doc.CreateElement("button")
	b.SetText(label)
	b.SetDisabled(disabled)
	c.buttonRegs.Add(b.AddEventListener(dom.EventClick, func(dom.Event) {
		onClick()
	}))
	return b
}
