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

package controller

import (
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/google/piptable/core/dom"
)

// Marker classes recognized in the host markup.
const (
	ClassSortable           = "sortable"
	ClassSortAsc            = "sort-asc"
	ClassSortDesc           = "sort-desc"
	ClassSearch             = "pip-table-search"
	ClassPagination         = "pip-table-pagination"
	ClassPaginationInfo     = "pip-pagination-info"
	ClassPaginationControls = "pip-pagination-controls"
	ClassActive             = "active"
)

// Labels of the previous and next page buttons.
const (
	PrevLabel = "‹"
	NextLabel = "›"
)

// DefaultItemsPerPage is used when Config.ItemsPerPage is not positive.
const DefaultItemsPerPage = 10

// Config is fixed when the controller is created.
type Config struct {
	ItemsPerPage int
	// Sortable binds clicks on th.sortable headers.
	Sortable bool
	// Searchable binds the search box input.
	Searchable bool
	// Paginated binds the pagination region.
	Paginated bool
	// Locale selects the collation for non-numeric cell values.
	Locale language.Tag
}

// DefaultConfig returns ten items per page with every feature enabled.
func DefaultConfig() Config {
	return Config{
		ItemsPerPage: DefaultItemsPerPage,
		Sortable:     true,
		Searchable:   true,
		Paginated:    true,
		Locale:       language.Und,
	}
}

type options struct {
	cfg              Config
	searchBox        dom.Element
	paginationRegion dom.Element
	logger           zerolog.Logger
}

// Option customizes New.
type Option func(*options)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithItemsPerPage sets the page size.
func WithItemsPerPage(n int) Option {
	return func(o *options) { o.cfg.ItemsPerPage = n }
}

// WithSorting enables or disables header-click sorting.
func WithSorting(on bool) Option {
	return func(o *options) { o.cfg.Sortable = on }
}

// WithSearch enables or disables the search box binding.
func WithSearch(on bool) Option {
	return func(o *options) { o.cfg.Searchable = on }
}

// WithPagination enables or disables the pagination region binding.
func WithPagination(on bool) Option {
	return func(o *options) { o.cfg.Paginated = on }
}

// WithLocale sets the collation locale.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.cfg.Locale = tag }
}

// WithSearchBox binds an explicit search container, or the input itself,
// instead of looking at the table's previous sibling.
func WithSearchBox(el dom.Element) Option {
	return func(o *options) { o.searchBox = el }
}

// WithPaginationRegion binds an explicit pagination container instead of
// looking at the table's next sibling.
func WithPaginationRegion(el dom.Element) Option {
	return func(o *options) { o.paginationRegion = el }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}
