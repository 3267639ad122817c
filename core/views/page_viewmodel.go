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

package views

import (
	"github.com/google/safehtml"

	"github.com/google/piptable/core/query"
)

// TableID is the id of the table element on the demo page.
const TableID = "inventory"

// PageSizes are the page-size links offered on the demo page.
var PageSizes = []int{5, 10, 25}

// PageViewModel contains the dataset and options formatted for template consumption
type PageViewModel struct {
	Title   string
	Columns []ColumnHeader
	Rows    [][]string // Cell text, one slice per row

	// Feature bindings, mirrored by the options bar
	PerPage    int
	Sortable   bool
	Searchable bool
	Paginated  bool

	PageSizes     []PageSizeLink
	SortingURL    safehtml.URL // Toggles header sorting
	SearchURL     safehtml.URL // Toggles the search box binding
	PaginationURL safehtml.URL // Toggles the pagination binding

	WithWasm bool // Load the wasm controller in the browser
}

// ColumnHeader is one th of the table
type ColumnHeader struct {
	Name     string
	Sortable bool
}

// PageSizeLink is one entry of the page-size switcher
type PageSizeLink struct {
	Size    int
	URL     safehtml.URL
	Current bool
}

// BuildPageViewModel builds the view model for a dataset. Every column is
// sortable when the query enables sorting.
func BuildPageViewModel(title string, columns []string, rows [][]string, q *query.Query, withWasm bool) PageViewModel {
	vm := PageViewModel{
		Title:         title,
		Rows:          rows,
		PerPage:       q.PerPage,
		Sortable:      q.Sortable,
		Searchable:    q.Searchable,
		Paginated:     q.Paginated,
		SortingURL:    q.WithSortingToggled(),
		SearchURL:     q.WithSearchToggled(),
		PaginationURL: q.WithPaginationToggled(),
		WithWasm:      withWasm,
	}
	for _, name := range columns {
		vm.Columns = append(vm.Columns, ColumnHeader{Name: name, Sortable: q.Sortable})
	}
	for _, size := range PageSizes {
		vm.PageSizes = append(vm.PageSizes, PageSizeLink{
			Size:    size,
			URL:     q.WithPerPage(size),
			Current: size == q.PerPage,
		})
	}
	return vm
}
