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

// Package pagination computes page bounds, the page-button window and the
// info line for a filtered row count.
package pagination

import "fmt"

// MaxButtons is the largest number of numbered page buttons shown at once.
const MaxButtons = 5

// Page describes the current page of a filtered row set.
type Page struct {
	// Number is the clamped 1-based current page.
	Number int
	// Pages is ceil(TotalItems / PerPage); zero when there are no items.
	Pages int
	// DisplayPages is Pages floored at 1.
	DisplayPages int
	TotalItems   int
	PerPage      int

	// Start and End bound the page slice: rows[Start:End].
	Start int
	End   int

	HasPrev bool
	HasNext bool

	// Window holds the page numbers to render as buttons, ascending.
	Window []int
}

// TotalPages returns ceil(count / perPage). perPage must be positive.
func TotalPages(count, perPage int) int {
	if count <= 0 {
		return 0
	}
	return (count + perPage - 1) / perPage
}

// Clamp limits page to [1, max(1, pages)].
func Clamp(page, pages int) int {
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Compute builds the Page for count filtered items with the requested page
// number. A perPage below 1 is treated as 1.
func Compute(count, perPage, page int) Page {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	pages := TotalPages(count, perPage)
	display := max(1, pages)
	page = Clamp(page, display)

	start := min((page-1)*perPage, count)
	end := min(page*perPage, count)

	return Page{
		Number:       page,
		Pages:        pages,
		DisplayPages: display,
		TotalItems:   count,
		PerPage:      perPage,
		Start:        start,
		End:          end,
		HasPrev:      page > 1,
		HasNext:      pages > 0 && page < pages,
		Window:       Window(page, display, MaxButtons),
	}
}

// Window returns up to size consecutive page numbers centred on current and
// kept inside [1, pages]. Near either edge the window shifts instead of
// shrinking.
func Window(current, pages, size int) []int {
	if pages < 1 || size < 1 {
		return nil
	}
	first := max(1, current-size/2)
	last := min(pages, first+size-1)
	if last-first < size-1 {
		first = max(1, last-size+1)
	}
	out := make([]int, 0, last-first+1)
	for p := first; p <= last; p++ {
		out = append(out, p)
	}
	return out
}

// FirstItem is the 1-based index of the first item on the page, or 0 when
// there are no items.
func (p Page) FirstItem() int {
	if p.TotalItems == 0 {
		return 0
	}
	return p.Start + 1
}

// LastItem is the 1-based index of the last item on the page.
func (p Page) LastItem() int {
	return p.End
}

// Info returns the "Showing a-b of n" line.
func (p Page) Info() string {
	return fmt.Sprintf("Showing %d-%d of %d", p.FirstItem(), p.LastItem(), p.TotalItems)
}
