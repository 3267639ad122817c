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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/piptable/core/dom"
	"github.com/google/piptable/core/dom/htmldom"
	"github.com/google/piptable/core/tables"
)

type fixture struct {
	rows   int
	search bool
	pager  bool
	// values overrides the Value column.
	values []string
}

// html builds a table with sortable Name and Value columns and a plain Note
// column. Names are "Item 01".."Item NN"; values count down.
func (f fixture) html() string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><body>")
	if f.search {
		sb.WriteString(`<div class="pip-table-search"><input type="text"></div>`)
	}
	sb.WriteString(`<table id="inv"><thead><tr>`)
	sb.WriteString(`<th class="sortable">Name</th><th class="sortable">Value</th><th>Note</th>`)
	sb.WriteString(`</tr></thead><tbody>`)
	for i := 1; i <= f.rows; i++ {
		value := fmt.Sprint((f.rows - i + 1) * 5)
		if i-1 < len(f.values) {
			value = f.values[i-1]
		}
		note := "Aid"
		if i%2 == 0 {
			note = "Weapon"
		}
		fmt.Fprintf(&sb, "<tr><td>Item %02d</td><td>%s</td><td>%s</td></tr>", i, value, note)
	}
	sb.WriteString(`</tbody></table>`)
	if f.pager {
		sb.WriteString(`<div class="pip-table-pagination"><span class="pip-pagination-info"></span><div class="pip-pagination-controls"></div></div>`)
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func (f fixture) parse(t *testing.T) *htmldom.Document {
	t.Helper()
	doc, err := htmldom.ParseString(f.html())
	require.NoError(t, err)
	return doc
}

func full(rows int) fixture {
	return fixture{rows: rows, search: true, pager: true}
}

func bodyNames(doc *htmldom.Document) []string {
	var names []string
	for _, tr := range doc.GetElementByID("inv").Query("tbody").Children() {
		names = append(names, tr.Children()[0].Text())
	}
	return names
}

func columnTexts(doc *htmldom.Document, col int) []string {
	var out []string
	for _, tr := range doc.GetElementByID("inv").Query("tbody").Children() {
		out = append(out, tr.Children()[col].Text())
	}
	return out
}

func controlButtons(doc *htmldom.Document) []dom.Element {
	return doc.GetElementByID("inv").NextElementSibling().Query(".pip-pagination-controls").Children()
}

func labels(buttons []dom.Element) []string {
	out := make([]string, len(buttons))
	for i, b := range buttons {
		out[i] = b.Text()
	}
	return out
}

func infoText(doc *htmldom.Document) string {
	return doc.GetElementByID("inv").NextElementSibling().Query(".pip-pagination-info").Text()
}

func header(doc *htmldom.Document, i int) dom.Element {
	return doc.GetElementByID("inv").QueryAll("th")[i]
}

func searchInput(doc *htmldom.Document) dom.Element {
	return doc.GetElementByID("inv").PreviousElementSibling().Query("input")
}

func buttonByLabel(t *testing.T, doc *htmldom.Document, label string) dom.Element {
	t.Helper()
	for _, b := range controlButtons(doc) {
		if b.Text() == label {
			return b
		}
	}
	t.Fatalf("no button %q among %v", label, labels(controlButtons(doc)))
	return nil
}

func TestMissingTableIsInert(t *testing.T) {
	doc := full(3).parse(t)
	c := New(doc, "nope")

	assert.False(t, c.Active())
	assert.Equal(t, 1, c.State().CurrentPage)
	assert.False(t, c.State().Sorted())

	c.Sort(0)
	c.Search("x")
	c.GoTo(2)
	c.Next()
	c.Prev()
	c.Dispose()

	assert.Equal(t, 1, c.State().CurrentPage)
	assert.Empty(t, c.VisibleRows())
	assert.Equal(t, 0, doc.ListenerCount())
	assert.Equal(t, "", infoText(doc))
}

func TestNilDocumentIsInert(t *testing.T) {
	c := New(nil, "inv")
	assert.False(t, c.Active())
	c.Sort(0)
	assert.Equal(t, 1, c.State().CurrentPage)
}

func TestCurrentPageStartsAtOne(t *testing.T) {
	configs := [][]Option{
		nil,
		{WithItemsPerPage(1)},
		{WithItemsPerPage(3), WithSorting(false)},
		{WithSearch(false), WithPagination(false)},
		{WithConfig(Config{ItemsPerPage: 50})},
	}
	for _, opts := range configs {
		c := New(full(12).parse(t), "inv", opts...)
		assert.Equal(t, 1, c.State().CurrentPage)
	}
}

func TestTwelveRowsFirstPage(t *testing.T) {
	doc := full(12).parse(t)
	c := New(doc, "inv")
	require.True(t, c.Active())

	assert.Len(t, bodyNames(doc), 10)
	assert.Equal(t, "Item 01", bodyNames(doc)[0])
	assert.Equal(t, "Showing 1-10 of 12", infoText(doc))

	buttons := controlButtons(doc)
	assert.Equal(t, []string{PrevLabel, "1", "2", NextLabel}, labels(buttons))
	assert.True(t, buttons[0].Disabled(), "prev disabled on first page")
	assert.False(t, buttons[3].Disabled(), "next enabled")
	assert.True(t, buttons[1].HasClass(ClassActive))
	assert.False(t, buttons[2].HasClass(ClassActive))
}

func TestTwelveRowsSecondPage(t *testing.T) {
	doc := full(12).parse(t)
	c := New(doc, "inv")

	doc.Click(buttonByLabel(t, doc, NextLabel))

	assert.Equal(t, 2, c.State().CurrentPage)
	assert.Equal(t, []string{"Item 11", "Item 12"}, bodyNames(doc))
	assert.Equal(t, "Showing 11-12 of 12", infoText(doc))
	buttons := controlButtons(doc)
	assert.False(t, buttons[0].Disabled())
	assert.True(t, buttons[len(buttons)-1].Disabled(), "next disabled on last page")
	assert.True(t, buttons[2].HasClass(ClassActive))

	doc.Click(buttonByLabel(t, doc, PrevLabel))
	assert.Equal(t, 1, c.State().CurrentPage)
	assert.Equal(t, "Showing 1-10 of 12", infoText(doc))
}

func TestPageButtonClick(t *testing.T) {
	doc := full(30).parse(t)
	c := New(doc, "inv")

	doc.Click(buttonByLabel(t, doc, "3"))
	assert.Equal(t, 3, c.State().CurrentPage)
	assert.Equal(t, "Item 21", bodyNames(doc)[0])
	assert.Equal(t, "Showing 21-30 of 30", infoText(doc))
}

func TestDisabledButtonsIgnoreClicks(t *testing.T) {
	doc := full(12).parse(t)
	c := New(doc, "inv")

	doc.Click(buttonByLabel(t, doc, PrevLabel))
	assert.Equal(t, 1, c.State().CurrentPage)

	c.GoTo(2)
	doc.Click(buttonByLabel(t, doc, NextLabel))
	assert.Equal(t, 2, c.State().CurrentPage)

	// Next and Prev also guard on their own.
	c.Next()
	assert.Equal(t, 2, c.State().CurrentPage)
	c.GoTo(1)
	c.Prev()
	assert.Equal(t, 1, c.State().CurrentPage)
}

func TestSearchNoMatches(t *testing.T) {
	doc := full(12).parse(t)
	c := New(doc, "inv")

	doc.Input(searchInput(doc), "nuka-cola")

	assert.Equal(t, "nuka-cola", c.State().SearchTerm)
	assert.Empty(t, bodyNames(doc))
	assert.Equal(t, "Showing 0-0 of 0", infoText(doc))
	buttons := controlButtons(doc)
	assert.True(t, buttons[0].Disabled())
	assert.True(t, buttons[len(buttons)-1].Disabled())
	assert.Equal(t, 1, c.State().CurrentPage)
}

func TestSearchFiltersAndResetsPage(t *testing.T) {
	doc := full(25).parse(t)
	c := New(doc, "inv")
	c.GoTo(3)
	require.Equal(t, 3, c.State().CurrentPage)

	doc.Input(searchInput(doc), "WEAPON")

	assert.Equal(t, 1, c.State().CurrentPage)
	assert.Equal(t, "Showing 1-10 of 12", infoText(doc))
	for _, note := range columnTexts(doc, 2) {
		assert.Equal(t, "Weapon", note)
	}

	doc.Input(searchInput(doc), "item 07")
	assert.Equal(t, []string{"Item 07"}, bodyNames(doc))

	doc.Input(searchInput(doc), "")
	assert.Equal(t, "Showing 1-10 of 25", infoText(doc))
}

func TestFilteredRowsAreSubset(t *testing.T) {
	doc := full(25).parse(t)
	c := New(doc, "inv", WithItemsPerPage(100))

	for _, term := range []string{"", "1", "item", "AID", "0a", "zzz", "5Weap"} {
		c.Search(term)
		visible := c.VisibleRows()
		all := c.State().AllRows
		want := 0
		for _, r := range all {
			if strings.Contains(strings.ToLower(r.Text()), strings.ToLower(term)) {
				want++
			}
		}
		assert.Len(t, visible, want, "term %q", term)
		for _, r := range visible {
			assert.Contains(t, all, r)
		}
	}
}

func TestHeaderClickSortsAndToggles(t *testing.T) {
	doc := full(5).parse(t)
	c := New(doc, "inv")
	name := header(doc, 0)

	doc.Click(name)
	assert.True(t, c.State().Sorted())
	assert.Equal(t, 0, c.State().SortColumn)
	assert.Equal(t, tables.Ascending, c.State().SortDirection)
	assert.Equal(t, []string{"Item 01", "Item 02", "Item 03", "Item 04", "Item 05"}, bodyNames(doc))
	assert.True(t, name.HasClass(ClassSortAsc))

	doc.Click(name)
	assert.Equal(t, tables.Descending, c.State().SortDirection)
	assert.Equal(t, []string{"Item 05", "Item 04", "Item 03", "Item 02", "Item 01"}, bodyNames(doc))
	assert.True(t, name.HasClass(ClassSortDesc))
	assert.False(t, name.HasClass(ClassSortAsc))

	doc.Click(name)
	assert.Equal(t, tables.Ascending, c.State().SortDirection)
	assert.Equal(t, "Item 01", bodyNames(doc)[0])
}

func TestSortNumericColumn(t *testing.T) {
	doc := fixture{rows: 4, pager: true, values: []string{"10", "9", "100", "1"}}.parse(t)
	New(doc, "inv")

	doc.Click(header(doc, 1))
	assert.Equal(t, []string{"1", "9", "10", "100"}, columnTexts(doc, 1))

	doc.Click(header(doc, 1))
	assert.Equal(t, []string{"100", "10", "9", "1"}, columnTexts(doc, 1))
}

func TestSortTextFallback(t *testing.T) {
	doc := fixture{rows: 4, values: []string{"Gamma", "Alpha", "beta", "7"}}.parse(t)
	New(doc, "inv")

	doc.Click(header(doc, 1))
	assert.Equal(t, []string{"7", "Alpha", "beta", "Gamma"}, columnTexts(doc, 1))
}

func TestSwitchingColumnResetsDirection(t *testing.T) {
	doc := full(5).parse(t)
	c := New(doc, "inv")
	name, value := header(doc, 0), header(doc, 1)

	doc.Click(name)
	doc.Click(name)
	require.Equal(t, tables.Descending, c.State().SortDirection)

	doc.Click(value)
	assert.Equal(t, 1, c.State().SortColumn)
	assert.Equal(t, tables.Ascending, c.State().SortDirection)
	assert.False(t, name.HasClass(ClassSortAsc))
	assert.False(t, name.HasClass(ClassSortDesc))
	assert.True(t, value.HasClass(ClassSortAsc))
	// Values count down, so ascending by value reverses the names.
	assert.Equal(t, "Item 05", bodyNames(doc)[0])
}

func TestSortReordersCanonicalRows(t *testing.T) {
	doc := full(12).parse(t)
	c := New(doc, "inv")

	c.Sort(1)
	all := c.State().AllRows
	require.Len(t, all, 12)
	assert.Equal(t, "Item 12", all[0].Cell(0))
	assert.Equal(t, "Item 01", all[11].Cell(0))

	// Page two shows the tail of the canonical order.
	c.GoTo(2)
	assert.Equal(t, []string{"Item 02", "Item 01"}, bodyNames(doc))

	// Filtering is a view and leaves the canonical order alone.
	c.Search("item 1")
	assert.Equal(t, "Item 12", c.State().AllRows[0].Cell(0))
	assert.Equal(t, []string{"Item 12", "Item 11", "Item 10"}, bodyNames(doc))
}

func TestSortIndexCountsSortableHeadersOnly(t *testing.T) {
	doc, err := htmldom.ParseString(`<table id="inv"><thead><tr>
		<th class="sortable">Name</th><th>Note</th><th class="sortable">Value</th>
	</tr></thead><tbody>
		<tr><td>b</td><td>2</td><td>x</td></tr>
		<tr><td>a</td><td>1</td><td>y</td></tr>
	</tbody></table>`)
	require.NoError(t, err)
	c := New(doc, "inv")

	// The second sortable header maps to cell index 1.
	doc.Click(doc.GetElementByID("inv").QueryAll("th")[2])
	assert.Equal(t, 1, c.State().SortColumn)
	assert.Equal(t, "a", c.VisibleRows()[0].Cell(0))
}

func TestDisabledFeaturesIgnoreEvents(t *testing.T) {
	doc := full(12).parse(t)
	c := New(doc, "inv", WithSorting(false), WithSearch(false), WithPagination(false))

	doc.Click(header(doc, 0))
	doc.Input(searchInput(doc), "zzz")

	assert.False(t, c.State().Sorted())
	assert.Equal(t, "", c.State().SearchTerm)
	assert.Equal(t, 0, doc.ListenerCount())

	// The page slice still applies; the region is left alone.
	assert.Len(t, bodyNames(doc), 10)
	assert.Equal(t, "", infoText(doc))
	assert.Empty(t, controlButtons(doc))

	// The programmatic API keeps working.
	c.Search("item 12")
	assert.Equal(t, []string{"Item 12"}, bodyNames(doc))
}

func TestMissingSiblingsDegrade(t *testing.T) {
	doc := fixture{rows: 12}.parse(t)
	c := New(doc, "inv")
	require.True(t, c.Active())

	// Only header listeners exist.
	assert.Equal(t, 2, doc.ListenerCount())
	assert.Len(t, bodyNames(doc), 10)

	c.Next()
	assert.Equal(t, 2, c.State().CurrentPage)
	assert.Equal(t, []string{"Item 11", "Item 12"}, bodyNames(doc))
}

func TestSiblingsWithoutMarkerClassAreIgnored(t *testing.T) {
	doc, err := htmldom.ParseString(`<div class="other"><input></div>
		<table id="inv"><tbody><tr><td>a</td></tr></tbody></table>
		<div class="other"><span class="pip-pagination-info"></span></div>`)
	require.NoError(t, err)
	New(doc, "inv")

	assert.Equal(t, 0, doc.ListenerCount())
	assert.Equal(t, "", doc.GetElementByID("inv").NextElementSibling().Text())
}

func TestExplicitBindings(t *testing.T) {
	doc, err := htmldom.ParseString(`<body>
		<header><input id="q"></header>
		<table id="inv"><thead><tr><th class="sortable">Name</th></tr></thead><tbody>
			<tr><td>Stimpak</td></tr><tr><td>RadAway</td></tr><tr><td>Rad-X</td></tr>
		</tbody></table>
		<p>between</p>
		<footer id="pager"><span class="pip-pagination-info"></span><nav class="pip-pagination-controls"></nav></footer>
	</body>`)
	require.NoError(t, err)

	c := New(doc, "inv",
		WithItemsPerPage(2),
		WithSearchBox(doc.GetElementByID("q")),
		WithPaginationRegion(doc.GetElementByID("pager")),
	)

	info := doc.GetElementByID("pager").Query(".pip-pagination-info")
	assert.Equal(t, "Showing 1-2 of 3", info.Text())

	doc.Input(doc.GetElementByID("q"), "rad")
	assert.Equal(t, "rad", c.State().SearchTerm)
	assert.Equal(t, "Showing 1-2 of 2", info.Text())
}

func TestPageClampedToLastPage(t *testing.T) {
	doc := full(25).parse(t)
	c := New(doc, "inv")

	c.GoTo(99)
	assert.Equal(t, 3, c.State().CurrentPage)
	assert.Equal(t, "Showing 21-25 of 25", infoText(doc))

	c.GoTo(-2)
	assert.Equal(t, 1, c.State().CurrentPage)
}

func TestSlidingWindow(t *testing.T) {
	doc := full(60).parse(t)
	c := New(doc, "inv", WithItemsPerPage(5))

	assert.Equal(t, []string{PrevLabel, "1", "2", "3", "4", "5", NextLabel}, labels(controlButtons(doc)))

	c.GoTo(7)
	assert.Equal(t, []string{PrevLabel, "5", "6", "7", "8", "9", NextLabel}, labels(controlButtons(doc)))
	assert.True(t, buttonByLabel(t, doc, "7").HasClass(ClassActive))

	c.GoTo(12)
	assert.Equal(t, []string{PrevLabel, "8", "9", "10", "11", "12", NextLabel}, labels(controlButtons(doc)))

	for page := 1; page <= 12; page++ {
		c.GoTo(page)
		numbers := labels(controlButtons(doc))
		numbers = numbers[1 : len(numbers)-1]
		assert.LessOrEqual(t, len(numbers), 5)
		assert.Contains(t, numbers, fmt.Sprint(page))
	}
}

func TestItemsPerPageFallback(t *testing.T) {
	doc := full(12).parse(t)
	c := New(doc, "inv", WithItemsPerPage(0))
	assert.Equal(t, DefaultItemsPerPage, c.Config().ItemsPerPage)
	assert.Len(t, bodyNames(doc), 10)
}

func TestRenderDisplaysCopies(t *testing.T) {
	doc := full(3).parse(t)
	c := New(doc, "inv")

	shown := doc.GetElementByID("inv").Query("tbody").Children()
	require.Len(t, shown, 3)
	for i, r := range c.State().AllRows {
		original := r.Element.(*htmldom.Element).Node()
		assert.NotSame(t, original, shown[i].(*htmldom.Element).Node())
		assert.Nil(t, original.Parent, "original rows are detached from the body")
	}
	assert.Equal(t, []string{"Item 01", "Item 02", "Item 03"}, bodyNames(doc))
}

func TestRenderIsIdempotent(t *testing.T) {
	doc := full(30).parse(t)
	c := New(doc, "inv")
	c.Sort(1)
	c.GoTo(2)
	first := doc.String()

	c.GoTo(2)
	assert.Equal(t, first, doc.String())
}

func TestButtonListenersReplacedOnRender(t *testing.T) {
	doc := full(30).parse(t)
	c := New(doc, "inv")
	before := doc.ListenerCount()

	for i := 0; i < 5; i++ {
		c.Next()
		c.Prev()
	}
	doc.Click(buttonByLabel(t, doc, "2"))
	assert.Equal(t, before, doc.ListenerCount())
}

func TestDispose(t *testing.T) {
	doc := full(30).parse(t)
	c := New(doc, "inv")
	require.NotZero(t, doc.ListenerCount())
	next := buttonByLabel(t, doc, NextLabel)

	c.Dispose()
	assert.False(t, c.Active())
	assert.Equal(t, 0, doc.ListenerCount())

	doc.Click(next)
	doc.Click(header(doc, 0))
	doc.Input(searchInput(doc), "x")
	c.GoTo(3)
	assert.Equal(t, 1, c.State().CurrentPage)
	assert.False(t, c.State().Sorted())
	assert.Equal(t, "", c.State().SearchTerm)

	c.Dispose()
}
