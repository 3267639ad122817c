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

package tables

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/google/piptable/core/dom"
)

// Row is one line of the table body. Cells are captured once and never
// refreshed; Element is the original row, used as the template for display
// copies.
type Row struct {
	Element dom.Element
	Cells   []string

	text    string
	folded  string
	hasFold bool
}

// NewRow creates a row from its element and cell texts.
func NewRow(el dom.Element, cells ...string) *Row {
	return &Row{
		Element: el,
		Cells:   cells,
		text:    strings.Join(cells, ""),
	}
}

// CaptureRows reads the tr children of a table body. A nil body yields no rows.
func CaptureRows(body dom.Element) []*Row {
	if body == nil {
		return nil
	}
	var rows []*Row
	for _, tr := range body.Children() {
		if tr.Tag() != "tr" {
			continue
		}
		var cells []string
		for _, cell := range tr.Children() {
			if tag := cell.Tag(); tag == "td" || tag == "th" {
				cells = append(cells, cell.Text())
			}
		}
		rows = append(rows, NewRow(tr, cells...))
	}
	return rows
}

// Cell returns the text of cell i, or "" when the row is shorter.
func (r *Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Text returns the concatenation of all cell texts.
func (r *Row) Text() string {
	return r.text
}

// foldedText caches the case-folded row text; rows are immutable.
func (r *Row) foldedText(c cases.Caser) string {
	if !r.hasFold {
		r.folded = c.String(r.text)
		r.hasFold = true
	}
	return r.folded
}
