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
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Direction is the sort direction of the active column.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc", the suffix of the header indicator class.
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Toggle flips the direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// SortRows reorders rows in place by the cell at column. The sort is stable,
// so rows that compare equal keep their previous relative order in both
// directions.
func SortRows(rows []*Row, column int, dir Direction, cmp *Comparer) {
	sort.SliceStable(rows, func(i, j int) bool {
		c := cmp.Compare(rows[i].Cell(column), rows[j].Cell(column))
		if dir == Descending {
			c = -c
		}
		return c < 0
	})
}

// FilterRows returns the rows whose concatenated cell text contains term,
// ignoring case. The input slice is not modified and order is preserved.
// An empty term returns rows unchanged.
func FilterRows(rows []*Row, term string) []*Row {
	if term == "" {
		return rows
	}
	folder := cases.Fold()
	needle := folder.String(term)
	out := make([]*Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(r.foldedText(folder), needle) {
			out = append(out, r)
		}
	}
	return out
}
