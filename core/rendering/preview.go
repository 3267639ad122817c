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

package rendering

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/google/piptable/core/controller"
	"github.com/google/piptable/core/tables"
)

var (
	pipGreen    = lipgloss.Color("#41ff00")
	pipDim      = lipgloss.Color("#1f5f1f")
	headerStyle = lipgloss.NewStyle().Foreground(pipGreen).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(pipGreen).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(pipGreen)
)

// Preview draws the controller's current page as a terminal table with the
// info line and page window underneath.
func Preview(c *controller.Controller, columns []string) string {
	state := c.State()
	headers := make([]string, len(columns))
	for i, name := range columns {
		headers[i] = name
		if state.Sorted() && state.SortColumn == i {
			headers[i] += sortMarker(state.SortDirection)
		}
	}

	var rows [][]string
	for _, r := range c.VisibleRows() {
		cells := make([]string, len(columns))
		for i := range columns {
			cells[i] = strings.TrimSpace(r.Cell(i))
		}
		rows = append(rows, cells)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(pipDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return lipgloss.JoinVertical(lipgloss.Left, t.Render(), footerStyle.Render(previewFooter(c)))
}

func sortMarker(d tables.Direction) string {
	if d == tables.Descending {
		return " ▼"
	}
	return " ▲"
}

// previewFooter renders "Showing a-b of n  ‹ [1] 2 3 ›".
func previewFooter(c *controller.Controller) string {
	p := c.Page()
	var sb strings.Builder
	sb.WriteString(p.Info())
	sb.WriteString("  ")
	sb.WriteString(controller.PrevLabel)
	for _, n := range p.Window {
		if n == p.Number {
			fmt.Fprintf(&sb, " [%d]", n)
		} else {
			fmt.Fprintf(&sb, " %d", n)
		}
	}
	sb.WriteString(" ")
	sb.WriteString(controller.NextLabel)
	return sb.String()
}
