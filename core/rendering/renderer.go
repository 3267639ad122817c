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
	"bytes"
	"embed"
	"fmt"
	"io"

	"github.com/google/safehtml/template"

	"github.com/google/piptable/core/controller"
	"github.com/google/piptable/core/dom/htmldom"
	"github.com/google/piptable/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// PageRenderer handles rendering of page view models to HTML
type PageRenderer struct {
	pageTemplate *template.Template
}

// NewPageRenderer creates a new page renderer
func NewPageRenderer() (*PageRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	pageTemplate, err := template.New("page.html").ParseFS(trustedFS, "templates/page.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &PageRenderer{pageTemplate: pageTemplate}, nil
}

// Render writes the page with every row in the table body, ready for the
// browser-side controller.
func (r *PageRenderer) Render(w io.Writer, vm views.PageViewModel) error {
	return r.pageTemplate.Execute(w, vm)
}

// Document renders vm and parses the result into an element tree.
func (r *PageRenderer) Document(vm views.PageViewModel) (*htmldom.Document, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, vm); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return htmldom.Parse(&buf)
}

// Step acts on a prerendered controller, e.g. to sort or search before the
// snapshot is written.
type Step func(*controller.Controller)

// Prerender renders vm, attaches a controller to the table, applies steps
// in order and writes the resulting snapshot. The snapshot shows the
// current page only and its buttons are inert without a browser-side
// controller.
func (r *PageRenderer) Prerender(w io.Writer, vm views.PageViewModel, steps []Step, opts ...controller.Option) error {
	doc, err := r.Document(vm)
	if err != nil {
		return err
	}
	c := controller.New(doc, views.TableID, opts...)
	for _, step := range steps {
		step(c)
	}
	c.Dispose()
	if err := doc.Render(w); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
