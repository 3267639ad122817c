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

// Package htmldom is an in-memory dom.Document backed by golang.org/x/net/html.
// Events are synthetic: Click and Input dispatch directly to the listeners
// registered on the target and do not bubble.
package htmldom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/google/piptable/core/dom"
)

// Document implements dom.Document over a parsed HTML tree.
type Document struct {
	root      *html.Node
	listeners map[*html.Node]map[string][]*listener
}

type listener struct {
	fn      dom.Listener
	removed bool
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return NewDocument(root), nil
}

// ParseString is Parse for an in-memory string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// NewDocument wraps an existing node tree.
func NewDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]*listener),
	}
}

// Root returns the underlying document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, or returns an empty string on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// GetElementByID returns the first element whose id attribute equals id.
func (d *Document) GetElementByID(id string) dom.Element {
	if id == "" {
		return nil
	}
	sel := goquery.NewDocumentFromNode(d.root).Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	})
	if sel.Length() == 0 {
		return nil
	}
	return d.wrap(sel.Nodes[0])
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// Wrap exposes an arbitrary node of this document as an Element.
func (d *Document) Wrap(n *html.Node) dom.Element {
	return d.wrap(n)
}

func (d *Document) wrap(n *html.Node) dom.Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

// Click dispatches a click event to el. Disabled elements receive nothing,
// matching browser behavior for form controls.
func (d *Document) Click(el dom.Element) {
	if el == nil || el.Disabled() {
		return
	}
	d.dispatch(el, dom.Event{Type: dom.EventClick, Target: el})
}

// Input sets the value of el and dispatches an input event.
func (d *Document) Input(el dom.Element, value string) {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return
	}
	setAttr(e.node, "value", value)
	d.dispatch(el, dom.Event{Type: dom.EventInput, Target: el, Value: value})
}

// ListenerCount returns the number of live listeners in the document.
func (d *Document) ListenerCount() int {
	n := 0
	for _, byType := range d.listeners {
		for _, ls := range byType {
			n += len(ls)
		}
	}
	return n
}

func (d *Document) dispatch(el dom.Element, ev dom.Event) {
	e, ok := el.(*Element)
	if !ok {
		return
	}
	// Listeners may add or remove registrations while running.
	ls := append([]*listener(nil), d.listeners[e.node][ev.Type]...)
	for _, l := range ls {
		if !l.removed {
			l.fn(ev)
		}
	}
}

func (d *Document) addListener(n *html.Node, eventType string, fn dom.Listener) dom.Registration {
	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]*listener)
		d.listeners[n] = byType
	}
	l := &listener{fn: fn}
	byType[eventType] = append(byType[eventType], l)
	return &registration{doc: d, node: n, eventType: eventType, l: l}
}

type registration struct {
	doc       *Document
	node      *html.Node
	eventType string
	l         *listener
}

func (r *registration) Remove() {
	if r.l.removed {
		return
	}
	r.l.removed = true
	byType := r.doc.listeners[r.node]
	ls := byType[r.eventType]
	for i, l := range ls {
		if l == r.l {
			ls = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(ls) == 0 {
		delete(byType, r.eventType)
	} else {
		byType[r.eventType] = ls
	}
	if len(byType) == 0 {
		delete(r.doc.listeners, r.node)
	}
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}
