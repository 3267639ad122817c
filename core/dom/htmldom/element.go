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

package htmldom

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/google/piptable/core/dom"
)

// Element implements dom.Element over a single *html.Node.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node returns the underlying node.
func (e *Element) Node() *html.Node {
	return e.node
}

// OuterHTML renders the element and its descendants.
func (e *Element) OuterHTML() string {
	s, err := goquery.OuterHtml(e.sel())
	if err != nil {
		return ""
	}
	return s
}

func (e *Element) sel() *goquery.Selection {
	return goquery.NewDocumentFromNode(e.node).Selection
}

func (e *Element) Tag() string {
	return e.node.Data
}

func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

func (e *Element) Attr(name string) (string, bool) {
	return e.sel().Attr(name)
}

func (e *Element) HasClass(name string) bool {
	return e.sel().HasClass(name)
}

func (e *Element) AddClass(names ...string) {
	e.sel().AddClass(names...)
}

func (e *Element) RemoveClass(names ...string) {
	if len(names) == 0 {
		return
	}
	e.sel().RemoveClass(names...)
}

func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
	} else {
		e.RemoveClass(name)
	}
}

func (e *Element) Text() string {
	return e.sel().Text()
}

func (e *Element) SetText(text string) {
	e.sel().SetText(text)
}

func (e *Element) Value() string {
	v, _ := e.Attr("value")
	return v
}

func (e *Element) Disabled() bool {
	_, ok := e.Attr("disabled")
	return ok
}

func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		setAttr(e.node, "disabled", "")
	} else {
		removeAttr(e.node, "disabled")
	}
}

func (e *Element) Children() []dom.Element {
	var out []dom.Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

func (e *Element) PreviousElementSibling() dom.Element {
	for s := e.node.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return e.doc.wrap(s)
		}
	}
	return nil
}

func (e *Element) NextElementSibling() dom.Element {
	for s := e.node.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return e.doc.wrap(s)
		}
	}
	return nil
}

func (e *Element) Query(selector string) dom.Element {
	found := e.sel().Find(selector)
	if found.Length() == 0 {
		return nil
	}
	return e.doc.wrap(found.Nodes[0])
}

func (e *Element) QueryAll(selector string) []dom.Element {
	found := e.sel().Find(selector)
	out := make([]dom.Element, 0, found.Length())
	for _, n := range found.Nodes {
		out = append(out, e.doc.wrap(n))
	}
	return out
}

func (e *Element) Clone() dom.Element {
	return e.doc.wrap(e.sel().Clone().Nodes[0])
}

func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}
	if c.node.Parent != nil {
		c.node.Parent.RemoveChild(c.node)
	}
	e.node.AppendChild(c.node)
}

func (e *Element) ReplaceChildren(children ...dom.Element) {
	for c := e.node.FirstChild; c != nil; c = e.node.FirstChild {
		e.node.RemoveChild(c)
	}
	for _, child := range children {
		e.AppendChild(child)
	}
}

func (e *Element) AddEventListener(eventType string, l dom.Listener) dom.Registration {
	return e.doc.addListener(e.node, eventType, l)
}
