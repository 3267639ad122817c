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

//go:build js && wasm

// Package jsdom implements dom.Document over the browser DOM via syscall/js.
package jsdom

import (
	"syscall/js"

	"github.com/google/piptable/core/dom"
)

// Document wraps the global document object.
type Document struct {
	v js.Value
}

// Global returns the page's document.
func Global() *Document {
	return &Document{v: js.Global().Get("document")}
}

func (d *Document) GetElementByID(id string) dom.Element {
	return wrap(d.v.Call("getElementById", id))
}

func (d *Document) CreateElement(tag string) dom.Element {
	return wrap(d.v.Call("createElement", tag))
}

// QueryAll runs querySelectorAll against the whole document.
func (d *Document) QueryAll(selector string) []dom.Element {
	return list(d.v.Call("querySelectorAll", selector))
}

// Element wraps a DOM element value.
type Element struct {
	v js.Value
}

// Wrap exposes a js.Value as an Element. Null and undefined yield nil.
func Wrap(v js.Value) dom.Element {
	return wrap(v)
}

// JSValue returns the underlying js.Value.
func (e *Element) JSValue() js.Value {
	return e.v
}

func wrap(v js.Value) dom.Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{v: v}
}

func list(v js.Value) []dom.Element {
	n := v.Length()
	out := make([]dom.Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &Element{v: v.Index(i)})
	}
	return out
}

func (e *Element) Tag() string {
	return js.Global().Get("String").Invoke(e.v.Get("tagName")).Call("toLowerCase").String()
}

func (e *Element) ID() string {
	return e.v.Get("id").String()
}

func (e *Element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *Element) AddClass(names ...string) {
	cl := e.v.Get("classList")
	for _, n := range names {
		cl.Call("add", n)
	}
}

func (e *Element) RemoveClass(names ...string) {
	cl := e.v.Get("classList")
	for _, n := range names {
		cl.Call("remove", n)
	}
}

func (e *Element) ToggleClass(name string, on bool) {
	e.v.Get("classList").Call("toggle", name, on)
}

func (e *Element) Text() string {
	return e.v.Get("textContent").String()
}

func (e *Element) SetText(text string) {
	e.v.Set("textContent", text)
}

func (e *Element) Value() string {
	v := e.v.Get("value")
	if v.IsUndefined() || v.IsNull() {
		return ""
	}
	return v.String()
}

func (e *Element) Disabled() bool {
	return e.v.Get("disabled").Truthy()
}

func (e *Element) SetDisabled(disabled bool) {
	e.v.Set("disabled", disabled)
}

func (e *Element) Children() []dom.Element {
	return list(e.v.Get("children"))
}

func (e *Element) PreviousElementSibling() dom.Element {
	return wrap(e.v.Get("previousElementSibling"))
}

func (e *Element) NextElementSibling() dom.Element {
	return wrap(e.v.Get("nextElementSibling"))
}

func (e *Element) Query(selector string) dom.Element {
	return wrap(e.v.Call("querySelector", selector))
}

func (e *Element) QueryAll(selector string) []dom.Element {
	return list(e.v.Call("querySelectorAll", selector))
}

func (e *Element) Clone() dom.Element {
	return wrap(e.v.Call("cloneNode", true))
}

func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok || c == nil {
		return
	}
	e.v.Call("appendChild", c.v)
}

func (e *Element) ReplaceChildren(children ...dom.Element) {
	args := make([]any, 0, len(children))
	for _, child := range children {
		if c, ok := child.(*Element); ok && c != nil {
			args = append(args, c.v)
		}
	}
	e.v.Call("replaceChildren", args...)
}

func (e *Element) AddEventListener(eventType string, l dom.Listener) dom.Registration {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := dom.Event{Type: eventType, Target: e}
		if eventType == dom.EventInput {
			ev.Value = e.Value()
		}
		l(ev)
		return nil
	})
	e.v.Call("addEventListener", eventType, fn)
	return &registration{target: e.v, eventType: eventType, fn: fn}
}

type registration struct {
	target    js.Value
	eventType string
	fn        js.Func
	removed   bool
}

func (r *registration) Remove() {
	if r.removed {
		return
	}
	r.removed = true
	r.target.Call("removeEventListener", r.eventType, r.fn)
	r.fn.Release()
}
