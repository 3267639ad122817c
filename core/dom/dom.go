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

// Package dom defines the small element-tree surface the table controller
// needs. Backends live in the htmldom (in-memory, x/net/html) and jsdom
// (browser, syscall/js) subpackages.
package dom

// Event types dispatched to listeners.
const (
	EventClick = "click"
	EventInput = "input"
)

// Event is delivered to a Listener.
type Event struct {
	Type   string
	Target Element
	// Value holds the target's current value for input events.
	Value string
}

// Listener handles a dispatched event.
type Listener func(Event)

// Registration is the handle returned by AddEventListener. Remove detaches
// the listener; calling it more than once is a no-op.
type Registration interface {
	Remove()
}

// Element is a node of the element tree.
type Element interface {
	Tag() string
	ID() string
	Attr(name string) (string, bool)

	HasClass(name string) bool
	AddClass(names ...string)
	RemoveClass(names ...string)
	ToggleClass(name string, on bool)

	// Text returns the text content of the element and its descendants.
	Text() string
	// SetText replaces all children with a single text node.
	SetText(text string)
	Value() string

	Disabled() bool
	SetDisabled(disabled bool)

	// Children returns element children only, in document order.
	Children() []Element
	PreviousElementSibling() Element
	NextElementSibling() Element

	// Query returns the first descendant matching a CSS selector, or nil.
	Query(selector string) Element
	// QueryAll returns all matching descendants in document order.
	QueryAll(selector string) []Element

	// Clone returns a deep copy without listeners.
	Clone() Element
	AppendChild(child Element)
	// ReplaceChildren removes every child and appends the given ones.
	ReplaceChildren(children ...Element)

	AddEventListener(eventType string, l Listener) Registration
}

// Document is the root of an element tree.
type Document interface {
	GetElementByID(id string) Element
	CreateElement(tag string) Element
}

// Registrations collects listener handles so they can be released together.
type Registrations []Registration

// Add records r.
func (rs *Registrations) Add(r Registration) {
	if r != nil {
		*rs = append(*rs, r)
	}
}

// RemoveAll detaches every recorded listener and empties the set.
func (rs *Registrations) RemoveAll() {
	for _, r := range *rs {
		r.Remove()
	}
	*rs = nil
}

// Len reports the number of recorded handles.
func (rs Registrations) Len() int {
	return len(rs)
}
