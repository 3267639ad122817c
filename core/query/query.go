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

// Package query maps the demo page URL to table configuration. Only
// configuration travels in the URL; sort, filter and page state do not.
package query

import (
	"net/url"
	"strconv"

	"github.com/google/safehtml"
	"golang.org/x/text/language"

	"github.com/google/piptable/core/controller"
)

// Query represents the parsed configuration of a demo page URL
type Query struct {
	// Base path (e.g., "/")
	Path string

	PerPage    int
	Sortable   bool
	Searchable bool
	Paginated  bool
	Locale     string
}

// NewQuery creates a Query from a URL. Parameters that are absent or invalid
// keep the values from defaults.
func NewQuery(u *url.URL, defaults controller.Config) *Query {
	state := &Query{
		Path:       u.Path,
		PerPage:    defaults.ItemsPerPage,
		Sortable:   defaults.Sortable,
		Searchable: defaults.Searchable,
		Paginated:  defaults.Paginated,
	}
	if defaults.Locale != language.Und {
		state.Locale = defaults.Locale.String()
	}

	q := u.Query()

	if perPage, err := strconv.Atoi(q.Get("per_page")); err == nil && perPage > 0 {
		state.PerPage = perPage
	}
	parseBool(q, "sortable", &state.Sortable)
	parseBool(q, "searchable", &state.Searchable)
	parseBool(q, "paginated", &state.Paginated)
	if locale := q.Get("locale"); locale != "" {
		if _, err := language.Parse(locale); err == nil {
			state.Locale = locale
		}
	}

	return state
}

func parseBool(q url.Values, key string, dst *bool) {
	if !q.Has(key) {
		return
	}
	if b, err := strconv.ParseBool(q.Get(key)); err == nil {
		*dst = b
	}
}

// Clone returns a copy of the query
func (s *Query) Clone() *Query {
	c := *s
	return &c
}

// Config converts the query into controller configuration
func (s *Query) Config() controller.Config {
	tag := language.Und
	if s.Locale != "" {
		if t, err := language.Parse(s.Locale); err == nil {
			tag = t
		}
	}
	return controller.Config{
		ItemsPerPage: s.PerPage,
		Sortable:     s.Sortable,
		Searchable:   s.Searchable,
		Paginated:    s.Paginated,
		Locale:       tag,
	}
}

// WithPerPage returns a URL with the page size replaced
func (s *Query) WithPerPage(n int) safehtml.URL {
	newState := s.Clone()
	newState.PerPage = n
	return newState.ToSafeURL()
}

// WithSortingToggled returns a URL with header sorting flipped
func (s *Query) WithSortingToggled() safehtml.URL {
	newState := s.Clone()
	newState.Sortable = !s.Sortable
	return newState.ToSafeURL()
}

// WithSearchToggled returns a URL with the search box binding flipped
func (s *Query) WithSearchToggled() safehtml.URL {
	newState := s.Clone()
	newState.Searchable = !s.Searchable
	return newState.ToSafeURL()
}

// WithPaginationToggled returns a URL with the pagination binding flipped
func (s *Query) WithPaginationToggled() safehtml.URL {
	newState := s.Clone()
	newState.Paginated = !s.Paginated
	return newState.ToSafeURL()
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()
	q.Set("per_page", strconv.Itoa(s.PerPage))
	q.Set("sortable", strconv.FormatBool(s.Sortable))
	q.Set("searchable", strconv.FormatBool(s.Searchable))
	q.Set("paginated", strconv.FormatBool(s.Paginated))
	if s.Locale != "" {
		q.Set("locale", s.Locale)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}
