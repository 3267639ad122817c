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
	"net/url"
	"strconv"
	"strings"

	"github.com/google/piptable/core/controller"
)

// StepsFromQuery maps the snapshot parameters of a page URL to steps:
// q searches, sort picks a column (desc=true flips it to descending) and
// page moves to a page. Malformed values are ignored.
func StepsFromQuery(values url.Values) []Step {
	var steps []Step
	if term := strings.TrimSpace(values.Get("q")); term != "" {
		steps = append(steps, func(c *controller.Controller) { c.Search(term) })
	}
	if col, err := strconv.Atoi(values.Get("sort")); err == nil && col >= 0 {
		steps = append(steps, func(c *controller.Controller) { c.Sort(col) })
		if desc, _ := strconv.ParseBool(values.Get("desc")); desc {
			steps = append(steps, func(c *controller.Controller) { c.Sort(col) })
		}
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 1 {
		steps = append(steps, func(c *controller.Controller) { c.GoTo(page) })
	}
	return steps
}
