// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package org

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var anchorCaser = cases.Lower(language.Und)

// idEscape converts text into a string usable as an HTML id:
// spaces become hyphens, letters are lowercased,
// and characters other than letters, digits, '-' and '_' are dropped.
func idEscape(s string) string {
	s = norm.NFC.String(s)
	sb := new(strings.Builder)
	for _, r := range s {
		switch {
		case r == ' ':
			sb.WriteByte('-')
		case r == '-' || r == '_':
			sb.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		}
	}
	return anchorCaser.String(sb.String())
}

// generateTarget returns a unique anchor for name
// and records it as the target of name.
// Repeated anchors get a numeric suffix.
func (d *Document) generateTarget(name string) string {
	base := idEscape(name)
	if base == "" {
		base = "target"
	}
	anchor := base
	for n := 1; d.anchorCounts[anchor] > 0; n++ {
		anchor = base + "-" + strconv.Itoa(n)
	}
	d.anchorCounts[anchor]++
	if _, exists := d.Targets[name]; !exists && name != "" {
		d.Targets[name] = anchor
		d.targetIndex.Add(name, anchor)
	}
	return anchor
}
