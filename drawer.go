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
	"regexp"
	"strings"
)

var drawerEndPattern = regexp.MustCompile(`(?mi)^[ \t]*:end:[\t ]*$`)

func isDrawerNameByte(b byte) bool {
	return isAlnum(b) || b == '-' || b == '_'
}

// drawerStart matches a ":NAME:" line and returns the name
// and the offset of the following line.
func drawerStart(c cursor) (name string, contents int, ok bool) {
	c.skipSpaces()
	if !c.word(":") {
		return "", 0, false
	}
	end, ok := c.while(isDrawerNameByte)
	if !ok || end == c.pos {
		return "", 0, false
	}
	name = c.slice(c.pos, end)
	c.pos = end
	if !c.word(":") {
		return "", 0, false
	}
	c.skipSpaces()
	if !c.is('\n') {
		return "", 0, false
	}
	return name, c.pos + 1, true
}

// drawerEnd finds the ":end:" line after the cursor.
// loc is the start of the line and end is just past it.
func drawerEnd(c cursor) (loc, end int, ok bool) {
	m := drawerEndPattern.FindIndex(c.rest())
	if m == nil {
		return 0, 0, false
	}
	loc = c.pos + m[0]
	end = c.after(c.pos + m[1])
	return loc, end, true
}

// parseDrawer parses a ":NAME:" ... ":end:" drawer.
func (p *parser) parseDrawer(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	name, contents, ok := drawerStart(c)
	if !ok {
		return NoNode, resNoMatch
	}
	c.pos = contents
	loc, end, ok := drawerEnd(c)
	if !ok {
		return NoNode, resNoMatch
	}

	id := p.doc.reserve()
	inner := c.cutOff(loc)
	var children []NodeID
	for {
		child, r := p.parseElement(inner, id, parseOpts{})
		if !r.ok() || !p.advance(&inner, child) {
			break
		}
		children = append(children, child)
	}
	return p.allocAt(id, &Drawer{Name: name, Children: children}, start, end, parent), resOK
}

// parsePropertyDrawer parses a ":PROPERTIES:" drawer
// whose lines are ":NAME: value" pairs.
// A name ending in '+' appends to the property's value.
func parsePropertyDrawer(c cursor) (props *Properties, end int, ok bool) {
	if c.eof() {
		return nil, 0, false
	}
	name, contents, ok := drawerStart(c)
	if !ok || !strings.EqualFold(name, "properties") {
		return nil, 0, false
	}
	c.pos = contents
	loc, end, ok := drawerEnd(c)
	if !ok {
		return nil, 0, false
	}

	props = NewProperties()
	inner := c.cutOff(loc)
	for !inner.eof() {
		next, ok := parseNodeProperty(inner, props)
		if !ok {
			return nil, 0, false
		}
		inner.pos = next
	}
	return props, end, true
}

// parseNodeProperty parses a single ":NAME: value" line into props
// and returns the offset of the next line.
func parseNodeProperty(c cursor, props *Properties) (next int, ok bool) {
	c.skipSpaces()
	if !c.word(":") {
		return 0, false
	}
	end, ok := c.until(func(b byte) bool { return b == ':' || isSpace(b) })
	if !ok || c.src[end] != ':' || end == c.pos {
		return 0, false
	}
	name := c.slice(c.pos, end)
	c.pos = end + 1
	nl := c.lineEnd()
	value := strings.TrimSpace(c.slice(c.pos, nl))
	if base, found := strings.CutSuffix(name, "+"); found {
		props.Append(base, value)
	} else {
		props.Set(name, value)
	}
	return c.after(nl), true
}
