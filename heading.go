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
	"slices"
	"strings"
)

var todoKeywords = []string{"TODO", "DONE"}

const maxHeadingLevel = 6

// parseHeading parses a heading and its section.
func (p *parser) parseHeading(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	level, ok := headingStars(c)
	if !ok {
		return NoNode, resNoMatch
	}
	c.advance(level)
	id := p.doc.reserve()

	h := &Heading{Level: level}
	if kw, end, ok := headingKeyword(c); ok {
		h.Keyword = kw
		c.pos = end
	}
	if prio, end, ok := headingPriority(c); ok {
		h.Priority = prio
		c.pos = end
	}
	tags, tagStart, lineEnd := headingTags(c)
	for _, t := range tags {
		h.Tags = append(h.Tags, Tag{Name: t, Parent: NoNode})
	}
	var anchor string
	h.Title, h.TitleChildren, anchor = p.parseTitle(c, tagStart, id, opts)

	c.pos = lineEnd
	if props, end, ok := parsePropertyDrawer(c); ok {
		h.Properties = props
		c.pos = end
	}

	for {
		child, r := p.parseElement(c, id, opts)
		if !r.ok() {
			break
		}
		if sub, ok := p.node(child).Expr.(*Heading); ok {
			if sub.Level <= level {
				break
			}
			sub.Tags = append(sub.Tags, Tag{Parent: id})
		}
		if !p.advance(&c, child) {
			break
		}
		h.Children = append(h.Children, child)
	}

	p.allocAt(id, h, start, c.pos, parent)
	p.node(id).Target = anchor
	return id, resOK
}

// headingStars returns the number of stars that start a heading.
func headingStars(c cursor) (level int, ok bool) {
	end, ok := c.while(func(b byte) bool { return b == '*' })
	if !ok || c.src[end] != ' ' {
		return 0, false
	}
	level = end - c.pos
	if level < 1 || level > maxHeadingLevel {
		return 0, false
	}
	return level, true
}

func headingKeyword(c cursor) (kw string, end int, ok bool) {
	c.skipSpaces()
	for _, kw := range todoKeywords {
		k := c
		if !k.word(kw) {
			continue
		}
		if b, ok := k.curr(); ok && isSpace(b) {
			return kw, k.pos, true
		}
	}
	return "", 0, false
}

// headingPriority matches "[#A]", "[#1]" or "[#12]".
func headingPriority(c cursor) (prio string, end int, ok bool) {
	c.skipSpaces()
	if !c.word("[#") {
		return "", 0, false
	}
	b0, ok0 := c.curr()
	b1, ok1 := c.peek(1)
	if !ok0 || !ok1 {
		return "", 0, false
	}
	if isAlnum(b0) && b1 == ']' {
		return string(b0), c.pos + 2, true
	}
	if b2, ok := c.peek(2); ok && isDigit(b0) && isDigit(b1) && b2 == ']' {
		return string([]byte{b0, b1}), c.pos + 3, true
	}
	return "", 0, false
}

func isTagByte(b byte) bool {
	return isAlnum(b) || b == '_' || b == '@' || b == '#' || b == '%'
}

// headingTags parses the tags at the end of the heading line, right to left.
// tagStart is the offset of the space before the tags,
// or of the newline if the line has no tags.
// lineEnd is the offset just past the newline.
func headingTags(c cursor) (tags []string, tagStart, lineEnd int) {
	start := c.pos
	nl := c.lineEnd()
	lineEnd = c.after(nl)
	i := nl - 1
	for i >= start && c.src[i] == ' ' {
		i--
	}
	if i < start || c.src[i] != ':' {
		return nil, nl, lineEnd
	}
	closer := i
	for i--; i >= start; i-- {
		b := c.src[i]
		switch {
		case isTagByte(b):
		case b == ':' && closer-i > 1:
			tags = append(tags, c.slice(i+1, closer))
			closer = i
			if i > 0 && c.src[i-1] == ' ' {
				slices.Reverse(tags)
				return tags, i - 1, lineEnd
			}
		default:
			return nil, nl, lineEnd
		}
	}
	return nil, nl, lineEnd
}

// parseTitle parses the objects of a heading title
// and generates the heading's anchor.
func (p *parser) parseTitle(c cursor, titleEnd int, id NodeID, opts parseOpts) (title string, children []NodeID, anchor string) {
	for titleEnd > c.pos {
		if b, ok := c.at(titleEnd); !ok || b != ' ' {
			break
		}
		titleEnd--
	}
	top := min(titleEnd+1, len(c.src))
	tc := c.cutOff(top)
	if strings.TrimSpace(string(tc.rest())) == "" {
		return "", nil, ""
	}
	tc.skipSpaces()
	titleStart := tc.pos
	for {
		child, r := p.parseObject(tc, id, opts)
		if !r.ok() || !p.advance(&tc, child) {
			break
		}
		children = append(children, child)
	}
	title = strings.TrimRight(c.slice(titleStart, top), "\r\n")
	return title, children, p.doc.generateTarget(title)
}
