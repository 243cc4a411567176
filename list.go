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
)

// parsePlainList parses a run of list items of the same type.
func (p *parser) parsePlainList(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	if !opts.fromList {
		opts.indent++
		opts.fromList = true
	}

	first, r := p.parseItem(c, parent, opts)
	if !r.ok() {
		return NoNode, r
	}
	id := p.doc.reserve()
	typ, letter := listType(p.node(first).Expr.(*Item))
	children := []NodeID{first}
	c.pos = p.node(first).End

	for {
		child, r := p.parseElement(c, id, opts)
		if !r.ok() {
			break
		}
		n := p.node(child)
		item, isItem := n.Expr.(*Item)
		if !isItem {
			break
		}
		if t, _ := listType(item); t != typ {
			// The item starts a new list, which must parse it again
			// with its own context.
			delete(p.cache, n.Start)
			tracer().Debugf("list at %d: item at %d starts a new list", start, n.Start)
			break
		}
		if !p.advance(&c, child) {
			break
		}
		children = append(children, child)
	}

	list := &PlainList{Type: typ, Letter: letter, Children: children}
	return p.allocAt(id, list, start, c.pos, parent), resOK
}

func listType(item *Item) (typ ListType, letter bool) {
	switch {
	case item.Tag != "":
		return DescriptiveList, false
	case item.Bullet.Ordered:
		return OrderedList, item.Bullet.Letter != 0
	default:
		return UnorderedList, false
	}
}

// parseItem parses a single list item and its contents.
func (p *parser) parseItem(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	bullet, end, ok := parseBullet(c)
	if !ok {
		return NoNode, resNoMatch
	}
	c.pos = end

	item := &Item{Bullet: bullet}
	if counter, end, ok := parseCounterSet(c); ok {
		item.CounterSet = counter
		c.pos = end
	}
	if box, end, ok := parseCheckBox(c); ok {
		item.CheckBox = box
		c.pos = end
	}
	if !bullet.Ordered {
		if tag, end, ok := parseItemTag(c); ok {
			item.Tag = tag
			c.pos = end
		}
	}

	id := p.doc.reserve()
	c.skipSpaces()
	if b, ok := c.curr(); ok {
		if b == '\n' {
			c.next()
		} else {
			opts.listLine = true
		}
	}

	// At most one blank line may separate an item's contents.
	blank := NoNode
	prev := c.pos
loop:
	for {
		child, r := p.parseElement(c, id, opts)
		if !r.ok() {
			break
		}
		switch p.node(child).Expr.(type) {
		case *BlankLine:
			if blank != NoNode {
				c.pos = prev
				break loop
			}
			blank = child
			prev = c.pos
		case *Item:
			break loop
		default:
			if blank != NoNode {
				item.Children = append(item.Children, blank)
				blank = NoNode
			}
			item.Children = append(item.Children, child)
		}
		opts.listLine = false
		if !p.advance(&c, child) {
			break
		}
	}
	return p.allocAt(id, item, start, c.pos, parent), resOK
}

// parseBullet parses "-", "+", "*", "1." , "1)", "a." or "a)"
// followed by whitespace.
// end is past the following space, or at the newline for an empty line.
func parseBullet(c cursor) (b Bullet, end int, ok bool) {
	first, ok := c.curr()
	if !ok {
		return Bullet{}, 0, false
	}
	bulletEnd := func(c cursor) (int, bool) {
		next, ok := c.peek(1)
		if !ok || !isSpace(next) {
			return 0, false
		}
		if next == '\n' {
			return c.pos + 1, true
		}
		return c.pos + 2, true
	}
	switch {
	case first == '*' || first == '-' || first == '+':
		end, ok := bulletEnd(c)
		return Bullet{Char: first}, end, ok
	case isAlnum(first):
		counterEnd, ok := c.while(isAlnum)
		if !ok {
			return Bullet{}, 0, false
		}
		counter := c.slice(c.pos, counterEnd)
		c.pos = counterEnd
		delim, _ := c.curr()
		if delim != '.' && delim != ')' {
			return Bullet{}, 0, false
		}
		end, ok := bulletEnd(c)
		if !ok {
			return Bullet{}, 0, false
		}
		b := Bullet{Char: delim, Ordered: true}
		if len(counter) == 1 && isAlpha(counter[0]) {
			b.Letter = counter[0]
			return b, end, true
		}
		n, err := strconv.Atoi(counter)
		if err != nil {
			return Bullet{}, 0, false
		}
		b.Number = n
		return b, end, true
	default:
		return Bullet{}, 0, false
	}
}

// parseCounterSet parses "[@COUNTER]":
// a single letter or digit, or a run of digits.
func parseCounterSet(c cursor) (counter string, end int, ok bool) {
	c.skipSpaces()
	if !c.word("[@") {
		return "", 0, false
	}
	numEnd, ok := c.while(isAlnum)
	if !ok || numEnd == c.pos || c.src[numEnd] != ']' {
		return "", 0, false
	}
	counter = c.slice(c.pos, numEnd)
	if len(counter) > 1 && strings.IndexFunc(counter, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return "", 0, false
	}
	return counter, numEnd + 1, true
}

// parseCheckBox parses "[ ]", "[X]" or "[-]".
func parseCheckBox(c cursor) (box CheckBox, end int, ok bool) {
	c.skipSpaces()
	if !c.is('[') {
		return NoCheckBox, 0, false
	}
	if closer, ok := c.peek(2); !ok || closer != ']' {
		return NoCheckBox, 0, false
	}
	mark, _ := c.peek(1)
	switch mark {
	case 'x', 'X':
		box = CheckBoxOn
	case ' ':
		box = CheckBoxOff
	case '-':
		box = CheckBoxPartial
	default:
		return NoCheckBox, 0, false
	}
	return box, c.pos + 3, true
}

// parseItemTag parses the "TAG ::" of a descriptive list item.
func parseItemTag(c cursor) (tag string, end int, ok bool) {
	if c.eof() {
		return "", 0, false
	}
	c.skipSpaces()
	start := c.pos
	for {
		b, ok := c.curr()
		if !ok || b == '\n' {
			return "", 0, false
		}
		if b == ':' {
			before, _ := c.peekBack(1)
			next, ok1 := c.peek(1)
			after, ok2 := c.peek(2)
			if isSpace(before) && ok1 && next == ':' && ok2 && isSpace(after) {
				tag = strings.TrimSpace(c.slice(start, c.pos))
				return tag, c.pos + 2, tag != ""
			}
		}
		c.next()
	}
}
