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

import "strings"

// parseKeyword parses a "#+KEY: value" line,
// including affiliated keywords and macro definitions.
func (p *parser) parseKeyword(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	if !c.word("#+") {
		return NoNode, resNoMatch
	}
	if c.wordFold("attr_") {
		return p.parseAttr(c, start, parent, opts)
	}

	keyEnd, ok := c.until(func(b byte) bool { return b == ':' || isSpace(b) })
	if !ok || keyEnd == c.pos || c.src[keyEnd] != ':' {
		return NoNode, resNoMatch
	}
	key := c.slice(c.pos, keyEnd)
	c.pos = keyEnd + 1

	switch strings.ToLower(key) {
	case "macro":
		if def, end, ok := parseMacroDef(c); ok {
			id := p.alloc(def, start, end, parent)
			p.doc.Macros[def.Name] = id
			return id, resOK
		}
	case "name", "caption":
		nl := c.lineEnd()
		value := strings.TrimSpace(c.slice(c.pos, nl))
		c.pos = c.after(nl)
		aff := &Affiliated{
			Type:    CaptionAffiliated,
			Element: p.affiliatedElement(c, parent, opts),
			Value:   value,
		}
		if strings.EqualFold(key, "name") {
			aff.Type = NameAffiliated
			if aff.Element != NoNode {
				p.node(aff.Element).Target = p.doc.generateTarget(value)
			}
		}
		return p.alloc(aff, start, c.after(nl), parent), resOK
	}

	nl := c.lineEnd()
	value := strings.TrimSpace(c.slice(c.pos, nl))
	p.doc.Keywords[strings.ToLower(key)] = value
	return p.alloc(&Keyword{Key: key, Value: value}, start, c.after(nl), parent), resOK
}

// parseAttr parses the rest of an "#+attr_BACKEND: :key value ..." line
// and attaches the attributes to the next element.
func (p *parser) parseAttr(c cursor, start int, parent NodeID, opts parseOpts) (NodeID, result) {
	backendEnd, ok := c.until(func(b byte) bool { return b == ':' || isSpace(b) })
	if !ok || c.src[backendEnd] != ':' {
		return NoNode, resNoMatch
	}
	backend := c.slice(c.pos, backendEnd)
	c.pos = backendEnd + 1

	attrs := NewProperties()
	valueStart := c.pos
	for {
		b, ok := c.curr()
		if !ok || b == '\n' {
			break
		}
		if b != ':' {
			c.next()
			continue
		}
		c.next()
		keyEnd, _ := c.until(isSpace)
		key := c.slice(c.pos, keyEnd)
		c.pos = keyEnd
		c.skipSpaces()
		if c.eof() || c.is('\n') {
			attrs.Append(key, "")
			break
		}
		valStart := c.pos
		// A colon inside a value ("border:2px") does not start a new key.
		for {
			b, ok := c.curr()
			if !ok || b == '\n' {
				break
			}
			if before, _ := c.peekBack(1); b == ':' && isSpace(before) {
				break
			}
			c.next()
		}
		attrs.Append(key, strings.TrimSpace(c.slice(valStart, c.pos)))
	}
	value := strings.TrimSpace(c.slice(valueStart, c.pos))
	c.pos = c.after(c.pos)
	end := c.pos

	backendKey := strings.ToLower(backend)
	element := p.affiliatedElement(c, parent, opts)
	if element != NoNode {
		n := p.node(element)
		if n.Attrs == nil {
			n.Attrs = make(map[string]*Properties)
		}
		// Later keywords are attached first, so their values go last.
		if later := n.Attrs[backendKey]; later != nil {
			for _, k := range later.Keys() {
				v, _ := later.Get(k)
				attrs.Append(k, v)
			}
		}
		n.Attrs[backendKey] = attrs
	}
	aff := &Affiliated{
		Type:    AttrAffiliated,
		Element: element,
		Backend: backend,
		Value:   value,
	}
	return p.alloc(aff, start, end, parent), resOK
}

// affiliatedElement parses the element that an affiliated keyword applies to,
// skipping over further affiliated keywords.
func (p *parser) affiliatedElement(c cursor, parent NodeID, opts parseOpts) NodeID {
	for {
		child, r := p.parseElement(c, parent, opts)
		if !r.ok() {
			return NoNode
		}
		if _, ok := p.node(child).Expr.(*Affiliated); !ok {
			return child
		}
		if !p.advance(&c, child) {
			return NoNode
		}
	}
}

func isMacroNameByte(b byte) bool {
	return isAlnum(b) || b == '-' || b == '_'
}

// parseMacroDef parses the "NAME BODY" of a "#+macro:" line.
// Each "$N" in the body, N from 1 to 9, refers to the Nth argument.
func parseMacroDef(c cursor) (def *MacroDef, end int, ok bool) {
	c.skipSpaces()
	if b, ok := c.curr(); !ok || !isAlpha(b) {
		return nil, 0, false
	}
	nameEnd, ok := c.while(isMacroNameByte)
	if !ok {
		return nil, 0, false
	}
	def = &MacroDef{Name: c.slice(c.pos, nameEnd)}
	c.pos = nameEnd
	c.skipSpaces()
	if b, ok := c.curr(); !ok || b == '\n' {
		return nil, 0, false
	}

	prev := c.pos
	for {
		b, ok := c.curr()
		if !ok || b == '\n' {
			break
		}
		if next, ok := c.peek(1); b == '$' && ok && '1' <= next && next <= '9' {
			if prev < c.pos {
				def.Body = append(def.Body, MacroPart{Text: c.slice(prev, c.pos)})
			}
			arg := int(next - '0')
			def.NumArgs = max(def.NumArgs, arg)
			def.Body = append(def.Body, MacroPart{Arg: arg})
			c.advance(2)
			prev = c.pos
			continue
		}
		c.next()
	}
	if prev < c.pos {
		def.Body = append(def.Body, MacroPart{Text: c.slice(prev, c.pos)})
	}
	return def, c.after(c.pos), true
}
