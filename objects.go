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
	"sync"

	"github.com/kyokomi/emoji/v2"
)

// parseTarget parses a "<<name>>" link target.
func (p *parser) parseTarget(c cursor, parent NodeID) (NodeID, result) {
	start := c.pos
	if !c.word("<<") {
		return NoNode, resNoMatch
	}
	if b, ok := c.curr(); !ok || isSpace(b) {
		return NoNode, resNoMatch
	}
	end, ok := c.until(func(b byte) bool { return b == '\n' || b == '<' || b == '>' })
	if !ok {
		return NoNode, resEOF
	}
	name := c.slice(c.pos, end)
	c.pos = end
	if !c.word(">>") {
		return NoNode, resNoMatch
	}
	id := p.alloc(&Target{Name: name}, start, c.pos, parent)
	p.node(id).Target = p.doc.generateTarget(name)
	return id, resOK
}

func isBackendByte(b byte) bool {
	return isAlnum(b) || b == '-'
}

// parseExportSnippet parses "@@backend:contents@@".
// The contents may not span lines.
func (p *parser) parseExportSnippet(c cursor, parent NodeID) (NodeID, result) {
	start := c.pos
	if !c.word("@@") {
		return NoNode, resNoMatch
	}
	end, _ := c.while(isBackendByte)
	backend := c.slice(c.pos, end)
	c.pos = end
	if !c.word(":") {
		return NoNode, resNoMatch
	}
	contentStart := c.pos
	for {
		end, ok := c.until(func(b byte) bool { return b == '@' || b == '\n' })
		if !ok {
			return NoNode, resEOF
		}
		c.pos = end
		if c.is('\n') {
			return NoNode, resNoMatch
		}
		if next, ok := c.peek(1); ok && next == '@' {
			snippet := &ExportSnippet{Backend: backend, Contents: c.slice(contentStart, c.pos)}
			return p.alloc(snippet, start, c.pos+2, parent), resOK
		}
		c.next()
	}
}

// parseInlineSrc parses "src_lang{body}" or "src_lang[headers]{body}".
func (p *parser) parseInlineSrc(c cursor, parent NodeID) (NodeID, result) {
	start := c.pos
	if !c.word("src_") {
		return NoNode, resNoMatch
	}
	end, ok := c.until(func(b byte) bool { return b == '[' || b == '{' || isSpace(b) })
	if !ok || end == c.pos {
		return NoNode, resNoMatch
	}
	src := &InlineSrc{Lang: c.slice(c.pos, end)}
	c.pos = end
	if c.is('[') {
		headersEnd, ok := balanced(c, '[', ']')
		if !ok {
			return NoNode, resNoMatch
		}
		src.Headers = c.slice(c.pos+1, headersEnd-1)
		c.pos = headersEnd
	}
	if !c.is('{') {
		return NoNode, resNoMatch
	}
	bodyEnd, ok := balanced(c, '{', '}')
	if !ok {
		return NoNode, resNoMatch
	}
	src.Body = c.slice(c.pos+1, bodyEnd-1)
	return p.alloc(src, start, bodyEnd, parent), resOK
}

// balanced returns the offset just past the delimiter
// that closes the open delimiter at the cursor.
// Delimiters may nest but may not span lines.
func balanced(c cursor, open, close byte) (end int, ok bool) {
	depth := 0
	for {
		b, ok := c.curr()
		if !ok || b == '\n' {
			return 0, false
		}
		switch b {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return c.pos + 1, true
			}
		}
		c.next()
	}
}

func (p *parser) parseSuperscript(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	return p.parseScript(c, parent, opts, true)
}

func (p *parser) parseSubscript(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	return p.parseScript(c, parent, opts, false)
}

// parseScript parses a superscript ("^") or subscript ("_")
// attached to the preceding text:
// "^{objects}", "^*" or a run like "^2" or "_1.5".
func (p *parser) parseScript(c cursor, parent NodeID, opts parseOpts, sup bool) (NodeID, result) {
	if prev, ok := c.peekBack(1); !ok || isSpace(prev) {
		return NoNode, resNoMatch
	}
	start := c.pos
	c.next()
	b, ok := c.curr()
	if !ok {
		return NoNode, resEOF
	}

	var text string
	var children []NodeID
	switch {
	case b == '{':
		c.next()
		opts.fromObject = false
		opts.markup |= supSubMarkup
	loop:
		for {
			child, r := p.parseObject(c, parent, opts)
			switch r.kind {
			case matched:
				if !p.advance(&c, child) {
					return NoNode, resNoMatch
				}
				children = append(children, child)
			case markupEnd:
				if r.markup&supSubMarkup == 0 {
					return NoNode, resNoMatch
				}
				break loop
			default:
				return NoNode, r
			}
		}
		var e Expr = &Subscript{Children: children}
		if sup {
			e = &Superscript{Children: children}
		}
		return p.allocAt(p.doc.reserve(), e, start, c.pos+1, parent), resOK
	case b == '*' && sup:
		text = "*"
		c.next()
	case isSpace(b):
		return NoNode, resNoMatch
	default:
		textStart := c.pos
		end, _ := c.while(func(b byte) bool {
			return isAlnum(b) || b == ',' || b == '\\' || b == '.'
		})
		for end > textStart && !isAlnum(c.src[end-1]) {
			end--
		}
		if end <= textStart {
			return NoNode, resNoMatch
		}
		text = c.slice(textStart, end)
		c.pos = end
	}
	var e Expr = &Subscript{Text: text}
	if sup {
		e = &Superscript{Text: text}
	}
	return p.alloc(e, start, c.pos, parent), resOK
}

var emojiCodes = sync.OnceValue(emoji.CodeMap)

func isEmojiNameByte(b byte) bool {
	return isAlnum(b) || b == '_' || b == '-' || b == '+'
}

// parseEmoji parses a ":shortcode:" that names a known emoji.
func (p *parser) parseEmoji(c cursor, parent NodeID) (NodeID, result) {
	start := c.pos
	c.next()
	end, ok := c.while(isEmojiNameByte)
	if !ok || end == c.pos || c.src[end] != ':' {
		return NoNode, resNoMatch
	}
	name := c.slice(c.pos, end)
	value, ok := emojiCodes()[":"+name+":"]
	if !ok {
		return NoNode, resNoMatch
	}
	return p.alloc(&Emoji{Name: name, Value: value}, start, end+1, parent), resOK
}
