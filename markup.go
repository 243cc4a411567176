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

// markupSet is a set of markup kinds that are open
// around a position in the source.
type markupSet uint16

const (
	italicMarkup markupSet = 1 << iota
	boldMarkup
	underlineMarkup
	strikeMarkup
	verbatimMarkup
	codeMarkup
	linkMarkup
	tableMarkup
	footnoteRefMarkup
	supSubMarkup
)

// byteMatch reports whether b closes one of the open markup kinds.
func (m markupSet) byteMatch(b byte) bool {
	var kind markupSet
	switch b {
	case '*':
		kind = boldMarkup
	case '/':
		kind = italicMarkup
	case '_':
		kind = underlineMarkup
	case '+':
		kind = strikeMarkup
	case ']':
		kind = linkMarkup
	case '~':
		kind = codeMarkup
	case '=':
		kind = verbatimMarkup
	case '|':
		kind = tableMarkup
	default:
		return false
	}
	return m&kind != 0
}

const (
	markupPre  = "-({'\" \t\n|[/*_+:"
	markupPost = "-.,;:!?)}[\"' \t\n|]/*_+"
)

// verifyMarkup reports whether the delimiter at the cursor
// may open (post == false) or close (post == true) markup.
func verifyMarkup(c cursor, post bool) bool {
	before, hasBefore := c.peekBack(1)
	after, hasAfter := c.peek(1)
	if post {
		return hasBefore && !isSpace(before) &&
			(!hasAfter || strings.IndexByte(markupPost, after) >= 0)
	}
	return hasAfter && !isSpace(after) &&
		(!hasBefore || strings.IndexByte(markupPre, before) >= 0)
}

// parseRecursiveMarkup parses emphasis that can contain other objects:
// italic, bold, underline or strike-through.
func (p *parser) parseRecursiveMarkup(kind markupSet, c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	if !verifyMarkup(c, false) {
		return NoNode, resNoMatch
	}
	start := c.pos
	c.next()
	opts.fromObject = false
	opts.markup |= kind

	var children []NodeID
	for {
		id, r := p.parseObject(c, parent, opts)
		switch r.kind {
		case matched:
			if !p.advance(&c, id) {
				return NoNode, resNoMatch
			}
			children = append(children, id)
		case markupEnd:
			// Reject empty spans like "**".
			if r.markup&kind == 0 || c.pos < start+2 {
				return NoNode, resNoMatch
			}
			var e Expr
			switch kind {
			case italicMarkup:
				e = &Italic{Children: children}
			case boldMarkup:
				e = &Bold{Children: children}
			case underlineMarkup:
				e = &Underline{Children: children}
			default:
				e = &StrikeThrough{Children: children}
			}
			return p.allocAt(p.doc.reserve(), e, start, c.pos+1, parent), resOK
		default:
			return NoNode, r
		}
	}
}

// parsePlainMarkup parses code or verbatim text.
// Its contents are not parsed for other objects.
func (p *parser) parsePlainMarkup(kind markupSet, c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	if !verifyMarkup(c, false) {
		return NoNode, resNoMatch
	}
	closer := byte('~')
	if kind == verbatimMarkup {
		closer = '='
	}
	opts.markup |= kind
	start := c.pos
	c.next()

scan:
	for {
		b, ok := c.curr()
		if !ok {
			return NoNode, resEOF
		}
		switch {
		case opts.markup.byteMatch(b):
			if b == closer && c.pos > start+1 && verifyMarkup(c, true) {
				break scan
			}
			return NoNode, resMarkupEnd(opts.markup)
		case b == '\n':
			opts.fromParagraph = true
			opts.fromObject = false
			opts.listLine = false
			next := c
			next.next()
			_, r := p.parseElement(next, parent, opts)
			switch r.kind {
			case matched:
				return NoNode, resNoMatch
			case noMatch:
				c.next()
			default:
				return NoNode, r
			}
		default:
			c.next()
		}
	}

	text := c.slice(start+1, c.pos)
	var e Expr = &Code{Text: text}
	if kind == verbatimMarkup {
		e = &Verbatim{Text: text}
	}
	return p.alloc(e, start, c.pos+1, parent), resOK
}
