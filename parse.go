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

// Package org provides a parser for [Org mode] documents
// and an HTML renderer for the parsed tree.
//
// [Parse] builds a [Document]: an arena of [Node] values
// addressed by [NodeID] handles.
// Elements (headings, lists, tables, blocks, paragraphs, ...)
// contain other elements or objects (emphasis, links, footnote references, ...).
//
// [Org mode]: https://orgmode.org/
package org

import (
	"fmt"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'org.parse'.
func tracer() tracing.Trace {
	return tracing.Select("org.parse")
}

// InvalidUTF8Error is returned by [Parse]
// for source that is not valid UTF-8.
type InvalidUTF8Error struct {
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

func (e *InvalidUTF8Error) Error() string {
	return fmt.Sprintf("parse org: invalid UTF-8 at byte %d", e.Offset)
}

// Parse parses an entire Org document.
// The returned Document references source,
// so source must not be modified afterward.
func Parse(source []byte) (*Document, error) {
	if !utf8.Valid(source) {
		return nil, &InvalidUTF8Error{Offset: invalidOffset(source)}
	}
	p := newParser(source)
	root := p.doc.reserve()
	c := cursor{src: source}
	var children []NodeID
	for {
		id, r := p.parseElement(c, root, parseOpts{})
		if !r.ok() || !p.advance(&c, id) {
			break
		}
		children = append(children, id)
	}
	p.doc.allocAt(root, &Root{Children: children}, 0, len(source), NoNode)
	tracer().Debugf("parsed %d bytes into %d nodes", len(source), p.doc.Len())
	return p.doc, nil
}

// ParseObjects parses source as a sequence of objects
// (text and inline markup) with no enclosing elements.
// The children of the returned document's root are the objects.
// Invalid UTF-8 is parsed as-is.
func ParseObjects(source []byte) *Document {
	return parseObjects(source, nil)
}

// parseObjects parses source as objects
// with the macro and keyword tables of an enclosing document.
func parseObjects(source []byte, outer *Document) *Document {
	p := newParser(source)
	if outer != nil {
		p.doc.Macros = outer.Macros
		p.doc.Keywords = outer.Keywords
		p.doc.macroOwner = outer.macroDefs()
	}
	root := p.doc.reserve()
	c := cursor{src: source}
	var children []NodeID
	for {
		id, r := p.parseObject(c, root, parseOpts{})
		if !r.ok() || !p.advance(&c, id) {
			break
		}
		children = append(children, id)
	}
	p.doc.allocAt(root, &Root{Children: children}, 0, len(source), NoNode)
	return p.doc
}

func invalidOffset(source []byte) int {
	for i := 0; i < len(source); {
		r, n := utf8.DecodeRune(source[i:])
		if r == utf8.RuneError && n <= 1 {
			return i
		}
		i += n
	}
	return len(source)
}

// parser holds the state of a single parse.
type parser struct {
	doc *Document
	// cache maps source offsets to the first node allocated there.
	cache map[int]NodeID
}

func newParser(source []byte) *parser {
	return &parser{
		doc:   newDocument(source),
		cache: make(map[int]NodeID),
	}
}

// alloc adds a node to the document and caches it at its start offset.
func (p *parser) alloc(e Expr, start, end int, parent NodeID) NodeID {
	id := p.doc.alloc(e, start, end, parent)
	p.cache[start] = id
	return id
}

// allocAt fills in a reserved node and caches it at its start offset.
func (p *parser) allocAt(id NodeID, e Expr, start, end int, parent NodeID) NodeID {
	p.doc.allocAt(id, e, start, end, parent)
	p.cache[start] = id
	return id
}

func (p *parser) node(id NodeID) *Node {
	return &p.doc.nodes[id]
}

// advance moves c to the end of the node.
// It reports false if doing so would not make progress.
func (p *parser) advance(c *cursor, id NodeID) bool {
	end := p.doc.nodes[id].End
	if end <= c.pos {
		return false
	}
	c.pos = end
	return true
}

// parseOpts is the context threaded through the recursive descent.
// It is always passed by value.
type parseOpts struct {
	// fromParagraph is set inside a paragraph
	// so that a speculative element parse does not start another paragraph.
	fromParagraph bool
	// fromObject is set while collecting plain text
	// so that the object parser does not recurse into text collection.
	fromObject bool
	// fromList is set inside a plain list.
	fromList bool
	// listLine is set while parsing the first line of a list item.
	listLine bool
	// markup is the set of markup kinds open around the position.
	markup markupSet
	// indent is the indentation required to continue the enclosing list.
	indent int
}

type resultKind uint8

const (
	matched resultKind = iota
	noMatch
	atEOF
	badIndent
	markupEnd
)

// A result is the outcome of a parse attempt.
// A failed attempt never allocates a node that is returned,
// but nodes it allocated along the way remain in the cache.
type result struct {
	kind resultKind
	// markup is the set of markup kinds that end at the position
	// for a markupEnd result.
	markup markupSet
}

var (
	resOK        = result{kind: matched}
	resNoMatch   = result{kind: noMatch}
	resEOF       = result{kind: atEOF}
	resBadIndent = result{kind: badIndent}
)

func resMarkupEnd(m markupSet) result {
	return result{kind: markupEnd, markup: m}
}

func (r result) ok() bool {
	return r.kind == matched
}

// parseElement parses the element at the cursor.
func (p *parser) parseElement(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	if id, ok := p.cache[c.pos]; ok {
		return id, resOK
	}
	if c.eof() {
		return NoNode, resEOF
	}
	// A newline ends every table row.
	if opts.markup&tableMarkup != 0 {
		return NoNode, resMarkupEnd(tableMarkup)
	}

	start := c.pos
	newOpts := opts
	for {
		b, ok := c.curr()
		if !ok {
			return NoNode, resNoMatch
		}
		if b == '\n' {
			return p.alloc(new(BlankLine), start, c.pos+1, parent), resOK
		}
		if !isSpace(b) {
			break
		}
		newOpts.indent++
		c.next()
	}
	indent := c.pos - start
	if id, ok := p.cache[c.pos]; ok {
		return id, resOK
	}

	noParaOpts := opts
	noParaOpts.fromParagraph = false
	newOpts.fromParagraph = false

	if !opts.listLine {
		switch {
		case indent+1 == opts.indent && opts.fromList && !(indent == 0 && c.is('*')):
			if id, r := p.parseItem(c, parent, newOpts); r.ok() {
				return id, r
			}
			return NoNode, resBadIndent
		case indent < opts.indent:
			return NoNode, resBadIndent
		}
	}

	b, _ := c.curr()
	switch {
	case b == '*':
		if indent > 0 {
			if id, r := p.parsePlainList(c, parent, newOpts); r.ok() {
				return id, r
			}
		} else if id, r := p.parseHeading(c, parent, parseOpts{}); r.ok() {
			return id, r
		}
	case b == '+':
		if id, r := p.parsePlainList(c, parent, newOpts); r.ok() {
			return id, r
		}
	case b == '-':
		if id, r := p.parseHorizontalRule(c, parent); r.ok() {
			return id, r
		}
		if id, r := p.parsePlainList(c, parent, newOpts); r.ok() {
			return id, r
		}
	case isAlnum(b):
		if id, r := p.parsePlainList(c, parent, newOpts); r.ok() {
			return id, r
		}
	case b == '#':
		if id, r := p.parseKeyword(c, parent, noParaOpts); r.ok() {
			return id, r
		}
		if id, r := p.parseBlock(c, parent, noParaOpts); r.ok() {
			return id, r
		}
		if id, r := p.parseComment(c, parent); r.ok() {
			return id, r
		}
	case b == '\\':
		if id, r := p.parseLatexEnv(c, parent); r.ok() {
			return id, r
		}
	case b == '|':
		if id, r := p.parseTable(c, parent, noParaOpts); r.ok() {
			return id, r
		}
	case b == ':':
		if id, r := p.parseDrawer(c, parent, noParaOpts); r.ok() {
			return id, r
		}
	case b == '[':
		if indent == 0 {
			if id, r := p.parseFootnoteDef(c, parent, noParaOpts); r.ok() {
				return id, r
			}
		}
	}

	if opts.fromParagraph {
		return NoNode, resNoMatch
	}
	return p.parseParagraph(c, parent, opts)
}

// parseObject parses the object at the cursor.
func (p *parser) parseObject(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	if id, ok := p.cache[c.pos]; ok {
		return id, resOK
	}
	b, ok := c.curr()
	if !ok {
		return NoNode, resEOF
	}

	switch b {
	case '/':
		if id, r, done := p.handleMarkup(italicMarkup, c, parent, opts); done {
			return id, r
		}
	case '*':
		if id, r, done := p.handleMarkup(boldMarkup, c, parent, opts); done {
			return id, r
		}
	case '_':
		if id, r, done := p.handleMarkup(underlineMarkup, c, parent, opts); done {
			return id, r
		}
		if id, r := p.parseSubscript(c, parent, opts); r.ok() {
			return id, r
		}
	case '+':
		if id, r, done := p.handleMarkup(strikeMarkup, c, parent, opts); done {
			return id, r
		}
	case '=':
		if id, r := p.parsePlainMarkup(verbatimMarkup, c, parent, opts); r.ok() {
			return id, r
		}
	case '~':
		if id, r := p.parsePlainMarkup(codeMarkup, c, parent, opts); r.ok() {
			return id, r
		}
	case '[':
		if id, r := p.parseRegularLink(c, parent, opts); r.ok() {
			return id, r
		}
		if id, r := p.parseFootnoteRef(c, parent, opts); r.ok() {
			return id, r
		}
	case ']':
		if opts.markup&linkMarkup != 0 {
			if next, ok := c.peek(1); ok && next == ']' {
				return NoNode, resMarkupEnd(linkMarkup)
			}
		} else if opts.markup&footnoteRefMarkup != 0 {
			return NoNode, resMarkupEnd(footnoteRefMarkup)
		}
	case '\\':
		if next, ok := c.peek(1); ok && next == '\\' {
			start := c.pos
			lb := c
			lb.advance(2)
			lb.skipSpaces()
			if lb.is('\n') {
				return p.alloc(new(LineBreak), start, lb.pos+1, parent), resOK
			}
		} else if id, r := p.parseLatexFragment(c, parent, opts); r.ok() {
			return id, r
		}
	case '$':
		if id, r := p.parseLatexFragment(c, parent, opts); r.ok() {
			return id, r
		}
	case '\n':
		opts.listLine = false
		opts.fromObject = false
		next := c
		next.next()
		_, r := p.parseElement(next, parent, opts)
		switch r.kind {
		case noMatch:
			return p.alloc(new(SoftBreak), c.pos, c.pos+1, parent), resOK
		case matched, atEOF:
			// Either way the paragraph ends here.
			return NoNode, resEOF
		default:
			return NoNode, r
		}
	case '<':
		if id, r := p.parseAngleLink(c, parent); r.ok() {
			return id, r
		}
		if id, r := p.parseTarget(c, parent); r.ok() {
			return id, r
		}
	case '|':
		if opts.markup&tableMarkup != 0 {
			return NoNode, resMarkupEnd(tableMarkup)
		}
	case ':':
		if id, r := p.parseEmoji(c, parent); r.ok() {
			return id, r
		}
	case '}':
		if opts.markup&supSubMarkup != 0 {
			return NoNode, resMarkupEnd(supSubMarkup)
		}
	case '^':
		if id, r := p.parseSuperscript(c, parent, opts); r.ok() {
			return id, r
		}
	case 's':
		if id, r := p.parseInlineSrc(c, parent); r.ok() {
			return id, r
		}
	case '{':
		if id, r := p.parseMacroCall(c, parent, opts); r.ok() {
			return id, r
		}
	case '@':
		if id, r := p.parseExportSnippet(c, parent); r.ok() {
			return id, r
		}
	}

	if link, end, ok := p.matchPlainLink(c); ok {
		return p.alloc(link, c.pos, end, parent), resOK
	}

	if opts.fromObject {
		return NoNode, resNoMatch
	}
	opts.fromObject = true
	return p.parseText(c, parent, opts), resOK
}

// handleMarkup closes or opens recursive markup at the cursor.
// done is false if the caller should try other objects.
func (p *parser) handleMarkup(kind markupSet, c cursor, parent NodeID, opts parseOpts) (id NodeID, r result, done bool) {
	if opts.markup&kind != 0 {
		if verifyMarkup(c, true) {
			return NoNode, resMarkupEnd(kind), true
		}
		return NoNode, resNoMatch, false
	}
	if id, r := p.parseRecursiveMarkup(kind, c, parent, opts); r.ok() {
		return id, r, true
	}
	return NoNode, resNoMatch, false
}

// parseText collects plain text up to the next object
// or the end of the paragraph.
func (p *parser) parseText(c cursor, parent NodeID, opts parseOpts) NodeID {
	start := c.pos
	for {
		_, r := p.parseObject(c, parent, opts)
		if r.kind != noMatch {
			break
		}
		c.next()
	}
	return p.alloc(&Plain{Text: c.slice(start, c.pos)}, start, c.pos, parent)
}
