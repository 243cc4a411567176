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

import "strconv"

// parseFootnoteRef parses "[fn:LABEL]", "[fn:LABEL:DEFINITION]"
// or the anonymous "[fn::DEFINITION]".
func (p *parser) parseFootnoteRef(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	if !c.word("[fn:") {
		return NoNode, resNoMatch
	}
	end, ok := c.until(func(b byte) bool {
		return b == '\n' || b == ':' || b == ']' || b == ' '
	})
	if !ok {
		return NoNode, resNoMatch
	}
	label := c.slice(c.pos, end)
	c.pos = end

	b, _ := c.curr()
	switch b {
	case ']':
		if label == "" {
			return NoNode, resNoMatch
		}
		return p.alloc(&FootnoteRef{Label: label}, start, c.pos+1, parent), resOK
	case ':':
		c.next()
	default:
		return NoNode, resNoMatch
	}

	opts.fromObject = false
	opts.markup |= footnoteRefMarkup
	var children []NodeID
	for {
		child, r := p.parseObject(c, parent, opts)
		switch r.kind {
		case matched:
			if !p.advance(&c, child) {
				return NoNode, resNoMatch
			}
			children = append(children, child)
		case markupEnd:
			if r.markup&footnoteRefMarkup == 0 {
				return NoNode, resNoMatch
			}
			id := p.allocAt(p.doc.reserve(), &FootnoteRef{
				Label:    label,
				Inline:   true,
				Children: children,
			}, start, c.pos+1, parent)
			if label != "" {
				p.doc.Footnotes[label] = id
			}
			return id, resOK
		default:
			return NoNode, r
		}
	}
}

// parseFootnoteDef parses a "[fn:LABEL] contents" definition
// at the start of a line.
// The definition ends at a heading, another definition,
// or two consecutive blank lines.
func (p *parser) parseFootnoteDef(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	if !c.word("[fn:") {
		return NoNode, resNoMatch
	}
	end, ok := c.until(func(b byte) bool {
		return b == '\n' || b == ']' || b == ' '
	})
	if !ok {
		return NoNode, resNoMatch
	}
	label := c.slice(c.pos, end)
	c.pos = end
	if !c.word("]") {
		return NoNode, resNoMatch
	}

	id := p.doc.reserve()
	var children []NodeID
	blank := NoNode
	blankStart := c.pos
loop:
	for {
		child, r := p.parseElement(c, id, opts)
		if !r.ok() {
			break
		}
		switch p.node(child).Expr.(type) {
		case *BlankLine:
			if blank != NoNode {
				c.pos = blankStart
				break loop
			}
			blank = child
			blankStart = c.pos
		case *FootnoteDef, *Heading:
			break loop
		default:
			if blank != NoNode {
				children = append(children, blank)
				blank = NoNode
			}
			children = append(children, child)
		}
		if !p.advance(&c, child) {
			break
		}
	}

	p.doc.Footnotes[label] = id
	return p.allocAt(id, &FootnoteDef{Label: label, Children: children}, start, c.pos, parent), resOK
}

// FootnoteNumbering assigns numbers to the footnotes of a document
// in the order their references are first encountered.
// A reference with a label resolves to the definition with that label;
// an anonymous or unresolved reference is its own target.
type FootnoteNumbering struct {
	doc     *Document
	targets []NodeID
	numbers map[NodeID]int
	refs    map[NodeID]footnoteUse
}

type footnoteUse struct {
	target NodeID
	number int
	repeat bool
}

// FootnoteNumbers numbers the footnote references in d.
// References inside footnote definitions are numbered
// after those in the document body.
func (d *Document) FootnoteNumbers() *FootnoteNumbering {
	fn := &FootnoteNumbering{
		doc:     d,
		numbers: make(map[NodeID]int),
		refs:    make(map[NodeID]footnoteUse),
	}
	fn.visit(d.Root())
	for i := 0; i < len(fn.targets); i++ {
		for _, child := range fn.Contents(fn.targets[i]) {
			fn.visit(child)
		}
	}
	return fn
}

func (fn *FootnoteNumbering) visit(id NodeID) {
	n := fn.doc.Node(id)
	if n == nil {
		return
	}
	switch e := n.Expr.(type) {
	case *FootnoteDef:
		return
	case *FootnoteRef:
		fn.use(id, e)
		return
	}
	for _, child := range fn.doc.Children(id) {
		fn.visit(child)
	}
}

func (fn *FootnoteNumbering) use(id NodeID, ref *FootnoteRef) {
	target := id
	if ref.Label != "" {
		if def, ok := fn.doc.Footnotes[ref.Label]; ok {
			target = def
		}
	}
	num, seen := fn.numbers[target]
	if !seen {
		fn.targets = append(fn.targets, target)
		num = len(fn.targets)
		fn.numbers[target] = num
	}
	fn.refs[id] = footnoteUse{target: target, number: num, repeat: seen}
}

// Len returns the number of distinct footnotes.
func (fn *FootnoteNumbering) Len() int {
	return len(fn.targets)
}

// Targets returns the footnote targets in number order.
// Each is either a [FootnoteDef] or an inline [FootnoteRef].
func (fn *FootnoteNumbering) Targets() []NodeID {
	return fn.targets
}

// Target returns the definition that the reference resolves to.
func (fn *FootnoteNumbering) Target(ref NodeID) NodeID {
	u, ok := fn.refs[ref]
	if !ok {
		return NoNode
	}
	return u.target
}

// Number returns the 1-based footnote number of a reference,
// or 0 if ref is not a numbered reference.
func (fn *FootnoteNumbering) Number(ref NodeID) int {
	return fn.refs[ref].number
}

// Anchor returns a unique identifier for a reference.
// The first reference to a footnote uses the footnote number;
// repeats append the reference's node handle.
func (fn *FootnoteNumbering) Anchor(ref NodeID) string {
	u, ok := fn.refs[ref]
	if !ok {
		return ""
	}
	if u.repeat {
		return strconv.Itoa(u.number) + "." + strconv.Itoa(int(ref))
	}
	return strconv.Itoa(u.number)
}

// Contents returns the children that define the footnote target.
func (fn *FootnoteNumbering) Contents(target NodeID) []NodeID {
	n := fn.doc.Node(target)
	if n == nil {
		return nil
	}
	switch e := n.Expr.(type) {
	case *FootnoteDef:
		return e.Children
	case *FootnoteRef:
		return e.Children
	default:
		return nil
	}
}
