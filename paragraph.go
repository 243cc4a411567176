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

// parseParagraph parses objects until the end of the paragraph.
// A paragraph always matches.
func (p *parser) parseParagraph(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	opts.fromParagraph = true
	id := p.doc.reserve()

	var children []NodeID
	for {
		child, r := p.parseObject(c, id, opts)
		if !r.ok() || !p.advance(&c, child) {
			break
		}
		children = append(children, child)
	}
	return p.allocAt(id, &Paragraph{Children: children}, start, c.after(c.pos), parent), resOK
}

// parseComment parses a "# text" line.
func (p *parser) parseComment(c cursor, parent NodeID) (NodeID, result) {
	start := c.pos
	next, ok := c.peek(1)
	if !ok || !isSpace(next) {
		return NoNode, resNoMatch
	}
	end := c.lineEnd()
	text := ""
	if start+2 < end {
		text = c.slice(start+2, end)
	}
	return p.alloc(&Comment{Text: text}, start, c.after(end), parent), resOK
}

// parseHorizontalRule parses a line of at least five hyphens.
func (p *parser) parseHorizontalRule(c cursor, parent NodeID) (NodeID, result) {
	start := c.pos
	for c.is('-') {
		c.next()
	}
	if c.pos-start < 5 || (!c.eof() && !c.is('\n')) {
		return NoNode, resNoMatch
	}
	return p.alloc(new(HorizontalRule), start, c.after(c.pos), parent), resOK
}
