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
	"bytes"
	"strings"
)

var blockTypes = map[string]BlockType{
	"center":  CenterBlock,
	"quote":   QuoteBlock,
	"comment": CommentBlock,
	"example": ExampleBlock,
	"export":  ExportBlock,
	"src":     SrcBlock,
	"verse":   VerseBlock,
}

// parseBlock parses a "#+begin_NAME" ... "#+end_NAME" block.
func (p *parser) parseBlock(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	if !c.wordFold("#+begin_") {
		return NoNode, resNoMatch
	}
	nameEnd, ok := c.until(isSpace)
	if !ok || nameEnd == c.pos {
		return NoNode, resNoMatch
	}
	name := c.slice(c.pos, nameEnd)
	c.pos = nameEnd
	c.skipSpaces()
	paramsEnd, ok := c.until(func(b byte) bool { return b == '\n' })
	if !ok {
		return NoNode, resNoMatch
	}
	params := strings.TrimSpace(c.slice(c.pos, paramsEnd))
	c.pos = paramsEnd + 1

	loc, end, ok := blockEnd(c, name)
	if !ok {
		return NoNode, resNoMatch
	}

	typ, ok := blockTypes[strings.ToLower(name)]
	if !ok {
		typ = SpecialBlock
	}
	b := &Block{
		Type:       typ,
		Name:       name,
		Parameters: params,
	}
	var lead string
	lead, b.Params = parseParams(params)
	if typ == SrcBlock || typ == ExportBlock {
		b.Language, _, _ = strings.Cut(lead, " ")
	}

	if typ.IsLesser() {
		b.Contents = c.slice(c.pos, max(c.pos, loc))
		return p.alloc(b, start, end, parent), resOK
	}

	id := p.doc.reserve()
	inner := c.cutOff(loc)
	for {
		child, r := p.parseElement(inner, id, parseOpts{})
		if !r.ok() || !p.advance(&inner, child) {
			break
		}
		b.Children = append(b.Children, child)
	}
	return p.allocAt(id, b, start, end, parent), resOK
}

// blockEnd finds the "#+end_NAME" line that closes a block.
// Only spaces and tabs may precede the marker on its line
// and follow it.
// loc is the start of the marker's line and end is just past it.
func blockEnd(c cursor, name string) (loc, end int, ok bool) {
	needle := asciiLower([]byte("#+end_" + name))
	rest := c.rest()
	lower := asciiLower(rest)
	for off := 0; ; {
		i := bytes.Index(lower[off:], needle)
		if i < 0 {
			return 0, 0, false
		}
		at := c.pos + off + i
		off += i + len(needle)

		lineStart := at
		for lineStart > c.pos && (c.src[lineStart-1] == ' ' || c.src[lineStart-1] == '\t') {
			lineStart--
		}
		if lineStart > c.pos && c.src[lineStart-1] != '\n' {
			continue
		}
		tail := c
		tail.pos = at + len(needle)
		tail.skipSpaces()
		if b, ok := tail.curr(); ok && b != '\n' {
			continue
		}
		return lineStart, tail.after(tail.pos), true
	}
}
