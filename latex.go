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
)

func isLatexEnvNameByte(b byte) bool {
	return isAlnum(b) || b == '*'
}

// parseLatexEnv parses a "\begin{NAME}" ... "\end{NAME}" environment.
func (p *parser) parseLatexEnv(c cursor, parent NodeID) (NodeID, result) {
	start := c.pos
	if !c.word(`\begin{`) {
		return NoNode, resNoMatch
	}
	nameEnd, ok := c.while(isLatexEnvNameByte)
	if !ok || nameEnd == c.pos {
		return NoNode, resNoMatch
	}
	name := c.slice(c.pos, nameEnd)
	c.pos = nameEnd
	if !c.word("}\n") {
		return NoNode, resNoMatch
	}

	endPattern, err := regexp.Compile(`(?m)^[ \t]*\\end\{` + regexp.QuoteMeta(name) + `\}[\t ]*$`)
	if err != nil {
		return NoNode, resNoMatch
	}
	m := endPattern.FindIndex(c.rest())
	if m == nil {
		return NoNode, resNoMatch
	}
	env := &LatexEnv{
		Name:     name,
		Contents: c.slice(c.pos, c.pos+m[0]),
	}
	return p.alloc(env, start, c.after(c.pos+m[1]), parent), resOK
}

// parseLatexFragment parses inline math ("$x$", "\(x\)"),
// display math ("$$x$$", "\[x\]"), an entity ("\alpha")
// or a command ("\name{arg}", "\name[arg]", "\name").
func (p *parser) parseLatexFragment(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	opts.fromParagraph = true
	first, _ := c.curr()
	switch first {
	case '$':
		next, ok := c.peek(1)
		if !ok {
			return NoNode, resEOF
		}
		if next == '$' {
			c.advance(2)
			return p.latexDelimited(c, start, parent, opts, '$', '$', DisplayLatex)
		}
		if closer, ok := c.peek(2); ok && closer == '$' && verifySingleCharLatex(c) {
			frag := &LatexFragment{Type: InlineLatex, Contents: c.slice(c.pos+1, c.pos+2)}
			return p.alloc(frag, start, c.pos+3, parent), resOK
		}
		if !verifyLatexFrag(c, false) {
			return NoNode, resNoMatch
		}
		c.next()
		for {
			b, ok := c.curr()
			if !ok {
				return NoNode, resEOF
			}
			switch {
			case b == '\n':
				if !p.continuesParagraph(c, parent, opts) {
					return NoNode, resEOF
				}
			case b == '$' && verifyLatexFrag(c, true):
				frag := &LatexFragment{Type: InlineLatex, Contents: c.slice(start+1, c.pos)}
				return p.alloc(frag, start, c.pos+1, parent), resOK
			}
			c.next()
		}
	case '\\':
		c.next()
		b, ok := c.curr()
		if !ok {
			return NoNode, resEOF
		}
		switch {
		case b == '(':
			c.next()
			return p.latexDelimited(c, start, parent, opts, '\\', ')', InlineLatex)
		case b == '[':
			c.next()
			return p.latexDelimited(c, start, parent, opts, '\\', ']', DisplayLatex)
		case isAlpha(b):
			return p.latexCommand(c, start, parent)
		}
	}
	return NoNode, resNoMatch
}

// latexDelimited scans for a two-byte closing delimiter.
func (p *parser) latexDelimited(c cursor, start int, parent NodeID, opts parseOpts, close1, close2 byte, typ LatexType) (NodeID, result) {
	for {
		b, ok := c.curr()
		if !ok {
			return NoNode, resEOF
		}
		switch b {
		case '\n':
			if !p.continuesParagraph(c, parent, opts) {
				return NoNode, resEOF
			}
		case close1:
			next, ok := c.peek(1)
			if !ok {
				return NoNode, resEOF
			}
			if next == close2 {
				frag := &LatexFragment{Type: typ, Contents: c.slice(start+2, c.pos)}
				return p.alloc(frag, start, c.pos+2, parent), resOK
			}
		}
		c.next()
	}
}

// continuesParagraph reports whether the text after the newline at the cursor
// belongs to the same paragraph, that is, does not start an element.
func (p *parser) continuesParagraph(c cursor, parent NodeID, opts parseOpts) bool {
	opts.fromObject = false
	opts.listLine = false
	c.next()
	_, r := p.parseElement(c, parent, opts)
	return r.kind == noMatch
}

// latexCommand parses an entity or a command after the backslash.
// c is positioned at the first letter of the name.
func (p *parser) latexCommand(c cursor, start int, parent NodeID) (NodeID, result) {
	nameStart := c.pos
	nameEnd, _ := c.while(isAlpha)
	name := c.slice(nameStart, nameEnd)
	c.pos = nameEnd
	if value, ok := entities[name]; ok {
		return p.alloc(&Entity{Name: name, Value: value}, start, nameEnd, parent), resOK
	}

	b, ok := c.curr()
	if !ok || (b != '{' && b != '[') {
		frag := &LatexFragment{Type: CommandLatex, Name: name}
		return p.alloc(frag, start, nameEnd, parent), resOK
	}
	closer := byte('}')
	invalid := "\n{"
	if b == '[' {
		closer = ']'
		invalid = "\n{[}"
	}
	c.next()
	for {
		b, ok := c.curr()
		if !ok {
			return NoNode, resEOF
		}
		if b == closer {
			frag := &LatexFragment{Type: CommandLatex, Name: name, Contents: c.slice(nameEnd+1, c.pos)}
			return p.alloc(frag, start, c.pos+1, parent), resOK
		}
		for i := 0; i < len(invalid); i++ {
			if b == invalid[i] {
				return NoNode, resNoMatch
			}
		}
		c.next()
	}
}

// verifyLatexFrag reports whether the '$' at the cursor
// may open (post == false) or close (post == true) inline math.
func verifyLatexFrag(c cursor, post bool) bool {
	before, hasBefore := c.peekBack(1)
	after, hasAfter := c.peek(1)
	if post {
		return hasBefore && !isSpace(before) && before != '.' && before != ',' && before != '$' &&
			(!hasAfter || isPunct(after) || isSpace(after))
	}
	return hasAfter && !isSpace(after) &&
		after != '.' && after != ',' && after != ';' && after != '$' &&
		(!hasBefore || before != '$')
}

// verifySingleCharLatex reports whether "$c$" at the cursor is inline math.
func verifySingleCharLatex(c cursor) bool {
	inner, ok := c.peek(1)
	if !ok {
		return false
	}
	switch inner {
	case '.', ',', '?', ';', '"':
		return false
	}
	if isSpace(inner) {
		return false
	}
	if after, ok := c.peek(3); ok && !isPunct(after) && !isSpace(after) {
		return false
	}
	if before, ok := c.peekBack(1); ok && before == '$' {
		return false
	}
	return true
}
