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

// parseTable parses consecutive table rows.
func (p *parser) parseTable(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	opts.markup |= tableMarkup
	id := p.doc.reserve()
	t := new(Table)
	for {
		row, ok := p.parseTableRow(c, id, opts)
		if !ok || !p.advance(&c, row) {
			break
		}
		t.Children = append(t.Children, row)
		t.Rows++
		if r := p.node(row).Expr.(*TableRow); !r.Rule {
			t.Cols = max(t.Cols, len(r.Children))
		}
	}
	if t.Rows == 0 {
		return NoNode, resNoMatch
	}
	return p.allocAt(id, t, start, c.pos, parent), resOK
}

// parseTableRow parses a row of cells or a rule line.
// Rows are not cached, since the same offset always starts the same row.
func (p *parser) parseTableRow(c cursor, parent NodeID, opts parseOpts) (NodeID, bool) {
	start := c.pos
	if c.eof() {
		return NoNode, false
	}
	c.skipSpaces()
	if !c.word("|") {
		return NoNode, false
	}
	if c.is('-') {
		end := c.after(c.lineEnd())
		return p.doc.alloc(&TableRow{Rule: true}, start, end, parent), true
	}

	row := new(TableRow)
	for {
		cell := p.parseTableCell(c, parent, opts)
		row.Children = append(row.Children, cell)
		progressed := p.node(cell).End > c.pos
		c.pos = p.node(cell).End
		b, ok := c.curr()
		if !ok {
			break
		}
		if b == '\n' {
			c.next()
			break
		}
		if !progressed {
			break
		}
	}
	return p.doc.alloc(row, start, c.pos, parent), true
}

// parseTableCell parses the objects up to the next '|' or newline.
func (p *parser) parseTableCell(c cursor, parent NodeID, opts parseOpts) NodeID {
	start := c.pos
	var children []NodeID
	for {
		id, r := p.parseObject(c, parent, opts)
		if r.kind == markupEnd {
			if !c.is('\n') {
				c.next()
			}
			break
		}
		if !r.ok() || !p.advance(&c, id) {
			break
		}
		children = append(children, id)
	}

	// Drop alignment padding.
	if len(children) > 0 {
		if plain, ok := p.node(children[0]).Expr.(*Plain); ok {
			plain.Text = strings.TrimLeft(plain.Text, " \t")
			if plain.Text == "" {
				children = children[1:]
			}
		}
	}
	if n := len(children); n > 0 {
		if plain, ok := p.node(children[n-1]).Expr.(*Plain); ok {
			plain.Text = strings.TrimRight(plain.Text, " \t")
			if plain.Text == "" {
				children = children[:n-1]
			}
		}
	}
	return p.doc.alloc(&TableCell{Children: children}, start, c.pos, parent)
}
