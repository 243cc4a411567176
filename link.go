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

// linkProtocols are the protocols recognized in plain and angle links.
var linkProtocols = []string{
	"shell", "news", "mailto", "https", "http", "ftp", "help", "file", "elisp",
}

// parseRegularLink parses "[[path]]" or "[[path][description]]".
func (p *parser) parseRegularLink(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	if !c.word("[[") {
		return NoNode, resNoMatch
	}
	for {
		b, ok := c.curr()
		if !ok {
			return NoNode, resEOF
		}
		switch b {
		case '\\':
			next, _ := c.peek(1)
			if next != '\\' && next != '[' && next != ']' {
				return NoNode, resNoMatch
			}
			c.advance(2)
			continue
		case '\n':
			return NoNode, resNoMatch
		case ']':
			if c.pos == start+2 {
				return NoNode, resNoMatch
			}
			raw := c.slice(start+2, c.pos)
			next, _ := c.peek(1)
			switch next {
			case ']':
				return p.alloc(&RegularLink{Path: classifyPath(raw)}, start, c.pos+2, parent), resOK
			case '[':
				c.advance(2)
				return p.parseLinkDescription(c, start, raw, parent, opts)
			default:
				return NoNode, resNoMatch
			}
		}
		c.next()
	}
}

func (p *parser) parseLinkDescription(c cursor, start int, raw string, parent NodeID, opts parseOpts) (NodeID, result) {
	opts.fromObject = false
	opts.markup |= linkMarkup
	var desc []NodeID
	for {
		child, r := p.parseObject(c, parent, opts)
		switch r.kind {
		case matched:
			if !p.advance(&c, child) {
				return NoNode, resNoMatch
			}
			desc = append(desc, child)
		case markupEnd:
			if r.markup&linkMarkup == 0 {
				return NoNode, resNoMatch
			}
			link := &RegularLink{Path: classifyPath(raw), Description: desc}
			return p.allocAt(p.doc.reserve(), link, start, c.pos+2, parent), resOK
		default:
			return NoNode, r
		}
	}
}

// classifyPath determines the type of a link path from its leading text.
func classifyPath(raw string) LinkPath {
	path := LinkPath{Type: UnspecifiedPath, Value: raw, Raw: raw}
	switch {
	case strings.HasPrefix(raw, "id:") && len(raw) > len("id:") && isHexString(raw[len("id:"):]):
		path.Type = IDPath
		path.Value = raw[len("id:"):]
	case strings.HasPrefix(raw, "file:"):
		path.Type = FilePath
		path.Value = raw[len("file:"):]
	case strings.HasPrefix(raw, "#"):
		path.Type = CustomIDPath
		path.Value = raw[1:]
	case len(raw) > 2 && raw[0] == '(' && raw[len(raw)-1] == ')':
		path.Type = CoderefPath
		path.Value = raw[1 : len(raw)-1]
	default:
		if proto, rest, ok := strings.Cut(raw, ":"); ok && isLinkProtocol(proto) {
			path.Type = ProtocolPath
			path.Protocol = proto
			path.Value = rest
		}
	}
	return path
}

// isHexString reports whether s consists of hex digits and hyphens,
// the form of an Org ID.
func isHexString(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) && s[i] != '-' {
			return false
		}
	}
	return true
}

func isLinkProtocol(s string) bool {
	for _, proto := range linkProtocols {
		if s == proto {
			return true
		}
	}
	return false
}

// matchPlainLink matches a bare "protocol:path" link at the cursor.
// The path ends on an alphanumeric byte or a slash;
// trailing punctuation is left out of the link.
func (p *parser) matchPlainLink(c cursor) (link *PlainLink, end int, ok bool) {
	if prev, ok := c.peekBack(1); ok && isAlnum(prev) {
		return nil, 0, false
	}
	for _, proto := range linkProtocols {
		pc := c
		if !pc.word(proto) || !pc.is(':') {
			continue
		}
		pc.next()
		pathStart := pc.pos
		end, _ := pc.until(func(b byte) bool {
			switch b {
			case '<', '>', '(', ')', ' ', '\t', '\n', '\r', '\f':
				return true
			}
			return false
		})
		for end > pathStart {
			last := pc.src[end-1]
			if isAlnum(last) || last == '/' {
				break
			}
			end--
		}
		if end <= pathStart {
			return nil, 0, false
		}
		if next, ok := pc.at(end); ok && isAlnum(next) {
			return nil, 0, false
		}
		return &PlainLink{Protocol: proto, Path: pc.slice(pathStart, end)}, end, true
	}
	return nil, 0, false
}

// parseAngleLink parses "<protocol:path>".
func (p *parser) parseAngleLink(c cursor, parent NodeID) (NodeID, result) {
	start := c.pos
	c.next()
	for _, proto := range linkProtocols {
		pc := c
		if !pc.word(proto) || !pc.is(':') {
			continue
		}
		pc.next()
		pathStart := pc.pos
		for {
			b, ok := pc.curr()
			if !ok {
				return NoNode, resEOF
			}
			switch b {
			case ']', '<', '\n':
				return NoNode, resNoMatch
			case '>':
				link := &PlainLink{Protocol: proto, Path: pc.slice(pathStart, pc.pos)}
				return p.alloc(link, start, pc.pos+1, parent), resOK
			}
			pc.next()
		}
	}
	return NoNode, resNoMatch
}
