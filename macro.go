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
	"errors"
	"fmt"
	"strings"
)

// maxMacroDepth is the number of nested expansions [Document.ExpandMacro]
// performs before returning [ErrMacroDepth].
const maxMacroDepth = 16

// ErrMacroDepth is returned by [Document.ExpandMacro]
// for a call nested too deeply in other expansions,
// as happens with a macro that expands to a call to itself.
var ErrMacroDepth = errors.New("macro expansion nested too deeply")

// parseMacroCall parses "{{{name}}}" or "{{{name(arg1, arg2)}}}".
// A comma preceded by a backslash is part of an argument.
// Leading horizontal whitespace is trimmed from each argument.
func (p *parser) parseMacroCall(c cursor, parent NodeID, opts parseOpts) (NodeID, result) {
	start := c.pos
	if !c.word("{{{") {
		return NoNode, resNoMatch
	}
	if b, ok := c.curr(); !ok || !isAlpha(b) {
		return NoNode, resNoMatch
	}
	nameEnd, ok := c.while(isMacroNameByte)
	if !ok {
		return NoNode, resEOF
	}
	call := &MacroCall{Name: c.slice(c.pos, nameEnd)}
	c.pos = nameEnd

	if c.word("}}}") {
		return p.alloc(call, start, c.pos, parent), resOK
	}
	if !c.is('(') {
		return NoNode, resNoMatch
	}
	c.next()

	var arg strings.Builder
	argStart := c.pos
	for {
		b, ok := c.curr()
		if !ok {
			return NoNode, resEOF
		}
		switch b {
		case '\n':
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
			default:
				return NoNode, r
			}
		case '}':
			if rest := c; rest.word("}}}") {
				return NoNode, resNoMatch
			}
		case ',':
			if prev, _ := c.peekBack(1); prev == '\\' {
				arg.WriteString(c.slice(argStart, c.pos-1))
				arg.WriteByte(',')
			} else {
				arg.WriteString(c.slice(argStart, c.pos))
				call.Args = append(call.Args, strings.TrimLeft(arg.String(), " \t"))
				arg.Reset()
			}
			argStart = c.pos + 1
		case ')':
			if rest := c; rest.word(")}}}") {
				arg.WriteString(c.slice(argStart, c.pos))
				call.Args = append(call.Args, strings.TrimLeft(arg.String(), " \t"))
				return p.alloc(call, start, rest.pos, parent), resOK
			}
		}
		c.next()
	}
}

// ExpandMacro expands the [MacroCall] node id
// and parses the result as objects.
// The built-in macros "keyword", "title", "author" and "email"
// expand to the value of the named keyword.
// Other macros must be defined with "#+macro:"
// and called with as many arguments as their body uses.
func (d *Document) ExpandMacro(id NodeID) (*Document, error) {
	n := d.Node(id)
	if n == nil {
		return nil, fmt.Errorf("expand macro: no node %d", id)
	}
	call, ok := n.Expr.(*MacroCall)
	if !ok {
		return nil, fmt.Errorf("expand macro: node %d is a %v", id, n.Kind())
	}
	if d.macroDepth >= maxMacroDepth {
		return nil, fmt.Errorf("expand macro %s: %w", call.Name, ErrMacroDepth)
	}
	text, err := d.macroText(call)
	if err != nil {
		return nil, fmt.Errorf("expand macro %s: %w", call.Name, err)
	}
	expansion := parseObjects([]byte(text), d)
	expansion.macroDepth = d.macroDepth + 1
	tracer().Debugf("expanded macro %s at depth %d", call.Name, expansion.macroDepth)
	return expansion, nil
}

func (d *Document) macroText(call *MacroCall) (string, error) {
	args := call.Args
	if len(args) == 1 && strings.TrimSpace(args[0]) == "" {
		args = nil
	}
	switch call.Name {
	case "keyword":
		if len(args) != 1 {
			return "", fmt.Errorf("takes 1 argument (got %d)", len(args))
		}
		return d.Keywords[strings.ToLower(strings.TrimSpace(args[0]))], nil
	case "title", "author", "email":
		if len(args) != 0 {
			return "", fmt.Errorf("takes no arguments (got %d)", len(args))
		}
		return d.Keywords[call.Name], nil
	}

	var def *MacroDef
	if defID, ok := d.Macros[call.Name]; ok {
		if n := d.macroDefs().Node(defID); n != nil {
			def, _ = n.Expr.(*MacroDef)
		}
	}
	if def == nil {
		return "", errors.New("not defined")
	}
	if len(args) != def.NumArgs {
		return "", fmt.Errorf("takes %d arguments (got %d)", def.NumArgs, len(args))
	}
	var sb strings.Builder
	for _, part := range def.Body {
		if part.Arg == 0 {
			sb.WriteString(part.Text)
		} else {
			sb.WriteString(args[part.Arg-1])
		}
	}
	return sb.String(), nil
}

// macroDefs returns the document whose arena holds the nodes in d.Macros.
func (d *Document) macroDefs() *Document {
	if d.macroOwner != nil {
		return d.macroOwner
	}
	return d
}
