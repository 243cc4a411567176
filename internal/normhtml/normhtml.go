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

// Package normhtml normalizes exported HTML so that tests can compare
// renderer output without depending on insignificant differences:
// whitespace around block-level elements, attribute order,
// the order of class names, and the choice of character references.
package normhtml

import (
	"bytes"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var textEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

type attribute struct {
	key   string
	value string
}

// NormalizeHTML strips insignificant output differences from HTML.
// Text inside pre elements is kept as-is.
func NormalizeHTML(b []byte) []byte {
	n := &normalizer{
		tok:  html.NewTokenizerFragment(bytes.NewReader(b), "div"),
		last: html.StartTagToken,
	}
	for n.next() {
	}
	return n.output
}

type normalizer struct {
	tok      *html.Tokenizer
	output   []byte
	last     html.TokenType
	lastTag  string
	preDepth int
}

func (n *normalizer) next() bool {
	tt := n.tok.Next()
	switch tt {
	case html.ErrorToken:
		return false
	case html.TextToken:
		n.text(n.tok.Text())
	case html.EndTagToken:
		name, _ := n.tok.TagName()
		tag := string(name)
		if tag == "pre" && n.preDepth > 0 {
			n.preDepth--
		} else if isBlockTag(tag) {
			n.output = bytes.TrimRightFunc(n.output, unicode.IsSpace)
		}
		n.output = append(n.output, "</"...)
		n.output = append(n.output, tag...)
		n.output = append(n.output, '>')
		n.lastTag = tag
	case html.StartTagToken, html.SelfClosingTagToken:
		name, hasAttr := n.tok.TagName()
		tag := string(name)
		if isBlockTag(tag) {
			n.output = bytes.TrimRightFunc(n.output, unicode.IsSpace)
		}
		if tag == "pre" {
			n.preDepth++
		}
		n.output = append(n.output, '<')
		n.output = append(n.output, tag...)
		if hasAttr {
			n.attrs()
		}
		n.output = append(n.output, '>')
		n.lastTag = tag
	case html.CommentToken:
		// Comments carry no rendered content.
	}

	n.last = tt
	if tt == html.SelfClosingTagToken {
		n.last = html.EndTagToken
	}
	return true
}

func (n *normalizer) text(data []byte) {
	afterTag := n.last == html.EndTagToken || n.last == html.StartTagToken
	inPre := n.preDepth > 0
	if afterTag && n.lastTag == "br" {
		data = bytes.TrimLeft(data, "\n")
	}
	if !inPre {
		data = whitespaceRE.ReplaceAll(data, []byte(" "))
		if afterTag && isBlockTag(n.lastTag) {
			if n.last == html.StartTagToken {
				data = bytes.TrimLeftFunc(data, unicode.IsSpace)
			} else {
				data = bytes.TrimSpace(data)
			}
		}
	}
	n.output = append(n.output, textEscaper.Replace(bytes.Clone(data))...)
}

// attrs writes the current tag's attributes sorted by key.
// The names in a class attribute are sorted too.
func (n *normalizer) attrs() {
	var attrs []attribute
	for {
		k, v, more := n.tok.TagAttr()
		a := attribute{string(k), string(v)}
		if a.key == "class" {
			classes := strings.Fields(a.value)
			slices.Sort(classes)
			a.value = strings.Join(classes, " ")
		}
		attrs = append(attrs, a)
		if !more {
			break
		}
	}
	slices.SortFunc(attrs, func(a, b attribute) int {
		return strings.Compare(a.key, b.key)
	})
	for _, a := range attrs {
		n.output = append(n.output, ' ')
		n.output = append(n.output, a.key...)
		if a.value != "" {
			n.output = append(n.output, `="`...)
			n.output = append(n.output, html.EscapeString(a.value)...)
			n.output = append(n.output, '"')
		}
	}
}

// blockTags are the elements around which whitespace is insignificant.
var blockTags = map[atom.Atom]struct{}{
	atom.Article:    {},
	atom.Aside:      {},
	atom.Blockquote: {},
	atom.Body:       {},
	atom.Caption:    {},
	atom.Dd:         {},
	atom.Details:    {},
	atom.Div:        {},
	atom.Dl:         {},
	atom.Dt:         {},
	atom.Figcaption: {},
	atom.Figure:     {},
	atom.Footer:     {},
	atom.H1:         {},
	atom.H2:         {},
	atom.H3:         {},
	atom.H4:         {},
	atom.H5:         {},
	atom.H6:         {},
	atom.Header:     {},
	atom.Hr:         {},
	atom.Li:         {},
	atom.Menu:       {},
	atom.Nav:        {},
	atom.Ol:         {},
	atom.P:          {},
	atom.Pre:        {},
	atom.Section:    {},
	atom.Summary:    {},
	atom.Table:      {},
	atom.Tbody:      {},
	atom.Td:         {},
	atom.Tfoot:      {},
	atom.Th:         {},
	atom.Thead:      {},
	atom.Tr:         {},
	atom.Ul:         {},
	atom.Video:      {},
}

func isBlockTag(tag string) bool {
	_, ok := blockTags[atom.Lookup([]byte(tag))]
	return ok
}
