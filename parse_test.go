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
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const sampleDocument = `#+title: Sample
#+macro: greet Hello $1!

* TODO [#A] Introduction :intro:
:PROPERTIES:
:CUSTOM_ID: intro
:END:
Some /italic/, *bold*, =verbatim= and ~code~ text.[fn:1]
A link to [[https://orgmode.org][Org]] and <<here>> a target.

** Lists
- [X] done
- [ ] todo
  1. nested
  2. items
- term :: description

| Name | Value |
|------+-------|
| a    | 1     |
| b    |

#+begin_src go :exports code
fmt.Println("hi")
#+end_src

#+begin_quote
Quoted {{{greet(*you*)}}}.
#+end_quote

[fn:1] The footnote.
`

func mustParse(tb testing.TB, source string) *Document {
	tb.Helper()
	doc, err := Parse([]byte(source))
	if err != nil {
		tb.Fatal(err)
	}
	return doc
}

// find returns the nodes of the given kind reachable from the root
// in document order.
func find(doc *Document, kind Kind) []NodeID {
	var ids []NodeID
	Walk(doc, doc.Root(), &WalkOptions{
		Pre: func(c *Cursor) bool {
			if c.Node().Kind() == kind {
				ids = append(ids, c.ID())
			}
			return true
		},
	})
	return ids
}

func kindsOf(doc *Document, ids []NodeID) []Kind {
	kinds := make([]Kind, 0, len(ids))
	for _, id := range ids {
		kinds = append(kinds, doc.Node(id).Kind())
	}
	return kinds
}

// dumpTree formats the reachable tree one node per line.
func dumpTree(doc *Document) string {
	sb := new(strings.Builder)
	Walk(doc, doc.Root(), &WalkOptions{
		Pre: func(c *Cursor) bool {
			n := c.Node()
			fmt.Fprintf(sb, "%s%v [%d,%d)", strings.Repeat("  ", c.Depth()), n.Kind(), n.Start, n.End)
			if n.Target != "" {
				fmt.Fprintf(sb, " #%s", n.Target)
			}
			if p, ok := n.Expr.(*Plain); ok {
				fmt.Fprintf(sb, " %q", p.Text)
			}
			sb.WriteByte('\n')
			return true
		},
	})
	return sb.String()
}

func TestParseTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "org.parse")
	defer teardown()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Emphasis",
			input: "Hello, *World*!\n",
			want: "Root [0,16)\n" +
				"  Paragraph [0,16)\n" +
				"    Plain [0,7) \"Hello, \"\n" +
				"    Bold [7,14)\n" +
				"      Plain [8,13) \"World\"\n" +
				"    Plain [14,15) \"!\"\n",
		},
		{
			name:  "Heading",
			input: "* TODO [#A] Title :tag:\nBody\n",
			want: "Root [0,29)\n" +
				"  Heading [0,29) #title\n" +
				"    Plain [12,17) \"Title\"\n" +
				"    Paragraph [24,29)\n" +
				"      Plain [24,28) \"Body\"\n",
		},
		{
			name:  "LeakyInnerDelimiter",
			input: "/abc ~one tw/ o~",
			want: "Root [0,16)\n" +
				"  Paragraph [0,16)\n" +
				"    Italic [0,13)\n" +
				"      Plain [1,12) \"abc ~one tw\"\n" +
				"    Plain [13,16) \" o~\"\n",
		},
		{
			name:  "SoftBreak",
			input: "a\nb\n",
			want: "Root [0,4)\n" +
				"  Paragraph [0,4)\n" +
				"    Plain [0,1) \"a\"\n" +
				"    SoftBreak [1,2)\n" +
				"    Plain [2,3) \"b\"\n",
		},
		{
			name:  "HorizontalRule",
			input: "-----\n",
			want: "Root [0,6)\n" +
				"  HorizontalRule [0,6)\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc := mustParse(t, test.input)
			if diff := cmp.Diff(test.want, dumpTree(doc)); diff != "" {
				t.Errorf("Parse(%q) tree (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestInvalidUTF8(t *testing.T) {
	_, err := Parse([]byte("ab\xffc"))
	var utf8Err *InvalidUTF8Error
	if !errors.As(err, &utf8Err) {
		t.Fatalf("Parse(...) error = %v; want *InvalidUTF8Error", err)
	}
	if utf8Err.Offset != 2 {
		t.Errorf("Offset = %d; want 2", utf8Err.Offset)
	}
}

func TestHeadingLevels(t *testing.T) {
	doc := mustParse(t, "* a\n** b\n******* c\n")
	top := doc.Children(doc.Root())
	if got, want := kindsOf(doc, top), []Kind{HeadingKind}; !cmp.Equal(got, want) {
		t.Fatalf("root children = %v; want %v", got, want)
	}
	a := doc.Node(top[0]).Expr.(*Heading)
	if a.Level != 1 {
		t.Errorf("a.Level = %d; want 1", a.Level)
	}
	if len(a.Children) != 1 {
		t.Fatalf("len(a.Children) = %d; want 1", len(a.Children))
	}
	b, ok := doc.Node(a.Children[0]).Expr.(*Heading)
	if !ok {
		t.Fatalf("a.Children[0] is a %v; want Heading", doc.Node(a.Children[0]).Kind())
	}
	if b.Level != 2 {
		t.Errorf("b.Level = %d; want 2", b.Level)
	}
	if got, want := kindsOf(doc, b.Children), []Kind{ParagraphKind}; !cmp.Equal(got, want) {
		t.Fatalf("b.Children = %v; want %v", got, want)
	}
	if got, want := doc.Text(b.Children[0]), "******* c"; got != want {
		t.Errorf("seven-star line text = %q; want %q", got, want)
	}
}

func TestHeadingFields(t *testing.T) {
	doc := mustParse(t, "* TODO [#A] Introduction :intro:work:\n:PROPERTIES:\n:CUSTOM_ID: intro\n:tags+: extra\n:END:\n** Child :sub:\n")
	headings := find(doc, HeadingKind)
	if len(headings) != 2 {
		t.Fatalf("found %d headings; want 2", len(headings))
	}
	h := doc.Node(headings[0]).Expr.(*Heading)
	if h.Keyword != "TODO" {
		t.Errorf("Keyword = %q; want %q", h.Keyword, "TODO")
	}
	if h.Priority != "A" {
		t.Errorf("Priority = %q; want %q", h.Priority, "A")
	}
	if h.Title != "Introduction" {
		t.Errorf("Title = %q; want %q", h.Title, "Introduction")
	}
	if got, want := doc.HeadingTags(headings[0]), []string{"intro", "work"}; !cmp.Equal(got, want) {
		t.Errorf("HeadingTags(parent) = %q; want %q", got, want)
	}
	if got, ok := h.Properties.Get("CUSTOM_ID"); !ok || got != "intro" {
		t.Errorf("Properties.Get(%q) = %q, %t; want %q, true", "CUSTOM_ID", got, ok, "intro")
	}
	if got, want := h.Properties.Keys(), []string{"CUSTOM_ID", "tags"}; !cmp.Equal(got, want) {
		t.Errorf("Properties.Keys() = %q; want %q", got, want)
	}

	child := doc.Node(headings[1]).Expr.(*Heading)
	wantTags := []Tag{{Name: "sub", Parent: NoNode}, {Parent: headings[0]}}
	if diff := cmp.Diff(wantTags, child.Tags); diff != "" {
		t.Errorf("child Tags (-want +got):\n%s", diff)
	}
	if got, want := doc.HeadingTags(headings[1]), []string{"sub", "intro", "work"}; !cmp.Equal(got, want) {
		t.Errorf("HeadingTags(child) = %q; want %q", got, want)
	}
}

func TestDuplicateAnchors(t *testing.T) {
	doc := mustParse(t, "* Notes\n* Notes\n* Other Notes\n")
	var got []string
	for _, id := range find(doc, HeadingKind) {
		got = append(got, doc.Node(id).Target)
	}
	want := []string{"notes", "notes-1", "other-notes"}
	if !cmp.Equal(got, want) {
		t.Errorf("anchors = %q; want %q", got, want)
	}
	if anchor, ok := doc.ResolveLink("Other"); !ok || anchor != "other-notes" {
		t.Errorf("ResolveLink(%q) = %q, %t; want %q, true", "Other", anchor, ok, "other-notes")
	}
	if anchor, ok := doc.ResolveLink("Missing"); ok {
		t.Errorf("ResolveLink(%q) = %q, true; want _, false", "Missing", anchor)
	}
}

func TestEmptyEmphasis(t *testing.T) {
	for _, input := range []string{"**\n", "a ** b\n", "//\n", "x __ y\n"} {
		doc := mustParse(t, input)
		for _, kind := range []Kind{BoldKind, ItalicKind, UnderlineKind} {
			if ids := find(doc, kind); len(ids) > 0 {
				t.Errorf("Parse(%q) produced %d %v nodes; want 0", input, len(ids), kind)
			}
		}
		if got := doc.Text(doc.Root()); got != strings.TrimSuffix(input, "\n") {
			t.Errorf("Parse(%q) text = %q; want %q", input, got, strings.TrimSuffix(input, "\n"))
		}
	}
}

func TestFootnoteNumbering(t *testing.T) {
	doc := mustParse(t, "x[fn:a] y[fn:b] z[fn:a]\n\n[fn:a] Alpha.\n\n[fn:b] Beta.\n")
	refs := find(doc, FootnoteRefKind)
	if len(refs) != 3 {
		t.Fatalf("found %d footnote references; want 3", len(refs))
	}
	fn := doc.FootnoteNumbers()
	var numbers []int
	for _, ref := range refs {
		numbers = append(numbers, fn.Number(ref))
	}
	if want := []int{1, 2, 1}; !cmp.Equal(numbers, want) {
		t.Errorf("numbers = %v; want %v", numbers, want)
	}
	if fn.Len() != 2 {
		t.Errorf("Len() = %d; want 2", fn.Len())
	}
	anchors := []string{fn.Anchor(refs[0]), fn.Anchor(refs[1]), fn.Anchor(refs[2])}
	wantAnchors := []string{"1", "2", "1." + strconv.Itoa(int(refs[2]))}
	if !cmp.Equal(anchors, wantAnchors) {
		t.Errorf("anchors = %q; want %q", anchors, wantAnchors)
	}

	target := fn.Target(refs[0])
	if target != doc.Footnotes["a"] {
		t.Errorf("Target(refs[0]) = %d; want %d", target, doc.Footnotes["a"])
	}
	contents := fn.Contents(target)
	if len(contents) != 1 || doc.Text(contents[0]) != "Alpha." {
		t.Errorf("Contents(a) = %v; want a single paragraph %q", kindsOf(doc, contents), "Alpha.")
	}
	if got := fn.Number(doc.Root()); got != 0 {
		t.Errorf("Number(root) = %d; want 0", got)
	}
}

func TestInlineFootnote(t *testing.T) {
	doc := mustParse(t, "See[fn:: an *inline* note] and[fn:x] more.\n")
	refs := find(doc, FootnoteRefKind)
	if len(refs) != 2 {
		t.Fatalf("found %d footnote references; want 2", len(refs))
	}
	inline := doc.Node(refs[0]).Expr.(*FootnoteRef)
	if !inline.Inline || inline.Label != "" {
		t.Errorf("refs[0] = %+v; want anonymous inline reference", inline)
	}
	if got, want := doc.Text(refs[0]), " an inline note"; got != want {
		t.Errorf("Text(refs[0]) = %q; want %q", got, want)
	}
	fn := doc.FootnoteNumbers()
	// An unresolved label is its own target.
	if got := fn.Target(refs[1]); got != refs[1] {
		t.Errorf("Target(refs[1]) = %d; want %d", got, refs[1])
	}
	if fn.Number(refs[0]) != 1 || fn.Number(refs[1]) != 2 {
		t.Errorf("numbers = %d, %d; want 1, 2", fn.Number(refs[0]), fn.Number(refs[1]))
	}
}

func TestListKindSwitch(t *testing.T) {
	doc := mustParse(t, "1. a\n- b\n")
	top := doc.Children(doc.Root())
	if got, want := kindsOf(doc, top), []Kind{PlainListKind, PlainListKind}; !cmp.Equal(got, want) {
		t.Fatalf("root children = %v; want %v", got, want)
	}
	first := doc.Node(top[0]).Expr.(*PlainList)
	second := doc.Node(top[1]).Expr.(*PlainList)
	if first.Type != OrderedList || second.Type != UnorderedList {
		t.Errorf("list types = %v, %v; want %v, %v", first.Type, second.Type, OrderedList, UnorderedList)
	}
	if len(first.Children) != 1 || len(second.Children) != 1 {
		t.Fatalf("item counts = %d, %d; want 1, 1", len(first.Children), len(second.Children))
	}
	if got := doc.Text(second.Children[0]); got != "b" {
		t.Errorf("second item text = %q; want %q", got, "b")
	}
	if got := doc.Node(second.Children[0]).Parent; got != top[1] {
		t.Errorf("second item parent = %d; want %d", got, top[1])
	}
}

func TestListKindSwitchAfterNestedList(t *testing.T) {
	doc := mustParse(t, "- a\n  - x\n1. b\n")
	top := doc.Children(doc.Root())
	if got, want := kindsOf(doc, top), []Kind{PlainListKind, PlainListKind}; !cmp.Equal(got, want) {
		t.Fatalf("root children = %v; want %v", got, want)
	}
	first := doc.Node(top[0]).Expr.(*PlainList)
	if len(first.Children) != 1 {
		t.Fatalf("len(first list items) = %d; want 1", len(first.Children))
	}
	item := doc.Node(first.Children[0]).Expr.(*Item)
	if got, want := kindsOf(doc, item.Children), []Kind{ParagraphKind, PlainListKind}; !cmp.Equal(got, want) {
		t.Errorf("first item children = %v; want %v", got, want)
	}
	second := doc.Node(top[1]).Expr.(*PlainList)
	if second.Type != OrderedList || len(second.Children) != 1 {
		t.Fatalf("second list = %v with %d items; want %v with 1 item", second.Type, len(second.Children), OrderedList)
	}
	if got := doc.Node(second.Children[0]).Parent; got != top[1] {
		t.Errorf("second list item parent = %d; want %d", got, top[1])
	}
	if got := doc.Text(second.Children[0]); got != "b" {
		t.Errorf("second list item text = %q; want %q", got, "b")
	}
}

func TestNestedList(t *testing.T) {
	doc := mustParse(t, "- a\n  1. x\n  2. y\n- b\n")
	top := doc.Children(doc.Root())
	if len(top) != 1 {
		t.Fatalf("len(root children) = %d; want 1", len(top))
	}
	list := doc.Node(top[0]).Expr.(*PlainList)
	if list.Type != UnorderedList || len(list.Children) != 2 {
		t.Fatalf("outer list = %v with %d items; want %v with 2 items", list.Type, len(list.Children), UnorderedList)
	}
	item := doc.Node(list.Children[0]).Expr.(*Item)
	if got, want := kindsOf(doc, item.Children), []Kind{ParagraphKind, PlainListKind}; !cmp.Equal(got, want) {
		t.Fatalf("first item children = %v; want %v", got, want)
	}
	inner := doc.Node(item.Children[1]).Expr.(*PlainList)
	if inner.Type != OrderedList || len(inner.Children) != 2 {
		t.Errorf("inner list = %v with %d items; want %v with 2 items", inner.Type, len(inner.Children), OrderedList)
	}
	if got := doc.Text(list.Children[1]); got != "b" {
		t.Errorf("second item text = %q; want %q", got, "b")
	}
}

func TestListItems(t *testing.T) {
	tests := []struct {
		input string
		want  Item
	}{
		{"- plain\n", Item{Bullet: Bullet{Char: '-'}}},
		{"+ [X] done\n", Item{Bullet: Bullet{Char: '+'}, CheckBox: CheckBoxOn}},
		{"- [-] partly\n", Item{Bullet: Bullet{Char: '-'}, CheckBox: CheckBoxPartial}},
		{"3. [@3] [ ] three\n", Item{Bullet: Bullet{Char: '.', Ordered: true, Number: 3}, CounterSet: "3", CheckBox: CheckBoxOff}},
		{"b) letter\n", Item{Bullet: Bullet{Char: ')', Ordered: true, Letter: 'b'}}},
		{"- term :: description\n", Item{Bullet: Bullet{Char: '-'}, Tag: "term"}},
	}
	for _, test := range tests {
		doc := mustParse(t, test.input)
		items := find(doc, ItemKind)
		if len(items) != 1 {
			t.Errorf("Parse(%q) found %d items; want 1", test.input, len(items))
			continue
		}
		got := *doc.Node(items[0]).Expr.(*Item)
		got.Children = nil
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Parse(%q) item (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestTable(t *testing.T) {
	doc := mustParse(t, "| a | b |\n|---+---|\n| c |\n")
	tables := find(doc, TableKind)
	if len(tables) != 1 {
		t.Fatalf("found %d tables; want 1", len(tables))
	}
	table := doc.Node(tables[0]).Expr.(*Table)
	if table.Rows != 3 || table.Cols != 2 {
		t.Errorf("Rows, Cols = %d, %d; want 3, 2", table.Rows, table.Cols)
	}
	if !doc.Node(table.Children[1]).Expr.(*TableRow).Rule {
		t.Error("second row is not a rule")
	}
	var cells []string
	for _, id := range find(doc, TableCellKind) {
		cells = append(cells, doc.Text(id))
	}
	if want := []string{"a", "b", "c"}; !cmp.Equal(cells, want) {
		t.Errorf("cells = %q; want %q", cells, want)
	}
}

func TestBlocks(t *testing.T) {
	doc := mustParse(t, "#+begin_src python :results output :exports none\nprint(1)\n#+END_SRC\n#+begin_quote\nquoted\n#+end_quote\n")
	blocks := find(doc, BlockKind)
	if len(blocks) != 2 {
		t.Fatalf("found %d blocks; want 2", len(blocks))
	}
	src := doc.Node(blocks[0]).Expr.(*Block)
	if src.Type != SrcBlock || src.Language != "python" || src.Contents != "print(1)\n" {
		t.Errorf("src block = {Type: %v, Language: %q, Contents: %q}; want {%v, %q, %q}",
			src.Type, src.Language, src.Contents, SrcBlock, "python", "print(1)\n")
	}
	if got, _ := src.Params.Get("exports"); got != "none" {
		t.Errorf("Params.Get(%q) = %q; want %q", "exports", got, "none")
	}
	quote := doc.Node(blocks[1]).Expr.(*Block)
	if quote.Type != QuoteBlock {
		t.Errorf("second block type = %v; want %v", quote.Type, QuoteBlock)
	}
	if got, want := kindsOf(doc, quote.Children), []Kind{ParagraphKind}; !cmp.Equal(got, want) {
		t.Errorf("quote children = %v; want %v", got, want)
	}
}

func TestKeywords(t *testing.T) {
	doc := mustParse(t, "#+TITLE: First\n#+title: Second\n#+author: Me\n")
	if got := doc.Keywords["title"]; got != "Second" {
		t.Errorf("Keywords[title] = %q; want %q", got, "Second")
	}
	if got := doc.Keywords["author"]; got != "Me" {
		t.Errorf("Keywords[author] = %q; want %q", got, "Me")
	}
}

func TestAffiliatedKeywords(t *testing.T) {
	doc := mustParse(t, "#+name: results\n#+attr_html: :class wide :style border:1px\n#+attr_html: :class striped\n| a |\n")
	tables := find(doc, TableKind)
	if len(tables) != 1 {
		t.Fatalf("found %d tables; want 1", len(tables))
	}
	n := doc.Node(tables[0])
	if n.Target != "results" {
		t.Errorf("table Target = %q; want %q", n.Target, "results")
	}
	attrs := n.Attrs["html"]
	if got, _ := attrs.Get("class"); got != "wide striped" {
		t.Errorf("class = %q; want %q", got, "wide striped")
	}
	if got, _ := attrs.Get("style"); got != "border:1px" {
		t.Errorf("style = %q; want %q", got, "border:1px")
	}
	if got := doc.Targets["results"]; got != "results" {
		t.Errorf("Targets[results] = %q; want %q", got, "results")
	}
}

func TestMacroExpansion(t *testing.T) {
	doc := mustParse(t, "#+macro: greet Hello $1!\n{{{greet(*world*)}}}\n")
	calls := find(doc, MacroCallKind)
	if len(calls) != 1 {
		t.Fatalf("found %d macro calls; want 1", len(calls))
	}
	call := doc.Node(calls[0]).Expr.(*MacroCall)
	if call.Name != "greet" || !cmp.Equal(call.Args, []string{"*world*"}) {
		t.Errorf("call = %+v; want greet(*world*)", call)
	}
	expansion, err := doc.ExpandMacro(calls[0])
	if err != nil {
		t.Fatal(err)
	}
	children := expansion.Children(expansion.Root())
	if got, want := kindsOf(expansion, children), []Kind{PlainKind, BoldKind, PlainKind}; !cmp.Equal(got, want) {
		t.Fatalf("expansion children = %v; want %v", got, want)
	}
	if got := expansion.Text(children[1]); got != "world" {
		t.Errorf("bold text = %q; want %q", got, "world")
	}
}

func TestMacroArguments(t *testing.T) {
	doc := mustParse(t, "#+title: My Doc\n#+macro: pair $1 and $2\n{{{title}}} {{{keyword(TITLE)}}} {{{pair(a\\, b, c)}}} {{{pair(a\\,b,\t c)}}} {{{pair(x)}}} {{{nope}}}\n")
	calls := find(doc, MacroCallKind)
	if len(calls) != 6 {
		t.Fatalf("found %d macro calls; want 6", len(calls))
	}
	if got, want := doc.Node(calls[3]).Expr.(*MacroCall).Args, []string{"a,b", "c"}; !cmp.Equal(got, want) {
		t.Errorf("calls[3].Args = %q; want %q", got, want)
	}
	for i, want := range []string{"My Doc", "My Doc", "a, b and c", "a,b and c"} {
		expansion, err := doc.ExpandMacro(calls[i])
		if err != nil {
			t.Errorf("ExpandMacro(calls[%d]): %v", i, err)
			continue
		}
		if got := expansion.Text(expansion.Root()); got != want {
			t.Errorf("ExpandMacro(calls[%d]) text = %q; want %q", i, got, want)
		}
	}
	for _, i := range []int{4, 5} {
		if _, err := doc.ExpandMacro(calls[i]); err == nil {
			t.Errorf("ExpandMacro(calls[%d]) did not return an error", i)
		}
	}
	if _, err := doc.ExpandMacro(doc.Root()); err == nil {
		t.Error("ExpandMacro(root) did not return an error")
	}
}

func TestMacroRecursion(t *testing.T) {
	doc := mustParse(t, "#+macro: loop {{{loop}}}\n{{{loop}}}\n")
	calls := find(doc, MacroCallKind)
	if len(calls) != 1 {
		t.Fatalf("found %d macro calls; want 1", len(calls))
	}
	curr, id := doc, calls[0]
	for i := 0; ; i++ {
		next, err := curr.ExpandMacro(id)
		if err != nil {
			if !errors.Is(err, ErrMacroDepth) {
				t.Errorf("error = %v; want %v", err, ErrMacroDepth)
			}
			if i != maxMacroDepth {
				t.Errorf("expansion failed after %d levels; want %d", i, maxMacroDepth)
			}
			break
		}
		if i > maxMacroDepth {
			t.Fatal("expansion did not stop")
		}
		children := next.Children(next.Root())
		if len(children) != 1 {
			t.Fatalf("level %d: %d children; want 1", i, len(children))
		}
		curr, id = next, children[0]
	}
}

func TestObjects(t *testing.T) {
	tests := []struct {
		input string
		want  Expr
	}{
		{"<<anchor>>", &Target{Name: "anchor"}},
		{"@@html:<br>@@", &ExportSnippet{Backend: "html", Contents: "<br>"}},
		{"src_go[:exports code]{f(x{})}", &InlineSrc{Lang: "go", Headers: ":exports code", Body: "f(x{})"}},
		{"<https://example.com/a>", &PlainLink{Protocol: "https", Path: "//example.com/a"}},
		{"https://example.com/a.", &PlainLink{Protocol: "https", Path: "//example.com/a"}},
		{`\alpha`, &Entity{Name: "alpha", Value: "α"}},
		{`\(x^2\)`, &LatexFragment{Type: InlineLatex, Contents: "x^2"}},
		{`\[y\]`, &LatexFragment{Type: DisplayLatex, Contents: "y"}},
		{"$z$", &LatexFragment{Type: InlineLatex, Contents: "z"}},
		{`\ref{fig}`, &LatexFragment{Type: CommandLatex, Name: "ref", Contents: "fig"}},
		{"=a*b=", &Verbatim{Text: "a*b"}},
		{"~x~", &Code{Text: "x"}},
		{"{{{m(a,b)}}}", &MacroCall{Name: "m", Args: []string{"a", "b"}}},
		{"[fn:note]", &FootnoteRef{Label: "note"}},
		{"[[#custom]]", &RegularLink{Path: LinkPath{Type: CustomIDPath, Value: "custom", Raw: "#custom"}}},
		{"[[id:1a2b-3c]]", &RegularLink{Path: LinkPath{Type: IDPath, Value: "1a2b-3c", Raw: "id:1a2b-3c"}}},
		{"[[(ref)]]", &RegularLink{Path: LinkPath{Type: CoderefPath, Value: "ref", Raw: "(ref)"}}},
		{"[[file:a.org]]", &RegularLink{Path: LinkPath{Type: FilePath, Value: "a.org", Raw: "file:a.org"}}},
		{"[[mailto:me@example.com]]", &RegularLink{Path: LinkPath{Type: ProtocolPath, Protocol: "mailto", Value: "me@example.com", Raw: "mailto:me@example.com"}}},
		{"[[Some heading]]", &RegularLink{Path: LinkPath{Type: UnspecifiedPath, Value: "Some heading", Raw: "Some heading"}}},
	}
	for _, test := range tests {
		doc := ParseObjects([]byte(test.input))
		children := doc.Children(doc.Root())
		if len(children) == 0 {
			t.Errorf("ParseObjects(%q) has no objects", test.input)
			continue
		}
		got := doc.Node(children[0]).Expr
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ParseObjects(%q)[0] (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestScripts(t *testing.T) {
	doc := ParseObjects([]byte("x^2 H_{2}O a^* b _c"))
	sups := find(doc, SuperscriptKind)
	subs := find(doc, SubscriptKind)
	if len(sups) != 2 || len(subs) != 1 {
		t.Fatalf("found %d superscripts and %d subscripts; want 2 and 1", len(sups), len(subs))
	}
	if got := doc.Node(sups[0]).Expr.(*Superscript).Text; got != "2" {
		t.Errorf("first superscript = %q; want %q", got, "2")
	}
	if got := doc.Node(sups[1]).Expr.(*Superscript).Text; got != "*" {
		t.Errorf("second superscript = %q; want %q", got, "*")
	}
	if got := doc.Text(subs[0]); got != "2" {
		t.Errorf("subscript text = %q; want %q", got, "2")
	}
}

func TestEmoji(t *testing.T) {
	doc := ParseObjects([]byte("a :smile: b :notanemoji:"))
	emojis := find(doc, EmojiKind)
	if len(emojis) != 1 {
		t.Fatalf("found %d emoji; want 1", len(emojis))
	}
	e := doc.Node(emojis[0]).Expr.(*Emoji)
	if e.Name != "smile" || e.Value == "" {
		t.Errorf("emoji = %+v; want smile with a value", e)
	}
}

func TestUnlink(t *testing.T) {
	doc := mustParse(t, "a\n\nb\n")
	before := len(doc.Children(doc.Root()))
	first := doc.Children(doc.Root())[0]
	doc.Unlink(first)
	if got := len(doc.Children(doc.Root())); got != before-1 {
		t.Errorf("after Unlink, %d root children; want %d", got, before-1)
	}
	if doc.Node(first) == nil {
		t.Error("unlinked node is no longer in the document")
	}
}

func TestDeterminism(t *testing.T) {
	a := dumpTree(mustParse(t, sampleDocument))
	b := dumpTree(mustParse(t, sampleDocument))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("second parse differs (-first +second):\n%s", diff)
	}
}

func TestOneNodePerOffset(t *testing.T) {
	tests := []string{
		"/a *b\n* c* d/\n",
		"*a\n* b*\n",
		"/abc ~one tw/ o~",
	}
	type slot struct {
		start int
		kind  Kind
	}
	for _, source := range tests {
		doc := mustParse(t, source)
		seen := make(map[slot]NodeID)
		for i := 0; i < doc.Len(); i++ {
			id := NodeID(i)
			n := doc.Node(id)
			k := slot{n.Start, n.Kind()}
			if prev, dup := seen[k]; dup {
				t.Errorf("Parse(%q): nodes %d and %d are both %v at offset %d", source, prev, id, k.kind, k.start)
				continue
			}
			seen[k] = id
		}
	}
}

func TestTreeInvariants(t *testing.T) {
	doc := mustParse(t, sampleDocument)
	verifyTree(t, doc)
}

func FuzzParse(f *testing.F) {
	f.Add(sampleDocument)
	f.Add("Hello, *World*!\n")
	f.Add("/abc ~one tw/ o~")
	f.Add("1. a\n- b\n")
	f.Add("- a\n  1. x\n  2. y\n- b\n")
	f.Add("| a | b |\n|---+---|\n| c |\n")
	f.Add("#+macro: greet Hello $1!\n{{{greet(*world*)}}}\n")
	f.Add("x[fn:a] y[fn:b] z[fn:a]\n\n[fn:a] Alpha.\n\n[fn:b] Beta.\n")

	f.Fuzz(func(t *testing.T, source string) {
		doc, err := Parse([]byte(source))
		if err != nil {
			var utf8Err *InvalidUTF8Error
			if !errors.As(err, &utf8Err) {
				t.Fatalf("Parse(%q): %v", source, err)
			}
			return
		}
		verifyTree(t, doc)
	})
}

// verifyTree checks that every reachable node is reached once,
// records its parent, and lies within its parent's span.
func verifyTree(tb testing.TB, doc *Document) {
	tb.Helper()

	seen := make(map[NodeID]bool)
	Walk(doc, doc.Root(), &WalkOptions{
		Pre: func(c *Cursor) bool {
			if seen[c.ID()] {
				tb.Errorf("node %d (%v) reached twice", c.ID(), c.Node().Kind())
				return false
			}
			seen[c.ID()] = true
			n := c.Node()
			if n.Start > n.End || n.End > len(doc.Source) {
				tb.Errorf("node %d (%v) has span [%d,%d) in %d-byte source", c.ID(), n.Kind(), n.Start, n.End, len(doc.Source))
			}
			if c.Parent() == NoNode {
				return true
			}
			if n.Parent != c.Parent() {
				tb.Errorf("node %d (%v): Parent = %d; want %d", c.ID(), n.Kind(), n.Parent, c.Parent())
			}
			verifySpansDontExceedParents(tb, doc, c.ID(), c.Parent())
			return true
		},
	})
}

func verifySpansDontExceedParents(tb testing.TB, doc *Document, id, parent NodeID) {
	tb.Helper()

	n, p := doc.Node(id), doc.Node(parent)
	if n.Start < p.Start || n.End > p.End {
		tb.Errorf("node %d (%v) span [%d,%d) exceeds parent %d (%v) span [%d,%d)",
			id, n.Kind(), n.Start, n.End, parent, p.Kind(), p.Start, p.End)
	}
}
