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
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"zombiezen.com/go/org/internal/normhtml"
)

func renderString(tb testing.TB, r *HTMLRenderer, source string) string {
	tb.Helper()
	doc := mustParse(tb, source)
	buf := new(bytes.Buffer)
	if err := r.Render(buf, doc); err != nil {
		tb.Fatal("Render:", err)
	}
	return buf.String()
}

func queryHTML(tb testing.TB, r *HTMLRenderer, source string) *goquery.Document {
	tb.Helper()
	out := renderString(tb, r, source)
	q, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		tb.Fatal(err)
	}
	return q
}

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Emphasis",
			input: "Hello, *World*!\n",
			want:  "<p>Hello, <b>World</b>!</p>\n",
		},
		{
			name:  "Markup",
			input: "/i/ _u_ +s+ =a<b= ~c~\n",
			want:  "<p><em>i</em> <u>u</u> <del>s</del> <code>a&lt;b</code> <code>c</code></p>\n",
		},
		{
			name:  "Heading",
			input: "* TODO [#A] Title :tag:\n",
			want: `<h1 id="title"><span class="todo TODO">TODO</span> ` +
				`<span class="priority">[A]</span> Title <span class="tag">tag</span></h1>` + "\n",
		},
		{
			name:  "UnorderedList",
			input: "- a\n- b\n",
			want:  "<ul>\n<li><p>a</p>\n</li>\n<li><p>b</p>\n</li>\n</ul>\n",
		},
		{
			name:  "OrderedList",
			input: "1. a\n2. b\n",
			want:  "<ol type=\"1\">\n<li><p>a</p>\n</li>\n<li><p>b</p>\n</li>\n</ol>\n",
		},
		{
			name:  "CheckBox",
			input: "- [X] done\n",
			want:  "<ul>\n<li class=\"on\"><p>done</p>\n</li>\n</ul>\n",
		},
		{
			name:  "DescriptiveList",
			input: "- term :: desc\n",
			want:  "<dl>\n<dt>term</dt><dd><p>desc</p>\n</dd>\n</dl>\n",
		},
		{
			name:  "HorizontalRule",
			input: "-----\n",
			want:  "<hr>\n",
		},
		{
			name:  "SrcBlock",
			input: "#+begin_src go\nx := 1\n#+end_src\n",
			want:  "<pre><code class=\"src src-go\">x := 1\n</code></pre>\n",
		},
		{
			name:  "ExampleBlock",
			input: "#+begin_example\n<tag>\n#+end_example\n",
			want:  "<pre class=\"example\">&lt;tag&gt;\n</pre>\n",
		},
		{
			name:  "HiddenBlock",
			input: "#+begin_src sh :exports none\nrm -rf /\n#+end_src\n",
			want:  "",
		},
		{
			name:  "Table",
			input: "| a | b |\n|---+---|\n| c |\n",
			want: "<table>\n<thead>\n<tr><th>a</th><th>b</th></tr>\n</thead>\n" +
				"<tbody>\n<tr><td>c</td><td></td></tr>\n</tbody>\n</table>\n",
		},
		{
			name:  "Link",
			input: "[[https://orgmode.org][Org]]\n",
			want:  "<p><a href=\"https://orgmode.org\">Org</a></p>\n",
		},
		{
			name:  "Image",
			input: "[[./img.png]]\n",
			want:  "<figure>\n<img src=\"./img.png\" alt=\"img.png\">\n</figure>\n",
		},
		{
			name:  "Entity",
			input: "\\alpha\n",
			want:  "<p>α</p>\n",
		},
		{
			name:  "Macro",
			input: "#+macro: greet Hello $1!\n{{{greet(*world*)}}}\n",
			want:  "<p>Hello <b>world</b>!</p>\n",
		},
		{
			name:  "RecursiveMacro",
			input: "#+macro: loop {{{loop}}}\n{{{loop}}}\n",
			want:  "<p>{{{loop}}}</p>\n",
		},
		{
			name:  "Footnote",
			input: "a[fn:1]\n\n[fn:1] Note.\n",
			want: "<p>a<sup><a id=\"fnr.1\" href=\"#fn.1\" class=\"footref\" role=\"doc-backlink\">1</a></sup></p>\n" +
				"\n<div id=\"footnotes\">\n<h2 class=\"footnotes\">Footnotes</h2>\n<div id=\"text-footnotes\">\n" +
				"<div class=\"footdef\"><sup><a id=\"fn.1\" href=\"#fnr.1\" role=\"doc-backlink\">1</a></sup>\n" +
				"<p>Note.</p>\n</div>\n</div>\n</div>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := renderString(t, new(HTMLRenderer), test.input)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Input:\n%s\nOutput (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestSoftBreakBehavior(t *testing.T) {
	tests := []struct {
		name     string
		behavior SoftBreakBehavior
		want     string
	}{
		{
			name:     "Preserve",
			behavior: SoftBreakPreserve,
			want:     "<p>Hello\nWorld</p>\n",
		},
		{
			name:     "Space",
			behavior: SoftBreakSpace,
			want:     "<p>Hello World</p>\n",
		},
		{
			name:     "Harden",
			behavior: SoftBreakHarden,
			want:     "<p>Hello<br>\nWorld</p>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := &HTMLRenderer{SoftBreakBehavior: test.behavior}
			if got := renderString(t, r, "Hello\nWorld\n"); got != test.want {
				t.Errorf("output = %q; want %q", got, test.want)
			}
		})
	}
}

func TestParseSoftBreakBehavior(t *testing.T) {
	for name, want := range map[string]SoftBreakBehavior{
		"":         SoftBreakPreserve,
		"preserve": SoftBreakPreserve,
		"Space":    SoftBreakSpace,
		"harden":   SoftBreakHarden,
	} {
		got, err := ParseSoftBreakBehavior(name)
		if err != nil || got != want {
			t.Errorf("ParseSoftBreakBehavior(%q) = %v, %v; want %v, <nil>", name, got, err, want)
		}
	}
	if _, err := ParseSoftBreakBehavior("wrap"); err == nil {
		t.Error("ParseSoftBreakBehavior(\"wrap\") did not return an error")
	}
}

func TestHTMLRendererIgnoreRaw(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		ignoreRaw bool
		want      string
	}{
		{
			name:  "Snippet",
			input: "@@html:<b>x</b>@@\n",
			want:  "<p><b>x</b></p>\n",
		},
		{
			name:      "IgnoredSnippet",
			input:     "@@html:<b>x</b>@@\n",
			ignoreRaw: true,
			want:      "<p></p>\n",
		},
		{
			name:  "OtherBackend",
			input: "@@latex:\\LaTeX@@\n",
			want:  "<p></p>\n",
		},
		{
			name:  "ExportBlock",
			input: "#+begin_export html\n<hr class=\"x\">\n#+end_export\n",
			want:  "<hr class=\"x\">\n",
		},
		{
			name:      "IgnoredExportBlock",
			input:     "#+begin_export html\n<hr class=\"x\">\n#+end_export\n",
			ignoreRaw: true,
			want:      "",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := &HTMLRenderer{IgnoreRaw: test.ignoreRaw}
			got := renderString(t, r, test.input)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Input:\n%s\nOutput (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestTableOfContents(t *testing.T) {
	const input = "* A\n** B\n* C\n"

	q := queryHTML(t, &HTMLRenderer{TableOfContents: true}, input)
	if got := q.Find("nav#table-of-contents > div > ul > li").Length(); got != 2 {
		t.Errorf("top-level entries = %d; want 2", got)
	}
	var hrefs []string
	q.Find("nav#table-of-contents a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
	})
	if want := []string{"#a", "#b", "#c"}; !cmp.Equal(hrefs, want) {
		t.Errorf("hrefs = %q; want %q", hrefs, want)
	}

	q = queryHTML(t, &HTMLRenderer{TableOfContents: true}, "#+options: toc:1\n"+input)
	if got := q.Find("nav#table-of-contents a").Length(); got != 2 {
		t.Errorf("with toc:1, entries = %d; want 2", got)
	}
	q = queryHTML(t, &HTMLRenderer{TableOfContents: true}, "#+options: toc:nil\n"+input)
	if got := q.Find("nav").Length(); got != 0 {
		t.Errorf("with toc:nil, found %d nav elements; want 0", got)
	}
	q = queryHTML(t, new(HTMLRenderer), "#+options: toc:t\n"+input)
	if got := q.Find("nav#table-of-contents").Length(); got != 1 {
		t.Errorf("with toc:t, found %d tables of contents; want 1", got)
	}
}

func TestLinkDestinations(t *testing.T) {
	r := &HTMLRenderer{
		RewriteFileLink: func(dest string) string {
			if base, ok := strings.CutSuffix(dest, ".org"); ok {
				return base + ".html"
			}
			return dest
		},
	}
	input := "* Install Guide\n<<here>> text\n\n" +
		"[[file:notes.org][Notes]] [[./other.org]] [[Install]] [[here]] " +
		"[[#custom]] [[(ref)]] [[https://example.com/a b]] https://go.dev\n"
	q := queryHTML(t, r, input)
	var hrefs []string
	q.Find("p a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
	})
	want := []string{
		"notes.html",
		"./other.html",
		"#install-guide",
		"#here",
		"#custom",
		"#coderef-ref",
		"https://example.com/a%20b",
		"https://go.dev",
	}
	if diff := cmp.Diff(want, hrefs); diff != "" {
		t.Errorf("hrefs (-want +got):\n%s", diff)
	}
	if got := q.Find("span#here").Text(); got != "here" {
		t.Errorf("target text = %q; want %q", got, "here")
	}
}

func TestAffiliatedRendering(t *testing.T) {
	q := queryHTML(t, new(HTMLRenderer), "#+caption: A *small* table\n#+name: tbl\n#+attr_html: :class data\n| a |\n")
	fig := q.Find("figure")
	if fig.Length() != 1 {
		t.Fatalf("found %d figures; want 1", fig.Length())
	}
	table := fig.Find("table#tbl.data")
	if table.Length() != 1 {
		t.Errorf("figure does not contain table#tbl.data")
	}
	if got := fig.Find("figcaption b").Text(); got != "small" {
		t.Errorf("caption bold text = %q; want %q", got, "small")
	}
	if got := q.Find("table").Length(); got != 1 {
		t.Errorf("found %d tables; want 1", got)
	}
}

func TestFootnoteSection(t *testing.T) {
	input := "x[fn:a] y[fn:: inline] z[fn:a]\n\n[fn:a] Alpha.\n"
	q := queryHTML(t, new(HTMLRenderer), input)

	var refIDs []string
	q.Find("a.footref").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		refIDs = append(refIDs, id)
	})
	if len(refIDs) != 3 || refIDs[0] != "fnr.1" || refIDs[1] != "fnr.2" || !strings.HasPrefix(refIDs[2], "fnr.1.") {
		t.Errorf("reference ids = %q; want [fnr.1 fnr.2 fnr.1.N]", refIDs)
	}
	defs := q.Find("#text-footnotes .footdef")
	if defs.Length() != 2 {
		t.Fatalf("found %d footnote definitions; want 2", defs.Length())
	}
	if got := strings.TrimSpace(defs.Eq(0).Find("p").Text()); got != "Alpha." {
		t.Errorf("first definition = %q; want %q", got, "Alpha.")
	}
	if got := defs.Eq(1).Text(); !strings.Contains(got, "inline") {
		t.Errorf("second definition = %q; want it to contain %q", got, "inline")
	}

	q = queryHTML(t, new(HTMLRenderer), "* Text\nx[fn:1]\n* Footnotes\n[fn:1] Note.\n")
	if got := q.Find("h2.footnotes").Length(); got != 0 {
		t.Errorf("with a Footnotes heading, found %d generated headings; want 0", got)
	}
}

func TestSpecialBlocks(t *testing.T) {
	q := queryHTML(t, new(HTMLRenderer), "#+begin_aside\nside\n#+end_aside\n#+begin_warning\nhot\n#+end_warning\n#+begin_center\nmid\n#+end_center\n")
	if got := q.Find("aside p").Text(); got != "side" {
		t.Errorf("aside text = %q; want %q", got, "side")
	}
	if got := q.Find("div.warning p").Text(); got != "hot" {
		t.Errorf("warning text = %q; want %q", got, "hot")
	}
	if got := q.Find("div.org-center p").Text(); got != "mid" {
		t.Errorf("center text = %q; want %q", got, "mid")
	}
}

func TestRenderSample(t *testing.T) {
	out := renderString(t, new(HTMLRenderer), sampleDocument)
	q, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if got := q.Find("h1#intro, h1#introduction").Length(); got != 1 {
		t.Errorf("found %d introduction headings; want 1", got)
	}
	if got := q.Find("blockquote b").Text(); got != "you" {
		t.Errorf("macro expansion in quote = %q; want %q", got, "you")
	}
	if got := q.Find("li.on").Length(); got != 1 {
		t.Errorf("found %d checked items; want 1", got)
	}
	if got := q.Find("dl dt").Text(); got != "term" {
		t.Errorf("description term = %q; want %q", got, "term")
	}
	normalized := string(normhtml.NormalizeHTML([]byte(out)))
	if !strings.Contains(normalized, `<code class="src src-go">fmt.Println(&quot;hi&quot;)`) {
		t.Errorf("normalized output does not contain the source block:\n%s", normalized)
	}
}

func TestNormalizeURI(t *testing.T) {
	tests := []struct {
		s    string
		want string
	}{
		{"", ""},
		{"https://example.com/", "https://example.com/"},
		{"a b", "a%20b"},
		{"%41", "%41"},
		{"100%", "100%25"},
		{"é", "%C3%A9"},
	}
	for _, test := range tests {
		if got := NormalizeURI(test.s); got != test.want {
			t.Errorf("NormalizeURI(%q) = %q; want %q", test.s, got, test.want)
		}
	}
}

func BenchmarkRenderHTML(b *testing.B) {
	doc := mustParse(b, sampleDocument)
	r := new(HTMLRenderer)
	b.ResetTimer()
	var buf []byte
	for i := 0; i < b.N; i++ {
		buf = r.AppendDocument(buf[:0], doc)
	}
	b.SetBytes(int64(len(doc.Source)))
}
