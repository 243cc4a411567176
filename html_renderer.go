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
	"io"
	"path"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/atom"
)

// An HTMLRenderer converts a parsed Org document into HTML.
//
// # Security considerations
//
// Org permits raw HTML through export snippets ("@@html:...@@")
// and export blocks ("#+begin_export html"),
// which can introduce [Cross-Site Scripting (XSS)] vulnerabilities
// when used with untrusted inputs.
// Set IgnoreRaw to omit raw HTML,
// or send the resulting HTML through an HTML sanitizer.
//
// [Cross-Site Scripting (XSS)]: https://owasp.org/www-community/attacks/xss/
type HTMLRenderer struct {
	// SoftBreakBehavior determines how soft line breaks are rendered.
	SoftBreakBehavior SoftBreakBehavior
	// If IgnoreRaw is true, the renderer skips export snippets and export blocks.
	IgnoreRaw bool
	// If TableOfContents is true, the renderer writes a table of contents
	// before the document.
	// A "#+options:" keyword with a "toc:" item overrides it.
	TableOfContents bool
	// If RewriteFileLink is not nil, it is called with the destination
	// of every file link, and its result is used as the link's href.
	RewriteFileLink func(dest string) string
}

// RenderHTML writes the document to the given writer as HTML
// using the default options for [HTMLRenderer].
func RenderHTML(w io.Writer, doc *Document) error {
	return new(HTMLRenderer).Render(w, doc)
}

// Render writes the document to the given writer as HTML.
func (r *HTMLRenderer) Render(w io.Writer, doc *Document) error {
	if _, err := w.Write(r.AppendDocument(nil, doc)); err != nil {
		return fmt.Errorf("render org to html: %w", err)
	}
	return nil
}

// AppendDocument appends the rendered HTML of a document to dst
// and returns the resulting byte slice.
func (r *HTMLRenderer) AppendDocument(dst []byte, doc *Document) []byte {
	state := r.newState(dst, doc)
	if depth := r.tocDepth(doc); depth > 0 {
		state.toc(depth)
	}
	state.element(doc.Root())
	state.footnotes()
	return state.dst
}

// AppendNode appends the rendered HTML of a single node and its children.
// Footnote references are numbered as in the whole document,
// but no footnote section is written.
func (r *HTMLRenderer) AppendNode(dst []byte, doc *Document, id NodeID) []byte {
	state := r.newState(dst, doc)
	state.element(id)
	return state.dst
}

func (r *HTMLRenderer) newState(dst []byte, doc *Document) *renderState {
	return &renderState{
		HTMLRenderer: r,
		doc:          doc,
		dst:          dst,
		fn:           doc.FootnoteNumbers(),
		skip:         make(map[NodeID]struct{}),
	}
}

// tocDepth returns the deepest heading level to list in the table of contents,
// or zero for no table of contents.
func (r *HTMLRenderer) tocDepth(doc *Document) int {
	depth := 0
	if r.TableOfContents {
		depth = maxHeadingLevel
	}
	for _, item := range strings.Fields(doc.Keywords["options"]) {
		v, ok := strings.CutPrefix(item, "toc:")
		if !ok {
			continue
		}
		switch v {
		case "nil":
			depth = 0
		case "t":
			depth = maxHeadingLevel
		default:
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				depth = min(n, maxHeadingLevel)
			}
		}
	}
	return depth
}

type renderState struct {
	*HTMLRenderer
	doc *Document
	dst []byte
	fn  *FootnoteNumbering
	// skip holds elements already rendered inside a figure.
	skip map[NodeID]struct{}
}

func (r *renderState) openTagAttr(name atom.Atom) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
}

func (r *renderState) openTag(name atom.Atom) {
	r.openTagAttr(name)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

func (r *renderState) attr(key, value string) {
	r.dst = append(r.dst, ' ')
	r.dst = append(r.dst, key...)
	r.dst = append(r.dst, `="`...)
	r.dst = escapeHTML(r.dst, []byte(value))
	r.dst = append(r.dst, '"')
}

// props writes the node's anchor and its "#+attr_html:" attributes.
func (r *renderState) props(id NodeID) {
	n := r.doc.Node(id)
	if n.Target != "" {
		r.attr("id", n.Target)
	}
	attrs := n.Attrs["html"]
	for _, k := range attrs.Keys() {
		v, _ := attrs.Get(k)
		r.attr(k, v)
	}
}

func (r *renderState) text(s string) {
	r.dst = escapeHTML(r.dst, []byte(s))
}

func (r *renderState) elements(ids []NodeID) {
	for _, id := range ids {
		r.element(id)
	}
}

func (r *renderState) objects(ids []NodeID) {
	for _, id := range ids {
		r.object(id)
	}
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func (r *renderState) element(id NodeID) {
	if _, skip := r.skip[id]; skip {
		return
	}
	n := r.doc.Node(id)
	switch e := n.Expr.(type) {
	case *Root:
		r.elements(e.Children)
	case *Heading:
		tag := headingAtoms[min(max(e.Level, 1), len(headingAtoms))-1]
		r.openTagAttr(tag)
		r.props(id)
		r.dst = append(r.dst, '>')
		r.headingTitle(e)
		r.closeTag(tag)
		r.dst = append(r.dst, '\n')
		r.elements(e.Children)
	case *Block:
		r.block(id, e)
	case *Drawer:
		r.elements(e.Children)
	case *PlainList:
		r.plainList(id, e)
	case *Item:
		r.item(e)
	case *Table:
		r.table(id, e)
	case *Paragraph:
		if r.figure(id, e) {
			return
		}
		r.openTagAttr(atom.P)
		r.props(id)
		r.dst = append(r.dst, '>')
		r.objects(e.Children)
		r.closeTag(atom.P)
		r.dst = append(r.dst, '\n')
	case *Affiliated:
		if e.Type == CaptionAffiliated && e.Element != NoNode {
			r.openTag(atom.Figure)
			r.dst = append(r.dst, '\n')
			r.element(e.Element)
			r.openTag(atom.Figcaption)
			r.inlineSource(e.Value)
			r.closeTag(atom.Figcaption)
			r.dst = append(r.dst, '\n')
			r.closeTag(atom.Figure)
			r.dst = append(r.dst, '\n')
			r.skip[e.Element] = struct{}{}
		}
	case *LatexEnv:
		r.openTagAttr(atom.Div)
		r.attr("class", "math")
		r.props(id)
		r.dst = append(r.dst, ">\n"...)
		r.text(`\begin{` + e.Name + "}\n" + e.Contents + `\end{` + e.Name + "}")
		r.dst = append(r.dst, '\n')
		r.closeTag(atom.Div)
		r.dst = append(r.dst, '\n')
	case *HorizontalRule:
		r.openTag(atom.Hr)
		r.dst = append(r.dst, '\n')
	case *FootnoteDef, *Keyword, *MacroDef, *Comment, *BlankLine:
		// Not rendered in place.
	default:
		r.object(id)
	}
}

func (r *renderState) headingTitle(h *Heading) {
	if h.Keyword != "" {
		r.openTagAttr(atom.Span)
		r.attr("class", strings.ToLower(h.Keyword)+" "+h.Keyword)
		r.dst = append(r.dst, '>')
		r.text(h.Keyword)
		r.closeTag(atom.Span)
		r.dst = append(r.dst, ' ')
	}
	if h.Priority != "" {
		r.openTagAttr(atom.Span)
		r.attr("class", "priority")
		r.dst = append(r.dst, '>')
		r.text("[" + h.Priority + "]")
		r.closeTag(atom.Span)
		r.dst = append(r.dst, ' ')
	}
	r.objects(h.TitleChildren)
	for _, t := range h.Tags {
		if t.IsInherited() {
			continue
		}
		r.dst = append(r.dst, ' ')
		r.openTagAttr(atom.Span)
		r.attr("class", "tag")
		r.dst = append(r.dst, '>')
		r.text(t.Name)
		r.closeTag(atom.Span)
	}
}

// html5Blocks are special block names rendered as elements of the same name.
var html5Blocks = map[string]atom.Atom{
	"article":    atom.Article,
	"aside":      atom.Aside,
	"audio":      atom.Audio,
	"canvas":     atom.Canvas,
	"details":    atom.Details,
	"figcaption": atom.Figcaption,
	"figure":     atom.Figure,
	"footer":     atom.Footer,
	"header":     atom.Header,
	"menu":       atom.Menu,
	"meter":      atom.Meter,
	"nav":        atom.Nav,
	"output":     atom.Output,
	"progress":   atom.Progress,
	"section":    atom.Section,
	"summary":    atom.Summary,
	"video":      atom.Video,
	"picture":    atom.Picture,
}

func (r *renderState) block(id NodeID, b *Block) {
	if v, _ := b.Params.Get("exports"); v == "none" {
		return
	}
	switch b.Type {
	case CenterBlock:
		r.openTagAttr(atom.Div)
		r.attr("class", "org-center")
		r.props(id)
		r.dst = append(r.dst, ">\n"...)
		r.elements(b.Children)
		r.closeTag(atom.Div)
	case QuoteBlock:
		r.openTagAttr(atom.Blockquote)
		r.props(id)
		r.dst = append(r.dst, ">\n"...)
		r.elements(b.Children)
		r.closeTag(atom.Blockquote)
	case SpecialBlock:
		tag, ok := html5Blocks[strings.ToLower(b.Name)]
		if !ok {
			tag = atom.Div
		}
		r.openTagAttr(tag)
		if !ok {
			r.attr("class", b.Name)
		}
		r.props(id)
		r.dst = append(r.dst, ">\n"...)
		r.elements(b.Children)
		r.closeTag(tag)
	case ExampleBlock:
		r.openTagAttr(atom.Pre)
		r.attr("class", "example")
		r.props(id)
		r.dst = append(r.dst, '>')
		r.text(b.Contents)
		r.closeTag(atom.Pre)
	case SrcBlock:
		r.openTag(atom.Pre)
		r.openTagAttr(atom.Code)
		class := "src"
		if b.Language != "" {
			class += " src-" + b.Language
		}
		r.attr("class", class)
		r.props(id)
		r.dst = append(r.dst, '>')
		r.text(b.Contents)
		r.closeTag(atom.Code)
		r.closeTag(atom.Pre)
	case VerseBlock:
		r.openTagAttr(atom.P)
		r.attr("class", "verse")
		r.props(id)
		r.dst = append(r.dst, '>')
		lines := strings.Split(strings.TrimSuffix(b.Contents, "\n"), "\n")
		for i, line := range lines {
			if i > 0 {
				r.dst = append(r.dst, "<br>\n"...)
			}
			r.text(line)
		}
		r.closeTag(atom.P)
	case ExportBlock:
		if r.IgnoreRaw || !strings.EqualFold(b.Language, "html") {
			return
		}
		r.dst = append(r.dst, b.Contents...)
		return
	default:
		return
	}
	r.dst = append(r.dst, '\n')
}

func (r *renderState) plainList(id NodeID, l *PlainList) {
	tag := atom.Ul
	switch l.Type {
	case OrderedList:
		tag = atom.Ol
	case DescriptiveList:
		tag = atom.Dl
	}
	r.openTagAttr(tag)
	if l.Type == OrderedList {
		typ := "1"
		if l.Letter {
			typ = "a"
			if first := r.firstItem(l); first != nil && 'A' <= first.Bullet.Letter && first.Bullet.Letter <= 'Z' {
				typ = "A"
			}
		}
		r.attr("type", typ)
	}
	r.props(id)
	r.dst = append(r.dst, ">\n"...)
	r.elements(l.Children)
	r.closeTag(tag)
	r.dst = append(r.dst, '\n')
}

func (r *renderState) firstItem(l *PlainList) *Item {
	if len(l.Children) == 0 {
		return nil
	}
	item, _ := r.doc.Node(l.Children[0]).Expr.(*Item)
	return item
}

func (r *renderState) item(item *Item) {
	if item.Tag != "" {
		r.openTag(atom.Dt)
		r.inlineSource(item.Tag)
		r.closeTag(atom.Dt)
		r.openTag(atom.Dd)
		r.elements(item.Children)
		r.closeTag(atom.Dd)
		r.dst = append(r.dst, '\n')
		return
	}
	r.openTagAttr(atom.Li)
	if item.CounterSet != "" {
		r.attr("value", item.CounterSet)
	}
	switch item.CheckBox {
	case CheckBoxOff:
		r.attr("class", "off")
	case CheckBoxOn:
		r.attr("class", "on")
	case CheckBoxPartial:
		r.attr("class", "trans")
	}
	r.dst = append(r.dst, '>')
	r.elements(item.Children)
	r.closeTag(atom.Li)
	r.dst = append(r.dst, '\n')
}

// table writes a table, padding short rows to the table's column count.
// Rows before the first rule form the table header
// if any rows follow the rule.
func (r *renderState) table(id NodeID, t *Table) {
	header := -1
	for i, rowID := range t.Children {
		row := r.doc.Node(rowID).Expr.(*TableRow)
		if row.Rule {
			if i > 0 && i < len(t.Children)-1 {
				header = i
			}
			break
		}
	}

	r.openTagAttr(atom.Table)
	r.props(id)
	r.dst = append(r.dst, ">\n"...)
	if header >= 0 {
		r.openTag(atom.Thead)
		r.dst = append(r.dst, '\n')
		r.tableRows(t.Children[:header], t.Cols, atom.Th)
		r.closeTag(atom.Thead)
		r.dst = append(r.dst, '\n')
		r.openTag(atom.Tbody)
		r.dst = append(r.dst, '\n')
		r.tableRows(t.Children[header:], t.Cols, atom.Td)
		r.closeTag(atom.Tbody)
		r.dst = append(r.dst, '\n')
	} else {
		r.tableRows(t.Children, t.Cols, atom.Td)
	}
	r.closeTag(atom.Table)
	r.dst = append(r.dst, '\n')
}

func (r *renderState) tableRows(rows []NodeID, cols int, cellTag atom.Atom) {
	for _, rowID := range rows {
		row := r.doc.Node(rowID).Expr.(*TableRow)
		if row.Rule {
			continue
		}
		r.openTag(atom.Tr)
		for _, cellID := range row.Children {
			r.openTag(cellTag)
			r.objects(r.doc.Children(cellID))
			r.closeTag(cellTag)
		}
		for i := len(row.Children); i < cols; i++ {
			r.openTag(cellTag)
			r.closeTag(cellTag)
		}
		r.closeTag(atom.Tr)
		r.dst = append(r.dst, '\n')
	}
}

// imageExtensions are the file extensions of links rendered as images.
var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

// imageSource returns the image a link points to, if any.
func imageSource(link *RegularLink) (string, bool) {
	var src string
	switch link.Path.Type {
	case UnspecifiedPath, FilePath:
		src = link.Path.Value
	case ProtocolPath:
		src = link.Path.String()
	default:
		return "", false
	}
	return src, imageExtensions[strings.ToLower(path.Ext(src))]
}

// figure writes a paragraph consisting of a lone image link as a figure.
func (r *renderState) figure(id NodeID, para *Paragraph) bool {
	if len(para.Children) != 1 {
		return false
	}
	link, ok := r.doc.Node(para.Children[0]).Expr.(*RegularLink)
	if !ok {
		return false
	}
	src, ok := imageSource(link)
	if !ok {
		return false
	}
	r.openTag(atom.Figure)
	r.dst = append(r.dst, '\n')
	r.openTagAttr(atom.Img)
	r.props(id)
	r.attr("src", NormalizeURI(src))
	alt := path.Base(src)
	if len(link.Description) > 0 {
		var sb strings.Builder
		for _, d := range link.Description {
			sb.WriteString(r.doc.Text(d))
		}
		alt = sb.String()
	}
	r.attr("alt", alt)
	r.dst = append(r.dst, ">\n"...)
	r.closeTag(atom.Figure)
	r.dst = append(r.dst, '\n')
	return true
}

// inlineSource renders Org text that is not part of the document tree,
// such as a caption or a description list term.
func (r *renderState) inlineSource(s string) {
	sub := parseObjects([]byte(s), r.doc)
	state := &renderState{
		HTMLRenderer: r.HTMLRenderer,
		doc:          sub,
		dst:          r.dst,
		fn:           sub.FootnoteNumbers(),
		skip:         r.skip,
	}
	state.objects(sub.Children(sub.Root()))
	r.dst = state.dst
}

func (r *renderState) object(id NodeID) {
	n := r.doc.Node(id)
	switch e := n.Expr.(type) {
	case *Plain:
		r.text(e.Text)
	case *SoftBreak:
		switch r.SoftBreakBehavior {
		case SoftBreakHarden:
			r.dst = append(r.dst, "<br>\n"...)
		case SoftBreakSpace:
			r.dst = append(r.dst, ' ')
		default:
			r.dst = append(r.dst, '\n')
		}
	case *LineBreak:
		r.dst = append(r.dst, "<br>\n"...)
	case *Italic:
		r.wrap(atom.Em, e.Children)
	case *Bold:
		r.wrap(atom.B, e.Children)
	case *Underline:
		r.wrap(atom.U, e.Children)
	case *StrikeThrough:
		r.wrap(atom.Del, e.Children)
	case *Code:
		r.openTag(atom.Code)
		r.text(e.Text)
		r.closeTag(atom.Code)
	case *Verbatim:
		r.openTag(atom.Code)
		r.text(e.Text)
		r.closeTag(atom.Code)
	case *RegularLink:
		r.openTagAttr(atom.A)
		r.attr("href", r.linkDestination(e.Path))
		r.dst = append(r.dst, '>')
		if len(e.Description) > 0 {
			r.objects(e.Description)
		} else {
			r.text(e.Path.Raw)
		}
		r.closeTag(atom.A)
	case *PlainLink:
		dest := e.Protocol + ":" + e.Path
		r.openTagAttr(atom.A)
		r.attr("href", NormalizeURI(dest))
		r.dst = append(r.dst, '>')
		r.text(dest)
		r.closeTag(atom.A)
	case *FootnoteRef:
		r.footnoteRef(id)
	case *LatexFragment:
		r.openTagAttr(atom.Span)
		r.attr("class", "math")
		r.dst = append(r.dst, '>')
		switch e.Type {
		case InlineLatex:
			r.text(`\(` + e.Contents + `\)`)
		case DisplayLatex:
			r.text(`\[` + e.Contents + `\]`)
		default:
			s := `\` + e.Name
			if e.Contents != "" {
				s += "{" + e.Contents + "}"
			}
			r.text(s)
		}
		r.closeTag(atom.Span)
	case *Entity:
		r.text(e.Value)
	case *Emoji:
		r.text(e.Value)
	case *Target:
		r.openTagAttr(atom.Span)
		r.props(id)
		r.dst = append(r.dst, '>')
		r.text(e.Name)
		r.closeTag(atom.Span)
	case *MacroCall:
		r.macro(id, e)
	case *ExportSnippet:
		if !r.IgnoreRaw && strings.EqualFold(e.Backend, "html") {
			r.dst = append(r.dst, e.Contents...)
		}
	case *InlineSrc:
		r.openTagAttr(atom.Code)
		r.attr("class", "src src-"+e.Lang)
		r.dst = append(r.dst, '>')
		r.text(e.Body)
		r.closeTag(atom.Code)
	case *Superscript:
		r.script(atom.Sup, e.Text, e.Children)
	case *Subscript:
		r.script(atom.Sub, e.Text, e.Children)
	}
}

func (r *renderState) wrap(tag atom.Atom, children []NodeID) {
	r.openTag(tag)
	r.objects(children)
	r.closeTag(tag)
}

func (r *renderState) script(tag atom.Atom, text string, children []NodeID) {
	r.openTag(tag)
	if children != nil {
		r.objects(children)
	} else {
		r.text(text)
	}
	r.closeTag(tag)
}

// linkDestination returns the href for a regular link path.
// An unspecified path that names a target links to the target's anchor.
func (r *renderState) linkDestination(p LinkPath) string {
	switch p.Type {
	case IDPath, CustomIDPath:
		return "#" + p.Value
	case CoderefPath:
		return "#coderef-" + p.Value
	case FilePath:
		dest := p.Value
		if r.RewriteFileLink != nil {
			dest = r.RewriteFileLink(dest)
		}
		return NormalizeURI(dest)
	case ProtocolPath:
		return NormalizeURI(p.String())
	default:
		if anchor, ok := r.doc.ResolveLink(p.Value); ok {
			return "#" + anchor
		}
		dest := p.Value
		if r.RewriteFileLink != nil && isLocalFile(dest) {
			dest = r.RewriteFileLink(dest)
		}
		return NormalizeURI(dest)
	}
}

// isLocalFile reports whether an unspecified link path looks like a file.
func isLocalFile(dest string) bool {
	return strings.HasPrefix(dest, "./") ||
		strings.HasPrefix(dest, "../") ||
		strings.HasPrefix(dest, "/")
}

// macro writes the expansion of a macro call,
// or its source text if it cannot be expanded.
func (r *renderState) macro(id NodeID, call *MacroCall) {
	sub, err := r.doc.ExpandMacro(id)
	if err != nil {
		if errors.Is(err, ErrMacroDepth) {
			tracer().Infof("%v", err)
		} else {
			tracer().Debugf("%v", err)
		}
		n := r.doc.Node(id)
		r.dst = escapeHTML(r.dst, r.doc.Source[n.Start:n.End])
		return
	}
	state := &renderState{
		HTMLRenderer: r.HTMLRenderer,
		doc:          sub,
		dst:          r.dst,
		fn:           sub.FootnoteNumbers(),
		skip:         r.skip,
	}
	state.objects(sub.Children(sub.Root()))
	r.dst = state.dst
}

func (r *renderState) footnoteRef(id NodeID) {
	num := r.fn.Number(id)
	if num == 0 {
		return
	}
	r.openTag(atom.Sup)
	r.openTagAttr(atom.A)
	r.attr("id", "fnr."+r.fn.Anchor(id))
	r.attr("href", "#fn."+strconv.Itoa(num))
	r.attr("class", "footref")
	r.attr("role", "doc-backlink")
	r.dst = append(r.dst, '>')
	r.dst = strconv.AppendInt(r.dst, int64(num), 10)
	r.closeTag(atom.A)
	r.closeTag(atom.Sup)
}

// footnotes writes the footnote section.
// The section heading is omitted if the document's last heading
// is already titled "Footnotes".
func (r *renderState) footnotes() {
	if r.fn.Len() == 0 {
		return
	}
	r.dst = append(r.dst, '\n')
	r.openTagAttr(atom.Div)
	r.attr("id", "footnotes")
	r.dst = append(r.dst, ">\n"...)
	if !r.hasFootnotesHeading() {
		r.openTagAttr(atom.H2)
		r.attr("class", "footnotes")
		r.dst = append(r.dst, '>')
		r.dst = append(r.dst, "Footnotes"...)
		r.closeTag(atom.H2)
		r.dst = append(r.dst, '\n')
	}
	r.openTagAttr(atom.Div)
	r.attr("id", "text-footnotes")
	r.dst = append(r.dst, ">\n"...)
	for i, target := range r.fn.Targets() {
		num := strconv.Itoa(i + 1)
		r.openTagAttr(atom.Div)
		r.attr("class", "footdef")
		r.dst = append(r.dst, '>')
		r.openTag(atom.Sup)
		r.openTagAttr(atom.A)
		r.attr("id", "fn."+num)
		r.attr("href", "#fnr."+num)
		r.attr("role", "doc-backlink")
		r.dst = append(r.dst, '>')
		r.dst = append(r.dst, num...)
		r.closeTag(atom.A)
		r.closeTag(atom.Sup)
		r.dst = append(r.dst, '\n')
		if _, isDef := r.doc.Node(target).Expr.(*FootnoteDef); isDef {
			r.elements(r.fn.Contents(target))
		} else {
			r.objects(r.fn.Contents(target))
		}
		r.closeTag(atom.Div)
		r.dst = append(r.dst, '\n')
	}
	r.closeTag(atom.Div)
	r.dst = append(r.dst, '\n')
	r.closeTag(atom.Div)
	r.dst = append(r.dst, '\n')
}

func (r *renderState) hasFootnotesHeading() bool {
	for id := NodeID(r.doc.Len() - 1); id >= 0; id-- {
		if h, ok := r.doc.Node(id).Expr.(*Heading); ok {
			return h.Title == "Footnotes"
		}
	}
	return false
}

// toc writes a table of contents listing headings up to the given level.
func (r *renderState) toc(depth int) {
	root, _ := r.doc.Node(r.doc.Root()).Expr.(*Root)
	if root == nil || !r.hasHeadings(root.Children) {
		return
	}
	r.openTagAttr(atom.Nav)
	r.attr("id", "table-of-contents")
	r.attr("role", "doc-toc")
	r.dst = append(r.dst, ">\n"...)
	r.openTag(atom.H2)
	r.dst = append(r.dst, "Table of Contents"...)
	r.closeTag(atom.H2)
	r.dst = append(r.dst, '\n')
	r.openTagAttr(atom.Div)
	r.attr("id", "text-table-of-contents")
	r.dst = append(r.dst, ">\n"...)
	r.tocList(root.Children, depth)
	r.closeTag(atom.Div)
	r.dst = append(r.dst, '\n')
	r.closeTag(atom.Nav)
	r.dst = append(r.dst, '\n')
}

func (r *renderState) hasHeadings(ids []NodeID) bool {
	for _, id := range ids {
		if _, ok := r.doc.Node(id).Expr.(*Heading); ok {
			return true
		}
	}
	return false
}

func (r *renderState) tocList(ids []NodeID, depth int) {
	r.openTag(atom.Ul)
	r.dst = append(r.dst, '\n')
	for _, id := range ids {
		h, ok := r.doc.Node(id).Expr.(*Heading)
		if !ok || h.Level > depth {
			continue
		}
		r.openTag(atom.Li)
		r.openTagAttr(atom.A)
		r.attr("href", "#"+r.doc.Node(id).Target)
		r.dst = append(r.dst, '>')
		r.objects(h.TitleChildren)
		r.closeTag(atom.A)
		if h.Level < depth && r.hasHeadings(h.Children) {
			r.dst = append(r.dst, '\n')
			r.tocList(h.Children, depth)
		}
		r.closeTag(atom.Li)
		r.dst = append(r.dst, '\n')
	}
	r.closeTag(atom.Ul)
	r.dst = append(r.dst, '\n')
}

// escapeHTML appends the HTML-escaped version of a byte slice to another byte slice.
func escapeHTML(dst []byte, src []byte) []byte {
	verbatimStart := 0
	for i, b := range src {
		var esc string
		switch b {
		case '&':
			esc = "&amp;"
		case '\'':
			// "&#39;" is shorter than "&apos;" and apos was not in HTML until HTML5.
			esc = "&#39;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			esc = "&quot;"
		default:
			continue
		}
		dst = append(dst, src[verbatimStart:i]...)
		dst = append(dst, esc...)
		verbatimStart = i + 1
	}
	return append(dst, src[verbatimStart:]...)
}

// SoftBreakBehavior is an enumeration of rendering styles for soft line breaks.
type SoftBreakBehavior int

const (
	// SoftBreakPreserve indicates that a soft line break should be rendered as-is.
	SoftBreakPreserve SoftBreakBehavior = iota
	// SoftBreakSpace indicates that a soft line break should be rendered as a space.
	SoftBreakSpace
	// SoftBreakHarden indicates that a soft line break should be rendered as a hard line break.
	SoftBreakHarden
)

// ParseSoftBreakBehavior returns the behavior with the given name:
// "preserve", "space" or "harden".
func ParseSoftBreakBehavior(name string) (SoftBreakBehavior, error) {
	switch strings.ToLower(name) {
	case "", "preserve":
		return SoftBreakPreserve, nil
	case "space":
		return SoftBreakSpace, nil
	case "harden":
		return SoftBreakHarden, nil
	default:
		return 0, fmt.Errorf("unknown soft break behavior %q", name)
	}
}

// NormalizeURI percent-encodes any characters in a string
// that are not reserved or unreserved URI characters.
// This is used for transforming link destinations
// into strings suitable for href or src attributes.
func NormalizeURI(s string) string {
	// RFC 3986 reserved and unreserved characters.
	const safeSet = `;/?:@&=+$,-_.!~*'()#`

	sb := new(strings.Builder)
	sb.Grow(len(s))
	skip := 0
	var buf [utf8.UTFMax]byte
	for i, c := range s {
		if skip > 0 {
			skip--
			sb.WriteRune(c)
			continue
		}
		switch {
		case c == '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				skip = 2
				sb.WriteByte('%')
			} else {
				sb.WriteString("%25")
			}
		case (c < 0x80 && isAlnum(byte(c))) || strings.ContainsRune(safeSet, c):
			sb.WriteRune(c)
		default:
			n := utf8.EncodeRune(buf[:], c)
			for _, b := range buf[:n] {
				sb.WriteByte('%')
				sb.WriteByte(urlHexDigit(b >> 4))
				sb.WriteByte(urlHexDigit(b & 0x0f))
			}
		}
	}
	return sb.String()
}

func urlHexDigit(x byte) byte {
	switch {
	case x < 0xa:
		return '0' + x
	case x < 0x10:
		return 'A' + x - 0xa
	default:
		panic("out of bounds")
	}
}
