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

// Package format provides a function to write a parsed Org document
// back out as Org text that parses to an equivalent document.
package format

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/width"
	"zombiezen.com/go/org"
)

// Format writes the document as Org to the given writer.
// The output is canonical: list items are indented by the width of their bullets,
// table columns are aligned, heading lines use single spaces,
// and blank lines are kept where they separate elements.
func Format(w io.Writer, doc *org.Document) error {
	ww := &errWriter{w: w, lineStart: true}
	indents := make(map[org.NodeID]string)
	org.Walk(doc, doc.Root(), &org.WalkOptions{
		Pre: func(c *org.Cursor) bool {
			if !c.Node().Kind().IsElement() {
				return false
			}
			ww.indent = indents[c.Parent()]
			childIndent, descend := preElement(ww, doc, c)
			indents[c.ID()] = ww.indent + childIndent
			return descend
		},
		Post: func(c *org.Cursor) bool {
			ww.indent = indents[c.Parent()]
			postElement(ww, doc, c)
			return true
		},
		Children: func(d *org.Document, id org.NodeID) []org.NodeID {
			if h, ok := d.Node(id).Expr.(*org.Heading); ok {
				return h.Children
			}
			return d.Children(id)
		},
	})
	return ww.err
}

func preElement(w *errWriter, doc *org.Document, cursor *org.Cursor) (childIndent string, descend bool) {
	n := cursor.Node()
	switch e := n.Expr.(type) {
	case *org.Root, *org.PlainList:
		return "", true
	case *org.BlankLine:
		w.WriteString("\n")
		return "", false
	case *org.Heading:
		w.WriteString(strings.Repeat("*", e.Level))
		if e.Keyword != "" {
			w.WriteString(" ")
			w.WriteString(e.Keyword)
		}
		if e.Priority != "" {
			w.WriteString(" [#")
			w.WriteString(e.Priority)
			w.WriteString("]")
		}
		if len(e.TitleChildren) > 0 {
			w.WriteString(" ")
			writeObjects(w, doc, e.TitleChildren)
		}
		var tags []string
		for _, t := range e.Tags {
			if !t.IsInherited() {
				tags = append(tags, t.Name)
			}
		}
		if len(tags) > 0 {
			w.WriteString(" :")
			w.WriteString(strings.Join(tags, ":"))
			w.WriteString(":")
		}
		w.WriteString("\n")
		if e.Properties.Len() > 0 {
			w.WriteString(":PROPERTIES:\n")
			for _, k := range e.Properties.Keys() {
				v, _ := e.Properties.Get(k)
				writeLine(w, ":"+k+":", v)
			}
			w.WriteString(":END:\n")
		}
		return "", true
	case *org.Paragraph:
		writeObjects(w, doc, e.Children)
		if !atUnterminatedEnd(doc, n) {
			w.WriteString("\n")
		}
		return "", false
	case *org.Item:
		bullet := itemBullet(e)
		w.WriteString(bullet)
		if e.CounterSet != "" {
			w.WriteString(" [@")
			w.WriteString(e.CounterSet)
			w.WriteString("]")
		}
		switch e.CheckBox {
		case org.CheckBoxOff:
			w.WriteString(" [ ]")
		case org.CheckBoxOn:
			w.WriteString(" [X]")
		case org.CheckBoxPartial:
			w.WriteString(" [-]")
		}
		if e.Tag != "" {
			w.WriteString(" ")
			w.WriteString(e.Tag)
			w.WriteString(" ::")
		}
		continueLine(w, doc, cursor.ID(), e.Children)
		return strings.Repeat(" ", len(bullet)+1), true
	case *org.FootnoteDef:
		w.WriteString("[fn:")
		w.WriteString(e.Label)
		w.WriteString("]")
		continueLine(w, doc, cursor.ID(), e.Children)
		return "", true
	case *org.Drawer:
		w.WriteString(":")
		w.WriteString(e.Name)
		w.WriteString(":\n")
		return "", true
	case *org.Block:
		w.WriteString("#+begin_")
		w.WriteString(e.Name)
		if e.Parameters != "" {
			w.WriteString(" ")
			w.WriteString(e.Parameters)
		}
		w.WriteString("\n")
		if !e.Type.IsLesser() {
			return "", true
		}
		w.writeRaw(e.Contents)
		w.WriteString("#+end_")
		w.WriteString(e.Name)
		w.WriteString("\n")
		return "", false
	case *org.LatexEnv:
		w.WriteString(`\begin{`)
		w.WriteString(e.Name)
		w.WriteString("}\n")
		w.writeRaw(e.Contents)
		w.WriteString(`\end{`)
		w.WriteString(e.Name)
		w.WriteString("}\n")
		return "", false
	case *org.Table:
		writeTable(w, doc, e)
		return "", false
	case *org.Keyword:
		writeLine(w, "#+"+e.Key+":", e.Value)
		return "", false
	case *org.Affiliated:
		key := "#+name:"
		switch e.Type {
		case org.CaptionAffiliated:
			key = "#+caption:"
		case org.AttrAffiliated:
			key = "#+attr_" + e.Backend + ":"
		}
		writeLine(w, key, e.Value)
		return "", false
	case *org.MacroDef:
		sb := new(strings.Builder)
		for _, part := range e.Body {
			if part.Arg > 0 {
				sb.WriteString("$")
				sb.WriteByte(byte('0' + part.Arg))
			} else {
				sb.WriteString(part.Text)
			}
		}
		writeLine(w, "#+macro: "+e.Name, sb.String())
		return "", false
	case *org.Comment:
		writeLine(w, "#", e.Text)
		return "", false
	case *org.HorizontalRule:
		w.WriteString("-----\n")
		return "", false
	default:
		return "", false
	}
}

func postElement(w *errWriter, doc *org.Document, cursor *org.Cursor) {
	switch e := cursor.Node().Expr.(type) {
	case *org.Drawer:
		w.WriteString(":END:\n")
	case *org.Block:
		if !e.Type.IsLesser() {
			w.WriteString("#+end_")
			w.WriteString(e.Name)
			w.WriteString("\n")
		}
	case *org.Item:
		endItem(w, doc, cursor.ID(), e.Children)
	case *org.FootnoteDef:
		endItem(w, doc, cursor.ID(), e.Children)
	}
}

// endItem finishes an item or footnote definition.
// A blank line that ended it in the source is kept.
func endItem(w *errWriter, doc *org.Document, id org.NodeID, children []org.NodeID) {
	n := doc.Node(id)
	if !w.lineStart && !atUnterminatedEnd(doc, n) {
		w.WriteString("\n")
	}
	contentEnd := n.Start
	if len(children) > 0 {
		contentEnd = doc.Node(children[len(children)-1]).End
	} else if i := bytes.IndexByte(doc.Source[n.Start:n.End], '\n'); i >= 0 {
		contentEnd = n.Start + i + 1
	}
	if contentEnd < n.End && bytes.IndexByte(doc.Source[contentEnd:n.End], '\n') >= 0 {
		w.WriteString("\n")
	}
}

// atUnterminatedEnd reports whether n runs to the end of a document
// whose last line has no newline.
// Such a line stays unterminated: "0)" is a paragraph but "0)\n" is a list.
func atUnterminatedEnd(doc *org.Document, n *org.Node) bool {
	return n.End == len(doc.Source) && n.End > 0 && doc.Source[n.End-1] != '\n'
}

func itemBullet(item *org.Item) string {
	b := item.Bullet
	switch {
	case !b.Ordered:
		return string(b.Char)
	case b.Letter != 0:
		return string([]byte{b.Letter, b.Char})
	default:
		return strconv.Itoa(b.Number) + string(b.Char)
	}
}

// continueLine ends the line of an item or footnote definition
// unless its first child started on that line.
func continueLine(w *errWriter, doc *org.Document, id org.NodeID, children []org.NodeID) {
	if len(children) > 0 {
		start := doc.Node(id).Start
		first := doc.Node(children[0])
		if first.Kind() != org.BlankLineKind && first.Start >= start &&
			bytes.IndexByte(doc.Source[start:first.Start], '\n') < 0 {
			w.WriteString(" ")
			w.trimSpace = true
			return
		}
	}
	w.WriteString("\n")
}

// writeLine writes a keyword-like line,
// separating the value from the prefix by a space if it is not empty.
func writeLine(w *errWriter, prefix, value string) {
	w.WriteString(prefix)
	if value != "" {
		w.WriteString(" ")
		w.WriteString(value)
	}
	w.WriteString("\n")
}

func writeTable(w *errWriter, doc *org.Document, t *org.Table) {
	var rows [][]string
	widths := make([]int, t.Cols)
	for _, rowID := range t.Children {
		row, _ := doc.Node(rowID).Expr.(*org.TableRow)
		if row == nil || row.Rule {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, t.Cols)
		for i, cellID := range row.Children {
			sb := new(strings.Builder)
			cw := &errWriter{w: sb}
			writeObjects(cw, doc, doc.Children(cellID))
			cells[i] = sb.String()
			widths[i] = max(widths[i], displayWidth(cells[i]))
		}
		rows = append(rows, cells)
	}

	for _, cells := range rows {
		if cells == nil {
			w.WriteString("|")
			for i, wd := range widths {
				if i > 0 {
					w.WriteString("+")
				}
				w.WriteString(strings.Repeat("-", wd+2))
			}
			w.WriteString("|\n")
			continue
		}
		w.WriteString("|")
		for i, cell := range cells {
			w.WriteString(" ")
			w.WriteString(cell)
			w.WriteString(strings.Repeat(" ", widths[i]-displayWidth(cell)))
			w.WriteString(" |")
		}
		w.WriteString("\n")
	}
}

// displayWidth returns the number of terminal columns s occupies.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func writeObjects(w *errWriter, doc *org.Document, ids []org.NodeID) {
	for _, id := range ids {
		writeObject(w, doc, id)
	}
}

func writeObject(w *errWriter, doc *org.Document, id org.NodeID) {
	n := doc.Node(id)
	if n == nil {
		return
	}
	trim := w.trimSpace
	w.trimSpace = false
	switch e := n.Expr.(type) {
	case *org.Plain:
		text := e.Text
		if trim {
			text = strings.TrimLeft(text, " \t")
		}
		w.WriteString(text)
	case *org.SoftBreak:
		w.WriteString("\n")
		w.trimSpace = true
	case *org.LineBreak:
		w.WriteString("\\\\\n")
		w.trimSpace = true
	case *org.Bold:
		writeMarkup(w, doc, "*", e.Children)
	case *org.Italic:
		writeMarkup(w, doc, "/", e.Children)
	case *org.Underline:
		writeMarkup(w, doc, "_", e.Children)
	case *org.StrikeThrough:
		writeMarkup(w, doc, "+", e.Children)
	case *org.Code:
		w.WriteString("~" + e.Text + "~")
	case *org.Verbatim:
		w.WriteString("=" + e.Text + "=")
	case *org.RegularLink:
		w.WriteString("[[")
		w.WriteString(e.Path.Raw)
		if len(e.Description) > 0 {
			w.WriteString("][")
			writeObjects(w, doc, e.Description)
		}
		w.WriteString("]]")
	case *org.FootnoteRef:
		w.WriteString("[fn:")
		w.WriteString(e.Label)
		if e.Inline {
			w.WriteString(":")
			writeObjects(w, doc, e.Children)
		}
		w.WriteString("]")
	case *org.Entity:
		w.WriteString(`\` + e.Name)
	case *org.Emoji:
		w.WriteString(":" + e.Name + ":")
	case *org.Target:
		w.WriteString("<<" + e.Name + ">>")
	case *org.MacroCall:
		w.WriteString("{{{")
		w.WriteString(e.Name)
		if e.Args != nil {
			w.WriteString("(")
			w.WriteString(strings.Join(e.Args, ","))
			w.WriteString(")")
		}
		w.WriteString("}}}")
	case *org.ExportSnippet:
		w.WriteString("@@" + e.Backend + ":" + e.Contents + "@@")
	case *org.InlineSrc:
		w.WriteString("src_" + e.Lang)
		if e.Headers != "" {
			w.WriteString("[" + e.Headers + "]")
		}
		w.WriteString("{" + e.Body + "}")
	case *org.Superscript:
		writeScript(w, doc, n, "^", e.Children)
	case *org.Subscript:
		writeScript(w, doc, n, "_", e.Children)
	default:
		// Links and LaTeX fragments have several equivalent spellings.
		// Keep the one the author used.
		w.WriteString(string(doc.Source[n.Start:n.End]))
	}
}

func writeMarkup(w *errWriter, doc *org.Document, delim string, children []org.NodeID) {
	w.WriteString(delim)
	writeObjects(w, doc, children)
	w.WriteString(delim)
}

func writeScript(w *errWriter, doc *org.Document, n *org.Node, delim string, children []org.NodeID) {
	if children == nil {
		w.WriteString(string(doc.Source[n.Start:n.End]))
		return
	}
	w.WriteString(delim + "{")
	writeObjects(w, doc, children)
	w.WriteString("}")
}

// errWriter records the first error from its underlying writer
// and writes indent at the start of every non-empty line.
type errWriter struct {
	w          io.Writer
	hasWritten bool
	err        error

	indent    string
	lineStart bool
	// trimSpace drops leading blanks from the next text written
	// after a line break inside a paragraph.
	trimSpace bool
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	return w.WriteString(string(p))
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	for len(s) > 0 && w.err == nil {
		line, rest, hasNewline := strings.Cut(s, "\n")
		if w.lineStart && line != "" && w.indent != "" {
			w.writeRaw(w.indent)
		}
		if hasNewline {
			line += "\n"
		}
		n += w.writeRaw(line)
		s = rest
	}
	return n, w.err
}

// writeRaw writes s without indenting its lines.
func (w *errWriter) writeRaw(s string) int {
	if w.err != nil || s == "" {
		return 0
	}
	var n int
	n, w.err = io.WriteString(w.w, s)
	w.hasWritten = w.hasWritten || n > 0
	if n > 0 {
		w.lineStart = s[n-1] == '\n'
	}
	return n
}
