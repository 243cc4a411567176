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
	"slices"
	"strings"

	"github.com/derekparker/trie"
)

// NodeID is a handle to a [Node] in a [Document].
// Handles are never reused within a document.
type NodeID int32

// NoNode is the zero handle. It refers to no node.
const NoNode NodeID = -1

// Node is a single element or object in a parsed document.
type Node struct {
	Expr Expr
	// Start and End are the byte offsets of the node in [Document.Source].
	Start int
	End   int
	// Parent is the node's parent or NoNode for the root.
	Parent NodeID
	// Target is the node's anchor, if it has one.
	Target string
	// Attrs maps backend names to the attributes given
	// by "#+attr_BACKEND:" keywords.
	Attrs map[string]*Properties
}

// Kind returns the kind of the node's expression
// or zero if n is nil or not yet filled in.
func (n *Node) Kind() Kind {
	if n == nil || n.Expr == nil {
		return 0
	}
	return n.Expr.Kind()
}

// Document is a parsed Org document.
// A Document must not be modified while it is being read concurrently.
type Document struct {
	Source []byte

	nodes []Node

	// Keywords maps lowercased "#+KEY:" names to their last value.
	Keywords map[string]string
	// Targets maps target names (heading titles, "<<target>>" names
	// and "#+name:" values) to their unique anchors.
	Targets map[string]string
	// Macros maps macro names to their [MacroDef] nodes.
	Macros map[string]NodeID
	// Footnotes maps footnote labels to their definitions.
	// Inline footnote references also register themselves here.
	Footnotes map[string]NodeID

	anchorCounts map[string]int
	targetIndex  *trie.Trie

	// macroOwner is the document that defines Macros
	// if d is a macro expansion.
	macroOwner *Document
	macroDepth int
}

func newDocument(source []byte) *Document {
	return &Document{
		Source:       source,
		Keywords:     make(map[string]string),
		Targets:      make(map[string]string),
		Macros:       make(map[string]NodeID),
		Footnotes:    make(map[string]NodeID),
		anchorCounts: make(map[string]int),
		targetIndex:  trie.New(),
	}
}

// Root returns the handle of the document's root node.
func (d *Document) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the document,
// including nodes that have been unlinked.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.nodes)
}

// Node returns the node with the given handle
// or nil if the handle is out of range.
func (d *Document) Node(id NodeID) *Node {
	if d == nil || id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return &d.nodes[id]
}

// Children returns the node's children in source order.
// A heading's title objects come before its section.
func (d *Document) Children(id NodeID) []NodeID {
	n := d.Node(id)
	if n == nil {
		return nil
	}
	lists := childLists(n.Expr)
	if len(lists) == 1 {
		return *lists[0]
	}
	var children []NodeID
	for _, l := range lists {
		children = append(children, *l...)
	}
	return children
}

// Unlink removes the node from its parent's children.
// The node itself stays in the document.
func (d *Document) Unlink(id NodeID) {
	n := d.Node(id)
	if n == nil {
		return
	}
	parent := d.Node(n.Parent)
	if parent == nil {
		return
	}
	for _, l := range childLists(parent.Expr) {
		if i := slices.Index(*l, id); i >= 0 {
			*l = slices.Delete(*l, i, i+1)
			return
		}
	}
}

// Text returns the plain text content of the node's subtree.
// Markup delimiters are dropped, breaks become spaces,
// and entities are replaced by their values.
func (d *Document) Text(id NodeID) string {
	sb := new(strings.Builder)
	d.appendText(sb, id)
	return sb.String()
}

func (d *Document) appendText(sb *strings.Builder, id NodeID) {
	n := d.Node(id)
	if n == nil {
		return
	}
	switch e := n.Expr.(type) {
	case *Plain:
		sb.WriteString(e.Text)
	case *Code:
		sb.WriteString(e.Text)
	case *Verbatim:
		sb.WriteString(e.Text)
	case *Entity:
		sb.WriteString(e.Value)
	case *Emoji:
		sb.WriteString(e.Value)
	case *SoftBreak, *LineBreak:
		sb.WriteByte(' ')
	case *Heading:
		for _, c := range e.TitleChildren {
			d.appendText(sb, c)
		}
	case *RegularLink:
		if len(e.Description) == 0 {
			sb.WriteString(e.Path.Raw)
			return
		}
		for _, c := range e.Description {
			d.appendText(sb, c)
		}
	case *PlainLink:
		sb.WriteString(e.Protocol)
		sb.WriteByte(':')
		sb.WriteString(e.Path)
	case *LatexFragment:
		sb.WriteString(e.Contents)
	case *Target:
		sb.WriteString(e.Name)
	case *InlineSrc:
		sb.WriteString(e.Body)
	case *Superscript:
		sb.WriteString(e.Text)
		for _, c := range e.Children {
			d.appendText(sb, c)
		}
	case *Subscript:
		sb.WriteString(e.Text)
		for _, c := range e.Children {
			d.appendText(sb, c)
		}
	default:
		for _, c := range d.Children(id) {
			d.appendText(sb, c)
		}
	}
}

// HeadingTags returns the tags of a heading
// followed by the tags it inherits from its enclosing headings.
// Each tag name appears at most once.
func (d *Document) HeadingTags(id NodeID) []string {
	var tags []string
	seen := make(map[NodeID]bool)
	for id != NoNode && !seen[id] {
		seen[id] = true
		n := d.Node(id)
		if n == nil {
			break
		}
		h, ok := n.Expr.(*Heading)
		if !ok {
			break
		}
		next := NoNode
		for _, t := range h.Tags {
			switch {
			case t.IsInherited():
				next = t.Parent
			case !slices.Contains(tags, t.Name):
				tags = append(tags, t.Name)
			}
		}
		id = next
	}
	return tags
}

// ResolveLink finds the anchor for an unspecified link path
// by matching it against the beginning of the document's target names.
// When several targets match, the lexically smallest name wins.
func (d *Document) ResolveLink(path string) (anchor string, ok bool) {
	if path == "" || d.targetIndex == nil {
		return "", false
	}
	names := d.targetIndex.PrefixSearch(path)
	if len(names) == 0 {
		return "", false
	}
	slices.Sort(names)
	anchor, ok = d.Targets[names[0]]
	return anchor, ok
}

// reserve adds an empty node to the arena and returns its handle.
// The caller must fill it in with allocAt before returning.
func (d *Document) reserve() NodeID {
	d.nodes = append(d.nodes, Node{Parent: NoNode})
	return NodeID(len(d.nodes) - 1)
}

// alloc adds a node to the arena
// and makes it the parent of its expression's children.
func (d *Document) alloc(e Expr, start, end int, parent NodeID) NodeID {
	id := d.reserve()
	d.allocAt(id, e, start, end, parent)
	return id
}

// allocAt fills in a reserved node.
func (d *Document) allocAt(id NodeID, e Expr, start, end int, parent NodeID) {
	n := &d.nodes[id]
	n.Expr = e
	n.Start = start
	n.End = end
	n.Parent = parent
	for _, l := range childLists(e) {
		for _, c := range *l {
			d.nodes[c].Parent = id
		}
	}
}
