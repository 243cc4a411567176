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

import "strconv"

// An Expr is the syntactic content of a [Node].
// Each node kind has its own Expr type;
// use a type switch to inspect its fields.
type Expr interface {
	Kind() Kind
}

// Kind identifies the type of an [Expr].
type Kind uint16

const (
	RootKind Kind = 1 + iota
	HeadingKind
	BlockKind
	DrawerKind
	PlainListKind
	ItemKind
	TableKind
	TableRowKind
	TableCellKind
	ParagraphKind
	CommentKind
	KeywordKind
	AffiliatedKind
	MacroDefKind
	LatexEnvKind
	FootnoteDefKind
	HorizontalRuleKind
	BlankLineKind
	PlainKind
	SoftBreakKind
	LineBreakKind
	ItalicKind
	BoldKind
	UnderlineKind
	StrikeThroughKind
	CodeKind
	VerbatimKind
	RegularLinkKind
	PlainLinkKind
	FootnoteRefKind
	LatexFragmentKind
	EntityKind
	EmojiKind
	TargetKind
	MacroCallKind
	ExportSnippetKind
	InlineSrcKind
	SuperscriptKind
	SubscriptKind

	numKinds = iota
)

var kindNames = [...]string{
	RootKind:           "Root",
	HeadingKind:        "Heading",
	BlockKind:          "Block",
	DrawerKind:         "Drawer",
	PlainListKind:      "PlainList",
	ItemKind:           "Item",
	TableKind:          "Table",
	TableRowKind:       "TableRow",
	TableCellKind:      "TableCell",
	ParagraphKind:      "Paragraph",
	CommentKind:        "Comment",
	KeywordKind:        "Keyword",
	AffiliatedKind:     "Affiliated",
	MacroDefKind:       "MacroDef",
	LatexEnvKind:       "LatexEnv",
	FootnoteDefKind:    "FootnoteDef",
	HorizontalRuleKind: "HorizontalRule",
	BlankLineKind:      "BlankLine",
	PlainKind:          "Plain",
	SoftBreakKind:      "SoftBreak",
	LineBreakKind:      "LineBreak",
	ItalicKind:         "Italic",
	BoldKind:           "Bold",
	UnderlineKind:      "Underline",
	StrikeThroughKind:  "StrikeThrough",
	CodeKind:           "Code",
	VerbatimKind:       "Verbatim",
	RegularLinkKind:    "RegularLink",
	PlainLinkKind:      "PlainLink",
	FootnoteRefKind:    "FootnoteRef",
	LatexFragmentKind:  "LatexFragment",
	EntityKind:         "Entity",
	EmojiKind:          "Emoji",
	TargetKind:         "Target",
	MacroCallKind:      "MacroCall",
	ExportSnippetKind:  "ExportSnippet",
	InlineSrcKind:      "InlineSrc",
	SuperscriptKind:    "Superscript",
	SubscriptKind:      "Subscript",
}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsElement reports whether nodes of the kind are elements,
// that is, line-oriented structures as opposed to inline objects.
func (k Kind) IsElement() bool {
	return RootKind <= k && k <= BlankLineKind
}

// Root is the top of a document tree.
type Root struct {
	Children []NodeID
}

// Heading is an outline heading and the section beneath it.
type Heading struct {
	// Level is the number of leading stars, from 1 to 6.
	Level int
	// Keyword is the TODO keyword, if any.
	Keyword string
	// Priority is the text between "[#" and "]", if any.
	Priority string
	// Title is the source text of the title.
	Title string
	// TitleChildren are the objects parsed from the title.
	TitleChildren []NodeID
	// Tags are the explicit tags on the heading line
	// followed by references to enclosing headings.
	Tags       []Tag
	Properties *Properties
	// Children are the elements of the heading's section,
	// including subheadings.
	Children []NodeID
}

// Tag is either an explicit tag name
// or a reference to an enclosing heading whose tags are inherited.
type Tag struct {
	Name   string
	Parent NodeID
}

// IsInherited reports whether the tag refers to an enclosing heading.
func (t Tag) IsInherited() bool {
	return t.Name == "" && t.Parent != NoNode
}

// BlockType is the type of a [Block].
type BlockType uint8

const (
	CenterBlock BlockType = 1 + iota
	QuoteBlock
	SpecialBlock
	CommentBlock
	ExampleBlock
	ExportBlock
	SrcBlock
	VerseBlock
)

// IsLesser reports whether blocks of the type have opaque contents.
func (t BlockType) IsLesser() bool {
	return t >= CommentBlock
}

// Block is a "#+begin_NAME" ... "#+end_NAME" block.
type Block struct {
	Type BlockType
	// Name is the block name as written.
	Name string
	// Language is the source language of a src block
	// or the backend of an export block.
	Language string
	// Parameters is the rest of the begin line as written.
	Parameters string
	// Params holds the ":key value" pairs from Parameters.
	Params *Properties
	// Contents is the body of a lesser block.
	Contents string
	// Children are the elements of a greater block.
	Children []NodeID
}

// Drawer is a ":NAME:" ... ":end:" drawer.
type Drawer struct {
	Name     string
	Children []NodeID
}

// ListType is the type of a [PlainList].
type ListType uint8

const (
	UnorderedList ListType = 1 + iota
	OrderedList
	DescriptiveList
)

// PlainList is a run of list items of the same type.
type PlainList struct {
	Type ListType
	// Letter is true for ordered lists counted with letters.
	Letter   bool
	Children []NodeID
}

// Bullet is the marker at the start of a list item.
type Bullet struct {
	// Char is the bullet character ('-', '+' or '*') for unordered items,
	// or the delimiter ('.' or ')') for ordered items.
	Char    byte
	Ordered bool
	// Letter is the counter of a letter-counted item, or zero.
	Letter byte
	// Number is the counter of a number-counted item.
	Number int
}

// CheckBox is the state of a list item's check box.
type CheckBox uint8

const (
	NoCheckBox CheckBox = iota
	CheckBoxOff
	CheckBoxOn
	CheckBoxPartial
)

// Item is a single list item.
type Item struct {
	Bullet     Bullet
	CounterSet string
	CheckBox   CheckBox
	// Tag is the term of a descriptive item.
	Tag      string
	Children []NodeID
}

// Table is a sequence of table rows.
type Table struct {
	Rows     int
	Cols     int
	Children []NodeID
}

// TableRow is either a rule ("|---") or a row of cells.
type TableRow struct {
	Rule     bool
	Children []NodeID
}

type TableCell struct {
	Children []NodeID
}

type Paragraph struct {
	Children []NodeID
}

// Comment is a "# text" line.
type Comment struct {
	Text string
}

// Keyword is a "#+KEY: value" line.
type Keyword struct {
	Key   string
	Value string
}

// AffiliatedType is the type of an [Affiliated] keyword.
type AffiliatedType uint8

const (
	NameAffiliated AffiliatedType = 1 + iota
	CaptionAffiliated
	AttrAffiliated
)

// Affiliated is a keyword that attaches to the next element.
type Affiliated struct {
	Type AffiliatedType
	// Element is the element the keyword applies to
	// or NoNode if no element follows.
	Element NodeID
	// Backend is the backend of an "#+attr_BACKEND:" keyword.
	Backend string
	Value   string
}

// MacroDef is a "#+macro: name body" definition.
type MacroDef struct {
	Name string
	// Body alternates literal text and argument references.
	Body    []MacroPart
	NumArgs int
}

// MacroPart is a piece of a macro body:
// literal text if Arg is zero, otherwise the 1-based argument number.
type MacroPart struct {
	Text string
	Arg  int
}

// LatexEnv is a "\begin{NAME}" ... "\end{NAME}" environment.
type LatexEnv struct {
	Name     string
	Contents string
}

// FootnoteDef is a "[fn:LABEL] contents" definition.
type FootnoteDef struct {
	Label    string
	Children []NodeID
}

type HorizontalRule struct{}

type BlankLine struct{}

// Plain is literal text.
type Plain struct {
	Text string
}

type SoftBreak struct{}

type LineBreak struct{}

type Italic struct {
	Children []NodeID
}

type Bold struct {
	Children []NodeID
}

type Underline struct {
	Children []NodeID
}

type StrikeThrough struct {
	Children []NodeID
}

type Code struct {
	Text string
}

type Verbatim struct {
	Text string
}

// RegularLink is a "[[path]]" or "[[path][description]]" link.
type RegularLink struct {
	Path        LinkPath
	Description []NodeID
}

// PathType classifies the path of a [RegularLink].
type PathType uint8

const (
	UnspecifiedPath PathType = 1 + iota
	IDPath
	CustomIDPath
	CoderefPath
	FilePath
	ProtocolPath
)

// LinkPath is the classified path of a [RegularLink].
type LinkPath struct {
	Type PathType
	// Protocol is set for ProtocolPath links.
	Protocol string
	// Value is the path without its type prefix.
	Value string
	// Raw is the path as written.
	Raw string
}

// String returns the path in canonical link syntax.
func (p LinkPath) String() string {
	switch p.Type {
	case IDPath:
		return "id:" + p.Value
	case CustomIDPath:
		return "#" + p.Value
	case CoderefPath:
		return "(" + p.Value + ")"
	case FilePath:
		return "file:" + p.Value
	case ProtocolPath:
		return p.Protocol + ":" + p.Value
	default:
		return p.Value
	}
}

// PlainLink is a bare "protocol:path" link or an angle link.
type PlainLink struct {
	Protocol string
	Path     string
}

// FootnoteRef is a "[fn:LABEL]" reference
// or an inline "[fn:LABEL:definition]" footnote.
type FootnoteRef struct {
	Label string
	// Inline is true when the reference carries its own definition.
	Inline   bool
	Children []NodeID
}

// LatexType is the type of a [LatexFragment].
type LatexType uint8

const (
	InlineLatex LatexType = 1 + iota
	DisplayLatex
	CommandLatex
)

type LatexFragment struct {
	Type LatexType
	// Name is the command name of a command fragment.
	Name string
	// Contents is the math source,
	// or a command's bracketed argument.
	Contents string
}

// Entity is a named character such as "\alpha".
type Entity struct {
	Name  string
	Value string
}

// Emoji is a ":shortcode:".
type Emoji struct {
	Name  string
	Value string
}

// Target is a "<<name>>" link target.
type Target struct {
	Name string
}

// MacroCall is a "{{{name(args)}}}" call.
type MacroCall struct {
	Name string
	Args []string
}

// ExportSnippet is "@@backend:contents@@".
type ExportSnippet struct {
	Backend  string
	Contents string
}

// InlineSrc is "src_lang[headers]{body}".
type InlineSrc struct {
	Lang    string
	Headers string
	Body    string
}

// Superscript is text raised with "^".
// Children is set for the braced form; otherwise Text holds the script.
type Superscript struct {
	Text     string
	Children []NodeID
}

// Subscript is text lowered with "_".
// Children is set for the braced form; otherwise Text holds the script.
type Subscript struct {
	Text     string
	Children []NodeID
}

func (*Root) Kind() Kind           { return RootKind }
func (*Heading) Kind() Kind        { return HeadingKind }
func (*Block) Kind() Kind          { return BlockKind }
func (*Drawer) Kind() Kind         { return DrawerKind }
func (*PlainList) Kind() Kind      { return PlainListKind }
func (*Item) Kind() Kind           { return ItemKind }
func (*Table) Kind() Kind          { return TableKind }
func (*TableRow) Kind() Kind       { return TableRowKind }
func (*TableCell) Kind() Kind      { return TableCellKind }
func (*Paragraph) Kind() Kind      { return ParagraphKind }
func (*Comment) Kind() Kind        { return CommentKind }
func (*Keyword) Kind() Kind        { return KeywordKind }
func (*Affiliated) Kind() Kind     { return AffiliatedKind }
func (*MacroDef) Kind() Kind       { return MacroDefKind }
func (*LatexEnv) Kind() Kind       { return LatexEnvKind }
func (*FootnoteDef) Kind() Kind    { return FootnoteDefKind }
func (*HorizontalRule) Kind() Kind { return HorizontalRuleKind }
func (*BlankLine) Kind() Kind      { return BlankLineKind }
func (*Plain) Kind() Kind          { return PlainKind }
func (*SoftBreak) Kind() Kind      { return SoftBreakKind }
func (*LineBreak) Kind() Kind      { return LineBreakKind }
func (*Italic) Kind() Kind         { return ItalicKind }
func (*Bold) Kind() Kind           { return BoldKind }
func (*Underline) Kind() Kind      { return UnderlineKind }
func (*StrikeThrough) Kind() Kind  { return StrikeThroughKind }
func (*Code) Kind() Kind           { return CodeKind }
func (*Verbatim) Kind() Kind       { return VerbatimKind }
func (*RegularLink) Kind() Kind    { return RegularLinkKind }
func (*PlainLink) Kind() Kind      { return PlainLinkKind }
func (*FootnoteRef) Kind() Kind    { return FootnoteRefKind }
func (*LatexFragment) Kind() Kind  { return LatexFragmentKind }
func (*Entity) Kind() Kind         { return EntityKind }
func (*Emoji) Kind() Kind          { return EmojiKind }
func (*Target) Kind() Kind         { return TargetKind }
func (*MacroCall) Kind() Kind      { return MacroCallKind }
func (*ExportSnippet) Kind() Kind  { return ExportSnippetKind }
func (*InlineSrc) Kind() Kind      { return InlineSrcKind }
func (*Superscript) Kind() Kind    { return SuperscriptKind }
func (*Subscript) Kind() Kind      { return SubscriptKind }

// childLists returns pointers to the child lists of e in source order.
func childLists(e Expr) []*[]NodeID {
	switch e := e.(type) {
	case *Root:
		return []*[]NodeID{&e.Children}
	case *Heading:
		return []*[]NodeID{&e.TitleChildren, &e.Children}
	case *Block:
		return []*[]NodeID{&e.Children}
	case *Drawer:
		return []*[]NodeID{&e.Children}
	case *PlainList:
		return []*[]NodeID{&e.Children}
	case *Item:
		return []*[]NodeID{&e.Children}
	case *Table:
		return []*[]NodeID{&e.Children}
	case *TableRow:
		return []*[]NodeID{&e.Children}
	case *TableCell:
		return []*[]NodeID{&e.Children}
	case *Paragraph:
		return []*[]NodeID{&e.Children}
	case *FootnoteDef:
		return []*[]NodeID{&e.Children}
	case *Italic:
		return []*[]NodeID{&e.Children}
	case *Bold:
		return []*[]NodeID{&e.Children}
	case *Underline:
		return []*[]NodeID{&e.Children}
	case *StrikeThrough:
		return []*[]NodeID{&e.Children}
	case *RegularLink:
		return []*[]NodeID{&e.Description}
	case *FootnoteRef:
		return []*[]NodeID{&e.Children}
	case *Superscript:
		return []*[]NodeID{&e.Children}
	case *Subscript:
		return []*[]NodeID{&e.Children}
	default:
		return nil
	}
}
