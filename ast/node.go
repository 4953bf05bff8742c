// Package ast defines the document object model produced by the block
// and inline parsers: a Block tagged union (paragraphs, sections,
// lists, tables, delimited blocks, ...) and an Inline tagged union
// (formatted spans, macros, special characters, ...), plus the anchor
// registry and table-of-contents model the evaluator consults.
package ast

import (
	"hash/fnv"

	"github.com/connerohnesorge/asciidork/attrs"
	"github.com/connerohnesorge/asciidork/token"
)

// Kind is the closed set of AST node kinds, spanning both Block and
// Inline nodes so a single Node interface can answer Kind() uniformly.
type Kind int

const (
	KindDocument Kind = iota
	KindParagraph
	KindSection
	KindDocumentAttributeDecl
	KindListing
	KindLiteral
	KindPassthroughBlock
	KindSidebar
	KindExample
	KindOpen
	KindBlockQuote
	KindVerse
	KindQuotedParagraph
	KindAdmonition
	KindImageBlock
	KindOrderedList
	KindUnorderedList
	KindListItem
	KindDescriptionList
	KindDescriptionListItem
	KindCalloutList
	KindCalloutListItem
	KindTable
	KindTableRow
	KindTableCell
	KindDiscreteHeading
	KindThematicBreak
	KindPageBreak
	KindTableOfContentsBlock
	KindComment

	KindText
	KindBold
	KindItalic
	KindMono
	KindHighlight
	KindSubscript
	KindSuperscript
	KindInlinePassthrough
	KindLiteralMonospace
	KindSpecialChar
	KindCurlyQuote
	KindMultiCharWhitespace
	KindLineBreak
	KindJoiningNewline
	KindDiscarded
	KindLineComment
	KindSymbol
	KindCalloutNum
	KindInlineAnchor
	KindMacro
)

//nolint:revive // flat label table
func (k Kind) String() string {
	names := [...]string{
		"Document", "Paragraph", "Section", "DocumentAttributeDecl",
		"Listing", "Literal", "PassthroughBlock", "Sidebar", "Example",
		"Open", "BlockQuote", "Verse", "QuotedParagraph", "Admonition",
		"ImageBlock", "OrderedList", "UnorderedList", "ListItem",
		"DescriptionList", "DescriptionListItem", "CalloutList",
		"CalloutListItem", "Table", "TableRow", "TableCell",
		"DiscreteHeading", "ThematicBreak", "PageBreak",
		"TableOfContentsBlock", "Comment",
		"Text", "Bold", "Italic", "Mono", "Highlight", "Subscript",
		"Superscript", "InlinePassthrough", "LiteralMonospace",
		"SpecialChar", "CurlyQuote", "MultiCharWhitespace", "LineBreak",
		"JoiningNewline", "Discarded", "LineComment", "Symbol",
		"CalloutNum", "InlineAnchor", "Macro",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "Unknown"
	}

	return names[k]
}

// Node is the common interface satisfied by every Block and Inline.
type Node interface {
	Kind() Kind
	Loc() token.Location
	Children() []Node
	Hash() uint64
}

// Block is a Node that can appear directly in a document's or section's
// body.
type Block interface {
	Node
	isBlock()
}

// Inline is a Node that can appear within a paragraph/title/cell's
// inline content.
type Inline interface {
	Node
	isInline()
}

// baseNode carries the fields every concrete node embeds: its kind,
// its location, and its children (for Walk).
// Concrete types recompute Hash() from their own fields so two
// structurally-equal trees parsed from different byte ranges still
// compare equal - used by tests.
type baseNode struct {
	kind     Kind
	loc      token.Location
	children []Node
}

func (b *baseNode) Kind() Kind         { return b.kind }
func (b *baseNode) Loc() token.Location { return b.loc }
func (b *baseNode) Children() []Node   { return b.children }

// hashBytes combines a Kind tag with caller-supplied content bytes
// using FNV-1a.
func hashBytes(k Kind, parts ...[]byte) uint64 {
	h := fnv.New64a()
	var kindBuf [8]byte
	for i := range kindBuf {
		kindBuf[i] = byte(int(k) >> (8 * i))
	}
	h.Write(kindBuf[:])
	for _, p := range parts {
		h.Write(p)
		h.Write([]byte{0})
	}

	return h.Sum64()
}

func hashStrings(k Kind, parts ...string) uint64 {
	bs := make([][]byte, len(parts))
	for i, p := range parts {
		bs[i] = []byte(p)
	}

	return hashBytes(k, bs...)
}

func hashChildren(k Kind, children []Node, extra ...string) uint64 {
	parts := make([]string, 0, len(children)+len(extra))
	parts = append(parts, extra...)
	for _, c := range children {
		parts = append(parts, uint64ToString(c.Hash()))
	}

	return hashStrings(k, parts...)
}

func uint64ToString(v uint64) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[v&0xf]
		v >>= 4
	}

	return string(buf)
}

// AttrList is an alias for the shared attribute-list value type so AST
// consumers don't need to import attrs directly for this one type.
type AttrList = attrs.AttrList
