package ast

import "github.com/connerohnesorge/asciidork/token"

// Document is the AST root: the document header's attributes have
// already been folded into the Store the evaluator holds, so Document
// itself only keeps the parsed title and body.
type Document struct {
	baseNode
	Title  []Node // nil if no document title was declared
	Body   []Block
	Anchors *AnchorRegistry
	TOC    *TOC
}

func NewDocument(loc token.Location, title []Node, body []Block, anchors *AnchorRegistry, toc *TOC) *Document {
	d := &Document{Title: title, Body: body, Anchors: anchors, TOC: toc}
	d.kind, d.loc = KindDocument, loc
	d.children = blocksToNodes(body)

	return d
}
func (*Document) isBlock()      {}
func (d *Document) Hash() uint64 { return hashChildren(KindDocument, d.children) }

func blocksToNodes(bs []Block) []Node {
	out := make([]Node, len(bs))
	for i, b := range bs {
		out[i] = b
	}

	return out
}

// Paragraph is a block of one or more contiguous lines of inline content.
type Paragraph struct {
	baseNode
	Attrs *AttrList
}

func NewParagraph(loc token.Location, content []Node, a *AttrList) *Paragraph {
	p := &Paragraph{Attrs: a}
	p.kind, p.loc, p.children = KindParagraph, loc, content

	return p
}
func (*Paragraph) isBlock()      {}
func (p *Paragraph) Hash() uint64 { return hashChildren(KindParagraph, p.children) }

// Section is a titled, monotonically-nested heading and its body.
type Section struct {
	baseNode
	Level int
	Title []Node
	ID    string
	Body  []Block
}

func NewSection(loc token.Location, level int, title []Node, id string, body []Block) *Section {
	s := &Section{Level: level, Title: title, ID: id, Body: body}
	s.kind, s.loc = KindSection, loc
	s.children = append(append([]Node{}, title...), blocksToNodes(body)...)

	return s
}
func (*Section) isBlock() {}
func (s *Section) Hash() uint64 {
	return hashChildren(KindSection, s.children, uint64ToString(uint64(s.Level)), s.ID)
}

// DocumentAttributeDecl is a `:name: value` or `:!name:` declaration
// appearing in the document body. Header declarations are folded
// directly into the Store and need not appear as body nodes.
type DocumentAttributeDecl struct {
	baseNode
	Name    string
	Value   string
	Unset   bool
}

func NewDocumentAttributeDecl(loc token.Location, name, value string, unset bool) *DocumentAttributeDecl {
	d := &DocumentAttributeDecl{Name: name, Value: value, Unset: unset}
	d.kind, d.loc = KindDocumentAttributeDecl, loc

	return d
}
func (*DocumentAttributeDecl) isBlock() {}
func (d *DocumentAttributeDecl) Hash() uint64 {
	return hashStrings(KindDocumentAttributeDecl, d.Name, d.Value)
}

// delimitedBlock is the shared shape of the several delimited-block
// contexts (a title, attrs, and raw-or-parsed body).
type delimitedBlock struct {
	baseNode
	Attrs *AttrList
	Title []Node
}

func newDelimited(k Kind, loc token.Location, content []Node, a *AttrList, title []Node) delimitedBlock {
	d := delimitedBlock{Attrs: a, Title: title}
	d.kind, d.loc, d.children = k, loc, content

	return d
}

// Listing is a `----`-delimited source/listing block: content is raw
// text, one string per line; callout markers are not split out into
// CalloutNum nodes.
type Listing struct {
	delimitedBlock
	Lines []string
}

func NewListing(loc token.Location, lines []string, a *AttrList, title []Node) *Listing {
	l := &Listing{delimitedBlock: newDelimited(KindListing, loc, nil, a, title), Lines: lines}

	return l
}
func (*Listing) isBlock()      {}
func (l *Listing) Hash() uint64 { return hashStrings(KindListing, l.Lines...) }

// Literal is an indented-or-`....`-delimited literal block.
type Literal struct {
	delimitedBlock
	Lines []string
}

func NewLiteral(loc token.Location, lines []string, a *AttrList, title []Node) *Literal {
	return &Literal{delimitedBlock: newDelimited(KindLiteral, loc, nil, a, title), Lines: lines}
}
func (*Literal) isBlock()      {}
func (l *Literal) Hash() uint64 { return hashStrings(KindLiteral, l.Lines...) }

// PassthroughBlock is a `++++`-delimited pass-through block: raw text
// with no substitutions applied at all.
type PassthroughBlock struct {
	delimitedBlock
	Lines []string
}

func NewPassthroughBlock(loc token.Location, lines []string, a *AttrList) *PassthroughBlock {
	return &PassthroughBlock{delimitedBlock: newDelimited(KindPassthroughBlock, loc, nil, a, nil), Lines: lines}
}
func (*PassthroughBlock) isBlock()      {}
func (p *PassthroughBlock) Hash() uint64 { return hashStrings(KindPassthroughBlock, p.Lines...) }

// Sidebar, Example, Open, BlockQuote, and Verse all wrap a list of
// child blocks (or, for Verse, raw inline content) between a pair of
// delimiter lines.
type Sidebar struct {
	delimitedBlock
	Body []Block
}

func NewSidebar(loc token.Location, body []Block, a *AttrList, title []Node) *Sidebar {
	s := &Sidebar{delimitedBlock: newDelimited(KindSidebar, loc, blocksToNodes(body), a, title), Body: body}

	return s
}
func (*Sidebar) isBlock()      {}
func (s *Sidebar) Hash() uint64 { return hashChildren(KindSidebar, s.children) }

type Example struct {
	delimitedBlock
	Body []Block
}

func NewExample(loc token.Location, body []Block, a *AttrList, title []Node) *Example {
	return &Example{delimitedBlock: newDelimited(KindExample, loc, blocksToNodes(body), a, title), Body: body}
}
func (*Example) isBlock()      {}
func (e *Example) Hash() uint64 { return hashChildren(KindExample, e.children) }

type Open struct {
	delimitedBlock
	Body []Block
}

func NewOpen(loc token.Location, body []Block, a *AttrList, title []Node) *Open {
	return &Open{delimitedBlock: newDelimited(KindOpen, loc, blocksToNodes(body), a, title), Body: body}
}
func (*Open) isBlock()      {}
func (o *Open) Hash() uint64 { return hashChildren(KindOpen, o.children) }

type BlockQuote struct {
	delimitedBlock
	Body []Block
	Attribution string
	Citation    string
}

func NewBlockQuote(loc token.Location, body []Block, attribution, citation string, a *AttrList, title []Node) *BlockQuote {
	bq := &BlockQuote{
		delimitedBlock: newDelimited(KindBlockQuote, loc, blocksToNodes(body), a, title),
		Body:           body, Attribution: attribution, Citation: citation,
	}

	return bq
}
func (*BlockQuote) isBlock() {}
func (b *BlockQuote) Hash() uint64 {
	return hashChildren(KindBlockQuote, b.children, b.Attribution, b.Citation)
}

type Verse struct {
	delimitedBlock
	Content     []Node
	Attribution string
	Citation    string
}

func NewVerse(loc token.Location, content []Node, attribution, citation string, a *AttrList, title []Node) *Verse {
	v := &Verse{
		delimitedBlock: newDelimited(KindVerse, loc, content, a, title),
		Content:        content, Attribution: attribution, Citation: citation,
	}

	return v
}
func (*Verse) isBlock() {}
func (v *Verse) Hash() uint64 {
	return hashChildren(KindVerse, v.children, v.Attribution, v.Citation)
}

// QuotedParagraph is the shorthand `"text" -- Author, Source` form.
type QuotedParagraph struct {
	baseNode
	Content     []Node
	Attribution string
	Citation    string
}

func NewQuotedParagraph(loc token.Location, content []Node, attribution, citation string) *QuotedParagraph {
	q := &QuotedParagraph{Content: content, Attribution: attribution, Citation: citation}
	q.kind, q.loc, q.children = KindQuotedParagraph, loc, content

	return q
}
func (*QuotedParagraph) isBlock() {}
func (q *QuotedParagraph) Hash() uint64 {
	return hashChildren(KindQuotedParagraph, q.children, q.Attribution, q.Citation)
}

// AdmonitionKind enumerates the five recognized admonition labels.
type AdmonitionKind int

const (
	AdmonitionNote AdmonitionKind = iota
	AdmonitionTip
	AdmonitionImportant
	AdmonitionCaution
	AdmonitionWarning
)

func (k AdmonitionKind) String() string {
	names := [...]string{"NOTE", "TIP", "IMPORTANT", "CAUTION", "WARNING"}
	if int(k) < 0 || int(k) >= len(names) {
		return "NOTE"
	}

	return names[k]
}

// Admonition wraps a paragraph or delimited block with a NOTE/TIP/
// IMPORTANT/CAUTION/WARNING label, set either via a style attribute on
// a delimited block or a `NOTE: text` paragraph lead-in.
type Admonition struct {
	baseNode
	AdmonitionKind AdmonitionKind
	Body           []Block
	Attrs          *AttrList
	Title          []Node
}

func NewAdmonition(loc token.Location, k AdmonitionKind, body []Block, a *AttrList, title []Node) *Admonition {
	adm := &Admonition{AdmonitionKind: k, Body: body, Attrs: a, Title: title}
	adm.kind, adm.loc = KindAdmonition, loc
	adm.children = blocksToNodes(body)

	return adm
}
func (*Admonition) isBlock() {}
func (a *Admonition) Hash() uint64 {
	return hashChildren(KindAdmonition, a.children, a.AdmonitionKind.String())
}

// ImageBlock is a block-level `image::target[...]` macro.
type ImageBlock struct {
	baseNode
	Target string
	Attrs  *AttrList
	Title  []Node
}

func NewImageBlock(loc token.Location, target string, a *AttrList, title []Node) *ImageBlock {
	img := &ImageBlock{Target: target, Attrs: a, Title: title}
	img.kind, img.loc = KindImageBlock, loc

	return img
}
func (*ImageBlock) isBlock()      {}
func (i *ImageBlock) Hash() uint64 { return hashStrings(KindImageBlock, i.Target) }

// ListItem is one `*`/`-`/`.`/`1.` marker's content, which may itself
// contain nested blocks (continuation via `+`).
type ListItem struct {
	baseNode
	Marker string
	Content []Node
	Body    []Block // nested blocks attached via list continuation
}

func NewListItem(loc token.Location, marker string, content []Node, body []Block) *ListItem {
	li := &ListItem{Marker: marker, Content: content, Body: body}
	li.kind, li.loc = KindListItem, loc
	li.children = append(append([]Node{}, content...), blocksToNodes(body)...)

	return li
}
func (*ListItem) isBlock()      {}
func (l *ListItem) Hash() uint64 { return hashChildren(KindListItem, l.children, l.Marker) }

// OrderedList and UnorderedList hold a flat slice of ListItems; nesting
// is expressed by an inner list appearing in a ListItem's Body.
type OrderedList struct {
	baseNode
	Items     []*ListItem
	NumbStyle string // "arabic", "loweralpha", "upperroman", ...
}

func NewOrderedList(loc token.Location, items []*ListItem, style string) *OrderedList {
	ol := &OrderedList{Items: items, NumbStyle: style}
	ol.kind, ol.loc = KindOrderedList, loc
	ol.children = listItemsToNodes(items)

	return ol
}
func (*OrderedList) isBlock() {}
func (o *OrderedList) Hash() uint64 {
	return hashChildren(KindOrderedList, o.children, o.NumbStyle)
}

type UnorderedList struct {
	baseNode
	Items []*ListItem
}

func NewUnorderedList(loc token.Location, items []*ListItem) *UnorderedList {
	ul := &UnorderedList{Items: items}
	ul.kind, ul.loc = KindUnorderedList, loc
	ul.children = listItemsToNodes(items)

	return ul
}
func (*UnorderedList) isBlock()      {}
func (u *UnorderedList) Hash() uint64 { return hashChildren(KindUnorderedList, u.children) }

func listItemsToNodes(items []*ListItem) []Node {
	out := make([]Node, len(items))
	for i, it := range items {
		out[i] = it
	}

	return out
}

// DescriptionListItem is one `term:: description` entry.
type DescriptionListItem struct {
	baseNode
	Term        []Node
	Description []Block
}

func NewDescriptionListItem(loc token.Location, term []Node, description []Block) *DescriptionListItem {
	d := &DescriptionListItem{Term: term, Description: description}
	d.kind, d.loc = KindDescriptionListItem, loc
	d.children = append(append([]Node{}, term...), blocksToNodes(description)...)

	return d
}
func (*DescriptionListItem) isBlock() {}
func (d *DescriptionListItem) Hash() uint64 {
	return hashChildren(KindDescriptionListItem, d.children)
}

type DescriptionList struct {
	baseNode
	Items []*DescriptionListItem
}

func NewDescriptionList(loc token.Location, items []*DescriptionListItem) *DescriptionList {
	dl := &DescriptionList{Items: items}
	dl.kind, dl.loc = KindDescriptionList, loc
	nodes := make([]Node, len(items))
	for i, it := range items {
		nodes[i] = it
	}
	dl.children = nodes

	return dl
}
func (*DescriptionList) isBlock()      {}
func (d *DescriptionList) Hash() uint64 { return hashChildren(KindDescriptionList, d.children) }

// CalloutListItem associates a callout number with its explanatory text.
type CalloutListItem struct {
	baseNode
	Number  int
	Content []Node
}

func NewCalloutListItem(loc token.Location, n int, content []Node) *CalloutListItem {
	c := &CalloutListItem{Number: n, Content: content}
	c.kind, c.loc, c.children = KindCalloutListItem, loc, content

	return c
}
func (*CalloutListItem) isBlock() {}
func (c *CalloutListItem) Hash() uint64 {
	return hashChildren(KindCalloutListItem, c.children, uint64ToString(uint64(c.Number)))
}

type CalloutList struct {
	baseNode
	Items []*CalloutListItem
}

func NewCalloutList(loc token.Location, items []*CalloutListItem) *CalloutList {
	cl := &CalloutList{Items: items}
	cl.kind, cl.loc = KindCalloutList, loc
	nodes := make([]Node, len(items))
	for i, it := range items {
		nodes[i] = it
	}
	cl.children = nodes

	return cl
}
func (*CalloutList) isBlock()      {}
func (c *CalloutList) Hash() uint64 { return hashChildren(KindCalloutList, c.children) }

// TableCell holds a cell's parsed content (as inline nodes, for the
// default cell style) or nested blocks (for an `a` AsciiDoc-style cell
// re-parsed as its own sub-document).
type TableCell struct {
	baseNode
	Inline   []Node
	Blocks   []Block
	Span     int
	RowSpan  int
	IsHeader bool
}

func NewTableCell(loc token.Location, inline []Node, blocks []Block, span, rowSpan int, isHeader bool) *TableCell {
	c := &TableCell{Inline: inline, Blocks: blocks, Span: span, RowSpan: rowSpan, IsHeader: isHeader}
	c.kind, c.loc = KindTableCell, loc
	if blocks != nil {
		c.children = blocksToNodes(blocks)
	} else {
		c.children = inline
	}

	return c
}
func (*TableCell) isBlock() {}
func (c *TableCell) Hash() uint64 {
	return hashChildren(KindTableCell, c.children, uint64ToString(uint64(c.Span)))
}

type TableRow struct {
	baseNode
	Cells []*TableCell
}

func NewTableRow(loc token.Location, cells []*TableCell) *TableRow {
	r := &TableRow{Cells: cells}
	r.kind, r.loc = KindTableRow, loc
	nodes := make([]Node, len(cells))
	for i, c := range cells {
		nodes[i] = c
	}
	r.children = nodes

	return r
}
func (*TableRow) isBlock()      {}
func (r *TableRow) Hash() uint64 { return hashChildren(KindTableRow, r.children) }

// Table holds the header row (if any) separately from the body rows,
// plus the column count/spec derived from the `cols` attribute.
type Table struct {
	baseNode
	Header *TableRow
	Rows   []*TableRow
	Footer *TableRow
	NumCols int
	Attrs   *AttrList
	Title   []Node
}

func NewTable(loc token.Location, header *TableRow, rows []*TableRow, footer *TableRow, numCols int, a *AttrList, title []Node) *Table {
	t := &Table{Header: header, Rows: rows, Footer: footer, NumCols: numCols, Attrs: a, Title: title}
	t.kind, t.loc = KindTable, loc
	var nodes []Node
	if header != nil {
		nodes = append(nodes, header)
	}
	for _, r := range rows {
		nodes = append(nodes, r)
	}
	if footer != nil {
		nodes = append(nodes, footer)
	}
	t.children = nodes

	return t
}
func (*Table) isBlock()      {}
func (t *Table) Hash() uint64 { return hashChildren(KindTable, t.children, uint64ToString(uint64(t.NumCols))) }

// DiscreteHeading is a `[discrete]`-styled heading that does not nest
// or participate in the section tree or TOC.
type DiscreteHeading struct {
	baseNode
	Level int
	Title []Node
	ID    string
}

func NewDiscreteHeading(loc token.Location, level int, title []Node, id string) *DiscreteHeading {
	d := &DiscreteHeading{Level: level, Title: title, ID: id}
	d.kind, d.loc, d.children = KindDiscreteHeading, loc, title

	return d
}
func (*DiscreteHeading) isBlock() {}
func (d *DiscreteHeading) Hash() uint64 {
	return hashChildren(KindDiscreteHeading, d.children, uint64ToString(uint64(d.Level)), d.ID)
}

// ThematicBreak is a `'''` horizontal rule.
type ThematicBreak struct{ baseNode }

func NewThematicBreak(loc token.Location) *ThematicBreak {
	t := &ThematicBreak{}
	t.kind, t.loc = KindThematicBreak, loc

	return t
}
func (*ThematicBreak) isBlock()      {}
func (t *ThematicBreak) Hash() uint64 { return hashStrings(KindThematicBreak) }

// PageBreak is a `<<<` page break.
type PageBreak struct{ baseNode }

func NewPageBreak(loc token.Location) *PageBreak {
	p := &PageBreak{}
	p.kind, p.loc = KindPageBreak, loc

	return p
}
func (*PageBreak) isBlock()      {}
func (p *PageBreak) Hash() uint64 { return hashStrings(KindPageBreak) }

// TableOfContentsBlock is an explicit `toc::[]` macro placement,
// consumed by the evaluator to render the TOC inline at that point
// instead of (or in addition to) its Config-driven default position.
type TableOfContentsBlock struct{ baseNode }

func NewTableOfContentsBlock(loc token.Location) *TableOfContentsBlock {
	t := &TableOfContentsBlock{}
	t.kind, t.loc = KindTableOfContentsBlock, loc

	return t
}
func (*TableOfContentsBlock) isBlock()      {}
func (t *TableOfContentsBlock) Hash() uint64 { return hashStrings(KindTableOfContentsBlock) }

// Comment is a `//` line comment or `////`-delimited comment block; it
// carries no rendered content but is retained for round-trip fidelity
// and IDE-style tooling built atop the AST.
type Comment struct {
	baseNode
	Text string
}

func NewComment(loc token.Location, text string) *Comment {
	c := &Comment{Text: text}
	c.kind, c.loc = KindComment, loc

	return c
}
func (*Comment) isBlock()      {}
func (c *Comment) Hash() uint64 { return hashStrings(KindComment, c.Text) }
