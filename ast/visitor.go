package ast

import "errors"

// ErrSkipChildren is returned by a Visitor method to suppress Walk's
// descent into that node's children.
var ErrSkipChildren = errors.New("ast: skip children")

// Visitor receives one call per node kind as Walk descends the tree,
// pre-order. Implementations that only care about a handful of kinds
// should embed BaseVisitor and override just those methods.
type Visitor interface {
	VisitDocument(*Document) error
	VisitParagraph(*Paragraph) error
	VisitSection(*Section) error
	VisitDocumentAttributeDecl(*DocumentAttributeDecl) error
	VisitListing(*Listing) error
	VisitLiteral(*Literal) error
	VisitPassthroughBlock(*PassthroughBlock) error
	VisitSidebar(*Sidebar) error
	VisitExample(*Example) error
	VisitOpen(*Open) error
	VisitBlockQuote(*BlockQuote) error
	VisitVerse(*Verse) error
	VisitQuotedParagraph(*QuotedParagraph) error
	VisitAdmonition(*Admonition) error
	VisitImageBlock(*ImageBlock) error
	VisitOrderedList(*OrderedList) error
	VisitUnorderedList(*UnorderedList) error
	VisitListItem(*ListItem) error
	VisitDescriptionList(*DescriptionList) error
	VisitDescriptionListItem(*DescriptionListItem) error
	VisitCalloutList(*CalloutList) error
	VisitCalloutListItem(*CalloutListItem) error
	VisitTable(*Table) error
	VisitTableRow(*TableRow) error
	VisitTableCell(*TableCell) error
	VisitDiscreteHeading(*DiscreteHeading) error
	VisitThematicBreak(*ThematicBreak) error
	VisitPageBreak(*PageBreak) error
	VisitTableOfContentsBlock(*TableOfContentsBlock) error
	VisitComment(*Comment) error

	VisitText(*Text) error
	VisitBold(*Bold) error
	VisitItalic(*Italic) error
	VisitMono(*Mono) error
	VisitHighlight(*Highlight) error
	VisitSubscript(*Subscript) error
	VisitSuperscript(*Superscript) error
	VisitInlinePassthrough(*InlinePassthrough) error
	VisitLiteralMonospace(*LiteralMonospace) error
	VisitSpecialChar(*SpecialChar) error
	VisitCurlyQuote(*CurlyQuote) error
	VisitMultiCharWhitespace(*MultiCharWhitespace) error
	VisitLineBreak(*LineBreak) error
	VisitJoiningNewline(*JoiningNewline) error
	VisitDiscarded(*Discarded) error
	VisitLineComment(*LineComment) error
	VisitSymbol(*Symbol) error
	VisitCalloutNum(*CalloutNum) error
	VisitInlineAnchor(*InlineAnchor) error
	VisitMacro(*Macro) error
}

// BaseVisitor implements Visitor with no-op methods; embed it and
// override only the kinds you need.
type BaseVisitor struct{}

func (BaseVisitor) VisitDocument(*Document) error                             { return nil }
func (BaseVisitor) VisitParagraph(*Paragraph) error                           { return nil }
func (BaseVisitor) VisitSection(*Section) error                               { return nil }
func (BaseVisitor) VisitDocumentAttributeDecl(*DocumentAttributeDecl) error   { return nil }
func (BaseVisitor) VisitListing(*Listing) error                               { return nil }
func (BaseVisitor) VisitLiteral(*Literal) error                               { return nil }
func (BaseVisitor) VisitPassthroughBlock(*PassthroughBlock) error             { return nil }
func (BaseVisitor) VisitSidebar(*Sidebar) error                               { return nil }
func (BaseVisitor) VisitExample(*Example) error                               { return nil }
func (BaseVisitor) VisitOpen(*Open) error                                     { return nil }
func (BaseVisitor) VisitBlockQuote(*BlockQuote) error                         { return nil }
func (BaseVisitor) VisitVerse(*Verse) error                                   { return nil }
func (BaseVisitor) VisitQuotedParagraph(*QuotedParagraph) error               { return nil }
func (BaseVisitor) VisitAdmonition(*Admonition) error                         { return nil }
func (BaseVisitor) VisitImageBlock(*ImageBlock) error                         { return nil }
func (BaseVisitor) VisitOrderedList(*OrderedList) error                       { return nil }
func (BaseVisitor) VisitUnorderedList(*UnorderedList) error                   { return nil }
func (BaseVisitor) VisitListItem(*ListItem) error                             { return nil }
func (BaseVisitor) VisitDescriptionList(*DescriptionList) error               { return nil }
func (BaseVisitor) VisitDescriptionListItem(*DescriptionListItem) error       { return nil }
func (BaseVisitor) VisitCalloutList(*CalloutList) error                       { return nil }
func (BaseVisitor) VisitCalloutListItem(*CalloutListItem) error               { return nil }
func (BaseVisitor) VisitTable(*Table) error                                   { return nil }
func (BaseVisitor) VisitTableRow(*TableRow) error                             { return nil }
func (BaseVisitor) VisitTableCell(*TableCell) error                           { return nil }
func (BaseVisitor) VisitDiscreteHeading(*DiscreteHeading) error               { return nil }
func (BaseVisitor) VisitThematicBreak(*ThematicBreak) error                   { return nil }
func (BaseVisitor) VisitPageBreak(*PageBreak) error                          { return nil }
func (BaseVisitor) VisitTableOfContentsBlock(*TableOfContentsBlock) error     { return nil }
func (BaseVisitor) VisitComment(*Comment) error                              { return nil }

func (BaseVisitor) VisitText(*Text) error                               { return nil }
func (BaseVisitor) VisitBold(*Bold) error                                { return nil }
func (BaseVisitor) VisitItalic(*Italic) error                            { return nil }
func (BaseVisitor) VisitMono(*Mono) error                                { return nil }
func (BaseVisitor) VisitHighlight(*Highlight) error                      { return nil }
func (BaseVisitor) VisitSubscript(*Subscript) error                      { return nil }
func (BaseVisitor) VisitSuperscript(*Superscript) error                  { return nil }
func (BaseVisitor) VisitInlinePassthrough(*InlinePassthrough) error      { return nil }
func (BaseVisitor) VisitLiteralMonospace(*LiteralMonospace) error        { return nil }
func (BaseVisitor) VisitSpecialChar(*SpecialChar) error                  { return nil }
func (BaseVisitor) VisitCurlyQuote(*CurlyQuote) error                    { return nil }
func (BaseVisitor) VisitMultiCharWhitespace(*MultiCharWhitespace) error  { return nil }
func (BaseVisitor) VisitLineBreak(*LineBreak) error                     { return nil }
func (BaseVisitor) VisitJoiningNewline(*JoiningNewline) error            { return nil }
func (BaseVisitor) VisitDiscarded(*Discarded) error                     { return nil }
func (BaseVisitor) VisitLineComment(*LineComment) error                 { return nil }
func (BaseVisitor) VisitSymbol(*Symbol) error                           { return nil }
func (BaseVisitor) VisitCalloutNum(*CalloutNum) error                   { return nil }
func (BaseVisitor) VisitInlineAnchor(*InlineAnchor) error               { return nil }
func (BaseVisitor) VisitMacro(*Macro) error                             { return nil }

// Walk dispatches n (and, unless the visitor returns ErrSkipChildren,
// its children) to v, pre-order. Any other non-nil error aborts the
// walk and propagates to the caller.
func Walk(n Node, v Visitor) error {
	if n == nil {
		return nil
	}
	err := dispatch(n, v)
	if errors.Is(err, ErrSkipChildren) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := Walk(c, v); err != nil {
			return err
		}
	}

	return nil
}

//nolint:revive // flat type-switch dispatcher, not real branching complexity
func dispatch(n Node, v Visitor) error {
	switch t := n.(type) {
	case *Document:
		return v.VisitDocument(t)
	case *Paragraph:
		return v.VisitParagraph(t)
	case *Section:
		return v.VisitSection(t)
	case *DocumentAttributeDecl:
		return v.VisitDocumentAttributeDecl(t)
	case *Listing:
		return v.VisitListing(t)
	case *Literal:
		return v.VisitLiteral(t)
	case *PassthroughBlock:
		return v.VisitPassthroughBlock(t)
	case *Sidebar:
		return v.VisitSidebar(t)
	case *Example:
		return v.VisitExample(t)
	case *Open:
		return v.VisitOpen(t)
	case *BlockQuote:
		return v.VisitBlockQuote(t)
	case *Verse:
		return v.VisitVerse(t)
	case *QuotedParagraph:
		return v.VisitQuotedParagraph(t)
	case *Admonition:
		return v.VisitAdmonition(t)
	case *ImageBlock:
		return v.VisitImageBlock(t)
	case *OrderedList:
		return v.VisitOrderedList(t)
	case *UnorderedList:
		return v.VisitUnorderedList(t)
	case *ListItem:
		return v.VisitListItem(t)
	case *DescriptionList:
		return v.VisitDescriptionList(t)
	case *DescriptionListItem:
		return v.VisitDescriptionListItem(t)
	case *CalloutList:
		return v.VisitCalloutList(t)
	case *CalloutListItem:
		return v.VisitCalloutListItem(t)
	case *Table:
		return v.VisitTable(t)
	case *TableRow:
		return v.VisitTableRow(t)
	case *TableCell:
		return v.VisitTableCell(t)
	case *DiscreteHeading:
		return v.VisitDiscreteHeading(t)
	case *ThematicBreak:
		return v.VisitThematicBreak(t)
	case *PageBreak:
		return v.VisitPageBreak(t)
	case *TableOfContentsBlock:
		return v.VisitTableOfContentsBlock(t)
	case *Comment:
		return v.VisitComment(t)
	case *Text:
		return v.VisitText(t)
	case *Bold:
		return v.VisitBold(t)
	case *Italic:
		return v.VisitItalic(t)
	case *Mono:
		return v.VisitMono(t)
	case *Highlight:
		return v.VisitHighlight(t)
	case *Subscript:
		return v.VisitSubscript(t)
	case *Superscript:
		return v.VisitSuperscript(t)
	case *InlinePassthrough:
		return v.VisitInlinePassthrough(t)
	case *LiteralMonospace:
		return v.VisitLiteralMonospace(t)
	case *SpecialChar:
		return v.VisitSpecialChar(t)
	case *CurlyQuote:
		return v.VisitCurlyQuote(t)
	case *MultiCharWhitespace:
		return v.VisitMultiCharWhitespace(t)
	case *LineBreak:
		return v.VisitLineBreak(t)
	case *JoiningNewline:
		return v.VisitJoiningNewline(t)
	case *Discarded:
		return v.VisitDiscarded(t)
	case *LineComment:
		return v.VisitLineComment(t)
	case *Symbol:
		return v.VisitSymbol(t)
	case *CalloutNum:
		return v.VisitCalloutNum(t)
	case *InlineAnchor:
		return v.VisitInlineAnchor(t)
	case *Macro:
		return v.VisitMacro(t)
	default:
		return nil
	}
}
