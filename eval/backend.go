// Package eval implements the AST visitor that drives a pluggable
// backend: a pre-/post-order walk issuing enter/exit/
// visit calls for every block and inline kind, xref resolution with a
// cycle guard, AsciiDoc-in-table-cell recursion into a fresh
// sub-backend, and table-of-contents placement.
//
// The walk itself builds on ast.Walk/ast.Visitor;
// this package adds the enter/exit pairing, the backend
// trait, and the evaluation-only state (xref guard, footnote counter,
// table-cell sub-document recursion) that a plain Visitor has no place
// for.
package eval

import "github.com/connerohnesorge/asciidork/ast"

// Backend is the stable, capability-polymorphic operation set a
// concrete renderer implements. Every method returns an error so a backend can abort
// evaluation (e.g. a template engine failure); Evaluator.Evaluate
// aborts the walk on the first non-nil return.
//
// Concrete HTML templates live outside this module; the
// only implementation in this module is RecordingBackend, test tooling
// that records calls instead of emitting markup.
type Backend interface {
	EnterDocument(*ast.Document) error
	ExitDocument(*ast.Document) error
	EnterHeader(*ast.Document) error
	ExitHeader(*ast.Document) error
	EnterDocumentTitle(*ast.Document) error
	ExitDocumentTitle(*ast.Document) error
	EnterFooter(*ast.Document) error
	ExitFooter(*ast.Document) error
	EnterContent(*ast.Document) error
	ExitContent(*ast.Document) error
	EnterPreamble(*ast.Document) error
	ExitPreamble(*ast.Document) error

	EnterSection(*ast.Section) error
	ExitSection(*ast.Section) error
	EnterSectionHeading(*ast.Section) error
	ExitSectionHeading(*ast.Section) error

	EnterParagraphBlock(*ast.Paragraph) error
	ExitParagraphBlock(*ast.Paragraph) error
	EnterSidebarBlock(*ast.Sidebar) error
	ExitSidebarBlock(*ast.Sidebar) error
	EnterListingBlock(*ast.Listing) error
	ExitListingBlock(*ast.Listing) error
	EnterLiteralBlock(*ast.Literal) error
	ExitLiteralBlock(*ast.Literal) error
	EnterPassthroughBlock(*ast.PassthroughBlock) error
	ExitPassthroughBlock(*ast.PassthroughBlock) error
	EnterQuoteBlock(*ast.BlockQuote) error
	ExitQuoteBlock(*ast.BlockQuote) error
	EnterVerseBlock(*ast.Verse) error
	ExitVerseBlock(*ast.Verse) error
	EnterOpenBlock(*ast.Open) error
	ExitOpenBlock(*ast.Open) error
	EnterExampleBlock(*ast.Example) error
	ExitExampleBlock(*ast.Example) error
	EnterAdmonitionBlock(*ast.Admonition) error
	ExitAdmonitionBlock(*ast.Admonition) error
	EnterImageBlock(*ast.ImageBlock) error
	ExitImageBlock(*ast.ImageBlock) error

	EnterOrderedList(*ast.OrderedList) error
	ExitOrderedList(*ast.OrderedList) error
	EnterUnorderedList(*ast.UnorderedList) error
	ExitUnorderedList(*ast.UnorderedList) error
	EnterDescriptionList(*ast.DescriptionList) error
	ExitDescriptionList(*ast.DescriptionList) error
	EnterCalloutList(*ast.CalloutList) error
	ExitCalloutList(*ast.CalloutList) error
	EnterListItemPrincipal(*ast.ListItem) error
	ExitListItemPrincipal(*ast.ListItem) error
	EnterListItemBlocks(*ast.ListItem) error
	ExitListItemBlocks(*ast.ListItem) error
	EnterDescriptionListTerm(*ast.DescriptionListItem) error
	ExitDescriptionListTerm(*ast.DescriptionListItem) error
	EnterDescriptionListDescription(*ast.DescriptionListItem) error
	ExitDescriptionListDescription(*ast.DescriptionListItem) error

	EnterSimpleBlockContent(ast.Block) error
	ExitSimpleBlockContent(ast.Block) error
	EnterCompoundBlockContent(ast.Block) error
	ExitCompoundBlockContent(ast.Block) error
	EnterBlockTitle(title []ast.Node) error
	ExitBlockTitle(title []ast.Node) error
	VisitDocumentAttributeDecl(*ast.DocumentAttributeDecl) error

	EnterTable(*ast.Table) error
	ExitTable(*ast.Table) error
	EnterTableSection(kind TableSectionKind) error
	ExitTableSection(kind TableSectionKind) error
	EnterTableRow(*ast.TableRow) error
	ExitTableRow(*ast.TableRow) error
	EnterTableCell(*ast.TableCell) error
	ExitTableCell(*ast.TableCell) error
	EnterCellParagraph(*ast.TableCell) error
	ExitCellParagraph(*ast.TableCell) error
	VisitAsciidocTableCellResult(result string) error
	AsciidocTableCellBackend() Backend
	// Render returns this backend's accumulated output. The evaluator
	// calls it only on a sub-backend obtained from
	// AsciidocTableCellBackend, to hand the nested document's rendered
	// result back to VisitAsciidocTableCellResult on the parent.
	Render() string

	EnterDiscreteHeading(*ast.DiscreteHeading) error
	ExitDiscreteHeading(*ast.DiscreteHeading) error
	VisitThematicBreak(*ast.ThematicBreak) error
	VisitPageBreak(*ast.PageBreak) error
	EnterQuotedParagraph(*ast.QuotedParagraph) error
	ExitQuotedParagraph(*ast.QuotedParagraph) error

	EnterInlineBold(*ast.Bold) error
	ExitInlineBold(*ast.Bold) error
	EnterInlineItalic(*ast.Italic) error
	ExitInlineItalic(*ast.Italic) error
	EnterInlineMono(*ast.Mono) error
	ExitInlineMono(*ast.Mono) error
	EnterInlineHighlight(*ast.Highlight) error
	ExitInlineHighlight(*ast.Highlight) error
	EnterInlineSubscript(*ast.Subscript) error
	ExitInlineSubscript(*ast.Subscript) error
	EnterInlineSuperscript(*ast.Superscript) error
	ExitInlineSuperscript(*ast.Superscript) error
	EnterInlinePassthrough(*ast.InlinePassthrough) error
	ExitInlinePassthrough(*ast.InlinePassthrough) error
	EnterInlineQuote(*ast.QuotedParagraph) error
	ExitInlineQuote(*ast.QuotedParagraph) error

	VisitInlineText(*ast.Text) error
	VisitInlineSpecialchar(*ast.SpecialChar) error
	VisitCurlyQuote(*ast.CurlyQuote) error
	VisitSymbol(*ast.Symbol) error
	VisitInlineLitMono(*ast.LiteralMonospace) error
	VisitMultiCharWhitespace(*ast.MultiCharWhitespace) error
	VisitJoiningNewline(*ast.JoiningNewline) error
	VisitLinebreak(*ast.LineBreak) error

	VisitKeyboardMacro(*ast.Macro) error
	VisitMenuMacro(*ast.Macro) error
	VisitButtonMacro(*ast.Macro) error
	VisitImageMacro(*ast.Macro) error
	EnterLinkMacro(*ast.Macro) error
	ExitLinkMacro(*ast.Macro) error
	EnterXref(m *ast.Macro, resolvedText []ast.Node) error
	ExitXref(m *ast.Macro, resolvedText []ast.Node) error
	VisitMissingXref(*ast.Macro) error
	VisitInlineAnchor(*ast.InlineAnchor) error
	EnterFootnote(m *ast.Macro, number int) error
	ExitFootnote(m *ast.Macro, number int) error
	EnterTextSpan(*ast.Macro) error
	ExitTextSpan(*ast.Macro) error

	EnterTOC(*ast.TOC) error
	ExitTOC(*ast.TOC) error
	EnterTOCLevel(level int) error
	ExitTOCLevel(level int) error
	EnterTOCNode(*ast.TOCEntry) error
	ExitTOCNode(*ast.TOCEntry) error
	EnterTOCContent(*ast.TOCEntry) error
	ExitTOCContent(*ast.TOCEntry) error

	VisitCallout(*ast.CalloutNum) error
	VisitCalloutTuck() error
}

// TableSectionKind distinguishes the three row groups a Table may drive
// EnterTableSection/ExitTableSection for.
type TableSectionKind int

const (
	TableHeader TableSectionKind = iota
	TableBody
	TableFooter
)

func (k TableSectionKind) String() string {
	switch k {
	case TableHeader:
		return "header"
	case TableFooter:
		return "footer"
	default:
		return "body"
	}
}
