package eval

import (
	"fmt"
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
)

// RecordingBackend is test tooling: a Backend that records every call
// it receives, in order, instead of emitting markup. Tests assert
// against Events for structural shape and against Render for the
// concatenated text content a real template backend would have
// produced for VisitInlineText/VisitInlineSpecialchar/etc.
//
// Concrete HTML (or any other markup) backends are out of scope for
// this module; RecordingBackend is the only Backend implementation and
// exists solely so Evaluator.Evaluate has something to drive in tests.
type RecordingBackend struct {
	Events []string
	out    strings.Builder
}

// NewRecordingBackend creates an empty RecordingBackend.
func NewRecordingBackend() *RecordingBackend {
	return &RecordingBackend{}
}

func (r *RecordingBackend) log(format string, args ...any) error {
	r.Events = append(r.Events, fmt.Sprintf(format, args...))

	return nil
}

// Render returns the text accumulated from the text-bearing Visit*
// calls (inline text, special characters, literal monospace,
// whitespace, joining newlines, line breaks and AsciiDoc cell results),
// in call order.
func (r *RecordingBackend) Render() string {
	return r.out.String()
}

func (r *RecordingBackend) EnterDocument(*ast.Document) error  { return r.log("enter:document") }
func (r *RecordingBackend) ExitDocument(*ast.Document) error   { return r.log("exit:document") }
func (r *RecordingBackend) EnterHeader(*ast.Document) error    { return r.log("enter:header") }
func (r *RecordingBackend) ExitHeader(*ast.Document) error     { return r.log("exit:header") }
func (r *RecordingBackend) EnterDocumentTitle(*ast.Document) error {
	return r.log("enter:document-title")
}
func (r *RecordingBackend) ExitDocumentTitle(*ast.Document) error {
	return r.log("exit:document-title")
}
func (r *RecordingBackend) EnterFooter(*ast.Document) error  { return r.log("enter:footer") }
func (r *RecordingBackend) ExitFooter(*ast.Document) error   { return r.log("exit:footer") }
func (r *RecordingBackend) EnterContent(*ast.Document) error { return r.log("enter:content") }
func (r *RecordingBackend) ExitContent(*ast.Document) error  { return r.log("exit:content") }
func (r *RecordingBackend) EnterPreamble(*ast.Document) error { return r.log("enter:preamble") }
func (r *RecordingBackend) ExitPreamble(*ast.Document) error  { return r.log("exit:preamble") }

func (r *RecordingBackend) EnterSection(s *ast.Section) error { return r.log("enter:section:%d", s.Level) }
func (r *RecordingBackend) ExitSection(s *ast.Section) error  { return r.log("exit:section:%d", s.Level) }
func (r *RecordingBackend) EnterSectionHeading(*ast.Section) error {
	return r.log("enter:section-heading")
}
func (r *RecordingBackend) ExitSectionHeading(*ast.Section) error {
	return r.log("exit:section-heading")
}

func (r *RecordingBackend) EnterParagraphBlock(*ast.Paragraph) error { return r.log("enter:paragraph") }
func (r *RecordingBackend) ExitParagraphBlock(*ast.Paragraph) error  { return r.log("exit:paragraph") }
func (r *RecordingBackend) EnterSidebarBlock(*ast.Sidebar) error     { return r.log("enter:sidebar") }
func (r *RecordingBackend) ExitSidebarBlock(*ast.Sidebar) error      { return r.log("exit:sidebar") }
func (r *RecordingBackend) EnterListingBlock(*ast.Listing) error     { return r.log("enter:listing") }
func (r *RecordingBackend) ExitListingBlock(*ast.Listing) error      { return r.log("exit:listing") }
func (r *RecordingBackend) EnterLiteralBlock(*ast.Literal) error     { return r.log("enter:literal") }
func (r *RecordingBackend) ExitLiteralBlock(*ast.Literal) error      { return r.log("exit:literal") }
func (r *RecordingBackend) EnterPassthroughBlock(*ast.PassthroughBlock) error {
	return r.log("enter:passthrough-block")
}
func (r *RecordingBackend) ExitPassthroughBlock(*ast.PassthroughBlock) error {
	return r.log("exit:passthrough-block")
}
func (r *RecordingBackend) EnterQuoteBlock(*ast.BlockQuote) error { return r.log("enter:quote") }
func (r *RecordingBackend) ExitQuoteBlock(*ast.BlockQuote) error  { return r.log("exit:quote") }
func (r *RecordingBackend) EnterVerseBlock(*ast.Verse) error      { return r.log("enter:verse") }
func (r *RecordingBackend) ExitVerseBlock(*ast.Verse) error       { return r.log("exit:verse") }
func (r *RecordingBackend) EnterOpenBlock(*ast.Open) error        { return r.log("enter:open") }
func (r *RecordingBackend) ExitOpenBlock(*ast.Open) error         { return r.log("exit:open") }
func (r *RecordingBackend) EnterExampleBlock(*ast.Example) error  { return r.log("enter:example") }
func (r *RecordingBackend) ExitExampleBlock(*ast.Example) error   { return r.log("exit:example") }
func (r *RecordingBackend) EnterAdmonitionBlock(a *ast.Admonition) error {
	return r.log("enter:admonition:%s", a.AdmonitionKind)
}
func (r *RecordingBackend) ExitAdmonitionBlock(a *ast.Admonition) error {
	return r.log("exit:admonition:%s", a.AdmonitionKind)
}
func (r *RecordingBackend) EnterImageBlock(*ast.ImageBlock) error { return r.log("enter:image-block") }
func (r *RecordingBackend) ExitImageBlock(*ast.ImageBlock) error  { return r.log("exit:image-block") }

func (r *RecordingBackend) EnterOrderedList(*ast.OrderedList) error { return r.log("enter:olist") }
func (r *RecordingBackend) ExitOrderedList(*ast.OrderedList) error  { return r.log("exit:olist") }
func (r *RecordingBackend) EnterUnorderedList(*ast.UnorderedList) error {
	return r.log("enter:ulist")
}
func (r *RecordingBackend) ExitUnorderedList(*ast.UnorderedList) error { return r.log("exit:ulist") }
func (r *RecordingBackend) EnterDescriptionList(*ast.DescriptionList) error {
	return r.log("enter:dlist")
}
func (r *RecordingBackend) ExitDescriptionList(*ast.DescriptionList) error {
	return r.log("exit:dlist")
}
func (r *RecordingBackend) EnterCalloutList(*ast.CalloutList) error { return r.log("enter:colist") }
func (r *RecordingBackend) ExitCalloutList(*ast.CalloutList) error  { return r.log("exit:colist") }
func (r *RecordingBackend) EnterListItemPrincipal(*ast.ListItem) error {
	return r.log("enter:list-item-principal")
}
func (r *RecordingBackend) ExitListItemPrincipal(*ast.ListItem) error {
	return r.log("exit:list-item-principal")
}
func (r *RecordingBackend) EnterListItemBlocks(*ast.ListItem) error {
	return r.log("enter:list-item-blocks")
}
func (r *RecordingBackend) ExitListItemBlocks(*ast.ListItem) error {
	return r.log("exit:list-item-blocks")
}
func (r *RecordingBackend) EnterDescriptionListTerm(*ast.DescriptionListItem) error {
	return r.log("enter:dlist-term")
}
func (r *RecordingBackend) ExitDescriptionListTerm(*ast.DescriptionListItem) error {
	return r.log("exit:dlist-term")
}
func (r *RecordingBackend) EnterDescriptionListDescription(*ast.DescriptionListItem) error {
	return r.log("enter:dlist-description")
}
func (r *RecordingBackend) ExitDescriptionListDescription(*ast.DescriptionListItem) error {
	return r.log("exit:dlist-description")
}

func (r *RecordingBackend) EnterSimpleBlockContent(ast.Block) error {
	return r.log("enter:simple-content")
}
func (r *RecordingBackend) ExitSimpleBlockContent(ast.Block) error {
	return r.log("exit:simple-content")
}
func (r *RecordingBackend) EnterCompoundBlockContent(ast.Block) error {
	return r.log("enter:compound-content")
}
func (r *RecordingBackend) ExitCompoundBlockContent(ast.Block) error {
	return r.log("exit:compound-content")
}
func (r *RecordingBackend) EnterBlockTitle(title []ast.Node) error { return r.log("enter:title") }
func (r *RecordingBackend) ExitBlockTitle(title []ast.Node) error  { return r.log("exit:title") }
func (r *RecordingBackend) VisitDocumentAttributeDecl(d *ast.DocumentAttributeDecl) error {
	return r.log("attr-decl:%s", d.Name)
}

func (r *RecordingBackend) EnterTable(*ast.Table) error { return r.log("enter:table") }
func (r *RecordingBackend) ExitTable(*ast.Table) error  { return r.log("exit:table") }
func (r *RecordingBackend) EnterTableSection(kind TableSectionKind) error {
	return r.log("enter:table-section:%s", kind)
}
func (r *RecordingBackend) ExitTableSection(kind TableSectionKind) error {
	return r.log("exit:table-section:%s", kind)
}
func (r *RecordingBackend) EnterTableRow(*ast.TableRow) error { return r.log("enter:table-row") }
func (r *RecordingBackend) ExitTableRow(*ast.TableRow) error  { return r.log("exit:table-row") }
func (r *RecordingBackend) EnterTableCell(*ast.TableCell) error {
	return r.log("enter:table-cell")
}
func (r *RecordingBackend) ExitTableCell(*ast.TableCell) error { return r.log("exit:table-cell") }
func (r *RecordingBackend) EnterCellParagraph(*ast.TableCell) error {
	return r.log("enter:cell-paragraph")
}
func (r *RecordingBackend) ExitCellParagraph(*ast.TableCell) error {
	return r.log("exit:cell-paragraph")
}
func (r *RecordingBackend) VisitAsciidocTableCellResult(result string) error {
	r.out.WriteString(result)

	return r.log("asciidoc-cell-result")
}

// AsciidocTableCellBackend returns a fresh RecordingBackend for the
// evaluator to recurse an `a`-styled cell's nested blocks into.
func (r *RecordingBackend) AsciidocTableCellBackend() Backend {
	return NewRecordingBackend()
}

func (r *RecordingBackend) EnterDiscreteHeading(*ast.DiscreteHeading) error {
	return r.log("enter:discrete-heading")
}
func (r *RecordingBackend) ExitDiscreteHeading(*ast.DiscreteHeading) error {
	return r.log("exit:discrete-heading")
}
func (r *RecordingBackend) VisitThematicBreak(*ast.ThematicBreak) error {
	return r.log("thematic-break")
}
func (r *RecordingBackend) VisitPageBreak(*ast.PageBreak) error { return r.log("page-break") }
func (r *RecordingBackend) EnterQuotedParagraph(*ast.QuotedParagraph) error {
	return r.log("enter:quoted-paragraph")
}
func (r *RecordingBackend) ExitQuotedParagraph(*ast.QuotedParagraph) error {
	return r.log("exit:quoted-paragraph")
}

func (r *RecordingBackend) EnterInlineBold(*ast.Bold) error     { return r.log("enter:bold") }
func (r *RecordingBackend) ExitInlineBold(*ast.Bold) error      { return r.log("exit:bold") }
func (r *RecordingBackend) EnterInlineItalic(*ast.Italic) error { return r.log("enter:italic") }
func (r *RecordingBackend) ExitInlineItalic(*ast.Italic) error  { return r.log("exit:italic") }
func (r *RecordingBackend) EnterInlineMono(*ast.Mono) error     { return r.log("enter:mono") }
func (r *RecordingBackend) ExitInlineMono(*ast.Mono) error      { return r.log("exit:mono") }
func (r *RecordingBackend) EnterInlineHighlight(*ast.Highlight) error {
	return r.log("enter:highlight")
}
func (r *RecordingBackend) ExitInlineHighlight(*ast.Highlight) error { return r.log("exit:highlight") }
func (r *RecordingBackend) EnterInlineSubscript(*ast.Subscript) error {
	return r.log("enter:subscript")
}
func (r *RecordingBackend) ExitInlineSubscript(*ast.Subscript) error {
	return r.log("exit:subscript")
}
func (r *RecordingBackend) EnterInlineSuperscript(*ast.Superscript) error {
	return r.log("enter:superscript")
}
func (r *RecordingBackend) ExitInlineSuperscript(*ast.Superscript) error {
	return r.log("exit:superscript")
}
func (r *RecordingBackend) EnterInlinePassthrough(*ast.InlinePassthrough) error {
	return r.log("enter:inline-passthrough")
}
func (r *RecordingBackend) ExitInlinePassthrough(*ast.InlinePassthrough) error {
	return r.log("exit:inline-passthrough")
}
func (r *RecordingBackend) EnterInlineQuote(*ast.QuotedParagraph) error {
	return r.log("enter:inline-quote")
}
func (r *RecordingBackend) ExitInlineQuote(*ast.QuotedParagraph) error {
	return r.log("exit:inline-quote")
}

func (r *RecordingBackend) VisitInlineText(t *ast.Text) error {
	r.out.WriteString(t.Value)

	return r.log("text:%s", t.Value)
}
func (r *RecordingBackend) VisitInlineSpecialchar(s *ast.SpecialChar) error {
	r.out.WriteByte(s.Char)

	return r.log("specialchar:%c", s.Char)
}
func (r *RecordingBackend) VisitCurlyQuote(q *ast.CurlyQuote) error {
	return r.log("curly-quote:%d", q.QuoteKind)
}
func (r *RecordingBackend) VisitSymbol(s *ast.Symbol) error { return r.log("symbol:%s", s.Name) }
func (r *RecordingBackend) VisitInlineLitMono(l *ast.LiteralMonospace) error {
	r.out.WriteString(l.Raw)

	return r.log("lit-mono")
}
func (r *RecordingBackend) VisitMultiCharWhitespace(*ast.MultiCharWhitespace) error {
	r.out.WriteByte(' ')

	return r.log("whitespace")
}
func (r *RecordingBackend) VisitJoiningNewline(*ast.JoiningNewline) error {
	r.out.WriteByte(' ')

	return r.log("joining-newline")
}
func (r *RecordingBackend) VisitLinebreak(*ast.LineBreak) error {
	r.out.WriteByte('\n')

	return r.log("linebreak")
}

func (r *RecordingBackend) VisitKeyboardMacro(m *ast.Macro) error {
	return r.log("kbd:%s", strings.Join(m.Keys, "+"))
}
func (r *RecordingBackend) VisitMenuMacro(m *ast.Macro) error {
	return r.log("menu:%s", strings.Join(m.MenuItems, ">"))
}
func (r *RecordingBackend) VisitButtonMacro(*ast.Macro) error   { return r.log("button") }
func (r *RecordingBackend) VisitImageMacro(*ast.Macro) error    { return r.log("image-macro") }
func (r *RecordingBackend) EnterLinkMacro(*ast.Macro) error     { return r.log("enter:link") }
func (r *RecordingBackend) ExitLinkMacro(*ast.Macro) error      { return r.log("exit:link") }
func (r *RecordingBackend) EnterXref(m *ast.Macro, resolvedText []ast.Node) error {
	return r.log("enter:xref:%s", m.Target)
}
func (r *RecordingBackend) ExitXref(m *ast.Macro, resolvedText []ast.Node) error {
	return r.log("exit:xref:%s", m.Target)
}
func (r *RecordingBackend) VisitMissingXref(m *ast.Macro) error {
	return r.log("missing-xref:%s", m.Target)
}
func (r *RecordingBackend) VisitInlineAnchor(a *ast.InlineAnchor) error {
	return r.log("inline-anchor:%s", a.ID)
}
func (r *RecordingBackend) EnterFootnote(m *ast.Macro, number int) error {
	return r.log("enter:footnote:%d", number)
}
func (r *RecordingBackend) ExitFootnote(m *ast.Macro, number int) error {
	return r.log("exit:footnote:%d", number)
}
func (r *RecordingBackend) EnterTextSpan(*ast.Macro) error { return r.log("enter:text-span") }
func (r *RecordingBackend) ExitTextSpan(*ast.Macro) error  { return r.log("exit:text-span") }

func (r *RecordingBackend) EnterTOC(*ast.TOC) error { return r.log("enter:toc") }
func (r *RecordingBackend) ExitTOC(*ast.TOC) error  { return r.log("exit:toc") }
func (r *RecordingBackend) EnterTOCLevel(level int) error {
	return r.log("enter:toc-level:%d", level)
}
func (r *RecordingBackend) ExitTOCLevel(level int) error { return r.log("exit:toc-level:%d", level) }
func (r *RecordingBackend) EnterTOCNode(e *ast.TOCEntry) error {
	return r.log("enter:toc-node:%s", e.ID)
}
func (r *RecordingBackend) ExitTOCNode(e *ast.TOCEntry) error {
	return r.log("exit:toc-node:%s", e.ID)
}
func (r *RecordingBackend) EnterTOCContent(*ast.TOCEntry) error {
	return r.log("enter:toc-content")
}
func (r *RecordingBackend) ExitTOCContent(*ast.TOCEntry) error { return r.log("exit:toc-content") }

func (r *RecordingBackend) VisitCallout(c *ast.CalloutNum) error {
	return r.log("callout:%d", c.Number)
}
func (r *RecordingBackend) VisitCalloutTuck() error { return r.log("callout-tuck") }
