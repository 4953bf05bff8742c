// Package blockparser implements the document/section/block-level
// parser: dispatch on leading line shape, delimited blocks,
// monotonically-nested sections with ID generation, lists, tables,
// admonitions, and document attribute declarations.
package blockparser

import (
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/attrs"
	"github.com/connerohnesorge/asciidork/diag"
	"github.com/connerohnesorge/asciidork/inlineparser"
	"github.com/connerohnesorge/asciidork/line"
	"github.com/connerohnesorge/asciidork/token"
)

// IncludeResolver resolves an include::target[attrs] directive to the
// bytes it names, plus the file name the pushed
// source should be known by. The core does no I/O of its own - a
// caller supplies this hook to resolve target against whatever
// include-path scheme (filesystem, embed.FS, network) it uses. A
// non-nil error is reported as an IncludeNotFound diagnostic.
type IncludeResolver func(target string, al *attrs.AttrList) (bytes []byte, file string, err error)

// Config mirrors the caller-facing options that affect block parsing:
// API-supplied attributes (locked), strictness, and include resolution.
type Config struct {
	Strict     bool
	Attributes map[string]string

	// AttributeMissing selects how a `{name}` reference to an unset
	// attribute behaves; the zero value keeps the reference literal.
	AttributeMissing attrs.AttrMissing

	// IncludeResolver resolves include:: directives. A nil resolver
	// means every include:: directive is
	// reported as IncludeNotFound rather than read as a paragraph.
	IncludeResolver IncludeResolver

	// MaxIncludeDepth bounds include nesting; 0 uses a default of 64.
	MaxIncludeDepth int
}

// includeFrame tracks one pushed include's extent within the flattened
// p.lines slice, so peekLine can tell when the cursor has walked past
// an included region and pop it for cycle-chain bookkeeping.
type includeFrame struct {
	file string
	end  int
}

// Parser turns a byte slice into an *ast.Document.
type Parser struct {
	lexer           *token.Lexer
	store           *attrs.Store
	diags           *diag.Bag
	anchors         *ast.AnchorRegistry
	usedIDs         map[string]int
	lines           []*line.Line
	pos             int
	attrMissing     attrs.AttrMissing
	resolver        IncludeResolver
	maxIncludeDepth int
	includeStack    []includeFrame
}

// New creates a Parser over src, identified as file for diagnostics and
// include resolution.
func New(file string, src []byte, cfg Config) *Parser {
	stack := token.NewSourceStack(file, src)
	lx := token.NewLexer(stack)
	maxDepth := cfg.MaxIncludeDepth
	if maxDepth == 0 {
		maxDepth = 64
	}
	p := &Parser{
		lexer:           lx,
		store:           attrs.NewStore(cfg.Attributes),
		diags:           diag.NewBag(cfg.Strict),
		anchors:         ast.NewAnchorRegistry(),
		usedIDs:         make(map[string]int),
		attrMissing:     cfg.AttributeMissing,
		resolver:        cfg.IncludeResolver,
		maxIncludeDepth: maxDepth,
	}
	p.lines = splitLines(lx)

	return p
}

// splitLines drains the lexer into per-line token groups (Newline
// tokens excluded), one *line.Line per source line including blanks.
func splitLines(lx *token.Lexer) []*line.Line {
	var lines []*line.Line
	var cur []token.Token
	for {
		t := lx.Next()
		if t.Kind == token.Eof {
			if len(cur) > 0 {
				lines = append(lines, line.NewLine(cur))
			}

			break
		}
		if t.Kind == token.Newline {
			lines = append(lines, line.NewLine(cur))
			cur = nil

			continue
		}
		cur = append(cur, t)
	}

	return lines
}

// Parse runs the full pipeline and returns the document plus any
// diagnostics recorded along the way.
func (p *Parser) Parse() (*ast.Document, []diag.Diagnostic, error) {
	title, err := p.parseHeader()
	if err != nil {
		return nil, p.diags.Items(), err
	}
	p.store.CloseHeader()

	body, err := p.parseBlocks(0)
	if err != nil {
		return nil, p.diags.Items(), err
	}

	toc := ast.NewTOC(p.store.IsSet("toc"), p.tocPosition(), body)
	doc := ast.NewDocument(p.docLocation(), title, body, p.anchors, toc)

	return doc, p.diags.Items(), nil
}

func (p *Parser) tocPosition() ast.TOCPosition {
	v, _ := p.store.Get("toc")
	switch v {
	case "left":
		return ast.TOCLeft
	case "right":
		return ast.TOCRight
	case "preamble":
		return ast.TOCPreamble
	default:
		return ast.TOCAuto
	}
}

func (p *Parser) docLocation() token.Location {
	if len(p.lines) == 0 {
		return token.Location{}
	}
	loc := p.lines[0].Location()
	for _, l := range p.lines[1:] {
		ll := l.Location()
		// Lines spliced in from an include live in another source
		// buffer; a Location never spans buffers, so they are left out.
		if ll.Len() == 0 || ll.IncludeDepth != loc.IncludeDepth {
			continue
		}
		loc = loc.Extend(ll)
	}

	return loc
}

// parseHeader consumes a leading document title (`= Title`) and any
// immediately following `:name: value` attribute declarations. It is
// optional; a document need not declare a title.
func (p *Parser) parseHeader() ([]ast.Node, error) {
	p.skipBlank()
	l, ok := p.peekLine()
	if !ok {
		return nil, nil
	}
	lvl, isHeading := l.HeadingLevel()
	if !isHeading || lvl != 1 {
		return nil, nil
	}
	p.pos++
	title := p.inlineOf(l.Tokens()[2:])

	for {
		l, ok := p.peekLine()
		if !ok || l.IsEmpty() {
			break
		}
		if !p.tryAttrDeclLine(l, true) {
			break
		}
		p.pos++
	}

	return title, nil
}

func (p *Parser) inlineParser() *inlineparser.Parser {
	ip := inlineparser.New(p.store, p.diags, inlineparser.Normal())
	ip.Anchors = p.anchors
	ip.Missing = p.attrMissing

	return ip
}

func (p *Parser) inlineOf(toks []token.Token) []ast.Node {
	return p.inlineParser().ParseTokens(toks)
}

// peekLine returns the current line, first popping any include frames
// whose spliced-in region the cursor has already walked past - this is
// what lets an include chain "return" to its including document once
// exhausted, and lets a later include reuse a target without tripping
// the cycle check.
func (p *Parser) peekLine() (*line.Line, bool) {
	for len(p.includeStack) > 0 && p.pos >= p.includeStack[len(p.includeStack)-1].end {
		p.includeStack = p.includeStack[:len(p.includeStack)-1]
	}
	if p.pos >= len(p.lines) {
		return nil, false
	}

	return p.lines[p.pos], true
}

func (p *Parser) skipBlank() {
	for p.pos < len(p.lines) && p.lines[p.pos].IsEmpty() {
		p.pos++
	}
}

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.lines)
}

// parseBlocks parses blocks until end of input or a heading whose
// section level is <= maxLevel (the enclosing section's level; 0 means
// "document body", stopping at any heading of the same or shallower
// depth). A heading that skips a level relative to its enclosing
// section is out of sequence: an error in strict mode, a warning (with
// the out-of-order level retained) otherwise.
func (p *Parser) parseBlocks(maxLevel int) ([]ast.Block, error) {
	var blocks []ast.Block
	for {
		p.skipBlank()
		if p.atEnd() {
			break
		}
		l, _ := p.peekLine()
		if count, ok := l.HeadingLevel(); ok {
			lvl := count - 1
			if lvl <= maxLevel {
				break
			}
			if lvl > maxLevel+1 {
				if err := p.diags.Err(l.Location(), diag.CodeSectionOutOfSequence,
					"section level %d out of sequence (expected at most %d)", lvl, maxLevel+1); err != nil {
					return blocks, err
				}
			}
		}

		meta := p.consumeMetadataLines()
		p.skipBlank()
		if p.atEnd() {
			break
		}

		b, err := p.parseOneBlock(meta)
		if err != nil {
			return blocks, err
		}
		if b != nil {
			blocks = append(blocks, b)
		}
	}

	return blocks, nil
}

// parseOneBlock dispatches on the current line's shape and consumes
// exactly one block (which may itself span many lines). meta carries
// any `.Title`/`[attrs]` lines gathered immediately before it.
func (p *Parser) parseOneBlock(meta blockMetadata) (ast.Block, error) {
	l, _ := p.peekLine()

	switch {
	case l.IsHeading():
		if isDiscrete(meta.attrs) {
			return p.parseDiscreteHeading(meta)
		}

		return p.parseSection(meta)
	case isAttrDeclShape(l):
		p.tryAttrDeclLine(l, false)
		p.pos++

		return nil, nil
	case isCommentLine(l):
		return p.parseComment()
	case isIncludeDirective(l):
		return p.parseInclude(l)
	case isThematicBreak(l):
		p.pos++

		return ast.NewThematicBreak(l.Location()), nil
	case isPageBreak(l):
		p.pos++

		return ast.NewPageBreak(l.Location()), nil
	case isTocMacro(l):
		p.pos++

		return ast.NewTableOfContentsBlock(l.Location()), nil
	case delimiterKindOf(l) != "":
		return p.parseDelimited(meta)
	case l.IsBlockMacro() && macroNameOf(l) == "image":
		return p.parseImageBlock(meta)
	case isCalloutItem(l):
		return p.parseCalloutList(meta)
	case isListMarker(l):
		return p.parseList(meta)
	case isTableStart(l):
		return p.parseTable(meta)
	case isDescriptionTerm(l):
		return p.parseDescriptionList(meta)
	default:
		return p.parseParagraph(meta)
	}
}

func (p *Parser) titleNodes(m blockMetadata) []ast.Node {
	if m.title == nil {
		return nil
	}

	return p.inlineOf(m.title)
}

func macroNameOf(l *line.Line) string {
	t, ok := l.Nth(0)
	if !ok || t.Kind != token.MacroName {
		return ""
	}

	return strings.TrimSuffix(t.Text(), ":")
}

func isAttrDeclShape(l *line.Line) bool {
	return attrDeclName(l) != ""
}

func isCommentLine(l *line.Line) bool {
	t, ok := l.Nth(0)
	if !ok || t.Kind != token.ForwardSlashes {
		return false
	}

	return len(t.Lexeme) == 2
}

// isThematicBreak recognizes a line consisting of 3+ apostrophes
// ('''), the classic AsciiDoc thematic-break marker. Each apostrophe
// lexes as its own single-byte SingleQuote token (the lexer has no
// run rule for it), so this checks the whole line rather than one
// synthesized token.
func isThematicBreak(l *line.Line) bool {
	if l.NumTokens() < 3 {
		return false
	}
	for i := range l.NumTokens() {
		t, _ := l.Nth(i)
		if t.Kind != token.SingleQuote {
			return false
		}
	}

	return true
}

// isPageBreak recognizes a line of exactly "<<<", the page-break marker.
func isPageBreak(l *line.Line) bool {
	if l.NumTokens() != 3 {
		return false
	}
	for i := range 3 {
		t, _ := l.Nth(i)
		if t.Kind != token.LessThan {
			return false
		}
	}

	return true
}

func isTocMacro(l *line.Line) bool {
	return l.IsBlockMacro() && macroNameOf(l) == "toc"
}
