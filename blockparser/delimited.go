package blockparser

import (
	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/diag"
	"github.com/connerohnesorge/asciidork/line"
	"github.com/connerohnesorge/asciidork/token"
)

// delimiterKindOf classifies a DelimiterLine token's lexeme into the
// AsciiDoc delimited-block kind it opens. Returns "" if l does not
// start with one.
func delimiterKindOf(l *line.Line) string {
	if l.NumTokens() != 1 {
		return ""
	}
	t, _ := l.Nth(0)
	if t.Kind != token.DelimiterLine {
		return ""
	}
	lex := t.Text()
	if lex == "--" {
		return "open"
	}
	switch lex[0] {
	case '-':
		return "listing"
	case '=':
		return "example"
	case '*':
		return "sidebar"
	case '.':
		return "literal"
	case '_':
		return "quote"
	case '+':
		return "passthrough"
	case '/':
		return "comment"
	default:
		return ""
	}
}

// parseDelimited consumes a fenced block: the opening DelimiterLine,
// its body (raw lines for listing/literal/passthrough/comment, nested
// blocks for the rest), and the matching closing DelimiterLine.
func (p *Parser) parseDelimited(meta blockMetadata) (ast.Block, error) {
	openLine, _ := p.peekLine()
	openTok, _ := openLine.Nth(0)
	marker := openTok.Text()
	kind := delimiterKindOf(openLine)
	startLoc := openLine.Location()
	p.pos++

	if kind == "comment" {
		_, end := p.collectRawLines(marker)

		return ast.NewComment(startLoc.Extend(end), ""), nil
	}

	titleNodes := p.titleNodes(meta)

	switch kind {
	case "listing":
		lines, end := p.collectRawLines(marker)

		return ast.NewListing(startLoc.Extend(end), lines, meta.attrs, titleNodes), nil
	case "literal":
		lines, end := p.collectRawLines(marker)

		return ast.NewLiteral(startLoc.Extend(end), lines, meta.attrs, titleNodes), nil
	case "passthrough":
		lines, end := p.collectRawLines(marker)

		return ast.NewPassthroughBlock(startLoc.Extend(end), lines, meta.attrs), nil
	case "sidebar":
		body, end, err := p.collectNestedBlocks(marker)
		if err != nil {
			return nil, err
		}

		return ast.NewSidebar(startLoc.Extend(end), body, meta.attrs, titleNodes), nil
	case "example":
		body, end, err := p.collectNestedBlocks(marker)
		if err != nil {
			return nil, err
		}
		if meta.attrs != nil {
			if k, ok := admonitionKindFromStyle(meta.attrs.First()); ok {
				return ast.NewAdmonition(startLoc.Extend(end), k, body, meta.attrs, titleNodes), nil
			}
		}

		return ast.NewExample(startLoc.Extend(end), body, meta.attrs, titleNodes), nil
	case "open":
		body, end, err := p.collectNestedBlocks(marker)
		if err != nil {
			return nil, err
		}

		return ast.NewOpen(startLoc.Extend(end), body, meta.attrs, titleNodes), nil
	case "quote":
		style := ""
		if meta.attrs != nil {
			style = meta.attrs.First()
		}
		attribution, citation := attributionFrom(meta.attrs)
		if style == "verse" {
			lines, end := p.collectRawLines(marker)
			content := p.inlineOf(lexJoinedLines(lines))

			return ast.NewVerse(startLoc.Extend(end), content, attribution, citation, meta.attrs, titleNodes), nil
		}
		body, end, err := p.collectNestedBlocks(marker)
		if err != nil {
			return nil, err
		}

		return ast.NewBlockQuote(startLoc.Extend(end), body, attribution, citation, meta.attrs, titleNodes), nil
	default:
		lines, end := p.collectRawLines(marker)

		return ast.NewLiteral(startLoc.Extend(end), lines, meta.attrs, titleNodes), nil
	}
}

func admonitionKindFromStyle(style string) (ast.AdmonitionKind, bool) {
	switch style {
	case "NOTE":
		return ast.AdmonitionNote, true
	case "TIP":
		return ast.AdmonitionTip, true
	case "IMPORTANT":
		return ast.AdmonitionImportant, true
	case "CAUTION":
		return ast.AdmonitionCaution, true
	case "WARNING":
		return ast.AdmonitionWarning, true
	default:
		return 0, false
	}
}

// attributionFrom reads a quote/verse block's attribution (first
// positional beyond the style) and citation (second), per
// `[quote, Author, Source]`.
func attributionFrom(a *ast.AttrList) (string, string) {
	if a == nil || len(a.Positional) < 2 {
		return "", ""
	}
	attribution := a.Positional[1]
	citation := ""
	if len(a.Positional) > 2 {
		citation = a.Positional[2]
	}

	return attribution, citation
}

// collectRawLines consumes lines up to (and including) the matching
// closing DelimiterLine with the same marker, returning the body lines
// reconstituted as plain text.
func (p *Parser) collectRawLines(marker string) ([]string, token.Location) {
	var out []string
	var lastLoc token.Location
	for {
		l, ok := p.peekLine()
		if !ok {
			p.diags.Err(lastLoc, diag.CodeUnterminatedDelimiter, "unterminated delimited block %q", marker)

			return out, lastLoc
		}
		if closesDelimiter(l, marker) {
			lastLoc = l.Location()
			p.pos++

			return out, lastLoc
		}
		out = append(out, l.Reconstitute())
		lastLoc = l.Location()
		p.pos++
	}
}

// collectNestedBlocks parses child blocks up to the matching closing
// DelimiterLine, recursing through the normal block dispatcher.
func (p *Parser) collectNestedBlocks(marker string) ([]ast.Block, token.Location, error) {
	var body []ast.Block
	var lastLoc token.Location
	for {
		p.skipBlank()
		l, ok := p.peekLine()
		if !ok {
			p.diags.Err(lastLoc, diag.CodeUnterminatedDelimiter, "unterminated delimited block %q", marker)

			return body, lastLoc, nil
		}
		if closesDelimiter(l, marker) {
			lastLoc = l.Location()
			p.pos++

			return body, lastLoc, nil
		}
		meta := p.consumeMetadataLines()
		p.skipBlank()
		l, ok = p.peekLine()
		if !ok {
			continue
		}
		if closesDelimiter(l, marker) {
			lastLoc = l.Location()
			p.pos++

			return body, lastLoc, nil
		}
		b, err := p.parseOneBlock(meta)
		if err != nil {
			return body, lastLoc, err
		}
		if b != nil {
			body = append(body, b)
		}
	}
}

func closesDelimiter(l *line.Line, marker string) bool {
	if l.NumTokens() != 1 {
		return false
	}
	t, _ := l.Nth(0)

	return t.Kind == token.DelimiterLine && t.Text() == marker
}

// lexJoinedLines re-lexes raw verse body lines (newline-joined) into a
// flat token slice suitable for inline parsing.
func lexJoinedLines(lines []string) []token.Token {
	joined := ""
	for i, l := range lines {
		if i > 0 {
			joined += "\n"
		}
		joined += l
	}
	lx := token.NewLexer(token.NewSourceStack("verse", []byte(joined)))
	var out []token.Token
	for _, t := range lx.All() {
		if t.Kind == token.Eof {
			continue
		}
		out = append(out, t)
	}

	return out
}
