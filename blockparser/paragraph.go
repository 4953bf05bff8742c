package blockparser

import (
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/line"
	"github.com/connerohnesorge/asciidork/token"
)

// admonitionLabels maps a paragraph's leading "LABEL:" word to its
// AdmonitionKind, for the inline `NOTE: text` shorthand (as opposed to
// the delimited `[NOTE]` / `====` form handled in delimited.go).
var admonitionLabels = map[string]ast.AdmonitionKind{
	"NOTE":      ast.AdmonitionNote,
	"TIP":       ast.AdmonitionTip,
	"IMPORTANT": ast.AdmonitionImportant,
	"CAUTION":   ast.AdmonitionCaution,
	"WARNING":   ast.AdmonitionWarning,
}

// parseParagraph consumes one or more contiguous non-blank lines as a
// single paragraph, or recognizes an inline admonition/quoted-paragraph
// shorthand on the way.
func (p *Parser) parseParagraph(meta blockMetadata) (ast.Block, error) {
	var lines []*line.Line
	for {
		l, ok := p.peekLine()
		if !ok || l.IsEmpty() || startsNewBlock(l) {
			break
		}
		lines = append(lines, l)
		p.pos++
	}
	if len(lines) == 0 {
		// Defensive: a shape check elsewhere let us in but produced no
		// lines; consume one line to guarantee forward progress.
		if l, ok := p.peekLine(); ok {
			lines = append(lines, l)
			p.pos++
		}
	}

	cl := line.NewContiguousLines(lines)
	loc := cl.Location()

	if kind, ok := admonitionLead(lines); ok {
		stripped := stripAdmonitionLead(lines)
		content := p.inlineOf(flattenTokens(stripped))

		return ast.NewAdmonition(loc, kind, []ast.Block{ast.NewParagraph(loc, content, meta.attrs)}, meta.attrs, p.titleNodes(meta)), nil
	}

	if attribution, citation, body, ok := quotedParagraphShape(lines); ok {
		content := p.inlineOf(flattenTokens(body))

		return ast.NewQuotedParagraph(loc, content, attribution, citation), nil
	}

	ip := p.inlineParser()
	content := ip.ParseContiguousLines(cl)

	return ast.NewParagraph(loc, content, meta.attrs), nil
}

// startsNewBlock reports whether l should terminate an in-progress
// paragraph even though it is non-blank (a heading, delimiter line,
// list marker, etc. starting mid-paragraph acts as an implicit blank
// line in AsciiDoc).
func startsNewBlock(l *line.Line) bool {
	return l.IsHeading() || delimiterKindOf(l) != "" || isListMarker(l) ||
		isDescriptionTerm(l) || isTableStart(l) || isAttrDeclShape(l) ||
		isTitleLine(l) || isBareAttrListLine(l) || isCommentLine(l) ||
		isCalloutItem(l)
}

func flattenTokens(lines []*line.Line) []token.Token {
	var out []token.Token
	for i, l := range lines {
		if i > 0 {
			out = append(out, token.Token{Kind: token.Whitespace, Lexeme: []byte(" ")})
		}
		out = append(out, l.Tokens()...)
	}

	return out
}

// admonitionLead recognizes a leading "LABEL:" word on the paragraph's
// first line.
func admonitionLead(lines []*line.Line) (ast.AdmonitionKind, bool) {
	if len(lines) == 0 {
		return 0, false
	}
	t0, ok := lines[0].Nth(0)
	if !ok || t0.Kind != token.Word {
		return 0, false
	}
	t1, ok := lines[0].Nth(1)
	if !ok || t1.Kind != token.Colon {
		return 0, false
	}
	k, known := admonitionLabels[t0.Text()]

	return k, known
}

func stripAdmonitionLead(lines []*line.Line) []*line.Line {
	out := make([]*line.Line, len(lines))
	copy(out, lines)
	if len(out) == 0 {
		return out
	}
	toks := out[0].Tokens()
	rest := toks[2:]
	for len(rest) > 0 && rest[0].Kind == token.Whitespace {
		rest = rest[1:]
	}
	out[0] = line.NewLine(rest)

	return out
}

// quotedParagraphShape recognizes the shorthand `"quoted text"
// -- Attribution, Citation` form: a paragraph whose first token is a
// DoubleQuote and whose last line holds a "--" attribution tail.
func quotedParagraphShape(lines []*line.Line) (attribution, citation string, body []*line.Line, ok bool) {
	if len(lines) < 2 {
		return "", "", nil, false
	}
	first, okF := lines[0].Nth(0)
	if !okF || first.Kind != token.DoubleQuote {
		return "", "", nil, false
	}
	last := lines[len(lines)-1]
	toks := last.Tokens()
	// Look for a trailing "-- Attribution, Source" tail introduced by a
	// Dashes(2) token.
	for i, t := range toks {
		if t.Kind == token.Dashes && len(t.Lexeme) == 2 {
			tail := strings.TrimSpace(reconstitute(toks[i+1:]))
			parts := strings.SplitN(tail, ",", 2)
			attribution = strings.TrimSpace(parts[0])
			if len(parts) == 2 {
				citation = strings.TrimSpace(parts[1])
			}
			bodyLines := append([]*line.Line{}, lines[:len(lines)-1]...)
			trimmed := toks[:i]
			for len(trimmed) > 0 && trimmed[len(trimmed)-1].Kind == token.Whitespace {
				trimmed = trimmed[:len(trimmed)-1]
			}
			bodyLines = append(bodyLines, line.NewLine(trimmed))

			return attribution, citation, bodyLines, true
		}
	}

	return "", "", nil, false
}
