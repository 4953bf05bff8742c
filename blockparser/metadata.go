package blockparser

import (
	"github.com/connerohnesorge/asciidork/attrs"
	"github.com/connerohnesorge/asciidork/line"
	"github.com/connerohnesorge/asciidork/token"
)

// blockMetadata accumulates a `.Title` line and/or a bare `[attrs]`
// line immediately preceding a block. parseBlocks feeds every pending
// metadata line into
// this before dispatching the block itself.
type blockMetadata struct {
	title []token.Token
	attrs *attrs.AttrList
}

func (m *blockMetadata) reset() {
	m.title = nil
	m.attrs = nil
}

// isTitleLine recognizes a `.Title text` line: a single leading Dots
// token of length 1 with no following whitespace.
func isTitleLine(l *line.Line) bool {
	t0, ok := l.Nth(0)
	if !ok || t0.Kind != token.Dots || len(t0.Lexeme) != 1 {
		return false
	}
	t1, ok := l.Nth(1)

	return ok && t1.Kind != token.Whitespace && t1.Kind != token.Dots
}

// isBareAttrListLine recognizes a line consisting of exactly `[...]`
// with nothing else, the block-attribute-list metadata line.
func isBareAttrListLine(l *line.Line) bool {
	n := l.NumTokens()
	if n < 2 {
		return false
	}
	first, _ := l.Nth(0)
	last, _ := l.Nth(n - 1)

	return first.Kind == token.OpenBracket && last.Kind == token.CloseBracket
}

// consumeMetadataLines advances past any run of title/attr-list lines
// immediately preceding the current position, returning the combined
// metadata.
func (p *Parser) consumeMetadataLines() blockMetadata {
	var m blockMetadata
	for {
		l, ok := p.peekLine()
		if !ok {
			break
		}
		switch {
		case isTitleLine(l):
			m.title = l.Tokens()[1:]
			p.pos++
		case isBareAttrListLine(l):
			raw := reconstitute(l.Tokens()[1 : l.NumTokens()-1])
			m.attrs = attrs.ParseAttrList(raw)
			p.pos++
		default:
			return m
		}
	}

	return m
}
