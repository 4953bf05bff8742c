package blockparser

import (
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
)

// parseComment consumes either a single `// line comment` or a
// `////`-delimited comment block.
func (p *Parser) parseComment() (ast.Block, error) {
	l, _ := p.peekLine()
	if dk := delimiterKindOf(l); dk == "comment" {
		return p.parseDelimited(blockMetadata{})
	}

	loc := l.Location()
	text := reconstitute(l.Tokens()[1:])
	p.pos++

	return ast.NewComment(loc, strings.TrimSpace(text)), nil
}
