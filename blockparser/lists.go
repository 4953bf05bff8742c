package blockparser

import (
	"strconv"
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/attrs"
	"github.com/connerohnesorge/asciidork/line"
	"github.com/connerohnesorge/asciidork/token"
)

// isListMarker recognizes a line whose first token is a list marker:
// a run of '*' (1-5 deep), a lone '-', or an ordered marker (Digits
// then Dots, as in "1.", or a run of '.') followed by whitespace.
// Letter and roman ordered markers ("a.", "i)") are not recognized.
func isListMarker(l *line.Line) bool {
	return unorderedMarker(l) != "" || orderedMarker(l) != ""
}

// unorderedMarker returns the raw marker text ("*", "**", "-") if l
// starts with one, followed by whitespace.
func unorderedMarker(l *line.Line) string {
	t0, ok := l.Nth(0)
	if !ok {
		return ""
	}
	t1, ok := l.Nth(1)
	if !ok || t1.Kind != token.Whitespace {
		return ""
	}
	if t0.Kind == token.Star {
		return t0.Text()
	}
	if t0.Kind == token.Dashes && len(t0.Lexeme) == 1 {
		return t0.Text()
	}

	return ""
}

// orderedMarker returns the raw marker text ("1.", ".") if l starts
// with an ordered-list marker followed by whitespace. Only the
// explicit-numbered and auto-numbered (".") forms are recognized.
func orderedMarker(l *line.Line) string {
	t0, ok := l.Nth(0)
	if !ok {
		return ""
	}
	if t0.Kind == token.Dots && allDots(t0.Text()) {
		t1, ok := l.Nth(1)
		if ok && t1.Kind == token.Whitespace {
			return t0.Text()
		}

		return ""
	}
	if t0.Kind != token.Digits {
		return ""
	}
	t1, ok := l.Nth(1)
	if !ok || t1.Kind != token.Dots {
		return ""
	}
	t2, ok := l.Nth(2)
	if !ok || t2.Kind != token.Whitespace {
		return ""
	}

	return t0.Text() + t1.Text()
}

func allDots(s string) bool {
	for i := range len(s) {
		if s[i] != '.' {
			return false
		}
	}

	return true
}

func markerDepth(marker string) int {
	return len(marker)
}

// parseList consumes a run of list items at the same marker depth,
// recursing into parseList itself (via continuation `+` lines or a
// deeper marker) to build nested sublists.
func (p *Parser) parseList(meta blockMetadata) (ast.Block, error) {
	l, _ := p.peekLine()
	ordered := orderedMarker(l) != ""
	marker := unorderedMarker(l)
	if marker == "" {
		marker = orderedMarker(l)
	}
	depth := markerDepth(marker)
	loc := l.Location()

	var items []*ast.ListItem
	for {
		l, ok := p.peekLine()
		if !ok {
			break
		}
		m := unorderedMarker(l)
		isOrd := false
		if m == "" {
			m = orderedMarker(l)
			isOrd = m != ""
		}
		if m == "" || markerDepth(m) != depth || isOrd != ordered {
			break
		}
		item, err := p.parseListItem(m, depth)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if ordered {
		style := "arabic"
		if meta.attrs != nil && meta.attrs.First() != "" {
			style = meta.attrs.First()
		}

		return ast.NewOrderedList(loc, items, style), nil
	}

	return ast.NewUnorderedList(loc, items), nil
}

// parseListItem consumes one item's marker line plus any immediately
// following continuation (`+` on its own line followed by an attached
// block) or deeper-nested sublist.
func (p *Parser) parseListItem(marker string, depth int) (*ast.ListItem, error) {
	l, _ := p.peekLine()
	loc := l.Location()
	// Tokens: marker, Whitespace, rest of line is inline content.
	contentToks := l.Tokens()[2:]
	content := p.inlineOf(contentToks)
	p.pos++

	var body []ast.Block
	for {
		p.skipBlank()
		nl, ok := p.peekLine()
		if !ok {
			break
		}
		if isListContinuation(nl) {
			p.pos++
			p.skipBlank()
			meta := p.consumeMetadataLines()
			p.skipBlank()
			if p.atEnd() {
				break
			}
			b, err := p.parseOneBlock(meta)
			if err != nil {
				return nil, err
			}
			if b != nil {
				body = append(body, b)
			}

			continue
		}
		if isListMarker(nl) {
			m := unorderedMarker(nl)
			if m == "" {
				m = orderedMarker(nl)
			}
			if markerDepth(m) > depth {
				sub, err := p.parseList(blockMetadata{})
				if err != nil {
					return nil, err
				}
				body = append(body, sub)

				continue
			}
		}

		break
	}

	return ast.NewListItem(loc, marker, content, body), nil
}

func isListContinuation(l *line.Line) bool {
	return l.NumTokens() == 1 && func() bool {
		t, _ := l.Nth(0)

		return t.Kind == token.Plus
	}()
}

// isDescriptionTerm recognizes a `Term:: description` or
// `Term:::` line: one or more Word-ish tokens ending in a
// TermDelimiter token.
func isDescriptionTerm(l *line.Line) bool {
	for i := range l.NumTokens() {
		t, _ := l.Nth(i)
		if t.Kind == token.TermDelimiter {
			return true
		}
	}

	return false
}

// parseDescriptionList consumes a run of `term:: description` items.
func (p *Parser) parseDescriptionList(_ blockMetadata) (ast.Block, error) {
	l, _ := p.peekLine()
	loc := l.Location()

	var items []*ast.DescriptionListItem
	for {
		l, ok := p.peekLine()
		if !ok || !isDescriptionTerm(l) {
			break
		}
		item, err := p.parseDescriptionItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return ast.NewDescriptionList(loc, items), nil
}

func (p *Parser) parseDescriptionItem() (*ast.DescriptionListItem, error) {
	l, _ := p.peekLine()
	loc := l.Location()

	var termToks []token.Token
	var rest []token.Token
	for i := range l.NumTokens() {
		t, _ := l.Nth(i)
		if t.Kind == token.TermDelimiter {
			if i+1 < l.NumTokens() {
				rest = l.Tokens()[i+1:]
			}
			for len(rest) > 0 && rest[0].Kind == token.Whitespace {
				rest = rest[1:]
			}

			break
		}
		termToks = append(termToks, t)
	}
	term := p.inlineOf(termToks)
	p.pos++

	var desc []ast.Block
	descText := strings.TrimSpace(reconstitute(rest))
	if descText != "" {
		desc = append(desc, ast.NewParagraph(loc, p.inlineOf(rest), nil))
	}

	for {
		p.skipBlank()
		nl, ok := p.peekLine()
		if !ok || isDescriptionTerm(nl) {
			break
		}
		if isListContinuation(nl) {
			p.pos++
			p.skipBlank()
			meta := p.consumeMetadataLines()
			p.skipBlank()
			if p.atEnd() {
				break
			}
			b, err := p.parseOneBlock(meta)
			if err != nil {
				return nil, err
			}
			if b != nil {
				desc = append(desc, b)
			}

			continue
		}

		break
	}

	return ast.NewDescriptionListItem(loc, term, desc), nil
}

// parseImageBlock consumes a block-level `image::target[attrs]` macro
// line.
func (p *Parser) parseImageBlock(meta blockMetadata) (ast.Block, error) {
	l, _ := p.peekLine()
	loc := l.Location()

	var targetToks []token.Token
	i := 1
	for i < l.NumTokens() {
		t, _ := l.Nth(i)
		if t.Kind == token.OpenBracket {
			break
		}
		targetToks = append(targetToks, t)
		i++
	}
	target := reconstitute(targetToks)
	var attrToks []token.Token
	if i < l.NumTokens() {
		attrToks = l.Tokens()[i+1 : l.NumTokens()-1]
	}
	al := attrs.ParseAttrList(reconstitute(attrToks))
	if meta.attrs != nil {
		al = meta.attrs
	}
	p.pos++

	return ast.NewImageBlock(loc, target, al, p.titleNodes(meta)), nil
}

// calloutMarker recognizes a `<1> text` / `<.> text` callout-list item
// line, returning the explicit number (0 for the auto-numbered `<.>`
// form).
func calloutMarker(l *line.Line) (int, bool) {
	if l.NumTokens() < 4 {
		return 0, false
	}
	t0, _ := l.Nth(0)
	t1, _ := l.Nth(1)
	t2, _ := l.Nth(2)
	t3, _ := l.Nth(3)
	if t0.Kind != token.LessThan || t2.Kind != token.GreaterThan || t3.Kind != token.Whitespace {
		return 0, false
	}
	switch {
	case t1.Kind == token.Digits:
		n, err := strconv.Atoi(t1.Text())
		if err != nil {
			return 0, false
		}

		return n, true
	case t1.Kind == token.Dots && len(t1.Lexeme) == 1:
		return 0, true
	default:
		return 0, false
	}
}

func isCalloutItem(l *line.Line) bool {
	_, ok := calloutMarker(l)

	return ok
}

// parseCalloutList consumes a run of `<N> explanation` lines following
// a listing block. Auto-numbered `<.>` items continue from the last
// explicit number.
func (p *Parser) parseCalloutList(_ blockMetadata) (ast.Block, error) {
	first, _ := p.peekLine()
	loc := first.Location()

	var items []*ast.CalloutListItem
	last := 0
	for {
		l, ok := p.peekLine()
		if !ok {
			break
		}
		n, isItem := calloutMarker(l)
		if !isItem {
			break
		}
		if n == 0 {
			n = last + 1
		}
		last = n
		content := p.inlineOf(l.Tokens()[4:])
		items = append(items, ast.NewCalloutListItem(l.Location(), n, content))
		p.pos++
	}

	return ast.NewCalloutList(loc, items), nil
}
