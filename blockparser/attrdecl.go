package blockparser

import (
	"strings"

	"github.com/connerohnesorge/asciidork/line"
	"github.com/connerohnesorge/asciidork/token"
)

// attrDeclName returns the attribute name of a `:name: value`,
// `:!name:` or `:name!:` line, or "" if the line is not shaped like
// one. The name may contain '-' and '_' (attribute names use Word,
// Underscore and Dashes tokens only; ForwardSlashes are not valid here).
func attrDeclName(l *line.Line) string {
	t0, ok := l.Nth(0)
	if !ok || t0.Kind != token.Colon {
		return ""
	}
	i := 1
	if t1, ok := l.Nth(1); ok && t1.Kind == token.Bang {
		i++
	}
	var name strings.Builder
	for {
		t, ok := l.Nth(i)
		if !ok {
			return ""
		}
		if t.Kind == token.Colon {
			break
		}
		if t.Kind == token.Bang && name.Len() > 0 {
			if next, ok := l.Nth(i + 1); ok && next.Kind == token.Colon {
				break
			}
		}
		if t.Kind != token.Word && t.Kind != token.Dashes && t.Kind != token.Underscore {
			return ""
		}
		name.WriteString(t.Text())
		i++
	}
	if name.Len() == 0 {
		return ""
	}

	return name.String()
}

// tryAttrDeclLine parses and applies a `:name: value` / `:!name:`
// declaration line against the store. Returns false (without consuming
// anything) if l is not shaped like a declaration.
func (p *Parser) tryAttrDeclLine(l *line.Line, fromHeader bool) bool {
	name := attrDeclName(l)
	if name == "" {
		return false
	}
	unset := false
	i := 1
	if t1, ok := l.Nth(1); ok && t1.Kind == token.Bang {
		unset = true
		i++
	}
	for {
		t, ok := l.Nth(i)
		if !ok {
			break
		}
		i++
		if t.Kind == token.Colon {
			break
		}
	}
	// Trailing bang form: `:name!:`.
	if t, ok := l.Nth(i - 2); ok && t.Kind == token.Bang {
		unset = true
	}
	var rest []token.Token
	if i < l.NumTokens() {
		rest = l.Tokens()[i:]
	}
	value := strings.TrimSpace(reconstitute(rest))

	if unset {
		if err := p.store.Unset(name); err != nil {
			p.diags.Warn(l.Location(), "attribute_locked", "%v", err)
		}

		return true
	}
	if err := p.store.Set(name, value, fromHeader); err != nil {
		p.diags.Warn(l.Location(), "attribute_locked", "%v", err)
	}

	return true
}

func reconstitute(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.Write(t.Lexeme)
	}

	return b.String()
}
