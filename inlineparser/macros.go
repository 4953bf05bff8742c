package inlineparser

import (
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/attrs"
	"github.com/connerohnesorge/asciidork/token"
)

var macroKindByName = map[string]ast.MacroKind{
	"image":    ast.MacroImage,
	"footnote": ast.MacroFootnote,
	"kbd":      ast.MacroKbd,
	"xref":     ast.MacroXref,
	"link":     ast.MacroLink,
	"mailto":   ast.MacroMailto,
	"menu":     ast.MacroMenu,
	"button":   ast.MacroButton,
}

// tryMacro parses "name:target[attrs]" starting at a MacroName token.
// It returns the built Macro node and the index just past the closing
// CloseBracket on success.
func (sp *spanParser) tryMacro(start int) (ast.Node, int, bool) {
	nameTok := sp.toks[start]
	name := strings.TrimSuffix(nameTok.Text(), ":")
	kind, known := macroKindByName[name]
	if !known {
		kind = ast.MacroAutoLink
	}

	i := start + 1
	var targetToks []token.Token
	for i < len(sp.toks) && sp.toks[i].Kind != token.OpenBracket {
		targetToks = append(targetToks, sp.toks[i])
		i++
	}
	if i >= len(sp.toks) {
		return nil, 0, false
	}
	i++ // skip OpenBracket
	depth := 1
	attrStart := i
	for i < len(sp.toks) && depth > 0 {
		switch sp.toks[i].Kind {
		case token.OpenBracket:
			depth++
		case token.CloseBracket:
			depth--
			if depth == 0 {
				goto closed
			}
		}
		i++
	}
closed:
	if i >= len(sp.toks) {
		return nil, 0, false
	}
	attrToks := sp.toks[attrStart:i]
	closeIdx := i

	target := joinLexemes(targetToks)
	rawAttrs := joinLexemes(attrToks)
	var al *attrs.AttrList
	if kind == ast.MacroXref {
		// Xref link text is literal: surrounding quotes are content, not
		// value quoting, so it bypasses the general attr-list parser.
		al = attrs.LiteralPositional(strings.TrimSpace(rawAttrs))
	} else {
		al = attrs.ParseAttrList(rawAttrs)
	}

	var label []ast.Node
	switch kind {
	case ast.MacroImage, ast.MacroXref, ast.MacroKbd, ast.MacroMenu:
		// First positional entry is alt text / reftext / key-combo /
		// menu-path, not further inline content; leave Text nil, the
		// dedicated field (Attrs, Keys, MenuItems) carries it.
	default:
		if al.First() != "" {
			label = sp.p.ParseTokens(attrToks)
		}
	}

	loc := nameTok.Loc.Extend(sp.toks[closeIdx].Loc)

	m := ast.NewMacro(loc, kind, target, al, label)
	switch kind {
	case ast.MacroKbd:
		m.Keys = splitKbdKeys(rawAttrs)
	case ast.MacroMenu:
		m.MenuItems = splitMenuItems(target, rawAttrs)
	}

	return m, closeIdx + 1, true
}

// splitKbdKeys splits a kbd: macro's raw bracket text into individual
// key names on ',' or '+', honoring a '\' escape that keeps the
// following separator literal instead of splitting on it.
func splitKbdKeys(raw string) []string {
	var keys []string
	var cur strings.Builder
	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) && (runes[i+1] == ',' || runes[i+1] == '+') {
			cur.WriteRune(runes[i+1])
			i++

			continue
		}
		if r == ',' || r == '+' {
			if s := strings.TrimSpace(cur.String()); s != "" {
				keys = append(keys, s)
			}
			cur.Reset()

			continue
		}
		cur.WriteRune(r)
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		keys = append(keys, s)
	}

	return keys
}

// splitMenuItems builds a menu: macro's item path: the macro's target
// is the top-level menu, and the bracket content supplies the
// remaining submenu/item names split on '>',
// e.g. menu:View[Zoom > Reset] -> ["View", "Zoom", "Reset"].
func splitMenuItems(target, raw string) []string {
	items := []string{target}
	for _, part := range strings.Split(raw, ">") {
		part = strings.TrimSpace(part)
		if part != "" {
			items = append(items, part)
		}
	}

	return items
}

func joinLexemes(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.Write(t.Lexeme)
	}

	return b.String()
}

// scanAutoLink consumes the URL target following a UriScheme token
// (itself already containing "scheme://"), stopping at whitespace or a
// trailing punctuation/closing-bracket character not usually part of a
// URL, per asciidoctor's bare-URL detection.
func (sp *spanParser) scanAutoLink(start int) (ast.Node, int) {
	scheme := sp.toks[start]
	i := start + 1
	var urlToks []token.Token
	for i < len(sp.toks) {
		t := sp.toks[i]
		if t.Kind == token.Whitespace || t.Kind == token.Newline {
			break
		}
		if t.Kind == token.CloseBracket || t.Kind == token.CloseParens ||
			t.Kind == token.GreaterThan || t.Kind == token.LessThan {
			break
		}
		urlToks = append(urlToks, t)
		i++
	}
	// Trailing sentence punctuation belongs to the prose, not the URL.
	for len(urlToks) > 0 && isTrailingURLPunct(urlToks[len(urlToks)-1].Kind) {
		urlToks = urlToks[:len(urlToks)-1]
		i--
	}
	target := scheme.Text() + joinLexemes(urlToks)
	loc := scheme.Loc
	if len(urlToks) > 0 {
		loc = loc.Extend(urlToks[len(urlToks)-1].Loc)
	}

	return ast.NewMacro(loc, ast.MacroAutoLink, target, nil, nil), i
}

func isTrailingURLPunct(k token.Kind) bool {
	switch k {
	case token.Dots, token.Comma, token.SemiColon, token.Colon:
		return true
	default:
		return false
	}
}
