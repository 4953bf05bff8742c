package inlineparser

import (
	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/token"
)

// tryFormatted attempts to match a bold/italic/mono/highlight/
// superscript/subscript span starting at sp.toks[start], which must be
// a formatting delimiter kind. It returns the built node and the index
// just past the closing delimiter on success.
//
// Star/Underscore/Backtick/Hash support both the constrained single-
// delimiter form (*bold*, requiring a word boundary outside and no
// leading/trailing space inside) and the unconstrained doubled form
// (**bold**, no boundary requirement). Caret/Tilde (superscript/
// subscript) are always unconstrained single-delimiter and must not
// contain whitespace.
func (sp *spanParser) tryFormatted(start int) (ast.Node, int, bool) {
	kind := sp.toks[start].Kind
	if kind == token.Caret || kind == token.Tilde {
		return sp.tryTightUnconstrained(start, kind)
	}

	doubled := start+1 < len(sp.toks) && sp.toks[start+1].Kind == kind
	if doubled {
		if node, next, ok := sp.tryDoubled(start, kind); ok {
			return node, next, true
		}
		// Fall through: maybe it's two adjacent constrained spans, not
		// one unconstrained one. Rare in practice; just try constrained.
	}

	return sp.tryConstrained(start, kind)
}

func (sp *spanParser) tryConstrained(start int, kind token.Kind) (ast.Node, int, bool) {
	if start > 0 && isWordLike(sp.toks[start-1].Kind) {
		return nil, 0, false
	}
	if start+1 >= len(sp.toks) {
		return nil, 0, false
	}
	if sp.toks[start+1].Kind == token.Whitespace {
		return nil, 0, false
	}

	for j := start + 1; j < len(sp.toks); j++ {
		if sp.toks[j].Kind != kind {
			continue
		}
		if sp.toks[j-1].Kind == token.Whitespace {
			continue // no trailing space inside a constrained span
		}
		if j+1 < len(sp.toks) && isWordLike(sp.toks[j+1].Kind) {
			continue // no word boundary after closer
		}
		content := sp.toks[start+1 : j]
		loc := sp.toks[start].Loc.Extend(sp.toks[j].Loc)
		node := buildFormatted(kind, loc, sp.p.ParseTokens(content), false)

		return node, j + 1, true
	}

	return nil, 0, false
}

func (sp *spanParser) tryDoubled(start int, kind token.Kind) (ast.Node, int, bool) {
	// start, start+1 are both `kind`. Find the next adjacent pair.
	for j := start + 2; j+1 < len(sp.toks); j++ {
		if sp.toks[j].Kind == kind && sp.toks[j+1].Kind == kind {
			content := sp.toks[start+2 : j]
			loc := sp.toks[start].Loc.Extend(sp.toks[j+1].Loc)
			node := buildFormatted(kind, loc, sp.p.ParseTokens(content), true)

			return node, j + 2, true
		}
	}

	return nil, 0, false
}

// tryTightUnconstrained matches ^sup^ / ~sub~: a single delimiter pair
// with no whitespace token anywhere in between, closing on the same
// line it opened.
func (sp *spanParser) tryTightUnconstrained(start int, kind token.Kind) (ast.Node, int, bool) {
	for j := start + 1; j < len(sp.toks); j++ {
		if sp.toks[j].Kind == token.Whitespace || sp.toks[j].Kind == token.Newline {
			return nil, 0, false
		}
		if sp.toks[j].Kind == kind {
			if j == start+1 {
				return nil, 0, false // empty span
			}
			content := sp.toks[start+1 : j]
			loc := sp.toks[start].Loc.Extend(sp.toks[j].Loc)
			parsed := sp.p.ParseTokens(content)
			var node ast.Node
			if kind == token.Caret {
				node = ast.NewSuperscript(loc, parsed)
			} else {
				node = ast.NewSubscript(loc, parsed)
			}

			return node, j + 1, true
		}
	}

	return nil, 0, false
}

func buildFormatted(kind token.Kind, loc token.Location, content []ast.Node, unconstrained bool) ast.Node {
	switch kind {
	case token.Star:
		return ast.NewBold(loc, content, nil, unconstrained)
	case token.Underscore:
		return ast.NewItalic(loc, content, nil, unconstrained)
	case token.Backtick:
		return ast.NewMono(loc, content, nil, unconstrained)
	case token.Hash:
		return ast.NewHighlight(loc, content, nil, unconstrained)
	default:
		return ast.NewText(loc, "")
	}
}
