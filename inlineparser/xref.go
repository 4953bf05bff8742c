package inlineparser

import (
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/attrs"
	"github.com/connerohnesorge/asciidork/diag"
	"github.com/connerohnesorge/asciidork/token"
)

// tryShorthandXref matches `<<id>>` or `<<id,linktext>>` starting at a
// LessThan token immediately followed by a second LessThan.
// The closing `>>` must occur later in the same token run; the
// linktext half (if present) is kept as literal text rather than
// re-parsed, matching xref:'s own attrs.First() treatment so shorthand
// and macro forms share one reftext-quoting rule.
func (sp *spanParser) tryShorthandXref(start int) (ast.Node, int, bool) {
	if start+1 >= len(sp.toks) || sp.toks[start+1].Kind != token.LessThan {
		return nil, 0, false
	}
	i := start + 2
	if i >= len(sp.toks) || sp.toks[i].Kind == token.LessThan {
		return nil, 0, false
	}

	var targetToks []token.Token
	for i < len(sp.toks) {
		t := sp.toks[i]
		if t.Kind == token.Comma {
			break
		}
		if t.Kind == token.GreaterThan && i+1 < len(sp.toks) && sp.toks[i+1].Kind == token.GreaterThan {
			break
		}
		targetToks = append(targetToks, t)
		i++
	}
	if i >= len(sp.toks) || len(targetToks) == 0 {
		return nil, 0, false
	}

	var linktext string
	if sp.toks[i].Kind == token.Comma {
		i++
		var textToks []token.Token
		for i < len(sp.toks) {
			t := sp.toks[i]
			if t.Kind == token.GreaterThan && i+1 < len(sp.toks) && sp.toks[i+1].Kind == token.GreaterThan {
				break
			}
			textToks = append(textToks, t)
			i++
		}
		if i >= len(sp.toks) {
			return nil, 0, false
		}
		linktext = strings.TrimSpace(joinLexemes(textToks))
	}
	if i+1 >= len(sp.toks) || sp.toks[i].Kind != token.GreaterThan || sp.toks[i+1].Kind != token.GreaterThan {
		return nil, 0, false
	}

	target := strings.TrimPrefix(joinLexemes(targetToks), "#")
	loc := sp.toks[start].Loc.Extend(sp.toks[i+1].Loc)

	var al *attrs.AttrList
	if linktext != "" {
		al = attrs.LiteralPositional(linktext)
	}

	return ast.NewMacro(loc, ast.MacroXref, target, al, nil), i + 2, true
}

// tryInlineAnchor matches `[[id]]` or `[[id,reftext]]` at inline
// position, registering the anchor and yielding an InlineAnchor node.
func (sp *spanParser) tryInlineAnchor(start int) (ast.Node, int, bool) {
	i := start + 2
	var inner []token.Token
	for i+1 < len(sp.toks) {
		if sp.toks[i].Kind == token.CloseBracket && sp.toks[i+1].Kind == token.CloseBracket {
			break
		}
		inner = append(inner, sp.toks[i])
		i++
	}
	if i+1 >= len(sp.toks) || len(inner) == 0 {
		return nil, 0, false
	}

	id := joinLexemes(inner)
	reftext := ""
	if c := strings.Index(id, ","); c >= 0 {
		id, reftext = id[:c], strings.TrimSpace(id[c+1:])
	}
	loc := sp.toks[start].Loc.Extend(sp.toks[i+1].Loc)
	sp.registerAnchor(id, reftext, loc)

	return ast.NewInlineAnchor(loc, id, reftext), i + 2, true
}

// tryAnchorMacro matches the `anchor:id[reftext]` macro form.
func (sp *spanParser) tryAnchorMacro(start int) (ast.Node, int, bool) {
	i := start + 1
	var idToks []token.Token
	for i < len(sp.toks) && sp.toks[i].Kind != token.OpenBracket {
		idToks = append(idToks, sp.toks[i])
		i++
	}
	if i >= len(sp.toks) || len(idToks) == 0 {
		return nil, 0, false
	}
	i++
	refStart := i
	for i < len(sp.toks) && sp.toks[i].Kind != token.CloseBracket {
		i++
	}
	if i >= len(sp.toks) {
		return nil, 0, false
	}

	id := joinLexemes(idToks)
	reftext := strings.TrimSpace(joinLexemes(sp.toks[refStart:i]))
	loc := sp.toks[start].Loc.Extend(sp.toks[i].Loc)
	sp.registerAnchor(id, reftext, loc)

	return ast.NewInlineAnchor(loc, id, reftext), i + 1, true
}

func (sp *spanParser) registerAnchor(id, reftext string, loc token.Location) {
	if sp.p.Anchors == nil || id == "" {
		return
	}
	if !sp.p.Anchors.Register(ast.Anchor{ID: id, Reftext: reftext, Loc: loc}) && sp.p.Diags != nil {
		sp.p.Diags.Warn(loc, diag.Code("duplicate_anchor"), "duplicate anchor id %q", id)
	}
}
