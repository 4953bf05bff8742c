package inlineparser

import (
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/token"
)

// tryLitMono matches the literal-monospace form `+raw text+` (a
// Backtick immediately followed by Plus, closed by Plus immediately
// followed by Backtick). The inner text is preserved verbatim: no
// attribute expansion, no nested formatting.
func (sp *spanParser) tryLitMono(start int) (ast.Node, int, bool) {
	if start+2 >= len(sp.toks) || sp.toks[start+1].Kind != token.Plus {
		return nil, 0, false
	}
	for j := start + 2; j+1 < len(sp.toks); j++ {
		if sp.toks[j].Kind == token.Plus && sp.toks[j+1].Kind == token.Backtick {
			raw := joinLexemes(sp.toks[start+2 : j])
			loc := sp.toks[start].Loc.Extend(sp.toks[j+1].Loc)

			return ast.NewLiteralMonospace(loc, raw), j + 2, true
		}
	}

	return nil, 0, false
}

// tryPassthrough matches the plus-delimited pass-through forms, in
// precedence order: +++verbatim+++ (closed by another run of three),
// ++anywhere++ (mid-word allowed), and constrained +span+ (word
// boundaries required, like other constrained delimiters). The span's
// raw text bypasses all further substitutions.
func (sp *spanParser) tryPassthrough(start int) (ast.Node, int, bool) {
	run := 0
	for start+run < len(sp.toks) && sp.toks[start+run].Kind == token.Plus {
		run++
	}

	if run >= 3 {
		if node, next, ok := sp.closePlusRun(start, 3); ok {
			return node, next, true
		}
	}
	if run >= 2 {
		if node, next, ok := sp.closePlusRun(start, 2); ok {
			return node, next, true
		}
	}
	if start > 0 && isWordLike(sp.toks[start-1].Kind) {
		return nil, 0, false
	}
	if start+1 < len(sp.toks) && sp.toks[start+1].Kind == token.Whitespace {
		return nil, 0, false
	}
	for j := start + 1; j < len(sp.toks); j++ {
		if sp.toks[j].Kind != token.Plus {
			continue
		}
		if sp.toks[j-1].Kind == token.Whitespace {
			continue
		}
		if j+1 < len(sp.toks) && isWordLike(sp.toks[j+1].Kind) {
			continue
		}
		if j == start+1 {
			return nil, 0, false
		}
		raw := joinLexemes(sp.toks[start+1 : j])
		loc := sp.toks[start].Loc.Extend(sp.toks[j].Loc)

		return ast.NewInlinePassthrough(loc, raw), j + 1, true
	}

	return nil, 0, false
}

// closePlusRun looks for a closing run of at least n Plus tokens after
// an opening run of n, returning the enclosed raw text; the first n
// Plus tokens of that run close the span.
func (sp *spanParser) closePlusRun(start, n int) (ast.Node, int, bool) {
	for j := start + n; j < len(sp.toks); j++ {
		if sp.toks[j].Kind != token.Plus {
			continue
		}
		run := 0
		for j+run < len(sp.toks) && sp.toks[j+run].Kind == token.Plus {
			run++
		}
		if run < n {
			j += run

			continue
		}
		raw := joinLexemes(sp.toks[start+n : j])
		loc := sp.toks[start].Loc.Extend(sp.toks[j+n-1].Loc)

		return ast.NewInlinePassthrough(loc, raw), j + n, true
	}

	return nil, 0, false
}

// tryPassMacro parses pass:subs[content]. The target names which
// substitution groups still apply inside the brackets (a comma list of
// c, a, r, m, p, q, v, n letters); an empty target disables them all,
// yielding a raw InlinePassthrough. When the target re-enables some
// groups, the bracket content is re-parsed under that reduced policy
// and the resulting nodes are returned directly.
func (sp *spanParser) tryPassMacro(start int) ([]ast.Node, int, bool) {
	i := start + 1
	var targetToks []token.Token
	for i < len(sp.toks) && sp.toks[i].Kind != token.OpenBracket {
		targetToks = append(targetToks, sp.toks[i])
		i++
	}
	if i >= len(sp.toks) {
		return nil, 0, false
	}
	i++
	contentStart := i
	depth := 1
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
	contentToks := sp.toks[contentStart:i]
	target := joinLexemes(targetToks)
	loc := sp.toks[start].Loc.Extend(sp.toks[i].Loc)

	subs := SubsFromPassTarget(target)
	if subs == (Substitutions{}) {
		return []ast.Node{ast.NewInlinePassthrough(loc, joinLexemes(contentToks))}, i + 1, true
	}
	inner := &Parser{Store: sp.p.Store, Diags: sp.p.Diags, Anchors: sp.p.Anchors, Subs: subs}

	return inner.ParseTokens(contentToks), i + 1, true
}

// SubsFromPassTarget parses a pass: macro's target into a substitution
// policy: c (special chars), a (attr refs), r (char replacement),
// m (macros), p (post replacement), q (inline formatting/quotes),
// v (verbatim, same as c alone), n (normal, everything).
func SubsFromPassTarget(s string) Substitutions {
	var subs Substitutions
	for _, part := range strings.Split(s, ",") {
		switch strings.TrimSpace(part) {
		case "c":
			subs.SpecialChars = true
		case "a":
			subs.AttrRefs = true
		case "r":
			subs.CharReplacement = true
		case "m":
			subs.Macros = true
		case "p":
			subs.PostReplacement = true
		case "q":
			subs.InlineFormatting = true
		case "v":
			subs.SpecialChars = true
		case "n":
			subs = Normal()
		}
	}

	return subs
}
