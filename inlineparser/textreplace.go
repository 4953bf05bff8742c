package inlineparser

import (
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/token"
)

type replacement struct {
	pattern string
	symbol  string
}

// charReplacements lists the character-replacement substitution table
// entries this implementation recognizes, checked longest-pattern
// first so "(TM)" is not mistaken for a literal "(T" followed by "M)".
var charReplacements = []replacement{
	{"(TM)", "trademark"},
	{"(R)", "registered"},
	{"(C)", "copyright"},
	{"...", "ellipsis"},
	{"--", "emdash"},
}

// textToNodes converts one contiguous plain-text run into Text/Symbol/
// CurlyQuote nodes, applying character replacement and naive smart-
// quote detection. Every emitted node shares loc, the run's overall
// location - a simplification documented in DESIGN.md; per-rune
// locations would require tracking an offset back to the owning token,
// which the lexer's token-per-run design does not preserve once
// lexemes are concatenated into a string.
func textToNodes(s string, loc token.Location, subs Substitutions) []ast.Node {
	var out []ast.Node
	var plain strings.Builder
	flushPlain := func() {
		if plain.Len() > 0 {
			out = append(out, ast.NewText(loc, plain.String()))
			plain.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); {
		if subs.CharReplacement {
			if sym, n, ok := matchReplacement(runes[i:]); ok {
				flushPlain()
				out = append(out, ast.NewSymbol(loc, sym))
				i += n

				continue
			}
		}
		if subs.CharReplacement && runes[i] == '\'' {
			if isApostropheContext(runes, i) {
				flushPlain()
				out = append(out, ast.NewCurlyQuote(loc, ast.Apostrophe))
				i++

				continue
			}
		}
		if subs.CharReplacement && runes[i] == '"' {
			if kind, ok := smartDoubleQuoteKind(runes, i); ok {
				flushPlain()
				out = append(out, ast.NewCurlyQuote(loc, kind))
				i++

				continue
			}
		}
		plain.WriteRune(runes[i])
		i++
	}
	flushPlain()

	return out
}

func matchReplacement(rs []rune) (string, int, bool) {
	for _, r := range charReplacements {
		n := len(r.pattern)
		if len(rs) < n {
			continue
		}
		if string(rs[:n]) == r.pattern {
			return r.symbol, n, true
		}
	}

	return "", 0, false
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// isApostropheContext reports whether the ' at position i sits between
// two word characters, e.g. "don't", "y'all".
func isApostropheContext(rs []rune, i int) bool {
	return i > 0 && i+1 < len(rs) && isWordRune(rs[i-1]) && isWordRune(rs[i+1])
}

// smartDoubleQuoteKind distinguishes an opening `"` (followed directly
// by a word character) from a closing `"` (preceded directly by one).
func smartDoubleQuoteKind(rs []rune, i int) (ast.CurlyQuoteKind, bool) {
	before := i > 0 && isWordRune(rs[i-1])
	after := i+1 < len(rs) && isWordRune(rs[i+1])
	switch {
	case after && !before:
		return ast.LeftDoubleQuote, true
	case before && !after:
		return ast.RightDoubleQuote, true
	default:
		return 0, false
	}
}
