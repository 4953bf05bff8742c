// Package line provides the Line/ContiguousLines abstractions the block
// and inline parsers consume: a token-backed view of one source line,
// and a run of lines treated as a single logical unit.
package line

import "github.com/connerohnesorge/asciidork/token"

// Line is one source line's tokens (Newline excluded), plus a flag set
// eagerly at construction time for inline-pass-through detection.
type Line struct {
	tokens []token.Token
	origLen int

	// MayContainInlinePass is set when a MacroName token with lexeme
	// "pass:" appears, or a short Plus token not preceded by a Backtick
	// - both signal the inline parser should look for a pass-through
	// span before running other substitutions.
	MayContainInlinePass bool
}

// NewLine builds a Line from a run of tokens already known to belong to
// one logical line (Newline tokens should not be included).
func NewLine(toks []token.Token) *Line {
	l := &Line{tokens: append([]token.Token{}, toks...)}
	l.origLen = len(l.tokens)
	l.recomputePassFlag()

	return l
}

func (l *Line) recomputePassFlag() {
	var prev token.Token
	hasPrev := false
	for _, t := range l.tokens {
		if t.Kind == token.MacroName && t.Text() == "pass:" {
			l.MayContainInlinePass = true

			return
		}
		if t.Kind == token.Plus && !(hasPrev && prev.Kind == token.Backtick) {
			l.MayContainInlinePass = true

			return
		}
		prev = t
		hasPrev = true
	}
}

// Push appends a token to the end of the line, updating
// MayContainInlinePass eagerly per the same rule used at construction
// rather than deferring to a late scan.
func (l *Line) Push(t token.Token) {
	if !l.MayContainInlinePass {
		if t.Kind == token.MacroName && t.Text() == "pass:" {
			l.MayContainInlinePass = true
		} else if t.Kind == token.Plus {
			prevIsBacktick := len(l.tokens) > 0 && l.tokens[len(l.tokens)-1].Kind == token.Backtick
			if !prevIsBacktick {
				l.MayContainInlinePass = true
			}
		}
	}
	l.tokens = append(l.tokens, t)
}

// Tokens returns the line's tokens in order. Callers must not mutate
// the returned slice.
func (l *Line) Tokens() []token.Token {
	return l.tokens
}

// NumTokens returns the number of tokens remaining on the line.
func (l *Line) NumTokens() int {
	return len(l.tokens)
}

// OrigLen returns the token count at construction time, before any
// Shift/PopFront calls - used by HeadingLevel's "> 2" guard, which must
// reason about the line's original shape.
func (l *Line) OrigLen() int {
	return l.origLen
}

// IsEmpty reports whether the line has no tokens left.
func (l *Line) IsEmpty() bool {
	return len(l.tokens) == 0
}

// Current returns the first remaining token without consuming it.
func (l *Line) Current() (token.Token, bool) {
	if len(l.tokens) == 0 {
		return token.Token{}, false
	}

	return l.tokens[0], true
}

// Nth returns the token n positions ahead of the front (0 = Current)
// without consuming anything.
func (l *Line) Nth(n int) (token.Token, bool) {
	if n < 0 || n >= len(l.tokens) {
		return token.Token{}, false
	}

	return l.tokens[n], true
}

// Shift removes and returns the first remaining token.
func (l *Line) Shift() (token.Token, bool) {
	if len(l.tokens) == 0 {
		return token.Token{}, false
	}
	t := l.tokens[0]
	l.tokens = l.tokens[1:]

	return t, true
}

// Last returns the line's final token without consuming it.
func (l *Line) Last() (token.Token, bool) {
	if len(l.tokens) == 0 {
		return token.Token{}, false
	}

	return l.tokens[len(l.tokens)-1], true
}

// Pop removes and returns the last remaining token.
func (l *Line) Pop() (token.Token, bool) {
	if len(l.tokens) == 0 {
		return token.Token{}, false
	}
	t := l.tokens[len(l.tokens)-1]
	l.tokens = l.tokens[:len(l.tokens)-1]

	return t, true
}

// StartsWith reports whether the first remaining token has kind k.
func (l *Line) StartsWith(k token.Kind) bool {
	t, ok := l.Current()

	return ok && t.Kind == k
}

// ContainsKind reports whether any remaining token has kind k.
func (l *Line) ContainsKind(k token.Kind) bool {
	for _, t := range l.tokens {
		if t.Kind == k {
			return true
		}
	}

	return false
}

// EndsWithNonEscaped reports whether the last remaining token has kind
// k and was not immediately preceded by a Backslash token (used by
// IsBlockMacro to check an un-escaped closing bracket).
func (l *Line) EndsWithNonEscaped(k token.Kind) bool {
	if len(l.tokens) == 0 || l.tokens[len(l.tokens)-1].Kind != k {
		return false
	}
	if len(l.tokens) < 2 {
		return true
	}

	return l.tokens[len(l.tokens)-2].Kind != token.Backslash
}

// HeadingLevel returns the ATX heading level (1-based) if the line is
// shaped like "== Title", i.e. an EqualSigns run followed by
// Whitespace, requiring more than two original tokens so a bare "==" or
// "== " line (no title) is not mistaken for a heading.
func (l *Line) HeadingLevel() (int, bool) {
	if l.origLen <= 2 {
		return 0, false
	}
	first, ok := l.Nth(0)
	if !ok || first.Kind != token.EqualSigns {
		return 0, false
	}
	second, ok := l.Nth(1)
	if !ok || second.Kind != token.Whitespace {
		return 0, false
	}

	return len(first.Lexeme), true
}

// IsHeading reports whether the line is shaped like a heading.
func (l *Line) IsHeading() bool {
	_, ok := l.HeadingLevel()

	return ok
}

// IsBlockMacro reports whether the line is shaped like a block macro:
// MacroName token, containing an OpenBracket, and ending with a
// non-escaped CloseBracket.
func (l *Line) IsBlockMacro() bool {
	first, ok := l.Nth(0)

	return ok && first.Kind == token.MacroName &&
		l.ContainsKind(token.OpenBracket) &&
		l.EndsWithNonEscaped(token.CloseBracket)
}

// Reconstitute joins the remaining tokens' lexemes back into a string,
// used for diagnostics and for re-lexing a cell's contents as its own
// sub-document.
func (l *Line) Reconstitute() string {
	var out []byte
	for _, t := range l.tokens {
		out = append(out, t.Lexeme...)
	}

	return string(out)
}

// Location returns the union of the remaining tokens' locations, or the
// zero Location if the line is empty.
func (l *Line) Location() token.Location {
	if len(l.tokens) == 0 {
		return token.Location{}
	}
	loc := l.tokens[0].Loc
	for _, t := range l.tokens[1:] {
		loc = loc.Extend(t.Loc)
	}

	return loc
}
