// Package inlineparser implements the recursive, substitution-policy
// controlled inline parser: constrained/unconstrained delimited
// formatting, pass-through spans, macros, auto-links, character
// entities, and character/quote replacement.
//
// The scan is mode-aware: the active Substitutions policy decides
// which constructs are even looked for, and the
// constrained-vs-unconstrained delimiter matching rules this package
// reimplements token-at-a-time instead of over a persistent deque.
package inlineparser

import (
	"strconv"
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/attrs"
	"github.com/connerohnesorge/asciidork/diag"
	"github.com/connerohnesorge/asciidork/line"
	"github.com/connerohnesorge/asciidork/token"
)

// Substitutions controls which of the six substitution groups run.
// A literal/raw block applies none of them; a normal
// paragraph applies all.
type Substitutions struct {
	SpecialChars     bool
	AttrRefs         bool
	CharReplacement  bool
	Macros           bool
	PostReplacement  bool
	InlineFormatting bool
}

// Normal is the substitution set applied to ordinary paragraph content.
func Normal() Substitutions {
	return Substitutions{true, true, true, true, true, true}
}

// Verbatim is the substitution set applied to most literal/listing
// content: only special-char escaping runs, so `<`, `>`, `&` remain
// safe to embed in an HTML-compatible backend's output.
func Verbatim() Substitutions {
	return Substitutions{SpecialChars: true}
}

// Parser holds the shared, read-only state for one inline-parsing pass:
// the attribute store (read-only here; the block parser is its sole
// writer) and a diagnostic bag.
type Parser struct {
	Store *attrs.Store
	Diags *diag.Bag
	// Anchors, when non-nil, receives every [[id]]/anchor: declaration
	// encountered so later xrefs can resolve against it.
	Anchors *ast.AnchorRegistry
	Subs    Substitutions
	// Missing selects the handling of a `{name}` reference to an unset
	// attribute; the zero value keeps the reference as literal text.
	Missing attrs.AttrMissing
}

// New creates an inline Parser.
func New(store *attrs.Store, diags *diag.Bag, subs Substitutions) *Parser {
	return &Parser{Store: store, Diags: diags, Subs: subs}
}

// ParseContiguousLines parses a run of lines with no intervening blank
// line as one flat token stream, so constrained/unconstrained spans
// balance across line boundaries. Line ends become JoiningNewline
// nodes, or LineBreak for an explicit trailing ` +` (when post
// replacement is enabled); the marker distinction travels through the
// stream as the synthesized Newline token's lexeme.
func (p *Parser) ParseContiguousLines(cl *line.ContiguousLines) []ast.Node {
	var toks []token.Token
	lines := cl.Lines()
	for i, l := range lines {
		lt := l.Tokens()
		hardBreak := false
		if n := len(lt); p.Subs.PostReplacement && n >= 2 &&
			lt[n-1].Kind == token.Plus &&
			lt[n-2].Kind == token.Whitespace &&
			len(lt[n-2].Lexeme) == 1 {
			hardBreak = true
			lt = lt[:n-2]
		}
		toks = append(toks, lt...)
		if i < len(lines)-1 || hardBreak {
			nl := token.Token{Kind: token.Newline, Lexeme: []byte("\n"), Loc: l.Location()}
			if hardBreak {
				nl.Lexeme = []byte("+\n")
			}
			toks = append(toks, nl)
		}
	}

	return p.ParseTokens(toks)
}

// ParseTokens parses one flat run of tokens (already assembled from a
// single line, or a bracketed macro target/label) into inline nodes.
func (p *Parser) ParseTokens(toks []token.Token) []ast.Node {
	sp := &spanParser{p: p, toks: toks}

	return sp.run()
}

type spanParser struct {
	p          *Parser
	toks       []token.Token
	pos        int
	buf        []token.Token
	expansions int
}

// maxAttrExpansions bounds nested {a}-expands-to-{b} chains so a
// self-referential attribute cannot loop the parser.
const maxAttrExpansions = 64

//nolint:gocyclo,revive // ordered dispatch over the whole inline grammar
func (sp *spanParser) run() []ast.Node {
	var out []ast.Node
	emit := func(nodes ...ast.Node) {
		out = append(out, sp.flush()...)
		out = append(out, nodes...)
	}
	for sp.pos < len(sp.toks) {
		t := sp.toks[sp.pos]
		switch {
		case t.Kind == token.Whitespace && len(t.Lexeme) > 1:
			emit(ast.NewMultiCharWhitespace(t.Loc))
			sp.pos++

		case t.Kind == token.Newline:
			if t.Lexeme[0] == '+' {
				emit(ast.NewLineBreak(t.Loc))
			} else {
				emit(ast.NewJoiningNewline(t.Loc))
			}
			sp.pos++

		case t.Kind == token.CalloutNumber:
			emit(ast.NewCalloutNum(t.Loc, calloutNumberOf(t.Text())))
			sp.pos++

		case t.Kind == token.Backslash:
			out = append(out, sp.flush()...)
			if sp.pos+1 < len(sp.toks) {
				esc := sp.toks[sp.pos+1]
				out = append(out, ast.NewText(esc.Loc, esc.Text()))
				sp.pos += 2
			} else {
				sp.pos++
			}

		case sp.p.Subs.InlineFormatting && t.Kind == token.Backtick && sp.nextKind() == token.Plus:
			if node, next, ok := sp.tryLitMono(sp.pos); ok {
				emit(node)
				sp.pos = next
			} else {
				sp.buf = append(sp.buf, t)
				sp.pos++
			}

		case sp.p.Subs.CharReplacement && isQuoteOpener(t.Kind) && sp.nextKind() == token.Backtick:
			emit(ast.NewCurlyQuote(t.Loc.Extend(sp.toks[sp.pos+1].Loc), leftQuoteKind(t.Kind)))
			sp.pos += 2

		case sp.p.Subs.CharReplacement && t.Kind == token.Backtick && isQuoteOpener(sp.nextKind()):
			emit(ast.NewCurlyQuote(t.Loc.Extend(sp.toks[sp.pos+1].Loc), rightQuoteKind(sp.toks[sp.pos+1].Kind)))
			sp.pos += 2

		case sp.p.Subs.InlineFormatting && isFormattingDelim(t.Kind):
			if node, next, ok := sp.tryFormatted(sp.pos); ok {
				emit(node)
				sp.pos = next
			} else {
				sp.buf = append(sp.buf, t)
				sp.pos++
			}

		case sp.p.Subs.InlineFormatting && t.Kind == token.Plus:
			if node, next, ok := sp.tryPassthrough(sp.pos); ok {
				emit(node)
				sp.pos = next
			} else {
				sp.buf = append(sp.buf, t)
				sp.pos++
			}

		case t.Kind == token.LessThan:
			sp.dispatchLessThan(&out, t)

		case t.Kind == token.GreaterThan:
			if sym, ok := sp.takeArrowTail(sp.p.Subs.CharReplacement); ok {
				emit(ast.NewSymbol(t.Loc, sym))
				sp.pos++
			} else if sp.p.Subs.SpecialChars {
				emit(ast.NewSpecialChar(t.Loc, t.Lexeme[0]))
				sp.pos++
			} else {
				sp.buf = append(sp.buf, t)
				sp.pos++
			}

		case sp.p.Subs.SpecialChars && t.Kind == token.Ampersand:
			emit(ast.NewSpecialChar(t.Loc, t.Lexeme[0]))
			sp.pos++

		case t.Kind == token.Entity:
			emit(ast.NewText(t.Loc, t.Text()))
			sp.pos++

		case sp.p.Subs.AttrRefs && t.Kind == token.AttrRef:
			if toks, ok := sp.expandAttrRef(t); ok {
				sp.toks = append(sp.toks[:sp.pos:sp.pos], append(toks, sp.toks[sp.pos+1:]...)...)
			} else {
				emit(ast.NewText(t.Loc, t.Text()))
				sp.pos++
			}

		case sp.p.Subs.Macros && t.Kind == token.MacroName:
			if nodes, next, ok := sp.tryNamedConstruct(sp.pos, t); ok {
				emit(nodes...)
				sp.pos = next
			} else {
				sp.buf = append(sp.buf, t)
				sp.pos++
			}

		case sp.p.Subs.Macros && t.Kind == token.UriScheme:
			node, next := sp.scanAutoLink(sp.pos)
			emit(node)
			sp.pos = next

		case sp.p.Subs.Macros && t.Kind == token.MaybeEmail:
			emit(ast.NewMacro(t.Loc, ast.MacroMailto, t.Text(), nil, nil))
			sp.pos++

		case sp.p.Subs.Macros && t.Kind == token.OpenBracket && sp.nextKind() == token.OpenBracket:
			if node, next, ok := sp.tryInlineAnchor(sp.pos); ok {
				emit(node)
				sp.pos = next
			} else {
				sp.buf = append(sp.buf, t)
				sp.pos++
			}

		default:
			sp.buf = append(sp.buf, t)
			sp.pos++
		}
	}
	out = append(out, sp.flush()...)

	return out
}

// dispatchLessThan resolves the competing readings of a '<': a
// shorthand <<xref>>, an angle-bracketed <URL> autolink (the brackets
// become Discarded nodes), a <- / <= arrow, a special character, or
// plain text.
func (sp *spanParser) dispatchLessThan(out *[]ast.Node, t token.Token) {
	if sp.p.Subs.Macros {
		if node, next, ok := sp.tryShorthandXref(sp.pos); ok {
			*out = append(*out, sp.flush()...)
			*out = append(*out, node)
			sp.pos = next

			return
		}
		if sp.nextKind() == token.UriScheme {
			*out = append(*out, sp.flush()...)
			*out = append(*out, ast.NewDiscarded(t.Loc))
			node, next := sp.scanAutoLink(sp.pos + 1)
			*out = append(*out, node)
			if next < len(sp.toks) && sp.toks[next].Kind == token.GreaterThan {
				*out = append(*out, ast.NewDiscarded(sp.toks[next].Loc))
				next++
			}
			sp.pos = next

			return
		}
	}
	if sp.p.Subs.CharReplacement {
		if sym, n, ok := sp.leftArrowAt(sp.pos); ok {
			*out = append(*out, sp.flush()...)
			*out = append(*out, ast.NewSymbol(t.Loc, sym))
			sp.pos += n

			return
		}
	}
	if sp.p.Subs.SpecialChars {
		*out = append(*out, sp.flush()...)
		*out = append(*out, ast.NewSpecialChar(t.Loc, t.Lexeme[0]))
		sp.pos++

		return
	}
	sp.buf = append(sp.buf, t)
	sp.pos++
}

// tryNamedConstruct routes a MacroName token to the right parser:
// pass: has its own substitution-policy handling, anchor: yields an
// InlineAnchor rather than a Macro, and everything else goes through
// tryMacro.
func (sp *spanParser) tryNamedConstruct(start int, t token.Token) ([]ast.Node, int, bool) {
	switch t.Text() {
	case "pass:":
		return sp.tryPassMacro(start)
	case "anchor:":
		if node, next, ok := sp.tryAnchorMacro(start); ok {
			return []ast.Node{node}, next, true
		}

		return nil, 0, false
	default:
		if node, next, ok := sp.tryMacro(start); ok {
			return []ast.Node{node}, next, true
		}

		return nil, 0, false
	}
}

// nextKind returns the kind of the token after the current position,
// or Eof when at the end of the run.
func (sp *spanParser) nextKind() token.Kind {
	if sp.pos+1 >= len(sp.toks) {
		return token.Eof
	}

	return sp.toks[sp.pos+1].Kind
}

// takeArrowTail checks whether the buffered text ends with the first
// half of a -> or => arrow; if so it removes that token from the buffer
// and returns the matching symbol name. A disabled char-replacement
// policy leaves the buffer untouched.
func (sp *spanParser) takeArrowTail(enabled bool) (string, bool) {
	if !enabled || len(sp.buf) == 0 {
		return "", false
	}
	last := sp.buf[len(sp.buf)-1]
	var sym string
	switch {
	case last.Kind == token.Dashes && len(last.Lexeme) == 1:
		sym = "rightarrow"
	case last.Kind == token.EqualSigns && len(last.Lexeme) == 1:
		sym = "rightdoublearrow"
	default:
		return "", false
	}
	sp.buf = sp.buf[:len(sp.buf)-1]

	return sym, true
}

// leftArrowAt matches <- and <= starting at a LessThan token, returning
// the symbol name and how many tokens it spans.
func (sp *spanParser) leftArrowAt(start int) (string, int, bool) {
	if start+1 >= len(sp.toks) {
		return "", 0, false
	}
	next := sp.toks[start+1]
	switch {
	case next.Kind == token.Dashes && len(next.Lexeme) == 1:
		return "leftarrow", 2, true
	case next.Kind == token.EqualSigns && len(next.Lexeme) == 1:
		return "leftdoublearrow", 2, true
	default:
		return "", 0, false
	}
}

func isQuoteOpener(k token.Kind) bool {
	return k == token.DoubleQuote || k == token.SingleQuote
}

func leftQuoteKind(k token.Kind) ast.CurlyQuoteKind {
	if k == token.SingleQuote {
		return ast.LeftSingleQuote
	}

	return ast.LeftDoubleQuote
}

func rightQuoteKind(k token.Kind) ast.CurlyQuoteKind {
	if k == token.SingleQuote {
		return ast.RightSingleQuote
	}

	return ast.RightDoubleQuote
}

// calloutNumberOf extracts N from a "<N>" callout lexeme; the
// auto-numbered "<.>" form yields 0.
func calloutNumberOf(lexeme string) int {
	inner := strings.TrimSuffix(strings.TrimPrefix(lexeme, "<"), ">")
	n, err := strconv.Atoi(inner)
	if err != nil {
		return 0
	}

	return n
}

// expandAttrRef resolves a {name} reference by re-lexing the
// attribute's value through a temporary buffer whose tokens all carry
// the reference's own location, then splicing the result in place of
// the reference - a construct inside the value (formatting, a URL,
// another {ref}) is recognized as if written at the reference site,
// while diagnostics still point at the {name} in the real source. It
// returns false when the attribute is unset and the missing policy
// keeps the reference literal.
func (sp *spanParser) expandAttrRef(ref token.Token) ([]token.Token, bool) {
	if sp.expansions >= maxAttrExpansions {
		return nil, false
	}
	sp.expansions++
	stack := token.NewSourceStack("", nil)
	if !attrs.Expand(stack, sp.p.Store, ref, sp.p.Missing) {
		return nil, false
	}
	lx := token.NewLexer(stack)
	var out []token.Token
	for {
		t := lx.Next()
		if t.Kind == token.Eof {
			break
		}
		out = append(out, t)
	}

	return out, true
}

// flush converts the buffered plain-token run into Text/Symbol/
// CurlyQuote nodes via textToNodes, and clears the buffer.
func (sp *spanParser) flush() []ast.Node {
	if len(sp.buf) == 0 {
		return nil
	}
	loc := sp.buf[0].Loc
	var s []byte
	for _, t := range sp.buf {
		loc = loc.Extend(t.Loc)
		s = append(s, t.Lexeme...)
	}
	sp.buf = nil

	return textToNodes(string(s), loc, sp.p.Subs)
}

func isFormattingDelim(k token.Kind) bool {
	switch k {
	case token.Star, token.Underscore, token.Backtick, token.Hash, token.Caret, token.Tilde:
		return true
	default:
		return false
	}
}

func isWordLike(k token.Kind) bool {
	return k == token.Word || k == token.Digits
}
