package blockparser

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/diag"
	"github.com/connerohnesorge/asciidork/token"
)

// lowerer is a reusable cases.Caser; cases.Caser is safe for concurrent
// use once constructed (it holds no mutable state of its own), so one
// package-level instance is shared across all slugify calls instead of
// rebuilding it per heading.
var lowerer = cases.Lower(language.Und)

// parseSection consumes one heading line plus its body, recursing for
// any nested subsections. An explicit level stack is unnecessary
// since Go's call stack already gives us one. A heading of N equal
// signs opens a section of level N-1 (a lone "=" is the document
// title, level 0).
func (p *Parser) parseSection(meta blockMetadata) (ast.Block, error) {
	l, _ := p.peekLine()
	count, _ := l.HeadingLevel()
	level := count - 1 + p.leveloffset()
	loc := l.Location()
	titleToks := l.Tokens()[2:]
	id := explicitAnchorID(titleToks)
	if id != "" {
		titleToks = trimTrailingAnchor(titleToks)
	}
	if id == "" && meta.attrs != nil {
		id = meta.attrs.ID
	}
	title := p.inlineOf(titleToks)
	p.pos++

	if id == "" {
		id = p.generateID(titleToks)
	}
	reftext := ""
	if meta.attrs != nil {
		reftext, _ = meta.attrs.NamedValue("reftext")
	}
	p.registerAnchor(id, reconstitute(titleToks), reftext, loc)

	body, err := p.parseBlocks(level)
	if err != nil {
		return nil, err
	}

	return ast.NewSection(loc, level, title, id, body), nil
}

// parseDiscreteHeading consumes a heading line carrying the `discrete`
// style: it renders as a heading but opens no section of its own, so no
// body is attached.
func (p *Parser) parseDiscreteHeading(meta blockMetadata) (ast.Block, error) {
	l, _ := p.peekLine()
	count, _ := l.HeadingLevel()
	loc := l.Location()
	titleToks := l.Tokens()[2:]
	title := p.inlineOf(titleToks)
	p.pos++

	id := ""
	if meta.attrs != nil {
		id = meta.attrs.ID
	}
	if id == "" {
		id = p.generateID(titleToks)
	}
	p.registerAnchor(id, reconstitute(titleToks), "", loc)

	return ast.NewDiscreteHeading(loc, count-1, title, id), nil
}

func isDiscrete(a *ast.AttrList) bool {
	if a == nil {
		return false
	}
	if a.First() == "discrete" {
		return true
	}
	for _, r := range a.Roles {
		if r == "discrete" {
			return true
		}
	}

	return false
}

// leveloffset reads the leveloffset document attribute ("+1", "-1",
// "2") as a shift applied to every subsequent heading's level.
func (p *Parser) leveloffset() int {
	v, ok := p.store.Get("leveloffset")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(v, "+"))
	if err != nil {
		return 0
	}

	return n
}

// registerAnchor registers a section's generated or explicit id. The
// title text becomes the anchor's default link text; an explicit
// reftext attribute, when present, outranks it during xref resolution.
func (p *Parser) registerAnchor(id, titleText, reftext string, loc token.Location) {
	if id == "" {
		return
	}
	if !p.anchors.Register(ast.Anchor{ID: id, Title: titleText, Reftext: reftext, Loc: loc}) {
		p.diags.Warn(loc, diag.Code("duplicate_anchor"), "duplicate anchor id %q", id)
	}
}

// generateID slugifies a heading's rendered text into a unique anchor
// id, per asciidoctor's default `[[_lowercase_words]]` scheme: lower
// the text, replace runs of non-word characters with the `idseparator`
// attribute (default `_`), prepend `idprefix` (default `_`), then
// disambiguate collisions with a numeric suffix
// (`_tigers_subspecies`, `_tigers_subspecies_2`, ...).
func (p *Parser) generateID(titleToks []token.Token) string {
	prefix := "_"
	if v, ok := p.store.Get("idprefix"); ok {
		prefix = v
	}
	sep := "_"
	if v, ok := p.store.Get("idseparator"); ok {
		sep = v
	}

	base := slugify(reconstitute(titleToks), sep)
	if base == "" {
		base = "section"
	}
	base = prefix + base
	// A prefix-less scheme (idprefix set to "") should not leave a
	// leading separator character dangling.
	if prefix == "" {
		base = strings.TrimPrefix(base, sep)
	}

	id := base
	if n, seen := p.usedIDs[base]; seen {
		n++
		p.usedIDs[base] = n
		id = base + sep + strconv.Itoa(n+1)
	} else {
		p.usedIDs[base] = 0
	}

	return id
}

// slugify lowercases and NFC-normalizes s (so a combining-mark spelling
// of an accented letter collapses to the same id as its precomposed
// spelling, e.g. "e" + combining acute vs. "é") before keeping Unicode
// letters and digits and collapsing every other rune run to a single
// sep - the Unicode-aware generalization of asciidoctor's default
// `[[_lowercase_words]]` id scheme, which otherwise only documented
// ASCII behavior.
func slugify(s, sep string) string {
	lowered := lowerer.String(norm.NFC.String(s))

	var b strings.Builder
	lastSep := true
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSep = false
		default:
			if !lastSep {
				b.WriteString(sep)
				lastSep = true
			}
		}
	}

	return strings.Trim(b.String(), sep)
}

// explicitAnchorID looks for a trailing `[[id]]` anchor on a heading
// line, returning its id if present.
func explicitAnchorID(toks []token.Token) string {
	n := len(toks)
	if n < 4 {
		return ""
	}
	if toks[n-1].Kind != token.CloseBracket || toks[n-2].Kind != token.CloseBracket {
		return ""
	}
	// scan backward for the matching "[["
	depth := 0
	for i := n - 1; i >= 0; i-- {
		switch toks[i].Kind {
		case token.CloseBracket:
			depth++
		case token.OpenBracket:
			depth--
			if depth == 0 && i > 0 && toks[i-1].Kind == token.OpenBracket {
				return reconstitute(toks[i+1 : n-2])
			}
		}
	}

	return ""
}

func trimTrailingAnchor(toks []token.Token) []token.Token {
	n := len(toks)
	depth := 0
	for i := n - 1; i >= 0; i-- {
		switch toks[i].Kind {
		case token.CloseBracket:
			depth++
		case token.OpenBracket:
			depth--
			if depth == 0 && i > 0 && toks[i-1].Kind == token.OpenBracket {
				return toks[:i-1]
			}
		}
	}

	return toks
}
