package ast

import "github.com/connerohnesorge/asciidork/token"

// Text is a run of literal characters with no further structure.
type Text struct {
	baseNode
	Value string
}

func NewText(loc token.Location, value string) *Text {
	t := &Text{Value: value}
	t.kind, t.loc = KindText, loc

	return t
}
func (*Text) isInline()     {}
func (t *Text) Hash() uint64 { return hashStrings(KindText, t.Value) }

// formattedSpan is the shared shape of Bold/Italic/Mono/Highlight/
// Subscript/Superscript: a delimiter-bounded run of further inline
// content, optionally carrying an attribute list (role shorthand etc).
type formattedSpan struct {
	baseNode
	Attrs      *AttrList
	Unconstrained bool
}

func newFormattedSpan(k Kind, loc token.Location, content []Node, attrs *AttrList, unconstrained bool) formattedSpan {
	f := formattedSpan{Attrs: attrs, Unconstrained: unconstrained}
	f.kind, f.loc, f.children = k, loc, content

	return f
}

type Bold struct{ formattedSpan }
type Italic struct{ formattedSpan }
type Mono struct{ formattedSpan }
type Highlight struct{ formattedSpan }
type Subscript struct{ formattedSpan }
type Superscript struct{ formattedSpan }

func NewBold(loc token.Location, content []Node, a *AttrList, unconstrained bool) *Bold {
	return &Bold{newFormattedSpan(KindBold, loc, content, a, unconstrained)}
}
func NewItalic(loc token.Location, content []Node, a *AttrList, unconstrained bool) *Italic {
	return &Italic{newFormattedSpan(KindItalic, loc, content, a, unconstrained)}
}
func NewMono(loc token.Location, content []Node, a *AttrList, unconstrained bool) *Mono {
	return &Mono{newFormattedSpan(KindMono, loc, content, a, unconstrained)}
}
func NewHighlight(loc token.Location, content []Node, a *AttrList, unconstrained bool) *Highlight {
	return &Highlight{newFormattedSpan(KindHighlight, loc, content, a, unconstrained)}
}
func NewSubscript(loc token.Location, content []Node) *Subscript {
	return &Subscript{newFormattedSpan(KindSubscript, loc, content, nil, true)}
}
func NewSuperscript(loc token.Location, content []Node) *Superscript {
	return &Superscript{newFormattedSpan(KindSuperscript, loc, content, nil, true)}
}

func (*Bold) isInline()        {}
func (*Italic) isInline()      {}
func (*Mono) isInline()        {}
func (*Highlight) isInline()   {}
func (*Subscript) isInline()   {}
func (*Superscript) isInline() {}

func (f *formattedSpan) Hash() uint64 {
	extra := ""
	if f.Unconstrained {
		extra = "u"
	}

	return hashChildren(f.kind, f.children, extra)
}

// InlinePassthrough is a `+++...+++`/`++...++`/`+...+`/`pass:[...]`
// span whose content bypasses all further substitutions.
type InlinePassthrough struct {
	baseNode
	Raw string
}

func NewInlinePassthrough(loc token.Location, raw string) *InlinePassthrough {
	p := &InlinePassthrough{Raw: raw}
	p.kind, p.loc = KindInlinePassthrough, loc

	return p
}
func (*InlinePassthrough) isInline()      {}
func (p *InlinePassthrough) Hash() uint64 { return hashStrings(KindInlinePassthrough, p.Raw) }

// LiteralMonospace is a backtick-delimited `+like this+` literal
// monospace span: content is preserved verbatim, with no nested inline
// substitutions besides character-entity/special-char passthrough.
type LiteralMonospace struct {
	baseNode
	Raw string
}

func NewLiteralMonospace(loc token.Location, raw string) *LiteralMonospace {
	l := &LiteralMonospace{Raw: raw}
	l.kind, l.loc = KindLiteralMonospace, loc

	return l
}
func (*LiteralMonospace) isInline()      {}
func (l *LiteralMonospace) Hash() uint64 { return hashStrings(KindLiteralMonospace, l.Raw) }

// SpecialChar is a character requiring output escaping (<, >, &).
type SpecialChar struct {
	baseNode
	Char byte
}

func NewSpecialChar(loc token.Location, ch byte) *SpecialChar {
	s := &SpecialChar{Char: ch}
	s.kind, s.loc = KindSpecialChar, loc

	return s
}
func (*SpecialChar) isInline()      {}
func (s *SpecialChar) Hash() uint64 { return hashBytes(KindSpecialChar, []byte{s.Char}) }

// CurlyQuoteKind distinguishes the five smart-quote/apostrophe shapes.
type CurlyQuoteKind int

const (
	LeftSingleQuote CurlyQuoteKind = iota
	RightSingleQuote
	LeftDoubleQuote
	RightDoubleQuote
	Apostrophe
)

// CurlyQuote is a smart-quote substitution of a straight quote/apostrophe.
type CurlyQuote struct {
	baseNode
	QuoteKind CurlyQuoteKind
}

func NewCurlyQuote(loc token.Location, k CurlyQuoteKind) *CurlyQuote {
	c := &CurlyQuote{QuoteKind: k}
	c.kind, c.loc = KindCurlyQuote, loc

	return c
}
func (*CurlyQuote) isInline()      {}
func (c *CurlyQuote) Hash() uint64 { return hashStrings(KindCurlyQuote, string(rune('0'+c.QuoteKind))) }

// MultiCharWhitespace is a run of 2+ whitespace characters collapsed to
// a single rendered space.
type MultiCharWhitespace struct{ baseNode }

func NewMultiCharWhitespace(loc token.Location) *MultiCharWhitespace {
	w := &MultiCharWhitespace{}
	w.kind, w.loc = KindMultiCharWhitespace, loc

	return w
}
func (*MultiCharWhitespace) isInline()      {}
func (w *MultiCharWhitespace) Hash() uint64 { return hashStrings(KindMultiCharWhitespace) }

// LineBreak is an explicit ` +` hard line break within a paragraph.
type LineBreak struct{ baseNode }

func NewLineBreak(loc token.Location) *LineBreak {
	b := &LineBreak{}
	b.kind, b.loc = KindLineBreak, loc

	return b
}
func (*LineBreak) isInline()      {}
func (b *LineBreak) Hash() uint64 { return hashStrings(KindLineBreak) }

// JoiningNewline is a soft newline within a paragraph, rendered as a
// single space (or dropped, per backend).
type JoiningNewline struct{ baseNode }

func NewJoiningNewline(loc token.Location) *JoiningNewline {
	n := &JoiningNewline{}
	n.kind, n.loc = KindJoiningNewline, loc

	return n
}
func (*JoiningNewline) isInline()      {}
func (n *JoiningNewline) Hash() uint64 { return hashStrings(KindJoiningNewline) }

// Discarded marks bytes consumed by a construct (e.g. autolink angle
// brackets) that must not appear in rendered output.
type Discarded struct{ baseNode }

func NewDiscarded(loc token.Location) *Discarded {
	d := &Discarded{}
	d.kind, d.loc = KindDiscarded, loc

	return d
}
func (*Discarded) isInline()      {}
func (d *Discarded) Hash() uint64 { return hashStrings(KindDiscarded) }

// LineComment is a `//` line comment appearing within otherwise
// substituted text (rare; mostly a block-level construct, but legal
// standalone within a paragraph's source lines).
type LineComment struct {
	baseNode
	Text string
}

func NewLineComment(loc token.Location, text string) *LineComment {
	c := &LineComment{Text: text}
	c.kind, c.loc = KindLineComment, loc

	return c
}
func (*LineComment) isInline()      {}
func (c *LineComment) Hash() uint64 { return hashStrings(KindLineComment, c.Text) }

// Symbol is a rendered replacement-character substitution, e.g. (C) =>
// the copyright glyph, produced by the character-replacement
// substitution step.
type Symbol struct {
	baseNode
	Name string // e.g. "copyright", "trademark", "ellipsis"
}

func NewSymbol(loc token.Location, name string) *Symbol {
	s := &Symbol{Name: name}
	s.kind, s.loc = KindSymbol, loc

	return s
}
func (*Symbol) isInline()      {}
func (s *Symbol) Hash() uint64 { return hashStrings(KindSymbol, s.Name) }

// CalloutNum is a <N>/<.> marker appearing inline within a listing
// block's line, resolved against the owning CalloutList.
type CalloutNum struct {
	baseNode
	Number int // 0 for the "." auto-numbered form
}

func NewCalloutNum(loc token.Location, n int) *CalloutNum {
	c := &CalloutNum{Number: n}
	c.kind, c.loc = KindCalloutNum, loc

	return c
}
func (*CalloutNum) isInline()      {}
func (c *CalloutNum) Hash() uint64 { return hashStrings(KindCalloutNum, uint64ToString(uint64(c.Number))) }

// InlineAnchor is a `[[id,reftext]]` or `anchor:id[reftext]` inline
// anchor declaration.
type InlineAnchor struct {
	baseNode
	ID      string
	Reftext string
}

func NewInlineAnchor(loc token.Location, id, reftext string) *InlineAnchor {
	a := &InlineAnchor{ID: id, Reftext: reftext}
	a.kind, a.loc = KindInlineAnchor, loc

	return a
}
func (*InlineAnchor) isInline()      {}
func (a *InlineAnchor) Hash() uint64 { return hashStrings(KindInlineAnchor, a.ID, a.Reftext) }

// MacroKind enumerates the recognized inline macro forms.
type MacroKind int

const (
	MacroImage MacroKind = iota
	MacroFootnote
	MacroKbd
	MacroXref
	MacroLink
	MacroMailto
	MacroMenu
	MacroButton
	MacroAutoLink // bare scheme://... or user@host auto-detected link
)

func (k MacroKind) String() string {
	names := [...]string{
		"image", "footnote", "kbd", "xref", "link", "mailto", "menu",
		"button", "autolink",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "unknown"
	}

	return names[k]
}

// Macro is a single inline macro invocation: image:/kbd:/footnote:/
// xref:/link:/mailto:/menu:/button:, plus auto-detected bare URLs and
// emails (MacroAutoLink), which carry their target in Target and have
// no further structured fields.
type Macro struct {
	baseNode
	MacroKind MacroKind
	Target    string
	Attrs     *AttrList
	// Text holds already-parsed inline content for the macro's visible
	// label (e.g. link:url[label text]); nil when the macro has no
	// label of its own (e.g. a bare image: reference with only alt
	// text in Attrs).
	Text []Node
	// Keys holds a kbd: macro's individual key names, split on `,` or
	// `+` with `\`-escape support; nil for every other MacroKind.
	Keys []string
	// MenuItems holds a menu: macro's individual items, split on `>`;
	// nil for every other MacroKind.
	MenuItems []string
}

func NewMacro(loc token.Location, k MacroKind, target string, a *AttrList, text []Node) *Macro {
	m := &Macro{MacroKind: k, Target: target, Attrs: a, Text: text}
	m.kind, m.loc, m.children = KindMacro, loc, text

	return m
}
func (*Macro) isInline() {}
func (m *Macro) Hash() uint64 {
	return hashChildren(KindMacro, m.children, m.MacroKind.String(), m.Target)
}
