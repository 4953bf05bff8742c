package inlineparser

import (
	"strings"
	"testing"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/attrs"
	"github.com/connerohnesorge/asciidork/diag"
	"github.com/connerohnesorge/asciidork/line"
	"github.com/connerohnesorge/asciidork/token"
)

func lexLine(t *testing.T, src string) []token.Token {
	t.Helper()
	lx := token.NewLexer(token.NewSourceStack("t.adoc", []byte(src)))
	var out []token.Token
	for _, tok := range lx.All() {
		if tok.Kind == token.Eof || tok.Kind == token.Newline {
			continue
		}
		out = append(out, tok)
	}

	return out
}

func newParser() *Parser {
	return New(attrs.NewStore(nil), diag.NewBag(false), Normal())
}

func TestParseConstrainedBold(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "a *bold* word"))
	foundBold := false
	for _, n := range nodes {
		if n.Kind() == ast.KindBold {
			foundBold = true
		}
	}
	if !foundBold {
		t.Fatalf("expected a Bold node, got:\n%s", dumpNodes(nodes))
	}
}

func TestParseConstrainedBoldRequiresWordBoundary(t *testing.T) {
	// "5*3*4" - no boundary before/after, should not produce Bold.
	nodes := newParser().ParseTokens(lexLine(t, "5*3*4"))
	for _, n := range nodes {
		if n.Kind() == ast.KindBold {
			t.Fatal("did not expect Bold without word boundaries")
		}
	}
}

func TestParseUnconstrainedDoubleStar(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "a**b**c"))
	found := false
	for _, n := range nodes {
		if n.Kind() == ast.KindBold {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unconstrained Bold, got:\n%s", dumpNodes(nodes))
	}
}

func TestParseSuperscriptNoWhitespaceAllowed(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "x^2^"))
	found := false
	for _, n := range nodes {
		if n.Kind() == ast.KindSuperscript {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Superscript, got:\n%s", dumpNodes(nodes))
	}
}

func TestParseAttrRefExpansion(t *testing.T) {
	store := attrs.NewStore(map[string]string{"product": "Widget"})
	p := New(store, diag.NewBag(false), Normal())
	nodes := p.ParseTokens(lexLine(t, "the {product} name"))
	text := textOf(nodes)
	if text != "the Widget name" {
		t.Fatalf("expected expansion, got %q", text)
	}
}

func TestParseCharReplacementEmdash(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "a--b"))
	found := false
	for _, n := range nodes {
		if n.Kind() == ast.KindSymbol {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a Symbol(emdash), got:\n%s", dumpNodes(nodes))
	}
}

func TestParseAutoLink(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "see https://example.com for more"))
	var m *ast.Macro
	for _, n := range nodes {
		if mm, ok := n.(*ast.Macro); ok {
			m = mm
		}
	}
	if m == nil || m.MacroKind != ast.MacroAutoLink {
		t.Fatalf("expected an auto-link macro, got:\n%s", dumpNodes(nodes))
	}
	if m.Target != "https://example.com" {
		t.Fatalf("unexpected target: %q", m.Target)
	}
}

func TestParseImageMacro(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "image:foo.png[Alt Text]"))
	var m *ast.Macro
	for _, n := range nodes {
		if mm, ok := n.(*ast.Macro); ok {
			m = mm
		}
	}
	if m == nil || m.MacroKind != ast.MacroImage || m.Target != "foo.png" {
		t.Fatalf("unexpected macro result:\n%s", ast.Dump(m))
	}
}

func TestParseSpecialCharsEscaped(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "a < b"))
	found := false
	for _, n := range nodes {
		if n.Kind() == ast.KindSpecialChar {
			found = true
		}
	}
	if !found {
		t.Fatal("expected '<' to become a SpecialChar node")
	}
}

func TestParseShorthandXref(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "see <<intro,the intro>> for more"))
	var m *ast.Macro
	for _, n := range nodes {
		if mac, ok := n.(*ast.Macro); ok && mac.MacroKind == ast.MacroXref {
			m = mac
		}
	}
	if m == nil {
		t.Fatalf("expected a Xref macro, got:\n%s", dumpNodes(nodes))
	}
	if m.Target != "intro" {
		t.Fatalf("expected target %q, got %q", "intro", m.Target)
	}
	if m.Attrs == nil || m.Attrs.First() != "the intro" {
		t.Fatalf("expected linktext %q, got %v", "the intro", m.Attrs)
	}
}

func TestParseShorthandXrefNoLinktext(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "<<chapter-1>>"))
	if len(nodes) != 1 {
		t.Fatalf("expected a single node, got:\n%s", dumpNodes(nodes))
	}
	m, ok := nodes[0].(*ast.Macro)
	if !ok || m.MacroKind != ast.MacroXref || m.Target != "chapter-1" {
		t.Fatalf("expected Xref(chapter-1), got:\n%s", ast.Dump(nodes[0]))
	}
}

func TestParseKeyboardMacroSplitsKeys(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "press kbd:[Ctrl+Alt+Del] now"))
	var m *ast.Macro
	for _, n := range nodes {
		if mac, ok := n.(*ast.Macro); ok && mac.MacroKind == ast.MacroKbd {
			m = mac
		}
	}
	if m == nil {
		t.Fatalf("expected a kbd macro, got %v", kindsOfNodes(nodes))
	}
	want := []string{"Ctrl", "Alt", "Del"}
	if len(m.Keys) != len(want) {
		t.Fatalf("got keys %v, want %v", m.Keys, want)
	}
	for i := range want {
		if m.Keys[i] != want[i] {
			t.Fatalf("got keys %v, want %v", m.Keys, want)
		}
	}
}

func TestParseKeyboardMacroRespectsEscapedSeparator(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "kbd:[Ctrl+\\+]"))
	var m *ast.Macro
	for _, n := range nodes {
		if mac, ok := n.(*ast.Macro); ok && mac.MacroKind == ast.MacroKbd {
			m = mac
		}
	}
	if m == nil {
		t.Fatalf("expected a kbd macro, got %v", kindsOfNodes(nodes))
	}
	want := []string{"Ctrl", "+"}
	if len(m.Keys) != len(want) || m.Keys[0] != want[0] || m.Keys[1] != want[1] {
		t.Fatalf("got keys %v, want %v", m.Keys, want)
	}
}

func TestParseMenuMacroSplitsItems(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "menu:View[Zoom > Reset] to continue"))
	var m *ast.Macro
	for _, n := range nodes {
		if mac, ok := n.(*ast.Macro); ok && mac.MacroKind == ast.MacroMenu {
			m = mac
		}
	}
	if m == nil {
		t.Fatalf("expected a menu macro, got %v", kindsOfNodes(nodes))
	}
	want := []string{"View", "Zoom", "Reset"}
	if len(m.MenuItems) != len(want) {
		t.Fatalf("got items %v, want %v", m.MenuItems, want)
	}
	for i := range want {
		if m.MenuItems[i] != want[i] {
			t.Fatalf("got items %v, want %v", m.MenuItems, want)
		}
	}
}

func kindsOfNodes(nodes []ast.Node) []ast.Kind {
	out := make([]ast.Kind, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind()
	}

	return out
}

// dumpNodes renders a full AST-shape dump of nodes for use in test
// failure messages, one ast.Dump per top-level node.
func dumpNodes(nodes []ast.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(ast.Dump(n))
		b.WriteByte('\n')
	}

	return b.String()
}

func textOf(nodes []ast.Node) string {
	s := ""
	for _, n := range nodes {
		if t, ok := n.(*ast.Text); ok {
			s += t.Value
		}
	}

	return s
}

func TestParseLiteralMonospaceSkipsAttrExpansion(t *testing.T) {
	store := attrs.NewStore(map[string]string{"name": "expanded"})
	p := New(store, diag.NewBag(false), Normal())
	nodes := p.ParseTokens(lexLine(t, "`+{name}+`"))
	if len(nodes) != 1 {
		t.Fatalf("expected a single node, got:\n%s", dumpNodes(nodes))
	}
	lm, ok := nodes[0].(*ast.LiteralMonospace)
	if !ok {
		t.Fatalf("expected LiteralMonospace, got:\n%s", ast.Dump(nodes[0]))
	}
	if lm.Raw != "{name}" {
		t.Fatalf("expected raw %q, got %q", "{name}", lm.Raw)
	}
}

func TestParseTriplePlusPassthrough(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "a +++_raw_+++ b"))
	var pt *ast.InlinePassthrough
	for _, n := range nodes {
		if p, ok := n.(*ast.InlinePassthrough); ok {
			pt = p
		}
	}
	if pt == nil {
		t.Fatalf("expected InlinePassthrough, got:\n%s", dumpNodes(nodes))
	}
	if pt.Raw != "_raw_" {
		t.Fatalf("expected raw %q, got %q", "_raw_", pt.Raw)
	}
}

func TestParseConstrainedPlusPassthrough(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "a +literal+ b"))
	found := false
	for _, n := range nodes {
		if p, ok := n.(*ast.InlinePassthrough); ok && p.Raw == "literal" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected InlinePassthrough(literal), got:\n%s", dumpNodes(nodes))
	}
}

func TestParsePassMacroDisablesSubstitutions(t *testing.T) {
	store := attrs.NewStore(map[string]string{"name": "expanded"})
	p := New(store, diag.NewBag(false), Normal())
	nodes := p.ParseTokens(lexLine(t, "pass:[{name}]"))
	if len(nodes) != 1 {
		t.Fatalf("expected a single node, got:\n%s", dumpNodes(nodes))
	}
	pt, ok := nodes[0].(*ast.InlinePassthrough)
	if !ok || pt.Raw != "{name}" {
		t.Fatalf("expected InlinePassthrough({name}), got:\n%s", ast.Dump(nodes[0]))
	}
}

func TestParseNestedFormatting(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "`*_foo_*`"))
	if len(nodes) != 1 {
		t.Fatalf("expected a single node, got:\n%s", dumpNodes(nodes))
	}
	mono, ok := nodes[0].(*ast.Mono)
	if !ok || len(mono.Children()) != 1 {
		t.Fatalf("expected Mono with one child, got:\n%s", ast.Dump(nodes[0]))
	}
	bold, ok := mono.Children()[0].(*ast.Bold)
	if !ok || len(bold.Children()) != 1 {
		t.Fatalf("expected Bold inside Mono, got:\n%s", ast.Dump(mono.Children()[0]))
	}
	if _, ok := bold.Children()[0].(*ast.Italic); !ok {
		t.Fatalf("expected Italic inside Bold, got:\n%s", ast.Dump(bold.Children()[0]))
	}
}

func TestParseAutoLinkExcludesTrailingPeriod(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "See https://example.com."))
	var m *ast.Macro
	for _, n := range nodes {
		if mm, ok := n.(*ast.Macro); ok {
			m = mm
		}
	}
	if m == nil || m.Target != "https://example.com" {
		t.Fatalf("expected target without trailing period, got:\n%s", dumpNodes(nodes))
	}
	if got := textOf(nodes); !strings.HasSuffix(got, ".") {
		t.Fatalf("expected the period to remain as text, got %q", got)
	}
}

func TestParseAngleBracketedAutoLinkDiscardsBrackets(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "<https://example.com>"))
	var sawLink, sawDiscard bool
	for _, n := range nodes {
		switch nn := n.(type) {
		case *ast.Macro:
			if nn.Target == "https://example.com" {
				sawLink = true
			}
		case *ast.Discarded:
			sawDiscard = true
		}
	}
	if !sawLink || !sawDiscard {
		t.Fatalf("expected a Link flanked by Discarded nodes, got:\n%s", dumpNodes(nodes))
	}
}

func TestParseInlineAnchorRegisters(t *testing.T) {
	reg := ast.NewAnchorRegistry()
	p := New(attrs.NewStore(nil), diag.NewBag(false), Normal())
	p.Anchors = reg
	nodes := p.ParseTokens(lexLine(t, "[[target,Pretty Name]] text"))
	var anchor *ast.InlineAnchor
	for _, n := range nodes {
		if a, ok := n.(*ast.InlineAnchor); ok {
			anchor = a
		}
	}
	if anchor == nil || anchor.ID != "target" {
		t.Fatalf("expected InlineAnchor(target), got:\n%s", dumpNodes(nodes))
	}
	got, ok := reg.Lookup("target")
	if !ok || got.Reftext != "Pretty Name" {
		t.Fatalf("expected registered anchor with reftext, got %+v (ok=%v)", got, ok)
	}
}

func TestParseArrowReplacement(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "a -> b"))
	found := false
	for _, n := range nodes {
		if s, ok := n.(*ast.Symbol); ok && s.Name == "rightarrow" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Symbol(rightarrow), got:\n%s", dumpNodes(nodes))
	}
}

func TestParseSmartQuotePair(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, "\"`quoted`\""))
	var kinds []ast.CurlyQuoteKind
	for _, n := range nodes {
		if q, ok := n.(*ast.CurlyQuote); ok {
			kinds = append(kinds, q.QuoteKind)
		}
	}
	if len(kinds) != 2 || kinds[0] != ast.LeftDoubleQuote || kinds[1] != ast.RightDoubleQuote {
		t.Fatalf("expected left+right double curly quotes, got:\n%s", dumpNodes(nodes))
	}
}

func TestParseItalicSpansLines(t *testing.T) {
	cl := contiguousOf(t, "foo _bar\nbaz_")
	nodes := newParser().ParseContiguousLines(cl)
	var italic *ast.Italic
	for _, n := range nodes {
		if it, ok := n.(*ast.Italic); ok {
			italic = it
		}
	}
	if italic == nil {
		t.Fatalf("expected Italic spanning lines, got:\n%s", dumpNodes(nodes))
	}
	sawJoin := false
	for _, c := range italic.Children() {
		if c.Kind() == ast.KindJoiningNewline {
			sawJoin = true
		}
	}
	if !sawJoin {
		t.Fatalf("expected a JoiningNewline inside the Italic, got:\n%s", ast.Dump(italic))
	}
}

func TestParseTrailingPlusBecomesLineBreak(t *testing.T) {
	cl := contiguousOf(t, "first +\nsecond")
	nodes := newParser().ParseContiguousLines(cl)
	found := false
	for _, n := range nodes {
		if n.Kind() == ast.KindLineBreak {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a LineBreak for the trailing ' +', got:\n%s", dumpNodes(nodes))
	}
}

func contiguousOf(t *testing.T, src string) *line.ContiguousLines {
	t.Helper()
	lx := token.NewLexer(token.NewSourceStack("t.adoc", []byte(src)))
	var lines []*line.Line
	var cur []token.Token
	for _, tok := range lx.All() {
		switch tok.Kind {
		case token.Eof:
		case token.Newline:
			lines = append(lines, line.NewLine(cur))
			cur = nil
		default:
			cur = append(cur, tok)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, line.NewLine(cur))
	}

	return line.NewContiguousLines(lines)
}

func TestParseAttrRefValueIsRelexed(t *testing.T) {
	store := attrs.NewStore(map[string]string{"warning": "*do not touch*"})
	p := New(store, diag.NewBag(false), Normal())
	nodes := p.ParseTokens(lexLine(t, "sign says {warning} here"))
	found := false
	for _, n := range nodes {
		if n.Kind() == ast.KindBold {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the expanded value's markup to be parsed, got:\n%s", dumpNodes(nodes))
	}
}

func TestParseAttrRefSelfReferenceTerminates(t *testing.T) {
	store := attrs.NewStore(map[string]string{"loop": "{loop}"})
	p := New(store, diag.NewBag(false), Normal())
	nodes := p.ParseTokens(lexLine(t, "{loop}"))
	if len(nodes) == 0 {
		t.Fatal("expected the expansion to terminate with literal output")
	}
}

func TestParseAttrRefMissingDropRemovesReference(t *testing.T) {
	p := New(attrs.NewStore(nil), diag.NewBag(false), Normal())
	p.Missing = attrs.AttrMissingDrop
	nodes := p.ParseTokens(lexLine(t, "a {nope} b"))
	if got := textOf(nodes); strings.Contains(got, "{nope}") {
		t.Fatalf("expected the reference to be dropped, got %q", got)
	}
}

func TestParseCalloutNumberToken(t *testing.T) {
	lx := token.NewLexer(token.NewSourceStack("t.adoc", []byte("run() <1>")))
	lx.SetCalloutContext(true)
	var toks []token.Token
	for _, tok := range lx.All() {
		if tok.Kind == token.Eof || tok.Kind == token.Newline {
			continue
		}
		toks = append(toks, tok)
	}
	nodes := newParser().ParseTokens(toks)
	var num *ast.CalloutNum
	for _, n := range nodes {
		if c, ok := n.(*ast.CalloutNum); ok {
			num = c
		}
	}
	if num == nil || num.Number != 1 {
		t.Fatalf("expected CalloutNum(1), got:\n%s", dumpNodes(nodes))
	}
}

func TestParseShorthandXrefPreservesQuotedLinktext(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, `see <<intro,"the intro">> now`))
	var m *ast.Macro
	for _, n := range nodes {
		if mac, ok := n.(*ast.Macro); ok && mac.MacroKind == ast.MacroXref {
			m = mac
		}
	}
	if m == nil {
		t.Fatalf("expected a Xref macro, got:\n%s", dumpNodes(nodes))
	}
	if got := m.Attrs.First(); got != `"the intro"` {
		t.Fatalf("expected the quotes kept literally, got %q", got)
	}
}

func TestParseXrefMacroPreservesQuotedLinktext(t *testing.T) {
	nodes := newParser().ParseTokens(lexLine(t, `xref:intro["the intro"]`))
	var m *ast.Macro
	for _, n := range nodes {
		if mac, ok := n.(*ast.Macro); ok && mac.MacroKind == ast.MacroXref {
			m = mac
		}
	}
	if m == nil {
		t.Fatalf("expected a Xref macro, got:\n%s", dumpNodes(nodes))
	}
	if got := m.Attrs.First(); got != `"the intro"` {
		t.Fatalf("expected the quotes kept literally, got %q", got)
	}
}
