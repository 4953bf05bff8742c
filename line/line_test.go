package line

import (
	"testing"

	"github.com/connerohnesorge/asciidork/token"
)

func lexAll(t *testing.T, src string) []token.Token {
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

func TestHeadingLevel(t *testing.T) {
	l := NewLine(lexAll(t, "== Title"))
	lvl, ok := l.HeadingLevel()
	if !ok || lvl != 2 {
		t.Fatalf("expected heading level 2, got %d, %v", lvl, ok)
	}
}

func TestHeadingLevelRejectsBareEquals(t *testing.T) {
	l := NewLine(lexAll(t, "=="))
	if _, ok := l.HeadingLevel(); ok {
		t.Fatal("bare '==' with no title must not be a heading")
	}
}

func TestIsBlockMacro(t *testing.T) {
	l := NewLine(lexAll(t, "image::foo.png[]"))
	if !l.IsBlockMacro() {
		t.Fatal("expected image::foo.png[] to be a block macro line")
	}
}

func TestIsBlockMacroRejectsEscapedClose(t *testing.T) {
	l := NewLine(lexAll(t, `image::foo.png[\]`))
	if l.IsBlockMacro() {
		t.Fatal("escaped closing bracket must not count as block macro terminator")
	}
}

func TestMayContainInlinePassOnPassMacro(t *testing.T) {
	l := NewLine(lexAll(t, "pass:[<u>x</u>]"))
	if !l.MayContainInlinePass {
		t.Fatal("expected pass: macro to set MayContainInlinePass")
	}
}

func TestMayContainInlinePassOnBarePlus(t *testing.T) {
	l := NewLine(lexAll(t, "a + b"))
	if !l.MayContainInlinePass {
		t.Fatal("a bare + not preceded by a backtick should set MayContainInlinePass")
	}
}

func TestMayContainInlinePassFalseForBacktickedPlus(t *testing.T) {
	l := NewLine(lexAll(t, "`+"))
	if l.MayContainInlinePass {
		t.Fatal("a + immediately preceded by a backtick should not set MayContainInlinePass")
	}
}

func TestSplitContiguous(t *testing.T) {
	a := NewLine(lexAll(t, "one"))
	blank := NewLine(nil)
	b := NewLine(lexAll(t, "two"))

	groups := SplitContiguous([]*Line{a, blank, b})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
}
