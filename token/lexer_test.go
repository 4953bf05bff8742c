package token

import "testing"

func kindsOf(toks []Token) []Kind {
	out := make([]Kind, 0, len(toks))
	for _, t := range toks {
		if t.Kind == Eof {
			break
		}
		out = append(out, t.Kind)
	}

	return out
}

func assertKinds(t *testing.T, src string, want []Kind) {
	t.Helper()
	l := NewLexer(NewSourceStack("test.adoc", []byte(src)))
	got := kindsOf(l.All())
	if len(got) != len(want) {
		t.Fatalf("lexing %q: got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("lexing %q: token %d got %s, want %s", src, i, got[i], want[i])
		}
	}
}

func TestLexerBasicPunctuation(t *testing.T) {
	assertKinds(t, "*_`", []Kind{Star, Underscore, Backtick})
}

func TestLexerWordAndWhitespace(t *testing.T) {
	assertKinds(t, "hello world", []Kind{Word, Whitespace, Word})
}

func TestLexerDigitsVsWord(t *testing.T) {
	assertKinds(t, "123", []Kind{Digits})
	assertKinds(t, "123abc", []Kind{Word})
}

func TestLexerRuns(t *testing.T) {
	assertKinds(t, "====", []Kind{DelimiterLine})
	assertKinds(t, "....", []Kind{DelimiterLine})
	assertKinds(t, "////", []Kind{DelimiterLine})
}

func TestLexerDelimiterLineExactDashDash(t *testing.T) {
	assertKinds(t, "--\n", []Kind{DelimiterLine, Newline})
}

func TestLexerDelimiterLineRequiresWholeLine(t *testing.T) {
	// "---x" is not a delimiter line: the run doesn't span the whole line.
	assertKinds(t, "---x", []Kind{Dashes, Word})
}

func TestLexerMacroName(t *testing.T) {
	assertKinds(t, "image:foo.png[]", []Kind{
		MacroName, Word, Dots, Word, OpenBracket, CloseBracket,
	})
}

func TestLexerPlainColonIsNotMacroName(t *testing.T) {
	// No OpenBracket follows on the line before whitespace, so "foo:" is
	// just Word + Colon.
	assertKinds(t, "foo: bar", []Kind{Word, Colon, Whitespace, Word})
}

func TestLexerUriScheme(t *testing.T) {
	assertKinds(t, "https://example.com", []Kind{
		UriScheme, Word, Dots, Word,
	})
}

func TestLexerAttrRef(t *testing.T) {
	assertKinds(t, "{name}", []Kind{AttrRef})
}

func TestLexerAttrRefNotRecognizedAfterBackslash(t *testing.T) {
	assertKinds(t, "\\{name}", []Kind{Backslash, OpenBrace, Word, CloseBrace})
}

func TestLexerEntityNamed(t *testing.T) {
	assertKinds(t, "&amp;", []Kind{Entity})
}

func TestLexerEntityNumeric(t *testing.T) {
	assertKinds(t, "&#169;", []Kind{Entity})
	assertKinds(t, "&#x2014;", []Kind{Entity})
}

func TestLexerBareAmpersandIsNotEntity(t *testing.T) {
	assertKinds(t, "& rest", []Kind{Ampersand, Whitespace, Word})
}

func TestLexerDirectiveAtLineStart(t *testing.T) {
	assertKinds(t, "include::chap1.adoc[]", []Kind{
		Directive, Word, Dots, Word, OpenBracket, CloseBracket,
	})
}

func TestLexerDirectiveNotAtLineStart(t *testing.T) {
	l := NewLexer(NewSourceStack("t.adoc", []byte("x include::y[]")))
	toks := kindsOf(l.All())
	for _, k := range toks {
		if k == Directive {
			t.Fatalf("include:: mid-line should not lex as Directive: %v", toks)
		}
	}
}

func TestLexerCalloutNumberOnlyInCalloutContext(t *testing.T) {
	l := NewLexer(NewSourceStack("t.adoc", []byte("<1>")))
	if kindsOf(l.All())[0] == CalloutNumber {
		t.Fatal("CalloutNumber should not be recognized outside callout context")
	}

	l2 := NewLexer(NewSourceStack("t.adoc", []byte("<1>")))
	l2.SetCalloutContext(true)
	assertKinds2 := kindsOf(l2.All())
	if assertKinds2[0] != CalloutNumber {
		t.Fatalf("expected CalloutNumber in callout context, got %v", assertKinds2)
	}
}

func TestLexerMaybeEmail(t *testing.T) {
	toks := []Token{}
	l := NewLexer(NewSourceStack("t.adoc", []byte("jane@example.com")))
	toks = l.All()
	if toks[0].Kind != MaybeEmail {
		t.Fatalf("expected MaybeEmail, got %s (%q)", toks[0].Kind, toks[0].Text())
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := NewLexer(NewSourceStack("t.adoc", []byte("ab")))
	p1 := l.Peek()
	p2 := l.Peek()
	if p1.Kind != p2.Kind || p1.Text() != p2.Text() {
		t.Fatalf("Peek is not idempotent: %v vs %v", p1, p2)
	}
	n := l.Next()
	if n.Text() != p1.Text() {
		t.Fatalf("Next after Peek mismatch: %v vs %v", n, p1)
	}
}

func TestLexerLocationsNeverSpanIncludeBoundary(t *testing.T) {
	stack := NewSourceStack("main.adoc", []byte("one"))
	stack.Push("chap1.adoc", 0, 0, []byte("two"))
	l := NewLexer(stack)
	sawInclude, sawPrimary := false, false
	for _, tok := range l.All() {
		if tok.Kind == Eof {
			continue
		}
		// Every token is wholly within one source: its location length
		// matches its lexeme, and its depth names a single buffer.
		if tok.Loc.Len() != len(tok.Lexeme) {
			t.Fatalf("token %q location %v does not cover its lexeme", tok.Text(), tok.Loc)
		}
		switch tok.Loc.IncludeDepth {
		case 1:
			sawInclude = true
			if sawPrimary {
				t.Fatal("include tokens must drain before the primary source resumes")
			}
		case 0:
			sawPrimary = true
		default:
			t.Fatalf("unexpected include depth %d", tok.Loc.IncludeDepth)
		}
	}
	if !sawInclude || !sawPrimary {
		t.Fatal("expected tokens from both the include and the resumed primary source")
	}
}

func TestLexerEofAtEnd(t *testing.T) {
	l := NewLexer(NewSourceStack("t.adoc", []byte("x")))
	l.Next()
	eof := l.Next()
	if eof.Kind != Eof {
		t.Fatalf("expected Eof, got %s", eof.Kind)
	}
	again := l.Next()
	if again.Kind != Eof {
		t.Fatalf("expected repeated Eof, got %s", again.Kind)
	}
}

func TestLexerTermDelimiter(t *testing.T) {
	assertKinds(t, "CPU:: the brain", []Kind{Word, TermDelimiter, Whitespace, Word, Whitespace, Word})
	assertKinds(t, "term:::", []Kind{Word, TermDelimiter})
	assertKinds(t, "term;; x", []Kind{Word, TermDelimiter, Whitespace, Word})
}

func TestLexerTermDelimiterRequiresWordBefore(t *testing.T) {
	// Line-start ":: x" has no word before the run, so it stays Colons.
	assertKinds(t, ":: x", []Kind{Colon, Colon, Whitespace, Word})
}

func TestLexerTermDelimiterRequiresBoundaryAfter(t *testing.T) {
	// "std::vector" glues the run to more text, so it stays Colons.
	assertKinds(t, "std::vector", []Kind{Word, Colon, Colon, Word})
}

func TestLexerSingleColonIsNotTermDelimiter(t *testing.T) {
	assertKinds(t, "key: value", []Kind{Word, Colon, Whitespace, Word})
}
