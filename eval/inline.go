package eval

import (
	"fmt"

	"github.com/connerohnesorge/asciidork/ast"
)

func (e *Evaluator) evalInlines(nodes []ast.Node, b Backend) error {
	for _, n := range nodes {
		if err := e.evalInline(n, b); err != nil {
			return err
		}
	}

	return nil
}

//nolint:gocyclo,revive // flat dispatch over a closed Inline union, mirrors ast.dispatch
func (e *Evaluator) evalInline(n ast.Node, b Backend) error {
	switch t := n.(type) {
	case *ast.Text:
		return b.VisitInlineText(t)
	case *ast.Bold:
		return runPair(b.EnterInlineBold, b.ExitInlineBold, t, func() error { return e.evalInlines(t.Children(), b) })
	case *ast.Italic:
		return runPair(b.EnterInlineItalic, b.ExitInlineItalic, t, func() error { return e.evalInlines(t.Children(), b) })
	case *ast.Mono:
		return runPair(b.EnterInlineMono, b.ExitInlineMono, t, func() error { return e.evalInlines(t.Children(), b) })
	case *ast.Highlight:
		return runPair(b.EnterInlineHighlight, b.ExitInlineHighlight, t, func() error { return e.evalInlines(t.Children(), b) })
	case *ast.Subscript:
		return runPair(b.EnterInlineSubscript, b.ExitInlineSubscript, t, func() error { return e.evalInlines(t.Children(), b) })
	case *ast.Superscript:
		return runPair(b.EnterInlineSuperscript, b.ExitInlineSuperscript, t, func() error { return e.evalInlines(t.Children(), b) })
	case *ast.InlinePassthrough:
		return runPair(b.EnterInlinePassthrough, b.ExitInlinePassthrough, t, func() error { return nil })
	case *ast.LiteralMonospace:
		return b.VisitInlineLitMono(t)
	case *ast.SpecialChar:
		return b.VisitInlineSpecialchar(t)
	case *ast.CurlyQuote:
		return b.VisitCurlyQuote(t)
	case *ast.MultiCharWhitespace:
		return b.VisitMultiCharWhitespace(t)
	case *ast.LineBreak:
		return b.VisitLinebreak(t)
	case *ast.JoiningNewline:
		return b.VisitJoiningNewline(t)
	case *ast.Discarded:
		return nil
	case *ast.LineComment:
		return nil
	case *ast.Symbol:
		return b.VisitSymbol(t)
	case *ast.CalloutNum:
		return b.VisitCallout(t)
	case *ast.InlineAnchor:
		return b.VisitInlineAnchor(t)
	case *ast.Macro:
		return e.evalMacro(t, b)
	default:
		return fmt.Errorf("eval: unhandled inline kind %s", n.Kind())
	}
}

func (e *Evaluator) evalMacro(m *ast.Macro, b Backend) error {
	switch m.MacroKind {
	case ast.MacroKbd:
		return b.VisitKeyboardMacro(m)
	case ast.MacroMenu:
		return b.VisitMenuMacro(m)
	case ast.MacroButton:
		return b.VisitButtonMacro(m)
	case ast.MacroImage:
		return b.VisitImageMacro(m)
	case ast.MacroLink, ast.MacroMailto, ast.MacroAutoLink:
		return runPair(b.EnterLinkMacro, b.ExitLinkMacro, m, func() error { return e.evalInlines(m.Text, b) })
	case ast.MacroXref:
		return e.evalXref(m, b)
	case ast.MacroFootnote:
		return e.evalFootnote(m, b)
	default:
		return fmt.Errorf("eval: unhandled macro kind %s", m.MacroKind)
	}
}
