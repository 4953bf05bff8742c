package eval

import (
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/diag"
)

// xrefAnchorID normalizes an xref target to a bare anchor id: "id"
// stays as-is, "id#" drops the empty fragment, and "file#id" keeps
// just the fragment - anchors from every include register into the one
// document-wide registry, so the file half is only a reading aid.
func xrefAnchorID(target string) string {
	i := strings.Index(target, "#")
	if i < 0 {
		return target
	}
	if id := target[i+1:]; id != "" {
		return id
	}

	return target[:i]
}

// evalXref resolves an Xref macro against the anchor registry and
// drives EnterXref/ExitXref with the resolved link text. The priority
// order: explicit reftext on the anchor, then explicit
// link text on the xref itself, then the anchor's title, then a
// fallback `[id]` with a broken-xref warning.
//
// A re-entrancy guard renders a reference to an anchor that is already
// on the resolution stack as literal `[id]` (emitBrokenXref). Reftext
// and explicit link text are emitted as plain Text nodes, so a `<<B>>`
// written inside a reftext is output as literal characters and is not
// resolved; a reftext cycle therefore cannot recurse.
func (e *Evaluator) evalXref(m *ast.Macro, b Backend) error {
	id := xrefAnchorID(m.Target)
	if e.resolving[id] {
		return e.emitBrokenXref(m, b)
	}

	anchor, ok := e.anchors.Lookup(id)
	if !ok {
		if e.diags != nil {
			e.diags.Warn(m.Loc(), diag.CodeUnknownAnchor, "unresolved xref target %q", m.Target)
		}

		if err := b.VisitMissingXref(m); err != nil {
			return err
		}

		return b.VisitInlineText(ast.NewText(m.Loc(), "["+m.Target+"]"))
	}

	e.resolving[id] = true
	defer delete(e.resolving, id)

	text := e.xrefLinkText(m, anchor)

	return runPair(
		func(mm *ast.Macro) error { return b.EnterXref(mm, text) },
		func(mm *ast.Macro) error { return b.ExitXref(mm, text) },
		m,
		func() error { return e.evalInlines(text, b) },
	)
}

// xrefLinkText applies the priority order. Explicit link text on the
// macro (the shorthand `<<id,text>>` or `xref:id[text]` form) is stored
// as AttrList.First() by the inline parser, kept as a literal Text node
// rather than re-parsed - both shorthand and macro forms preserve
// literal quoting rather than reconciling it.
func (e *Evaluator) xrefLinkText(m *ast.Macro, anchor ast.Anchor) []ast.Node {
	if anchor.Reftext != "" {
		return []ast.Node{ast.NewText(m.Loc(), anchor.Reftext)}
	}
	if m.Attrs != nil && m.Attrs.First() != "" {
		return []ast.Node{ast.NewText(m.Loc(), m.Attrs.First())}
	}
	if m.Text != nil {
		return m.Text
	}
	if anchor.Title != "" {
		return []ast.Node{ast.NewText(m.Loc(), anchor.Title)}
	}

	return []ast.Node{ast.NewText(m.Loc(), "["+m.Target+"]")}
}

func (e *Evaluator) emitBrokenXref(m *ast.Macro, b Backend) error {
	literal := ast.NewText(m.Loc(), "["+m.Target+"]")

	return runPair(
		func(mm *ast.Macro) error { return b.EnterXref(mm, []ast.Node{literal}) },
		func(mm *ast.Macro) error { return b.ExitXref(mm, []ast.Node{literal}) },
		m,
		func() error { return b.VisitInlineText(literal) },
	)
}

// evalFootnote assigns a stable ordinal to a footnote's id the first
// time it is encountered; a repeated reference to the same id (two
// footnote:id[] calls sharing one definition) reuses that ordinal
// rather than incrementing again, matching asciidoctor's shared
// footnote numbering.
func (e *Evaluator) evalFootnote(m *ast.Macro, b Backend) error {
	key := m.Target
	if key == "" {
		key = m.Loc().String()
	}
	num, seen := e.footnoteNums[key]
	if !seen {
		e.footnoteNext++
		num = e.footnoteNext
		e.footnoteNums[key] = num
	}

	return runPair(
		func(mm *ast.Macro) error { return b.EnterFootnote(mm, num) },
		func(mm *ast.Macro) error { return b.ExitFootnote(mm, num) },
		m,
		func() error { return e.evalInlines(m.Text, b) },
	)
}
