package eval

import "github.com/connerohnesorge/asciidork/ast"

// evalTOC drives a generated table of contents, opening one
// EnterTOCLevel/ExitTOCLevel pair per depth so a backend can nest
// output (e.g. `<ul>` per level) without re-deriving depth from
// TOCEntry.Level.
func (e *Evaluator) evalTOC(toc *ast.TOC, b Backend) error {
	return runPair(b.EnterTOC, b.ExitTOC, toc, func() error {
		return e.evalTOCEntries(toc.Entries, b)
	})
}

func (e *Evaluator) evalTOCEntries(entries []*ast.TOCEntry, b Backend) error {
	if len(entries) == 0 {
		return nil
	}
	level := entries[0].Level
	if err := b.EnterTOCLevel(level); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := e.evalTOCEntry(entry, b); err != nil {
			return err
		}
	}

	return b.ExitTOCLevel(level)
}

func (e *Evaluator) evalTOCEntry(entry *ast.TOCEntry, b Backend) error {
	return runPair(b.EnterTOCNode, b.ExitTOCNode, entry, func() error {
		if err := runPair(b.EnterTOCContent, b.ExitTOCContent, entry, func() error {
			return e.evalInlines(entry.Title, b)
		}); err != nil {
			return err
		}

		return e.evalTOCEntries(entry.Children, b)
	})
}
