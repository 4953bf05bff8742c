package eval

import "github.com/connerohnesorge/asciidork/ast"

// evalTable drives a table's header/body/footer row groups in source
// order, opening an EnterTableSection/ExitTableSection pair around
// whichever groups are actually present.
func (e *Evaluator) evalTable(t *ast.Table, b Backend) error {
	return runPair(b.EnterTable, b.ExitTable, t, func() error {
		if err := e.evalTableSection(TableHeader, rowsOf(t.Header), b); err != nil {
			return err
		}
		if err := e.evalTableSection(TableBody, t.Rows, b); err != nil {
			return err
		}

		return e.evalTableSection(TableFooter, rowsOf(t.Footer), b)
	})
}

func rowsOf(r *ast.TableRow) []*ast.TableRow {
	if r == nil {
		return nil
	}

	return []*ast.TableRow{r}
}

func (e *Evaluator) evalTableSection(kind TableSectionKind, rows []*ast.TableRow, b Backend) error {
	if len(rows) == 0 {
		return nil
	}
	if err := b.EnterTableSection(kind); err != nil {
		return err
	}
	for _, row := range rows {
		if err := e.evalTableRow(row, b); err != nil {
			return err
		}
	}

	return b.ExitTableSection(kind)
}

func (e *Evaluator) evalTableRow(row *ast.TableRow, b Backend) error {
	return runPair(b.EnterTableRow, b.ExitTableRow, row, func() error {
		for _, cell := range row.Cells {
			if err := e.evalTableCell(cell, b); err != nil {
				return err
			}
		}

		return nil
	})
}

// evalTableCell drives a plain cell's inline content directly, or, for
// an `a`-styled cell (ast.TableCell.Blocks populated by the block
// parser's per-column cols="..." style), recurses into a fresh
// sub-Evaluator and sub-Backend sharing this document's anchor
// registry - so a `<<xref>>` inside a table cell resolves against the
// same anchors as the surrounding document - and feeds the sub-
// backend's rendered result back to the parent via
// VisitAsciidocTableCellResult.
func (e *Evaluator) evalTableCell(cell *ast.TableCell, b Backend) error {
	return runPair(b.EnterTableCell, b.ExitTableCell, cell, func() error {
		if cell.Blocks != nil {
			return e.evalAsciidocCell(cell, b)
		}

		return runPair(b.EnterCellParagraph, b.ExitCellParagraph, cell, func() error {
			return e.evalInlines(cell.Inline, b)
		})
	})
}

func (e *Evaluator) evalAsciidocCell(cell *ast.TableCell, b Backend) error {
	sub := b.AsciidocTableCellBackend()
	child := &Evaluator{
		anchors:      e.anchors,
		diags:        e.diags,
		resolving:    e.resolving,
		footnoteNums: e.footnoteNums,
	}
	for _, blk := range cell.Blocks {
		if err := child.evalBlock(blk, sub); err != nil {
			return err
		}
	}

	return b.VisitAsciidocTableCellResult(sub.Render())
}
