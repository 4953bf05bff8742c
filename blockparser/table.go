package blockparser

import (
	"strconv"
	"strings"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/attrs"
	"github.com/connerohnesorge/asciidork/diag"
	"github.com/connerohnesorge/asciidork/line"
	"github.com/connerohnesorge/asciidork/token"
)

// isTableStart recognizes the `|===` table fence: a Pipe token
// immediately followed by an EqualSigns run at the start of the line.
func isTableStart(l *line.Line) bool {
	if l.NumTokens() < 2 {
		return false
	}
	t0, _ := l.Nth(0)
	t1, _ := l.Nth(1)

	return t0.Kind == token.Pipe && t1.Kind == token.EqualSigns
}

// parseTable consumes a `|===` ... `|===` fenced table, splitting
// `|`-led cells off each line: a Pipe token starts a new cell, whose
// content runs until the next Pipe on the same line or the end of that
// line.
func (p *Parser) parseTable(meta blockMetadata) (ast.Block, error) {
	open, _ := p.peekLine()
	loc := open.Location()
	p.pos++

	cols := numColsFromAttrs(meta.attrs)
	styles := columnStyles(meta.attrs)

	var allCells []*ast.TableCell
	var unterminated error
	for {
		l, ok := p.peekLine()
		if !ok {
			unterminated = p.diags.Err(loc, diag.CodeMalformedTable, "unterminated table starting at %s", loc)

			break
		}
		if isTableStart(l) {
			p.pos++

			break
		}
		cells := p.parseCellLine(l, styles, len(allCells))
		allCells = append(allCells, cells...)
		p.pos++
	}
	if unterminated != nil {
		return nil, unterminated
	}

	if cols <= 0 {
		cols = guessColumnCount(allCells)
	}

	rows := groupIntoRows(allCells, cols)
	var header *ast.TableRow
	if meta.attrs != nil && hasOption(meta.attrs, "header") && len(rows) > 0 {
		header = rows[0]
		rows = rows[1:]
	}
	if cols > 0 {
		for _, r := range rows {
			if len(r.Cells) != cols {
				p.diags.Warn(r.Loc(), diag.CodeColumnCountMismatch,
					"row has %d cells, expected %d", len(r.Cells), cols)
			}
		}
	}

	return ast.NewTable(loc, header, rows, nil, cols, meta.attrs, p.titleNodes(meta)), nil
}

// parseCellLine splits one source line into however many cells start
// on it (a line may hold several short cells, or just the tail of one
// long cell continued from a previous line - this implementation
// requires each cell's content to fit on its own line, a documented
// simplification versus full AsciiDoc cell-spanning-lines support).
//
// startIndex is this line's first cell's position in the table's
// overall cell stream, used to map each cell back to its column (via
// modulo cols) against styles so an `a`-styled column's cells get a
// nested paragraph in Blocks instead of flat Inline content - the
// AsciiDoc-table-cell recursion eval.Evaluator drives.
func (p *Parser) parseCellLine(l *line.Line, styles []byte, startIndex int) []*ast.TableCell {
	var cells []*ast.TableCell
	toks := l.Tokens()
	i := 0
	for i < len(toks) {
		if toks[i].Kind != token.Pipe {
			i++

			continue
		}
		start := i
		i++
		var spec string
		for i < len(toks) && toks[i].Kind != token.Pipe {
			i++
		}
		cellToks := toks[start+1 : i]
		cellToks, spec = stripCellSpec(cellToks)
		span, rowSpan := parseCellSpec(spec)
		content := p.inlineOf(cellToks)
		loc := toks[start].Loc
		if i > start+1 {
			loc = loc.Extend(toks[i-1].Loc)
		}

		colIdx := startIndex + len(cells)
		if len(styles) > 0 && styles[colIdx%len(styles)] == 'a' {
			body := []ast.Block{ast.NewParagraph(loc, content, nil)}
			cells = append(cells, ast.NewTableCell(loc, nil, body, span, rowSpan, false))

			continue
		}
		cells = append(cells, ast.NewTableCell(loc, content, nil, span, rowSpan, false))
	}

	return cells
}

// columnStyles reads the per-column style letters off a `cols="1,2a,1"`
// attribute, returning the last byte of each column's spec (a digit
// when the column has no style letter, 0 for an empty spec). Only the
// `a` (AsciiDoc) style matters to this
// implementation; the others (s, l, h, m, d, e) are accepted in the
// spec string but not distinguished by the evaluator.
func columnStyles(a *attrs.AttrList) []byte {
	if a == nil {
		return nil
	}
	v, ok := a.NamedValue("cols")
	if !ok {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]byte, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out[i] = p[len(p)-1]
	}

	return out
}

// stripCellSpec splits a leading column/row-span specifier like "2+"
// or "2.3+" off a cell's tokens, returning the remaining content
// tokens and the raw spec text.
func stripCellSpec(toks []token.Token) ([]token.Token, string) {
	i := 0
	for i < len(toks) {
		k := toks[i].Kind
		if k == token.Digits || k == token.Dots || k == token.Plus {
			i++

			continue
		}

		break
	}
	if i == 0 {
		return toks, ""
	}
	if i < len(toks) && toks[i-1].Kind == token.Plus {
		return toks[i:], reconstitute(toks[:i])
	}

	return toks, ""
}

func parseCellSpec(spec string) (span, rowSpan int) {
	span, rowSpan = 1, 1
	spec = strings.TrimSuffix(spec, "+")
	if spec == "" {
		return
	}
	parts := strings.SplitN(spec, ".", 2)
	if n, err := strconv.Atoi(parts[0]); err == nil {
		span = n
	}
	if len(parts) == 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			rowSpan = n
		}
	}

	return
}

func numColsFromAttrs(a *attrs.AttrList) int {
	if a == nil {
		return 0
	}
	v, ok := a.NamedValue("cols")
	if !ok {
		return 0
	}

	return len(strings.Split(v, ","))
}

func hasOption(a *attrs.AttrList, name string) bool {
	for _, o := range a.Options {
		if o == name {
			return true
		}
	}

	return false
}

func guessColumnCount(cells []*ast.TableCell) int {
	if len(cells) == 0 {
		return 0
	}

	return len(cells)
}

func groupIntoRows(cells []*ast.TableCell, cols int) []*ast.TableRow {
	if cols <= 0 {
		if len(cells) == 0 {
			return nil
		}

		return []*ast.TableRow{ast.NewTableRow(rowLoc(cells), cells)}
	}
	var rows []*ast.TableRow
	for i := 0; i < len(cells); i += cols {
		end := i + cols
		if end > len(cells) {
			end = len(cells)
		}
		group := cells[i:end]
		rows = append(rows, ast.NewTableRow(rowLoc(group), group))
	}

	return rows
}

func rowLoc(cells []*ast.TableCell) token.Location {
	if len(cells) == 0 {
		return token.Location{}
	}
	loc := cells[0].Loc()
	for _, c := range cells[1:] {
		loc = loc.Extend(c.Loc())
	}

	return loc
}
