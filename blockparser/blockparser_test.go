package blockparser

import (
	"testing"

	"github.com/connerohnesorge/asciidork/ast"
)

func parseDoc(t *testing.T, src string, cfg Config) (*ast.Document, error) {
	t.Helper()
	p := New("t.adoc", []byte(src), cfg)
	doc, _, err := p.Parse()

	return doc, err
}

func TestSectionIDGeneration(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "== Introduction\n", "_introduction"},
		{"multi word", "== Getting Started\n", "_getting_started"},
		{"unicode accent folds via nfc", "== Café Résumé\n", "_café_résumé"},
		{"punctuation collapses", "== What's New?!\n", "_what_s_new"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parseDoc(t, tt.input, Config{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(doc.Body) != 1 {
				t.Fatalf("expected one section, got %d blocks", len(doc.Body))
			}
			sec, ok := doc.Body[0].(*ast.Section)
			if !ok {
				t.Fatalf("expected *ast.Section, got:\n%s", ast.Dump(doc.Body[0]))
			}
			if sec.ID != tt.want {
				t.Fatalf("got id %q, want %q", sec.ID, tt.want)
			}
		})
	}
}

func TestDuplicateSectionTitlesGetSuffixedIDs(t *testing.T) {
	doc, err := parseDoc(t, "== Notes\n\ntext\n\n== Notes\n\nmore text\n", Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Body) != 2 {
		t.Fatalf("expected two sections, got %d", len(doc.Body))
	}
	first := doc.Body[0].(*ast.Section)
	second := doc.Body[1].(*ast.Section)
	if first.ID != "_notes" || second.ID != "_notes_2" {
		t.Fatalf("got ids %q, %q", first.ID, second.ID)
	}
}

func TestSectionIDRespectsIdprefixAndIdseparator(t *testing.T) {
	doc, err := parseDoc(t, "== Getting Started\n", Config{
		Attributes: map[string]string{"idprefix": "id_", "idseparator": "-"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sec := doc.Body[0].(*ast.Section)
	if sec.ID != "id_getting-started" {
		t.Fatalf("got id %q, want %q", sec.ID, "id_getting-started")
	}
}

func TestSectionIDEmptyIdprefixStripsLeadingSeparator(t *testing.T) {
	doc, err := parseDoc(t, "== Getting Started\n", Config{
		Attributes: map[string]string{"idprefix": ""},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sec := doc.Body[0].(*ast.Section)
	if sec.ID != "getting_started" {
		t.Fatalf("got id %q, want %q", sec.ID, "getting_started")
	}
}

func TestTOCDisabledByDefault(t *testing.T) {
	doc, err := parseDoc(t, "== Section One\n\ntext\n", Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.TOC == nil || doc.TOC.Enabled {
		t.Fatalf("expected TOC.Enabled false without :toc: attribute, got %+v", doc.TOC)
	}
}

func TestTOCEnabledByAttribute(t *testing.T) {
	doc, err := parseDoc(t, ":toc:\n\n== Section One\n\ntext\n", Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.TOC == nil || !doc.TOC.Enabled {
		t.Fatalf("expected TOC.Enabled true, got %+v", doc.TOC)
	}
}

func TestAsciidocStyleCellGetsNestedBlocks(t *testing.T) {
	doc, err := parseDoc(t, "[cols=\"1a\"]\n|===\n|a *bold* cell\n|===\n", Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tbl, ok := doc.Body[0].(*ast.Table)
	if !ok {
		t.Fatalf("expected *ast.Table, got:\n%s", ast.Dump(doc.Body[0]))
	}
	if len(tbl.Rows) != 1 || len(tbl.Rows[0].Cells) != 1 {
		t.Fatalf("expected one row with one cell, got %+v", tbl.Rows)
	}
	cell := tbl.Rows[0].Cells[0]
	if cell.Blocks == nil {
		t.Fatal("expected an a-styled cell to carry nested Blocks")
	}
	if cell.Inline != nil {
		t.Fatal("expected an a-styled cell to leave Inline nil")
	}
}

func TestPlainCellKeepsInlineContent(t *testing.T) {
	doc, err := parseDoc(t, "|===\n|plain cell\n|===\n", Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cell := doc.Body[0].(*ast.Table).Rows[0].Cells[0]
	if cell.Blocks != nil {
		t.Fatal("expected a plain cell to leave Blocks nil")
	}
	if cell.Inline == nil {
		t.Fatal("expected a plain cell to carry Inline content")
	}
}

func TestUnterminatedTableErrorsInStrictMode(t *testing.T) {
	_, err := parseDoc(t, "|===\n|unterminated\n", Config{Strict: true})
	if err == nil {
		t.Fatal("expected an error for an unterminated table in strict mode")
	}
}

func TestUnterminatedTableToleratedOutsideStrictMode(t *testing.T) {
	doc, err := parseDoc(t, "|===\n|unterminated\n", Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Body) != 1 {
		t.Fatalf("expected the partial table to still be returned, got %d blocks", len(doc.Body))
	}
}

func TestCalloutListParsedAfterListing(t *testing.T) {
	src := "----\nfunc main() {} // <1>\n----\n<1> The entry point.\n<.> Auto-numbered.\n"
	doc, err := parseDoc(t, src, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Body) != 2 {
		t.Fatalf("expected listing + callout list, got %d blocks", len(doc.Body))
	}
	col, ok := doc.Body[1].(*ast.CalloutList)
	if !ok {
		t.Fatalf("expected *ast.CalloutList, got:\n%s", ast.Dump(doc.Body[1]))
	}
	if len(col.Items) != 2 {
		t.Fatalf("expected two callout items, got %d", len(col.Items))
	}
	if col.Items[0].Number != 1 || col.Items[1].Number != 2 {
		t.Fatalf("expected numbers 1,2, got %d,%d", col.Items[0].Number, col.Items[1].Number)
	}
}

func TestDiscreteHeadingProducesNoSection(t *testing.T) {
	doc, err := parseDoc(t, "[discrete]\n== Standalone Heading\n\ntext after\n", Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Body) != 2 {
		t.Fatalf("expected heading + paragraph as siblings, got %d blocks", len(doc.Body))
	}
	dh, ok := doc.Body[0].(*ast.DiscreteHeading)
	if !ok {
		t.Fatalf("expected *ast.DiscreteHeading, got:\n%s", ast.Dump(doc.Body[0]))
	}
	if dh.Level != 1 {
		t.Fatalf("expected level 1, got %d", dh.Level)
	}
}

func TestSectionLevelSkipErrorsInStrictMode(t *testing.T) {
	_, err := parseDoc(t, "== Top\n\n==== Skipped a level\n", Config{Strict: true})
	if err == nil {
		t.Fatal("expected an out-of-sequence error in strict mode")
	}
}

func TestSectionLevelSkipRetainedOutsideStrictMode(t *testing.T) {
	p := New("t.adoc", []byte("== Top\n\n==== Skipped a level\n"), Config{})
	doc, diags, err := p.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sec := doc.Body[0].(*ast.Section)
	if len(sec.Body) != 1 {
		t.Fatalf("expected the skipped section to be retained, got %d children", len(sec.Body))
	}
	if inner, ok := sec.Body[0].(*ast.Section); !ok || inner.Level != 3 {
		t.Fatalf("expected a retained level-3 section, got:\n%s", ast.Dump(sec.Body[0]))
	}
	found := false
	for _, d := range diags {
		if d.Code == "section_out_of_sequence" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a section_out_of_sequence diagnostic")
	}
}

func TestInlineAnchorInParagraphResolvesXref(t *testing.T) {
	doc, err := parseDoc(t, "[[note-1,First Note]]This paragraph has an anchor.\n\nSee <<note-1>>.\n", Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, ok := doc.Anchors.Lookup("note-1")
	if !ok {
		t.Fatal("expected the inline anchor to be registered")
	}
	if a.Reftext != "First Note" {
		t.Fatalf("expected reftext %q, got %q", "First Note", a.Reftext)
	}
}

func TestDescriptionListParsed(t *testing.T) {
	doc, err := parseDoc(t, "CPU:: The brain.\nRAM:: Short-term memory.\n", Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Body) != 1 {
		t.Fatalf("expected one description list, got %d blocks", len(doc.Body))
	}
	dl, ok := doc.Body[0].(*ast.DescriptionList)
	if !ok {
		t.Fatalf("expected *ast.DescriptionList, got:\n%s", ast.Dump(doc.Body[0]))
	}
	if len(dl.Items) != 2 {
		t.Fatalf("expected two items, got %d", len(dl.Items))
	}
	term := dl.Items[0].Term
	if len(term) == 0 {
		t.Fatal("expected the first item to carry term inlines")
	}
	if txt, ok := term[0].(*ast.Text); !ok || txt.Value != "CPU" {
		t.Fatalf("expected term %q, got:\n%s", "CPU", ast.Dump(term[0]))
	}
	if len(dl.Items[0].Description) != 1 {
		t.Fatalf("expected a same-line description block, got %d", len(dl.Items[0].Description))
	}
}

func TestDescriptionListItemWithContinuationBlock(t *testing.T) {
	src := "Term::\n+\nAttached paragraph.\n"
	doc, err := parseDoc(t, src, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dl, ok := doc.Body[0].(*ast.DescriptionList)
	if !ok {
		t.Fatalf("expected *ast.DescriptionList, got:\n%s", ast.Dump(doc.Body[0]))
	}
	if len(dl.Items) != 1 || len(dl.Items[0].Description) != 1 {
		t.Fatalf("expected one item with one attached block, got %+v", dl.Items)
	}
}
