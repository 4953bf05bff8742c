package ast

import (
	"testing"

	"github.com/connerohnesorge/asciidork/token"
)

func loc(n int) token.Location {
	return token.Location{Start: 0, End: n, IncludeDepth: 0}
}

func TestHashStableAcrossLocations(t *testing.T) {
	a := NewText(loc(3), "abc")
	b := NewText(token.Location{Start: 100, End: 200, IncludeDepth: 0}, "abc")
	if a.Hash() != b.Hash() {
		t.Fatal("Text nodes with identical content but different locations should hash equal")
	}
}

func TestHashDiffersForDifferentContent(t *testing.T) {
	a := NewText(loc(3), "abc")
	b := NewText(loc(3), "xyz")
	if a.Hash() == b.Hash() {
		t.Fatal("Text nodes with different content should hash differently")
	}
}

func TestAnchorRegistryFirstWriteWins(t *testing.T) {
	r := NewAnchorRegistry()
	if ok := r.Register(Anchor{ID: "intro", Reftext: "Introduction"}); !ok {
		t.Fatal("expected first registration to succeed")
	}
	if ok := r.Register(Anchor{ID: "intro", Reftext: "Different"}); ok {
		t.Fatal("expected duplicate registration to be rejected")
	}
	a, ok := r.Lookup("intro")
	if !ok || a.Reftext != "Introduction" {
		t.Fatalf("expected original reftext to survive, got %+v", a)
	}
}

func TestAnchorRegistryOrderPreserved(t *testing.T) {
	r := NewAnchorRegistry()
	r.Register(Anchor{ID: "b"})
	r.Register(Anchor{ID: "a"})
	all := r.All()
	if len(all) != 2 || all[0].ID != "b" || all[1].ID != "a" {
		t.Fatalf("expected insertion order [b a], got %v", all)
	}
}

func TestWalkVisitsChildrenPreOrder(t *testing.T) {
	txt := NewText(loc(1), "x")
	p := NewParagraph(loc(1), []Node{txt}, nil)
	doc := NewDocument(loc(1), nil, []Block{p}, NewAnchorRegistry(), nil)

	var visited []Kind
	v := &recordingVisitor{BaseVisitor: BaseVisitor{}, record: &visited}
	if err := Walk(doc, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Kind{KindDocument, KindParagraph, KindText}
	if len(visited) != len(want) {
		t.Fatalf("got %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("got %v, want %v", visited, want)
		}
	}
}

func TestWalkSkipChildren(t *testing.T) {
	txt := NewText(loc(1), "x")
	p := NewParagraph(loc(1), []Node{txt}, nil)

	var visited []Kind
	v := &skippingVisitor{BaseVisitor: BaseVisitor{}, record: &visited}
	if err := Walk(p, v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visited) != 1 || visited[0] != KindParagraph {
		t.Fatalf("expected only the paragraph to be visited, got %v", visited)
	}
}

type recordingVisitor struct {
	BaseVisitor
	record *[]Kind
}

func (r *recordingVisitor) VisitDocument(d *Document) error {
	*r.record = append(*r.record, d.Kind())

	return nil
}
func (r *recordingVisitor) VisitParagraph(p *Paragraph) error {
	*r.record = append(*r.record, p.Kind())

	return nil
}
func (r *recordingVisitor) VisitText(t *Text) error {
	*r.record = append(*r.record, t.Kind())

	return nil
}

type skippingVisitor struct {
	BaseVisitor
	record *[]Kind
}

func (s *skippingVisitor) VisitParagraph(p *Paragraph) error {
	*s.record = append(*s.record, p.Kind())

	return ErrSkipChildren
}

func TestTOCBuildsNestedEntries(t *testing.T) {
	child := NewSection(loc(1), 2, nil, "child", nil)
	parent := NewSection(loc(1), 1, nil, "parent", []Block{child})
	toc := NewTOC(true, TOCAuto, []Block{parent})
	if len(toc.Entries) != 1 || toc.Entries[0].ID != "parent" {
		t.Fatalf("unexpected top-level entries: %+v", toc.Entries)
	}
	if len(toc.Entries[0].Children) != 1 || toc.Entries[0].Children[0].ID != "child" {
		t.Fatalf("unexpected nested entries: %+v", toc.Entries[0].Children)
	}
}
