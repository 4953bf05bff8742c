package blockparser

import (
	"fmt"
	"testing"

	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/attrs"
)

func paragraphText(t *testing.T, n ast.Node) string {
	t.Helper()
	p, ok := n.(*ast.Paragraph)
	if !ok {
		t.Fatalf("expected *ast.Paragraph, got:\n%s", ast.Dump(n))
	}
	s := ""
	for _, c := range p.Children() {
		if txt, ok := c.(*ast.Text); ok {
			s += txt.Value
		}
	}

	return s
}

func TestIncludeDirectiveSplicesResolvedContent(t *testing.T) {
	resolver := func(target string, al *attrs.AttrList) ([]byte, string, error) {
		if target != "chap1.adoc" {
			return nil, "", fmt.Errorf("unexpected target %q", target)
		}

		return []byte("chapter one\n"), target, nil
	}
	doc, err := parseDoc(t, "before\n\ninclude::chap1.adoc[]\n\nafter\n", Config{
		IncludeResolver: resolver,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Body) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d blocks", len(doc.Body))
	}
	if got := paragraphText(t, doc.Body[0]); got != "before" {
		t.Fatalf("got %q, want %q", got, "before")
	}
	if got := paragraphText(t, doc.Body[1]); got != "chapter one" {
		t.Fatalf("got %q, want %q", got, "chapter one")
	}
	if got := paragraphText(t, doc.Body[2]); got != "after" {
		t.Fatalf("got %q, want %q", got, "after")
	}
}

func TestIncludeDirectiveWithNoResolverIsNotFoundInStrictMode(t *testing.T) {
	_, err := parseDoc(t, "include::chap1.adoc[]\n", Config{Strict: true})
	if err == nil {
		t.Fatal("expected an IncludeNotFound error with no resolver configured in strict mode")
	}
}

func TestIncludeDirectiveWithNoResolverToleratedOutsideStrictMode(t *testing.T) {
	doc, err := parseDoc(t, "before\n\ninclude::chap1.adoc[]\n\nafter\n", Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Body) != 2 {
		t.Fatalf("expected the directive to be dropped rather than parsed as a paragraph, got %d blocks", len(doc.Body))
	}
}

func TestIncludeDirectiveReportsCycle(t *testing.T) {
	resolver := func(target string, al *attrs.AttrList) ([]byte, string, error) {
		return []byte("include::self.adoc[]\n"), target, nil
	}
	_, err := parseDoc(t, "include::self.adoc[]\n", Config{
		Strict:          true,
		IncludeResolver: resolver,
	})
	if err == nil {
		t.Fatal("expected an IncludeCycle error for a self-including target")
	}
}

func TestIncludeDirectiveReportsDepthExceeded(t *testing.T) {
	calls := 0
	resolver := func(target string, al *attrs.AttrList) ([]byte, string, error) {
		calls++

		return []byte(fmt.Sprintf("include::level%d.adoc[]\n", calls)), fmt.Sprintf("level%d.adoc", calls), nil
	}
	_, err := parseDoc(t, "include::level0.adoc[]\n", Config{
		Strict:          true,
		IncludeResolver: resolver,
		MaxIncludeDepth: 2,
	})
	if err == nil {
		t.Fatal("expected an IncludeDepthExceeded error")
	}
}
