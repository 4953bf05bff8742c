package attrs

import "testing"

func TestParseAttrListPositionalAndNamed(t *testing.T) {
	a := ParseAttrList(`quote, Attribution, citetitle="My Book"`)
	if a.First() != "quote" {
		t.Fatalf("expected first positional 'quote', got %q", a.First())
	}
	if len(a.Positional) != 2 || a.Positional[1] != "Attribution" {
		t.Fatalf("unexpected positional list: %v", a.Positional)
	}
	if v, ok := a.NamedValue("citetitle"); !ok || v != "My Book" {
		t.Fatalf("expected citetitle=My Book, got %q, %v", v, ok)
	}
}

func TestParseAttrListShorthand(t *testing.T) {
	a := ParseAttrList(`quote#disclaimer.center.bold%incremental`)
	if a.First() != "quote" {
		t.Fatalf("expected base 'quote', got %q", a.First())
	}
	if a.ID != "disclaimer" {
		t.Fatalf("expected id 'disclaimer', got %q", a.ID)
	}
	if len(a.Roles) != 2 || a.Roles[0] != "center" || a.Roles[1] != "bold" {
		t.Fatalf("unexpected roles: %v", a.Roles)
	}
	if len(a.Options) != 1 || a.Options[0] != "incremental" {
		t.Fatalf("unexpected options: %v", a.Options)
	}
}

func TestParseAttrListIDAndRoleNamedForm(t *testing.T) {
	a := ParseAttrList(`id=foo, role=bar baz`)
	if a.ID != "foo" {
		t.Fatalf("expected id=foo, got %q", a.ID)
	}
	if len(a.Roles) != 2 {
		t.Fatalf("expected 2 roles, got %v", a.Roles)
	}
}

func TestParseAttrListEmpty(t *testing.T) {
	a := ParseAttrList("")
	if len(a.Positional) != 0 || len(a.Named) != 0 {
		t.Fatalf("expected empty AttrList, got %+v", a)
	}
}

func TestParseAttrListQuotedCommaPreserved(t *testing.T) {
	a := ParseAttrList(`"a, b", c`)
	if len(a.Positional) != 2 || a.Positional[1] != "c" {
		t.Fatalf("unexpected positional: %v", a.Positional)
	}
	if a.First() != "a, b" {
		t.Fatalf("expected quoted comma to survive as one field, got %q", a.First())
	}
}
