package attrs

import "testing"

func TestStoreApiLockedCannotBeOverridden(t *testing.T) {
	s := NewStore(map[string]string{"doctitle": "Fixed"})
	err := s.Set("doctitle", "Changed", false)
	if err == nil {
		t.Fatal("expected error overriding an API-locked attribute")
	}
	v, _ := s.Get("doctitle")
	if v != "Fixed" {
		t.Fatalf("expected value to remain 'Fixed', got %q", v)
	}
}

func TestStoreHeaderUnlockedBecomesLockedAfterHeader(t *testing.T) {
	s := NewStore(nil)
	if err := s.Set("toc", "true", true); err != nil {
		t.Fatalf("unexpected error setting header attribute: %v", err)
	}
	s.CloseHeader()
	if err := s.Set("toc", "false", false); err == nil {
		t.Fatal("expected error overriding a header-unlocked attribute from the body")
	}
}

func TestStoreUnlockedOverridableAnywhere(t *testing.T) {
	s := NewStore(nil)
	if err := s.Set("icons", "font", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.CloseHeader()
	if err := s.Set("icons", "image", false); err != nil {
		t.Fatalf("expected unlocked attribute to remain overridable: %v", err)
	}
	v, _ := s.Get("icons")
	if v != "image" {
		t.Fatalf("expected updated value 'image', got %q", v)
	}
}

func TestStoreIsSetVsIsTrue(t *testing.T) {
	s := NewStore(nil)
	_ = s.Set("sectnums", "", false)
	if !s.IsSet("sectnums") || !s.IsTrue("sectnums") {
		t.Fatal("expected an empty-valued attribute to count as set and true")
	}
	if s.IsSet("nope") {
		t.Fatal("unset attribute should report IsSet == false")
	}
}

func TestStoreUnsetRemovesEntry(t *testing.T) {
	s := NewStore(nil)
	_ = s.Set("foo", "bar", false)
	if err := s.Unset("foo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.IsSet("foo") {
		t.Fatal("expected foo to be removed")
	}
}
