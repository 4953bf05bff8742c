// Package attrs implements the document attribute store and the
// `[named,...]` attribute list parser: a lock-aware name/value table
// with `{name}` expansion.
package attrs

import "fmt"

// LockState classifies whether a document attribute may still be set
// or overridden by document content.
type LockState int

const (
	// Unlocked attributes may be freely set or overridden by the
	// document body.
	Unlocked LockState = iota
	// HeaderUnlocked attributes may be set while the document header is
	// still open, but become locked once the body begins.
	HeaderUnlocked
	// ApiLocked attributes were set by the caller's Config and can never
	// be overridden by document content.
	ApiLocked
)

func (s LockState) String() string {
	switch s {
	case HeaderUnlocked:
		return "header-unlocked"
	case ApiLocked:
		return "api-locked"
	default:
		return "unlocked"
	}
}

type entry struct {
	value string
	lock  LockState
}

// Store holds document attributes plus their lock state. The block
// parser is the store's single writer; the inline parser and evaluator
// are read-only consumers.
type Store struct {
	entries      map[string]entry
	headerClosed bool
}

// NewStore creates a Store seeded from caller-supplied API attributes,
// which are recorded as ApiLocked and can never be overridden by
// document content.
func NewStore(apiAttrs map[string]string) *Store {
	s := &Store{entries: make(map[string]entry, len(apiAttrs))}
	for k, v := range apiAttrs {
		s.entries[k] = entry{value: v, lock: ApiLocked}
	}

	return s
}

// CloseHeader transitions any HeaderUnlocked attribute to locked,
// called once the block parser leaves the document header.
func (s *Store) CloseHeader() {
	s.headerClosed = true
}

// Get returns an attribute's value and whether it is set.
func (s *Store) Get(name string) (string, bool) {
	e, ok := s.entries[name]
	if !ok {
		return "", false
	}

	return e.value, true
}

// IsSet reports whether name has any value, including the empty string
// (AsciiDoc attributes may be "set but empty", distinct from unset).
func (s *Store) IsSet(name string) bool {
	_, ok := s.entries[name]

	return ok
}

// IsTrue reports whether a boolean-style attribute is set (AsciiDoc
// attributes are boolean-true whenever merely set, regardless of
// value).
func (s *Store) IsTrue(name string) bool {
	return s.IsSet(name)
}

// ErrLocked is returned by Set when a document-content write targets a
// locked attribute.
type ErrLocked struct {
	Name string
	Lock LockState
}

func (e *ErrLocked) Error() string {
	return fmt.Sprintf("attribute %q is %s and cannot be set from document content", e.Name, e.Lock)
}

// Set assigns name from document content. fromHeader marks a
// declaration seen while still inside the document header, which
// becomes HeaderUnlocked (further document-body writes fail once the
// header has closed).
func (s *Store) Set(name, value string, fromHeader bool) error {
	if e, ok := s.entries[name]; ok {
		switch e.lock {
		case ApiLocked:
			return &ErrLocked{Name: name, Lock: ApiLocked}
		case HeaderUnlocked:
			if s.headerClosed && !fromHeader {
				return &ErrLocked{Name: name, Lock: HeaderUnlocked}
			}
		}
	}
	lock := Unlocked
	if fromHeader {
		lock = HeaderUnlocked
	}
	s.entries[name] = entry{value: value, lock: lock}

	return nil
}

// Unset removes name entirely, if it is not ApiLocked.
func (s *Store) Unset(name string) error {
	if e, ok := s.entries[name]; ok && e.lock == ApiLocked {
		return &ErrLocked{Name: name, Lock: ApiLocked}
	}
	delete(s.entries, name)

	return nil
}

// Names returns every currently-set attribute name, for diagnostics and
// for building the inline parser's `{name}` expansion source.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.entries))
	for k := range s.entries {
		out = append(out, k)
	}

	return out
}
