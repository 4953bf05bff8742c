package ast

import "github.com/connerohnesorge/asciidork/token"

// Anchor is one registered cross-reference target: a section ID, an
// explicit `[[id]]`/`anchor:id[]`, or a table/figure/example caption.
// Title is the owning construct's rendered title text (a section
// heading); Reftext is only set when the author gave an explicit
// reftext, and outranks both the title and an xref's own link text.
type Anchor struct {
	ID      string
	Title   string
	Reftext string
	Loc     token.Location
	// SourceFile is the include_depth's owning file name, used by
	// cross-file xref resolution.
	SourceFile string
}

// AnchorRegistry is an insertion-ordered table of anchors. Duplicate
// IDs are warned about, not replaced - the first registration wins and
// stays resolvable, matching asciidoctor's behavior.
type AnchorRegistry struct {
	order []string
	byID  map[string]Anchor
}

// NewAnchorRegistry creates an empty registry.
func NewAnchorRegistry() *AnchorRegistry {
	return &AnchorRegistry{byID: make(map[string]Anchor)}
}

// Register adds an anchor. It returns false (and leaves the existing
// entry untouched) when id is already registered - callers should
// report a duplicate-anchor diagnostic in that case.
func (r *AnchorRegistry) Register(a Anchor) bool {
	if _, exists := r.byID[a.ID]; exists {
		return false
	}
	r.byID[a.ID] = a
	r.order = append(r.order, a.ID)

	return true
}

// Lookup resolves an anchor by ID.
func (r *AnchorRegistry) Lookup(id string) (Anchor, bool) {
	a, ok := r.byID[id]

	return a, ok
}

// All returns every registered anchor in insertion order.
func (r *AnchorRegistry) All() []Anchor {
	out := make([]Anchor, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id]
	}

	return out
}
