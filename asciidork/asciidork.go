// Package asciidork is the top-level convenience API: it wires
// blockparser, eval, and diag into a single Parse call so a caller
// never needs to construct a blockparser.Parser directly.
//
// It owns no I/O of its own - no file reading, no include-path
// resolution, no CLI.
// A caller that needs include:: support supplies a Config.IncludeResolver
// callback; the block parser invokes it when it encounters an include
// directive and pushes the resolved bytes onto the source stack itself
// - the caller never pre-resolves a whole document.
package asciidork

import (
	"github.com/connerohnesorge/asciidork/ast"
	"github.com/connerohnesorge/asciidork/attrs"
	"github.com/connerohnesorge/asciidork/blockparser"
	"github.com/connerohnesorge/asciidork/diag"
	"github.com/connerohnesorge/asciidork/eval"
)

// Config mirrors blockparser.Config: API-supplied attributes, whether a
// recorded Error diagnostic should abort parsing early, and the
// include-resolution hook.
type Config struct {
	Strict     bool
	Attributes map[string]string

	// AttributeMissing selects how a `{name}` reference to an unset
	// attribute behaves; the zero value keeps the reference literal.
	AttributeMissing attrs.AttrMissing

	// IncludeResolver resolves include:: directives; see
	// blockparser.IncludeResolver. Nil means include:: directives are
	// reported as IncludeNotFound.
	IncludeResolver blockparser.IncludeResolver

	// MaxIncludeDepth bounds include nesting; 0 uses blockparser's
	// default of 64.
	MaxIncludeDepth int
}

// Outcome carries a parse's AST alongside every diagnostic recorded
// along the way. Doc is nil only when err
// is non-nil (a strict-mode Error aborted parsing before a Document
// could be built).
type Outcome struct {
	Doc   *ast.Document
	Diags []diag.Diagnostic
}

// Parse runs the lexer, block parser, and inline parser over src and
// returns the resulting document plus any diagnostics. file identifies
// src for diagnostics and location reporting; it is not resolved
// against a filesystem.
func Parse(file string, src []byte, cfg Config) (Outcome, error) {
	p := blockparser.New(file, src, blockparser.Config{
		Strict:           cfg.Strict,
		Attributes:       cfg.Attributes,
		AttributeMissing: cfg.AttributeMissing,
		IncludeResolver:  cfg.IncludeResolver,
		MaxIncludeDepth:  cfg.MaxIncludeDepth,
	})
	doc, diags, err := p.Parse()

	return Outcome{Doc: doc, Diags: diags}, err
}

// Evaluate drives b over an Outcome's document using a fresh
// eval.Evaluator scoped to that document's anchor registry.
func Evaluate(out Outcome, b eval.Backend) error {
	diags := diag.NewBag(false)
	for _, d := range out.Diags {
		diags.Add(d)
	}

	return eval.New(out.Doc.Anchors, diags).Evaluate(out.Doc, b)
}
