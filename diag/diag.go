// Package diag provides the diagnostic and structured-error types shared
// across the lexer, block parser, inline parser, and evaluator: one
// exported type per error taxonomy entry, pointer receivers on Error(),
// structured fields, and Unwrap() where an error wraps an inner cause.
package diag

import (
	"fmt"

	"github.com/connerohnesorge/asciidork/token"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	// SeverityWarning marks a recoverable condition; parsing continues.
	SeverityWarning Severity = iota
	// SeverityError marks a condition that aborts parsing in strict mode.
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}

	return "warning"
}

// Code identifies the kind of diagnostic, independent of its message text.
type Code string

// Diagnostic codes, one per error taxonomy entry.
const (
	CodeUnterminatedDelimiter Code = "unterminated_delimiter"
	CodeSectionOutOfSequence  Code = "section_out_of_sequence"
	CodeBadAttrList           Code = "bad_attr_list"
	CodeMalformedTable        Code = "malformed_table"
	CodeInvalidListNesting    Code = "invalid_list_nesting"
	CodeIncludeNotFound       Code = "include_not_found"
	CodeIncludeDepthExceeded  Code = "include_depth_exceeded"
	CodeIncludeCycle          Code = "include_cycle"
	CodeAttributeUndefined    Code = "attribute_undefined"
	CodeAttributeLocked       Code = "attribute_locked"
	CodeUnknownAnchor         Code = "unknown_anchor"
	CodeUnclosedCell          Code = "unclosed_cell"
	CodeColumnCountMismatch   Code = "column_count_mismatch"
)

// Diagnostic is a single {location, severity, code, message} record.
type Diagnostic struct {
	Location token.Location
	Severity Severity
	Code     Code
	Message  string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.Code, d.Message)
}

// Bag accumulates diagnostics during a single parse. It is not safe for
// concurrent use; each parser owns exactly one Bag.
type Bag struct {
	items       []Diagnostic
	strict      bool
	firstErrHit bool
}

// NewBag creates an empty diagnostic bag. strict controls whether the
// first Error short-circuits.
func NewBag(strict bool) *Bag {
	return &Bag{strict: strict}
}

// Add appends a diagnostic. It returns the diagnostic itself as an error
// when, in strict mode, this is the first SeverityError recorded -
// callers that want strict-mode short-circuiting should propagate a
// non-nil return value upward; lax-mode callers may ignore it.
func (b *Bag) Add(d Diagnostic) error {
	b.items = append(b.items, d)
	if d.Severity == SeverityError {
		if b.strict && !b.firstErrHit {
			b.firstErrHit = true

			return d
		}
	}

	return nil
}

// Warn records a warning diagnostic. Warnings never short-circuit.
func (b *Bag) Warn(loc token.Location, code Code, format string, args ...any) {
	_ = b.Add(Diagnostic{
		Location: loc,
		Severity: SeverityWarning,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Err records an error diagnostic, returning non-nil in strict mode on
// the first occurrence (see Add).
func (b *Bag) Err(loc token.Location, code Code, format string, args ...any) error {
	return b.Add(Diagnostic{
		Location: loc,
		Severity: SeverityError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Strict reports whether this bag enforces strict short-circuiting.
func (b *Bag) Strict() bool {
	return b.strict
}

// Items returns all diagnostics recorded so far, in insertion order.
func (b *Bag) Items() []Diagnostic {
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)

	return out
}

// HasErrors reports whether any SeverityError diagnostic was recorded.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}

	return false
}

// UnterminatedDelimiterError indicates a delimited block was opened but
// never closed before end of input.
type UnterminatedDelimiterError struct {
	Loc    token.Location
	Marker string
}

func (e *UnterminatedDelimiterError) Error() string {
	return fmt.Sprintf("unterminated delimited block %q starting at %s", e.Marker, e.Loc)
}

// SectionOutOfSequenceError indicates a section's level skipped a level
// relative to its expected parent.
type SectionOutOfSequenceError struct {
	Loc      token.Location
	Level    int
	Expected int
}

func (e *SectionOutOfSequenceError) Error() string {
	return fmt.Sprintf(
		"section level %d out of sequence at %s (expected <= %d)",
		e.Level, e.Loc, e.Expected,
	)
}

// BadAttrListError indicates a `[...]` attribute list failed to parse.
type BadAttrListError struct {
	Loc token.Location
	Err error
}

func (e *BadAttrListError) Error() string {
	return fmt.Sprintf("malformed attribute list at %s: %v", e.Loc, e.Err)
}

func (e *BadAttrListError) Unwrap() error { return e.Err }

// MalformedTableError indicates a table could not be parsed.
type MalformedTableError struct {
	Loc    token.Location
	Reason string
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed table at %s: %s", e.Loc, e.Reason)
}

// InvalidListNestingError indicates a list marker could not be reconciled
// with the current list stack.
type InvalidListNestingError struct {
	Loc    token.Location
	Marker string
}

func (e *InvalidListNestingError) Error() string {
	return fmt.Sprintf("invalid list nesting at %s: marker %q", e.Loc, e.Marker)
}

// IncludeNotFoundError indicates a caller-supplied include resolver could
// not locate the requested target.
type IncludeNotFoundError struct {
	Loc    token.Location
	Target string
}

func (e *IncludeNotFoundError) Error() string {
	return fmt.Sprintf("include target not found at %s: %s", e.Loc, e.Target)
}

// IncludeDepthExceededError indicates nested includes exceeded the
// configured maximum depth.
type IncludeDepthExceededError struct {
	Loc   token.Location
	Depth int
	Max   int
}

func (e *IncludeDepthExceededError) Error() string {
	return fmt.Sprintf("include depth %d exceeds max %d at %s", e.Depth, e.Max, e.Loc)
}

// IncludeCycleError indicates an include chain formed a cycle.
type IncludeCycleError struct {
	Loc   token.Location
	Chain []string
}

func (e *IncludeCycleError) Error() string {
	return fmt.Sprintf("include cycle detected at %s: %v", e.Loc, e.Chain)
}

// AttributeUndefinedError indicates an `{name}` reference to an
// undefined attribute, under a config that treats this as an error.
type AttributeUndefinedError struct {
	Loc  token.Location
	Name string
}

func (e *AttributeUndefinedError) Error() string {
	return fmt.Sprintf("attribute %q undefined at %s", e.Name, e.Loc)
}

// AttributeLockedError indicates a body attempted to override an
// API-locked document attribute.
type AttributeLockedError struct {
	Loc  token.Location
	Name string
}

func (e *AttributeLockedError) Error() string {
	return fmt.Sprintf("attribute %q is locked, cannot override at %s", e.Name, e.Loc)
}

// UnclosedCellError indicates a table cell was opened but never closed.
type UnclosedCellError struct {
	Loc token.Location
}

func (e *UnclosedCellError) Error() string {
	return fmt.Sprintf("unclosed table cell at %s", e.Loc)
}

// ColumnCountMismatchError indicates a table row had a different number
// of cells than the column specification declared.
type ColumnCountMismatchError struct {
	Loc      token.Location
	Expected int
	Actual   int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf(
		"table row at %s has %d cells, expected %d",
		e.Loc, e.Actual, e.Expected,
	)
}
