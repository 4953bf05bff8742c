// Package token implements the lexical layer of the AsciiDoc pipeline:
// source locations, the token alphabet, the source stack (primary
// document plus nested includes and temporary attribute-expansion
// buffers), and the byte-at-a-time lexer itself.
package token

import "fmt"

// Location identifies a byte range within a specific source buffer.
// IncludeDepth indexes into the SourceStack: 0 is always the primary
// document; positive values are includes, in the order they were
// pushed.
type Location struct {
	Start        int
	End          int
	IncludeDepth int
}

// Len returns the byte length of the location.
func (l Location) Len() int {
	return l.End - l.Start
}

// Extend returns the smallest Location enclosing both l and other.
// It panics if the two locations are not in the same source buffer;
// callers must never union locations across include boundaries: a
// node's location always lies entirely within one source buffer.
func (l Location) Extend(other Location) Location {
	if l.IncludeDepth != other.IncludeDepth {
		panic("token: cannot extend Location across include boundaries")
	}
	start := l.Start
	if other.Start < start {
		start = other.Start
	}
	end := l.End
	if other.End > end {
		end = other.End
	}

	return Location{Start: start, End: end, IncludeDepth: l.IncludeDepth}
}

// Contains reports whether other lies entirely within l.
func (l Location) Contains(other Location) bool {
	return l.IncludeDepth == other.IncludeDepth &&
		other.Start >= l.Start && other.End <= l.End
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d@%d", l.Start, l.End, l.IncludeDepth)
}

// Position is a human-facing (line, column) pair produced by
// LineIndex.Locate, distinct from the byte-offset Location used
// internally by the lexer and AST. Column counts runes, not bytes;
// DisplayColumn additionally accounts for wide runes (CJK, emoji) so a
// diagnostic pointing into a line with multi-byte or double-width
// characters still lines up under a monospaced terminal cursor.
type Position struct {
	Line          int
	Column        int
	DisplayColumn int
}
