package line

import "github.com/connerohnesorge/asciidork/token"

// ContiguousLines is a run of Lines with no intervening blank line,
// treated by the block parser as a single logical paragraph/list-item/
// cell body before the inline parser walks it.
type ContiguousLines struct {
	lines []*Line
}

// NewContiguousLines wraps an already-split slice of Lines.
func NewContiguousLines(lines []*Line) *ContiguousLines {
	return &ContiguousLines{lines: lines}
}

// IsEmpty reports whether there are no lines at all.
func (c *ContiguousLines) IsEmpty() bool {
	return len(c.lines) == 0
}

// Len returns the number of lines.
func (c *ContiguousLines) Len() int {
	return len(c.lines)
}

// Lines returns the underlying slice. Callers must not mutate it.
func (c *ContiguousLines) Lines() []*Line {
	return c.lines
}

// Current returns the first line without consuming it.
func (c *ContiguousLines) Current() (*Line, bool) {
	if len(c.lines) == 0 {
		return nil, false
	}

	return c.lines[0], true
}

// Shift removes and returns the first line.
func (c *ContiguousLines) Shift() (*Line, bool) {
	if len(c.lines) == 0 {
		return nil, false
	}
	l := c.lines[0]
	c.lines = c.lines[1:]

	return l, true
}

// AnyLineStartsWith reports whether any line's first token has kind k -
// used e.g. to detect whether a paragraph contains an admonition-style
// lead-in anywhere after wrapping.
func (c *ContiguousLines) AnyLineStartsWith(k token.Kind) bool {
	for _, l := range c.lines {
		if l.StartsWith(k) {
			return true
		}
	}

	return false
}

// AllLinesTerminatedBy reports whether every line ends with a
// non-escaped token of kind k - used for continuation markers like a
// trailing ' +' line-break or a backslash-continued table cell.
func (c *ContiguousLines) AllLinesTerminatedBy(k token.Kind) bool {
	if len(c.lines) == 0 {
		return false
	}
	for _, l := range c.lines {
		if !l.EndsWithNonEscaped(k) {
			return false
		}
	}

	return true
}

// Location returns the union of every contained line's Location.
func (c *ContiguousLines) Location() token.Location {
	if len(c.lines) == 0 {
		return token.Location{}
	}
	loc := c.lines[0].Location()
	for _, l := range c.lines[1:] {
		ll := l.Location()
		if ll.Len() == 0 {
			continue
		}
		loc = loc.Extend(ll)
	}

	return loc
}

// Reconstitute joins every line's reconstituted text with newlines,
// reproducing the original source text of the run (used to re-lex a
// table cell marked as `a` (AsciiDoc) as its own sub-document).
func (c *ContiguousLines) Reconstitute() string {
	out := ""
	for i, l := range c.lines {
		if i > 0 {
			out += "\n"
		}
		out += l.Reconstitute()
	}

	return out
}

// SplitContiguous splits a full token stream (already split into
// per-newline Lines with blank markers preserved as empty Lines) into
// runs of ContiguousLines, breaking at every blank Line.
func SplitContiguous(lines []*Line) []*ContiguousLines {
	var groups []*ContiguousLines
	var cur []*Line
	for _, l := range lines {
		if l.IsEmpty() {
			if len(cur) > 0 {
				groups = append(groups, NewContiguousLines(cur))
				cur = nil
			}

			continue
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		groups = append(groups, NewContiguousLines(cur))
	}

	return groups
}
