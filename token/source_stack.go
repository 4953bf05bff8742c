package token

import (
	"sort"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// BufPolicy controls how locations are assigned to tokens drawn from a
// temporary buffer injected by SetTmpBuf.
type BufPolicy int

const (
	// PolicyRepeat assigns every token drawn from the tmp buffer the
	// same fixed Location (used to re-point an expanded {attr} run at
	// the original AttrRef token's location).
	PolicyRepeat BufPolicy = iota
	// PolicyOffset assigns tokens a Location shifted by a fixed byte
	// offset from a base Location.
	PolicyOffset
)

// sourceEntry is one buffer on the source stack: the primary document
// or a pushed include.
type sourceEntry struct {
	file            string
	bytes           []byte
	pos             int
	leveloffset     int
	maxIncludeDepth int
	lineOffsets     []int // cached newline byte offsets, built lazily
	lineOffsetsBuilt bool
	offsetAdjust    int // set via AdjustOffset; shifts reported line numbers
}

func newSourceEntry(file string, bytes []byte, leveloffset, maxIncludeDepth int) *sourceEntry {
	// Match asciidoctor's include processor: a pushed source is always
	// newline-terminated, even if the caller didn't terminate the last
	// line. The primary source given to NewSourceStack is lexed as-is.
	if len(bytes) > 0 && bytes[len(bytes)-1] != '\n' {
		cp := make([]byte, len(bytes)+1)
		copy(cp, bytes)
		cp[len(bytes)] = '\n'
		bytes = cp
	}

	return &sourceEntry{
		file:            file,
		bytes:           bytes,
		leveloffset:     leveloffset,
		maxIncludeDepth: maxIncludeDepth,
	}
}

func (e *sourceEntry) ensureLineOffsets() {
	if e.lineOffsetsBuilt {
		return
	}
	e.lineOffsetsBuilt = true
	e.lineOffsets = append(e.lineOffsets, 0)
	for i, b := range e.bytes {
		if b == '\n' {
			e.lineOffsets = append(e.lineOffsets, i+1)
		}
	}
}

// tmpBuf is a micro-source injected in front of the active stream by
// SetTmpBuf, used to expand {name} attribute references without
// re-lexing surrounding text.
type tmpBuf struct {
	bytes     []byte
	pos       int
	policy    BufPolicy
	repeatLoc Location
	baseLoc   Location
	offsetN   int
}

// SourceStack owns the list of loaded source buffers (primary plus
// includes), per-source offset/leveloffset, and tmp-buffer injection.
type SourceStack struct {
	entries []*sourceEntry
	active  []int // stack of entry indices; top is current
	tmp     *tmpBuf
}

// NewSourceStack creates a stack with a single primary source.
func NewSourceStack(file string, bytes []byte) *SourceStack {
	e := &sourceEntry{file: file, bytes: bytes}

	return &SourceStack{entries: []*sourceEntry{e}, active: []int{0}}
}

// Push appends a new source (e.g. a resolved include) and makes it
// active; the current source's position is unchanged until the next
// byte is requested.
func (s *SourceStack) Push(file string, leveloffset, maxIncludeDepth int, bytes []byte) int {
	e := newSourceEntry(file, bytes, leveloffset, maxIncludeDepth)
	idx := len(s.entries)
	s.entries = append(s.entries, e)
	s.active = append(s.active, idx)

	return idx
}

// SetTmpBuf injects buf in front of the current stream. Tokens drawn
// from it get their Location computed per policy.
func (s *SourceStack) SetTmpBuf(buf string, policy BufPolicy, repeatLoc Location, baseLoc Location, offsetN int) {
	s.tmp = &tmpBuf{
		bytes:     []byte(buf),
		policy:    policy,
		repeatLoc: repeatLoc,
		baseLoc:   baseLoc,
		offsetN:   offsetN,
	}
}

// AdjustOffset adds an offset to future reported line numbers from the
// active source, used after include processing so error reports
// reference the correct line in the original file.
func (s *SourceStack) AdjustOffset(n int) {
	s.entries[s.CurrentIndex()].offsetAdjust += n
}

// CurrentIndex returns the include_depth of the currently active source.
func (s *SourceStack) CurrentIndex() int {
	return s.active[len(s.active)-1]
}

// Depth returns the number of active (nested) sources, 1 for the
// primary document alone.
func (s *SourceStack) Depth() int {
	return len(s.active)
}

// MaxIncludeDepth returns the effective include depth limit: the max
// of the limits configured on each stack entry.
func (s *SourceStack) MaxIncludeDepth() int {
	m := 0
	for _, e := range s.entries {
		if e.maxIncludeDepth > m {
			m = e.maxIncludeDepth
		}
	}

	return m
}

// FileAt returns the file name for the source at the given include depth.
func (s *SourceStack) FileAt(includeDepth int) string {
	if includeDepth < 0 || includeDepth >= len(s.entries) {
		return ""
	}

	return s.entries[includeDepth].file
}

// LeveloffsetAt returns the leveloffset recorded for the source at the
// given include depth.
func (s *SourceStack) LeveloffsetAt(includeDepth int) int {
	if includeDepth < 0 || includeDepth >= len(s.entries) {
		return 0
	}

	return s.entries[includeDepth].leveloffset
}

// IndexOfFile returns the include_depth of the source whose file name
// matches target, used to resolve cross-file xrefs
// (xref:other.adoc#id).
func (s *SourceStack) IndexOfFile(target string) (int, bool) {
	for i, e := range s.entries {
		if e.file == target {
			return i, true
		}
	}

	return 0, false
}

// peekByte returns the next byte without consuming it, along with
// whether a byte is available. When false, the current source (or tmp
// buffer) is exhausted; this does not necessarily mean the whole stack
// is exhausted - callers should call PopExhausted between tokens.
func (s *SourceStack) peekByte() (byte, bool) {
	if s.tmp != nil {
		if s.tmp.pos < len(s.tmp.bytes) {
			return s.tmp.bytes[s.tmp.pos], true
		}
		// tmp buffer is drained; fall through to the underlying stream.
		s.tmp = nil
	}
	e := s.entries[s.CurrentIndex()]
	if e.pos < len(e.bytes) {
		return e.bytes[e.pos], true
	}

	return 0, false
}

// nextByte consumes and returns the next byte, mirroring peekByte.
func (s *SourceStack) nextByte() (byte, bool) {
	if s.tmp != nil {
		if s.tmp.pos < len(s.tmp.bytes) {
			b := s.tmp.bytes[s.tmp.pos]
			s.tmp.pos++

			return b, true
		}
		s.tmp = nil
	}
	e := s.entries[s.CurrentIndex()]
	if e.pos < len(e.bytes) {
		b := e.bytes[e.pos]
		e.pos++

		return b, true
	}

	return 0, false
}

// curLoc returns the Location a one-byte token starting "now" would
// have, accounting for whether we're reading the tmp buffer or the
// underlying source.
func (s *SourceStack) curLoc() Location {
	if s.tmp != nil && s.tmp.pos < len(s.tmp.bytes) {
		switch s.tmp.policy {
		case PolicyRepeat:
			return s.tmp.repeatLoc
		case PolicyOffset:
			return Location{
				Start:        s.tmp.baseLoc.Start + s.tmp.offsetN + s.tmp.pos,
				End:          s.tmp.baseLoc.Start + s.tmp.offsetN + s.tmp.pos,
				IncludeDepth: s.tmp.baseLoc.IncludeDepth,
			}
		}
	}
	idx := s.CurrentIndex()

	return Location{Start: s.entries[idx].pos, End: s.entries[idx].pos, IncludeDepth: idx}
}

// InTmpBuf reports whether the stack is currently serving bytes from an
// injected tmp buffer rather than a real source.
func (s *SourceStack) InTmpBuf() bool {
	return s.tmp != nil && s.tmp.pos < len(s.tmp.bytes)
}

// PopExhausted pops the active source if it is fully consumed and more
// than one source remains active, returning true if a pop occurred.
// It never pops while a tmp buffer still has bytes.
func (s *SourceStack) PopExhausted() bool {
	if s.tmp != nil && s.tmp.pos < len(s.tmp.bytes) {
		return false
	}
	if len(s.active) <= 1 {
		return false
	}
	e := s.entries[s.CurrentIndex()]
	if e.pos < len(e.bytes) {
		return false
	}
	s.active = s.active[:len(s.active)-1]

	return true
}

// AtEOF reports whether the entire stack (all active sources and any
// tmp buffer) is exhausted.
func (s *SourceStack) AtEOF() bool {
	for s.PopExhausted() {
	}
	_, ok := s.peekByte()

	return !ok
}

// LineIndex computes (line, column) for a byte offset within the
// source identified by includeDepth, via binary search over cached
// newline offsets.
func (s *SourceStack) LineIndex(includeDepth, offset int) Position {
	if includeDepth < 0 || includeDepth >= len(s.entries) {
		return Position{Line: 1, Column: 1}
	}
	e := s.entries[includeDepth]
	e.ensureLineOffsets()
	// Binary search for the last line-start offset <= offset.
	i := sort.Search(len(e.lineOffsets), func(i int) bool {
		return e.lineOffsets[i] > offset
	})
	lineIdx := i - 1
	if lineIdx < 0 {
		lineIdx = 0
	}
	lineStart := e.lineOffsets[lineIdx]
	col, displayCol := runeAndDisplayColumn(e.bytes[lineStart:offset])

	return Position{
		Line:          lineIdx + 1 + e.offsetAdjust,
		Column:        col + 1,
		DisplayColumn: displayCol + 1,
	}
}

// runeAndDisplayColumn counts runes and cumulative display width (via
// go-runewidth's East-Asian-aware StringWidth) across the bytes
// preceding a location, so Column and DisplayColumn agree with byte
// Column only for ASCII-only lines.
func runeAndDisplayColumn(prefix []byte) (runes, display int) {
	for len(prefix) > 0 {
		r, size := utf8.DecodeRune(prefix)
		runes++
		display += runewidth.RuneWidth(r)
		prefix = prefix[size:]
	}

	return runes, display
}

// Locate is a convenience wrapper around LineIndex for a Location's
// start offset.
func (s *SourceStack) Locate(loc Location) Position {
	return s.LineIndex(loc.IncludeDepth, loc.Start)
}

// peekLoc is an alias of curLoc used by call sites that read it purely
// to stamp a synthesized multi-byte token before consuming anything.
func (s *SourceStack) peekLoc() Location {
	return s.curLoc()
}

// remainingBytes returns the byte slice of whichever stream (tmp buffer
// or active source) is currently being read, starting at the current
// read position, without consuming anything. It does not cross from
// the tmp buffer into the underlying source, or from one source into
// its parent: lookahead never reaches past the buffer that owns the
// current position, matching the "never spans an include boundary"
// invariant tokens themselves must respect.
func (s *SourceStack) remainingBytes() []byte {
	if s.tmp != nil && s.tmp.pos < len(s.tmp.bytes) {
		return s.tmp.bytes[s.tmp.pos:]
	}
	e := s.entries[s.CurrentIndex()]

	return e.bytes[e.pos:]
}

// peekWindow returns up to n upcoming bytes without consuming them.
func (s *SourceStack) peekWindow(n int) []byte {
	rem := s.remainingBytes()
	if len(rem) < n {
		return rem
	}

	return rem[:n]
}

// peekLineAfter returns the bytes from skip bytes past the current read
// position up to (but not including) the next newline or end of
// buffer. Used by lookahead recognizers (MacroName, AttrRef, Entity,
// Directive, DelimiterLine, CalloutNumber) that need to inspect the
// rest of the current line without consuming it.
func (s *SourceStack) peekLineAfter(skip int) []byte {
	rem := s.remainingBytes()
	if skip > len(rem) {
		return nil
	}
	rem = rem[skip:]
	for i, b := range rem {
		if b == '\n' || b == '\r' {
			return rem[:i]
		}
	}

	return rem
}
