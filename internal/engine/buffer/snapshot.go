package buffer

import "strings"

// Snapshot is a read-only view of a buffer at one revision. It does not
// change when the buffer does and is safe for concurrent use.
type Snapshot struct {
	lines      []string
	revision   uint64
	lineEnding LineEnding
	eol        bool
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int { return len(s.lines) }

// Line returns line lnum, or "" when out of range.
func (s *Snapshot) Line(lnum int) string {
	if lnum < 1 || lnum > len(s.lines) {
		return ""
	}
	return s.lines[lnum-1]
}

// Revision returns the buffer revision the snapshot was taken at.
func (s *Snapshot) Revision() uint64 { return s.revision }

// Text returns the content joined with the buffer's line ending.
func (s *Snapshot) Text() string {
	seq := s.lineEnding.Sequence()
	text := strings.Join(s.lines, seq)
	if s.eol {
		text += seq
	}
	return text
}
