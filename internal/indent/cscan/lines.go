package cscan

import "fmt"

// Lines is a read-only view of numbered source lines. Line numbers are
// 1-based; out of range numbers return "".
type Lines interface {
	LineCount() int
	Line(lnum int) string
}

// Pos is a position in a Lines view: a 1-based line number and a 0-based
// byte column.
type Pos struct {
	Lnum int
	Col  int
}

// String returns a human-readable representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d:%d)", p.Lnum, p.Col)
}

// Before reports whether p comes before other.
func (p Pos) Before(other Pos) bool {
	if p.Lnum != other.Lnum {
		return p.Lnum < other.Lnum
	}
	return p.Col < other.Col
}

// StringLines adapts a slice of lines to Lines.
type StringLines []string

// LineCount returns the number of lines.
func (s StringLines) LineCount() int { return len(s) }

// Line returns line lnum, or "" when out of range.
func (s StringLines) Line(lnum int) string {
	if lnum < 1 || lnum > len(s) {
		return ""
	}
	return s[lnum-1]
}
