package column

import (
	"github.com/rivo/uniseg"
)

// DefaultTabStop is used when a non-positive tab stop is supplied.
const DefaultTabStop = 8

func normTabStop(ts int) int {
	if ts <= 0 {
		return DefaultTabStop
	}
	return ts
}

// TabAdvance returns the number of columns a tab occupies when it starts
// at column col.
func TabAdvance(col, ts int) int {
	ts = normTabStop(ts)
	return ts - col%ts
}

// clusterWidth returns the display width of a single grapheme cluster
// that starts at display column col.
func clusterWidth(cluster string, width, col, ts int) int {
	switch c := cluster[0]; {
	case c == '\t':
		return TabAdvance(col, ts)
	case c < 0x20 || c == 0x7f:
		return 2
	}
	return width
}

// WidthTo returns the display column at which the byte at offset starts.
// Offsets past the end of the line measure the whole line.
func WidthTo(line string, offset, ts int) int {
	if offset > len(line) {
		offset = len(line)
	}
	col := 0
	pos := 0
	rest := line
	state := -1
	for pos < offset && rest != "" {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		col += clusterWidth(cluster, width, col, ts)
		pos += len(cluster)
	}
	return col
}

// Width returns the display width of the whole line.
func Width(line string, ts int) int {
	return WidthTo(line, len(line), ts)
}

// LeadingWhitespace returns the display width of the line's leading run of
// spaces and tabs together with its length in bytes.
func LeadingWhitespace(line string, ts int) (width, n int) {
	for n < len(line) {
		switch line[n] {
		case ' ':
			width++
		case '\t':
			width += TabAdvance(width, ts)
		default:
			return width, n
		}
		n++
	}
	return width, n
}

// IndentOf returns the display width of the line's leading whitespace.
func IndentOf(line string, ts int) int {
	w, _ := LeadingWhitespace(line, ts)
	return w
}

// OffsetAt returns the byte offset of the character that covers display
// column col. A column past the end of the line yields len(line).
func OffsetAt(line string, col, ts int) int {
	cur := 0
	pos := 0
	rest := line
	state := -1
	for rest != "" {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		next := cur + clusterWidth(cluster, width, cur, ts)
		if next > col {
			return pos
		}
		cur = next
		pos += len(cluster)
	}
	return pos
}
