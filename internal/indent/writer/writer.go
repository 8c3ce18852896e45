// Package writer rewrites the leading whitespace of a line so that it
// reaches a requested display column, honouring tab stop, expandtab and
// preserveindent.
package writer

import (
	"strings"

	"github.com/dshills/cinder/internal/indent/column"
)

// Config carries the buffer options that shape an indent string.
type Config struct {
	TabStop        int
	ExpandTab      bool
	PreserveIndent bool
}

// Flags modify SetIndent.
type Flags uint8

const (
	// Insert keeps the line's existing whitespace and inserts the new
	// indent in front of it.
	Insert Flags = 1 << iota
)

func isWhite(c byte) bool { return c == ' ' || c == '\t' }

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

func skipWhite(s string, i int) int {
	for i < len(s) && isWhite(s[i]) {
		i++
	}
	return i
}

// SetIndent returns line with its indent replaced by whitespace of display
// width size. The second result is false when line already carries exactly
// that whitespace, in which case line is returned unchanged.
func SetIndent(line string, size int, cfg Config, flags Flags) (string, bool) {
	if size < 0 {
		size = 0
	}
	ts := cfg.TabStop
	if ts <= 0 {
		ts = column.DefaultTabStop
	}
	insert := flags&Insert != 0
	preserve := !insert && cfg.PreserveIndent

	todo := size
	doit := false
	indDone := 0
	origLen := -1
	p := 0

	// Measure first, so an already-correct indent is left alone.
	if !cfg.ExpandTab || preserve {
		if preserve {
			for todo > 0 && isWhite(byteAt(line, p)) {
				if line[p] == '\t' {
					pad := ts - indDone%ts
					if todo < pad {
						break
					}
					todo -= pad
					indDone += pad
				} else {
					todo--
					indDone++
				}
				p++
			}
			if cfg.ExpandTab {
				origLen = p
			}
			pad := ts - indDone%ts
			if todo >= pad && origLen == -1 {
				doit = true
				todo -= pad
			}
		}
		for todo >= ts {
			if byteAt(line, p) != '\t' {
				doit = true
			} else {
				p++
			}
			todo -= ts
		}
	}
	for todo > 0 {
		if byteAt(line, p) != ' ' {
			doit = true
		} else {
			p++
		}
		todo--
	}

	if !doit && !isWhite(byteAt(line, p)) && !insert {
		return line, false
	}

	rest := line
	if !insert {
		rest = line[skipWhite(line, 0):]
	}

	var sb strings.Builder
	todo = size
	if origLen != -1 {
		// preserveindent with expandtab: keep what was there, pad with spaces.
		sb.WriteString(line[:origLen])
		todo = size - indDone
	} else if !cfg.ExpandTab {
		if preserve {
			indDone = 0
			q := 0
			for todo > 0 && isWhite(byteAt(line, q)) {
				if line[q] == '\t' {
					pad := ts - indDone%ts
					if todo < pad {
						break
					}
					todo -= pad
					indDone += pad
				} else {
					todo--
					indDone++
				}
				sb.WriteByte(line[q])
				q++
			}
			if pad := ts - indDone%ts; todo >= pad {
				sb.WriteByte('\t')
				todo -= pad
			}
		}
		for todo >= ts {
			sb.WriteByte('\t')
			todo -= ts
		}
	}
	for todo > 0 {
		sb.WriteByte(' ')
		todo--
	}
	sb.WriteString(rest)

	out := sb.String()
	return out, out != line
}

// Build returns the whitespace that SetIndent would produce for an empty
// line.
func Build(size int, cfg Config) string {
	s, _ := SetIndent("", size, Config{TabStop: cfg.TabStop, ExpandTab: cfg.ExpandTab}, 0)
	return s
}

// CopyIndent returns dest re-indented to display width size, reusing as
// much of src's leading whitespace as fits before falling back to tabs and
// spaces. dest's own leading whitespace is dropped.
func CopyIndent(src string, size int, dest string, cfg Config) (string, bool) {
	ts := cfg.TabStop
	if ts <= 0 {
		ts = column.DefaultTabStop
	}

	var sb strings.Builder
	todo := size
	indDone := 0
	for todo > 0 && isWhite(byteAt(src, sb.Len())) {
		c := src[sb.Len()]
		if c == '\t' {
			pad := ts - indDone%ts
			if todo < pad {
				break
			}
			todo -= pad
			indDone += pad
		} else {
			todo--
			indDone++
		}
		sb.WriteByte(c)
	}

	if !cfg.ExpandTab {
		if pad := ts - indDone%ts; todo >= pad {
			sb.WriteByte('\t')
			todo -= pad
		}
		for todo >= ts {
			sb.WriteByte('\t')
			todo -= ts
		}
	}
	for todo > 0 {
		sb.WriteByte(' ')
		todo--
	}
	sb.WriteString(dest[skipWhite(dest, 0):])

	out := sb.String()
	return out, out != dest
}
