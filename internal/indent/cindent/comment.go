package cindent

import (
	"strings"

	"github.com/dshills/cinder/internal/indent/column"
	"github.com/dshills/cinder/internal/indent/cscan"
)

// commentIndent indents a line inside a block comment that starts at
// opener, using the comment leader format for middle and end lines.
func (r *run) commentIndent(opener cscan.Pos) int {
	theline := r.theline
	amount := r.vcol(opener)

	leadStart, leadMiddle := "", ""
	leadStartLen, leadMiddleLen := 2, 1
	startOff := 0
	var startAlign byte
	done := false

parts:
	for _, part := range r.e.opts.Comments {
		leadEnd := part.Text
		switch part.Kind {
		case 's':
			leadStart = leadEnd
			leadStartLen = len(leadStart)
			startOff = part.Offset
			startAlign = part.Align
		case 'm':
			leadMiddle = leadEnd
			leadMiddleLen = len(leadMiddle)
		case 'e':
			// A middle line lines up with the opener.
			if strnEqual(theline, leadMiddle, leadMiddleLen) && !strnEqual(theline, leadEnd, len(leadEnd)) {
				done = true
				if prevLnum := r.start.Lnum - 1; prevLnum >= 1 {
					look := r.skipwhite(r.line(prevLnum))
					switch {
					case strnEqual(look, leadStart, leadStartLen):
						amount = r.indentOf(prevLnum)
					case strnEqual(look, leadMiddle, leadMiddleLen):
						amount = r.indentOf(prevLnum)
						break parts
					case !strnEqual(r.line(opener.Lnum)[opener.Col:], leadStart, leadStartLen):
						continue parts
					}
				}
				if startOff != 0 {
					amount += startOff
				} else if startAlign == 'r' {
					amount += column.Width(leadStart, r.ts) - column.Width(leadMiddle, r.ts)
				}
				break parts
			}

			// An end line lines up with the middle lines.
			if !strnEqual(theline, leadMiddle, leadMiddleLen) && strnEqual(theline, leadEnd, len(leadEnd)) {
				amount = r.indentOf(r.start.Lnum - 1)
				if part.Offset != 0 {
					amount += part.Offset
				} else if part.Align == 'r' {
					amount += column.Width(leadStart, r.ts) - column.Width(leadMiddle, r.ts)
				}
				done = true
				break parts
			}
		}
	}

	switch {
	case done:
	case byteAt(theline, 0) == '*':
		// Line up with the '*' of the opener.
		amount++
	default:
		amount = -1
		for lnum := r.start.Lnum - 1; lnum > opener.Lnum; lnum-- {
			if strings.TrimLeft(r.line(lnum), " \t") == "" {
				continue
			}
			amount = r.indentOf(lnum)
			break
		}
		if amount == -1 {
			// Just below the opener: line up with the text after it.
			start := r.line(opener.Lnum)
			look := opener.Col + 2
			pos := opener
			if r.t.InComment2 == 0 && look < len(start) {
				pos.Col = cscan.SkipWhite(start, look)
			}
			amount = r.vcol(pos)
			if r.t.InComment2 != 0 || look >= len(start) {
				amount += r.t.InComment
			}
		}
	}
	return amount
}
