package match

import (
	"math"
	"strings"

	"github.com/dshills/cinder/internal/indent/cscan"
)

// Pos aliases the shared position type.
type Pos = cscan.Pos

// Flags modify FindMatchLimit.
type Flags uint8

const (
	// Backward searches backward for a comment start when initc is '*'.
	Backward Flags = 1 << iota
	// Forward searches forward for a comment end when initc is '*'.
	Forward
	// BlockStop stops at a '{' or '}' in column 0.
	BlockStop
)

const maxCol = math.MaxInt32

var pairs = [...][2]byte{{'(', ')'}, {'{', '}'}, {'[', ']'}}

// Matcher searches a Lines view.
type Matcher struct {
	lines cscan.Lines
	lisp  bool
}

// New creates a Matcher over lines. With lisp set, ';' comments and
// #\( character literals are recognized.
func New(lines cscan.Lines, lisp bool) *Matcher {
	return &Matcher{lines: lines, lisp: lisp}
}

// Lines returns the view the Matcher searches.
func (m *Matcher) Lines() cscan.Lines { return m.lines }

// pairValues resolves the character to search for. With switchit set an
// opening bracket searches backward for an unmatched opener and a
// closing bracket forward for an unmatched closer; otherwise the bracket
// under the cursor is matched.
func pairValues(c byte, switchit bool) (initc, findc byte, backwards, ok bool) {
	for _, p := range pairs {
		switch c {
		case p[0]:
			if switchit {
				return p[1], p[0], true, true
			}
			return p[0], p[1], false, true
		case p[1]:
			if switchit {
				return p[0], p[1], false, true
			}
			return p[1], p[0], true, true
		}
	}
	return 0, 0, false, false
}

// prevBackslashes counts the backslashes directly before col.
func prevBackslashes(line string, col int) int {
	n := 0
	for col--; col >= 0 && line[col] == '\\'; col-- {
		n++
	}
	return n
}

// FindMatchLimit searches from cursor for a bracket or comment.
//
// An opening bracket for initc finds the unmatched opener before the
// cursor, a closing bracket the unmatched closer after it. initc '*'
// with Backward finds the "/*" that starts the comment the cursor is in.
// initc 'R' with Backward finds the start of a C++ raw string literal
// that is not closed before the cursor. initc 0 matches the first bracket
// at or after the cursor.
//
// maxTravel limits the number of lines searched; 0 means no limit.
func (m *Matcher) FindMatchLimit(cursor Pos, initc byte, flags Flags, maxTravel int) (Pos, bool) {
	pos := cursor
	linep := m.lines.Line(pos.Lnum)
	if pos.Col > len(linep) {
		pos.Col = len(linep)
	}

	var findc byte
	count := 0
	backwards := false
	inquote := false
	commentDir := 0
	rawString := false
	matchEscaped := false

	switch {
	case initc == '/' || initc == '*' || initc == 'R':
		switch {
		case flags&Backward != 0:
			commentDir = -1
		case flags&Forward != 0:
			commentDir = 1
		}
		backwards = commentDir != 1
		rawString = initc == 'R'
		initc = 0
	case initc != 0:
		var ok bool
		initc, findc, backwards, ok = pairValues(initc, true)
		if !ok {
			return Pos{}, false
		}
	default:
		if cscan.At(linep, pos.Col) == 0 && pos.Col > 0 {
			pos.Col--
		}
		for {
			c := cscan.At(linep, pos.Col)
			if c == 0 {
				return Pos{}, false
			}
			var ok bool
			if initc, findc, backwards, ok = pairValues(c, false); ok {
				break
			}
			pos.Col++
		}
		matchEscaped = prevBackslashes(linep, pos.Col)&1 == 1
	}

	doQuotes := -1
	startInQuotes := -1 // unknown
	var matchPos Pos
	commentCol := maxCol
	if (backwards && commentDir != 0) || m.lisp {
		commentCol = m.lineComment(linep)
	}
	lispcomm := m.lisp && commentCol != maxCol && pos.Col > commentCol
	traveled := 0

	for {
		if backwards {
			if lispcomm && pos.Col < commentCol {
				break
			}
			if pos.Col == 0 {
				if pos.Lnum <= 1 {
					break
				}
				pos.Lnum--
				traveled++
				if maxTravel > 0 && traveled > maxTravel {
					break
				}
				linep = m.lines.Line(pos.Lnum)
				pos.Col = len(linep)
				doQuotes = -1
				if commentDir != 0 || m.lisp {
					commentCol = m.lineComment(linep)
				}
				if m.lisp && commentCol != maxCol {
					pos.Col = commentCol
				}
			} else {
				pos.Col--
			}
		} else {
			if cscan.At(linep, pos.Col) == 0 || (m.lisp && commentCol != maxCol && pos.Col == commentCol) {
				if pos.Lnum >= m.lines.LineCount() || lispcomm {
					break
				}
				pos.Lnum++
				if maxTravel > 0 && traveled > maxTravel {
					break
				}
				traveled++
				linep = m.lines.Line(pos.Lnum)
				pos.Col = 0
				doQuotes = -1
				if m.lisp {
					commentCol = m.lineComment(linep)
				}
			} else {
				pos.Col++
			}
		}

		if pos.Col == 0 && flags&BlockStop != 0 && (cscan.At(linep, 0) == '{' || cscan.At(linep, 0) == '}') {
			if linep[0] == findc && count == 0 {
				return pos, true
			}
			break
		}

		if commentDir != 0 {
			// Comments do not nest; quotes inside them are ignored.
			if commentDir == 1 {
				if cscan.At(linep, pos.Col) == '*' && cscan.At(linep, pos.Col+1) == '/' {
					pos.Col++
					return pos, true
				}
				continue
			}
			if pos.Col == 0 {
				continue
			}
			c := cscan.At(linep, pos.Col)
			if rawString {
				if linep[pos.Col-1] == 'R' && c == '"' && strings.IndexByte(linep[pos.Col+1:], '(') >= 0 {
					end := cursor
					if count > 0 {
						end = matchPos
					}
					if !m.rawStringEnds(pos, end) {
						count++
						matchPos = Pos{Lnum: pos.Lnum, Col: pos.Col - 1}
					}
				}
				continue
			}
			switch {
			case linep[pos.Col-1] == '/' && c == '*' && pos.Col < commentCol:
				count++
				matchPos = Pos{Lnum: pos.Lnum, Col: pos.Col - 1}
			case linep[pos.Col-1] == '*' && c == '/':
				if count > 0 {
					return matchPos, true
				}
				// "/*/" both starts and ends nothing.
				if pos.Col > 1 && linep[pos.Col-2] == '/' && pos.Col <= commentCol {
					pos.Col -= 2
					return pos, true
				}
				return Pos{}, false
			}
			continue
		}

		if doQuotes == -1 {
			atStart := doQuotes
			n := -1
			for k := 0; k < len(linep); k++ {
				if k == pos.Col+b2i(backwards) {
					atStart = n & 1
				}
				if linep[k] == '"' && (k == 0 || linep[k-1] != '\'' || cscan.At(linep, k+1) != '\'') {
					n++
				}
				if linep[k] == '\\' && k+1 < len(linep) {
					k++
				}
			}
			doQuotes = n & 1

			// An odd count is only trusted when a backslash continues a
			// string across lines.
			if doQuotes == 0 {
				inquote = false
				if linep != "" && linep[len(linep)-1] == '\\' {
					doQuotes = 1
					if startInQuotes == -1 {
						inquote = true
						startInQuotes = 1
					} else if backwards {
						inquote = true
					}
				}
				if pos.Lnum > 1 {
					prev := m.lines.Line(pos.Lnum - 1)
					if prev != "" && prev[len(prev)-1] == '\\' {
						doQuotes = 1
						if startInQuotes == -1 {
							inquote = atStart != 0
							if inquote {
								startInQuotes = 1
							}
						} else if !backwards {
							inquote = true
						}
					}
				}
			}
		}
		if startInQuotes == -1 {
			startInQuotes = 0
		}

		c := cscan.At(linep, pos.Col)
		switch c {
		case 0:
			if pos.Col == 0 || linep[pos.Col-1] != '\\' {
				inquote = false
				startInQuotes = 0
			}
		case '"':
			if doQuotes == 1 && prevBackslashes(linep, pos.Col)&1 == 0 {
				inquote = !inquote
				startInQuotes = 0
			}
		default:
			// Skip 'x' and '\x'; a lone quote as in "jon's" is not skipped.
			if c == '\'' && initc != '\'' && findc != '\'' {
				if backwards {
					if pos.Col > 1 {
						if linep[pos.Col-2] == '\'' {
							pos.Col -= 2
							continue
						}
						if linep[pos.Col-2] == '\\' && pos.Col > 2 && linep[pos.Col-3] == '\'' {
							pos.Col -= 3
							continue
						}
					}
				} else if cscan.At(linep, pos.Col+1) != 0 {
					if linep[pos.Col+1] == '\\' && cscan.At(linep, pos.Col+2) != 0 && cscan.At(linep, pos.Col+3) == '\'' {
						pos.Col += 3
						continue
					}
					if cscan.At(linep, pos.Col+2) == '\'' {
						pos.Col += 2
						continue
					}
				}
			}

			if m.lisp && strings.IndexByte("(){}[]", c) >= 0 && pos.Col > 1 &&
				linep[pos.Col-1] == '\\' && linep[pos.Col-2] == '#' {
				continue
			}

			if (!inquote || startInQuotes == 1) && (c == initc || c == findc) {
				if (prevBackslashes(linep, pos.Col)&1 == 1) == matchEscaped {
					if c == initc {
						count++
					} else {
						if count == 0 {
							return pos, true
						}
						count--
					}
				}
			}
		}
	}

	if commentDir == -1 && count > 0 {
		return matchPos, true
	}
	return Pos{}, false
}

// rawStringEnds reports whether the raw string whose opening quote is at
// start is closed before end.
func (m *Matcher) rawStringEnds(start, end Pos) bool {
	line := m.lines.Line(start.Lnum)
	open := start.Col + 1 + strings.IndexByte(line[start.Col+1:], '(')
	closing := line[start.Col+1:open] + "\""

	for lnum := start.Lnum; lnum <= end.Lnum; lnum++ {
		l := m.lines.Line(lnum)
		p := 0
		if lnum == start.Lnum {
			p = start.Col + 1
		}
		for ; p < len(l); p++ {
			if lnum == end.Lnum && p >= end.Col {
				break
			}
			if l[p] == ')' && strings.HasPrefix(l[p+1:], closing) {
				return true
			}
		}
	}
	return false
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// lineComment returns the column where a line comment starts, or maxCol.
func (m *Matcher) lineComment(line string) int {
	if m.lisp {
		return LispLineComment(line)
	}
	if col, ok := LineComment(line); ok {
		return col
	}
	return maxCol
}

// LineComment returns the column of a "//" comment in line. A "*//*"
// sequence is the end of one block comment and the start of another, not
// a line comment. Strings are not skipped.
func LineComment(line string) (int, bool) {
	for p := 0; p < len(line); p++ {
		if line[p] != '/' {
			continue
		}
		if cscan.At(line, p+1) == '/' && (p == 0 || line[p-1] != '*' || cscan.At(line, p+2) != '*') {
			return p, true
		}
	}
	return 0, false
}

// LispLineComment returns the column of a ';' comment in line, or a very
// large column when there is none. Semicolons in strings and #\; are not
// comments.
func LispLineComment(line string) int {
	if strings.IndexByte(line, ';') < 0 {
		return maxCol
	}
	inStr := false
	for p := 0; p < len(line); p++ {
		switch line[p] {
		case '"':
			if inStr {
				if line[p-1] != '\\' {
					inStr = false
				}
			} else if p == 0 || (p >= 2 && line[p-1] != '\\' && line[p-2] != '#') {
				inStr = true
			}
		case ';':
			if !inStr && (p < 2 || (line[p-1] != '\\' && line[p-2] != '#')) {
				return p
			}
		}
	}
	return maxCol
}
