package cscan

import (
	"strings"

	"github.com/dshills/cinder/internal/indent/column"
)

// Scanner holds the options that change how lines are classified.
type Scanner struct {
	// HashComment treats '#' preceded by white space as the start of a
	// comment running to the end of the line.
	HashComment bool
}

// SkipComment skips white space and comments starting at i and returns
// the index of the first code byte, or len(s).
func (sc Scanner) SkipComment(s string, i int) int {
	for At(s, i) != 0 {
		prev := i
		i = SkipWhite(s, i)

		// Require a space before '#' so "$#array" is not a comment.
		if sc.HashComment && i != prev && At(s, i) == '#' {
			return len(s)
		}
		if At(s, i) != '/' {
			break
		}
		i++
		if At(s, i) == '/' {
			return len(s)
		}
		if At(s, i) != '*' {
			break
		}
		for i++; At(s, i) != 0; i++ {
			if s[i] == '*' && At(s, i+1) == '/' {
				i += 2
				break
			}
		}
	}
	return i
}

// NoCode reports whether only white space and comments follow i.
func (sc Scanner) NoCode(s string, i int) bool {
	return At(s, sc.SkipComment(s, i)) == 0
}

// IsCase recognizes "case ...:" and "default:". With strict set a string
// literal before the colon rejects the line.
func (sc Scanner) IsCase(s string, i int, strict bool) bool {
	i = sc.SkipComment(s, i)
	if !StartsWith(s, i, "case") {
		return sc.IsDefault(s, i)
	}
	for i += 4; At(s, i) != 0; i++ {
		i = sc.SkipComment(s, i)
		c := At(s, i)
		if c == 0 {
			break
		}
		if c == ':' {
			if At(s, i+1) == ':' {
				i++
			} else {
				return true
			}
		}
		switch {
		case At(s, i) == '\'' && At(s, i+1) != 0 && At(s, i+2) == '\'':
			i += 2
		case At(s, i) == '/' && (At(s, i+1) == '*' || At(s, i+1) == '/'):
			return false
		case At(s, i) == '"':
			return !strict
		}
	}
	return false
}

// IsDefault recognizes "default:" at i.
func (sc Scanner) IsDefault(s string, i int) bool {
	if !HasPrefixAt(s, i, "default") {
		return false
	}
	j := sc.SkipComment(s, i+7)
	return At(s, j) == ':' && At(s, j+1) != ':'
}

// IsScopeDecl recognizes "public:", "protected:" and "private:".
func (sc Scanner) IsScopeDecl(s string, i int) bool {
	i = sc.SkipComment(s, i)
	n := 0
	switch {
	case HasPrefixAt(s, i, "public"):
		n = 6
	case HasPrefixAt(s, i, "protected"):
		n = 9
	case HasPrefixAt(s, i, "private"):
		n = 7
	default:
		return false
	}
	j := sc.SkipComment(s, i+n)
	return At(s, j) == ':' && At(s, j+1) != ':'
}

// IsNamespace recognizes "namespace", "namespace name" and
// "namespace name {".
func (sc Scanner) IsNamespace(s string, i int) bool {
	i = sc.SkipComment(s, i)
	if !HasPrefixAt(s, i, "namespace") || IsWordc(At(s, i+9)) {
		return false
	}
	hasName := false
	p := sc.SkipComment(s, SkipWhite(s, i+9))
	for At(s, p) != 0 {
		c := s[p]
		switch {
		case IsWhite(c):
			hasName = true
			p = sc.SkipComment(s, SkipWhite(s, p))
		case c == '{':
			return true
		case IsWordc(c):
			if hasName {
				return false
			}
			p++
		default:
			return false
		}
	}
	return true
}

// IsCppExternC recognizes an `extern "C"` or `extern "C++"` linkage
// specification, optionally followed by '{'.
func (sc Scanner) IsCppExternC(s string, i int) bool {
	i = sc.SkipComment(s, i)
	if !HasPrefixAt(s, i, "extern") || IsWordc(At(s, i+6)) {
		return false
	}
	hasLiteral := false
	p := sc.SkipComment(s, SkipWhite(s, i+6))
	for At(s, p) != 0 {
		switch {
		case IsWhite(s[p]):
			p = sc.SkipComment(s, SkipWhite(s, p))
		case s[p] == '{':
			return hasLiteral
		case HasPrefixAt(s, p, `"C"`), HasPrefixAt(s, p, `"C++"`):
			if hasLiteral {
				return false
			}
			hasLiteral = true
			p += strings.IndexByte(s[p+1:], '"') + 2
		default:
			return false
		}
	}
	return hasLiteral
}

// HasJSKey recognizes a line starting with a JavaScript object key, bare
// or quoted:
//
//	key: value
//	'key': value
//
// A C++ "::" is not a key.
func (sc Scanner) HasJSKey(s string, i int) bool {
	p := SkipWhite(s, i)
	var quote byte
	if c := At(s, p); c == '\'' || c == '"' {
		quote = c
		p++
	}
	if !IsIDc(At(s, p)) {
		return false
	}
	for IsIDc(At(s, p)) {
		p++
	}
	if quote != 0 && At(s, p) == quote {
		p++
	}
	p = sc.SkipComment(s, p)
	return At(s, p) == ':' && At(s, p+1) != ':'
}

// AfterLabel returns the index of the first code after a case or jump
// label's colon, or false when nothing follows it.
//
//	case 234:    a = b;
//	             ^
func (sc Scanner) AfterLabel(l string) (int, bool) {
	i := 0
	for ; At(l, i) != 0; i++ {
		if l[i] == ':' {
			if At(l, i+1) == ':' {
				i++
			} else if !sc.IsCase(l, i+1, false) {
				break
			}
		} else if l[i] == '\'' && At(l, i+1) != 0 && At(l, i+2) == '\'' {
			i += 2
		}
	}
	if At(l, i) == 0 {
		return 0, false
	}
	i = sc.SkipComment(l, i+1)
	if At(l, i) == 0 {
		return 0, false
	}
	return i, true
}

// IsLabelSkip checks for "label:" at i and returns the index after the
// colon. "::" is not a label.
func (sc Scanner) IsLabelSkip(s string, i int) (int, bool) {
	if !IsIDc(At(s, i)) {
		return i, false
	}
	for IsIDc(At(s, i)) {
		i++
	}
	i = sc.SkipComment(s, i)
	if At(s, i) != ':' {
		return i, false
	}
	i++
	return i, At(s, i) != ':'
}

// IsInit recognizes structure initializations and enumerations:
// "[typedef] [static|public|protected|private] enum" and
// "[typedef] [static|public|protected|private] ... = {".
func (sc Scanner) IsInit(line string) bool {
	s := sc.SkipComment(line, 0)
	if StartsWith(line, s, "typedef") {
		s = sc.SkipComment(line, s+7)
	}
	for {
		skipped := false
		for _, w := range []string{"static", "public", "protected", "private"} {
			if StartsWith(line, s, w) {
				s = sc.SkipComment(line, s+len(w))
				skipped = true
				break
			}
		}
		if !skipped {
			break
		}
	}
	if StartsWith(line, s, "enum") {
		return true
	}
	return sc.EndsIn(line[s:], "=", "{")
}

// IsTerminated recognizes a line that starts with '{' or '}', or ends
// with ';' or '}' (or ',' when inclComma, or '{' when inclOpen). It
// returns the terminating byte, or 0. "} else" is not terminated, and a
// line starting with "else" is only terminated when no unmatched '{'
// follows.
func (sc Scanner) IsTerminated(s string, inclOpen, inclComma bool) byte {
	var foundStart byte
	nOpen := 0
	isElse := false

	i := sc.SkipComment(s, 0)
	if At(s, i) == '{' || (At(s, i) == '}' && !sc.IsElse(s, i)) {
		foundStart = At(s, i)
	}
	if foundStart == 0 {
		isElse = sc.IsElse(s, i)
	}

	for At(s, i) != 0 {
		i = SkipString(s, sc.SkipComment(s, i))
		c := At(s, i)
		if c == '}' && nOpen > 0 {
			nOpen--
		}
		if (!isElse || nOpen == 0) &&
			(c == ';' || c == '}' || (inclComma && c == ',')) &&
			sc.NoCode(s, i+1) {
			return c
		} else if c == '{' {
			if inclOpen && sc.NoCode(s, i+1) {
				return c
			}
			nOpen++
		}
		if At(s, i) != 0 {
			i++
		}
	}
	return foundStart
}

// IsIf recognizes the "if" keyword at i.
func IsIf(s string, i int) bool { return StartsWith(s, i, "if") }

// IsDo recognizes the "do" keyword at i.
func IsDo(s string, i int) bool { return StartsWith(s, i, "do") }

// IsBreak recognizes the "break" keyword at i.
func IsBreak(s string, i int) bool { return StartsWith(s, i, "break") }

// IsElse recognizes "else" or "} else" at i.
func (sc Scanner) IsElse(s string, i int) bool {
	if At(s, i) == '}' {
		i = sc.SkipComment(s, i+1)
	}
	return StartsWith(s, i, "else")
}

// EndsIn reports whether s ends with find, optionally followed by ignore,
// white space and comments.
func (sc Scanner) EndsIn(s, find, ignore string) bool {
	p := 0
	for At(s, p) != 0 {
		p = sc.SkipComment(s, p)
		if HasPrefixAt(s, p, find) {
			r := SkipWhite(s, p+len(find))
			if ignore != "" && HasPrefixAt(s, r, ignore) {
				r = SkipWhite(s, r+len(ignore))
			}
			if sc.NoCode(s, r) {
				return true
			}
		}
		if At(s, p) != 0 {
			p++
		}
	}
	return false
}

// IfForWhileBefore looks for "if", "for" or "while" just before offset,
// skipping blanks, and returns where the keyword starts.
func IfForWhileBefore(line string, offset int) (int, bool) {
	if offset < 2 {
		return offset, false
	}
	offset--
	for offset > 2 && IsWhite(At(line, offset)) {
		offset--
	}

	offset--
	found := HasPrefixAt(line, offset, "if")
	if !found && offset >= 1 {
		offset--
		found = HasPrefixAt(line, offset, "for")
		if !found && offset >= 2 {
			offset -= 2
			found = HasPrefixAt(line, offset, "while")
		}
	}
	if found && (offset == 0 || !IsIDc(At(line, offset-1))) {
		return offset, true
	}
	return offset, false
}

// Skip2Pos skips strings, characters and comments from the start of line
// until reaching or passing col, and returns the index reached. A result
// greater than col means col is inside a comment or literal.
func Skip2Pos(line string, col int) int {
	var sc Scanner
	p := 0
	for At(line, p) != 0 && p < col {
		if IsComment(line, p) {
			p = sc.SkipComment(line, p)
		} else {
			p = SkipString(line, p) + 1
		}
	}
	return p
}

// FindLastParen returns the column of the last unmatched end byte in l,
// ignoring comments and literals. It returns 0 and false when every end
// has a matching start.
func (sc Scanner) FindLastParen(l string, start, end byte) (int, bool) {
	col := 0
	found := false
	open := 0
	for i := 0; At(l, i) != 0; i++ {
		i = sc.SkipComment(l, i)
		i = SkipString(l, i)
		switch At(l, i) {
		case start:
			open++
		case end:
			if open > 0 {
				open--
			} else {
				col = i
				found = true
			}
		}
	}
	return col, found
}

// FirstIDAmount returns the display column of the first variable name
// after a type in a declaration, or 0 when line does not look like one.
//
//	int     a,              column of "a"
//	static struct foo    b, column of "b"
func (sc Scanner) FirstIDAmount(line string, ts int) int {
	p := SkipWhite(line, 0)
	n := SkipToWhite(line, p) - p
	if n == 6 && HasPrefixAt(line, p, "static") {
		p = SkipWhite(line, p+6)
		n = SkipToWhite(line, p) - p
	}
	switch {
	case n == 6 && HasPrefixAt(line, p, "struct"):
		p = SkipWhite(line, p+6)
	case n == 4 && HasPrefixAt(line, p, "enum"):
		p = SkipWhite(line, p+4)
	case n == 8 && HasPrefixAt(line, p, "unsigned"), n == 6 && HasPrefixAt(line, p, "signed"):
		s := SkipWhite(line, p+n)
		for _, w := range []string{"int", "long", "short", "char"} {
			if HasPrefixAt(line, s, w) && IsWhite(At(line, s+len(w))) {
				p = s
				break
			}
		}
	}

	n = 0
	for IsIDc(At(line, p+n)) {
		n++
	}
	if n == 0 || !IsWhite(At(line, p+n)) || sc.NoCode(line, p) {
		return 0
	}
	return column.WidthTo(line, SkipWhite(line, p+n), ts)
}

// EqualAmount returns the display column of the first non-blank after an
// '=' in line, or 0 when there is no useful '='. It returns -1 when prev,
// the line above, ends in a backslash.
func (sc Scanner) EqualAmount(prev, line string, ts int) int {
	if prev != "" && prev[len(prev)-1] == '\\' {
		return -1
	}

	s := 0
	for At(line, s) != 0 && strings.IndexByte("=;{}\"'", line[s]) < 0 {
		if IsComment(line, s) {
			s = sc.SkipComment(line, s)
		} else {
			s++
		}
	}
	if At(line, s) != '=' {
		return 0
	}
	s = SkipWhite(line, s+1)
	if sc.NoCode(line, s) {
		return 0
	}
	if line[s] == '"' {
		s++
	}
	return column.WidthTo(line, s, ts)
}

// IsCinword reports whether line starts with one of words. A word ending
// in a non-keyword byte, such as "case:", matches as a prefix.
func IsCinword(line string, words []string) bool {
	p := SkipWhite(line, 0)
	for _, w := range words {
		if w == "" || !HasPrefixAt(line, p, w) {
			continue
		}
		if !IsWordc(At(line, p+len(w))) || !IsWordc(w[len(w)-1]) {
			return true
		}
	}
	return false
}

// ParseWords splits a comma separated word list such as cinwords or
// lispwords.
func ParseWords(list string) []string {
	var out []string
	for _, w := range strings.Split(list, ",") {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}
