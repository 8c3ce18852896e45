package cscan

// At returns s[i], or 0 when i is outside s.
func At(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// IsWhite reports a space or tab.
func IsWhite(c byte) bool { return c == ' ' || c == '\t' }

// IsDigit reports an ASCII digit.
func IsDigit(c byte) bool { return c >= '0' && c <= '9' }

// IsIDc reports a byte that can be part of an identifier. Bytes of
// multi-byte UTF-8 sequences count as identifier bytes.
func IsIDc(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || IsDigit(c) || c == '_' || c >= 0x80
}

// IsWordc reports a keyword byte.
func IsWordc(c byte) bool { return IsIDc(c) }

// SkipWhite returns the index of the first non-blank at or after i.
func SkipWhite(s string, i int) int {
	for i < len(s) && IsWhite(s[i]) {
		i++
	}
	return i
}

// SkipToWhite returns the index of the first blank at or after i.
func SkipToWhite(s string, i int) int {
	for i < len(s) && !IsWhite(s[i]) {
		i++
	}
	return i
}

// HasPrefixAt reports whether s[i:] starts with word.
func HasPrefixAt(s string, i int, word string) bool {
	if i < 0 || i > len(s) {
		return false
	}
	return len(s)-i >= len(word) && s[i:i+len(word)] == word
}

// StartsWith reports whether s[i:] starts with word followed by a
// non-identifier byte.
func StartsWith(s string, i int, word string) bool {
	return HasPrefixAt(s, i, word) && !IsIDc(At(s, i+len(word)))
}

// IsComment reports a "/*" or "//" at i.
func IsComment(s string, i int) bool {
	return At(s, i) == '/' && (At(s, i+1) == '*' || At(s, i+1) == '/')
}

// IsLineComment reports a "//" at i.
func IsLineComment(s string, i int) bool {
	return At(s, i) == '/' && At(s, i+1) == '/'
}

// IsPreproc reports a line whose first non-blank is '#'.
func IsPreproc(s string) bool {
	return At(s, SkipWhite(s, 0)) == '#'
}

// SkipString skips string and character literals starting at i, including
// adjacent ones such as "date""time", and returns the index just past
// them. When nothing starts a literal at i it returns i. An index that
// lands on the end of the line is moved back onto the last byte.
func SkipString(s string, i int) int {
	for ; ; i++ {
		if At(s, i) == '\'' {
			if At(s, i+1) == 0 {
				break
			}
			k := 2
			if At(s, i+1) == '\\' {
				k++
				for IsDigit(At(s, i+k-1)) && IsDigit(At(s, i+k)) {
					k++
				}
			}
			if At(s, i+k) == '\'' {
				i += k
				continue
			}
		} else if At(s, i) == '"' {
			for i++; At(s, i) != 0; i++ {
				if s[i] == '\\' && At(s, i+1) != 0 {
					i++
				} else if s[i] == '"' {
					break
				}
			}
			if At(s, i) == '"' {
				continue
			}
		}
		break
	}
	if At(s, i) == 0 && i > 0 {
		i--
	}
	return i
}
