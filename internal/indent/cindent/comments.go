package cindent

import (
	"strings"
)

// DefaultComments is the default comment leader format.
const DefaultComments = "s1:/*,mb:*,ex:*/,://,b:#,:%,:XCOMM,n:>,fb:-"

// CommentPart is one entry of a comment leader format such as "s1:/*".
type CommentPart struct {
	Flags  string
	Kind   byte // 's' start, 'm' middle, 'e' end, or 0
	Align  byte // 'l', 'r' or 0
	Offset int
	Text   string
}

// ParseComments parses a comma separated comment leader format. A comma
// inside a leader is written as "\,".
func ParseComments(spec string) []CommentPart {
	var parts []CommentPart
	for _, entry := range splitEscaped(spec) {
		flags, text, ok := strings.Cut(entry, ":")
		if !ok {
			flags, text = "", entry
		}
		p := CommentPart{Flags: flags, Text: text}
		for i := 0; i < len(flags); {
			c := flags[i]
			switch {
			case c == 's' || c == 'm' || c == 'e':
				p.Kind = c
				i++
			case c == 'l' || c == 'r':
				p.Align = c
				i++
			case c == '-' || (c >= '0' && c <= '9'):
				neg := c == '-'
				if neg {
					i++
				}
				n := 0
				for i < len(flags) && flags[i] >= '0' && flags[i] <= '9' {
					n = n*10 + int(flags[i]-'0')
					i++
				}
				if neg {
					n = -n
				}
				p.Offset = n
			default:
				i++
			}
		}
		parts = append(parts, p)
	}
	return parts
}

func splitEscaped(s string) []string {
	var out []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == ',':
			cur.WriteByte(',')
			i++
		case s[i] == ',':
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(s[i])
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// strnEqual compares the first n bytes of a and b the way C strncmp does,
// treating the end of a string as a NUL byte.
func strnEqual(a, b string, n int) bool {
	for k := 0; k < n; k++ {
		ca, cb := byteAt(a, k), byteAt(b, k)
		if ca != cb {
			return false
		}
		if ca == 0 {
			return true
		}
	}
	return true
}

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}
