package match

import (
	"github.com/dshills/cinder/internal/indent/cscan"
)

// FindStartComment returns the "/*" that opens the comment containing
// cursor, searching at most maxComment lines back. A "/*" inside a string
// literal is rejected and the search is retried below it.
func (m *Matcher) FindStartComment(cursor Pos, maxComment int) (Pos, bool) {
	return m.findOutsideString(cursor, '*', maxComment)
}

// FindStartRawString returns the R" that opens the raw string literal
// containing cursor, searching at most maxComment lines back.
func (m *Matcher) FindStartRawString(cursor Pos, maxComment int) (Pos, bool) {
	return m.findOutsideString(cursor, 'R', maxComment)
}

// FindStartCommentOrRaw returns the start of the block comment or raw
// string containing cursor, whichever opened first. raw is set for a raw
// string.
func (m *Matcher) FindStartCommentOrRaw(cursor Pos, maxComment int) (start Pos, raw, ok bool) {
	comment, inComment := m.FindStartComment(cursor, maxComment)
	rs, inRaw := m.FindStartRawString(cursor, maxComment)
	if !inComment || (inRaw && rs.Before(comment)) {
		return rs, inRaw, inRaw
	}
	return comment, false, true
}

func (m *Matcher) findOutsideString(cursor Pos, initc byte, maxComment int) (Pos, bool) {
	limit := maxComment
	for {
		pos, ok := m.FindMatchLimit(cursor, initc, Backward, limit)
		if !ok {
			return Pos{}, false
		}

		line := m.lines.Line(pos.Lnum)
		p := 0
		for cscan.At(line, p) != 0 && p < pos.Col {
			p = cscan.SkipString(line, p) + 1
		}
		if p <= pos.Col {
			return pos, true
		}

		limit = cursor.Lnum - pos.Lnum - 1
		if limit <= 0 {
			return Pos{}, false
		}
	}
}

// InComment reports whether the start of line lnum is inside a block
// comment opened on an earlier line.
func (m *Matcher) InComment(lnum, maxComment int) bool {
	_, ok := m.FindStartComment(Pos{Lnum: lnum}, maxComment)
	return ok
}

// FindStartBrace returns the '{' that opens the block containing cursor.
// A '{' in a comment, string or raw string is skipped. The search stops at a brace in
// column 0 and travels at most maxTravel lines; 0 means no limit.
func (m *Matcher) FindStartBrace(cursor Pos, maxComment, maxTravel int) (Pos, bool) {
	cur := cursor
	for {
		limit := 0
		if maxTravel > 0 {
			if limit = maxTravel - (cursor.Lnum - cur.Lnum); limit <= 0 {
				return Pos{}, false
			}
		}
		try, ok := m.FindMatchLimit(cur, '{', BlockStop, limit)
		if !ok {
			return Pos{}, false
		}

		cur = try
		if cscan.Skip2Pos(m.lines.Line(try.Lnum), try.Col) == try.Col {
			start, _, in := m.FindStartCommentOrRaw(try, maxComment)
			if !in {
				return try, true
			}
			cur.Lnum = start.Lnum
		}
	}
}

// FindMatchParen returns the unmatched '(' before cursor within maxParen
// lines. A '(' inside a comment or string does not count.
func (m *Matcher) FindMatchParen(cursor Pos, maxParen, maxComment int) (Pos, bool) {
	return m.FindMatchChar(cursor, '(', maxParen, maxComment)
}

// FindMatchChar returns the unmatched opening bracket c before cursor
// within maxParen lines. When the bracket found is inside a comment or
// literal the search starts over above it: from column 0 of its line for
// a line comment, from the opener of a block comment or raw string. Lines
// already searched count against maxParen.
func (m *Matcher) FindMatchChar(cursor Pos, c byte, maxParen, maxComment int) (Pos, bool) {
	cur := cursor
	limit := maxParen
	for {
		try, ok := m.FindMatchLimit(cur, c, 0, limit)
		if !ok {
			return Pos{}, false
		}
		if cscan.Skip2Pos(m.lines.Line(try.Lnum), try.Col) > try.Col {
			cur = Pos{Lnum: try.Lnum}
		} else {
			start, _, in := m.FindStartCommentOrRaw(try, maxComment)
			if !in {
				return try, true
			}
			cur = start
		}
		if limit = maxParen - (cursor.Lnum - cur.Lnum); limit <= 0 {
			return Pos{}, false
		}
	}
}

// FindLineComment returns the "//" that starts the nearest non-blank line
// above lnum, if that line is a line comment.
func (m *Matcher) FindLineComment(lnum int) (Pos, bool) {
	for lnum--; lnum > 0; lnum-- {
		line := m.lines.Line(lnum)
		p := cscan.SkipWhite(line, 0)
		if cscan.IsLineComment(line, p) {
			return Pos{Lnum: lnum, Col: p}, true
		}
		if p < len(line) {
			break
		}
	}
	return Pos{}, false
}
