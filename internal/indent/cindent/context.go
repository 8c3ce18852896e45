package cindent

import (
	"github.com/dshills/cinder/internal/indent/cscan"
)

// isLabel recognizes a jump label "label:" on the cursor line. A label is
// only accepted when the previous code line is terminated or is itself a
// label; "default:" and scope declarations are not labels.
func (r *run) isLabel() bool {
	line := r.curline()
	s := r.sc.SkipComment(line, 0)
	if r.sc.IsDefault(line, s) || r.sc.IsScopeDecl(line, s) {
		return false
	}
	if _, ok := r.sc.IsLabelSkip(line, s); !ok {
		return false
	}

	save := r.cur
	defer func() { r.cur = save }()
	for r.cur.Lnum > 1 {
		r.cur.Lnum--
		r.cur.Col = 0
		if pos, ok := r.findStartComment(); ok {
			r.cur = pos
		}

		prev := r.curline()
		if cscan.IsPreproc(prev) {
			continue
		}
		p := r.sc.SkipComment(prev, 0)
		if p >= len(prev) {
			continue
		}

		if r.sc.IsTerminated(prev[p:], true, false) != 0 ||
			r.sc.IsScopeDecl(prev, p) ||
			r.sc.IsCase(prev, p, true) {
			return true
		}
		if i, ok := r.sc.IsLabelSkip(prev, p); ok && r.sc.NoCode(prev, i) {
			return true
		}
		return false
	}
	// A label at the start of the file.
	return true
}

// indentNoLabel returns the column of the text after the label on line
// lnum, or 0 when nothing follows the label.
func (r *run) indentNoLabel(lnum int) int {
	l := r.line(lnum)
	p, ok := r.sc.AfterLabel(l)
	if !ok {
		return 0
	}
	return r.vcol(cscan.Pos{Lnum: lnum, Col: p})
}

// skipLabel returns the indent of line lnum ignoring any case or jump
// label, together with the offset of the text after the label.
//
//	label:	if (asdf && asdfasdf)
//		^
func (r *run) skipLabel(lnum int) (int, int) {
	save := r.cur
	defer func() { r.cur = save }()

	r.cur.Lnum = lnum
	l := r.curline()
	if r.isCase(l) || r.isScopeDecl(l) || r.isLabel() {
		amount := r.indentNoLabel(lnum)
		p, _ := r.sc.AfterLabel(l)
		return amount, p
	}
	return r.getIndent(), 0
}

// preprocCont reports whether line lnum is a directive or continues one,
// moving lnum to the start of the directive. When line lnum itself ends in
// a backslash, amount becomes its indent.
func (r *run) preprocCont(lnum, amount *int) bool {
	candidate := *amount
	if endsInBackslash(r.line(*lnum)) {
		candidate = r.indentOf(*lnum)
	}
	start, ok := cscan.PreprocStart(r.buf, *lnum)
	if ok {
		*lnum = start
		*amount = candidate
	}
	return ok
}

// isFuncDecl recognizes the shape of a function declaration starting at
// line firstLnum: an open paren, a close paren at the end of the line and
// no semicolon. A line ending in a comma continues on the next line. s is
// the text of firstLnum.
func (r *run) isFuncDecl(s string, firstLnum, minLnum int) bool {
	lnum := firstLnum

	save := r.cur
	r.cur = cscan.Pos{Lnum: firstLnum}
	if r.findLastParen(s, '(', ')') {
		if try, ok := r.findMatchParen(r.t.MaxParen); ok {
			lnum = try.Lnum
			if lnum < minLnum {
				r.cur = save
				return false
			}
			s = r.line(lnum)
		}
	}
	r.cur = save

	if cscan.IsPreproc(s) {
		return false
	}

	i := 0
	for i < len(s) && s[i] != '(' && s[i] != ';' && s[i] != '\'' && s[i] != '"' {
		if cscan.IsComment(s, i) {
			i = r.sc.SkipComment(s, i)
		} else {
			i++
		}
	}
	if byteAt(s, i) != '(' {
		return false
	}

	justStarted := true
	for i < len(s) && s[i] != ';' && s[i] != '\'' && s[i] != '"' {
		switch {
		case s[i] == ')' && r.sc.NoCode(s, i+1):
			// A ')' at the end may be a match, unless the line above
			// continues a directive:
			//	#if defined(x) && \
			//		 defined(y)
			return !endsInBackslash(r.line(firstLnum - 1))
		case (s[i] == ',' && r.sc.NoCode(s, i+1)) || byteAt(s, i+1) == 0 || r.sc.NoCode(s, i):
			comma := s[i] == ','
			// Continue on the next line, allowing this style too:
			//	func(arg1
			//	      , arg2)
			for lnum < r.buf.LineCount() {
				lnum++
				s = r.line(lnum)
				if !cscan.IsPreproc(s) {
					break
				}
			}
			if lnum >= r.buf.LineCount() {
				return false
			}
			i = cscan.SkipWhite(s, 0)
			if !justStarted && !comma && byteAt(s, i) != ',' && byteAt(s, i) != ')' {
				return false
			}
			justStarted = false
		case cscan.IsComment(s, i):
			i = r.sc.SkipComment(s, i)
		default:
			i++
			justStarted = false
		}
	}
	return false
}

// isWhileOfDo recognizes "while (cond);" or "} while (cond);" on line
// lnum, where p is the text of that line. The condition may span lines.
func (r *run) isWhileOfDo(p string, lnum int) bool {
	i := r.sc.SkipComment(p, 0)
	if byteAt(p, i) == '}' {
		i = r.sc.SkipComment(p, i+1)
	}
	if !cscan.StartsWith(p, i, "while") {
		return false
	}

	line := r.line(lnum)
	col := 0
	for col < len(line) && line[col] != 'w' {
		col++
	}
	try, ok := r.m.FindMatchLimit(cscan.Pos{Lnum: lnum, Col: col}, 0, 0, r.t.MaxParen)
	if !ok {
		return false
	}
	l := r.line(try.Lnum)
	return byteAt(l, r.sc.SkipComment(l, try.Col+1)) == ';'
}

// isWhileOfDoEnd recognizes the last line of a do-while:
//
//	do
//	   nothing;
//	while (foo
//	       && bar);  <-- here
//
// On success the cursor moves to the line holding the "while".
func (r *run) isWhileOfDoEnd(terminated byte) bool {
	if terminated != ';' {
		return false
	}
	line := r.curline()
	for p := 0; p < len(line); {
		p = r.sc.SkipComment(line, p)
		if byteAt(line, p) == ')' {
			s := cscan.SkipWhite(line, p+1)
			if byteAt(line, s) == ';' && r.sc.NoCode(line, s+1) {
				r.cur.Col = p
				if try, ok := r.findMatchParen(r.t.MaxParen); ok {
					l := r.line(try.Lnum)
					q := r.sc.SkipComment(l, 0)
					if byteAt(l, q) == '}' {
						q = r.sc.SkipComment(l, q+1)
					}
					if cscan.StartsWith(l, q, "while") {
						r.cur.Lnum = try.Lnum
						return true
					}
				}
			}
		}
		if p < len(line) {
			p++
		}
	}
	return false
}

// isCppBaseclass checks the cursor line for a base class list or
// constructor initializer.
func (r *run) isCppBaseclass() (bool, int) {
	return r.sc.IsCppBaseclass(r.buf, r.cur.Lnum)
}

// baseclassAmount returns the indent for a line in a base class list,
// given the column found by isCppBaseclass.
func (r *run) baseclassAmount(col int) int {
	var amount int
	if col == 0 {
		amount = r.getIndent()
		if r.findLastParen(r.curline(), '(', ')') {
			if try, ok := r.findMatchParen(r.t.MaxParen); ok {
				amount = r.indentOf(try.Lnum)
			}
		}
		if !r.sc.EndsIn(r.curline(), ",", "") {
			amount += r.t.CppBaseclass
		}
	} else {
		r.cur.Col = col
		amount = r.vcol(r.cur)
	}
	if amount < r.t.CppBaseclass {
		amount = r.t.CppBaseclass
	}
	return amount
}

// findMatch walks back from the cursor line to the "if" matching an
// "else" (LookforIf) or the "do" matching a "while" (LookforDo) within
// the block that opens on line ourscope. On success the cursor is on the
// matching line.
func (r *run) findMatch(lookfor Lookfor, ourscope int) bool {
	elselevel, whilelevel := 0, 1
	if lookfor == LookforIf {
		elselevel, whilelevel = 1, 0
	}

	r.cur.Col = 0
	for r.cur.Lnum > ourscope+1 {
		r.cur.Lnum--
		r.cur.Col = 0

		l := r.curline()
		look := r.sc.SkipComment(l, 0)
		if !r.sc.IsElse(l, look) && !cscan.IsIf(l, look) && !cscan.IsDo(l, look) &&
			!r.isWhileOfDo(l[look:], r.cur.Lnum) {
			continue
		}

		// Out of the braces entirely, or in a block further out than
		// ours: give up. In a deeper block: a different scope.
		their, ok := r.findStartBrace()
		if !ok || their.Lnum < ourscope {
			break
		}
		if their.Lnum > ourscope {
			continue
		}

		if r.sc.IsElse(l, look) {
			if !cscan.IsIf(l, r.sc.SkipComment(l, look+4)) {
				elselevel++
			}
			continue
		}
		if r.isWhileOfDo(l[look:], r.cur.Lnum) {
			whilelevel++
			continue
		}

		if cscan.IsIf(l, look) {
			elselevel--
			// When looking for an "if" ignore "while"s in the way.
			if elselevel == 0 && lookfor == LookforIf {
				whilelevel = 0
			}
		}
		if cscan.IsDo(l, look) {
			whilelevel--
		}
		if elselevel <= 0 && whilelevel <= 0 {
			return true
		}
	}
	return false
}
