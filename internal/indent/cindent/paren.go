package cindent

import (
	"github.com/dshills/cinder/internal/indent/cscan"
)

const maxCol = int(^uint(0) >> 1)

// parenIndent indents a line inside the parens opened at paren.
func (r *run) parenIndent(paren cscan.Pos) int {
	theline := r.theline
	closing := byteAt(theline, 0) == ')'
	curAmount := maxCol
	amount := -1
	our := paren

	if closing && r.t.ParenPrev != 0 {
		// Line up with the start of the matching paren line.
		amount = r.indentOf(r.start.Lnum - 1)
	} else {
		// Use the indent of an earlier line inside the same parens.
		for lnum := r.start.Lnum - 1; lnum > our.Lnum; lnum-- {
			l := r.line(lnum)
			if r.sc.NoCode(l, 0) {
				continue
			}
			if r.preprocCont(&lnum, &amount) {
				continue
			}
			r.cur = cscan.Pos{Lnum: lnum}

			if c, ok := r.findStartCORS(); ok {
				lnum = c.Lnum + 1
				continue
			}

			if try, ok := r.findMatchParen(r.corrMaxParen(r.start)); ok && try == our {
				amount = r.indentOf(lnum)
				if closing {
					if our.Lnum != lnum && curAmount > amount {
						curAmount = amount
					}
					amount = -1
				}
				break
			}
		}
	}

	if amount == -1 {
		amount, curAmount = r.unclosedIndent(&our, curAmount)
	}

	if r.isComment(theline) {
		amount += r.t.Comment
	}
	return amount
}

// unclosedIndent lines a continuation up with the line holding the
// unclosed paren at our.
func (r *run) unclosedIndent(our *cscan.Pos, curAmount int) (int, int) {
	closing := byteAt(r.theline, 0) == ')'
	ignoreParenCol := 0
	ifForWhile := false

	if r.t.IfForWhile != 0 {
		// Find the outermost open paren on this line and check whether it
		// belongs to an "if", "for" or "while".
		save := r.cur
		outermost := *our
		for {
			r.cur = outermost
			try, ok := r.findMatchParen(r.t.MaxParen)
			if !ok || try.Lnum != outermost.Lnum {
				break
			}
			outermost = try
		}
		r.cur = save
		_, ifForWhile = cscan.IfForWhileBefore(r.line(outermost.Lnum), outermost.Col)
	}

	amount, look := r.skipLabel(our.Lnum)
	line := r.line(our.Lnum)
	look = cscan.SkipWhite(line, look)
	lookParen := byteAt(line, look) == '('
	if lookParen {
		// Ignore a '(' in front of the line that has a match before our
		// matching '('.
		try, ok := r.m.FindMatchLimit(cscan.Pos{Lnum: our.Lnum, Col: look + 1}, ')', 0, r.t.MaxParen)
		if ok && try.Lnum == our.Lnum && try.Col < our.Col {
			ignoreParenCol = try.Col + 1
		}
	}

	lineUp := (r.t.Unclosed == 0 && !ifForWhile) ||
		(r.t.UnclosedNoignore == 0 && lookParen && ignoreParenCol == 0)

	if closing || lineUp {
		// Line up right at a close paren, otherwise with the first
		// character after the open paren.
		if !closing {
			curAmount = maxCol
			l := line
			switch {
			case r.t.UnclosedWrapped != 0 && r.sc.EndsIn(l, "(", ""):
				// One level for each unmatched paren before ours.
				n := 1
				for col := 0; col < our.Col; col++ {
					switch l[col] {
					case '(', '{':
						n++
					case ')', '}':
						if n > 1 {
							n--
						}
					}
				}
				our.Col = 0
				amount += n * r.t.UnclosedWrapped
			case r.t.UnclosedWhiteok != 0:
				our.Col++
			default:
				col := cscan.SkipWhite(l, our.Col+1)
				if col < len(l) {
					our.Col = col
				} else {
					our.Col++
				}
			}
		}

		if our.Col > 0 {
			if col := r.vcol(*our); curAmount > col {
				curAmount = col
			}
		}
	}

	switch {
	case closing && r.t.MatchingParen != 0:
		// Line up with the start of the matching paren line.
	case lineUp:
		if curAmount != maxCol {
			amount = curAmount
		}
	default:
		// Add Unclosed2 for each '(' before ours, ignoring a "(void)"
		// cast at the start of the line.
		col := our.Col
		for our.Col > ignoreParenCol {
			our.Col--
			switch byteAt(line, our.Col) {
			case '(':
				amount += r.t.Unclosed2
				col = our.Col
			case ')':
				amount -= r.t.Unclosed2
				col = maxCol
			}
		}

		// Unclosed is used once, when the first '(' is not nested.
		if col == maxCol {
			amount += r.t.Unclosed
		} else {
			r.cur = cscan.Pos{Lnum: our.Lnum, Col: col}
			switch {
			case r.hasMatchParen():
				amount += r.t.Unclosed2
			case ifForWhile:
				amount += r.t.IfForWhile
			default:
				amount += r.t.Unclosed
			}
		}

		// A line starting with ')' never gets more indent than the
		// lines before it:
		//
		//	func_long_name(		    if (x
		//		arg			    && yy
		//		)	  ^ not here	       )    ^ not here
		if curAmount < amount {
			amount = curAmount
		}
	}
	return amount, curAmount
}

// hasMatchParen reports whether the cursor is inside another unclosed
// paren that is not outside the innermost '{', as in a lambda body:
//
//	foo([&]() {
//		bar(a,
func (r *run) hasMatchParen() bool {
	paren, ok := r.findMatchParen(r.t.MaxParen)
	if !ok {
		return false
	}
	brace, ok := r.findStartBrace()
	return !ok || !paren.Before(brace)
}
