package cindent

import (
	"strings"

	"github.com/dshills/cinder/internal/indent/cscan"
)

// topLevelIndent indents a line outside any parens or braces. It
// generally follows the previous line, except that K&R parameter
// declarations after a function header are indented.
func (r *run) topLevelIndent() int {
	theline := r.theline
	t := r.t
	next := r.start.Lnum + 1

	switch {
	case byteAt(theline, 0) == '{':
		// Looks like the start of a function.
		return t.FirstOpen

	case r.start.Lnum < r.buf.LineCount() &&
		!r.nocode(theline) &&
		!strings.ContainsAny(theline, "{}") &&
		!r.sc.EndsIn(theline, ":", "") &&
		!r.sc.EndsIn(theline, ",", "") &&
		r.isFuncDecl(r.line(next), next, next) &&
		r.sc.IsTerminated(theline, false, true) == 0:
		// The next line declares a function: this is its type.
		return t.FuncType
	}

	amount := r.topLevelScan()

	if r.isComment(theline) {
		amount += t.Comment
	}

	//	"asdfasdf\
	//	    here";
	if prev := r.line(r.start.Lnum - 1); endsInBackslash(prev) {
		switch eq := r.equalAmount(r.start.Lnum - 1); {
		case eq > 0:
			amount = eq
		case eq == 0:
			amount += r.contInd
		}
	}
	return amount
}

// topLevelScan searches backwards for a line to take the indent from.
func (r *run) topLevelScan() int {
	t := r.t
	theline := r.theline
	amount := 0

	r.cur = r.start
	for r.cur.Lnum > 1 {
		r.cur.Lnum--
		r.cur.Col = 0
		l := r.curline()

		if c, ok := r.findStartCORS(); ok {
			r.cur = cscan.Pos{Lnum: c.Lnum + 1}
			continue
		}

		if t.CppBaseclass != 0 && byteAt(theline, 0) != '{' {
			if ok, col := r.isCppBaseclass(); ok {
				return r.baseclassAmount(col)
			}
			l = r.curline()
		}

		if r.preprocCont(&r.cur.Lnum, &amount) || r.nocode(l) {
			continue
		}

		// A line ending in ',' gives one level of indent:
		//	int foo,
		//	    bar;
		// This comes before the '}' check for:
		//	} foo,
		//	  bar;
		commaEnd := r.sc.EndsIn(l, ",", "")
		if commaEnd || endsInBackslash(l) {
			if r.findLastParen(l, '(', ')') {
				if try, ok := r.findMatchParen(t.MaxParen); ok {
					r.cur = try
				}
			}

			//	char *foo = "bla\
			//		 bla",
			//	    here;
			for commaEnd && r.cur.Lnum > 1 && endsInBackslash(r.line(r.cur.Lnum-1)) {
				r.cur.Lnum--
				r.cur.Col = 0
			}

			amount = r.getIndent()
			if amount == 0 {
				amount = r.sc.FirstIDAmount(r.curline(), r.ts)
			}
			if amount == 0 {
				amount = r.contInd
			}
			return amount
		}

		// A function declaration goes at the left margin.
		if r.isFuncDecl(r.line(r.start.Lnum), r.start.Lnum, 0) {
			return 0
		}
		l = r.curline()

		// The closing '}' of a previous function.
		if byteAt(l, cscan.SkipWhite(l, 0)) == '}' {
			return 0
		}

		//	char *string_array[] = { "foo",
		//	    "bar" };
		if r.sc.EndsIn(l, "};", "") {
			return 0
		}

		// A lone ';' that belongs to a line ending in '}', as found
		// before an #endif.
		if look := cscan.SkipWhite(l, 0); byteAt(l, look) == ';' && r.sc.NoCode(l, look+1) {
			save := r.cur
			above := l[look:]
			for r.cur.Lnum > 1 {
				r.cur.Lnum--
				above = r.curline()
				if r.nocode(above) {
					continue
				}
				if r.preprocCont(&r.cur.Lnum, &amount) {
					above = r.curline()
					continue
				}
				break
			}
			if r.cur.Lnum > 0 && r.sc.EndsIn(above, "}", "") {
				return 0
			}
			r.cur = save
		}

		// Parameter declarations after a function header.
		if r.isFuncDecl(l, r.cur.Lnum, 0) {
			return t.Param
		}

		//	int foo,
		//	    bar;
		//	here;
		if r.sc.EndsIn(l, ";", "") {
			above := r.line(r.cur.Lnum - 1)
			if r.sc.EndsIn(above, ",", "") || endsInBackslash(above) {
				return 0
			}
		}

		// Use the indent of the statement this line belongs to.
		r.findLastParen(l, '(', ')')
		if try, ok := r.findMatchParen(t.MaxParen); ok {
			r.cur = try
		}
		return r.getIndent()
	}
	return amount
}
