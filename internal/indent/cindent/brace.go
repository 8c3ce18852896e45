package cindent

import (
	"github.com/dshills/cinder/internal/indent/cscan"
)

// findNamespaceLim bounds how far above a column-0 '{' a namespace
// declaration is looked for.
const findNamespaceLim = 20

// braceIndent indents a line inside the block opened by brace. done is
// set when the result is final and must not be adjusted further.
func (r *run) braceIndent(brace cscan.Pos) (amount int, done bool) {
	theline := r.theline
	t := r.t
	ourscope := brace.Lnum
	start := r.line(ourscope)

	// How indented the block is in general. A '{' that ends a line takes
	// the indent of the statement it belongs to.
	var startBrace braceKind
	if byteAt(start, cscan.SkipWhite(start, 0)) == '{' {
		amount = r.vcol(brace)
		if byteAt(start, 0) == '{' {
			startBrace = braceInCol0
		} else {
			startBrace = braceAtStart
		}
	} else {
		r.cur.Lnum = ourscope
		lnum := ourscope
		if r.findLastParen(start, '(', ')') {
			if try, ok := r.findMatchParen(t.MaxParen); ok {
				lnum = try.Lnum
			}
		}

		//	case 1: if (asdf &&
		//			ldfd) {
		//		}
		switch {
		case (t.JS != 0 || t.KeepCaseLabel != 0) && r.isCase(r.skipwhite(r.curline())):
			amount = r.getIndent()
		case t.JS != 0:
			amount = r.indentOf(lnum)
		default:
			amount, _ = r.skipLabel(lnum)
		}
		startBrace = braceAtEnd
	}

	// In JavaScript a "key:" line may be one of the entries of an object.
	jsCurHasKey := t.JS != 0 && r.sc.HasJSKey(theline, 0)

	if byteAt(theline, 0) == '}' {
		return amount + t.CloseExtra, false
	}

	// An "else" lines up with its "if", a "while" with its "do".
	lookfor := LookforInitial
	if r.isElse(theline) {
		lookfor = LookforIf
	} else if r.isWhileOfDo(theline, r.start.Lnum) {
		lookfor = LookforDo
	}
	if lookfor != LookforInitial {
		r.cur.Lnum = r.start.Lnum
		if r.findMatch(lookfor, ourscope) {
			return r.getIndent(), true
		}
	}

	// The amount used when nothing better is found.
	cppNamespace := false
	switch startBrace {
	case braceInCol0:
		amount = t.OpenLeftImag
		cppNamespace = true
	case braceAtEnd:
		amount += t.OpenImag
		if l := r.curline(); r.sc.IsNamespace(l, 0) {
			amount += t.CppNamespace
		} else if r.sc.IsCppExternC(l, 0) {
			amount += t.CppExternC
		}
	default:
		// OpenExtra is added back later.
		amount -= t.OpenExtra
		if amount < 0 {
			amount = 0
		}
	}

	lookforBreak := false
	switch {
	case r.isCase(theline):
		lookfor = LookforCase
		amount += t.Case
	case r.isScopeDecl(theline):
		lookfor = LookforScopeDecl
		amount += t.ScopeDecl
	default:
		if t.CaseBreak != 0 && cscan.IsBreak(theline, 0) {
			lookforBreak = true
		}
		lookfor = LookforInitial
		amount += t.Level
	}

	scopeAmount := amount
	whilelevel := 0
	contAmount := 0
	addedToAmount := 0
	contInd := r.contInd
	curAmount := maxCol

	cont := func() int {
		if contAmount > 0 {
			return contAmount
		}
		return amount + contInd
	}

	// Search backwards for something to line up with.
	r.cur = r.start
scan:
	for {
		r.cur.Lnum--
		r.cur.Col = 0

		if r.cur.Lnum <= ourscope {
			switch lookfor {
			case LookforEnumOrInit:
				// Back at the start of the scope while looking for an
				// enum or initializer: keep going above the '{'.
				if r.cur.Lnum <= 0 || r.cur.Lnum < ourscope-t.MaxParen {
					// Nothing found, assume a variable initialization.
					if contAmount > 0 {
						amount = contAmount
					} else if t.JS == 0 {
						amount += contInd
					}
					break scan
				}

				l := r.curline()
				if c, ok := r.findStartCORS(); ok {
					r.cur = cscan.Pos{Lnum: c.Lnum + 1}
					continue scan
				}
				if r.preprocCont(&r.cur.Lnum, &amount) || r.nocode(l) {
					continue scan
				}

				terminated := r.sc.IsTerminated(l, false, true)

				// A function declaration at the top level means this
				// is a variable declaration.
				if startBrace != braceInCol0 || !r.isFuncDecl(l, r.cur.Lnum, 0) {
					if terminated == ',' {
						break scan
					}
					if terminated != ';' && r.sc.IsInit(r.curline()) {
						break scan
					}
					if terminated == 0 || terminated == '{' {
						continue scan
					}
				}

				if terminated != ';' {
					// Skip parens and braces.
					var try cscan.Pos
					ok := false
					if r.findLastParen(l, '(', ')') {
						try, ok = r.findMatchParen(t.MaxParen)
					}
					if !ok && r.findLastParen(l, '{', '}') {
						try, ok = r.findStartBrace()
					}
					if ok {
						r.cur = cscan.Pos{Lnum: try.Lnum + 1}
						continue scan
					}
				}

				//	int a,
				//	    b;
				amount = cont()

			case LookforUnterm:
				amount = cont()

			default:
				if lookfor != LookforTerm && lookfor != LookforCppBaseclass && lookfor != LookforComma {
					amount = scopeAmount
					if byteAt(theline, 0) == '{' {
						amount += t.OpenExtra
						addedToAmount = t.OpenExtra
					}
				}

				if cppNamespace {
					// Look further back for a "namespace" or an
					// extern "C".
					if r.cur.Lnum == ourscope {
						continue scan
					}
					if r.cur.Lnum <= 0 || r.cur.Lnum < ourscope-findNamespaceLim {
						break scan
					}
					l := r.curline()
					if c, ok := r.findStartCORS(); ok {
						r.cur = cscan.Pos{Lnum: c.Lnum + 1}
						continue scan
					}
					if r.preprocCont(&r.cur.Lnum, &amount) {
						continue scan
					}
					if r.sc.IsNamespace(l, 0) {
						amount += t.CppNamespace - addedToAmount
						break scan
					}
					if r.sc.IsCppExternC(l, 0) {
						amount += t.CppExternC - addedToAmount
						break scan
					}
					if r.nocode(l) {
						continue scan
					}
				}
			}
			break scan
		}

		if c, ok := r.findStartCORS(); ok {
			r.cur = cscan.Pos{Lnum: c.Lnum + 1}
			continue
		}

		l := r.curline()

		// Switch labels and scope declarations.
		iscase := r.isCase(l)
		if iscase || r.isScopeDecl(l) {
			if lookfor == LookforCppBaseclass {
				break
			}
			// Labels do not matter while looking for a "do".
			if whilelevel > 0 {
				continue
			}

			//	case xx:
			//	    c = 99 +	    <- this indent plus continuation
			//	           here;
			if lookfor == LookforUnterm || lookfor == LookforEnumOrInit {
				amount = cont()
				break
			}

			//	case xx:	<- line up with this case
			//	    x = 333;
			//	case yy:
			if (iscase && lookfor == LookforCase) || (iscase && lookforBreak) ||
				(!iscase && lookfor == LookforScopeDecl) {
				// Unless the label belongs to another switch.
				if try, ok := r.findStartBrace(); !ok || try.Lnum == ourscope {
					amount = r.getIndent()
					break
				}
				continue
			}

			n := r.indentNoLabel(r.cur.Lnum)

			//	case xx: if (cond)	    <- line up with this if
			//		      y = y + 1;
			//	  s = 99;
			if lookfor == LookforTerm {
				if n != 0 {
					amount = n
				}
				if !lookforBreak {
					break
				}
			}

			//	case xx: x = x + 1;	    <- line up with this x
			//		 y = y + 1;
			if n != 0 {
				amount = n
				cl := r.curline()
				if p, ok := r.sc.AfterLabel(cl); ok && r.isCinword(cl[p:]) {
					if byteAt(theline, 0) == '{' {
						amount += t.OpenExtra
					} else {
						amount += t.Level + t.NoBrace
					}
				}
				break
			}

			// Line up with a statement before the label if there is
			// one, otherwise relative to the label.
			if iscase {
				scopeAmount = r.getIndent() + t.CaseCode
			} else {
				scopeAmount = r.getIndent() + t.ScopeDeclCode
			}
			if t.CaseBreak != 0 {
				lookfor = LookforNoBreak
			} else {
				lookfor = LookforAny
			}
			continue
		}

		// Only labels matter here; skip {} blocks.
		if lookfor == LookforCase || lookfor == LookforScopeDecl {
			if r.findLastParen(l, '{', '}') {
				if try, ok := r.findStartBrace(); ok {
					r.cur = cscan.Pos{Lnum: try.Lnum + 1}
				}
			}
			continue
		}

		// Jump labels with nothing after them.
		if t.JS == 0 && r.isLabel() {
			cl := r.curline()
			if p, ok := r.sc.AfterLabel(cl); !ok || r.sc.NoCode(cl, p) {
				continue
			}
		}

		l = r.curline()
		if r.preprocCont(&r.cur.Lnum, &amount) || r.nocode(l) {
			continue
		}

		isBase, baseCol := false, 0
		if lookfor != LookforTerm && t.CppBaseclass > 0 {
			isBase, baseCol = r.isCppBaseclass()
			l = r.curline()
		}
		if isBase {
			switch {
			case lookfor == LookforUnterm:
				amount = cont()
			case byteAt(theline, 0) == '{':
				// Find the start of the declaration.
				lookfor = LookforUnterm
				contInd = 0
				continue
			default:
				amount = r.baseclassAmount(baseCol)
			}
			break
		} else if lookfor == LookforCppBaseclass {
			if r.sc.IsTerminated(l, true, false) != 0 {
				break
			}
			continue
		}

		// A line ending in ',' only counts as terminated when another
		// unterminated statement follows it:
		//	123,
		//	sizeof
		//	    here
		terminated := r.sc.IsTerminated(l, false, true)

		if jsCurHasKey {
			jsCurHasKey = false
			//	key: something,		<- line up with this
			//	key: here
			if terminated == ',' {
				lookfor = LookforJSKey
			}
		}
		if lookfor == LookforJSKey && r.sc.HasJSKey(l, 0) {
			amount = r.getIndent()
			break
		}
		if lookfor == LookforComma {
			if brace.Lnum >= r.cur.Lnum || terminated == ',' {
				break
			}
			// Possibly the first line of an entry broken over lines.
			amount = r.getIndent()
			if r.cur.Lnum-1 == ourscope {
				break
			}
		}

		switch {
		case terminated == 0 || (lookfor != LookforUnterm && terminated == ','):
			if lookfor != LookforEnumOrInit && (byteAt(r.skipwhite(l), 0) == '[' || l[len(l)-1] == '[') {
				amount += contInd
			}

			// Go back to the line that starts a paren expression:
			//	if ( foo &&
			//		bar )
			// A paren before the start of the block does not count.
			r.findLastParen(l, '(', ')')
			try, ok := r.findMatchParen(r.corrMaxParen(r.start))
			if ok && try.Before(brace) {
				ok = false
			}
			if !ok && terminated == ',' && r.findLastParen(l, '{', '}') {
				try, ok = r.findStartBrace()
			}
			if ok {
				r.cur = try
				l = r.curline()
				if r.isCase(l) || r.isScopeDecl(l) {
					r.cur = cscan.Pos{Lnum: r.cur.Lnum + 1}
					continue
				}
			}

			//	char *usethis = "bla\
			//		 bla",
			//	    here;
			if terminated == ',' {
				for r.cur.Lnum > 1 && endsInBackslash(r.line(r.cur.Lnum-1)) {
					r.cur.Lnum--
					r.cur.Col = 0
				}
			}

			if t.JS == 0 {
				var off int
				curAmount, off = r.skipLabel(r.cur.Lnum)
				l = r.curline()[off:]
			} else {
				curAmount = r.getIndent()
			}

			//	while (not)
			//	{
			//	}
			if terminated != ',' && lookfor != LookforTerm && byteAt(theline, 0) == '{' {
				amount = curAmount
				// Not for a line that opens its own braces:
				//	{ 1, 2 },
				//	{ 3, 4 }
				if byteAt(l, cscan.SkipWhite(l, 0)) != '{' {
					amount += t.OpenExtra
				}
				if t.CppBaseclass != 0 && t.JS == 0 {
					lookfor = LookforCppBaseclass
					continue
				}
				break scan
			}

			if r.isCinword(l) || r.isElse(r.skipwhite(l)) {
				//	if (cond)
				//	    100 +
				//		here;
				if lookfor == LookforUnterm || lookfor == LookforEnumOrInit {
					amount = cont()
					break scan
				}

				//	    while (not)
				//		here;
				amount = curAmount
				if byteAt(theline, 0) == '{' {
					amount += t.OpenExtra
				}
				if lookfor != LookforTerm {
					amount += t.Level + t.NoBrace
					break scan
				}

				// Expecting the while () after a do: line up with it.
				cl := r.curline()
				ls := cscan.SkipWhite(cl, 0)
				if cscan.IsDo(cl, ls) {
					if whilelevel == 0 {
						break scan
					}
					whilelevel--
				}

				// Between an "if" and its "else", use the scope of the
				// "else".
				if r.sc.IsElse(cl, ls) && whilelevel == 0 {
					if byteAt(cl, ls) == '}' {
						r.cur.Col = ls + 1
					}
					try, ok := r.findStartBrace()
					if !ok || !r.findMatch(LookforIf, try.Lnum) {
						break scan
					}
				}
			} else {
				switch lookfor {
				case LookforUnterm:
					//	c = 99 +
					//	    100 +
					//	    here;
					if terminated == ',' {
						amount += contInd
					}
					break scan
				case LookforEnumOrInit:
					// Two lines ending in ',': line up with the lower
					// one unless this is a base class list.
					if terminated == ',' {
						if t.CppBaseclass == 0 {
							break scan
						}
						lookfor = LookforCppBaseclass
						continue
					}
					if amount > curAmount {
						amount = curAmount
					}
				default:
					//	    100 +
					//	    here;
					cl := r.curline()
					amount = curAmount
					if terminated == ',' && (byteAt(r.skipwhite(cl), 0) == ']' ||
						(len(cl) >= 2 && cl[len(cl)-2] == ']')) {
						break scan
					}

					switch {
					case lookfor == LookforInitial && terminated == ',' && t.JS != 0:
						// Line up with the line below the previous one
						// ending in ',':
						//	some = [
						//	    3 +		<- line up here
						//	      4,
						//	    here
						if r.isComment(r.skipwhite(cl)) {
							break scan
						}
						lookfor = LookforComma
						if try, ok := r.findMatchChar('[', t.MaxParen); ok {
							if try.Lnum == r.cur.Lnum-1 {
								break scan
							}
							ourscope = try.Lnum
						}
					case lookfor == LookforInitial && terminated == ',':
						lookfor = LookforEnumOrInit
						contAmount = r.sc.FirstIDAmount(cl, r.ts)
					default:
						if lookfor == LookforInitial && endsInBackslash(cl) {
							contAmount = r.equalAmount(r.cur.Lnum)
						}
						if lookfor != LookforTerm && lookfor != LookforJSKey && lookfor != LookforComma {
							lookfor = LookforUnterm
						}
					}
				}
			}

		case r.isWhileOfDoEnd(terminated):
			//	    while (cond);
			//	    100 +		<- line up with this one
			//		here;
			if lookfor == LookforUnterm || lookfor == LookforEnumOrInit {
				amount = cont()
				break scan
			}
			if whilelevel == 0 {
				lookfor = LookforTerm
				amount = r.getIndent()
				if byteAt(theline, 0) == '{' {
					amount += t.OpenExtra
				}
			}
			whilelevel++

		default:
			// A lone "break" before a switch label may line up with the
			// label.
			if lookfor == LookforNoBreak && cscan.IsBreak(r.curline(), cscan.SkipWhite(r.curline(), 0)) {
				lookfor = LookforAny
				continue
			}

			if whilelevel > 0 {
				cl := r.curline()
				if cscan.IsDo(cl, r.sc.SkipComment(cl, 0)) {
					amount = r.getIndent()
					whilelevel--
					continue
				}
			}

			//	x = 1;
			//	y = foo +
			//	    here;
			if lookfor == LookforUnterm || lookfor == LookforEnumOrInit {
				amount = cont()
				break scan
			}

			if lookfor == LookforTerm {
				if !lookforBreak && whilelevel == 0 {
					break scan
				}
				continue
			}

			// The line above is terminated; look further back for
			// the statement it ends.
		termAgain:
			for {
				l = r.curline()
				if r.findLastParen(l, '(', ')') {
					if try, ok := r.findMatchParen(t.MaxParen); ok {
						r.cur = try
						l = r.curline()
						if r.isCase(l) || r.isScopeDecl(l) {
							r.cur = cscan.Pos{Lnum: r.cur.Lnum + 1}
							continue scan
						}
					}
				}

				// Do not line up with a statement after a kept case
				// label.
				keepCase := t.KeepCaseLabel != 0 && r.isCase(l)

				var off int
				amount, off = r.skipLabel(r.cur.Lnum)
				if byteAt(theline, 0) == '{' {
					amount += t.OpenExtra
				}
				l = r.skipwhite(r.curline()[off:])
				if byteAt(l, 0) == '{' {
					amount -= t.OpenExtra
				}
				if keepCase {
					lookfor = LookforAny
				} else {
					lookfor = LookforTerm
				}

				//	else 3;
				//	    indent this;
				if lookfor == LookforTerm && byteAt(l, 0) != '}' && r.isElse(l) && whilelevel == 0 {
					try, ok := r.findStartBrace()
					if !ok || !r.findMatch(LookforIf, try.Lnum) {
						break scan
					}
					continue scan
				}

				// At the end of a block, skip to its start.
				l = r.curline()
				if r.findLastParen(l, '{', '}') {
					if try, ok := r.findStartBrace(); ok {
						r.cur = try
						cl := r.curline()
						p := r.sc.SkipComment(cl, 0)
						if byteAt(cl, p) == '}' || !r.sc.IsElse(cl, p) {
							continue termAgain
						}
						r.cur = cscan.Pos{Lnum: r.cur.Lnum + 1}
					}
				}
				break
			}
		}
	}
	return amount, false
}

// equalAmount returns the column after the '=' on line lnum, or -1 when
// the line above continues with a backslash.
func (r *run) equalAmount(lnum int) int {
	prev := ""
	if lnum > 1 {
		prev = r.line(lnum - 1)
	}
	return r.sc.EqualAmount(prev, r.line(lnum), r.ts)
}
