package cscan

// PreprocStart reports whether line lnum is a preprocessor line or the
// continuation of one, and returns the line number where the directive
// starts. When it is not, lnum is returned unchanged.
func PreprocStart(lines Lines, lnum int) (int, bool) {
	line := lines.Line(lnum)
	for l := lnum; ; {
		if IsPreproc(line) {
			return l, true
		}
		if l <= 1 {
			return lnum, false
		}
		l--
		line = lines.Line(l)
		if line == "" || line[len(line)-1] != '\\' {
			return lnum, false
		}
	}
}

// IsCppBaseclass recognizes a line inside a C++ base class list or
// constructor initializer list ending at line lnum:
//
//	class MyClass :
//		baseClass		<-- here
//	MyClass::MyClass(...) :
//		baseClass(...)		<-- here
//
// The returned column is the byte column in the starting line to line up
// with, or 0 when the caller should compute the amount itself.
func (sc Scanner) IsCppBaseclass(lines Lines, lnum int) (bool, int) {
	cur := lnum
	line := lines.Line(cur)
	col := 0

	s := SkipWhite(line, 0)
	if At(line, s) == '#' {
		return false, 0
	}
	if At(line, sc.SkipComment(line, s)) == 0 {
		return false, 0
	}

	// Start below the nearest line that is empty, a directive, ends in
	// ';' or contains a brace.
	for lnum > 1 {
		l := lines.Line(lnum - 1)
		s := SkipWhite(l, 0)
		if At(l, s) == '#' || At(l, s) == 0 {
			break
		}
		for At(l, s) != 0 {
			s = sc.SkipComment(l, s)
			if c := At(l, s); c == '{' || c == '}' || (c == ';' && sc.NoCode(l, s+1)) {
				break
			}
			if At(l, s) != 0 {
				s++
			}
		}
		if At(l, s) != 0 {
			break
		}
		lnum--
	}

	baseClass, ctorInit, classOrStruct := false, false, false
	line = lines.Line(lnum)
	s = sc.SkipComment(line, 0)
	for {
		if At(line, s) == 0 {
			if lnum == cur {
				break
			}
			lnum++
			line = lines.Line(lnum)
			s = sc.SkipComment(line, 0)
			if At(line, s) == 0 {
				continue
			}
		}

		switch c := line[s]; {
		case c == '"':
			s = SkipString(line, s) + 1
		case c == ':':
			switch {
			case At(line, s+1) == ':':
				ctorInit = false
				s = sc.SkipComment(line, s+2)
			case ctorInit || classOrStruct:
				baseClass = true
				ctorInit, classOrStruct = false, false
				col = 0
				s = sc.SkipComment(line, s+1)
			default:
				s = sc.SkipComment(line, s+1)
			}
		case StartsWith(line, s, "class"):
			classOrStruct, ctorInit = true, false
			s = sc.SkipComment(line, s+5)
		case StartsWith(line, s, "struct"):
			classOrStruct, ctorInit = true, false
			s = sc.SkipComment(line, s+6)
		default:
			switch {
			case c == '{' || c == '}' || c == ';':
				baseClass, ctorInit, classOrStruct = false, false, false
			case c == ')':
				classOrStruct = false
				ctorInit = true
			case c == '?':
				// "cond ? f() : x" is not a constructor initializer.
				return false, 0
			case !IsIDc(c):
				classOrStruct = false
				ctorInit = false
			case col == 0:
				ctorInit = false
				if baseClass {
					col = s
				}
			}
			if lnum == cur && c == ',' && sc.NoCode(line, s+1) {
				col = 0
			}
			s = sc.SkipComment(line, s+1)
		}
	}
	return baseClass, col
}
