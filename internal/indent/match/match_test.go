package match

import (
	"testing"

	"github.com/dshills/cinder/internal/indent/cscan"
)

func lines(s ...string) cscan.StringLines { return cscan.StringLines(s) }

func TestFindMatchLimitParen(t *testing.T) {
	buf := lines(
		"foo(a,",
		"    b,",
		"    c",
	)
	m := New(buf, false)

	pos, ok := m.FindMatchLimit(Pos{Lnum: 3, Col: 0}, '(', 0, 0)
	if !ok || pos != (Pos{Lnum: 1, Col: 3}) {
		t.Errorf("expected (1:3), got %v %v", pos, ok)
	}

	if _, ok := m.FindMatchLimit(Pos{Lnum: 3, Col: 0}, '(', 0, 1); ok {
		t.Error("expected search limited to one line to fail")
	}
}

func TestFindMatchLimitSkipsStrings(t *testing.T) {
	buf := lines(
		`f(x, ")",`,
		`  y`,
	)
	m := New(buf, false)
	pos, ok := m.FindMatchLimit(Pos{Lnum: 2, Col: 0}, '(', 0, 0)
	if !ok || pos != (Pos{Lnum: 1, Col: 1}) {
		t.Errorf("expected (1:1), got %v %v", pos, ok)
	}
}

func TestFindMatchLimitSkipsCharLiterals(t *testing.T) {
	m := New(lines(`g(c == '(' ||`, `  d`), false)
	pos, ok := m.FindMatchLimit(Pos{Lnum: 2, Col: 0}, '(', 0, 0)
	if !ok || pos != (Pos{Lnum: 1, Col: 1}) {
		t.Errorf("expected (1:1), got %v %v", pos, ok)
	}
}

func TestFindMatchLimitNested(t *testing.T) {
	m := New(lines("a(b(c), d(e),", "  f"), false)
	pos, ok := m.FindMatchLimit(Pos{Lnum: 2, Col: 0}, '(', 0, 0)
	if !ok || pos != (Pos{Lnum: 1, Col: 1}) {
		t.Errorf("expected (1:1), got %v %v", pos, ok)
	}
}

func TestFindMatchLimitForward(t *testing.T) {
	m := New(lines("while (a &&", "       b);"), false)
	pos, ok := m.FindMatchLimit(Pos{Lnum: 1, Col: 0}, 0, 0, 10)
	if !ok || pos != (Pos{Lnum: 2, Col: 8}) {
		t.Errorf("expected (2:8), got %v %v", pos, ok)
	}
}

func TestBlockStop(t *testing.T) {
	buf := lines(
		"int f()",
		"{",
		"    if (x) {",
		"        y();",
		"    }",
		"    z();",
	)
	m := New(buf, false)

	pos, ok := m.FindMatchLimit(Pos{Lnum: 6, Col: 0}, '{', BlockStop, 0)
	if !ok || pos != (Pos{Lnum: 2, Col: 0}) {
		t.Errorf("expected (2:0), got %v %v", pos, ok)
	}

	pos, ok = m.FindMatchLimit(Pos{Lnum: 4, Col: 0}, '{', BlockStop, 0)
	if !ok || pos != (Pos{Lnum: 3, Col: 11}) {
		t.Errorf("expected (3:11), got %v %v", pos, ok)
	}
}

func TestFindStartComment(t *testing.T) {
	buf := lines(
		"int x; /* start",
		"   middle",
		"   end */",
		"int y;",
	)
	m := New(buf, false)

	pos, ok := m.FindStartComment(Pos{Lnum: 2, Col: 0}, 70)
	if !ok || pos != (Pos{Lnum: 1, Col: 7}) {
		t.Errorf("expected (1:7), got %v %v", pos, ok)
	}
	if _, ok := m.FindStartComment(Pos{Lnum: 4, Col: 0}, 70); ok {
		t.Error("expected line after comment to be outside it")
	}
	if _, ok := m.FindStartComment(Pos{Lnum: 3, Col: 0}, 1); ok {
		t.Error("expected limit of one line to miss the opener")
	}
}

func TestFindStartCommentIgnoresStrings(t *testing.T) {
	m := New(lines(`s = "/*";`, "x = 1;"), false)
	if _, ok := m.FindStartComment(Pos{Lnum: 2, Col: 0}, 70); ok {
		t.Error("expected '/*' inside a string to be ignored")
	}
}

func TestFindStartBrace(t *testing.T) {
	buf := lines(
		"void f()",
		"{",
		"    // {",
		"    x = '{';",
		"    /* {",
		"     */",
		"    y();",
	)
	m := New(buf, false)
	pos, ok := m.FindStartBrace(Pos{Lnum: 7, Col: 0}, 70, 0)
	if !ok || pos != (Pos{Lnum: 2, Col: 0}) {
		t.Errorf("expected (2:0), got %v %v", pos, ok)
	}
	if _, ok := m.FindStartBrace(Pos{Lnum: 7, Col: 0}, 70, 3); ok {
		t.Error("expected travel limit to stop the search")
	}
}

func TestFindMatchParen(t *testing.T) {
	m := New(lines("x = f(a, // note", "    b"), false)
	pos, ok := m.FindMatchParen(Pos{Lnum: 2, Col: 0}, 20, 70)
	if !ok || pos != (Pos{Lnum: 1, Col: 5}) {
		t.Errorf("expected (1:5), got %v %v", pos, ok)
	}

	m = New(lines("x = f // (", "    a"), false)
	if _, ok := m.FindMatchParen(Pos{Lnum: 2, Col: 0}, 20, 70); ok {
		t.Error("expected paren inside line comment rejected")
	}

	m = New(lines("/* f(", "   a */"), false)
	if _, ok := m.FindMatchParen(Pos{Lnum: 2, Col: 0}, 20, 70); ok {
		t.Error("expected paren inside comment rejected")
	}
}

func TestFindMatchParenRetriesAboveComments(t *testing.T) {
	m := New(lines("foo(a,", "  // see (1", "  b,", ""), false)
	pos, ok := m.FindMatchParen(Pos{Lnum: 4, Col: 0}, 20, 70)
	if !ok || pos != (Pos{Lnum: 1, Col: 3}) {
		t.Errorf("expected (1:3), got %v %v", pos, ok)
	}

	m = New(lines("foo(a,", "  /* note", "     ( more */", "  b,"), false)
	pos, ok = m.FindMatchParen(Pos{Lnum: 4, Col: 0}, 20, 70)
	if !ok || pos != (Pos{Lnum: 1, Col: 3}) {
		t.Errorf("expected (1:3), got %v %v", pos, ok)
	}

	// The lines skipped over count against the limit.
	if _, ok := m.FindMatchParen(Pos{Lnum: 4, Col: 0}, 2, 70); ok {
		t.Error("expected the retry to run out of lines")
	}
}

func TestFindMatchChar(t *testing.T) {
	m := New(lines("x = [", "  1, // [", "  2,"), false)
	pos, ok := m.FindMatchChar(Pos{Lnum: 3, Col: 0}, '[', 20, 70)
	if !ok || pos != (Pos{Lnum: 1, Col: 4}) {
		t.Errorf("expected (1:4), got %v %v", pos, ok)
	}
}

func TestFindStartRawString(t *testing.T) {
	buf := lines(
		`s = R"x(`,
		`  ( raw`,
		`)x";`,
		`t();`,
	)
	m := New(buf, false)

	pos, ok := m.FindStartRawString(Pos{Lnum: 2, Col: 0}, 70)
	if !ok || pos != (Pos{Lnum: 1, Col: 4}) {
		t.Errorf("expected (1:4), got %v %v", pos, ok)
	}
	if _, ok := m.FindStartRawString(Pos{Lnum: 4, Col: 0}, 70); ok {
		t.Error("expected closed raw string to be ignored")
	}
}

func TestFindStartCommentOrRaw(t *testing.T) {
	m := New(lines(`s = R"(`, `/* not a comment`, `)";`), false)
	pos, raw, ok := m.FindStartCommentOrRaw(Pos{Lnum: 3, Col: 0}, 70)
	if !ok || !raw || pos != (Pos{Lnum: 1, Col: 4}) {
		t.Errorf("expected raw string at (1:4), got %v raw=%v %v", pos, raw, ok)
	}

	m = New(lines(`/* R"(`, `   x`), false)
	pos, raw, ok = m.FindStartCommentOrRaw(Pos{Lnum: 2, Col: 0}, 70)
	if !ok || raw || pos != (Pos{Lnum: 1, Col: 0}) {
		t.Errorf("expected comment at (1:0), got %v raw=%v %v", pos, raw, ok)
	}
}

func TestFindLineComment(t *testing.T) {
	m := New(lines("  // note", "", "x"), false)
	pos, ok := m.FindLineComment(3)
	if !ok || pos != (Pos{Lnum: 1, Col: 2}) {
		t.Errorf("expected (1:2), got %v %v", pos, ok)
	}
	m = New(lines("  // note", "y;", "x"), false)
	if _, ok := m.FindLineComment(3); ok {
		t.Error("expected code line to stop the search")
	}
}

func TestLineComment(t *testing.T) {
	if col, ok := LineComment("x = 1; // c"); !ok || col != 7 {
		t.Errorf("expected (7, true), got (%d, %v)", col, ok)
	}
	if _, ok := LineComment("/* a *//* b */"); ok {
		t.Error("expected '*//*' not to be a line comment")
	}
}

func TestLispMode(t *testing.T) {
	if got := LispLineComment(`(a "b;c") ; note`); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
	if got := LispLineComment(`(char= c #\;)`); got != maxCol {
		t.Errorf("expected no comment, got %d", got)
	}

	m := New(lines(`(foo #\( ; (`, `  bar`), true)
	pos, ok := m.FindMatchLimit(Pos{Lnum: 2, Col: 0}, '(', 0, 0)
	if !ok || pos != (Pos{Lnum: 1, Col: 0}) {
		t.Errorf("expected (1:0), got %v %v", pos, ok)
	}
}
