package cscan

import (
	"testing"
)

func TestSkipComment(t *testing.T) {
	var sc Scanner
	tests := []struct {
		line string
		want int
	}{
		{"  foo", 2},
		{"/* a */ foo", 8},
		{"// all comment", 14},
		{"/* a */ /* b */x", 15},
		{"/* unterminated", 15},
		{"x", 0},
	}
	for _, tt := range tests {
		if got := sc.SkipComment(tt.line, 0); got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.line, tt.want, got)
		}
	}

	hash := Scanner{HashComment: true}
	if got := hash.SkipComment("  # perl", 0); got != 8 {
		t.Errorf("expected hash comment skipped, got %d", got)
	}
	if got := hash.SkipComment("#x", 0); got != 0 {
		t.Errorf("expected '#' at column 0 kept, got %d", got)
	}
}

func TestSkipString(t *testing.T) {
	tests := []struct {
		line string
		i    int
		want int
	}{
		{`"abc" x`, 0, 5},
		{`"a\"b" x`, 0, 6},
		{`"date""time";`, 0, 12},
		{`'c';`, 0, 3},
		{`'\n';`, 0, 4},
		{`'\000';`, 0, 6},
		{`x`, 0, 0},
		{`"open`, 0, 4},
	}
	for _, tt := range tests {
		if got := SkipString(tt.line, tt.i); got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.line, tt.want, got)
		}
	}
}

func TestIsCase(t *testing.T) {
	var sc Scanner
	tests := []struct {
		line   string
		strict bool
		want   bool
	}{
		{"case 1:", false, true},
		{"  case FOO: x = 1;", false, true},
		{"case A::B:", false, true},
		{"case ':':", false, true},
		{"default:", false, true},
		{"default::x", false, false},
		{"int x = 1; // case foo:", false, false},
		{"/* case foo: */", false, false},
		{"case /* x */", false, false},
		{`case "a":`, false, true},
		{`case "a":`, true, false},
		{"casex:", false, false},
	}
	for _, tt := range tests {
		if got := sc.IsCase(tt.line, 0, tt.strict); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.line, tt.want, got)
		}
	}
}

func TestIsScopeDecl(t *testing.T) {
	var sc Scanner
	for line, want := range map[string]bool{
		"public:":       true,
		"  private :":   true,
		"protected:":    true,
		"public::x":     false,
		"publicity = 1": false,
	} {
		if got := sc.IsScopeDecl(line, 0); got != want {
			t.Errorf("%q: expected %v, got %v", line, want, got)
		}
	}
}

func TestIsNamespace(t *testing.T) {
	var sc Scanner
	for line, want := range map[string]bool{
		"namespace":         true,
		"namespace foo":     true,
		"namespace foo {":   true,
		"namespace {":       true,
		"namespace foo bar": false,
		"namespaces":        false,
		"namespace foo = x": false,
	} {
		if got := sc.IsNamespace(line, 0); got != want {
			t.Errorf("%q: expected %v, got %v", line, want, got)
		}
	}
}

func TestIsCppExternC(t *testing.T) {
	var sc Scanner
	for line, want := range map[string]bool{
		`extern "C" {`:            true,
		`extern "C++"`:            true,
		`extern /* c */ "C" {`:    true,
		`extern "C" "C" {`:        false,
		`extern "C" void f();`:    false,
		`extern int x;`:           false,
		`externC "C"`:             false,
		`extern`:                  false,
		`  extern "C++" { // c++`: true,
	} {
		if got := sc.IsCppExternC(line, 0); got != want {
			t.Errorf("%q: expected %v, got %v", line, want, got)
		}
	}
}

func TestHasJSKey(t *testing.T) {
	var sc Scanner
	for line, want := range map[string]bool{
		"  key: 1,":       true,
		"'key': 1":        true,
		`"key": 1`:        true,
		"key /* c */ : 1": true,
		`"a-b": 1`:        false,
		"std::cout << x;": false,
		"x = 1;":          false,
		"  : 1":           false,
	} {
		if got := sc.HasJSKey(line, 0); got != want {
			t.Errorf("%q: expected %v, got %v", line, want, got)
		}
	}
}

func TestIsTerminated(t *testing.T) {
	var sc Scanner
	tests := []struct {
		line      string
		inclOpen  bool
		inclComma bool
		want      byte
	}{
		{"foo();", false, false, ';'},
		{"if (x)", false, false, 0},
		{"{", false, false, '{'},
		{"}", false, false, '}'},
		{"} else {", false, false, 0},
		{"else { foo();", false, false, 0},
		{"a = 1, /* c */", false, true, ','},
		{"a = 1,", false, false, 0},
		{"while (x) {", true, false, '{'},
		{`s = ";" + x`, false, false, 0},
		{"x = 1; /* done */", false, false, ';'},
	}
	for _, tt := range tests {
		if got := sc.IsTerminated(tt.line, tt.inclOpen, tt.inclComma); got != tt.want {
			t.Errorf("%q: expected %q, got %q", tt.line, tt.want, got)
		}
	}
}

func TestKeywords(t *testing.T) {
	var sc Scanner
	if !IsIf("if (x)", 0) || IsIf("iffy", 0) {
		t.Error("IsIf mismatch")
	}
	if !IsDo("do {", 0) || IsDo("double x;", 0) {
		t.Error("IsDo mismatch")
	}
	if !IsBreak("break;", 0) || IsBreak("breakage", 0) {
		t.Error("IsBreak mismatch")
	}
	if !sc.IsElse("} else {", 0) || !sc.IsElse("else", 0) || sc.IsElse("elsewhere", 0) {
		t.Error("IsElse mismatch")
	}
}

func TestAfterLabel(t *testing.T) {
	var sc Scanner
	i, ok := sc.AfterLabel("case 234:    a = b;")
	if !ok || i != 13 {
		t.Errorf("expected (13, true), got (%d, %v)", i, ok)
	}
	if _, ok := sc.AfterLabel("case 1:"); ok {
		t.Error("expected nothing after label")
	}
	if _, ok := sc.AfterLabel("case 1: // note"); ok {
		t.Error("expected comment to count as nothing")
	}
	i, ok = sc.AfterLabel("case 1: case 2: x;")
	if !ok || i != 16 {
		t.Errorf("expected (16, true), got (%d, %v)", i, ok)
	}
}

func TestIsLabelSkip(t *testing.T) {
	var sc Scanner
	if i, ok := sc.IsLabelSkip("done: x", 0); !ok || i != 5 {
		t.Errorf("expected (5, true), got (%d, %v)", i, ok)
	}
	if _, ok := sc.IsLabelSkip("std::cout", 0); ok {
		t.Error("expected '::' rejected")
	}
	if _, ok := sc.IsLabelSkip(":x", 0); ok {
		t.Error("expected missing identifier rejected")
	}
}

func TestIsInit(t *testing.T) {
	var sc Scanner
	for line, want := range map[string]bool{
		"enum color {":                 true,
		"typedef enum {":               true,
		"static int a[] = {":           true,
		"static public x = { // table": true,
		"int main() {":                 false,
		"x = y;":                       false,
	} {
		if got := sc.IsInit(line); got != want {
			t.Errorf("%q: expected %v, got %v", line, want, got)
		}
	}
}

func TestEndsIn(t *testing.T) {
	var sc Scanner
	if !sc.EndsIn("a = b, // more", ",", "") {
		t.Error("expected trailing comma found")
	}
	if !sc.EndsIn("x = {", "=", "{") {
		t.Error("expected '=' with ignored '{'")
	}
	if sc.EndsIn(`f(",")`, ",", "") {
		t.Error("expected comma inside string ignored")
	}
}

func TestIfForWhileBefore(t *testing.T) {
	off, ok := IfForWhileBefore("    if (x", 7)
	if !ok || off != 4 {
		t.Errorf("expected (4, true), got (%d, %v)", off, ok)
	}
	off, ok = IfForWhileBefore("  while(x", 7)
	if !ok || off != 2 {
		t.Errorf("expected (2, true), got (%d, %v)", off, ok)
	}
	if _, ok := IfForWhileBefore("  foo(x", 5); ok {
		t.Error("expected no keyword")
	}
	if _, ok := IfForWhileBefore("  xif(x", 5); ok {
		t.Error("expected identifier prefix rejected")
	}
}

func TestSkip2Pos(t *testing.T) {
	line := `x = "(" + f(a); // (`
	if got := Skip2Pos(line, 11); got != 11 {
		t.Errorf("expected 11, got %d", got)
	}
	if got := Skip2Pos(line, 5); got <= 5 {
		t.Errorf("expected paren in string to be skipped, got %d", got)
	}
	if got := Skip2Pos(line, 19); got <= 19 {
		t.Errorf("expected paren in comment to be skipped, got %d", got)
	}
}

func TestFindLastParen(t *testing.T) {
	var sc Scanner
	col, ok := sc.FindLastParen("f(a) + g(b))", '(', ')')
	if !ok || col != 11 {
		t.Errorf("expected (11, true), got (%d, %v)", col, ok)
	}
	if _, ok := sc.FindLastParen("f(a)", '(', ')'); ok {
		t.Error("expected no unmatched paren")
	}
	if _, ok := sc.FindLastParen(`x = ")";`, '(', ')'); ok {
		t.Error("expected paren in string ignored")
	}
}

func TestFirstIDAmount(t *testing.T) {
	var sc Scanner
	tests := []struct {
		line string
		want int
	}{
		{"int     a,", 8},
		{"static struct foo    b,", 21},
		{"unsigned int x,", 13},
		{"enum bla    c,", 12},
		{"foo", 0},
		{"  // int a,", 0},
	}
	for _, tt := range tests {
		if got := sc.FirstIDAmount(tt.line, 8); got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.line, tt.want, got)
		}
	}
}

func TestEqualAmount(t *testing.T) {
	var sc Scanner
	if got := sc.EqualAmount("", `char *foo = "here";`, 8); got != 13 {
		t.Errorf("expected 13, got %d", got)
	}
	if got := sc.EqualAmount(`x = "a\`, `b";`, 8); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
	if got := sc.EqualAmount("", "foo(a);", 8); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := sc.EqualAmount("", "x = // later", 8); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestIsCinword(t *testing.T) {
	words := ParseWords("if,else,while,do,for,switch,case:")
	for line, want := range map[string]bool{
		"  if (x)":  true,
		"iffy(x)":   false,
		"else":      true,
		"case:x":    true,
		"for(;;)":   true,
		"format(x)": false,
	} {
		if got := IsCinword(line, words); got != want {
			t.Errorf("%q: expected %v, got %v", line, want, got)
		}
	}
}
