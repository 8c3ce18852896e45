package cino

import (
	"fmt"
	"strings"
)

// Table holds the parsed cinoptions values. All amounts are in columns.
type Table struct {
	Level            int // '>' basic amount for a new scope
	OpenImag         int // 'e' extra for '{' at end of line
	NoBrace          int // 'n' extra for a statement not in braces
	FirstOpen        int // 'f' column of a '{' in the first column
	OpenExtra        int // '{' extra for a '{' on its own line
	CloseExtra       int // '}' extra for a matching '}'
	OpenLeftImag     int // '^' extra when the '{' is in column 0
	JumpLabel        int // 'L' position of jump labels, negative means relative
	Case             int // ':' case label in a switch
	CaseCode         int // '=' statements after a case label
	CaseBreak        int // 'b' non-zero aligns "break" with the case label
	Param            int // 'p' K&R parameter declarations
	FuncType         int // 't' function return type on its own line
	Comment          int // '/' extra for comment lines
	InComment        int // 'c' comment lines after the comment opener
	InComment2       int // 'C' non-zero uses InComment even without text after /*
	CppBaseclass     int // 'i' C++ base class declarations and initializers
	Continuation     int // '+' continuation lines
	Unclosed         int // '(' inside one unclosed paren
	Unclosed2        int // 'u' inside a nested unclosed paren
	UnclosedNoignore int // 'U' non-zero keeps '(' alignment for leading parens
	UnclosedWrapped  int // 'W' unclosed paren as last char of the line
	UnclosedWhiteok  int // 'w' non-zero aligns to the paren, not the text after it
	MatchingParen    int // 'm' non-zero lines up ')' with the line of '('
	ParenPrev        int // 'M' non-zero lines up ')' with the previous line
	MaxParen         int // ')' lines to search for unclosed parens
	MaxComment       int // '*' lines to search for an unclosed comment
	ScopeDecl        int // 'g' C++ scope declarations
	ScopeDeclCode    int // 'h' statements after a scope declaration
	Java             int // 'j' Java anonymous classes
	JS               int // 'J' JavaScript object literals
	KeepCaseLabel    int // 'l' non-zero aligns with the case label, not the code after it
	HashComment      int // '#' non-zero treats '#' as a comment and not a preprocessor line
	CppNamespace     int // 'N' extra inside a C++ namespace
	CppExternC       int // 'E' extra inside an extern "C" block
	IfForWhile       int // 'k' extra inside the parens of if, for and while
}

// Field describes one table entry for display.
type Field struct {
	Letter byte
	Name   string
	Value  int
}

// Defaults returns the table that an empty cinoptions string yields for
// shift width sw.
func Defaults(sw int) Table {
	return Table{
		Level:         sw,
		JumpLabel:     -1,
		Case:          sw,
		CaseCode:      sw,
		ScopeDecl:     sw,
		ScopeDeclCode: sw,
		Param:         sw,
		FuncType:      sw,
		CppBaseclass:  sw,
		Continuation:  sw,
		Unclosed:      sw * 2,
		Unclosed2:     sw,
		InComment:     3,
		MaxParen:      20,
		MaxComment:    70,
	}
}

// field returns a pointer to the entry selected by letter, or nil.
func (t *Table) field(letter byte) *int {
	switch letter {
	case '>':
		return &t.Level
	case 'e':
		return &t.OpenImag
	case 'n':
		return &t.NoBrace
	case 'f':
		return &t.FirstOpen
	case '{':
		return &t.OpenExtra
	case '}':
		return &t.CloseExtra
	case '^':
		return &t.OpenLeftImag
	case 'L':
		return &t.JumpLabel
	case ':':
		return &t.Case
	case '=':
		return &t.CaseCode
	case 'b':
		return &t.CaseBreak
	case 'p':
		return &t.Param
	case 't':
		return &t.FuncType
	case '/':
		return &t.Comment
	case 'c':
		return &t.InComment
	case 'C':
		return &t.InComment2
	case 'i':
		return &t.CppBaseclass
	case '+':
		return &t.Continuation
	case '(':
		return &t.Unclosed
	case 'u':
		return &t.Unclosed2
	case 'U':
		return &t.UnclosedNoignore
	case 'W':
		return &t.UnclosedWrapped
	case 'w':
		return &t.UnclosedWhiteok
	case 'm':
		return &t.MatchingParen
	case 'M':
		return &t.ParenPrev
	case ')':
		return &t.MaxParen
	case '*':
		return &t.MaxComment
	case 'g':
		return &t.ScopeDecl
	case 'h':
		return &t.ScopeDeclCode
	case 'j':
		return &t.Java
	case 'J':
		return &t.JS
	case 'l':
		return &t.KeepCaseLabel
	case '#':
		return &t.HashComment
	case 'N':
		return &t.CppNamespace
	case 'E':
		return &t.CppExternC
	case 'k':
		return &t.IfForWhile
	}
	return nil
}

// Parse builds a Table from a cinoptions string. Entries are applied in
// order on top of Defaults(sw), so a later entry for the same letter wins.
func Parse(spec string, sw int) Table {
	t := Defaults(sw)
	p := 0
	at := func(i int) byte {
		if i < len(spec) {
			return spec[i]
		}
		return 0
	}
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }

	for p < len(spec) {
		letter := spec[p]
		p++
		neg := false
		if at(p) == '-' {
			neg = true
			p++
		}

		digits := p
		n := 0
		for isDigit(at(p)) {
			n = n*10 + int(spec[p]-'0')
			p++
		}

		divider := 0
		fraction := 0
		if at(p) == '.' {
			p++
			for isDigit(at(p)) {
				fraction = fraction*10 + int(spec[p]-'0')
				if divider == 0 {
					divider = 10
				} else {
					divider *= 10
				}
				p++
			}
		}
		if at(p) == 's' {
			if p == digits {
				n = sw
			} else {
				n *= sw
				if divider != 0 {
					n += (sw*fraction + divider/2) / divider
				}
			}
			p++
		}
		if neg {
			n = -n
		}

		if f := t.field(letter); f != nil {
			*f = n
		}
		if at(p) == ',' {
			p++
		}
	}
	return t
}

var letters = []struct {
	letter byte
	name   string
}{
	{'>', "level"},
	{'e', "open_imag"},
	{'n', "no_brace"},
	{'f', "first_open"},
	{'{', "open_extra"},
	{'}', "close_extra"},
	{'^', "open_left_imag"},
	{'L', "jump_label"},
	{':', "case"},
	{'=', "case_code"},
	{'l', "keep_case_label"},
	{'b', "case_break"},
	{'g', "scope_decl"},
	{'h', "scope_decl_code"},
	{'N', "cpp_namespace"},
	{'E', "cpp_extern_c"},
	{'p', "param"},
	{'t', "func_type"},
	{'i', "cpp_baseclass"},
	{'+', "continuation"},
	{'c', "in_comment"},
	{'C', "in_comment2"},
	{'/', "comment"},
	{'(', "unclosed"},
	{'u', "unclosed2"},
	{'U', "unclosed_noignore"},
	{'w', "unclosed_whiteok"},
	{'W', "unclosed_wrapped"},
	{'k', "if_for_while"},
	{'m', "matching_paren"},
	{'M', "paren_prev"},
	{'j', "java"},
	{'J', "js"},
	{')', "max_paren"},
	{'*', "max_comment"},
	{'#', "hash_comment"},
}

// Fields lists every entry in cinoptions documentation order.
func (t Table) Fields() []Field {
	out := make([]Field, 0, len(letters))
	for _, l := range letters {
		out = append(out, Field{Letter: l.letter, Name: l.name, Value: *t.field(l.letter)})
	}
	return out
}

// Lookup returns the entry for a field name or letter.
func (t Table) Lookup(key string) (Field, bool) {
	for _, f := range t.Fields() {
		if f.Name == key || (len(key) == 1 && key[0] == f.Letter) {
			return f, true
		}
	}
	return Field{}, false
}

// String renders the table as a cinoptions string that Parse maps back to
// the same table.
func (t Table) String() string {
	parts := make([]string, 0, len(letters))
	for _, f := range t.Fields() {
		parts = append(parts, fmt.Sprintf("%c%d", f.Letter, f.Value))
	}
	return strings.Join(parts, ",")
}
