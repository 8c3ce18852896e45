package cindent

// Lookfor is what the backward walk over earlier statements is searching
// for.
type Lookfor int

const (
	LookforInitial      Lookfor = iota // nothing seen yet
	LookforIf                          // the "if" of an "else"
	LookforDo                          // the "do" of a "while"
	LookforCase                        // a previous case label
	LookforAny                         // any statement after a case label
	LookforTerm                        // a terminated statement
	LookforUnterm                      // the start of an unterminated statement
	LookforScopeDecl                   // a previous scope declaration
	LookforNoBreak                     // a statement that is not "break;"
	LookforCppBaseclass                // a base class list before a '{'
	LookforEnumOrInit                  // the start of an initializer or enum
	LookforJSKey                       // a JavaScript "key:" line
	LookforComma                       // the line after one ending in ','
)

var lookforNames = [...]string{
	"initial", "if", "do", "case", "any", "term", "unterm",
	"scopedecl", "nobreak", "cpp_baseclass", "enum_or_init",
	"js_key", "comma",
}

// String returns the name of the state.
func (l Lookfor) String() string {
	if l < 0 || int(l) >= len(lookforNames) {
		return "unknown"
	}
	return lookforNames[l]
}

// braceKind is where the '{' opening the enclosing block sits.
type braceKind int

const (
	braceInCol0 braceKind = iota + 1
	braceAtStart
	braceAtEnd
)
