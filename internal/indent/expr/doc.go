// Package expr evaluates user defined indent expressions written in Lua.
//
// A script defines a global function, "indent" by default, that receives a
// line number and returns the indent for that line. A negative result
// means "keep the current indent". The script runs in a sandboxed state
// with only the base, table, string and math libraries, and reaches the
// buffer through the "cinder" module:
//
//	cinder.getline(n)     text of line n
//	cinder.line_count()   number of lines
//	cinder.indent(n)      current indent of line n
//	cinder.cindent(n)     C indent computed for line n
//	cinder.lispindent(n)  Lisp indent computed for line n
//	cinder.shiftwidth()   one indent level
//	cinder.tabstop()      tab width
//
// gopher-lua states are not goroutine-safe; an Evaluator serializes its
// calls with a mutex.
package expr
