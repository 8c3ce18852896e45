// Package match finds matching brackets and comment starts in a Lines
// view, scanning across line boundaries.
//
// Brackets inside string literals are ignored when a line has an even
// number of quotes (or a quote is continued with a trailing backslash),
// and 'x' or '\x' character literals are skipped. Every search can be
// bounded by a number of lines to travel so a lookup never walks the whole
// buffer.
//
// In Lisp mode ';' starts a line comment and #\( style character literals
// are not brackets.
package match
