// Package cindent computes the indent of a line of C-like source from the
// lines above it.
//
// The engine classifies the line and its context into one of a few
// situations, checked in order:
//
//   - preprocessor directives and jump labels go to the left margin
//   - lines continuing a "//" comment line up with the previous one
//   - lines inside a block comment follow the comment leader format
//   - lines inside unclosed parentheses line up with the paren or the
//     text after it
//   - lines inside braces are indented relative to the enclosing block,
//     after walking back over earlier statements to find something to
//     line up with
//   - anything else is top level: function types, K&R parameters and
//     continuation lines
//
// The backward walk is a small state machine driven by Lookfor. Every
// search is bounded by the cinoptions limits for parens and comments, so
// the cost of one computation does not grow with the size of the buffer.
//
// The engine never modifies the buffer; applying the result is up to the
// caller.
package cindent
