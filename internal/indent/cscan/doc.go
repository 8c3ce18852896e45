// Package cscan classifies single lines of C-like source for the
// indentation engines.
//
// Every function works on a line and a byte index into it. Reading at or
// past the end of the line yields 0, so the predicates can look ahead a
// few bytes without bounds checks. Comments ("/* */", "//" and, when
// enabled, "#" shell comments) and string or character literals are
// skipped wherever a keyword or punctuation could otherwise be matched
// by accident: "x = 1; // case foo:" is not a case label.
//
// The package has no notion of a cursor; helpers that need more than one
// line take a Lines view and explicit line numbers.
package cscan
