// Package cino parses cinoptions strings into a Table of numeric knobs
// that tune C indentation.
//
// A cinoptions string is a comma separated list of entries, each a single
// letter followed by an optional '-', an optional integer, an optional
// fraction ".N" and an optional 's' suffix that scales the value by the
// shift width:
//
//	>4      base indent of 4 columns
//	:0      case labels flush with the switch
//	=.5s    half a shift width after a case label
//	(-s     one shift width to the left inside unclosed parens
//
// Unknown letters are consumed and ignored, and a malformed entry never
// aborts parsing; the remaining entries still apply. Letters missing from
// the string keep their defaults, most of which are expressed in shift
// widths.
package cino
