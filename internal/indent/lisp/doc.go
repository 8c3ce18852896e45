// Package lisp computes indents for Lisp-like languages.
//
// A line inside an open '(' or '[' takes the indent of the previous line
// at the same nesting level. Without one it lines up with the first
// argument of the enclosing form, or two columns in from the opener when
// the form's head is one of the body-indenting lispwords:
//
//	(let ((a 1))    instead of    (let ((a 1))
//	  (...))                           (...))
package lisp
