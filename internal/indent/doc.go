// Package indent computes and applies line indents for C-family and Lisp
// source the way Vim's cindent, lisp and indentexpr options do.
//
// The engines live in subpackages and only read lines. This package ties
// them to a host buffer through BufferView: an Indenter computes the
// indent for the line under the cursor, rewrites its leading whitespace,
// and re-indents whole line ranges.
//
// Basic usage:
//
//	ix := indent.New(indent.DefaultOptions())
//	col := ix.ComputeCIndent(view)
//	ix.SetIndent(view, col, 0)
//
// Reindent applies the same steps to every line of a range, in order, so
// each line is computed against the already re-indented lines above it.
package indent
