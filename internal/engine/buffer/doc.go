// Package buffer provides a thread-safe, line-oriented text buffer that
// hosts indentation.
//
// A Buffer keeps its text as a slice of lines without terminators, a
// cursor and an insert-mode flag, which is exactly what an indent.Indenter
// needs from its host. Line numbers are 1-based.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("int x;\n  int y;\n")
//	buf.SetCursor(cscan.Pos{Lnum: 2})
//	buf.SetCurrentLine("int y;")
//	fmt.Print(buf.Text())
//
// Line endings are detected or set with an Option and restored by Text.
// Snapshot returns a read-only copy for concurrent readers.
package buffer
