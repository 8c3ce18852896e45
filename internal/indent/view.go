package indent

import "github.com/dshills/cinder/internal/indent/cscan"

// Position is a cursor position: a 1-based line and a 0-based byte column.
type Position = cscan.Pos

// BufferView is the host buffer as seen by an Indenter. Lines are 1-based;
// Line returns "" for numbers outside the buffer.
type BufferView interface {
	LineCount() int
	Line(lnum int) string
	CurrentLine() string
	SetCurrentLine(text string) error
	Cursor() Position
	SetCursor(Position)

	// InsertMode reports whether the host is inserting text, which changes
	// how a ')' under the cursor is treated.
	InsertMode() bool
}

// ChangeNotifier is implemented by hosts that want to hear about lines
// rewritten with the SetChanged flag.
type ChangeNotifier interface {
	LineChanged(lnum int)
}
