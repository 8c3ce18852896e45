package indent

import "errors"

// Errors returned by Indenter operations.
var (
	// ErrLineOutOfRange is returned when a line number is outside the buffer.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrNoCurrentLine is returned when the cursor is not on a buffer line.
	ErrNoCurrentLine = errors.New("cursor is not on a line")
)
