package buffer

import "errors"

// Errors returned by buffer operations.
var (
	ErrLineOutOfRange = errors.New("line out of range")
	ErrMultiLine      = errors.New("text contains a line break")
)
