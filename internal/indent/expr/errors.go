package expr

import "errors"

// Errors for indent expression evaluation.
var (
	// ErrStateClosed is returned when evaluating with a closed Evaluator.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoIndentFunc is returned when the script does not define the
	// indent function.
	ErrNoIndentFunc = errors.New("indent function not defined")

	// ErrBadResult is returned when the indent function returns something
	// other than a number.
	ErrBadResult = errors.New("indent function did not return a number")
)
