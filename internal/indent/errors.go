package indent

import "errors"

// Errors returned by indentation operations.
var (
	// ErrInsufficientIndent reports a shift left that would push a line
	// past column 0. The whole shift is abandoned.
	ErrInsufficientIndent = errors.New("insufficient indentation to shift left")
)
