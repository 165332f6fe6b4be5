package suggest

import (
	"errors"
	"fmt"
)

// Standard errors returned by the suggest client.
var (
	// ErrNotRunning indicates the tool process is not running.
	ErrNotRunning = errors.New("suggest process not running")

	// ErrAlreadyStarted indicates the tool process is already running.
	ErrAlreadyStarted = errors.New("suggest process already started")

	// ErrShutdown indicates the transport has been shut down.
	ErrShutdown = errors.New("suggest transport shut down")

	// ErrCrashed indicates the tool process exited unexpectedly.
	ErrCrashed = errors.New("suggest process exited unexpectedly")

	// ErrLookupFailed indicates the tool returned no match for a symbol.
	ErrLookupFailed = errors.New("symbol lookup failed")

	// ErrInvalidRecord indicates a response line that does not follow the
	// tab-separated record format.
	ErrInvalidRecord = errors.New("invalid response record")
)

// QueryError wraps an error with the query that caused it.
type QueryError struct {
	Method Method
	Path   string
	Line   int
	Col    int
	Err    error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s:%d:%d: %v", e.Method, e.Path, e.Line, e.Col, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}
