// Package source provides sequential line readers over files and streams.
package source

import (
	"context"
	"errors"
)

// LineSource produces the lines of a text resource one at a time.
// Implementations must be safe for sequential access (not concurrent).
type LineSource interface {
	// ReadLine returns the next line without its terminator.
	// Returns io.EOF when no more lines are available. An empty string with a
	// nil error is an empty line, not the end of input.
	ReadLine(ctx context.Context) (string, error)

	// Close releases any resources held by the source.
	// Calling Close more than once is safe.
	Close() error
}

// ErrClosed is returned by ReadLine after the source has been closed.
var ErrClosed = errors.New("source closed")

// OpenError reports that a source could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return "opening " + e.Path + ": " + e.Err.Error()
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
