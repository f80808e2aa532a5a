package cursor

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a Cursor.
type State int

const (
	// StateFresh means nothing has been read yet.
	StateFresh State = iota
	// StateStreaming means at least one read has been attempted and the
	// source is not yet exhausted.
	StateStreaming
	// StateExhausted means the source reported end of input. Sticky.
	StateExhausted
	// StateFailed means the source returned a read error. Reads behave as
	// exhausted and Err reports the cause.
	StateFailed
	// StateClosed is terminal.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateStreaming:
		return "streaming"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in JSON and YAML output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(text []byte) error {
	for st := StateFresh; st <= StateClosed; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown cursor state %q", text)
}

// Stats is a point-in-time view of a Cursor.
type Stats struct {
	State State

	// LinesRead counts every line pulled from the source, blank lines included.
	LinesRead int64

	// Cached is the number of lines currently held in the window.
	Cached int

	// PeekOffset is the peek cursor position; -1 means before the first line.
	PeekOffset int
}

// Diagnostics receives optional timing and lifecycle events from a Cursor.
// Implementations must not call back into the Cursor.
type Diagnostics interface {
	// Pulled is called after every read from the source. err is io.EOF at
	// end of input.
	Pulled(elapsed time.Duration, line string, err error)

	// Closed is called once when the cursor is closed.
	Closed(stats Stats)
}
