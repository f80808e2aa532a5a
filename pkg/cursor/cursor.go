// Package cursor provides a forward-only line cursor with a look-back cache.
//
// A Cursor pulls lines lazily from a source.LineSource and keeps the lines it
// has read in a window. Two positions move over that window: the peek cursor,
// which Peek walks forward and Reset rewinds, and the consumption head (the
// front of the window), which only Advance moves.
//
// Blank lines are counted as read but never enter the window.
package cursor

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/ccollicutt/fastfile/pkg/source"
)

// Cursor is a line cursor over a LineSource.
// It is not safe for concurrent use.
type Cursor struct {
	src  source.LineSource
	diag Diagnostics

	// cache holds lines read but not yet consumed; cache[0] is the oldest.
	cache []string
	// peekOffset indexes cache; -1 is before the first line.
	peekOffset int
	linesRead  int64

	state State
	err   error
}

// Option configures a Cursor.
type Option func(*Cursor)

// WithDiagnostics attaches a diagnostics sink. A nil sink disables diagnostics.
func WithDiagnostics(d Diagnostics) Option {
	return func(c *Cursor) {
		c.diag = d
	}
}

// New creates a Cursor that reads from src. The Cursor owns src and closes it
// on Close.
func New(src source.LineSource, opts ...Option) *Cursor {
	c := &Cursor{
		src:        src,
		peekOffset: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset rewinds the peek cursor to before the first cached line.
func (c *Cursor) Reset() {
	c.peekOffset = -1
}

// Peek moves the peek cursor forward one line and returns that line.
// Lines already in the window are returned without I/O; otherwise one more
// non-blank line is read from the source. ok is false at end of input, after
// Close, or after a read error (see Err). A peek that finds no line leaves the
// peek cursor on the last line it could reach.
func (c *Cursor) Peek(ctx context.Context) (line string, ok bool) {
	if c.state == StateClosed {
		return "", false
	}

	c.peekOffset++
	if c.peekOffset < len(c.cache) {
		return c.cache[c.peekOffset], true
	}

	for {
		line, ok := c.pull(ctx)
		if !ok {
			c.peekOffset = len(c.cache) - 1
			return "", false
		}
		if line != "" {
			return line, true
		}
	}
}

// Advance consumes the front of the window and resets the peek cursor.
// When the window is empty it reads one line from the source instead and
// reports whether one was available; a non-blank line read this way becomes
// the next Peek result. Advance drops the front line even if Peek has not
// reached it yet.
func (c *Cursor) Advance(ctx context.Context) bool {
	if c.state == StateClosed {
		return false
	}

	c.Reset()

	if len(c.cache) > 0 {
		c.cache[0] = ""
		c.cache = c.cache[1:]
		return true
	}

	_, ok := c.pull(ctx)
	return ok
}

// Materialize concatenates the first n lines of the window, oldest first,
// without separators. It returns fewer lines when the window holds fewer.
func (c *Cursor) Materialize(n int) string {
	if n <= 0 || len(c.cache) == 0 {
		return ""
	}
	n = min(n, len(c.cache))

	var sb strings.Builder
	for _, line := range c.cache[:n] {
		sb.WriteString(line)
	}
	return sb.String()
}

// Lines returns a copy of the window.
func (c *Cursor) Lines() []string {
	out := make([]string, len(c.cache))
	copy(out, c.cache)
	return out
}

// Len returns the number of lines in the window.
func (c *Cursor) Len() int {
	return len(c.cache)
}

// State returns the lifecycle state.
func (c *Cursor) State() State {
	return c.state
}

// Err returns the error that stopped the last read, if any. End of input is
// not an error.
func (c *Cursor) Err() error {
	return c.err
}

// Stats returns a snapshot of the cursor counters.
func (c *Cursor) Stats() Stats {
	return Stats{
		State:      c.state,
		LinesRead:  c.linesRead,
		Cached:     len(c.cache),
		PeekOffset: c.peekOffset,
	}
}

// Close releases the source and drops the window. Later reads report end of
// input. Calling Close more than once is safe; only the first call closes
// the source.
func (c *Cursor) Close() error {
	if c.state == StateClosed {
		return nil
	}

	c.state = StateClosed
	stats := c.Stats()
	c.cache = nil
	c.peekOffset = -1

	err := c.src.Close()
	if c.diag != nil {
		c.diag.Closed(stats)
	}
	return err
}

// pull reads one line from the source and appends it to the window unless it
// is blank. ok is false when nothing was read.
func (c *Cursor) pull(ctx context.Context) (string, bool) {
	switch c.state {
	case StateExhausted, StateFailed, StateClosed:
		return "", false
	}
	c.state = StateStreaming

	start := time.Now()
	line, err := c.src.ReadLine(ctx)
	if c.diag != nil {
		c.diag.Pulled(time.Since(start), line, err)
	}

	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		c.state = StateExhausted
		return "", false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.err = err
		return "", false
	default:
		c.state = StateFailed
		c.err = err
		return "", false
	}

	c.err = nil
	c.linesRead++
	if line != "" {
		c.cache = append(c.cache, line)
	}
	return line, true
}
