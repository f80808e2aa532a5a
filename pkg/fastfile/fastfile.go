// Package fastfile exposes a line cursor through the call/next/getlines
// surface used by host bindings, plus Go range-over-func iteration.
//
// A File reads a text file once, keeping recently read lines in a window that
// can be re-read without touching the file again:
//
//	f, err := fastfile.Open("app.log")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	for line := range f.All() {
//		fmt.Println(line)
//	}
package fastfile

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/ccollicutt/fastfile/pkg/config"
	"github.com/ccollicutt/fastfile/pkg/cursor"
	"github.com/ccollicutt/fastfile/pkg/diag"
	"github.com/ccollicutt/fastfile/pkg/source"
)

// Version is the library version.
const Version = "1.0.0"

// ErrPatternUnsupported is returned by Open when a pattern is given.
var ErrPatternUnsupported = config.ErrPatternUnsupported

// File is a line cursor bound to one file.
// It is not safe for concurrent use.
type File struct {
	path   string
	ctx    context.Context
	cursor *cursor.Cursor
}

type openOptions struct {
	cfg     *config.Config
	pattern string
	ctx     context.Context
	diags   []cursor.Diagnostics
}

// Option configures Open.
type Option func(*openOptions)

// WithPattern sets the reserved pattern argument. Any non-empty pattern makes
// Open fail with ErrPatternUnsupported.
func WithPattern(pattern string) Option {
	return func(o *openOptions) {
		o.pattern = pattern
	}
}

// WithConfig reads the file according to cfg. The config must already be
// validated.
func WithConfig(cfg *config.Config) Option {
	return func(o *openOptions) {
		o.cfg = cfg
	}
}

// WithContext sets the context used for every blocking read. Cancelling it
// ends the stream. A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *openOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithDiagnostics adds a diagnostics sink to the cursor.
func WithDiagnostics(d cursor.Diagnostics) Option {
	return func(o *openOptions) {
		o.diags = append(o.diags, d)
	}
}

// Open opens path for cursor access.
// Returns a *source.OpenError when the file cannot be opened.
func Open(path string, opts ...Option) (*File, error) {
	o := openOptions{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}

	if o.pattern != "" {
		return nil, fmt.Errorf("pattern %q: %w", o.pattern, ErrPatternUnsupported)
	}

	cfg := o.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	var (
		src source.LineSource
		err error
	)
	if cfg.Follow.Enabled {
		src, err = source.Follow(path, cfg.SourceOptions()...)
	} else {
		src, err = source.Open(path, cfg.SourceOptions()...)
	}
	if err != nil {
		return nil, err
	}

	diags := o.diags
	if logger := cfg.NewLogger(); logger != nil {
		diags = append(diags, diag.NewLogger(logger.With(slog.String("path", path))))
	}

	return &File{
		path:   path,
		ctx:    o.ctx,
		cursor: cursor.New(src, cursor.WithDiagnostics(diag.Multi(diags...))),
	}, nil
}

// Path returns the path the file was opened with.
func (f *File) Path() string {
	return f.path
}

// Call returns the line under the peek cursor after moving it forward, or ""
// at end of input. Use Line to tell the end of input apart.
func (f *File) Call() string {
	line, _ := f.cursor.Peek(f.ctx)
	return line
}

// Line is Call with an explicit end-of-input flag.
func (f *File) Line() (string, bool) {
	return f.cursor.Peek(f.ctx)
}

// Next advances to the next line and returns it. ok is false when the file
// is exhausted.
func (f *File) Next() (line string, ok bool) {
	if !f.cursor.Advance(f.ctx) {
		return "", false
	}
	return f.cursor.Peek(f.ctx)
}

// ResetLines rewinds the peek cursor to the oldest cached line.
func (f *File) ResetLines() {
	f.cursor.Reset()
}

// GetLines returns the first n cached lines concatenated.
func (f *File) GetLines(n int) string {
	return f.cursor.Materialize(n)
}

// All iterates over the remaining lines, the way a host iterator protocol
// drives Next.
func (f *File) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			line, ok := f.Next()
			if !ok {
				return
			}
			if !yield(line) {
				return
			}
		}
	}
}

// Stats returns the cursor counters.
func (f *File) Stats() cursor.Stats {
	return f.cursor.Stats()
}

// Err returns the read error that ended iteration, if any.
func (f *File) Err() error {
	return f.cursor.Err()
}

// Cursor exposes the underlying cursor.
func (f *File) Cursor() *cursor.Cursor {
	return f.cursor
}

// Close closes the file. Calling Close more than once is safe.
func (f *File) Close() error {
	return f.cursor.Close()
}
