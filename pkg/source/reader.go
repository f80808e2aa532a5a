package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReaderSource implements LineSource over any io.Reader.
// Lines are split on "\n"; a trailing "\r" is dropped.
type ReaderSource struct {
	name     string
	closer   io.Closer
	scanner  *bufio.Scanner
	sanitize *sanitizer

	lineNum int
	err     error
	closed  bool
}

// NewReaderSource creates a LineSource reading from r.
// The name is used in error messages.
func NewReaderSource(name string, r io.Reader, opts ...Option) *ReaderSource {
	return newReaderSource(name, r, nil, applyOptions(opts))
}

func newReaderSource(name string, r io.Reader, closer io.Closer, o options) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialBufferSize, o.maxLineSize)), o.maxLineSize)

	return &ReaderSource{
		name:     name,
		closer:   closer,
		scanner:  scanner,
		sanitize: newSanitizer(o.replaceInvalidUTF8),
	}
}

// ReadLine returns the next line.
// Returns io.EOF when the reader is exhausted. Read errors are sticky.
func (s *ReaderSource) ReadLine(ctx context.Context) (string, error) {
	if s.closed {
		return "", ErrClosed
	}
	if s.err != nil {
		return "", s.err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if s.scanner.Scan() {
		s.lineNum++
		return s.sanitize.apply(s.scanner.Text()), nil
	}

	if err := s.scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			s.err = fmt.Errorf("reading %s: line %d exceeds maximum size: %w", s.name, s.lineNum+1, err)
		} else {
			s.err = fmt.Errorf("reading %s: %w", s.name, err)
		}
		return "", s.err
	}

	s.err = io.EOF
	return "", io.EOF
}

// Name returns the name the source was created with.
func (s *ReaderSource) Name() string {
	return s.name
}

// LineNum returns the number of lines read so far.
func (s *ReaderSource) LineNum() int {
	return s.lineNum
}

// Close releases the underlying reader if it is closable.
func (s *ReaderSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// FileSource implements LineSource for a single file on disk.
type FileSource struct {
	*ReaderSource
}

// Open opens the file at path for sequential line reading.
// Returns an *OpenError when the file cannot be opened or is a directory.
func Open(path string, opts ...Option) (*FileSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: errIsDirectory}
	}

	return &FileSource{ReaderSource: newReaderSource(path, f, f, applyOptions(opts))}, nil
}

var errIsDirectory = errors.New("is a directory")
