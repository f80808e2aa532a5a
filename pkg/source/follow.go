package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FollowSource implements LineSource for a file that is still being written,
// like tail -f. At end of file it waits for the file to grow instead of
// returning io.EOF.
type FollowSource struct {
	path     string
	file     *os.File
	reader   *bufio.Reader
	watcher  *fsnotify.Watcher
	sanitize *sanitizer

	maxLineSize  int
	idleTimeout  time.Duration
	pollInterval time.Duration

	partial  strings.Builder
	offset   int64
	lineNum  int
	lastData time.Time
	err      error
	closed   bool
}

// Follow opens the file at path and follows it as it grows.
// Returns an *OpenError when the file cannot be opened or watched.
func Follow(path string, opts ...Option) (*FollowSource, error) {
	o := applyOptions(opts)

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	if info, err := f.Stat(); err != nil || info.IsDir() {
		_ = f.Close()
		if err == nil {
			err = errIsDirectory
		}
		return nil, &OpenError{Path: path, Err: err}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	if err := w.Add(path); err != nil {
		_ = w.Close()
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}

	return &FollowSource{
		path:         path,
		file:         f,
		reader:       bufio.NewReader(f),
		watcher:      w,
		sanitize:     newSanitizer(o.replaceInvalidUTF8),
		maxLineSize:  o.maxLineSize,
		idleTimeout:  o.idleTimeout,
		pollInterval: o.pollInterval,
		lastData:     time.Now(),
	}, nil
}

// ReadLine returns the next complete line, blocking until one is written.
// Returns io.EOF once the idle timeout elapses without new data and
// ctx.Err() when the context is cancelled. A partial last line is held back
// until its newline arrives. Read errors and over-long lines are sticky.
func (s *FollowSource) ReadLine(ctx context.Context) (string, error) {
	if s.closed {
		return "", ErrClosed
	}
	if s.err != nil {
		return "", s.err
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		chunk, err := s.reader.ReadSlice('\n')
		if len(chunk) > 0 {
			s.offset += int64(len(chunk))
			s.lastData = time.Now()
			s.partial.Write(chunk)
		}

		line := strings.TrimSuffix(strings.TrimSuffix(s.partial.String(), "\n"), "\r")
		if len(line) > s.maxLineSize {
			s.err = fmt.Errorf("reading %s: line %d exceeds maximum size: %w", s.path, s.lineNum+1, bufio.ErrTooLong)
			s.partial.Reset()
			return "", s.err
		}

		switch {
		case err == nil:
			s.partial.Reset()
			s.lineNum++
			return s.sanitize.apply(line), nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case !errors.Is(err, io.EOF):
			s.err = fmt.Errorf("reading %s: %w", s.path, err)
			return "", s.err
		}

		if err := s.wait(ctx); err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				s.err = err
			}
			return "", err
		}
	}
}

// wait blocks until the file may have new data.
func (s *FollowSource) wait(ctx context.Context) error {
	var idle <-chan time.Time
	if s.idleTimeout > 0 {
		remaining := s.idleTimeout - time.Since(s.lastData)
		if remaining <= 0 {
			return io.EOF
		}
		timer := time.NewTimer(remaining)
		defer timer.Stop()
		idle = timer.C
	}

	poll := time.NewTimer(s.pollInterval)
	defer poll.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-idle:
		return io.EOF
	case <-poll.C:
	case event, ok := <-s.watcher.Events:
		if !ok {
			return io.EOF
		}
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			// The open handle still reads the old file; keep draining it.
			return nil
		}
	case err, ok := <-s.watcher.Errors:
		if !ok {
			return io.EOF
		}
		return fmt.Errorf("watching %s: %w", s.path, err)
	}

	return s.checkTruncated()
}

// checkTruncated rewinds to the start of the file when it shrank below the
// current read offset (copytruncate log rotation).
func (s *FollowSource) checkTruncated() error {
	info, err := s.file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	if info.Size() >= s.offset {
		return nil
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", s.path, err)
	}
	s.reader.Reset(s.file)
	s.partial.Reset()
	s.offset = 0
	return nil
}

// Name returns the followed file path.
func (s *FollowSource) Name() string {
	return s.path
}

// LineNum returns the number of lines read so far.
func (s *FollowSource) LineNum() int {
	return s.lineNum
}

// Close stops watching and closes the file.
func (s *FollowSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	werr := s.watcher.Close()
	ferr := s.file.Close()
	if ferr != nil {
		return ferr
	}
	return werr
}
