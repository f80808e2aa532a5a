package source

import (
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Defaults for source options.
const (
	DefaultMaxLineSize  = 1024 * 1024 // 1MB max line size
	DefaultPollInterval = time.Second
	initialBufferSize   = 64 * 1024
)

type options struct {
	maxLineSize        int
	replaceInvalidUTF8 bool
	idleTimeout        time.Duration
	pollInterval       time.Duration
}

// Option configures a source.
type Option func(*options)

// WithMaxLineSize sets the longest line a source accepts (default 1MB).
func WithMaxLineSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLineSize = n
		}
	}
}

// WithReplaceInvalidUTF8 controls whether invalid UTF-8 sequences are replaced
// by U+FFFD (default true).
func WithReplaceInvalidUTF8(v bool) Option {
	return func(o *options) {
		o.replaceInvalidUTF8 = v
	}
}

// WithIdleTimeout makes a followed source report io.EOF once no new data has
// arrived for d. Zero waits forever.
func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.idleTimeout = d
		}
	}
}

// WithPollInterval sets how often a followed source re-checks the file when
// no filesystem event arrives (default 1s).
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		maxLineSize:        DefaultMaxLineSize,
		replaceInvalidUTF8: true,
		pollInterval:       DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// sanitizer rewrites a line so it is valid UTF-8.
type sanitizer struct {
	decoder *encoding.Decoder
}

func newSanitizer(enabled bool) *sanitizer {
	if !enabled {
		return nil
	}
	return &sanitizer{decoder: unicode.UTF8.NewDecoder()}
}

func (s *sanitizer) apply(line string) string {
	if s == nil || utf8.ValidString(line) {
		return line
	}
	out, err := s.decoder.String(line)
	if err != nil {
		return line
	}
	return out
}
