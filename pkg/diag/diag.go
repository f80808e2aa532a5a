// Package diag provides cursor.Diagnostics implementations for tracing and
// timing line reads.
package diag

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ccollicutt/fastfile/pkg/cursor"
)

// Logger writes cursor events to a slog.Logger.
// Pulls are logged at debug level, close at info.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger. A nil logger uses slog.Default().
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{logger: logger}
}

// Pulled logs a single source read.
func (l *Logger) Pulled(elapsed time.Duration, line string, err error) {
	switch {
	case err == nil:
		l.logger.Debug("cursor: pulled line", "bytes", len(line), "blank", line == "", "elapsed", elapsed)
	case errors.Is(err, io.EOF):
		l.logger.Debug("cursor: end of input", "elapsed", elapsed)
	default:
		l.logger.Warn("cursor: read failed", "err", err, "elapsed", elapsed)
	}
}

// Closed logs the final cursor counters.
func (l *Logger) Closed(stats cursor.Stats) {
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "cursor: closed",
		slog.Int64("lines_read", stats.LinesRead),
		slog.Int("cached", stats.Cached),
	)
}

// Snapshot is an aggregate of recorded reads.
type Snapshot struct {
	Pulls      int
	BlankLines int
	EOFs       int
	Errors     int
	Bytes      int64
	Total      time.Duration
	Max        time.Duration
	Final      *cursor.Stats
}

// Mean returns the average time per successful pull.
func (s Snapshot) Mean() time.Duration {
	if s.Pulls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Pulls)
}

// Recorder aggregates read timings in memory.
type Recorder struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Pulled records a single source read.
func (r *Recorder) Pulled(elapsed time.Duration, line string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case err == nil:
		r.snap.Pulls++
		r.snap.Bytes += int64(len(line))
		if line == "" {
			r.snap.BlankLines++
		}
		r.snap.Total += elapsed
		r.snap.Max = max(r.snap.Max, elapsed)
	case errors.Is(err, io.EOF):
		r.snap.EOFs++
	default:
		r.snap.Errors++
	}
}

// Closed records the final cursor counters.
func (r *Recorder) Closed(stats cursor.Stats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Final = &stats
}

// Snapshot returns a copy of the aggregate.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snap
	if snap.Final != nil {
		final := *snap.Final
		snap.Final = &final
	}
	return snap
}

// Multi fans events out to several sinks. Nil entries are skipped, and nil
// is returned when no sink remains.
func Multi(sinks ...cursor.Diagnostics) cursor.Diagnostics {
	var out multi
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}

type multi []cursor.Diagnostics

func (m multi) Pulled(elapsed time.Duration, line string, err error) {
	for _, d := range m {
		d.Pulled(elapsed, line, err)
	}
}

func (m multi) Closed(stats cursor.Stats) {
	for _, d := range m {
		d.Closed(stats)
	}
}
