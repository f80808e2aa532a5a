// Package output renders cursor windows and read statistics.
package output

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/ccollicutt/fastfile/pkg/cursor"
	"github.com/ccollicutt/fastfile/pkg/diag"
)

// Report is the complete output of one command run.
type Report struct {
	// Source is the path that was read.
	Source string

	// Window holds the materialized lines, if any were requested.
	Window *Window

	// Stats is the cursor state at the time the report was built.
	Stats cursor.Stats

	// Diagnostics holds read timings when they were recorded.
	Diagnostics *diag.Snapshot

	// Metadata provides context about the run.
	Metadata Metadata
}

// Window is a materialized run of cached lines.
type Window struct {
	// Requested is the line count asked for.
	Requested int

	// Lines are the cached lines that were materialized, oldest first.
	Lines []string

	// Text is the concatenation of Lines.
	Text string

	// Digest is the hex xxh64 of Text.
	Digest string
}

// Metadata provides context about the run.
type Metadata struct {
	// ConfigFile is the path to the configuration file used.
	ConfigFile string

	// GeneratedAt is when the report was built.
	GeneratedAt time.Time

	// Duration is how long reading took.
	Duration time.Duration
}

// NewReport creates a Report for source from the cursor's current stats.
func NewReport(source string, stats cursor.Stats) *Report {
	return &Report{
		Source: source,
		Stats:  stats,
		Metadata: Metadata{
			GeneratedAt: time.Now(),
		},
	}
}

// NewWindow materializes up to n cached lines from c.
// It does not move the cursor.
func NewWindow(c *cursor.Cursor, n int) *Window {
	lines := c.Lines()
	if n < len(lines) {
		lines = lines[:max(n, 0)]
	}
	text := c.Materialize(n)
	return &Window{
		Requested: n,
		Lines:     lines,
		Text:      text,
		Digest:    Digest(text),
	}
}

// Digest returns the 16-digit hex xxh64 of s.
func Digest(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}
