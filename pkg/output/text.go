package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/fastfile/pkg/diag"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: %d lines read, %d cached, %s\n",
		report.Source,
		report.Stats.LinesRead,
		report.Stats.Cached,
		report.Stats.State)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "=== %s ===\n", report.Source)
	fmt.Fprintln(w)

	if report.Window != nil {
		f.formatWindow(report.Window, report.Stats.Cached, w)
	}

	if report.Diagnostics != nil {
		f.formatDiagnostics(report.Diagnostics, w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "State: %s, %d lines read, %d cached, peek offset %d\n",
		report.Stats.State,
		report.Stats.LinesRead,
		report.Stats.Cached,
		report.Stats.PeekOffset)

	if f.opts.Verbose {
		if report.Metadata.ConfigFile != "" {
			fmt.Fprintf(w, "Config: %s\n", report.Metadata.ConfigFile)
		}
		_, err := fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
		return err
	}

	return nil
}

func (f *TextFormatter) formatWindow(win *Window, cached int, w io.Writer) {
	fmt.Fprintf(w, "Window: %d of %d cached lines\n", len(win.Lines), cached)
	for i, line := range win.Lines {
		fmt.Fprintf(w, "%6d  %s\n", i+1, line)
	}
	if len(win.Lines) == 0 {
		fmt.Fprintln(w, "  (empty)")
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Text: %q\n", win.Text)
	}
	fmt.Fprintf(w, "Digest: %s\n", win.Digest)
	fmt.Fprintln(w)
}

func (f *TextFormatter) formatDiagnostics(snap *diag.Snapshot, w io.Writer) {
	fmt.Fprintf(w, "Reads: %d (%d blank, %d bytes)\n", snap.Pulls, snap.BlankLines, snap.Bytes)
	if snap.Errors > 0 {
		fmt.Fprintf(w, "Read errors: %d\n", snap.Errors)
	}
	fmt.Fprintf(w, "Read time: total %s, mean %s, max %s\n",
		snap.Total, snap.Mean(), snap.Max)
	fmt.Fprintln(w)
}
