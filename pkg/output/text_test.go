package output

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/fastfile/pkg/diag"
)

func TestTextFormatter_Format(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	report := createTestReport(t)

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"=== app.log ===",
		"Window: 2 of 3 cached lines",
		"     1  alpha",
		"     2  beta",
		"Digest: " + Digest("alphabeta"),
		"State: streaming, 4 lines read, 3 cached, peek offset 2",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n%s", want, output)
		}
	}
	if strings.Contains(output, "gamma") {
		t.Error("output includes a line outside the window")
	}
	if strings.Contains(output, "Duration:") {
		t.Error("non-verbose output includes duration")
	}
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})
	report := createTestReport(t)
	report.Metadata.ConfigFile = "fastfile.yaml"

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{`Text: "alphabeta"`, "Config: fastfile.yaml", "Duration: 2ms"} {
		if !strings.Contains(output, want) {
			t.Errorf("verbose output missing %q\n%s", want, output)
		}
	}
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})
	report := createTestReport(t)

	var buf bytes.Buffer
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "app.log: 4 lines read, 3 cached, streaming\n"
	if buf.String() != want {
		t.Errorf("quiet output = %q, want %q", buf.String(), want)
	}
}

func TestTextFormatter_Format_EmptyWindowAndDiagnostics(t *testing.T) {
	rec := diag.NewRecorder()
	rec.Pulled(2*time.Millisecond, "abc", nil)
	rec.Pulled(time.Millisecond, "", nil)
	rec.Pulled(0, "", io.EOF)
	snap := rec.Snapshot()

	report := &Report{
		Source:      "empty.log",
		Window:      &Window{Requested: 5, Digest: Digest("")},
		Diagnostics: &snap,
	}

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"(empty)", "Reads: 2 (1 blank, 3 bytes)", "mean 1.5ms", "max 2ms"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n%s", want, output)
		}
	}
	if strings.Contains(output, "Read errors") {
		t.Error("output reports read errors when there were none")
	}
}
