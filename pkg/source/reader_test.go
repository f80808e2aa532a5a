package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readAll(t *testing.T, src LineSource) []string {
	t.Helper()
	ctx := context.Background()
	var lines []string
	for {
		line, err := src.ReadLine(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadLine() error = %v", err)
		}
		lines = append(lines, line)
	}
	return lines
}

func TestOpen_ReadsLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")
	content := "first line\nsecond line\n\nfourth line\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	lines := readAll(t, src)
	want := []string{"first line", "second line", "", "fourth line"}
	if len(lines) != len(want) {
		t.Fatalf("Got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
	if src.LineNum() != 4 {
		t.Errorf("LineNum() = %d, want 4", src.LineNum())
	}
	if src.Name() != path {
		t.Errorf("Name() = %q, want %q", src.Name(), path)
	}
}

func TestOpen_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.log")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	_, err = src.ReadLine(context.Background())
	if err != io.EOF {
		t.Errorf("ReadLine() error = %v, want io.EOF", err)
	}
	// End of input is sticky.
	_, err = src.ReadLine(context.Background())
	if err != io.EOF {
		t.Errorf("second ReadLine() error = %v, want io.EOF", err)
	}
}

func TestOpen_FileNotFound(t *testing.T) {
	_, err := Open("/nonexistent/file.log")
	if err == nil {
		t.Fatal("Open() expected error for missing file")
	}

	var openErr *OpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("Open() error = %T, want *OpenError", err)
	}
	if openErr.Path != "/nonexistent/file.log" {
		t.Errorf("OpenError.Path = %q", openErr.Path)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open() error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestOpen_Directory(t *testing.T) {
	_, err := Open(t.TempDir())
	var openErr *OpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("Open(dir) error = %v, want *OpenError", err)
	}
}

func TestReaderSource_NoTrailingNewline(t *testing.T) {
	src := NewReaderSource("test", strings.NewReader("a\nb"))
	lines := readAll(t, src)
	if strings.Join(lines, "|") != "a|b" {
		t.Errorf("lines = %q, want [a b]", lines)
	}
}

func TestReaderSource_StripsCRLF(t *testing.T) {
	src := NewReaderSource("test", strings.NewReader("a\r\nb\r\n"))
	lines := readAll(t, src)
	if strings.Join(lines, "|") != "a|b" {
		t.Errorf("lines = %q, want [a b]", lines)
	}
}

func TestReaderSource_ReplaceInvalidUTF8(t *testing.T) {
	input := "ok\nbad\xff\xfebyte\n"

	tests := []struct {
		name    string
		replace bool
		want    string
	}{
		{"replace", true, "bad\uFFFD\uFFFDbyte"},
		{"keep raw bytes", false, "bad\xff\xfebyte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewReaderSource("test", strings.NewReader(input), WithReplaceInvalidUTF8(tt.replace))
			lines := readAll(t, src)
			if len(lines) != 2 {
				t.Fatalf("Got %d lines, want 2", len(lines))
			}
			if lines[0] != "ok" {
				t.Errorf("line 0 = %q, want %q", lines[0], "ok")
			}
			if lines[1] != tt.want {
				t.Errorf("line 1 = %q, want %q", lines[1], tt.want)
			}
		})
	}
}

func TestReaderSource_LineTooLong(t *testing.T) {
	input := strings.Repeat("x", 100) + "\n"
	src := NewReaderSource("test", strings.NewReader(input), WithMaxLineSize(16))

	_, err := src.ReadLine(context.Background())
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("ReadLine() error = %v, want bufio.ErrTooLong", err)
	}

	_, err2 := src.ReadLine(context.Background())
	if err2 != err {
		t.Errorf("read error not sticky: %v then %v", err, err2)
	}
}

func TestReaderSource_ContextCancellation(t *testing.T) {
	src := NewReaderSource("test", strings.NewReader("line\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.ReadLine(ctx)
	if err != context.Canceled {
		t.Errorf("ReadLine() error = %v, want context.Canceled", err)
	}

	line, err := src.ReadLine(context.Background())
	if err != nil || line != "line" {
		t.Errorf("ReadLine() = (%q, %v) after cancellation, want (line, nil)", line, err)
	}
}

// countingCloser records Close calls.
type countingCloser struct {
	io.Reader
	closes int
}

func (c *countingCloser) Close() error {
	c.closes++
	return nil
}

func TestReaderSource_CloseOnce(t *testing.T) {
	rc := &countingCloser{Reader: strings.NewReader("a\n")}
	src := newReaderSource("test", rc, rc, applyOptions(nil))

	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if rc.closes != 1 {
		t.Errorf("closer called %d times, want 1", rc.closes)
	}

	_, err := src.ReadLine(context.Background())
	if !errors.Is(err, ErrClosed) {
		t.Errorf("ReadLine() after Close error = %v, want ErrClosed", err)
	}
}

func TestOpenError_Message(t *testing.T) {
	err := &OpenError{Path: "/tmp/x.log", Err: os.ErrPermission}
	if !strings.Contains(err.Error(), "/tmp/x.log") {
		t.Errorf("Error() = %q, missing path", err.Error())
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("OpenError should unwrap to the cause")
	}
}
