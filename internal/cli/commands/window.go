package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fastfile/pkg/diag"
	"github.com/ccollicutt/fastfile/pkg/fastfile"
	"github.com/ccollicutt/fastfile/pkg/output"
)

// WindowOptions holds command-line options for the window command.
type WindowOptions struct {
	Skip    int
	Peek    int
	Lines   int
	Output  string
	Verbose bool
	Quiet   bool
}

// NewWindowCommand creates the window command.
func NewWindowCommand(global *GlobalOptions) *cobra.Command {
	opts := &WindowOptions{}

	cmd := &cobra.Command{
		Use:   "window <file>",
		Short: "Show the cached line window after moving the cursor",
		Long: `Move the cursor through a file and report the window of cached lines.

The cursor first advances --skip times, then peeks --peek lines ahead. The
first --lines cached lines are then joined and reported together with a
digest of the joined text and the cursor state.

Each advance drops the oldest cached line, or reads one new line into an
empty window.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd, args, global, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "Advance the cursor this many times first")
	cmd.Flags().IntVar(&opts.Peek, "peek", 1, "Peek this many lines ahead")
	cmd.Flags().IntVar(&opts.Lines, "lines", 10, "Number of cached lines to show")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json), defaults to the config")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show the joined text, read timings and duration")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no window")

	return cmd
}

func runWindow(cmd *cobra.Command, args []string, global *GlobalOptions, opts *WindowOptions) error {
	path := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Skip < 0 || opts.Peek < 0 {
		return errors.New("--skip and --peek must not be negative")
	}

	cfg, err := global.loadConfig(ctx)
	if err != nil {
		return err
	}

	formatter, err := createFormatter(opts.Output, string(cfg.Output.Format), opts.Verbose, opts.Quiet)
	if err != nil {
		return err
	}

	rec := diag.NewRecorder()
	f, err := fastfile.Open(path,
		fastfile.WithConfig(cfg),
		fastfile.WithContext(ctx),
		fastfile.WithDiagnostics(rec),
	)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	c := f.Cursor()
	for i := 0; i < opts.Skip; i++ {
		if !c.Advance(ctx) {
			break
		}
	}
	for i := 0; i < opts.Peek; i++ {
		if _, ok := c.Peek(ctx); !ok {
			break
		}
	}
	if err := c.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	report := output.NewReport(path, c.Stats())
	report.Window = output.NewWindow(c, opts.Lines)
	report.Metadata.ConfigFile = global.ConfigFile
	report.Metadata.Duration = time.Since(start)
	if opts.Verbose {
		snap := rec.Snapshot()
		report.Diagnostics = &snap
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	return nil
}

// createFormatter picks the flag format over the configured one.
func createFormatter(flagFormat, configFormat string, verbose, quiet bool) (output.Formatter, error) {
	name := flagFormat
	if name == "" {
		name = configFormat
	}
	return output.NewFormatter(name, output.FormatOptions{
		Verbose: verbose,
		Quiet:   quiet,
	})
}
