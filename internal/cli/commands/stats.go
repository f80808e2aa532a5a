package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fastfile/pkg/diag"
	"github.com/ccollicutt/fastfile/pkg/fastfile"
	"github.com/ccollicutt/fastfile/pkg/output"
)

// StatsOptions holds command-line options for the stats command.
type StatsOptions struct {
	Output  string
	Verbose bool
	Quiet   bool
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(global *GlobalOptions) *cobra.Command {
	opts := &StatsOptions{}

	cmd := &cobra.Command{
		Use:   "stats <file>",
		Short: "Read a file to the end and report read statistics",
		Long: `Read a file to the end through the line cursor and report what was read:
lines read, blank lines skipped, bytes, and per-read timings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json), defaults to the config")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include config file and duration")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, global *GlobalOptions, opts *StatsOptions) error {
	path := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
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
	for range f.All() {
	}
	if err := f.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	snap := rec.Snapshot()
	report := output.NewReport(path, f.Stats())
	report.Diagnostics = &snap
	report.Metadata.ConfigFile = global.ConfigFile
	report.Metadata.Duration = time.Since(start)

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	return nil
}
