package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fastfile/pkg/config"
	"github.com/ccollicutt/fastfile/pkg/fastfile"
	"github.com/ccollicutt/fastfile/pkg/source"
)

// CatOptions holds command-line options for the cat command.
type CatOptions struct {
	Follow      bool
	IdleTimeout time.Duration
	Number      bool
}

// NewCatCommand creates the cat command.
func NewCatCommand(global *GlobalOptions) *cobra.Command {
	opts := &CatOptions{}

	cmd := &cobra.Command{
		Use:   "cat <file>...",
		Short: "Print every non-blank line of one or more files",
		Long: `Print every non-blank line of each file, reading it through the line cursor.
Arguments may be glob patterns; files are printed in argument order.

With --follow a single file is watched for appended lines after the end is
reached, like tail -f. Following stops on interrupt, or after --idle-timeout
without new data.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCat(cmd, args, global, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Follow, "follow", "f", false, "Keep reading lines appended to the file")
	cmd.Flags().DurationVar(&opts.IdleTimeout, "idle-timeout", 0, "Stop following after this long without new data (0 = never)")
	cmd.Flags().BoolVarP(&opts.Number, "number", "n", false, "Prefix each line with its line number in the file")

	return cmd
}

func runCat(cmd *cobra.Command, args []string, global *GlobalOptions, opts *CatOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := global.loadConfig(ctx)
	if err != nil {
		return err
	}
	if opts.Follow {
		cfg.Follow.Enabled = true
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.Follow.IdleTimeout = opts.IdleTimeout
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	paths, err := source.ExpandPaths(args)
	if err != nil {
		return err
	}
	if cfg.Follow.Enabled && len(paths) > 1 {
		return fmt.Errorf("--follow takes exactly one file, got %d", len(paths))
	}

	for _, path := range paths {
		if err := catFile(ctx, cmd.OutOrStdout(), path, cfg, opts.Number); err != nil {
			return err
		}
	}

	return nil
}

func catFile(ctx context.Context, w io.Writer, path string, cfg *config.Config, number bool) error {
	f, err := fastfile.Open(path, fastfile.WithConfig(cfg), fastfile.WithContext(ctx))
	if err != nil {
		return err
	}
	defer f.Close()

	for line := range f.All() {
		if number {
			// While iterating, the window holds only the current line, so the
			// read count is its line number.
			fmt.Fprintf(w, "%6d\t%s\n", f.Stats().LinesRead, line)
		} else {
			fmt.Fprintln(w, line)
		}
	}

	if err := f.Err(); err != nil {
		if cfg.Follow.Enabled && errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return nil
}
