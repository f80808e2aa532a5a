// Package cli provides the command-line interface for fastfile.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fastfile/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	global := &commands.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "fastfile",
		Short: "Read text files through a line cursor",
		Long: `fastfile reads text files one line at a time through a cursor that keeps
a window of recently read lines.

Lines in the window can be peeked at again, replayed from the start of the
window, and joined, without going back to the file. Blank lines are counted
but never enter the window.

Settings can come from a YAML file (--config) and from the environment:
  FASTFILE_DEBUG           enable read tracing on stderr
  FASTFILE_TRIMUTF8        replace invalid UTF-8 with U+FFFD (default true)
  FASTFILE_MAX_LINE_SIZE   longest accepted line in bytes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&global.ConfigFile, "config", "c", "", "Configuration file (YAML)")
	rootCmd.PersistentFlags().BoolVar(&global.Debug, "debug", false, "Trace every line read on stderr")

	// Add subcommands
	rootCmd.AddCommand(commands.NewCatCommand(global))
	rootCmd.AddCommand(commands.NewWindowCommand(global))
	rootCmd.AddCommand(commands.NewStatsCommand(global))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
