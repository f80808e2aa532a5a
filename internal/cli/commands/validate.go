package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fastfile/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a fastfile configuration file without reading any input.

Checks:
  - YAML syntax
  - Line size limits
  - Follow durations
  - Diagnostics level and output format
  - The reserved pattern setting is empty`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Max line size:     %d bytes\n", cfg.Source.MaxLineSize)
	fmt.Fprintf(w, "  Replace bad UTF-8: %t\n", cfg.Source.ReplaceInvalidUTF8)
	if cfg.Follow.Enabled {
		fmt.Fprintf(w, "  Follow:            on (idle timeout %s, poll %s)\n",
			cfg.Follow.IdleTimeout, cfg.Follow.PollInterval)
	} else {
		fmt.Fprintf(w, "  Follow:            off\n")
	}
	if cfg.Diagnostics.Enabled {
		fmt.Fprintf(w, "  Diagnostics:       %s\n", cfg.Diagnostics.Level)
	} else {
		fmt.Fprintf(w, "  Diagnostics:       off\n")
	}
	fmt.Fprintf(w, "  Output format:     %s\n", cfg.Output.Format)

	return nil
}
