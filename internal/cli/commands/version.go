package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fastfile/pkg/fastfile"
)

// Version is set via ldflags at build time.
var Version = fastfile.Version

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version of fastfile.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fastfile %s\n", Version)
		},
	}
}
