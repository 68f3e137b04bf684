package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version of the binary, set via ldflags -X
	Version string

	// Date the binary was built, set via ldflags -X
	Date string

	// Commit the binary was built from, set via ldflags -X
	Commit string
)

//nolint:golint-sl // CLI user output
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Shows version information",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Date:    %s\n", Date)
			fmt.Fprintf(cmd.OutOrStdout(), "Commit:  %s\n", Commit)
		},
	}
}
