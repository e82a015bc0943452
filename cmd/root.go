package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewCmdRoot creates a new root command
func NewCmdRoot(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ringside",
		Short: "Ringside, the smoke-test runner for the boxing gym API",
		Long: "Ringside runs an ordered sequence of smoke checks against a boxing gym management API.\n" +
			"The run stops at the first check whose response does not carry a success status.",
		Version: version,
		// Execute prints the error itself before exiting non-zero
		SilenceErrors: true,
	}
	return rootCmd
}

// Execute adds all child commands to the root command
// and executes the cmd tree
func Execute(version string) {
	cmd := NewCmdRoot(version)
	cmd.AddCommand(NewCmdRun())
	cmd.AddCommand(NewCmdMock())
	cmd.AddCommand(NewCmdGenDocs(cmd))

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
