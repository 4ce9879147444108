// Package cmd defines and implements the CLI commands for the urlcheck
// executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "urlcheck",
		Short: "Concurrent URL liveness and status checker.",
		Long: `urlcheck reads a delimited file of URLs, checks each one concurrently
with bounded parallelism and retry-on-transient-failure, and writes a
normalized result file with one row per input URL.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (optional)")

	cmd.AddCommand(newCheckCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
