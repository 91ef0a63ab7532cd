package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "linkroster",
	Short:         "Collect employment-history records for a company roster",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug output on the console")
	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(reportCmd)
}

// Execute runs the CLI. Fatal conditions print a clear cause and exit
// nonzero; recoverable gaps only show up in the log.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
