package main

import (
	"github.com/spf13/cobra"

	"linkroster/internal/report"
)

var reportFlags struct {
	in  string
	out string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Derive position-switch durations from a crawled store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return report.Write(reportFlags.in, reportFlags.out)
	},
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportFlags.in, "in", "result.json", "crawled store file")
	f.StringVar(&reportFlags.out, "out", "positions_switch_durations.json", "report output file")
}
