package main

import (
	"os"

	"github.com/UnknownOlympus/jobheat/internal/report"
	"github.com/spf13/cobra"
)

func newSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Fetch the jobs from a running API and print the dashboard.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rawFormat, _ := cmd.Flags().GetString("format")
			format, err := report.ParseFormat(rawFormat)
			if err != nil {
				return err
			}

			cfg, logger := loadConfig(cmd, os.Stderr)
			dash := report.NewClient(cfg.APIURL, logger).Dashboard(cmd.Context())

			return report.Render(cmd.OutOrStdout(), dash, format)
		},
	}
	cmd.Flags().StringP("format", "f", string(report.FormatTable), "output format: table, json or yaml")

	return cmd
}
