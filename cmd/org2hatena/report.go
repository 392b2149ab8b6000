// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/org2hatena/internal/convert"
	"github.com/pdiddy/org2hatena/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report <report.yaml>",
	Short: "Show a batch report written by convert --report",
	Long: `Report loads a YAML batch report and prints its per-file records in
the same layout as "history", followed by the batch totals. With --failed
only the files that failed are listed, one path per line, so they can be
fed back to convert.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Bool("json", false, "output records as JSON")
	reportCmd.Flags().Bool("failed", false, "list only the sources that failed")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	r, err := convert.ReadReport(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if failed, _ := cmd.Flags().GetBool("failed"); failed {
		for _, rec := range r.Result.Records {
			if rec.Status == types.ConversionFailed {
				fmt.Fprintln(out, rec.Source)
			}
		}
		return nil
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if err := formatHistory(out, r.Result.Records, jsonOutput); err != nil {
		return err
	}
	if !jsonOutput {
		formatReportSummary(out, r)
	}
	return nil
}

func formatReportSummary(w io.Writer, r *convert.Report) {
	fmt.Fprintf(w, "Generated %s: %d converted, %d skipped, %d failed (total: %d)\n",
		r.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
		r.Result.Converted, r.Result.Skipped, r.Result.Failed, r.Summary.Total)
}
