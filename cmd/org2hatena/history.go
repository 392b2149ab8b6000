// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/org2hatena/internal/history"
	"github.com/pdiddy/org2hatena/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversions recorded in the history database",
	Long: `History shows the conversions recorded when history is enabled
(--history on convert, or history.enabled in the config file), newest first.
Use "history forget <file>" to make the next run convert a file again.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyForgetCmd = &cobra.Command{
	Use:   "forget <files...>",
	Short: "Remove files from the history so they are converted again",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHistoryForget,
}

func init() {
	historyCmd.PersistentFlags().String("history-path", "", "history database path (default from config)")
	historyCmd.Flags().Int("limit", 20, "maximum number of records to show (0 for all)")
	historyCmd.Flags().Bool("json", false, "output records as JSON")

	historyCmd.AddCommand(historyForgetCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory(cmd *cobra.Command) (*history.Store, error) {
	cfg := loadConfig().History
	if p, _ := cmd.Flags().GetString("history-path"); p != "" {
		cfg.Path = p
	}
	return history.NewStore(cfg)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), records, jsonOutput)
}

func runHistoryForget(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, src := range args {
		if err := store.Forget(cmd.Context(), src); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "forgot %s\n", src)
	}
	return nil
}

func formatHistory(w io.Writer, records []types.ConversionRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-9s  %-40s  %6s  %s\n", "When", "Status", "Source", "Lines", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range records {
		source := r.Source
		if len(source) > 40 {
			source = "..." + source[len(source)-37:]
		}
		fmt.Fprintf(w, "%-20s  %-9s  %-40s  %6d  %s\n",
			r.ConvertedAt.Local().Format("2006-01-02 15:04:05"), r.Status, source, r.Lines, r.Output)
		if r.Error != "" {
			fmt.Fprintf(w, "%22s%s\n", "", r.Error)
		}
	}

	fmt.Fprintf(w, "\n%d records\n", len(records))
	return nil
}
