// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/org2hatena/internal/convert"
	"github.com/pdiddy/org2hatena/internal/hatena"
	"github.com/pdiddy/org2hatena/internal/history"
)

var convertCmd = &cobra.Command{
	Use:   "convert <files...>",
	Short: "Convert org-mode files to Hatena notation",
	Long: `Convert rewrites each org-mode file into Hatena notation and writes the
result beside it, replacing the ".org" suffix with the output extension
(".txt" by default). A file without an ".org" suffix gets the extension
appended. Files are converted one after another; a failing file is reported
and the rest of the batch still runs.

With history enabled, files whose content has not changed since their last
successful conversion are skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("ext", "", "output file extension (default \".txt\")")
	convertCmd.Flags().Bool("normalize", false, "apply Unicode NFC normalization to input")
	convertCmd.Flags().Bool("read-more", false, "turn #==== and #===== lines into read-more markers")
	convertCmd.Flags().Bool("history", false, "record conversions and skip unchanged files")
	convertCmd.Flags().String("history-path", "", "history database path")
	convertCmd.Flags().Bool("stdout", false, "write converted text to stdout instead of files")
	convertCmd.Flags().Bool("force", false, "convert files even when history says they are unchanged")
	convertCmd.Flags().String("report", "", "write a YAML batch report to this path")

	for key, flag := range map[string]string{
		"conversion.output_ext": "ext",
		"conversion.normalize":  "normalize",
		"conversion.read_more":  "read-more",
		"history.enabled":       "history",
		"history.path":          "history-path",
	} {
		if err := viper.BindPFlag(key, convertCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	conv := hatena.New(
		hatena.WithLanguageAliases(cfg.Conversion.LangAliases),
		hatena.WithReadMore(cfg.Conversion.ReadMore),
		hatena.WithLogger(logger),
	)

	opts := convert.Options{
		OutputExt: cfg.Conversion.OutputExt,
		Normalize: cfg.Conversion.Normalize,
		Force:     flagBool(cmd, "force"),
	}
	if flagBool(cmd, "stdout") {
		opts.Out = cmd.OutOrStdout()
	}

	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.History = store
		logger.Debug("history enabled", "path", store.Path())
	}

	result, err := convert.ConvertBatch(cmd.Context(), conv, args, opts, os.Stderr)
	if err != nil {
		return err
	}

	if report := flagString(cmd, "report"); report != "" {
		if err := convert.WriteReport(report, result); err != nil {
			return err
		}
		logger.Debug("wrote report", "path", report)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// flagBool reads a bool flag that may not be defined on cmd (the root
// command runs conversions without the convert flags).
func flagBool(cmd *cobra.Command, name string) bool {
	if cmd.Flags().Lookup(name) == nil {
		return false
	}
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func flagString(cmd *cobra.Command, name string) string {
	if cmd.Flags().Lookup(name) == nil {
		return ""
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}
