// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the org2hatena CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE from --verbose.
var logger = slog.New(slog.DiscardHandler)

// rootCmd is the base command for the org2hatena CLI.
var rootCmd = &cobra.Command{
	Use:   "org2hatena [files...]",
	Short: "Convert org-mode documents to Hatena notation",
	Long: `org2hatena converts org-mode files into Hatena notation. Each input
"name.org" is written to "name.txt" next to it. Headings with tags become
category captions; lists, definition lists, tables, quotes, examples and
source blocks are rewritten into their Hatena forms, and comments are dropped.

Running org2hatena with file arguments is the same as "org2hatena convert".`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = newLogger(os.Stderr, verbose)
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd, args)
	},
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./org2hatena.yaml or ~/.config/org2hatena/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log per-block debug output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("org2hatena")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "org2hatena"))
		}
	}

	viper.SetEnvPrefix("ORG2HATENA")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "warning: reading config:", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
