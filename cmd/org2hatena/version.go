package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of org2hatena",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "org2hatena %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
