package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of itp2amber",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "itp2amber %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
