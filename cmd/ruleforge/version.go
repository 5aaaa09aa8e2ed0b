package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/ruleforge"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ruleforge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ruleforge version %s\n", strings.TrimSpace(ruleforge.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
