package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/ruleforge/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ruleforge",
	Short: "ruleforge composes and checks declarative game rules",
	Long: `ruleforge loads a mod's definition files, resolves inheritance, composes
every entity's capabilities and reports construction orders and load errors.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errReported is returned by commands that already printed their failure.
var errReported = errors.New("failure reported")

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("dir", "", "Directory containing the mod (overrides Mod.Dir)")
	flags.String("config", config.DefaultPath, "Settings file")
	flags.String("tileset", "", "Tileset to load terrain and sequences for (overrides Mod.Tileset)")
	flags.String("map", "", "Map rules file to load over the mod defaults")
	flags.Bool("debug", false, "Enable debug logging")
}
