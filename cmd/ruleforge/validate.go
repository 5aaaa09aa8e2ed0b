package main

import (
	"fmt"

	"github.com/aretw0/ruleforge/internal/presentation/tui"
	"github.com/aretw0/ruleforge/pkg/domain"
	"github.com/aretw0/ruleforge/pkg/rules"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the mod for every tileset and report all rule errors",
	Long: `Loads the mod defaults once per tileset listed in the manifest (or the
map rules given with --map), runs every post-load check and resolves the
construction order of every entity. All failures are reported together.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if a.mapFile == "" {
			err = a.engine.Validate(ctx)
		} else {
			var overrides *rules.MapOverrides
			if overrides, err = a.overrides(); err == nil {
				err = a.engine.ValidateMap(ctx, overrides)
			}
		}

		out := cmd.OutOrStdout()
		if err != nil {
			for _, e := range domain.Errors(err) {
				fmt.Fprintf(out, "  - %v\n", e)
			}
			tui.Status(out, "Validation failed", err)
			return errReported
		}
		tui.Status(out, fmt.Sprintf("%s is valid", a.engine.Manifest().Metadata.Title), nil)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
