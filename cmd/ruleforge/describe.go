package main

import (
	"fmt"

	"github.com/aretw0/ruleforge/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [entity]",
	Short: "Show the ruleset summary or one entity's capabilities",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		var markdown string
		if len(args) == 1 {
			e, err := a.entity(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			markdown = tui.EntityReport(e)
		} else {
			rs, err := a.Ruleset(cmd.Context())
			if err != nil {
				return err
			}
			markdown = tui.RulesetSummary(a.engine.Manifest().Metadata.Title, rs)
		}

		render, err := tui.NewRenderer(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		out, err := render(markdown)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
