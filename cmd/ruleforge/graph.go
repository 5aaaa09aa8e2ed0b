package main

import (
	"fmt"

	"github.com/aretw0/ruleforge/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <entity>",
	Short: "Export an entity's capability graph",
	Long:  `Outputs a Mermaid diagram (graph TD) of the entity's capability prerequisites, numbered in construction order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.entity(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(e, graph.OverlayFor(e)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
