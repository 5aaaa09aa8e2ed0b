package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order <entity>",
	Short: "Print an entity's capability construction order",
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
		order, err := e.ConstructOrder()
		if err != nil {
			return err
		}
		for i, c := range order {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, c.Type())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(orderCmd)
}
