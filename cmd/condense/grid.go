package main

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/condense/internal/search"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Exhaustive width/quality grid search",
	Long: `Evaluates every entry of the fixed width/quality grid and keeps the
largest result that does not exceed the target, maximizing retained quality.
Fails when no parameterization lands at or below the target.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("grid", func(c *search.Controller, input string, target search.TargetSpec) (*search.Result, error) {
			return c.SearchGrid(input, target)
		})
	},
}

func init() {
	rootCmd.AddCommand(gridCmd)
}
