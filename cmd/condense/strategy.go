package main

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/condense/internal/search"
)

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Ordered strategy search, least to most aggressive",
	Long: `Tries the strategy catalog in order of increasing aggressiveness and
stops at the first result inside the tolerance band. If no strategy lands in
the band, the smallest result achieved is kept as a best effort.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run("strategy", func(c *search.Controller, input string, target search.TargetSpec) (*search.Result, error) {
			return c.SearchStrategy(input, target)
		})
	},
}

func init() {
	rootCmd.AddCommand(strategyCmd)
}
