package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "newsfx",
	Short: "A news-sentiment FX trading engine",
	Long: `Newsfx turns financial news text into risk-gated forex trading decisions.

It provides tools for:
  - Scoring news text against a weighted sentiment lexicon
  - Expanding affected currencies into tradable pairs
  - Gating trade initiation with daily circuit breakers
  - Paper-trading decisions against a simulated broker
  - Stochastic backtesting of the sentiment edge
  - Journaling and analyzing trade performance

Complete documentation is available at https://github.com/newsfx/trader`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
