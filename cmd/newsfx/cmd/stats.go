package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newsfx/trader/journal"
	"github.com/newsfx/trader/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize a trade journal",
	Long: `Aggregate a trade journal into performance statistics: win rate,
profit factor, expectancy, drawdown and hold times.

Examples:
  newsfx stats --csv trades.csv
  newsfx stats --db trades.sqlite --pair EURUSD`,
	RunE: runStats,
}

var (
	statsCSVPath string
	statsDBPath  string
	statsPair    string
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVar(&statsCSVPath, "csv", "", "path to a CSV trade journal")
	statsCmd.Flags().StringVar(&statsDBPath, "db", "", "path to a SQLite trade journal")
	statsCmd.Flags().StringVar(&statsPair, "pair", "", "restrict the report to one pair")
	statsCmd.MarkFlagsMutuallyExclusive("csv", "db")
	statsCmd.MarkFlagsOneRequired("csv", "db")
}

func runStats(cmd *cobra.Command, args []string) error {
	trades, err := loadTrades()
	if err != nil {
		return err
	}
	if len(trades) == 0 {
		fmt.Println("No trades recorded.")
		return nil
	}

	s := stats.Aggregate(trades, statsPair)
	stats.PrintReport(os.Stdout, s)
	fmt.Printf("Max Drawdown: $%.2f\n", stats.MaxDrawdown(trades))

	return nil
}

// loadTrades reads the journal without opening it for writing: NewCSV
// truncates its file, so the CSV path is parsed directly.
func loadTrades() ([]journal.TradeRecord, error) {
	if statsCSVPath != "" {
		rf, err := os.Open(statsCSVPath)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		defer rf.Close()
		trades, err := journal.ReadCSV(rf)
		if err != nil {
			return nil, fmt.Errorf("parse journal: %w", err)
		}
		return trades, nil
	}

	j, err := journal.NewSQLite(statsDBPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()
	trades, err := j.ListTrades()
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return trades, nil
}
