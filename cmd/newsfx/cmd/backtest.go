package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/newsfx/trader/backtest"
	"github.com/newsfx/trader/journal"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a stochastic backtest of the sentiment edge",
	Long: `Backtest replays synthetic signal sequences against the configured
lot size and exit percentages. Win probability is modulated by a randomly
drawn sentiment score, so stronger signals win more often.

A fixed seed makes the run reproducible.

Example:
  newsfx backtest -n 500 --seed 42`,
	RunE: runBacktestCmd,
}

var (
	btSignals    int
	btPerSignal  int
	btLot        float64
	btStopPct    float64
	btTakePct    float64
	btBalance    float64
	btSeed       int64
	btJournalCSV string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().IntVarP(&btSignals, "signals", "n", 100, "number of news signals to simulate")
	backtestCmd.Flags().IntVar(&btPerSignal, "per-signal", 3, "trades opened per signal")
	backtestCmd.Flags().Float64VarP(&btLot, "lot", "l", 0.01, "lot size per trade")
	backtestCmd.Flags().Float64Var(&btStopPct, "stop", 1.0, "stop loss percent")
	backtestCmd.Flags().Float64Var(&btTakePct, "take", 2.0, "take profit percent")
	backtestCmd.Flags().Float64VarP(&btBalance, "balance", "b", 10_000, "starting balance")
	backtestCmd.Flags().Int64Var(&btSeed, "seed", 0, "RNG seed (0 = time-seeded)")
	backtestCmd.Flags().StringVar(&btJournalCSV, "csv", "", "optional path to write the trade journal as CSV")
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	cfg := backtest.Config{
		NumSignals:        btSignals,
		PairsPerSignal:    btPerSignal,
		LotSize:           btLot,
		StopLossPercent:   btStopPct,
		TakeProfitPercent: btTakePct,
		InitialBalance:    btBalance,
	}

	var rng *rand.Rand
	if btSeed != 0 {
		rng = rand.New(rand.NewSource(btSeed))
	}

	sim, err := backtest.NewSimulator(cfg, rng)
	if err != nil {
		return fmt.Errorf("backtest config: %w", err)
	}

	result := sim.Run()
	backtest.PrintResult(os.Stdout, result)

	if btJournalCSV != "" {
		j, err := journal.NewCSV(btJournalCSV)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()
		for _, rec := range result.Records {
			if err := j.RecordTrade(rec); err != nil {
				return fmt.Errorf("write journal: %w", err)
			}
		}
		fmt.Printf("\nTrade journal saved to: %s\n", btJournalCSV)
	}

	return nil
}
