package backtest

import (
	"fmt"
	"io"
)

// PrintResult writes a plain-text summary of a simulation run.
func PrintResult(w io.Writer, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Simulation Result")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Signals:        %d\n", r.Config.NumSignals)
	fmt.Fprintf(w, "Pairs/Signal:   %d\n", r.Config.PairsPerSignal)
	fmt.Fprintf(w, "Lot Size:       %.2f\n", r.Config.LotSize)
	fmt.Fprintf(w, "Stop Loss:      %.2f%%\n", r.Config.StopLossPercent)
	fmt.Fprintf(w, "Take Profit:    %.2f%%\n", r.Config.TakeProfitPercent)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Balance:  %.2f\n", r.Config.InitialBalance)
	fmt.Fprintf(w, "Final Balance:  %.2f\n", r.FinalBalance)
	fmt.Fprintf(w, "Net P/L:        %.2f\n", r.TotalProfit)
	fmt.Fprintf(w, "ROI:            %.2f%%\n", r.ROI)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:         %d\n", r.Trades)
	fmt.Fprintf(w, "Wins:           %d\n", r.Wins)
	fmt.Fprintf(w, "Losses:         %d\n", r.Losses)
	fmt.Fprintf(w, "Win Rate:       %.2f%%\n", r.WinRate*100)
	fmt.Fprintf(w, "Profit Factor:  %.2f\n", r.ProfitFactor)
	fmt.Fprintf(w, "Max Drawdown:   %.2f (%.2f%%)\n", r.MaxDrawdown, r.MaxDrawdownPct)
	fmt.Fprintln(w, "==================================================")
}
