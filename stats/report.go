package stats

import (
	"fmt"
	"io"
)

// PrintReport writes a plain-text performance report.
func PrintReport(w io.Writer, s Stats) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Trading Performance Report")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Total Trades:  %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate*100)
	fmt.Fprintf(w, "Profit Factor: %.2f\n", s.ProfitFactor)
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Total P/L:     %.2f\n", s.TotalProfit)
	fmt.Fprintf(w, "Expectancy:    %.2f\n", s.Expectancy)
	fmt.Fprintf(w, "Average Win:   %.2f\n", s.AvgWin)
	fmt.Fprintf(w, "Average Loss:  %.2f\n", s.AvgLoss)
	fmt.Fprintf(w, "Largest Win:   %.2f\n", s.LargestWin)
	fmt.Fprintf(w, "Largest Loss:  %.2f\n", s.LargestLoss)
	if s.AvgHoldAvailable {
		fmt.Fprintf(w, "Avg Hold:      %s\n", s.AvgHold)
	} else {
		fmt.Fprintln(w, "Avg Hold:      unavailable")
	}
	fmt.Fprintln(w, "==================================================")
}
