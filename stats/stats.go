package stats

import (
	"time"

	"github.com/newsfx/trader/journal"
)

// Stats aggregates a sequence of closed trades. Every field is defined for
// an empty input: counts and sums are zero and ratios report 0 instead of
// dividing by zero.
type Stats struct {
	TotalTrades int
	Wins        int
	Losses      int

	WinRate      float64 // fraction in [0, 1]
	ProfitFactor float64 // gross wins / |gross losses|, 0 when no losses
	Expectancy   float64 // WinRate*AvgWin + (1-WinRate)*AvgLoss

	TotalProfit float64
	GrossProfit float64
	GrossLoss   float64 // negative sum of losing trades
	AvgWin      float64
	AvgLoss     float64 // carries its natural negative sign
	LargestWin  float64
	LargestLoss float64

	// AvgHold is the mean open-to-close duration. It is only available
	// when every record carries both timestamps.
	AvgHold          time.Duration
	AvgHoldAvailable bool
}

// Aggregate computes Stats over trades, optionally restricted to one pair.
// An empty filterPair means all pairs.
func Aggregate(trades []journal.TradeRecord, filterPair string) Stats {
	var s Stats
	var holdTotal time.Duration
	holdOK := true

	for _, t := range trades {
		if filterPair != "" && t.Pair != filterPair {
			continue
		}
		s.TotalTrades++
		s.TotalProfit += t.Profit

		if t.Profit > 0 {
			s.Wins++
			s.GrossProfit += t.Profit
			if t.Profit > s.LargestWin {
				s.LargestWin = t.Profit
			}
		} else if t.Profit < 0 {
			s.Losses++
			s.GrossLoss += t.Profit
			if t.Profit < s.LargestLoss {
				s.LargestLoss = t.Profit
			}
		}

		if t.OpenedAt.IsZero() || t.ClosedAt.IsZero() {
			holdOK = false
		} else {
			holdTotal += t.ClosedAt.Sub(t.OpenedAt)
		}
	}

	if s.TotalTrades == 0 {
		return s
	}

	s.WinRate = float64(s.Wins) / float64(s.TotalTrades)
	if s.GrossLoss < 0 {
		s.ProfitFactor = s.GrossProfit / -s.GrossLoss
	}
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	s.Expectancy = s.WinRate*s.AvgWin + (1-s.WinRate)*s.AvgLoss

	if holdOK {
		s.AvgHold = holdTotal / time.Duration(s.TotalTrades)
		s.AvgHoldAvailable = true
	}

	return s
}

// MaxDrawdown walks the cumulative P/L of trades in order and returns the
// largest peak-to-trough decline, as a non-negative number.
func MaxDrawdown(trades []journal.TradeRecord) float64 {
	var cum, peak, maxDD float64
	for _, t := range trades {
		cum += t.Profit
		if cum > peak {
			peak = cum
		}
		if dd := peak - cum; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// DailySummary restricts trades to the calendar day of on (in on's
// location) and aggregates them.
func DailySummary(trades []journal.TradeRecord, on time.Time) Stats {
	y, m, d := on.Date()
	var day []journal.TradeRecord
	for _, t := range trades {
		ty, tm, td := t.ClosedAt.In(on.Location()).Date()
		if ty == y && tm == m && td == d {
			day = append(day, t)
		}
	}
	return Aggregate(day, "")
}
