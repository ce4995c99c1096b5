package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/newsfx/trader/journal"
	"github.com/stretchr/testify/assert"
)

func trade(pair string, profit float64, hold time.Duration) journal.TradeRecord {
	opened := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return journal.TradeRecord{
		Pair:     pair,
		Profit:   profit,
		OpenedAt: opened,
		ClosedAt: opened.Add(hold),
	}
}

func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	s := Aggregate(nil, "")

	assert.Equal(t, 0, s.TotalTrades)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.ProfitFactor)
	assert.Zero(t, s.Expectancy)
	assert.Zero(t, s.TotalProfit)
	assert.False(t, s.AvgHoldAvailable)
}

func TestAggregate_Basic(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		trade("EURUSD", 15.50, time.Hour),
		trade("EURUSD", -10.20, time.Hour),
		trade("GBPUSD", 22.30, 2*time.Hour),
		trade("EURUSD", 18.75, time.Hour),
		trade("USDJPY", -8.50, time.Hour),
	}

	s := Aggregate(trades, "")

	assert.Equal(t, 5, s.TotalTrades)
	assert.Equal(t, 3, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.InDelta(t, 0.6, s.WinRate, 1e-9)
	assert.InDelta(t, 56.55/18.70, s.ProfitFactor, 1e-9)
	assert.InDelta(t, 37.85, s.TotalProfit, 1e-9)
	assert.InDelta(t, 22.30, s.LargestWin, 1e-9)
	assert.InDelta(t, -10.20, s.LargestLoss, 1e-9)
	assert.InDelta(t, 56.55/3, s.AvgWin, 1e-9)
	assert.InDelta(t, -18.70/2, s.AvgLoss, 1e-9)
	// expectancy = 0.6*avgWin + 0.4*avgLoss
	assert.InDelta(t, 0.6*(56.55/3)+0.4*(-18.70/2), s.Expectancy, 1e-9)

	assert.True(t, s.AvgHoldAvailable)
	assert.Equal(t, 72*time.Minute, s.AvgHold)
}

func TestAggregate_PairFilter(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		trade("EURUSD", 10, time.Hour),
		trade("GBPUSD", -5, time.Hour),
		trade("EURUSD", -2, time.Hour),
	}

	s := Aggregate(trades, "EURUSD")
	assert.Equal(t, 2, s.TotalTrades)
	assert.InDelta(t, 8, s.TotalProfit, 1e-9)
}

func TestAggregate_NoLossesMeansZeroProfitFactor(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		trade("EURUSD", 10, time.Hour),
		trade("EURUSD", 5, time.Hour),
	}

	s := Aggregate(trades, "")
	assert.Zero(t, s.ProfitFactor)
	assert.Equal(t, 1.0, s.WinRate)
}

func TestAggregate_MissingTimestampsDisableHold(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		trade("EURUSD", 10, time.Hour),
		{Pair: "EURUSD", Profit: -1}, // no timestamps
	}

	s := Aggregate(trades, "")
	assert.Equal(t, 2, s.TotalTrades)
	assert.False(t, s.AvgHoldAvailable)
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		{Profit: 10},  // cum 10, peak 10
		{Profit: -15}, // cum -5, dd 15
		{Profit: 5},   // cum 0, dd 10
		{Profit: 20},  // cum 20, peak 20
		{Profit: -8},  // cum 12, dd 8
	}
	assert.InDelta(t, 15, MaxDrawdown(trades), 1e-9)

	assert.Zero(t, MaxDrawdown(nil))
	assert.Zero(t, MaxDrawdown([]journal.TradeRecord{{Profit: 1}, {Profit: 2}}))
}

func TestDailySummary(t *testing.T) {
	t.Parallel()

	day1 := trade("EURUSD", 10, time.Hour)
	day2 := trade("EURUSD", -4, time.Hour)
	day2.ClosedAt = day2.ClosedAt.AddDate(0, 0, 1)

	s := DailySummary([]journal.TradeRecord{day1, day2}, day1.ClosedAt)
	assert.Equal(t, 1, s.TotalTrades)
	assert.InDelta(t, 10, s.TotalProfit, 1e-9)
}

func TestPrintReport_Unavailable(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	PrintReport(&b, Stats{})
	assert.Contains(t, b.String(), "Avg Hold:      unavailable")
	assert.Contains(t, b.String(), "Total Trades:  0")
}
