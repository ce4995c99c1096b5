package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimits() Limits {
	return Limits{
		MaxTradesPerDay:      5,
		MaxDailyLoss:         50,
		MaxDailyProfit:       200,
		MaxConsecutiveLosses: 3,
	}
}

func TestGovernor_TradeCountLimit(t *testing.T) {
	t.Parallel()

	g := NewGovernor(testLimits())
	for i := 0; i < 5; i++ {
		assert.True(t, g.CanTrade(), "trade %d", i)
		g.RecordTradeOpened()
	}
	assert.False(t, g.CanTrade())

	d := g.Check()
	require.Len(t, d.Violations, 1)
	assert.Equal(t, "MAX_TRADES", d.Violations[0].Code)
}

func TestGovernor_DailyLossLimit(t *testing.T) {
	t.Parallel()

	g := NewGovernor(testLimits())
	g.RecordTradeClosed(-49.99)
	assert.True(t, g.CanTrade())
	g.RecordTradeClosed(-0.01)
	assert.False(t, g.CanTrade())
}

func TestGovernor_ProfitLock(t *testing.T) {
	t.Parallel()

	g := NewGovernor(testLimits())
	g.RecordTradeClosed(200)
	assert.False(t, g.CanTrade())

	d := g.Check()
	require.Len(t, d.Violations, 1)
	assert.Equal(t, "PROFIT_LOCK", d.Violations[0].Code)
}

func TestGovernor_LossStreak(t *testing.T) {
	t.Parallel()

	g := NewGovernor(testLimits())
	g.RecordTradeClosed(-1)
	g.RecordTradeClosed(0) // break-even extends the streak
	g.RecordTradeClosed(-1)
	assert.False(t, g.CanTrade())

	// a win resets the streak
	g2 := NewGovernor(testLimits())
	g2.RecordTradeClosed(-1)
	g2.RecordTradeClosed(-1)
	g2.RecordTradeClosed(5)
	g2.RecordTradeClosed(-1)
	assert.True(t, g2.CanTrade())
	assert.Equal(t, 1, g2.State().ConsecutiveLosses)
}

func TestGovernor_GateIsNotLatched(t *testing.T) {
	t.Parallel()

	g := NewGovernor(testLimits())
	g.MarkToMarket(-60)
	assert.False(t, g.CanTrade())

	// floating P/L recovering re-enables trading within the same day
	g.MarkToMarket(-40)
	assert.True(t, g.CanTrade())
}

func TestGovernor_DateRolloverResetsState(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	g := NewGovernor(testLimits())
	g.SetClock(func() time.Time { return now })

	for i := 0; i < 5; i++ {
		g.RecordTradeOpened()
	}
	g.RecordTradeClosed(-60)
	require.False(t, g.CanTrade())

	now = now.Add(4 * time.Hour) // past midnight
	assert.True(t, g.CanTrade())

	st := g.State()
	assert.Equal(t, 0, st.TradesOpened)
	assert.Zero(t, st.PnL)
	assert.Equal(t, 0, st.ConsecutiveLosses)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), st.Day)
}

func TestGovernor_TradeCountIgnoresPnL(t *testing.T) {
	t.Parallel()

	g := NewGovernor(testLimits())
	g.RecordTradeClosed(100) // healthy profit, below lock
	for i := 0; i < 5; i++ {
		g.RecordTradeOpened()
	}
	assert.False(t, g.CanTrade())
}

func TestLotSize(t *testing.T) {
	t.Parallel()

	// $1000 balance, 1% risk, 50 pip stop on EURUSD
	got := LotSize(1000, 1.0, 50, 0.0001)
	assert.InDelta(t, 0.02, got, 1e-9)

	// tiny account floors at a micro lot
	assert.Equal(t, MinLot, LotSize(50, 0.5, 100, 0.0001))

	// degenerate inputs floor too
	assert.Equal(t, MinLot, LotSize(0, 1, 50, 0.0001))
	assert.Equal(t, MinLot, LotSize(1000, 1, 0, 0.0001))
}
