package risk

import (
	"fmt"
	"time"
)

// Limits holds the per-trading-day circuit breakers.
type Limits struct {
	MaxTradesPerDay      int     // 20
	MaxDailyLoss         float64 // 50.0, in account currency
	MaxDailyProfit       float64 // 200.0, profit-lock
	MaxConsecutiveLosses int     // 3
}

// DayState is the rolling daily trading activity. It is owned exclusively
// by the Governor; callers read a copy via State().
type DayState struct {
	Day               time.Time // trading day (date only)
	TradesOpened      int
	PnL               float64 // realized or floating, whichever the caller feeds
	ConsecutiveLosses int
}

// Violation identifies one breached limit.
type Violation struct {
	Code string
	Msg  string
}

// Decision is the outcome of a single gate evaluation.
type Decision struct {
	Allowed    bool
	Violations []Violation
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Governor gates new trade initiation against daily limits. It is a pure
// gate, not a latched state: every call re-evaluates all conditions, so
// floating P/L recovering above the loss limit re-enables trading within
// the same day. It is not safe for concurrent use; the embedding
// application must serialize access to one instance.
type Governor struct {
	limits Limits
	state  DayState
	now    func() time.Time
}

func NewGovernor(limits Limits) *Governor {
	g := &Governor{limits: limits, now: time.Now}
	g.state.Day = dateOf(g.now())
	return g
}

// SetClock replaces the wall clock, for tests and replay.
func (g *Governor) SetClock(now func() time.Time) {
	g.now = now
	g.rollover()
}

// Limits returns the configured limits.
func (g *Governor) Limits() Limits { return g.limits }

// State returns a copy of the current day state, after applying any
// pending date rollover.
func (g *Governor) State() DayState {
	g.rollover()
	return g.state
}

// CanTrade reports whether a new trade may be opened right now.
func (g *Governor) CanTrade() bool {
	return g.Check().Allowed
}

// Check evaluates every limit independently and reports all breaches.
func (g *Governor) Check() Decision {
	g.rollover()

	d := Decision{Allowed: true}
	if g.state.TradesOpened >= g.limits.MaxTradesPerDay {
		d.add("MAX_TRADES", fmt.Sprintf("trades opened %d >= max %d",
			g.state.TradesOpened, g.limits.MaxTradesPerDay))
	}
	if g.state.PnL <= -g.limits.MaxDailyLoss {
		d.add("DAILY_LOSS", fmt.Sprintf("daily P/L %.2f <= limit %.2f",
			g.state.PnL, -g.limits.MaxDailyLoss))
	}
	if g.state.PnL >= g.limits.MaxDailyProfit {
		d.add("PROFIT_LOCK", fmt.Sprintf("daily P/L %.2f >= target %.2f",
			g.state.PnL, g.limits.MaxDailyProfit))
	}
	if g.state.ConsecutiveLosses >= g.limits.MaxConsecutiveLosses {
		d.add("LOSS_STREAK", fmt.Sprintf("consecutive losses %d >= max %d",
			g.state.ConsecutiveLosses, g.limits.MaxConsecutiveLosses))
	}
	return d
}

// RecordTradeOpened counts a newly opened trade against the daily limit.
func (g *Governor) RecordTradeOpened() {
	g.rollover()
	g.state.TradesOpened++
}

// RecordTradeClosed folds a realized profit into the daily P/L and tracks
// the loss streak. A non-positive profit extends the streak.
func (g *Governor) RecordTradeClosed(profit float64) {
	g.rollover()
	g.state.PnL += profit
	if profit <= 0 {
		g.state.ConsecutiveLosses++
	} else {
		g.state.ConsecutiveLosses = 0
	}
}

// MarkToMarket overwrites the daily P/L with the current floating total,
// mirroring a position-monitor sweep.
func (g *Governor) MarkToMarket(pnl float64) {
	g.rollover()
	g.state.PnL = pnl
}

func (g *Governor) rollover() {
	today := dateOf(g.now())
	if !today.Equal(g.state.Day) {
		g.state = DayState{Day: today}
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
