package journal

import (
	"time"

	"github.com/newsfx/trader/sentiment"
)

// TradeRecord is one closed trade. Records are append-only; they feed the
// performance aggregator and the backtest report.
type TradeRecord struct {
	TradeID    string
	Pair       string
	Direction  sentiment.Signal // Long or Short
	EntryPrice float64
	ExitPrice  float64
	Profit     float64 // account currency
	OpenedAt   time.Time
	ClosedAt   time.Time
	Tag        string
}

// Journal persists closed trades. Implementations must tolerate being
// handed records out of time order.
type Journal interface {
	RecordTrade(TradeRecord) error
	ListTrades() ([]TradeRecord, error)
	Close() error
}

// Memory is an in-process journal, used by the backtest simulator and in
// tests where durable storage is noise.
type Memory struct {
	trades []TradeRecord
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) RecordTrade(t TradeRecord) error {
	m.trades = append(m.trades, t)
	return nil
}

func (m *Memory) ListTrades() ([]TradeRecord, error) {
	out := make([]TradeRecord, len(m.trades))
	copy(out, m.trades)
	return out, nil
}

func (m *Memory) Close() error { return nil }
