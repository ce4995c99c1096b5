package sim

import (
	"time"

	"github.com/newsfx/trader/sentiment"
)

// Trade is one open paper position.
type Trade struct {
	ID         string
	Pair       string
	Direction  sentiment.Signal
	Lot        float64
	EntryPrice float64
	StopLoss   float64 // 0 means none
	TakeProfit float64 // 0 means none
	OpenTime   time.Time
	Tag        string
	Open       bool
}

// movePct is the signed percent price move from entry to px, from the
// position's point of view: positive is favorable.
func (t *Trade) movePct(px float64) float64 {
	if t.EntryPrice == 0 {
		return 0
	}
	pct := (px - t.EntryPrice) / t.EntryPrice * 100
	if t.Direction == sentiment.Short {
		pct = -pct
	}
	return pct
}
