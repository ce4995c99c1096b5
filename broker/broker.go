package broker

import (
	"context"
	"time"

	"github.com/newsfx/trader/sentiment"
)

// OrderIntent is a fully specified request to open a directional position.
// It is produced by the decision pipeline and never mutated after creation.
type OrderIntent struct {
	Pair       string
	Direction  sentiment.Signal // Long or Short
	LotSize    float64
	StopLoss   float64 // absolute price
	TakeProfit float64 // absolute price
	Tag        string
}

// OrderFill acknowledges an accepted order.
type OrderFill struct {
	OrderID string
	Pair    string
	Price   float64
	Time    time.Time
}

// Price is a two-sided quote for a pair.
type Price struct {
	Pair string
	Bid  float64
	Ask  float64
	Time time.Time
}

func (p Price) Mid() float64 {
	return (p.Bid + p.Ask) / 2
}

// Account is a balance/equity snapshot.
type Account struct {
	ID       string
	Currency string
	Balance  float64
	Equity   float64
}

// Broker is the execution collaborator. Failed submissions are surfaced to
// the caller as errors; the core never retries them.
type Broker interface {
	GetAccount(ctx context.Context) (Account, error)
	GetPrice(ctx context.Context, pair string) (Price, error)
	TradablePairs(ctx context.Context) (map[string]bool, error)
	SubmitOrder(ctx context.Context, intent OrderIntent) (OrderFill, error)
}
