package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/newsfx/trader/broker"
	"github.com/newsfx/trader/journal"
	"github.com/newsfx/trader/pkg/id"
	"github.com/newsfx/trader/sentiment"
)

// TradeClosedListener is notified after the engine closes a trade, whether
// by stop/take trigger or an explicit close. The callback runs outside the
// engine lock.
type TradeClosedListener interface {
	OnTradeClosed(tradeID string, profit float64)
}

// Engine is a paper-fill execution engine. Orders fill instantly at the
// current quote; stop-loss and take-profit levels are monitored on every
// price update. Closed trades are journaled and their profit realized into
// the account balance.
type Engine struct {
	mu       sync.Mutex
	acct     broker.Account
	prices   *PriceStore
	trades   map[string]*Trade
	journal  journal.Journal
	listener TradeClosedListener
}

func NewEngine(acct broker.Account, j journal.Journal) *Engine {
	return &Engine{
		acct:    acct,
		prices:  NewPriceStore(),
		trades:  make(map[string]*Trade),
		journal: j,
	}
}

// SetTradeClosedListener registers an optional close callback.
func (e *Engine) SetTradeClosedListener(l TradeClosedListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listener = l
}

func (e *Engine) Prices() *PriceStore { return e.prices }

func (e *Engine) GetAccount(ctx context.Context) (broker.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.acct, nil
}

func (e *Engine) GetPrice(ctx context.Context, pair string) (broker.Price, error) {
	return e.prices.Get(pair)
}

// TradablePairs reports every pair a quote has been seen for.
func (e *Engine) TradablePairs(ctx context.Context) (map[string]bool, error) {
	return e.prices.Pairs(), nil
}

// SubmitOrder fills the intent at the current quote: longs on ASK, shorts
// on BID. A pair with no quote is a failed submission.
func (e *Engine) SubmitOrder(ctx context.Context, intent broker.OrderIntent) (broker.OrderFill, error) {
	if intent.Direction != sentiment.Long && intent.Direction != sentiment.Short {
		return broker.OrderFill{}, fmt.Errorf("submit order: direction must be LONG or SHORT")
	}
	if intent.LotSize <= 0 {
		return broker.OrderFill{}, fmt.Errorf("submit order: lot size must be positive")
	}

	p, err := e.prices.Get(intent.Pair)
	if err != nil {
		return broker.OrderFill{}, fmt.Errorf("submit order: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fillPrice := p.Ask
	if intent.Direction == sentiment.Short {
		fillPrice = p.Bid
	}

	tradeID := id.New()
	e.trades[tradeID] = &Trade{
		ID:         tradeID,
		Pair:       intent.Pair,
		Direction:  intent.Direction,
		Lot:        intent.LotSize,
		EntryPrice: fillPrice,
		StopLoss:   intent.StopLoss,
		TakeProfit: intent.TakeProfit,
		OpenTime:   p.Time,
		Tag:        intent.Tag,
		Open:       true,
	}

	return broker.OrderFill{
		OrderID: tradeID,
		Pair:    intent.Pair,
		Price:   fillPrice,
		Time:    p.Time,
	}, nil
}

// UpdatePrice stores a new quote and closes any open trade on that pair
// whose stop or take level is now breached. If both levels are breached by
// one update the stop wins (worst case for the trader).
func (e *Engine) UpdatePrice(p broker.Price) error {
	e.prices.Set(p)

	e.mu.Lock()
	var closed []closedTrade
	for _, t := range e.trades {
		if !t.Open || t.Pair != p.Pair {
			continue
		}
		if px, reason, hit := checkExit(t, p); hit {
			closed = append(closed, e.closeLocked(t, px, reason, p))
		}
	}
	listener := e.listener
	e.mu.Unlock()

	for _, c := range closed {
		if err := c.err; err != nil {
			return err
		}
		if listener != nil {
			listener.OnTradeClosed(c.id, c.profit)
		}
	}
	return nil
}

// CloseTrade closes one open trade at the current quote: longs on BID,
// shorts on ASK.
func (e *Engine) CloseTrade(ctx context.Context, tradeID, reason string) error {
	e.mu.Lock()

	t, ok := e.trades[tradeID]
	if !ok || !t.Open {
		e.mu.Unlock()
		return fmt.Errorf("close trade: %q not open", tradeID)
	}
	p, err := e.prices.Get(t.Pair)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("close trade: %w", err)
	}

	px := p.Bid
	if t.Direction == sentiment.Short {
		px = p.Ask
	}
	c := e.closeLocked(t, px, reason, p)
	listener := e.listener
	e.mu.Unlock()

	if c.err != nil {
		return c.err
	}
	if listener != nil {
		listener.OnTradeClosed(c.id, c.profit)
	}
	return nil
}

// CloseAll closes every open trade, returning the first error encountered.
func (e *Engine) CloseAll(ctx context.Context, reason string) error {
	e.mu.Lock()
	var ids []string
	for tradeID, t := range e.trades {
		if t.Open {
			ids = append(ids, tradeID)
		}
	}
	e.mu.Unlock()

	var firstErr error
	for _, tradeID := range ids {
		if err := e.CloseTrade(ctx, tradeID, reason); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FloatingPnL is the unrealized profit of all open trades at current
// quotes. Trades on pairs with no quote contribute zero.
func (e *Engine) FloatingPnL() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var total float64
	for _, t := range e.trades {
		if !t.Open {
			continue
		}
		p, err := e.prices.Get(t.Pair)
		if err != nil {
			continue
		}
		px := p.Bid
		if t.Direction == sentiment.Short {
			px = p.Ask
		}
		total += e.acct.Balance * t.movePct(px) / 100 * t.Lot
	}
	return total
}

type closedTrade struct {
	id     string
	profit float64
	err    error
}

// closeLocked realizes a trade at px. Caller holds e.mu.
func (e *Engine) closeLocked(t *Trade, px float64, reason string, p broker.Price) closedTrade {
	t.Open = false

	profit := e.acct.Balance * t.movePct(px) / 100 * t.Lot
	e.acct.Balance += profit
	e.acct.Equity = e.acct.Balance

	c := closedTrade{id: t.ID, profit: profit}
	if e.journal != nil {
		tag := t.Tag
		if reason != "" {
			tag = tag + "|" + reason
		}
		c.err = e.journal.RecordTrade(journal.TradeRecord{
			TradeID:    t.ID,
			Pair:       t.Pair,
			Direction:  t.Direction,
			EntryPrice: t.EntryPrice,
			ExitPrice:  px,
			Profit:     profit,
			OpenedAt:   t.OpenTime,
			ClosedAt:   p.Time,
			Tag:        tag,
		})
	}
	return c
}

// checkExit models stop/take hits on a quote update.
func checkExit(t *Trade, p broker.Price) (px float64, reason string, hit bool) {
	hasStop := t.StopLoss != 0
	hasTake := t.TakeProfit != 0

	switch t.Direction {
	case sentiment.Long:
		stopHit := hasStop && p.Bid <= t.StopLoss
		takeHit := hasTake && p.Bid >= t.TakeProfit
		if stopHit {
			return t.StopLoss, "STOP", true
		}
		if takeHit {
			return t.TakeProfit, "TAKE", true
		}
	case sentiment.Short:
		stopHit := hasStop && p.Ask >= t.StopLoss
		takeHit := hasTake && p.Ask <= t.TakeProfit
		if stopHit {
			return t.StopLoss, "STOP", true
		}
		if takeHit {
			return t.TakeProfit, "TAKE", true
		}
	}
	return 0, "", false
}
