package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsfx/trader/broker"
	"github.com/newsfx/trader/logger"
	"github.com/newsfx/trader/risk"
	"github.com/newsfx/trader/sentiment"
)

// fakeBroker serves canned quotes and records submitted intents.
type fakeBroker struct {
	quotes    map[string]broker.Price
	tradable  map[string]bool // defaults to the quoted pairs
	submitted []broker.OrderIntent
	reject    map[string]bool
}

func newFakeBroker(pairs ...string) *fakeBroker {
	fb := &fakeBroker{quotes: make(map[string]broker.Price)}
	for _, pair := range pairs {
		fb.quotes[pair] = broker.Price{
			Pair: pair,
			Bid:  1.0999,
			Ask:  1.1001,
			Time: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		}
	}
	return fb
}

func (f *fakeBroker) GetAccount(ctx context.Context) (broker.Account, error) {
	return broker.Account{ID: "TEST", Currency: "USD", Balance: 10000, Equity: 10000}, nil
}

func (f *fakeBroker) GetPrice(ctx context.Context, pair string) (broker.Price, error) {
	p, ok := f.quotes[pair]
	if !ok {
		return broker.Price{}, fmt.Errorf("no price for %q", pair)
	}
	return p, nil
}

func (f *fakeBroker) TradablePairs(ctx context.Context) (map[string]bool, error) {
	if f.tradable != nil {
		return f.tradable, nil
	}
	out := make(map[string]bool, len(f.quotes))
	for pair := range f.quotes {
		out[pair] = true
	}
	return out, nil
}

func (f *fakeBroker) SubmitOrder(ctx context.Context, intent broker.OrderIntent) (broker.OrderFill, error) {
	if f.reject[intent.Pair] {
		return broker.OrderFill{}, fmt.Errorf("rejected %s", intent.Pair)
	}
	f.submitted = append(f.submitted, intent)
	return broker.OrderFill{OrderID: fmt.Sprintf("F%d", len(f.submitted)), Pair: intent.Pair, Price: 1.1001}, nil
}

func defaultOptions() Options {
	return Options{
		LotSize:           0.10,
		StopLossPercent:   1.0,
		TakeProfitPercent: 2.0,
		MaxPairsPerSignal: 5,
	}
}

func newTestPipeline(t *testing.T, fb *fakeBroker, limits risk.Limits, opts Options) *Pipeline {
	t.Helper()
	scorer := sentiment.NewScorer(sentiment.DefaultLexicon(), sentiment.DefaultThresholds())
	p, err := New(scorer, risk.NewGovernor(limits), fb, opts, logger.NewNop())
	require.NoError(t, err)
	return p
}

func decide(t *testing.T, p *Pipeline, fb *fakeBroker, text string) []broker.OrderIntent {
	t.Helper()
	tradable, err := fb.TradablePairs(context.Background())
	require.NoError(t, err)
	intents, err := p.Decide(context.Background(), text, tradable)
	require.NoError(t, err)
	return intents
}

func looseLimits() risk.Limits {
	return risk.Limits{
		MaxTradesPerDay:      20,
		MaxDailyLoss:         50,
		MaxDailyProfit:       200,
		MaxConsecutiveLosses: 3,
	}
}

func TestPipeline_NeutralTextEmitsNothing(t *testing.T) {
	t.Parallel()

	fb := newFakeBroker("EURUSD")
	p := newTestPipeline(t, fb, looseLimits(), defaultOptions())

	intents := decide(t, p, fb, "the meeting is scheduled for thursday")
	assert.Empty(t, intents)
}

func TestPipeline_BullishTextOpensLongs(t *testing.T) {
	t.Parallel()

	fb := newFakeBroker("EURUSD", "EURGBP", "EURJPY")
	p := newTestPipeline(t, fb, looseLimits(), defaultOptions())

	// surge(3) + strong(1) + recovery(2) = 6, score 0.400, moderate
	intents := decide(t, p, fb, "Euro surges after ECB signals strong recovery")
	require.Len(t, intents, 3)

	// expansion walks the majors in universe order, affected leg first
	first := intents[0]
	assert.Equal(t, "EURGBP", first.Pair)
	assert.Equal(t, sentiment.Long, first.Direction)
	assert.Equal(t, "AI_moderate_0.400", first.Tag)
	assert.InDelta(t, 0.07, first.LotSize, 1e-9) // 0.10 base at the moderate multiplier

	// longs price off the ask: 1% stop below, 2% take above
	assert.InDelta(t, 1.1001*0.99, first.StopLoss, 1e-9)
	assert.InDelta(t, 1.1001*1.02, first.TakeProfit, 1e-9)
}

func TestPipeline_ShortExitLevelsMirror(t *testing.T) {
	t.Parallel()

	fb := newFakeBroker("EURUSD")
	p := newTestPipeline(t, fb, looseLimits(), defaultOptions())

	// crash(-3) + crisis(-3) = -6, score -0.400
	intents := decide(t, p, fb, "Euro crashes as debt crisis deepens")
	require.Len(t, intents, 1)

	short := intents[0]
	assert.Equal(t, sentiment.Short, short.Direction)
	assert.InDelta(t, 1.0999*1.01, short.StopLoss, 1e-9) // stop above the bid entry
	assert.InDelta(t, 1.0999*0.98, short.TakeProfit, 1e-9)
	assert.Equal(t, "AI_moderate_-0.400", short.Tag)
}

func TestPipeline_NoCurrencyFallsBackToMajors(t *testing.T) {
	t.Parallel()

	fb := newFakeBroker("EURUSD", "GBPUSD", "USDJPY", "AUDUSD")
	p := newTestPipeline(t, fb, looseLimits(), defaultOptions())

	// surge(3) + rally(3) + recovery(2) = 8, strong, but no currency named
	intents := decide(t, p, fb, "Stocks surge and rally amid broad recovery")
	require.Len(t, intents, 3)
	assert.Equal(t, "EURUSD", intents[0].Pair)
	assert.Equal(t, "GBPUSD", intents[1].Pair)
	assert.Equal(t, "USDJPY", intents[2].Pair)
}

func TestPipeline_GateTripsMidBatch(t *testing.T) {
	t.Parallel()

	fb := newFakeBroker("EURUSD", "EURGBP", "EURJPY", "EURAUD")
	limits := looseLimits()
	limits.MaxTradesPerDay = 2
	p := newTestPipeline(t, fb, limits, defaultOptions())

	intents := decide(t, p, fb, "Euro surges after ECB signals strong recovery")
	assert.Len(t, intents, 2, "third candidate must be cut by the trade-count limit")
}

func TestPipeline_MissingQuoteSkipsPairOnly(t *testing.T) {
	t.Parallel()

	fb := newFakeBroker("EURUSD", "EURJPY")
	// EURGBP is tradable but its quote has not arrived yet
	fb.tradable = map[string]bool{"EURGBP": true, "EURUSD": true, "EURJPY": true}

	p := newTestPipeline(t, fb, looseLimits(), defaultOptions())

	intents := decide(t, p, fb, "Euro surges after ECB signals strong recovery")

	pairs := make([]string, 0, len(intents))
	for _, in := range intents {
		pairs = append(pairs, in.Pair)
	}
	assert.Equal(t, []string{"EURUSD", "EURJPY"}, pairs)
}

func TestPipeline_ClosedLossesFeedBackIntoGate(t *testing.T) {
	t.Parallel()

	fb := newFakeBroker("EURUSD")
	p := newTestPipeline(t, fb, looseLimits(), defaultOptions())

	intents := decide(t, p, fb, "Euro surges after ECB signals strong recovery")
	require.Len(t, intents, 1)

	for i := 0; i < 3; i++ {
		p.OnTradeClosed(fmt.Sprintf("T%d", i), -5)
	}

	intents = decide(t, p, fb, "Euro surges after ECB signals strong recovery")
	assert.Empty(t, intents, "three consecutive losses must halt new intents")
}

func TestPipeline_SubmitAllSkipsRejections(t *testing.T) {
	t.Parallel()

	fb := newFakeBroker("EURUSD", "EURGBP")
	fb.reject = map[string]bool{"EURGBP": true}
	p := newTestPipeline(t, fb, looseLimits(), defaultOptions())
	intents := decide(t, p, fb, "Euro surges after ECB signals strong recovery")
	require.Len(t, intents, 2)

	fills := p.SubmitAll(context.Background(), intents)
	require.Len(t, fills, 1)
	assert.Equal(t, "EURUSD", fills[0].Pair)
	assert.Len(t, fb.submitted, 1, "rejected orders are not retried")
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, defaultOptions().Validate())

	bad := defaultOptions()
	bad.LotSize = 0
	assert.Error(t, bad.Validate())

	bad = defaultOptions()
	bad.TakeProfitPercent = 0
	assert.Error(t, bad.Validate())
}
