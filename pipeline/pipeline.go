// Package pipeline turns scored news text into order intents: score the
// text, expand affected currencies into tradable pairs, gate each candidate
// through the risk governor, and price stop/take levels off the live quote.
package pipeline

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/newsfx/trader/broker"
	"github.com/newsfx/trader/logger"
	"github.com/newsfx/trader/market"
	"github.com/newsfx/trader/metrics"
	"github.com/newsfx/trader/risk"
	"github.com/newsfx/trader/sentiment"
)

// Options are the trading parameters of one pipeline instance.
type Options struct {
	LotSize           float64 // base lot, scaled by signal strength
	StopLossPercent   float64 // distance from entry, in percent of price
	TakeProfitPercent float64
	MaxPairsPerSignal int // 0 means no cap
	MaxPerCurrency    int // 0 means no cap
}

func (o Options) Validate() error {
	if o.LotSize < risk.MinLot {
		return fmt.Errorf("lot size %.2f below minimum %.2f", o.LotSize, risk.MinLot)
	}
	if o.StopLossPercent <= 0 || o.TakeProfitPercent <= 0 {
		return fmt.Errorf("stop-loss and take-profit percent must be positive")
	}
	return nil
}

// Pipeline is the decision core. It holds no position state of its own;
// open/closed bookkeeping lives in the governor and the broker.
type Pipeline struct {
	scorer *sentiment.Scorer
	gov    *risk.Governor
	broker broker.Broker
	opts   Options
	log    logger.Logger
}

func New(scorer *sentiment.Scorer, gov *risk.Governor, b broker.Broker, opts Options, log logger.Logger) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Pipeline{scorer: scorer, gov: gov, broker: b, opts: opts, log: log}, nil
}

// Decide scores text and returns the order intents it justifies against the
// caller-supplied tradable set. A neutral or weak result returns no intents.
// Each emitted intent is counted against the governor immediately, so a
// limit can trip mid-batch and truncate it.
func (p *Pipeline) Decide(ctx context.Context, text string, tradable map[string]bool) ([]broker.OrderIntent, error) {
	res := p.scorer.Score(text)
	metrics.TextsScored.WithLabelValues(res.Signal.String()).Inc()

	if res.Signal == sentiment.Neutral || res.Strength == sentiment.Weak {
		return nil, nil
	}

	pairs := p.candidatePairs(res, tradable)
	if len(pairs) == 0 {
		p.log.Info("no tradable pairs for signal",
			zap.Float64("score", res.Score),
			zap.Strings("currencies", res.Currencies))
		return nil, nil
	}

	lot := round2(p.opts.LotSize * strengthMultiplier(res.Strength))
	if lot < risk.MinLot {
		lot = risk.MinLot
	}
	tag := fmt.Sprintf("AI_%s_%.3f", res.Strength, res.Score)

	var intents []broker.OrderIntent
	for _, pair := range pairs {
		if d := p.gov.Check(); !d.Allowed {
			v := d.Violations[0]
			metrics.IntentsBlocked.WithLabelValues(v.Code).Inc()
			p.log.Warn("risk limit reached, truncating batch",
				zap.String("code", v.Code), zap.String("reason", v.Msg))
			break
		}

		price, err := p.broker.GetPrice(ctx, pair)
		if err != nil {
			p.log.Warn("no quote, skipping pair", zap.String("pair", pair), zap.Error(err))
			continue
		}

		entry := price.Ask
		if res.Signal == sentiment.Short {
			entry = price.Bid
		}
		stop, take := exitLevels(entry, res.Signal, p.opts.StopLossPercent, p.opts.TakeProfitPercent)

		intents = append(intents, broker.OrderIntent{
			Pair:       pair,
			Direction:  res.Signal,
			LotSize:    lot,
			StopLoss:   stop,
			TakeProfit: take,
			Tag:        tag,
		})
		p.gov.RecordTradeOpened()
		metrics.IntentsEmitted.WithLabelValues(pair).Inc()
	}

	return intents, nil
}

// SubmitAll submits each intent once. Failed submissions are logged and
// skipped, never retried; the successful fills are returned.
func (p *Pipeline) SubmitAll(ctx context.Context, intents []broker.OrderIntent) []broker.OrderFill {
	fills := make([]broker.OrderFill, 0, len(intents))
	for _, intent := range intents {
		fill, err := p.broker.SubmitOrder(ctx, intent)
		if err != nil {
			p.log.Error("order rejected",
				zap.String("pair", intent.Pair),
				zap.String("direction", intent.Direction.String()),
				zap.Error(err))
			continue
		}
		p.log.Info("order filled",
			zap.String("order_id", fill.OrderID),
			zap.String("pair", fill.Pair),
			zap.Float64("price", fill.Price))
		fills = append(fills, fill)
	}
	return fills
}

// OnTradeClosed feeds realized profit back into the governor. It satisfies
// the broker engine's close-listener contract.
func (p *Pipeline) OnTradeClosed(tradeID string, profit float64) {
	p.gov.RecordTradeClosed(profit)
	metrics.TradesClosed.Inc()
	metrics.DailyPnL.Set(p.gov.State().PnL)
	p.log.Info("trade closed",
		zap.String("trade_id", tradeID),
		zap.Float64("profit", profit))
}

// candidatePairs expands affected currencies into concrete pairs. Texts
// with no recognizable currency fall back to the liquid majors.
func (p *Pipeline) candidatePairs(res sentiment.Result, tradable map[string]bool) []string {
	var pairs []string
	if len(res.Currencies) == 0 {
		for _, pair := range market.MajorPairs {
			if tradable[pair] {
				pairs = append(pairs, pair)
			}
		}
	} else {
		pairs = market.ExpandFiltered(res.Currencies, res.Signal, tradable, p.opts.MaxPairsPerSignal)
	}
	if p.opts.MaxPerCurrency > 0 {
		pairs = market.CapByGroup(pairs, p.opts.MaxPerCurrency)
	}
	return pairs
}

// exitLevels prices the stop and take as a percent distance from entry, on
// the side the direction dictates.
func exitLevels(entry float64, sig sentiment.Signal, slPct, tpPct float64) (stop, take float64) {
	if sig == sentiment.Short {
		return entry * (1 + slPct/100), entry * (1 - tpPct/100)
	}
	return entry * (1 - slPct/100), entry * (1 + tpPct/100)
}

func strengthMultiplier(s sentiment.Strength) float64 {
	switch s {
	case sentiment.VeryStrong:
		return 1.5
	case sentiment.Strong:
		return 1.0
	default:
		return 0.7
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
