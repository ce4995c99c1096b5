package calendar

import (
	"strings"

	"github.com/newsfx/trader/sentiment"
)

// eventWeights maps event-name fragments to a surprise multiplier. Rate
// decisions move currencies far more than a routine PMI print. First match
// wins, so order matters: "unemployment" must come after "employment" only
// if that is the intended precedence.
var eventWeights = []struct {
	fragment string
	weight   float64
}{
	{"nfp", 0.8},
	{"non-farm", 0.8},
	{"employment", 0.6},
	{"unemployment", -0.6}, // lower unemployment is bullish, sign flips the surprise
	{"jobless", -0.6},
	{"gdp", 0.7},
	{"retail sales", 0.6},
	{"manufacturing", 0.5},
	{"pmi", 0.5},
	{"cpi", 0.5},
	{"inflation", 0.5},
	{"interest rate", 0.9},
	{"rate decision", 0.9},
	{"fomc", 0.8},
	{"ecb", 0.8},
	{"boe", 0.8},
}

const defaultEventWeight = 0.5

// Analyzer scores calendar events by actual-vs-forecast surprise instead of
// keywords. The resulting Result uses the same normalization, signal and
// strength classification as the text scorer.
type Analyzer struct {
	th sentiment.Thresholds
}

func NewAnalyzer(th sentiment.Thresholds) *Analyzer {
	if th.Entry <= 0 {
		th = sentiment.DefaultThresholds()
	}
	return &Analyzer{th: th}
}

// Analyze derives a sentiment Result for the event's currency. Events with
// no usable actual/forecast pair come back NEUTRAL and weak, never an error.
func (a *Analyzer) Analyze(ev Event) sentiment.Result {
	res := sentiment.Result{
		Signal:   sentiment.Neutral,
		Strength: sentiment.Weak,
	}
	if ev.Currency != "" {
		res.Currencies = []string{ev.Currency}
	}

	actual, aerr := CleanValue(ev.Actual)
	forecast, ferr := CleanValue(ev.Forecast)
	if aerr != nil || ferr != nil || forecast == 0 {
		return res
	}

	diffPct := (actual - forecast) / abs(forecast) * 100
	score := diffPct / 100 * weightFor(ev.Name)

	switch ev.Impact {
	case ImpactHigh:
		score *= 1.5
	case ImpactMedium:
		score *= 1.0
	default:
		score *= 0.5
	}

	res.Score = sentiment.Clamp(score)
	switch {
	case res.Score >= a.th.Entry:
		res.Signal = sentiment.Long
	case res.Score <= -a.th.Entry:
		res.Signal = sentiment.Short
	}
	res.Strength = a.th.Classify(res.Score)

	return res
}

func weightFor(name string) float64 {
	lower := strings.ToLower(name)
	for _, ew := range eventWeights {
		if strings.Contains(lower, ew.fragment) {
			return ew.weight
		}
	}
	return defaultEventWeight
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
