package sentiment

import (
	"sort"
	"strings"
)

// MaxNorm is the fixed raw-score divisor used for normalization. It is a
// documented constant, not derived from the lexicon, so heavily loaded
// headlines saturate at +/-1 well before the theoretical maximum.
const MaxNorm = 15

// Thresholds holds the score breakpoints for signal and strength
// classification. Entry gates the LONG/SHORT decision; the strength tiers
// are classified independently of it.
type Thresholds struct {
	Entry      float64
	Moderate   float64
	Strong     float64
	VeryStrong float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Entry:      0.3,
		Moderate:   0.3,
		Strong:     0.5,
		VeryStrong: 0.7,
	}
}

// Classify maps an absolute normalized score onto a strength tier.
func (t Thresholds) Classify(score float64) Strength {
	abs := score
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= t.VeryStrong:
		return VeryStrong
	case abs >= t.Strong:
		return Strong
	case abs >= t.Moderate:
		return Moderate
	default:
		return Weak
	}
}

// Match records a single lexicon hit.
type Match struct {
	Keyword string
	Weight  int
}

// Result is the outcome of scoring one text. It is created fresh per call
// and never mutated afterwards.
type Result struct {
	RawScore   int
	Score      float64 // normalized, clamped to [-1, 1]
	Signal     Signal
	Strength   Strength
	Bullish    []Match
	Bearish    []Match
	Currencies []string
}

// Scorer converts free text into a Result using a Lexicon. Scoring is
// deterministic and mutates no shared state, so one Scorer may be shared
// across goroutines.
type Scorer struct {
	lex *Lexicon
	th  Thresholds
}

func NewScorer(lex *Lexicon, th Thresholds) *Scorer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	if th.Entry <= 0 {
		th = DefaultThresholds()
	}
	return &Scorer{lex: lex, th: th}
}

// Score analyzes text. Keywords are matched as plain substrings of the
// lower-cased input: "rise" inside "enterprise" counts. That matches the
// behavior of the upstream analyzer and is deliberately not word-bounded.
func (s *Scorer) Score(text string) Result {
	lower := strings.ToLower(text)

	res := Result{}
	for kw, w := range s.lex.Bullish {
		if strings.Contains(lower, kw) {
			res.RawScore += w
			res.Bullish = append(res.Bullish, Match{kw, w})
		}
	}
	for kw, w := range s.lex.Bearish {
		if strings.Contains(lower, kw) {
			res.RawScore += w
			res.Bearish = append(res.Bearish, Match{kw, w})
		}
	}

	// Map iteration order is random; sort matches so output is stable.
	sort.Slice(res.Bullish, func(i, j int) bool { return res.Bullish[i].Keyword < res.Bullish[j].Keyword })
	sort.Slice(res.Bearish, func(i, j int) bool { return res.Bearish[i].Keyword < res.Bearish[j].Keyword })

	res.Score = Clamp(float64(res.RawScore) / MaxNorm)
	res.Signal = s.classifySignal(res.Score)
	res.Strength = s.th.Classify(res.Score)
	res.Currencies = s.detectCurrencies(lower)

	return res
}

func (s *Scorer) classifySignal(score float64) Signal {
	switch {
	case score >= s.th.Entry:
		return Long
	case score <= -s.th.Entry:
		return Short
	default:
		return Neutral
	}
}

func (s *Scorer) detectCurrencies(lower string) []string {
	var detected []string
	for _, ck := range s.lex.Currencies {
		for _, kw := range ck.Keywords {
			if strings.Contains(lower, kw) {
				detected = append(detected, ck.Code)
				break
			}
		}
	}
	return detected
}

// Clamp bounds a score to [-1, 1].
func Clamp(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
