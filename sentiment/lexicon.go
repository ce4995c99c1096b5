package sentiment

// Lexicon maps directional keywords to signed integer weights and currency
// codes to the keywords that identify them. Keywords are lower-case; weight
// magnitude encodes intensity (1..3).
type Lexicon struct {
	Bullish map[string]int
	Bearish map[string]int

	// Currencies is ordered: detection reports affected currencies in the
	// order they are declared here.
	Currencies []CurrencyKeywords
}

type CurrencyKeywords struct {
	Code     string
	Keywords []string
}

// DefaultLexicon returns the built-in news lexicon.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Bullish: map[string]int{
			"surge": 3, "soar": 3, "rally": 3, "boom": 3, "skyrocket": 3,
			"breakthrough": 3, "record high": 3, "all-time high": 3,

			"rise": 2, "gain": 2, "increase": 2, "growth": 2, "stronger": 2,
			"positive": 2, "optimistic": 2, "boost": 2, "jump": 2, "advance": 2,
			"improve": 2, "recovery": 2, "upbeat": 2, "expansion": 2,

			"up": 1, "better": 1, "good": 1, "stable": 1, "support": 1,
			"confidence": 1, "solid": 1, "strong": 1,
		},
		Bearish: map[string]int{
			"crash": -3, "plunge": -3, "collapse": -3, "tumble": -3, "slump": -3,
			"crisis": -3, "panic": -3, "disaster": -3, "record low": -3,

			"fall": -2, "drop": -2, "decline": -2, "decrease": -2, "weak": -2,
			"loss": -2, "negative": -2, "concern": -2, "worry": -2,
			"recession": -2, "contraction": -2, "downward": -2, "pessimistic": -2,

			"down": -1, "worse": -1, "bad": -1, "risk": -1, "uncertain": -1,
			"doubt": -1, "pressure": -1,
		},
		Currencies: []CurrencyKeywords{
			{"USD", []string{"dollar", "usd", "fed", "federal reserve", "us economy", "america"}},
			{"EUR", []string{"euro", "eur", "ecb", "european central bank", "eurozone", "europe"}},
			{"GBP", []string{"pound", "sterling", "gbp", "boe", "bank of england", "uk", "britain"}},
			{"JPY", []string{"yen", "jpy", "boj", "bank of japan", "japan"}},
			{"AUD", []string{"aussie", "aud", "rba", "australia"}},
			{"CAD", []string{"loonie", "cad", "canada"}},
			{"CHF", []string{"franc", "chf", "swiss", "switzerland"}},
			{"NZD", []string{"kiwi", "nzd", "new zealand"}},
		},
	}
}
