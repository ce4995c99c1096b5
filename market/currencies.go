package market

// Majors is the fixed 8-currency universe pairs are built from.
var Majors = []string{"EUR", "GBP", "USD", "JPY", "AUD", "CAD", "CHF", "NZD"}

// MajorPairs are the default instruments traded when a signal carries no
// currency attribution.
var MajorPairs = []string{"EURUSD", "GBPUSD", "USDJPY"}

// IsMajor reports whether code belongs to the majors universe.
func IsMajor(code string) bool {
	for _, c := range Majors {
		if c == code {
			return true
		}
	}
	return false
}

// Base and Quote split a 6-character pair code into its two legs.
func Base(pair string) string {
	if len(pair) != 6 {
		return ""
	}
	return pair[:3]
}

func Quote(pair string) string {
	if len(pair) != 6 {
		return ""
	}
	return pair[3:]
}

// ValidPair reports whether pair is a 6-character code built from two
// distinct major currencies.
func ValidPair(pair string) bool {
	return len(pair) == 6 && IsMajor(Base(pair)) && IsMajor(Quote(pair)) && Base(pair) != Quote(pair)
}
