package sentiment

// Signal is the directional trading signal derived from a sentiment score.
// One enum is used everywhere: scorer, pair expansion, pipeline, journal.
type Signal int8

const (
	Neutral Signal = 0
	Long    Signal = +1
	Short   Signal = -1
)

func (s Signal) String() string {
	switch s {
	case Long:
		return "LONG"
	case Short:
		return "SHORT"
	default:
		return "NEUTRAL"
	}
}

// ParseSignal is the inverse of String. Unknown input maps to Neutral.
func ParseSignal(s string) Signal {
	switch s {
	case "LONG":
		return Long
	case "SHORT":
		return Short
	default:
		return Neutral
	}
}

// Strength is the discrete confidence tier derived from |normalized score|.
type Strength int8

const (
	Weak Strength = iota
	Moderate
	Strong
	VeryStrong
)

func (s Strength) String() string {
	switch s {
	case Moderate:
		return "moderate"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very_strong"
	default:
		return "weak"
	}
}
