package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Impact is the published importance level of an economic release.
type Impact int8

const (
	ImpactHoliday Impact = iota
	ImpactLow
	ImpactMedium
	ImpactHigh
)

func (i Impact) String() string {
	switch i {
	case ImpactHigh:
		return "high"
	case ImpactMedium:
		return "medium"
	case ImpactLow:
		return "low"
	default:
		return "holiday"
	}
}

func ParseImpact(s string) Impact {
	switch strings.ToLower(s) {
	case "high":
		return ImpactHigh
	case "medium":
		return ImpactMedium
	case "low":
		return ImpactLow
	default:
		return ImpactHoliday
	}
}

// Event is a single economic-calendar record as supplied by the calendar
// collaborator. Actual/Forecast/Previous are kept as the raw published
// strings ("3.2%", "215K", "-0.1").
type Event struct {
	ID       string
	Time     time.Time
	Currency string
	Impact   Impact
	Name     string
	Actual   string
	Forecast string
	Previous string
}

// CleanValue parses a published calendar figure, stripping the %/K/M/B
// decorations. Both sides of a surprise comparison carry the same suffix,
// so the suffix is dropped rather than expanded.
func CleanValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	for _, suffix := range []string{"%", "K", "M", "B"} {
		s = strings.ReplaceAll(s, suffix, "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse calendar value %q: %w", s, err)
	}
	return v, nil
}

// Summary renders the event as a headline suitable for the keyword scorer,
// for callers that want the text path instead of the surprise path.
func (e Event) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s (%s IMPACT)", e.Currency, e.Name, strings.ToUpper(e.Impact.String()))

	actual, aerr := CleanValue(e.Actual)
	forecast, ferr := CleanValue(e.Forecast)
	switch {
	case aerr == nil && ferr == nil && actual > forecast:
		fmt.Fprintf(&b, " - Better than expected! Actual %s vs Forecast %s", e.Actual, e.Forecast)
	case aerr == nil && ferr == nil && actual < forecast:
		fmt.Fprintf(&b, " - Worse than expected! Actual %s vs Forecast %s", e.Actual, e.Forecast)
	case aerr == nil && ferr == nil:
		fmt.Fprintf(&b, " - As expected: %s", e.Actual)
	case aerr == nil:
		fmt.Fprintf(&b, " - Result: %s", e.Actual)
	}
	if e.Previous != "" {
		fmt.Fprintf(&b, " (Previous: %s)", e.Previous)
	}
	return b.String()
}
