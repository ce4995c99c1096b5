package calendar

import (
	"testing"

	"github.com/newsfx/trader/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"3.2%", 3.2},
		{"215K", 215},
		{"-0.1", -0.1},
		{"1.5M", 1.5},
		{" 2.0 ", 2.0},
	}
	for _, tt := range tests {
		got, err := CleanValue(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}

	_, err := CleanValue("")
	assert.Error(t, err)
	_, err = CleanValue("N/A")
	assert.Error(t, err)
}

func TestAnalyze_PositiveSurpriseHighImpact(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(sentiment.DefaultThresholds())
	res := a.Analyze(Event{
		Currency: "USD",
		Impact:   ImpactHigh,
		Name:     "Fed Interest Rate Decision",
		Actual:   "5.50%",
		Forecast: "5.25%",
	})

	// diff 4.76%, weight 0.9, impact x1.5
	assert.Greater(t, res.Score, 0.0)
	assert.Equal(t, []string{"USD"}, res.Currencies)
	assert.LessOrEqual(t, res.Score, 1.0)
}

func TestAnalyze_LargeMissGoesShort(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(sentiment.DefaultThresholds())
	res := a.Analyze(Event{
		Currency: "GBP",
		Impact:   ImpactHigh,
		Name:     "GDP Growth Rate",
		Actual:   "0.5%",
		Forecast: "1.5%",
	})

	// diff -66.7%, weight 0.7, impact x1.5 => about -0.7
	assert.Equal(t, sentiment.Short, res.Signal)
	assert.Equal(t, sentiment.VeryStrong, res.Strength)
	assert.InDelta(t, -0.7, res.Score, 0.01)
}

func TestAnalyze_MissingDataIsNeutral(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(sentiment.DefaultThresholds())

	for _, ev := range []Event{
		{Currency: "EUR", Name: "CPI", Forecast: "2.0%"},
		{Currency: "EUR", Name: "CPI", Actual: "2.0%"},
		{Currency: "EUR", Name: "CPI", Actual: "2.0%", Forecast: "0"},
		{Currency: "EUR", Name: "CPI", Actual: "pending", Forecast: "2.0%"},
	} {
		res := a.Analyze(ev)
		assert.Equal(t, sentiment.Neutral, res.Signal)
		assert.Equal(t, sentiment.Weak, res.Strength)
		assert.Zero(t, res.Score)
	}
}

func TestAnalyze_LowImpactIsDamped(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(sentiment.DefaultThresholds())

	high := a.Analyze(Event{Currency: "AUD", Impact: ImpactHigh, Name: "Retail Sales", Actual: "2.0", Forecast: "1.0"})
	low := a.Analyze(Event{Currency: "AUD", Impact: ImpactLow, Name: "Retail Sales", Actual: "2.0", Forecast: "1.0"})

	assert.Greater(t, high.Score, low.Score)
	assert.InDelta(t, high.Score/3, low.Score, 1e-9)
}

func TestEvent_Summary(t *testing.T) {
	t.Parallel()

	ev := Event{
		Currency: "USD",
		Impact:   ImpactHigh,
		Name:     "Non-Farm Payrolls",
		Actual:   "250K",
		Forecast: "180K",
		Previous: "190K",
	}
	s := ev.Summary()
	assert.Contains(t, s, "USD - Non-Farm Payrolls (HIGH IMPACT)")
	assert.Contains(t, s, "Better than expected!")
	assert.Contains(t, s, "Previous: 190K")
}

func TestParseImpact(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ImpactHigh, ParseImpact("High"))
	assert.Equal(t, ImpactMedium, ParseImpact("medium"))
	assert.Equal(t, ImpactLow, ParseImpact("low"))
	assert.Equal(t, ImpactHoliday, ParseImpact("whatever"))
}
