package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/newsfx/trader/calendar"
	"github.com/newsfx/trader/sentiment"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Score an economic calendar release",
	Long: `Score a calendar event from its actual and forecast values.

The surprise (actual vs forecast) is weighted by event type and scaled by
impact, producing the same signal form as news text scoring.

Example:
  newsfx event --name "Non-Farm Payrolls" --currency USD --impact high \
    --actual 150K --forecast 180K`,
	RunE: runEvent,
}

var (
	eventName     string
	eventCurrency string
	eventImpact   string
	eventActual   string
	eventForecast string
	eventPrevious string
)

func init() {
	rootCmd.AddCommand(eventCmd)

	eventCmd.Flags().StringVar(&eventName, "name", "", "event name, e.g. \"CPI y/y\" (required)")
	eventCmd.Flags().StringVar(&eventCurrency, "currency", "", "currency the release affects (required)")
	eventCmd.Flags().StringVar(&eventImpact, "impact", "medium", "impact level (high, medium, low)")
	eventCmd.Flags().StringVar(&eventActual, "actual", "", "released value, e.g. 3.4% or 150K")
	eventCmd.Flags().StringVar(&eventForecast, "forecast", "", "forecast value")
	eventCmd.Flags().StringVar(&eventPrevious, "previous", "", "previous value")
	eventCmd.MarkFlagRequired("name")
	eventCmd.MarkFlagRequired("currency")
}

func runEvent(cmd *cobra.Command, args []string) error {
	ev := calendar.Event{
		Time:     time.Now(),
		Currency: eventCurrency,
		Impact:   calendar.ParseImpact(eventImpact),
		Name:     eventName,
		Actual:   eventActual,
		Forecast: eventForecast,
		Previous: eventPrevious,
	}

	analyzer := calendar.NewAnalyzer(sentiment.DefaultThresholds())
	res := analyzer.Analyze(ev)

	fmt.Println(ev.Summary())
	fmt.Printf("Signal: %s (%s)\n", res.Signal, res.Strength)
	fmt.Printf("Score: %.3f\n", res.Score)
	return nil
}
