package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/newsfx/trader/market"
	"github.com/newsfx/trader/sentiment"
)

var scoreCmd = &cobra.Command{
	Use:   "score [text]",
	Short: "Score news text against the sentiment lexicon",
	Long: `Score free text and print the trading signal it would produce.

Reads the text from the arguments, or from stdin when none are given.

Examples:
  newsfx score "Euro surges after ECB signals strong recovery"
  echo "Dollar plunges on recession fears" | newsfx score`,
	RunE: runScore,
}

var scoreShowPairs bool

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolVarP(&scoreShowPairs, "pairs", "p", false, "also print the expanded tradable pairs")
}

func runScore(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		sc := bufio.NewScanner(os.Stdin)
		var lines []string
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.Join(lines, " ")
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text to score")
	}

	scorer := sentiment.NewScorer(sentiment.DefaultLexicon(), sentiment.DefaultThresholds())
	res := scorer.Score(text)

	fmt.Printf("Signal: %s (%s)\n", res.Signal, res.Strength)
	fmt.Printf("Score: %.3f (raw %d)\n", res.Score, res.RawScore)

	if len(res.Bullish) > 0 {
		fmt.Printf("Bullish: %s\n", joinMatches(res.Bullish))
	}
	if len(res.Bearish) > 0 {
		fmt.Printf("Bearish: %s\n", joinMatches(res.Bearish))
	}
	if len(res.Currencies) > 0 {
		fmt.Printf("Currencies: %s\n", strings.Join(res.Currencies, ", "))
	}

	if scoreShowPairs && res.Signal != sentiment.Neutral {
		pairs := market.Expand(res.Currencies, res.Signal)
		if len(pairs) == 0 {
			pairs = market.MajorPairs
		}
		fmt.Printf("Pairs: %s\n", strings.Join(pairs, ", "))
	}

	return nil
}

func joinMatches(matches []sentiment.Match) string {
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, fmt.Sprintf("%s(%+d)", m.Keyword, m.Weight))
	}
	return strings.Join(parts, ", ")
}
