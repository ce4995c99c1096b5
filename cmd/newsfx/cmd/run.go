package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newsfx/trader/broker"
	"github.com/newsfx/trader/broker/sim"
	"github.com/newsfx/trader/config"
	"github.com/newsfx/trader/feed"
	"github.com/newsfx/trader/feed/kafka"
	"github.com/newsfx/trader/journal"
	"github.com/newsfx/trader/logger"
	"github.com/newsfx/trader/pipeline"
	"github.com/newsfx/trader/risk"
	"github.com/newsfx/trader/sentiment"
	"github.com/newsfx/trader/stats"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Trade news from a Kafka feed against the paper engine",
	Long: `Run consumes news messages from Kafka, scores them, and paper-trades
the resulting signals until interrupted. Trades are gated by the daily risk
limits and journaled as they close.

Example:
  newsfx run -f newsfx.yaml`,
	RunE: runRun,
}

var (
	runConfigPath  string
	runMetricsAddr string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", ":9190", "listen address for Prometheus metrics (empty disables)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.NewZap()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer j.Close()

	engine := sim.NewEngine(broker.Account{
		ID:       cfg.Account.ID,
		Currency: cfg.Account.Currency,
		Balance:  cfg.Account.Balance,
		Equity:   cfg.Account.Balance,
	}, j)

	for _, q := range cfg.Prices {
		engine.Prices().Set(broker.Price{
			Pair: q.Pair,
			Bid:  q.Bid,
			Ask:  q.Ask,
			Time: time.Now(),
		})
	}

	scorer := sentiment.NewScorer(sentiment.DefaultLexicon(), cfg.Sentiment.Thresholds())
	gov := risk.NewGovernor(cfg.Risk.Limits())

	pipe, err := pipeline.New(scorer, gov, engine, pipeline.Options{
		LotSize:           cfg.Trading.LotSize,
		StopLossPercent:   cfg.Trading.StopLossPercent,
		TakeProfitPercent: cfg.Trading.TakeProfitPercent,
		MaxPairsPerSignal: cfg.Trading.MaxPairsPerSignal,
		MaxPerCurrency:    cfg.Trading.MaxPerCurrency,
	}, log)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	engine.SetTradeClosedListener(pipe)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runMetricsAddr != "" {
		go serveMetrics(runMetricsAddr, log)
	}

	dedup := feed.NewDedup()
	handler := func(ctx context.Context, msg feed.Message) error {
		if dedup.Seen(msg) {
			return nil
		}
		tradable, err := engine.TradablePairs(ctx)
		if err != nil {
			return err
		}
		intents, err := pipe.Decide(ctx, msg.Text, tradable)
		if err != nil {
			return err
		}
		if len(intents) == 0 {
			return nil
		}
		log.Info("signal",
			zap.String("key", msg.Key()),
			zap.Int("intents", len(intents)))
		pipe.SubmitAll(ctx, intents)
		return nil
	}

	consumer, err := kafka.NewConsumer(cfg.Feed.Brokers, cfg.Feed.GroupID, cfg.Feed.Topic, log)
	if err != nil {
		return fmt.Errorf("kafka consumer: %w", err)
	}
	if err := consumer.Run(ctx, handler); err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	fmt.Printf("Trading news from %s (topic %q). Ctrl-C to stop.\n", cfg.Feed.Brokers, cfg.Feed.Topic)
	<-ctx.Done()

	if err := consumer.Close(); err != nil {
		log.Warn("close consumer", zap.Error(err))
	}
	if err := engine.CloseAll(context.Background(), "Shutdown"); err != nil {
		log.Warn("close open trades", zap.Error(err))
	}

	printSessionReport(engine, j, cfg.Account.Balance)
	return nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.TradesFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return journal.NewMemory(), nil
	}
}

func serveMetrics(addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("metrics server", zap.Error(err))
	}
}

func printSessionReport(engine *sim.Engine, j journal.Journal, initialBalance float64) {
	acct, err := engine.GetAccount(context.Background())
	if err == nil {
		fmt.Printf("\nSession Complete!\n")
		fmt.Printf("  Balance: $%.2f\n", acct.Balance)
		fmt.Printf("  Profit/Loss: $%.2f\n", acct.Balance-initialBalance)
	}

	trades, err := j.ListTrades()
	if err != nil || len(trades) == 0 {
		return
	}
	fmt.Println()
	stats.PrintReport(os.Stdout, stats.Aggregate(trades, ""))
}
