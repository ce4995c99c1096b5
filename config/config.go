package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/newsfx/trader/risk"
	"github.com/newsfx/trader/sentiment"
)

// Config represents the complete trader configuration
type Config struct {
	Account   AccountConfig   `json:"account" yaml:"account"`
	Sentiment SentimentConfig `json:"sentiment" yaml:"sentiment"`
	Risk      RiskConfig      `json:"risk" yaml:"risk"`
	Trading   TradingConfig   `json:"trading" yaml:"trading"`
	Feed      FeedConfig      `json:"feed" yaml:"feed"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Backtest  BacktestConfig  `json:"backtest" yaml:"backtest"`

	// Prices seed the paper engine's quote store at startup.
	Prices []QuoteConfig `json:"prices,omitempty" yaml:"prices,omitempty"`
}

// QuoteConfig is one seeded two-sided quote
type QuoteConfig struct {
	Pair string  `json:"pair" yaml:"pair"`
	Bid  float64 `json:"bid" yaml:"bid"`
	Ask  float64 `json:"ask" yaml:"ask"`
}

// AccountConfig contains account initialization parameters
type AccountConfig struct {
	ID       string  `json:"id" yaml:"id"`
	Currency string  `json:"currency" yaml:"currency"`
	Balance  float64 `json:"balance" yaml:"balance"`
}

// SentimentConfig contains the scoring thresholds
type SentimentConfig struct {
	EntryThreshold      float64 `json:"entry_threshold" yaml:"entry_threshold"`
	ModerateThreshold   float64 `json:"moderate_threshold" yaml:"moderate_threshold"`
	StrongThreshold     float64 `json:"strong_threshold" yaml:"strong_threshold"`
	VeryStrongThreshold float64 `json:"very_strong_threshold" yaml:"very_strong_threshold"`
}

// Thresholds converts the section to the scorer's native form.
func (s SentimentConfig) Thresholds() sentiment.Thresholds {
	return sentiment.Thresholds{
		Entry:      s.EntryThreshold,
		Moderate:   s.ModerateThreshold,
		Strong:     s.StrongThreshold,
		VeryStrong: s.VeryStrongThreshold,
	}
}

// RiskConfig contains the daily circuit-breaker limits
type RiskConfig struct {
	MaxTradesPerDay      int     `json:"max_trades_per_day" yaml:"max_trades_per_day"`
	MaxDailyLoss         float64 `json:"max_daily_loss" yaml:"max_daily_loss"`
	MaxDailyProfit       float64 `json:"max_daily_profit" yaml:"max_daily_profit"`
	MaxConsecutiveLosses int     `json:"max_consecutive_losses" yaml:"max_consecutive_losses"`
}

// Limits converts the section to the governor's native form.
func (r RiskConfig) Limits() risk.Limits {
	return risk.Limits{
		MaxTradesPerDay:      r.MaxTradesPerDay,
		MaxDailyLoss:         r.MaxDailyLoss,
		MaxDailyProfit:       r.MaxDailyProfit,
		MaxConsecutiveLosses: r.MaxConsecutiveLosses,
	}
}

// TradingConfig contains order sizing and exit parameters
type TradingConfig struct {
	LotSize           float64 `json:"lot_size" yaml:"lot_size"`
	StopLossPercent   float64 `json:"stop_loss_percent" yaml:"stop_loss_percent"`
	TakeProfitPercent float64 `json:"take_profit_percent" yaml:"take_profit_percent"`
	MaxPairsPerSignal int     `json:"max_pairs_per_signal" yaml:"max_pairs_per_signal"`
	MaxPerCurrency    int     `json:"max_per_currency" yaml:"max_per_currency"`
}

// FeedConfig contains the Kafka news feed parameters
type FeedConfig struct {
	Brokers []string `json:"brokers" yaml:"brokers"`
	Topic   string   `json:"topic" yaml:"topic"`
	GroupID string   `json:"group_id" yaml:"group_id"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "memory"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// BacktestConfig contains the stochastic simulation parameters
type BacktestConfig struct {
	NumSignals     int      `json:"num_signals" yaml:"num_signals"`
	PairsPerSignal int      `json:"pairs_per_signal" yaml:"pairs_per_signal"`
	Pairs          []string `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	Seed           int64    `json:"seed,omitempty" yaml:"seed,omitempty"` // 0 means time-seeded
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	s := c.Sentiment
	if s.EntryThreshold <= 0 || s.EntryThreshold > 1 {
		return fmt.Errorf("sentiment.entry_threshold must be between 0 and 1")
	}
	if s.ModerateThreshold > s.StrongThreshold || s.StrongThreshold > s.VeryStrongThreshold {
		return fmt.Errorf("sentiment thresholds must be non-decreasing")
	}
	if c.Risk.MaxTradesPerDay <= 0 {
		return fmt.Errorf("risk.max_trades_per_day must be positive")
	}
	if c.Risk.MaxDailyLoss <= 0 || c.Risk.MaxDailyProfit <= 0 {
		return fmt.Errorf("risk daily loss and profit limits must be positive")
	}
	if c.Risk.MaxConsecutiveLosses <= 0 {
		return fmt.Errorf("risk.max_consecutive_losses must be positive")
	}
	if c.Trading.LotSize < risk.MinLot {
		return fmt.Errorf("trading.lot_size must be at least %.2f", risk.MinLot)
	}
	if c.Trading.StopLossPercent <= 0 {
		return fmt.Errorf("trading.stop_loss_percent must be positive")
	}
	if c.Trading.TakeProfitPercent <= 0 {
		return fmt.Errorf("trading.take_profit_percent must be positive")
	}
	switch c.Journal.Type {
	case "memory":
	case "csv":
		if c.Journal.TradesFile == "" {
			return fmt.Errorf("journal.trades_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'memory'")
	}
	if c.Backtest.NumSignals < 0 || c.Backtest.PairsPerSignal < 0 {
		return fmt.Errorf("backtest counts must not be negative")
	}
	for _, q := range c.Prices {
		if q.Pair == "" {
			return fmt.Errorf("prices entries require a pair")
		}
		if q.Bid <= 0 || q.Ask <= q.Bid {
			return fmt.Errorf("price for %s must have ask > bid > 0", q.Pair)
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:       "SIM-001",
			Currency: "USD",
			Balance:  10000,
		},
		Sentiment: SentimentConfig{
			EntryThreshold:      0.3,
			ModerateThreshold:   0.3,
			StrongThreshold:     0.5,
			VeryStrongThreshold: 0.7,
		},
		Risk: RiskConfig{
			MaxTradesPerDay:      20,
			MaxDailyLoss:         50,
			MaxDailyProfit:       200,
			MaxConsecutiveLosses: 3,
		},
		Trading: TradingConfig{
			LotSize:           0.01,
			StopLossPercent:   1.0,
			TakeProfitPercent: 2.0,
			MaxPairsPerSignal: 5,
			MaxPerCurrency:    0,
		},
		Feed: FeedConfig{
			Brokers: []string{"localhost:9092"},
			Topic:   "news",
			GroupID: "newsfx",
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
		},
		Backtest: BacktestConfig{
			NumSignals:     100,
			PairsPerSignal: 3,
		},
		Prices: []QuoteConfig{
			{Pair: "EURUSD", Bid: 1.0849, Ask: 1.0851},
			{Pair: "GBPUSD", Bid: 1.2649, Ask: 1.2651},
			{Pair: "USDJPY", Bid: 150.49, Ask: 150.51},
		},
	}
}
