package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TextsScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsfx_texts_scored_total",
			Help: "Total number of texts run through the sentiment scorer (by signal).",
		},
		[]string{"signal"},
	)

	IntentsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsfx_intents_emitted_total",
			Help: "Total number of order intents emitted by the pipeline (by pair).",
		},
		[]string{"pair"},
	)

	IntentsBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsfx_intents_blocked_total",
			Help: "Total number of intents blocked by the risk governor (by reason).",
		},
		[]string{"reason"},
	)

	TradesClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "newsfx_trades_closed_total",
			Help: "Total number of trades closed.",
		},
	)

	DailyPnL = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsfx_daily_pnl",
			Help: "Realized profit and loss for the current trading day.",
		},
	)
)

func init() {
	prometheus.MustRegister(TextsScored, IntentsEmitted, IntentsBlocked, TradesClosed, DailyPnL)
}
