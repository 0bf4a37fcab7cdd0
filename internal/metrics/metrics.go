// Package metrics exposes Prometheus collectors for the balance and price
// fetching paths.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BalanceFetchTotal counts chain balance reads by chain and outcome.
	// Failed reads resolve to a zero balance, so "failure" here means the
	// upstream call failed, not that the request errored out.
	BalanceFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xrpvault",
		Name:      "balance_fetch_total",
		Help:      "Number of chain balance fetches by chain and outcome.",
	}, []string{"chain", "outcome"})

	// BalanceFetchDuration observes chain balance read latency.
	BalanceFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "xrpvault",
		Name:      "balance_fetch_duration_seconds",
		Help:      "Latency of chain balance fetches.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"chain"})

	// PriceRefreshTotal counts price snapshot refreshes by outcome.
	PriceRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xrpvault",
		Name:      "price_refresh_total",
		Help:      "Number of price snapshot refreshes by outcome.",
	}, []string{"outcome"})

	// TelegramSendTotal counts outbound Telegram API calls by outcome.
	TelegramSendTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xrpvault",
		Name:      "telegram_send_total",
		Help:      "Number of outbound Telegram bot messages by outcome.",
	}, []string{"outcome"})
)
