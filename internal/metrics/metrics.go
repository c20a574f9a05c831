// Package metrics exposes Prometheus collectors for the ledger service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsActive counts live ledger sessions across all users.
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "splitledger_sessions_active",
		Help: "Number of active ledger sessions.",
	})

	// SubscriptionsActive counts open notification subscriptions.
	SubscriptionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "splitledger_subscriptions_active",
		Help: "Number of open change-notification subscriptions.",
	})

	// RecomputesTotal counts balance recomputations by outcome.
	RecomputesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splitledger_recomputes_total",
		Help: "Balance recomputations, by outcome.",
	}, []string{"outcome"})

	// RequestDuration observes HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splitledger_http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
