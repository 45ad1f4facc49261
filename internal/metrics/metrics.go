package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petstory_orders_total",
			Help: "Orders by terminal state",
		},
		[]string{"state", "degraded"},
	)

	ArtGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petstory_art_generations_total",
			Help: "Per-photo art generation attempts by outcome",
		},
		[]string{"outcome"},
	)

	PaymentTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petstory_payment_transitions_total",
			Help: "Payment records moved to a new status",
		},
		[]string{"status"},
	)

	LedgerSweepRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petstory_ledger_sweep_records_total",
			Help: "Payment records expired or purged by the sweeper",
		},
		[]string{"kind"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "petstory_stage_duration_seconds",
			Help:    "Time spent in each pipeline stage",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 14),
		},
		[]string{"stage"},
	)

	registerOnce sync.Once
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			OrdersTotal,
			ArtGenerationsTotal,
			PaymentTransitionsTotal,
			LedgerSweepRecordsTotal,
			StageDuration,
		)
	})
}
