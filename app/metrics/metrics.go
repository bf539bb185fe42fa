package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Cycle outcomes used as the "outcome" label.
const (
	OutcomeUnchanged      = "unchanged"
	OutcomeProcessed      = "processed"
	OutcomeStatusError    = "status_error"
	OutcomeTransportError = "transport_error"
	OutcomeParseError     = "parse_error"
	OutcomeFailed         = "failed"
)

type Metrics struct {
	Registry *prometheus.Registry

	Cycles        *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	Filtered      *prometheus.CounterVec
	LedgerSize    *prometheus.GaugeVec
	CycleDuration *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		Cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "status_watch",
			Name:      "poll_cycles_total",
			Help:      "Poll cycles by outcome.",
		}, []string{"feed", "outcome"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "status_watch",
			Name:      "notifications_total",
			Help:      "Notifications emitted for newly observed entries.",
		}, []string{"feed"}),
		Filtered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "status_watch",
			Name:      "entries_filtered_total",
			Help:      "New entries recorded but suppressed by filters.",
		}, []string{"feed"}),
		LedgerSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "status_watch",
			Name:      "ledger_size",
			Help:      "Entry identities currently held by the dedup ledger.",
		}, []string{"feed"}),
		CycleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "status_watch",
			Name:      "poll_cycle_duration_seconds",
			Help:      "Wall time of one poll cycle.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"feed"}),
	}

	registry.MustRegister(
		m.Cycles,
		m.Notifications,
		m.Filtered,
		m.LedgerSize,
		m.CycleDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}
