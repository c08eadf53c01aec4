package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ProcessedEvents = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "search_sync_processed_total", Help: "Total processed outbox events"},
	)
	FailedEvents = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "search_sync_failed_total", Help: "Total failed outbox events"},
	)
	DLQEvents = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "search_sync_dlq_total", Help: "Total events inserted into DLQ"},
	)
	VotesToggled = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "votes_toggled_total", Help: "Total project vote toggles"},
	)
	HonorsAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "honors_awarded_total", Help: "Total peer honors awarded"},
	)
	BountiesAwarded = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bounties_awarded_total", Help: "Total bounties awarded to a winner"},
	)
	ReconcileDrift = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "reconcile_drift_total", Help: "Total counter drift repaired by reconciliation"},
	)
)

func Register() {
	prometheus.MustRegister(
		ProcessedEvents, FailedEvents, DLQEvents,
		VotesToggled, HonorsAwarded, BountiesAwarded, ReconcileDrift,
	)
}
