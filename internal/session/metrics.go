package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	sessionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "depgame_sessions_created_total",
			Help: "Number of game sessions created.",
		},
	)
	sessionSelectTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "depgame_session_select_total",
			Help: "Number of select attempts by outcome.",
		},
		[]string{"outcome"},
	)
	sessionValidityChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "depgame_session_validity_checks_total",
			Help: "Number of full validity checks by result.",
		},
		[]string{"valid"},
	)

	enumerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "depgame_enumeration_duration_seconds",
			Help:    "Time taken to enumerate solutions.",
			Buckets: prometheus.DefBuckets,
		},
	)
	enumerationCandidatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "depgame_enumeration_candidates_examined_total",
			Help: "Total number of candidate selections examined by the solution search.",
		},
	)
	enumerationSolutionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "depgame_enumeration_solutions_found_total",
			Help: "Total number of solutions returned by the solution search.",
		},
	)
)

func init() {
	metrics.Registry.MustRegister(
		sessionsCreatedTotal,
		sessionSelectTotal,
		sessionValidityChecksTotal,
		enumerationDuration,
		enumerationCandidatesTotal,
		enumerationSolutionsTotal,
	)
}
