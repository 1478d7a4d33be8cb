package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_submissions_saved_total",
			Help: "Total number of submissions persisted",
		},
		[]string{"source"},
	)

	SubmissionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_submissions_failed_total",
			Help: "Total number of submissions that could not be persisted",
		},
		[]string{"source"},
	)

	ScoreMismatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_score_mismatches_total",
			Help: "Submissions whose client totals differ from the recomputed totals",
		},
	)

	AdminActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_admin_actions_total",
			Help: "Admin requests by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	AttemptsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assessment_websocket_attempts_active",
			Help: "Number of open websocket attempt connections",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assessment_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)
)
