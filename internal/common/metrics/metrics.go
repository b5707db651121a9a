// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
)

var (
	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of form submit attempts by outcome",
		},
		[]string{"outcome"},
	)

	FormRuleViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_rule_violations_total",
			Help: "Total number of failing rules reported on submit",
		},
		[]string{"field", "kind"},
	)

	SessionEventsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_session_events_total",
			Help: "Total number of events applied to form sessions",
		},
		[]string{"type", "status"},
	)

	SessionApplyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "form_session_apply_duration_seconds",
			Help:    "Duration of load-apply-save cycles in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"store"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "form_sessions_active",
			Help: "Number of sessions started and not yet closed by this process",
		},
	)
)
