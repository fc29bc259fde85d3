package observability

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Inquiry pipeline metrics
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_submissions_total",
			Help: "Total number of form submissions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	deliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_email_deliveries_total",
			Help: "Total number of email send attempts by role, provider and status",
		},
		[]string{"role", "provider", "status"},
	)

	dispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inquiry_dispatch_duration_seconds",
			Help:    "Time spent sending both notification emails of a submission",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"kind"},
	)

	// Content proxy metrics
	contentRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_requests_total",
			Help: "Total number of content section lookups by cache result",
		},
		[]string{"section", "result"},
	)

	// Database metrics
	dbConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	dbConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// Submission outcomes.
const (
	OutcomeAccepted      = "accepted"
	OutcomeInvalid       = "invalid"
	OutcomePartialNotify = "partial_notify"
	OutcomeFailed        = "failed"
)

func RecordSubmission(kind, outcome string) {
	submissionsTotal.WithLabelValues(kind, outcome).Inc()
}

func RecordDelivery(role, provider, status string) {
	if provider == "" {
		provider = "unknown"
	}
	deliveriesTotal.WithLabelValues(role, provider, status).Inc()
}

func ObserveDispatch(kind string, d time.Duration) {
	dispatchDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// RecordContentLookup counts a content section lookup; result is hit, miss or error.
func RecordContentLookup(section, result string) {
	contentRequestsTotal.WithLabelValues(section, result).Inc()
}

// UpdateDBStats copies connection pool stats into the gauges.
func UpdateDBStats(stats sql.DBStats) {
	dbConnectionsActive.Set(float64(stats.InUse))
	dbConnectionsIdle.Set(float64(stats.Idle))
}
