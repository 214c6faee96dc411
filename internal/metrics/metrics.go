// Package metrics exposes Prometheus instrumentation for the exchange
// client and its jobs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Exchange API metrics
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betctl_api_calls_total",
			Help: "Total number of exchange API calls",
		},
		[]string{"method", "status"}, // SportsAPING/..., success/error
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "betctl_api_call_duration_seconds",
			Help:    "Duration of exchange API calls",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method"},
	)

	// Order metrics
	OrderReports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betctl_order_reports_total",
			Help: "Total number of order execution reports by outcome",
		},
		[]string{"op", "status"}, // place/cancel, SUCCESS/FAILURE/...
	)

	BudgetRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "betctl_tx_budget_remaining",
			Help: "Charged transactions left in the current window",
		},
	)

	// Session metrics
	SessionRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betctl_session_refreshes_total",
			Help: "Total number of keep-alive and login attempts",
		},
		[]string{"status"}, // success/error
	)

	// Catalogue cache metrics
	CatalogueLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betctl_catalogue_lookups_total",
			Help: "Total number of catalogue cache lookups",
		},
		[]string{"status"}, // hit/miss/error
	)

	// Settlement metrics
	SettlementsStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "betctl_settlements_stored_total",
			Help: "Total number of cleared bets upserted into the store",
		},
	)

	SettlementsArchived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "betctl_settlements_archived_total",
			Help: "Total number of cleared bets written to cold storage",
		},
	)

	// Notification metrics
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betctl_notifications_sent_total",
			Help: "Total number of notifications sent",
		},
		[]string{"channel", "status"}, // discord/telegram, success/error
	)
)

// RecordAPICall records one completed exchange call.
func RecordAPICall(method string, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	APICalls.WithLabelValues(method, status).Inc()
	APICallDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// RecordOrderReport records the outcome of one place or cancel request.
func RecordOrderReport(op, status string) {
	OrderReports.WithLabelValues(op, status).Inc()
}

// RecordBudgetRemaining records the current unspent transaction allowance.
func RecordBudgetRemaining(remaining int) {
	BudgetRemaining.Set(float64(remaining))
}

// RecordSessionRefresh records a keep-alive or login attempt.
func RecordSessionRefresh(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SessionRefreshes.WithLabelValues(status).Inc()
}

// RecordCatalogueLookup records one cache lookup outcome.
func RecordCatalogueLookup(hit bool, err error) {
	switch {
	case err != nil:
		CatalogueLookups.WithLabelValues("error").Inc()
	case hit:
		CatalogueLookups.WithLabelValues("hit").Inc()
	default:
		CatalogueLookups.WithLabelValues("miss").Inc()
	}
}

// RecordSettlementsStored adds to the stored settlement count.
func RecordSettlementsStored(n int64) {
	SettlementsStored.Add(float64(n))
}

// RecordSettlementsArchived adds to the archived settlement count.
func RecordSettlementsArchived(n int64) {
	SettlementsArchived.Add(float64(n))
}

// RecordNotification records one notification delivery attempt.
func RecordNotification(channel string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	NotificationsSent.WithLabelValues(channel, status).Inc()
}
