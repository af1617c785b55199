// Package metrics provides the centralized Prometheus metrics registry for
// the tracker.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	TradesRecordedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_tracker",
		Name:      "trades_recorded_total",
		Help:      "Total number of trades recorded by account and outcome",
	}, []string{"account", "outcome"})
	DailyEntriesRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "prop_tracker",
		Name:      "daily_entries_recorded_total",
		Help:      "Total number of daily performance entries recorded",
	})
	SnapshotsSavedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_tracker",
		Name:      "snapshots_saved_total",
		Help:      "Total number of state snapshots saved by status",
	}, []string{"status"})
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_tracker",
		Name:      "api_requests_total",
		Help:      "Total number of API requests by path and status code",
	}, []string{"path", "status"})
)

// Gauge metrics
var (
	AccountBalance = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "prop_tracker",
		Name:      "account_balance",
		Help:      "Current balance for each account",
	}, []string{"account"})
	CurrentDrawdown = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "prop_tracker",
		Name:      "current_drawdown",
		Help:      "Current drawdown in currency units for each account",
	}, []string{"account"})
	JournalSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_tracker",
		Name:      "journal_size",
		Help:      "Number of trades in the journal",
	})
)

// Histogram metrics
var (
	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "prop_tracker",
		Name:      "api_request_duration_seconds",
		Help:      "Duration of API request handling in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path"})
	SnapshotDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prop_tracker",
		Name:      "snapshot_duration_seconds",
		Help:      "Duration of state snapshot saves in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(TradesRecordedTotal)
		registry.MustRegister(DailyEntriesRecordedTotal)
		registry.MustRegister(SnapshotsSavedTotal)
		registry.MustRegister(APIRequestsTotal)

		registry.MustRegister(AccountBalance)
		registry.MustRegister(CurrentDrawdown)
		registry.MustRegister(JournalSize)

		registry.MustRegister(APIRequestDuration)
		registry.MustRegister(SnapshotDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordTrade records a trade journal entry.
func RecordTrade(account, outcome string) {
	TradesRecordedTotal.WithLabelValues(account, outcome).Inc()
}

// RecordDailyEntry records a daily performance entry.
func RecordDailyEntry() {
	DailyEntriesRecordedTotal.Inc()
}

// RecordSnapshot records a state snapshot save.
func RecordSnapshot(status string, durationSeconds float64) {
	SnapshotsSavedTotal.WithLabelValues(status).Inc()
	SnapshotDuration.Observe(durationSeconds)
}

// RecordAPIRequest records one handled API request.
func RecordAPIRequest(path, status string, durationSeconds float64) {
	APIRequestsTotal.WithLabelValues(path, status).Inc()
	APIRequestDuration.WithLabelValues(path).Observe(durationSeconds)
}

// UpdateAccountBalance updates the balance gauge for an account.
func UpdateAccountBalance(account string, balance float64) {
	AccountBalance.WithLabelValues(account).Set(balance)
}

// UpdateCurrentDrawdown updates the drawdown gauge for an account.
func UpdateCurrentDrawdown(account string, drawdown float64) {
	CurrentDrawdown.WithLabelValues(account).Set(drawdown)
}

// UpdateJournalSize updates the journal size gauge.
func UpdateJournalSize(count int) {
	JournalSize.Set(float64(count))
}
