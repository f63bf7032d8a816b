package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the standings sync worker

var (
	// API call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "standings_api_calls_total",
			Help: "Total number of tabular service API calls",
		},
		[]string{"table", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "standings_api_call_duration_seconds",
			Help:    "Duration of tabular service API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table"},
	)

	RecordsFetched = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "standings_records_fetched",
			Help: "Number of records fetched per table in the last run",
		},
		[]string{"table"},
	)

	// Run metrics
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "standings_runs_total",
			Help: "Total number of sync runs",
		},
		[]string{"status"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "standings_run_duration_seconds",
			Help:    "Duration of sync runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120},
		},
	)

	StandingsRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "standings_rows_emitted",
			Help: "Number of ranking rows emitted per bracket in the last run",
		},
		[]string{"bracket"},
	)

	LastSuccessfulRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "standings_last_successful_run_timestamp",
			Help: "Timestamp of the last successful sync run",
		},
	)
)

// RecordAPICall records an API call metric
func RecordAPICall(table, status string, duration float64) {
	APICallsTotal.WithLabelValues(table, status).Inc()
	APICallDuration.WithLabelValues(table).Observe(duration)
}

// RecordFetch records the record count for a fetched table
func RecordFetch(table string, count int) {
	RecordsFetched.WithLabelValues(table).Set(float64(count))
}

// RecordRun records a sync run outcome
func RecordRun(status string, duration float64) {
	RunsTotal.WithLabelValues(status).Inc()
	RunDuration.Observe(duration)

	if status == "success" {
		LastSuccessfulRun.SetToCurrentTime()
	}
}

// RecordStandings records the emitted row count for a bracket
func RecordStandings(bracket string, rows int) {
	StandingsRows.WithLabelValues(bracket).Set(float64(rows))
}
