package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Schedule load metrics
	ScheduleLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_loads_total",
			Help: "Total number of snapshot rebuilds by outcome",
		},
		[]string{"status"},
	)

	ScheduleLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedule_load_duration_seconds",
			Help:    "Time spent fetching and building a snapshot",
			Buckets: prometheus.DefBuckets,
		},
	)

	ScheduleVisitsLoaded = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "schedule_visits_loaded",
			Help: "Visits in the current snapshot",
		},
		[]string{"variant"},
	)

	ScheduleRowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_rows_skipped_total",
			Help: "Raw rows dropped by the normalizer",
		},
		[]string{"variant"},
	)

	ScheduleTravelMinutes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "schedule_travel_minutes",
			Help: "Total travel minutes of the current snapshot",
		},
		[]string{"variant"},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(method, route string, statusCode int, duration time.Duration) {
	HttpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	HttpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordLoad records the outcome of a snapshot rebuild
func RecordLoad(err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ScheduleLoadsTotal.WithLabelValues(status).Inc()
	ScheduleLoadDuration.Observe(duration.Seconds())
}

// RecordVariant records the per-variant figures of a published snapshot
func RecordVariant(variant string, visits, skipped int, travelMinutes float64) {
	ScheduleVisitsLoaded.WithLabelValues(variant).Set(float64(visits))
	ScheduleRowsSkipped.WithLabelValues(variant).Add(float64(skipped))
	ScheduleTravelMinutes.WithLabelValues(variant).Set(travelMinutes)
}
