package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adops_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "adops_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	analyticsRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "adops_analytics_runs_total",
		Help: "Analytics pipeline runs by requested range.",
	}, []string{"range"})

	analyticsRecordsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "adops_analytics_records_ingested_total",
		Help: "Daily performance records accepted by the ingest endpoint.",
	})
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveAnalyticsRun records one pipeline execution.
func ObserveAnalyticsRun(timeRange string) {
	analyticsRunsTotal.WithLabelValues(timeRange).Inc()
}

// AddIngestedRecords records accepted ingest rows.
func AddIngestedRecords(n int) {
	analyticsRecordsIngested.Add(float64(n))
}
