package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// APIRequestsTotal counts HTTP requests by method, route and status.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meridian_api_requests_total",
		Help: "Total HTTP API requests.",
	}, []string{"method", "endpoint", "status"})

	// APIRequestDuration observes HTTP request latency.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "meridian_api_request_duration_seconds",
		Help:    "HTTP API request duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	// APIActiveConnections gauges in-flight HTTP requests.
	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "meridian_api_active_connections",
		Help: "In-flight HTTP API requests.",
	})

	// ScheduleBuildDuration observes policy pipeline runtime per policy.
	ScheduleBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "meridian_schedule_build_duration_seconds",
		Help:    "Time spent building a schedule, per policy.",
		Buckets: prometheus.DefBuckets,
	}, []string{"policy"})

	// ScheduleBlocksTotal counts blocks committed to schedules per policy.
	ScheduleBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meridian_schedule_blocks_total",
		Help: "Blocks committed to schedules, per policy.",
	}, []string{"policy"})
)

// Handler exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
