package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Counter per cache tier ("panchang" or "tithi-search").
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits per tier.",
		},
		[]string{"tier"},
	)

	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses per tier.",
		},
		[]string{"tier"},
	)

	// Counter: invocations of the almanac computer.
	ComputationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "almanac_computations_total",
			Help: "Total number of almanac computations performed.",
		},
	)

	ComputationErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "almanac_computation_errors_total",
			Help: "Total number of failed almanac computations.",
		},
	)

	// Counter: warm jobs accepted via POST /cache-year.
	WarmJobsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "warm_jobs_total",
			Help: "Total number of year-warming jobs enqueued.",
		},
	)

	// Histogram: HTTP latency in seconds.
	RequestLatencySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_latency_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"path", "method", "status_code"},
	)
)

// Register is called once in main() to register metrics.
func Register() {
	prometheus.MustRegister(
		CacheHitsTotal,
		CacheMissesTotal,
		ComputationsTotal,
		ComputationErrorsTotal,
		WarmJobsTotal,
		RequestLatencySeconds,
	)
}

// Handler exposes the /metrics endpoint for Prometheus to scrape.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware measures latency for each HTTP request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// capture status code
		rec := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rec, r)

		duration := time.Since(start).Seconds()

		RequestLatencySeconds.
			WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(rec.statusCode)).
			Observe(duration)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}
