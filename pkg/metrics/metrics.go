// Package metrics provides Prometheus instrumentation for the storefront.
//
// It pre-defines the HTTP metrics plus counters for the cart and checkout
// paths. Wire once at boot:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lumina",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lumina",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// CartOperations counts cart mutations by operation.
	CartOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Subsystem: "cart",
			Name:      "operations_total",
			Help:      "Total cart mutations.",
		},
		[]string{"operation"}, // "increase" | "decrease" | "set" | "delete" | "clear"
	)

	// CartRepairs counts cookie payloads that could not be used verbatim.
	CartRepairs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Subsystem: "cart",
			Name:      "cookie_repairs_total",
			Help:      "Cart cookies repaired or reset on load.",
		},
		[]string{"kind"}, // "padded" | "reset"
	)

	// Checkouts counts checkout attempts by terminal outcome.
	Checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Subsystem: "checkout",
			Name:      "outcomes_total",
			Help:      "Checkout attempts by terminal outcome.",
		},
		[]string{"outcome"}, // "success" | "failure" | "cancelled"
	)

	// OrderTotal observes captured order totals.
	OrderTotal = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lumina",
		Subsystem: "checkout",
		Name:      "order_total",
		Help:      "Captured order totals in the configured currency.",
		Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000},
	})
)

// DefaultRegistry is the Prometheus registry used by the service.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		CartOperations,
		CartRepairs,
		Checkouts,
		OrderTotal,
	)
}

// Register lets you add your own prometheus.Collector to the registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// responseRecorder wraps http.ResponseWriter to capture the status code.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records duration, total and in-flight metrics for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rr.status)

			RequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler returns an http.HandlerFunc that exposes the Prometheus metrics page.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}
