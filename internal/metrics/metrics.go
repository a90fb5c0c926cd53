package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeNoop    = "noop"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_active_sessions",
			Help: "Browser sessions currently held in memory.",
		},
	)

	SessionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_session_transitions_total",
			Help: "Identity transitions applied by session managers.",
		},
		[]string{"transition", "outcome"},
	)

	CartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Cart mutations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	CartMerges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_merges_total",
			Help: "Guest to authenticated cart merges by outcome.",
		},
		[]string{"outcome"},
	)

	FavoriteToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_favorite_toggles_total",
			Help: "Favorite toggles by result.",
		},
		[]string{"result"},
	)

	FanOutUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_fanout_updates_total",
			Help: "Per-user denormalized snapshot updates after an artwork change.",
		},
		[]string{"list", "outcome"},
	)

	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_requests_total",
			Help: "Requests to the external artwork catalog.",
		},
		[]string{"endpoint", "outcome"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_events_published_total",
			Help: "Domain events handed to the event publisher.",
		},
		[]string{"type", "outcome"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

// Outcome maps an error to the outcome label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}

	return OutcomeSuccess
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Router is satisfied by *http.ServeMux.
type Router interface {
	Handler(r *http.Request) (http.Handler, string)
}

// Middleware labels requests with the route pattern the router would match,
// which keeps artwork ids out of the label set.
func Middleware(router Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpRequestsInFlight.Inc()

			rw := newResponseWriter(w)

			_, pathPattern := router.Handler(r)
			if pathPattern == "" {
				pathPattern = "unmatched"
			}

			defer func() {
				duration := time.Since(start)
				statusCodeStr := strconv.Itoa(rw.statusCode)

				httpRequestsTotal.WithLabelValues(statusCodeStr, r.Method, pathPattern).Inc()
				httpRequestsDuration.WithLabelValues(r.Method, pathPattern).Observe(duration.Seconds())
				httpRequestsInFlight.Dec()
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
