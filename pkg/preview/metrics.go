package preview

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	renderErrors *prometheus.CounterVec
	submissions  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formhtml",
			Subsystem: "preview",
			Name:      "requests_total",
			Help:      "HTTP requests served by the preview server.",
		}, []string{"route", "method", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "formhtml",
			Subsystem: "preview",
			Name:      "request_duration_seconds",
			Help:      "Time spent serving preview requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		renderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formhtml",
			Subsystem: "preview",
			Name:      "render_errors_total",
			Help:      "Form definitions that failed to render.",
		}, []string{"form"}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "formhtml",
			Subsystem: "preview",
			Name:      "submissions_total",
			Help:      "Form posts decoded by the preview server.",
		}, []string{"form"}),
	}
}

// instrument records request counts and latency per route pattern.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
