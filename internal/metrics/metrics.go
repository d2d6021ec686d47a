package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP collects request metrics for the documentation server.
type HTTP struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTP registers the collectors on a fresh registry.
func NewHTTP() *HTTP {
	m := &HTTP{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "apidocs",
			Name:      "http_requests_total",
			Help:      "Documentation requests by route, document and status code.",
		}, []string{"route", "document", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "apidocs",
			Name:      "http_request_duration_seconds",
			Help:      "Documentation request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	m.registry.MustRegister(m.requests, m.duration)
	return m
}

// unknownDocument labels requests that did not resolve to a served document,
// so client-chosen names cannot create series.
const unknownDocument = "unknown"

// Middleware records every request once chi has resolved its route. The
// document label is only taken from successful responses.
func (m *HTTP) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		document := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
			document = rctx.URLParam("documentName")
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		if document != "" && (status < 200 || status > 299) {
			document = unknownDocument
		}
		m.requests.WithLabelValues(route, document, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the collected metrics.
func (m *HTTP) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *HTTP) Registry() *prometheus.Registry {
	return m.registry
}
