// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	KnownIssuesCreated prometheus.Counter
	KnownIssuesDeleted prometheus.Counter
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
}

// New creates all metrics on a dedicated registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		KnownIssuesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "knownissues_created_total",
			Help: "Total number of known issues created",
		}),
		KnownIssuesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "knownissues_deleted_total",
			Help: "Total number of known issues deleted",
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "route"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// IncrementKnownIssuesCreated records a successful create.
func (m *Metrics) IncrementKnownIssuesCreated() {
	if m == nil {
		return
	}
	m.KnownIssuesCreated.Inc()
}

// IncrementKnownIssuesDeleted records a successful delete.
func (m *Metrics) IncrementKnownIssuesDeleted() {
	if m == nil {
		return
	}
	m.KnownIssuesDeleted.Inc()
}

// ObserveRequest records one finished HTTP request.
// Call with time.Now() taken before the request was handled.
func (m *Metrics) ObserveRequest(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
