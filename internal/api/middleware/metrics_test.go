package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/knownissues-api/internal/api/middleware"
	"github.com/phrazzld/knownissues-api/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(middleware.Metrics(m))
	r.Get("/known-issues", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})
	r.Delete("/known-issues/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/known-issues", nil),
		httptest.NewRequest(http.MethodDelete, "/known-issues/1", nil),
		httptest.NewRequest(http.MethodDelete, "/known-issues/2", nil),
		httptest.NewRequest(http.MethodGet, "/nope", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/known-issues", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("DELETE", "/known-issues/{id}", "404")),
		"route pattern, not raw path, is used as label")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	handler := middleware.Metrics(nil)(okHandler())

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
