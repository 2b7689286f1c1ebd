package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/knownissues-api/internal/api"
	apiMiddleware "github.com/phrazzld/knownissues-api/internal/api/middleware"
)

// healthPingTimeout bounds the database ping behind /health.
const healthPingTimeout = 2 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.CORS(app.config.CORS.AllowedOrigins))
	if app.metrics != nil {
		r.Use(apiMiddleware.Metrics(app.metrics))
	}
	r.Use(middleware.StripSlashes)

	knownIssueHandler := api.NewKnownIssueHandler(app.knownIssueStore, app.metrics, app.logger)

	r.Get("/known-issues", knownIssueHandler.List)
	r.Post("/known-issues", knownIssueHandler.Create)
	r.Delete("/known-issues/{id}", knownIssueHandler.Delete)

	r.Get("/health", app.handleHealth)

	if app.metrics != nil {
		r.Method(http.MethodGet, "/metrics", app.metrics.Handler())
	}

	return r
}

// handleHealth reports 200 when the database answers a ping, 503 otherwise.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	status, body := http.StatusOK, "OK"
	if err := app.db.PingContext(ctx); err != nil {
		app.logger.Warn("Health check failed", "error", err)
		status, body = http.StatusServiceUnavailable, "Database unavailable"
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
