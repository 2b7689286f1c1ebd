package middleware

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/knownissues-api/internal/api/shared"
	"github.com/phrazzld/knownissues-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID and a request-scoped logger to the request context.
// An incoming X-Trace-ID header is reused when it holds a valid UUID.
// This middleware should be applied early in the middleware chain to ensure
// that all subsequent handlers have access to the trace ID.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(shared.TraceIDHeader)
			if _, err := uuid.Parse(traceID); err != nil {
				traceID = shared.NewTraceID()
			}

			log := base.With(slog.String("trace_id", traceID))
			ctx := shared.WithTraceID(r.Context(), traceID)
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
