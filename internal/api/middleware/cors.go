package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/phrazzld/knownissues-api/internal/api/shared"
)

// CORS allows browser clients from origins to call the API.
// The wildcard origin "*" admits every origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{shared.TraceIDHeader},
		MaxAge:         300,
	})
}
