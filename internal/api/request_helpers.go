package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/knownissues-api/internal/domain"
)

// getPathID extracts an integer ID from the URL path parameters. Zero and
// negative values parse; they simply match no stored row.
//
// Returns a *domain.ValidationError wrapping domain.ErrInvalidID when the
// parameter is missing or not a base-10 int64.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}
