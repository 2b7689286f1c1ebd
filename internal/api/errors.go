package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/knownissues-api/internal/api/shared"
	"github.com/phrazzld/knownissues-api/internal/domain"
	"github.com/phrazzld/knownissues-api/internal/store"
)

// User-facing error messages.
const (
	msgRegexRequired        = "Regex is required"
	msgInvalidRequestFormat = "Invalid request format"
	msgInvalidID            = "Invalid known issue ID"
	msgNotFound             = "Known issue not found"
	msgInternal             = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation failures
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Storage failures and anything unexpected
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgInternal
	}

	switch {
	case errors.Is(err, domain.ErrEmptyRegexPattern):
		return msgRegexRequired

	case errors.Is(err, domain.ErrInvalidID):
		return msgInvalidID

	case errors.Is(err, domain.ErrValidation):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Message != "" {
			return validationErr.Error()
		}
		return "Validation error"

	case errors.Is(err, store.ErrKnownIssueNotFound):
		return msgNotFound

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	default:
		return msgInternal
	}
}

// HandleAPIError writes the error response for err. The status comes from
// MapErrorToStatusCode; defaultMsg replaces the derived message when set.
// The full error is logged, redacted, at a level chosen by status.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)

	message := defaultMsg
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
