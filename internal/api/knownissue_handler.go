package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/knownissues-api/internal/api/shared"
	"github.com/phrazzld/knownissues-api/internal/domain"
	"github.com/phrazzld/knownissues-api/internal/platform/logger"
	"github.com/phrazzld/knownissues-api/internal/platform/metrics"
	"github.com/phrazzld/knownissues-api/internal/store"
)

// KnownIssueHandler handles known-issue HTTP requests
type KnownIssueHandler struct {
	store   store.KnownIssueStore
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewKnownIssueHandler creates a new KnownIssueHandler.
// m may be nil, in which case nothing is recorded.
func NewKnownIssueHandler(
	knownIssueStore store.KnownIssueStore,
	m *metrics.Metrics,
	logger *slog.Logger,
) *KnownIssueHandler {
	if knownIssueStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("knownIssueStore cannot be nil for KnownIssueHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &KnownIssueHandler{
		store:   knownIssueStore,
		metrics: m,
		logger:  logger.With(slog.String("component", "known_issue_handler")),
	}
}

// List handles GET /known-issues requests.
// It responds with every known issue in insertion order.
func (h *KnownIssueHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	issues, err := h.store.ListAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list known issues")
		return
	}

	log.Debug("listed known issues", slog.Int("count", len(issues)))
	shared.RespondWithJSON(w, r, http.StatusOK, knownIssuesToResponse(issues))
}

// Create handles POST /known-issues requests
func (h *KnownIssueHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateKnownIssueRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		// A regex that is present but not a string is reported like a missing one.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "regex" {
			err = domain.NewValidationError("regex", "must be a string", domain.ErrEmptyRegexPattern)
			HandleAPIError(w, r, err, msgRegexRequired)
			return
		}
		HandleAPIError(w, r, fmt.Errorf("%w: %v", domain.ErrValidation, err), msgInvalidRequestFormat)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: %v", domain.ErrEmptyRegexPattern, err), msgRegexRequired)
		return
	}

	issue, err := domain.NewKnownIssue(req.Regex)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.store.Create(r.Context(), issue); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.metrics.IncrementKnownIssuesCreated()
	log.Info("known issue created", slog.Int64("known_issue_id", issue.ID))

	shared.RespondWithJSON(w, r, http.StatusCreated, knownIssueToResponse(issue))
}

// Delete handles DELETE /known-issues/{id} requests.
// It responds 200 with an empty body, or 404 when the id does not exist.
func (h *KnownIssueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		log.Debug("invalid known issue id", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	exists, err := h.store.Exists(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if !exists {
		HandleAPIError(w, r, fmt.Errorf("%w: id %d", store.ErrKnownIssueNotFound, id), "")
		return
	}

	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if !deleted {
		// removed by a concurrent request between Exists and Delete
		HandleAPIError(w, r, fmt.Errorf("%w: id %d", store.ErrKnownIssueNotFound, id), "")
		return
	}

	h.metrics.IncrementKnownIssuesDeleted()
	log.Info("known issue deleted", slog.Int64("known_issue_id", id))

	shared.RespondWithStatus(w, http.StatusOK)
}
