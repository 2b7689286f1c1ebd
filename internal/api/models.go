package api

import (
	"time"

	"github.com/phrazzld/knownissues-api/internal/domain"
)

// CreateKnownIssueRequest defines the payload for POST /known-issues.
type CreateKnownIssueRequest struct {
	Regex string `json:"regex" validate:"required"`
}

// KnownIssueResponse is the JSON representation of a stored known issue.
type KnownIssueResponse struct {
	ID           int64     `json:"id"`
	RegexPattern string    `json:"regex_pattern"`
	CreatedAt    time.Time `json:"created_at"`
}

// knownIssueToResponse converts a domain.KnownIssue to a KnownIssueResponse
func knownIssueToResponse(issue *domain.KnownIssue) KnownIssueResponse {
	return KnownIssueResponse{
		ID:           issue.ID,
		RegexPattern: issue.RegexPattern,
		CreatedAt:    issue.CreatedAt,
	}
}

// knownIssuesToResponse converts issues, returning an empty (never nil) slice.
func knownIssuesToResponse(issues []*domain.KnownIssue) []KnownIssueResponse {
	out := make([]KnownIssueResponse, 0, len(issues))
	for _, issue := range issues {
		out = append(out, knownIssueToResponse(issue))
	}
	return out
}
