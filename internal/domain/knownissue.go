package domain

import "time"

// KnownIssue is a stored regular-expression pattern describing a recognized
// problem signature.
//
// ID and CreatedAt are assigned by the store. A zero ID means the issue has
// not been persisted yet.
type KnownIssue struct {
	ID           int64     `json:"id"`
	RegexPattern string    `json:"regex_pattern"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewKnownIssue creates an unsaved KnownIssue for pattern.
// Returns ErrEmptyRegexPattern if pattern is empty.
func NewKnownIssue(pattern string) (*KnownIssue, error) {
	issue := &KnownIssue{RegexPattern: pattern}
	if err := issue.Validate(); err != nil {
		return nil, err
	}
	return issue, nil
}

// Validate checks if the KnownIssue has valid data.
// The pattern is stored verbatim and is never compiled.
func (k *KnownIssue) Validate() error {
	if k.RegexPattern == "" {
		return ErrEmptyRegexPattern
	}
	return nil
}

