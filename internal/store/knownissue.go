package store

import (
	"context"

	"github.com/phrazzld/knownissues-api/internal/domain"
)

// KnownIssueStore defines the interface for known issue persistence.
// Identity and creation time are assigned by the backing medium, so
// implementations must not trust values set on the struct before Create.
type KnownIssueStore interface {
	// Create inserts issue and populates its ID and CreatedAt from the
	// stored row. Returns domain validation errors if the pattern is empty
	// and an error matching ErrStorageFailure if the write is rejected.
	Create(ctx context.Context, issue *domain.KnownIssue) error

	// ListAll returns every known issue ordered by ID (insertion order).
	// An empty store yields an empty, non-nil slice.
	ListAll(ctx context.Context) ([]*domain.KnownIssue, error)

	// Exists reports whether a known issue with id is currently stored.
	Exists(ctx context.Context, id int64) (bool, error)

	// Delete removes the known issue with id and reports whether a row was
	// removed. Deleting an absent id is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
}
