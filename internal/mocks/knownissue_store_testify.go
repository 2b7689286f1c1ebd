package mocks

import (
	"context"

	"github.com/phrazzld/knownissues-api/internal/domain"
	"github.com/phrazzld/knownissues-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockKnownIssueStore is a mock of store.KnownIssueStore for use with testify/mock
type TestifyMockKnownIssueStore struct {
	mock.Mock
}

var _ store.KnownIssueStore = (*TestifyMockKnownIssueStore)(nil)

// Create is a mock implementation of store.KnownIssueStore.Create
func (m *TestifyMockKnownIssueStore) Create(ctx context.Context, issue *domain.KnownIssue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

// ListAll is a mock implementation of store.KnownIssueStore.ListAll
func (m *TestifyMockKnownIssueStore) ListAll(ctx context.Context) ([]*domain.KnownIssue, error) {
	args := m.Called(ctx)
	if issues, ok := args.Get(0).([]*domain.KnownIssue); ok {
		return issues, args.Error(1)
	}
	return nil, args.Error(1)
}

// Exists is a mock implementation of store.KnownIssueStore.Exists
func (m *TestifyMockKnownIssueStore) Exists(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Delete is a mock implementation of store.KnownIssueStore.Delete
func (m *TestifyMockKnownIssueStore) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
