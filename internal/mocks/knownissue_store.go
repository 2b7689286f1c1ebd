package mocks

import (
	"context"

	"github.com/phrazzld/knownissues-api/internal/domain"
	"github.com/phrazzld/knownissues-api/internal/store"
)

// MockKnownIssueStore is a function-field mock of store.KnownIssueStore.
// Unset functions return zero values, and every call is counted.
type MockKnownIssueStore struct {
	CreateFn  func(ctx context.Context, issue *domain.KnownIssue) error
	ListAllFn func(ctx context.Context) ([]*domain.KnownIssue, error)
	ExistsFn  func(ctx context.Context, id int64) (bool, error)
	DeleteFn  func(ctx context.Context, id int64) (bool, error)

	CreateCalls  int
	ListAllCalls int
	ExistsCalls  int
	DeleteCalls  int
}

var _ store.KnownIssueStore = (*MockKnownIssueStore)(nil)

// Create implements store.KnownIssueStore.
func (m *MockKnownIssueStore) Create(ctx context.Context, issue *domain.KnownIssue) error {
	m.CreateCalls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, issue)
	}
	return nil
}

// ListAll implements store.KnownIssueStore.
func (m *MockKnownIssueStore) ListAll(ctx context.Context) ([]*domain.KnownIssue, error) {
	m.ListAllCalls++
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return []*domain.KnownIssue{}, nil
}

// Exists implements store.KnownIssueStore.
func (m *MockKnownIssueStore) Exists(ctx context.Context, id int64) (bool, error) {
	m.ExistsCalls++
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}
	return false, nil
}

// Delete implements store.KnownIssueStore.
func (m *MockKnownIssueStore) Delete(ctx context.Context, id int64) (bool, error) {
	m.DeleteCalls++
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return false, nil
}
