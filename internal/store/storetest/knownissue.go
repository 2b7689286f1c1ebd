// Package storetest holds behavioural tests shared by every
// store.KnownIssueStore implementation.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/knownissues-api/internal/domain"
	"github.com/phrazzld/knownissues-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewStoreFunc returns a store backed by an empty, migrated database.
type NewStoreFunc func(t *testing.T) store.KnownIssueStore

// RunKnownIssueStoreTests exercises the full KnownIssueStore contract.
func RunKnownIssueStoreTests(t *testing.T, newStore NewStoreFunc) {
	t.Helper()

	t.Run("ListAll on empty store", func(t *testing.T) {
		s := newStore(t)

		issues, err := s.ListAll(testContext(t))
		require.NoError(t, err)
		assert.NotNil(t, issues, "empty store should yield a non-nil slice")
		assert.Empty(t, issues)
	})

	t.Run("Create assigns id and created_at", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		before := time.Now().Add(-time.Minute)
		issue := mustNewIssue(t, "foo.*bar")
		require.NoError(t, s.Create(ctx, issue))

		assert.Positive(t, issue.ID)
		assert.Equal(t, "foo.*bar", issue.RegexPattern)
		assert.False(t, issue.CreatedAt.IsZero())
		assert.True(t, issue.CreatedAt.After(before), "created_at %v should be recent", issue.CreatedAt)

		issues, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, issue.ID, issues[0].ID)
		assert.Equal(t, issue.RegexPattern, issues[0].RegexPattern)
		assert.WithinDuration(t, issue.CreatedAt, issues[0].CreatedAt, time.Millisecond)
	})

	t.Run("Create ignores caller supplied id and created_at", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		past := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
		issue := &domain.KnownIssue{ID: 999, RegexPattern: "x", CreatedAt: past}
		require.NoError(t, s.Create(ctx, issue))

		assert.NotEqual(t, int64(999), issue.ID)
		assert.True(t, issue.CreatedAt.After(past))
	})

	t.Run("Create rejects empty pattern", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		err := s.Create(ctx, &domain.KnownIssue{})
		assert.ErrorIs(t, err, domain.ErrValidation)

		issues, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, issues, "no record should be created")
	})

	t.Run("ListAll returns insertion order", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		patterns := []string{"^a", "b$", `c\d+`, "(?i)d"}
		for _, p := range patterns {
			require.NoError(t, s.Create(ctx, mustNewIssue(t, p)))
		}

		issues, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, issues, len(patterns))
		for i, p := range patterns {
			assert.Equal(t, p, issues[i].RegexPattern)
			if i > 0 {
				assert.Greater(t, issues[i].ID, issues[i-1].ID)
			}
		}
	})

	t.Run("Exists and Delete", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		issue := mustNewIssue(t, "delete-me")
		require.NoError(t, s.Create(ctx, issue))

		exists, err := s.Exists(ctx, issue.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		removed, err := s.Delete(ctx, issue.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		exists, err = s.Exists(ctx, issue.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		removed, err = s.Delete(ctx, issue.ID)
		require.NoError(t, err, "deleting an absent id is not an error")
		assert.False(t, removed)

		issues, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, issues)
	})

	t.Run("Delete of never created id leaves store unchanged", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		issue := mustNewIssue(t, "keep-me")
		require.NoError(t, s.Create(ctx, issue))

		removed, err := s.Delete(ctx, issue.ID+1000)
		require.NoError(t, err)
		assert.False(t, removed)

		exists, err := s.Exists(ctx, issue.ID+1000)
		require.NoError(t, err)
		assert.False(t, exists)

		issues, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, issues, 1)
	})

	t.Run("ids are never reused after deletion", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		first := mustNewIssue(t, "first")
		require.NoError(t, s.Create(ctx, first))
		_, err := s.Delete(ctx, first.ID)
		require.NoError(t, err)

		second := mustNewIssue(t, "second")
		require.NoError(t, s.Create(ctx, second))
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("concurrent creates get distinct ids", func(t *testing.T) {
		s := newStore(t)
		ctx := testContext(t)

		const n = 10
		ids := make(chan int64, n)
		errs := make(chan error, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				issue := &domain.KnownIssue{RegexPattern: fmt.Sprintf("pattern-%d", i)}
				if err := s.Create(ctx, issue); err != nil {
					errs <- err
					return
				}
				ids <- issue.ID
			}(i)
		}
		wg.Wait()
		close(ids)
		close(errs)

		for err := range errs {
			require.NoError(t, err)
		}
		seen := make(map[int64]bool, n)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, n)
	})

	t.Run("canceled context is a storage failure", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.ListAll(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrStorageFailure)
	})
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func mustNewIssue(t *testing.T, pattern string) *domain.KnownIssue {
	t.Helper()
	issue, err := domain.NewKnownIssue(pattern)
	require.NoError(t, err)
	return issue
}
