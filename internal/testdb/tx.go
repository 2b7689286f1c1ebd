package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
)

// TestTimeout bounds setup work such as opening and migrating a database.
const TestTimeout = 30 * time.Second

// WithTx runs the provided function within a database transaction.
// The transaction is automatically rolled back after the function completes,
// ensuring test isolation.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	defer AssertRollbackNoError(t, tx)

	fn(t, tx)
}

// AssertRollbackNoError rolls back tx, tolerating a transaction that was
// already committed or rolled back.
func AssertRollbackNoError(t *testing.T, tx *sql.Tx) {
	t.Helper()

	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		t.Errorf("Failed to rollback transaction: %v", err)
	}
}

// CleanupDB closes db, reporting a failure through t.
func CleanupDB(t *testing.T, db *sql.DB) {
	t.Helper()

	if err := db.Close(); err != nil {
		t.Errorf("Failed to close database connection: %v", err)
	}
}
