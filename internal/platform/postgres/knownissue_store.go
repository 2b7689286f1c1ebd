package postgres

import (
	"context"
	"log/slog"

	"github.com/phrazzld/knownissues-api/internal/domain"
	"github.com/phrazzld/knownissues-api/internal/platform/logger"
	"github.com/phrazzld/knownissues-api/internal/store"
)

const (
	insertKnownIssueQuery = "INSERT INTO " + store.KnownIssuesTable +
		" (" + store.ColumnRegexPattern + ") VALUES ($1)" +
		" RETURNING " + store.ColumnID + ", " + store.ColumnCreatedAt

	listKnownIssuesQuery = "SELECT " + store.ColumnID + ", " + store.ColumnRegexPattern + ", " + store.ColumnCreatedAt +
		" FROM " + store.KnownIssuesTable +
		" ORDER BY " + store.ColumnID + " ASC"

	existsKnownIssueQuery = "SELECT EXISTS (SELECT 1 FROM " + store.KnownIssuesTable +
		" WHERE " + store.ColumnID + " = $1)"

	deleteKnownIssueQuery = "DELETE FROM " + store.KnownIssuesTable + " WHERE " + store.ColumnID + " = $1"
)

// PostgresKnownIssueStore implements the store.KnownIssueStore interface
// using a PostgreSQL database as the storage backend.
type PostgresKnownIssueStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresKnownIssueStore creates a new PostgreSQL implementation of the KnownIssueStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresKnownIssueStore(db store.DBTX, logger *slog.Logger) *PostgresKnownIssueStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresKnownIssueStore{
		db:     db,
		logger: logger.With(slog.String("component", "known_issue_store")),
	}
}

// Ensure PostgresKnownIssueStore implements store.KnownIssueStore interface
var _ store.KnownIssueStore = (*PostgresKnownIssueStore)(nil)

// Create implements store.KnownIssueStore.Create.
// The database assigns id and created_at; both are written back into issue.
func (s *PostgresKnownIssueStore) Create(ctx context.Context, issue *domain.KnownIssue) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := issue.Validate(); err != nil {
		log.Warn("known issue validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	err := s.db.QueryRowContext(ctx, insertKnownIssueQuery, issue.RegexPattern).
		Scan(&issue.ID, &issue.CreatedAt)
	if err != nil {
		log.Error("failed to create known issue",
			slog.String("error", err.Error()))
		return store.NewStoreError(store.EntityKnownIssue, "create", "failed to insert known issue", MapError(err))
	}

	log.Info("known issue created successfully",
		slog.Int64("known_issue_id", issue.ID))
	return nil
}

// ListAll implements store.KnownIssueStore.ListAll.
func (s *PostgresKnownIssueStore) ListAll(ctx context.Context) ([]*domain.KnownIssue, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listKnownIssuesQuery)
	if err != nil {
		log.Error("failed to query known issues",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError(store.EntityKnownIssue, "list", "failed to query known issues", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	issues := []*domain.KnownIssue{}
	for rows.Next() {
		var issue domain.KnownIssue
		if err := rows.Scan(&issue.ID, &issue.RegexPattern, &issue.CreatedAt); err != nil {
			log.Error("failed to scan known issue row",
				slog.String("error", err.Error()))
			return nil, store.NewStoreError(store.EntityKnownIssue, "list", "failed to scan known issue", err)
		}
		issues = append(issues, &issue)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError(store.EntityKnownIssue, "list", "failed to iterate known issues", MapError(err))
	}

	log.Debug("listed known issues", slog.Int("count", len(issues)))
	return issues, nil
}

// Exists implements store.KnownIssueStore.Exists.
func (s *PostgresKnownIssueStore) Exists(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var exists bool
	if err := s.db.QueryRowContext(ctx, existsKnownIssueQuery, id).Scan(&exists); err != nil {
		log.Error("failed to check known issue existence",
			slog.String("error", err.Error()),
			slog.Int64("known_issue_id", id))
		return false, store.NewStoreError(store.EntityKnownIssue, "exists", "failed to check known issue", MapError(err))
	}

	return exists, nil
}

// Delete implements store.KnownIssueStore.Delete.
func (s *PostgresKnownIssueStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, deleteKnownIssueQuery, id)
	if err != nil {
		log.Error("failed to delete known issue",
			slog.String("error", err.Error()),
			slog.Int64("known_issue_id", id))
		return false, store.NewStoreError(store.EntityKnownIssue, "delete", "failed to delete known issue", MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("known_issue_id", id))
		return false, store.NewStoreError(store.EntityKnownIssue, "delete", "failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		log.Debug("known issue not found for delete", slog.Int64("known_issue_id", id))
		return false, nil
	}

	log.Info("known issue deleted successfully", slog.Int64("known_issue_id", id))
	return true, nil
}
