package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/knownissues-api/internal/domain"
	"github.com/phrazzld/knownissues-api/internal/platform/logger"
	"github.com/phrazzld/knownissues-api/internal/store"
)

const (
	insertKnownIssueQuery = "INSERT INTO " + store.KnownIssuesTable +
		" (" + store.ColumnRegexPattern + ") VALUES (?)" +
		" RETURNING " + store.ColumnID + ", " + store.ColumnCreatedAt

	listKnownIssuesQuery = "SELECT " + store.ColumnID + ", " + store.ColumnRegexPattern + ", " + store.ColumnCreatedAt +
		" FROM " + store.KnownIssuesTable +
		" ORDER BY " + store.ColumnID + " ASC"

	existsKnownIssueQuery = "SELECT EXISTS (SELECT 1 FROM " + store.KnownIssuesTable +
		" WHERE " + store.ColumnID + " = ?)"

	deleteKnownIssueQuery = "DELETE FROM " + store.KnownIssuesTable + " WHERE " + store.ColumnID + " = ?"
)

// timestampLayouts are the created_at encodings accepted when reading rows:
// the migration default and SQLite's CURRENT_TIMESTAMP format.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// SQLiteKnownIssueStore implements the store.KnownIssueStore interface
// using an embedded SQLite database.
type SQLiteKnownIssueStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSQLiteKnownIssueStore creates a new SQLite implementation of the KnownIssueStore interface.
// If logger is nil, a default logger will be used.
func NewSQLiteKnownIssueStore(db store.DBTX, logger *slog.Logger) *SQLiteKnownIssueStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteKnownIssueStore{
		db:     db,
		logger: logger.With(slog.String("component", "known_issue_store")),
	}
}

var _ store.KnownIssueStore = (*SQLiteKnownIssueStore)(nil)

// Create implements store.KnownIssueStore.Create.
func (s *SQLiteKnownIssueStore) Create(ctx context.Context, issue *domain.KnownIssue) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := issue.Validate(); err != nil {
		log.Warn("known issue validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	var (
		id        int64
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, insertKnownIssueQuery, issue.RegexPattern).Scan(&id, &createdAt)
	if err != nil {
		log.Error("failed to create known issue", slog.String("error", err.Error()))
		return store.NewStoreError(store.EntityKnownIssue, "create", "failed to insert known issue", MapError(err))
	}

	ts, err := parseTimestamp(createdAt)
	if err != nil {
		return store.NewStoreError(store.EntityKnownIssue, "create", "failed to read created_at", err)
	}

	issue.ID = id
	issue.CreatedAt = ts

	log.Info("known issue created successfully", slog.Int64("known_issue_id", issue.ID))
	return nil
}

// ListAll implements store.KnownIssueStore.ListAll.
func (s *SQLiteKnownIssueStore) ListAll(ctx context.Context) ([]*domain.KnownIssue, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listKnownIssuesQuery)
	if err != nil {
		log.Error("failed to query known issues", slog.String("error", err.Error()))
		return nil, store.NewStoreError(store.EntityKnownIssue, "list", "failed to query known issues", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	issues := []*domain.KnownIssue{}
	for rows.Next() {
		var (
			issue     domain.KnownIssue
			createdAt string
		)
		if err := rows.Scan(&issue.ID, &issue.RegexPattern, &createdAt); err != nil {
			log.Error("failed to scan known issue row", slog.String("error", err.Error()))
			return nil, store.NewStoreError(store.EntityKnownIssue, "list", "failed to scan known issue", err)
		}
		if issue.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, store.NewStoreError(store.EntityKnownIssue, "list", "failed to read created_at", err)
		}
		issues = append(issues, &issue)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError(store.EntityKnownIssue, "list", "failed to iterate known issues", MapError(err))
	}

	log.Debug("listed known issues", slog.Int("count", len(issues)))
	return issues, nil
}

// Exists implements store.KnownIssueStore.Exists.
func (s *SQLiteKnownIssueStore) Exists(ctx context.Context, id int64) (bool, error) {
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
func (s *SQLiteKnownIssueStore) Delete(ctx context.Context, id int64) (bool, error) {
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
		return false, store.NewStoreError(store.EntityKnownIssue, "delete", "failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		log.Debug("known issue not found for delete", slog.Int64("known_issue_id", id))
		return false, nil
	}

	log.Info("known issue deleted successfully", slog.Int64("known_issue_id", id))
	return true, nil
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
