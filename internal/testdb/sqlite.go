package testdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/phrazzld/knownissues-api/internal/platform/migrate"
	"github.com/phrazzld/knownissues-api/internal/platform/sqlite"
	"github.com/phrazzld/knownissues-api/internal/platform/sqlite/migrations"
	"github.com/stretchr/testify/require"
)

// NewSQLite opens a fresh SQLite database under t.TempDir(), applies the
// migrations and closes the database when the test finishes.
func NewSQLite(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "knownissues.db"))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { CleanupDB(t, db) })

	src := migrate.Source{Dialect: migrate.DialectSQLite, FS: migrations.FS}
	require.NoError(t, migrate.Up(ctx, db, src, nil), "failed to migrate test database")

	return db
}
