//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/knownissues-api/internal/platform/migrate"
	"github.com/phrazzld/knownissues-api/internal/platform/postgres/migrations"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// DatabaseURLEnv points the integration tests at an existing PostgreSQL
// database instead of a container.
const DatabaseURLEnv = "KNOWNISSUES_TEST_DATABASE_URL"

// PostgresImage is the container image used by NewPostgres.
const PostgresImage = "postgres:16-alpine"

// NewPostgres returns a migrated PostgreSQL connection pool.
// The container, if one was started, is terminated when the test finishes.
func NewPostgres(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*TestTimeout)
	defer cancel()

	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		dsn = startContainer(ctx, t)
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { CleanupDB(t, db) })
	require.NoError(t, db.PingContext(ctx), "failed to reach test database")

	src := migrate.Source{Dialect: migrate.DialectPostgres, FS: migrations.FS}
	require.NoError(t, migrate.Up(ctx, db, src, nil), "failed to migrate test database")

	return db
}

func startContainer(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tcpostgres.Run(ctx, PostgresImage,
		tcpostgres.WithDatabase("knownissues"),
		tcpostgres.WithUsername("knownissues"),
		tcpostgres.WithPassword("knownissues"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}
