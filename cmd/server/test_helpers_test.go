package main

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/knownissues-api/internal/config"
	"github.com/phrazzld/knownissues-api/internal/platform/logger"
	"github.com/phrazzld/knownissues-api/internal/platform/migrate"
	"github.com/stretchr/testify/require"
)

// testConfig returns a valid configuration backed by a SQLite file in a
// per-test temporary directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Server: config.ServerConfig{
			Port:                   3000,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 5,
		},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			URL:          filepath.Join(t.TempDir(), "knownissues.db"),
			MaxOpenConns: 1,
			AutoMigrate:  true,
		},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

// newTestApplication opens and migrates the configured database and builds
// the application on top of it.
func newTestApplication(t *testing.T, cfg *config.Config) (*application, *logger.TestLogBuffer) {
	t.Helper()

	logBuf, log := logger.SetupTestLogger(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, runMigrations(ctx, db, cfg.Database.Driver, migrate.CommandUp, log))

	app, err := newApplication(cfg, log, db)
	require.NoError(t, err)

	return app, logBuf
}

func countRows(t *testing.T, db *sql.DB) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM known_issues").Scan(&n))
	return n
}

