package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/knownissues-api/internal/config"
	"github.com/phrazzld/knownissues-api/internal/platform/metrics"
	"github.com/phrazzld/knownissues-api/internal/platform/postgres"
	"github.com/phrazzld/knownissues-api/internal/platform/sqlite"
	"github.com/phrazzld/knownissues-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	knownIssueStore store.KnownIssueStore

	// nil when metrics are disabled
	metrics *metrics.Metrics
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be established and migrated.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.knownIssueStore, err = newKnownIssueStore(cfg.Database.Driver, db, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Metrics.Enabled {
		app.metrics = metrics.New()
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// newKnownIssueStore returns the store implementation for driver.
func newKnownIssueStore(driver string, db *sql.DB, logger *slog.Logger) (store.KnownIssueStore, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.NewPostgresKnownIssueStore(db, logger), nil
	case config.DriverSQLite:
		return sqlite.NewSQLiteKnownIssueStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
