package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/knownissues-api/internal/config"
	"github.com/phrazzld/knownissues-api/internal/platform/migrate"
	pgmigrations "github.com/phrazzld/knownissues-api/internal/platform/postgres/migrations"
	sqlitemigrations "github.com/phrazzld/knownissues-api/internal/platform/sqlite/migrations"
)

// migrationSource returns the embedded migrations for driver.
func migrationSource(driver string) (migrate.Source, error) {
	switch driver {
	case config.DriverPostgres:
		return migrate.Source{Dialect: migrate.DialectPostgres, FS: pgmigrations.FS}, nil
	case config.DriverSQLite:
		return migrate.Source{Dialect: migrate.DialectSQLite, FS: sqlitemigrations.FS}, nil
	default:
		return migrate.Source{}, fmt.Errorf("no migrations for database driver %q", driver)
	}
}

// runMigrations executes command against db using the migrations for driver.
func runMigrations(ctx context.Context, db *sql.DB, driver, command string, logger *slog.Logger) error {
	src, err := migrationSource(driver)
	if err != nil {
		return err
	}

	if err := migrate.Run(ctx, db, src, command, logger); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
