// Package main implements the entry point for the Known Issues API server,
// which stores regular-expression patterns describing recognized problems.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/knownissues-api/internal/config"
	"github.com/phrazzld/knownissues-api/internal/platform/logger"
	"github.com/phrazzld/knownissues-api/internal/platform/migrate"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, status, version) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		fmt.Fprintf(os.Stderr, "knownissues-api: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, connects to the database and either executes a
// single migration command or serves HTTP until SIGINT/SIGTERM.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"metrics_enabled", cfg.Metrics.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := setupAppDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer closeDB(db, log)
		return runMigrations(ctx, db, cfg.Database.Driver, migrateCmd, log)
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, db, cfg.Database.Driver, migrate.CommandUp, log); err != nil {
			closeDB(db, log)
			return err
		}
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		closeDB(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func closeDB(db interface{ Close() error }, log *slog.Logger) {
	if err := db.Close(); err != nil {
		log.Error("Error closing database connection", "error", err)
	}
}
