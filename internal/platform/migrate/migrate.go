package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// Dialects understood by goose.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// Supported commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// TableName is the goose version table.
const TableName = "schema_migrations"

// ErrUnknownCommand is returned for commands other than the supported ones.
var ErrUnknownCommand = errors.New("unknown migration command")

// goose keeps its dialect, base FS and logger in package globals.
var gooseMu sync.Mutex

// Source is a set of migrations for one dialect.
type Source struct {
	Dialect string
	FS      fs.FS
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, src Source, logger *slog.Logger) error {
	return Run(ctx, db, src, CommandUp, logger)
}

// Run executes command against db with the migrations in src.
func Run(ctx context.Context, db *sql.DB, src Source, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	// Use a correlation ID for all migration logs to allow tracing the entire operation
	log := logger.With(
		"correlation_id", uuid.NewString(),
		"component", "migrations",
		"command", command,
		"dialect", src.Dialect,
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetBaseFS(src.FS)
	goose.SetTableName(TableName)
	if err := goose.SetDialect(src.Dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect %q: %w", src.Dialect, err)
	}

	startTime := time.Now()
	log.Info("starting migration operation")

	var err error
	switch command {
	case CommandUp:
		err = goose.UpContext(ctx, db, ".")
	case CommandDown:
		err = goose.DownContext(ctx, db, ".")
	case CommandStatus:
		err = goose.StatusContext(ctx, db, ".")
	case CommandVersion:
		var version int64
		version, err = goose.GetDBVersionContext(ctx, db)
		if err == nil {
			log.Info("current migration version", "version", version)
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}

	log.Info("migration operation completed",
		"duration_ms", time.Since(startTime).Milliseconds(),
		"success", err == nil)

	if err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}
	return nil
}

// slogGooseLogger adapts goose's Printf-style logger to slog.
// Fatalf logs at error level and does not exit; goose returns the error anyway.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements goose.Logger.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
