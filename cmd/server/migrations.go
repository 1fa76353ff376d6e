package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/katigar/wordbank-api/internal/config"
)

// slogGooseLogger adapts goose's logger interface to structured logging.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "migrations")
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), "component", "migrations")
}

// runMigrations executes the given goose command (up, down, status, version,
// create) against the configured database. The create command uses args[0]
// as the new migration's name.
func runMigrations(cfg *config.Config, command, migrationsDir string, args ...string) error {
	migrationLogger := slog.Default().With(
		"component", "migrations",
		"command", command,
	)

	if cfg.Database.URL == "" {
		return fmt.Errorf("database URL is empty: check your configuration")
	}

	goose.SetLogger(&slogGooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			migrationLogger.Error("Error closing database connection", "error", closeErr)
		}
	}()

	migrationLogger.Info("Starting migration operation", "dir", migrationsDir)

	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	case "version":
		err = goose.Version(db, migrationsDir)
	case "create":
		if len(args) == 0 || args[0] == "" {
			return fmt.Errorf("create requires a migration name")
		}
		err = goose.Create(db, migrationsDir, args[0], "sql")
	default:
		return fmt.Errorf(
			"unknown migration command: %q (expected up, down, status, version, or create)",
			command,
		)
	}

	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	migrationLogger.Info("Migration operation completed")
	return nil
}
