// Package main implements the entry point for the wordbank API server,
// which stores users' vocabulary lists and schedules spaced-repetition
// reviews, with LLM integration for example-sentence generation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/katigar/wordbank-api/internal/config"
	"github.com/katigar/wordbank-api/internal/platform/logger"
	"github.com/katigar/wordbank-api/internal/redact"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"Run a database migration command (up, down, status, version, create) and exit",
	)
	migrationsDir := flag.String(
		"migrations-dir",
		"migrations",
		"Directory containing goose migration files",
	)
	flag.Parse()

	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrateCmd != "" {
		if err := runMigrations(cfg, *migrateCmd, *migrationsDir, flag.Args()...); err != nil {
			appLogger.Error("Migration failed", "command", *migrateCmd, "error", redact.Error(err))
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", redact.Error(err))
		os.Exit(1)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		appLogger.Error("Failed to initialize application", "error", err)
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("Error closing database connection", "error", closeErr)
		}
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	slog.Debug("Database configuration", "url_present", cfg.Database.URL != "")
	slog.Debug("Generation configuration",
		"api_key_present", cfg.Generation.GeminiAPIKey != "",
		"model", cfg.Generation.ModelName)

	return cfg, appLogger, nil
}
