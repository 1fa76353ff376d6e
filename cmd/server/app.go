package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/katigar/wordbank-api/internal/config"
	"github.com/katigar/wordbank-api/internal/generation"
	"github.com/katigar/wordbank-api/internal/platform/gemini"
	"github.com/katigar/wordbank-api/internal/platform/postgres"
	"github.com/katigar/wordbank-api/internal/service"
	"github.com/katigar/wordbank-api/internal/store"
)

// application holds the shared application dependencies to simplify wiring
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	listStore store.WordListStore
	generator generation.SentenceGenerator

	wordService *service.WordService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	appLogger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	app.listStore = postgres.NewPostgresWordListStore(db, appLogger)

	// Sentence generation is optional. Without an API key words are stored
	// with empty sentences.
	if cfg.Generation.GeminiAPIKey == "" {
		appLogger.Warn("No Gemini API key configured, sentence generation disabled")
		app.generator = generation.Disabled{}
	} else {
		gen, err := gemini.NewSentenceGenerator(
			ctx,
			appLogger.With(slog.String("component", "sentence_generator")),
			cfg.Generation,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sentence generator: %w", err)
		}
		app.generator = gen
		appLogger.Info("Sentence generator initialized", "model", cfg.Generation.ModelName)
	}

	app.wordService = service.NewWordService(
		app.listStore,
		app.generator,
		service.Config{
			InitialIntervalDays: cfg.Review.InitialIntervalDays,
			GenerationTimeout:   time.Duration(cfg.Generation.TimeoutSeconds) * time.Second,
		},
		appLogger,
	)

	appLogger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
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
