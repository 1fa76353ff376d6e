package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/katigar/wordbank-api/internal/api"
	apiMiddleware "github.com/katigar/wordbank-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	wordHandler := api.NewWordHandler(app.wordService, app.logger)
	listHandler := api.NewListHandler(app.wordService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// List lifecycle endpoints
		r.Post("/lists", listHandler.CreateList)
		r.Post("/lists/reset", listHandler.ResetList)
		r.Post("/lists/copy", listHandler.CopyList)

		// Word endpoints
		r.Post("/words", wordHandler.AddWord)
		r.Get("/words", wordHandler.GetWords)
		r.Post("/words/review", wordHandler.ReviewWord)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
