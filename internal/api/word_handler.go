package api

import (
	"log/slog"
	"net/http"

	"github.com/katigar/wordbank-api/internal/api/shared"
	"github.com/katigar/wordbank-api/internal/platform/logger"
	"github.com/katigar/wordbank-api/internal/service"
)

// WordHandler handles word-level HTTP requests: add, list, review.
type WordHandler struct {
	words  *service.WordService
	logger *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(words *service.WordService, log *slog.Logger) *WordHandler {
	if words == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("word service cannot be nil for WordHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &WordHandler{
		words:  words,
		logger: log.With(slog.String("component", "word_handler")),
	}
}

// AddWord handles POST /words requests.
// Responds 201 with the stored entry, or 409 if the word already exists in
// the list. The list is created lazily if absent.
func (h *WordHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AddWordRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		log.Warn("invalid add-word request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	added, err := h.words.AddWord(r.Context(), req.Owner, req.ListName, req.Word, req.Language)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if !added {
		shared.RespondWithError(w, r, http.StatusConflict, "Word already exists in list")
		return
	}

	// Read the stored entry back so the response carries the generated
	// sentence and the scheduled review time.
	entries, err := h.words.GetWords(r.Context(), req.Owner, req.ListName)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	for _, entry := range entries {
		if entry.Text == req.Word {
			shared.RespondWithJSON(w, r, http.StatusCreated, wordToResponse(entry))
			return
		}
	}

	// The word was added but a concurrent reset removed it before readback.
	w.WriteHeader(http.StatusCreated)
}

// GetWords handles GET /words?owner=...&list=... requests.
// Responds with the full list snapshot in insertion order.
func (h *WordHandler) GetWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	owner := r.URL.Query().Get("owner")
	listName := r.URL.Query().Get("list")
	if owner == "" || listName == "" {
		log.Warn("missing query parameters for get-words",
			slog.Bool("owner_present", owner != ""),
			slog.Bool("list_present", listName != ""))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query parameters 'owner' and 'list' are required")
		return
	}

	entries, err := h.words.GetWords(r.Context(), owner, listName)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wordsToResponse(entries))
}

// ReviewWord handles POST /words/review requests.
// Advances the word's mastery level and reschedules its next review.
func (h *WordHandler) ReviewWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ReviewWordRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		log.Warn("invalid review request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	updated, err := h.words.UpdateWord(r.Context(), req.Owner, req.ListName, req.Word)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(*updated))
}
