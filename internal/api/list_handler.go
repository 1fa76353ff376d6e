// Package api provides HTTP handlers for the word-list API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/katigar/wordbank-api/internal/api/shared"
	"github.com/katigar/wordbank-api/internal/platform/logger"
	"github.com/katigar/wordbank-api/internal/service"
)

// ListHandler handles list-level HTTP requests: create, reset, copy.
type ListHandler struct {
	words  *service.WordService
	logger *slog.Logger
}

// NewListHandler creates a new ListHandler.
func NewListHandler(words *service.WordService, log *slog.Logger) *ListHandler {
	if words == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("word service cannot be nil for ListHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ListHandler{
		words:  words,
		logger: log.With(slog.String("component", "list_handler")),
	}
}

// CreateList handles POST /lists requests.
// Creates the list if it does not exist yet; never destroys existing data.
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateListRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		log.Warn("invalid create-list request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.words.CreateList(r.Context(), req.Owner, req.ListName); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// ResetList handles POST /lists/reset requests.
// The explicitly destructive counterpart of CreateList: wipes all entries.
func (h *ListHandler) ResetList(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateListRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		log.Warn("invalid reset-list request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.words.ResetList(r.Context(), req.Owner, req.ListName); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CopyList handles POST /lists/copy requests.
// Each word is re-added into the target at level 1; words already present
// in the target are skipped.
func (h *ListHandler) CopyList(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CopyListRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		log.Warn("invalid copy-list request", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	copied, err := h.words.CopyList(
		r.Context(),
		req.SourceOwner, req.SourceList,
		req.TargetOwner, req.TargetList,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CopyListResponse{Copied: copied})
}
