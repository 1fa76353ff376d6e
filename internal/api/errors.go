package api

import (
	"errors"
	"net/http"

	"github.com/katigar/wordbank-api/internal/domain"
	"github.com/katigar/wordbank-api/internal/service"
	"github.com/katigar/wordbank-api/internal/store"
)

// MapErrorToStatusCode maps service-layer errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrListNotFound),
		errors.Is(err, service.ErrWordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrWordTextEmpty),
		errors.Is(err, domain.ErrWordLevelInvalid),
		errors.Is(err, domain.ErrWordNextReviewZero):
		// Domain validation catches what the struct validator cannot,
		// like a whitespace-only word passing a required tag.
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the error. Raw
// error text never reaches the response body; it stays in the logs.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrListNotFound):
		return "Word list not found"
	case errors.Is(err, service.ErrWordNotFound):
		return "Word not found in list"
	case errors.Is(err, domain.ErrWordTextEmpty):
		return "Word text cannot be empty"
	case errors.Is(err, domain.ErrWordLevelInvalid),
		errors.Is(err, domain.ErrWordNextReviewZero):
		return "Invalid word data"
	case errors.Is(err, store.ErrUnavailable):
		return "Storage temporarily unavailable, please retry"
	default:
		return "Internal server error"
	}
}
