package service

import "errors"

// Service-level errors returned to transport handlers. Store sentinels are
// mapped onto these so callers never depend on the persistence layer.
var (
	// ErrListNotFound is returned when an operation targets a list that was
	// never created and is not eligible for lazy creation.
	ErrListNotFound = errors.New("word list not found")

	// ErrWordNotFound is returned when a review targets a word that is not
	// in the list. Surfaced explicitly so callers can detect typos instead
	// of silently succeeding.
	ErrWordNotFound = errors.New("word not found in list")
)
