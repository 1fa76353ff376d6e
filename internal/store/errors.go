package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors (ErrListNotFound, ErrWordNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrListNotFound indicates the (owner, list name) key has never been
	// created. Distinct from an existing list that is merely empty.
	ErrListNotFound = fmt.Errorf("%w: word list", ErrNotFound)

	// ErrWordNotFound indicates the list exists but contains no entry with
	// the requested text.
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	// ErrWordExists is returned when appending a word whose text already
	// appears in the list. Duplicate adds are an expected outcome, not a
	// failure of the store.
	ErrWordExists = errors.New("word already exists in list")

	// ErrVersionConflict is returned when a conditional write loses the race
	// against a concurrent writer to the same list document. Implementations
	// retry internally; callers only see this after retries are exhausted.
	ErrVersionConflict = errors.New("list document version conflict")

	// ErrUnavailable is returned when the backing store cannot be reached.
	// It wraps the transport error and is safe to retry.
	ErrUnavailable = errors.New("store unavailable")
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
