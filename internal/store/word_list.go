package store

import (
	"context"
	"time"

	"github.com/katigar/wordbank-api/internal/domain"
)

// WordListStore defines the interface for word-list persistence. A list is
// one document keyed by (owner, list name) holding an ordered set of word
// entries; entry text is unique within a list.
//
// Every operation is atomic at the single-document granularity: a failed
// write leaves the document exactly as it was. Implementations must not
// let two concurrent writers silently drop each other's changes; writes
// are conditional on the document version observed at read time and are
// retried internally on conflict.
type WordListStore interface {
	// CreateList initializes an empty list if the key does not exist yet.
	// It is idempotent and never touches an existing list's entries.
	CreateList(ctx context.Context, owner, listName string) error

	// ResetList wipes the list back to empty, creating it if absent.
	// This is the explicitly destructive counterpart of CreateList.
	ResetList(ctx context.Context, owner, listName string) error

	// ListWords returns the current snapshot of the list in insertion order.
	// Returns ErrListNotFound if the key has never been created; an existing
	// empty list yields an empty slice.
	ListWords(ctx context.Context, owner, listName string) ([]domain.WordEntry, error)

	// AppendWord adds the entry to the end of the list.
	// Returns ErrListNotFound if the list is absent and ErrWordExists if an
	// entry with the same text (exact match) is already present.
	AppendWord(ctx context.Context, owner, listName string, entry domain.WordEntry) error

	// SaveReview updates the level and next-review time of the first entry
	// whose text matches exactly. Later duplicates, should any exist, are
	// never touched. Returns ErrListNotFound or ErrWordNotFound.
	SaveReview(ctx context.Context, owner, listName, text string, newLevel int, newNextReview time.Time) error
}
