// Package memory provides an in-memory WordListStore used by tests and by
// local development without a database. It mirrors the semantics of the
// Postgres implementation, including write serialization per store, so the
// service layer behaves identically against either backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/katigar/wordbank-api/internal/domain"
	"github.com/katigar/wordbank-api/internal/store"
)

type listKey struct {
	owner string
	name  string
}

type listDocument struct {
	entries []domain.WordEntry
	version int64
}

// WordListStore is an in-memory implementation of store.WordListStore.
// All operations take the store mutex for their full read-modify-write, so
// concurrent writers are serialized and no update is ever lost.
type WordListStore struct {
	mu    sync.Mutex
	lists map[listKey]*listDocument
}

// NewWordListStore creates an empty in-memory word list store.
func NewWordListStore() *WordListStore {
	return &WordListStore{
		lists: make(map[listKey]*listDocument),
	}
}

// Ensure WordListStore implements store.WordListStore
var _ store.WordListStore = (*WordListStore)(nil)

// CreateList implements store.WordListStore.CreateList.
func (s *WordListStore) CreateList(ctx context.Context, owner, listName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := listKey{owner: owner, name: listName}
	if _, ok := s.lists[key]; ok {
		return nil
	}

	s.lists[key] = &listDocument{version: 1}
	return nil
}

// ResetList implements store.WordListStore.ResetList.
func (s *WordListStore) ResetList(ctx context.Context, owner, listName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := listKey{owner: owner, name: listName}
	if doc, ok := s.lists[key]; ok {
		doc.entries = nil
		doc.version++
		return nil
	}

	s.lists[key] = &listDocument{version: 1}
	return nil
}

// ListWords implements store.WordListStore.ListWords.
func (s *WordListStore) ListWords(ctx context.Context, owner, listName string) ([]domain.WordEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.lists[listKey{owner: owner, name: listName}]
	if !ok {
		return nil, store.ErrListNotFound
	}

	// Copy so callers cannot mutate the stored document.
	snapshot := make([]domain.WordEntry, len(doc.entries))
	copy(snapshot, doc.entries)
	return snapshot, nil
}

// AppendWord implements store.WordListStore.AppendWord.
func (s *WordListStore) AppendWord(ctx context.Context, owner, listName string, entry domain.WordEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.lists[listKey{owner: owner, name: listName}]
	if !ok {
		return store.ErrListNotFound
	}

	for _, existing := range doc.entries {
		if existing.Text == entry.Text {
			return store.ErrWordExists
		}
	}

	doc.entries = append(doc.entries, entry)
	doc.version++
	return nil
}

// SaveReview implements store.WordListStore.SaveReview.
// First text match wins, mirroring the Postgres implementation.
func (s *WordListStore) SaveReview(
	ctx context.Context,
	owner, listName, text string,
	newLevel int,
	newNextReview time.Time,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.lists[listKey{owner: owner, name: listName}]
	if !ok {
		return store.ErrListNotFound
	}

	for i := range doc.entries {
		if doc.entries[i].Text == text {
			doc.entries[i].Level = newLevel
			doc.entries[i].NextReview = newNextReview.UTC()
			doc.version++
			return nil
		}
	}

	return store.ErrWordNotFound
}

// Version reports the current document version for a list, or zero if the
// list does not exist. Test helper for asserting write behavior.
func (s *WordListStore) Version(owner, listName string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.lists[listKey{owner: owner, name: listName}]
	if !ok {
		return 0
	}
	return doc.version
}
