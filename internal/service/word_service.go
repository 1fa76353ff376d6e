// Package service implements the scheduling service: the orchestration of
// word lists, review scheduling, and sentence enrichment.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/katigar/wordbank-api/internal/domain"
	"github.com/katigar/wordbank-api/internal/domain/srs"
	"github.com/katigar/wordbank-api/internal/generation"
	"github.com/katigar/wordbank-api/internal/platform/logger"
	"github.com/katigar/wordbank-api/internal/store"
)

// Config carries the scheduling knobs of the service.
type Config struct {
	// InitialIntervalDays is how far in the future a freshly added word is
	// first due.
	InitialIntervalDays int

	// GenerationTimeout bounds the sentence-enrichment call inside AddWord.
	// A timed-out enrichment never fails the add; the word is stored with an
	// empty sentence.
	GenerationTimeout time.Duration
}

// WordService orchestrates list and word operations on top of the store and
// the sentence-enrichment collaborator.
//
// Mutations of one list are serialized through a mutex keyed by
// (owner, list name), so two concurrent reviews of the same word both land:
// the second one reads the state the first one wrote. The store's versioned
// writes guard the same invariant across processes.
type WordService struct {
	listStore store.WordListStore
	generator generation.SentenceGenerator
	cfg       Config
	logger    *slog.Logger

	listLocks sync.Map // map[string]*sync.Mutex keyed by owner+"\x00"+listName

	now func() time.Time
}

// NewWordService creates a WordService. The generator may be nil, in which
// case words are stored without example sentences.
func NewWordService(
	listStore store.WordListStore,
	generator generation.SentenceGenerator,
	cfg Config,
	log *slog.Logger,
) *WordService {
	if listStore == nil {
		panic("listStore cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	if generator == nil {
		generator = generation.Disabled{}
	}

	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = 10 * time.Second
	}

	return &WordService{
		listStore: listStore,
		generator: generator,
		cfg:       cfg,
		logger:    log.With(slog.String("component", "word_service")),
		now:       time.Now,
	}
}

// lockList acquires the per-list mutex and returns its unlock function.
func (s *WordService) lockList(owner, listName string) func() {
	key := owner + "\x00" + listName
	muAny, _ := s.listLocks.LoadOrStore(key, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateList creates an empty list if it does not exist yet. Safe to call
// repeatedly; existing entries are never touched.
func (s *WordService) CreateList(ctx context.Context, owner, listName string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.listStore.CreateList(ctx, owner, listName); err != nil {
		log.Error("failed to create list",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("list_name", listName))
		return fmt.Errorf("failed to create list: %w", err)
	}

	return nil
}

// ResetList wipes the list back to empty, creating it if absent. This is
// the explicitly destructive operation; CreateList never destroys data.
func (s *WordService) ResetList(ctx context.Context, owner, listName string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlock := s.lockList(owner, listName)
	defer unlock()

	if err := s.listStore.ResetList(ctx, owner, listName); err != nil {
		log.Error("failed to reset list",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("list_name", listName))
		return fmt.Errorf("failed to reset list: %w", err)
	}

	return nil
}

// AddWord adds a new word to the list at level 1, due after the configured
// initial interval. The list is created lazily if absent; this is the one
// place a missing list is not an error.
//
// Returns (false, nil) if the word is already present; a duplicate add is
// an expected outcome, not a failure. Sentence enrichment runs under its
// own timeout before the write and degrades to an empty sentence on any
// failure.
func (s *WordService) AddWord(ctx context.Context, owner, listName, text, language string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	firstReview := s.now().UTC().AddDate(0, 0, s.cfg.InitialIntervalDays)
	entry, err := domain.NewWordEntry(text, language, firstReview)
	if err != nil {
		return false, err
	}

	// Enrichment happens outside the list lock: it is a slow external call
	// and must not extend the critical section.
	entry.Sentence = s.enrichSentence(ctx, language, text)

	unlock := s.lockList(owner, listName)
	defer unlock()

	err = s.listStore.AppendWord(ctx, owner, listName, *entry)
	if errors.Is(err, store.ErrListNotFound) {
		if err = s.listStore.CreateList(ctx, owner, listName); err != nil {
			return false, fmt.Errorf("failed to lazily create list: %w", err)
		}
		err = s.listStore.AppendWord(ctx, owner, listName, *entry)
	}

	if errors.Is(err, store.ErrWordExists) {
		log.Debug("duplicate word add suppressed",
			slog.String("owner", owner),
			slog.String("list_name", listName),
			slog.String("word", text))
		return false, nil
	}
	if err != nil {
		log.Error("failed to add word",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("list_name", listName),
			slog.String("word", text))
		return false, fmt.Errorf("failed to add word: %w", err)
	}

	log.Info("word added",
		slog.String("owner", owner),
		slog.String("list_name", listName),
		slog.String("word", text),
		slog.Bool("has_sentence", entry.Sentence != ""))
	return true, nil
}

// GetWords returns the current snapshot of the list in insertion order.
// Returns ErrListNotFound if the list was never created.
func (s *WordService) GetWords(ctx context.Context, owner, listName string) ([]domain.WordEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entries, err := s.listStore.ListWords(ctx, owner, listName)
	if err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			return nil, ErrListNotFound
		}
		log.Error("failed to list words",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("list_name", listName))
		return nil, fmt.Errorf("failed to list words: %w", err)
	}

	return entries, nil
}

// UpdateWord records a review of the word: the level advances by one and
// the next review moves out by the interval of the level just graduated
// from. Returns the updated entry, or ErrWordNotFound / ErrListNotFound.
func (s *WordService) UpdateWord(ctx context.Context, owner, listName, text string) (*domain.WordEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlock := s.lockList(owner, listName)
	defer unlock()

	entries, err := s.listStore.ListWords(ctx, owner, listName)
	if err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to load list for review: %w", err)
	}

	var current *domain.WordEntry
	for i := range entries {
		if entries[i].Text == text {
			current = &entries[i]
			break
		}
	}
	if current == nil {
		log.Debug("review target not found",
			slog.String("owner", owner),
			slog.String("list_name", listName),
			slog.String("word", text))
		return nil, ErrWordNotFound
	}

	updated := srs.NextReview(*current)

	err = s.listStore.SaveReview(ctx, owner, listName, text, updated.Level, updated.NextReview)
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, ErrWordNotFound
		}
		if errors.Is(err, store.ErrListNotFound) {
			return nil, ErrListNotFound
		}
		log.Error("failed to save review",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("list_name", listName),
			slog.String("word", text))
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	log.Info("word reviewed",
		slog.String("owner", owner),
		slog.String("list_name", listName),
		slog.String("word", text),
		slog.Int("level", updated.Level))
	return &updated, nil
}

// CopyList re-adds every word of the source list into the target list.
// Each copy is a fresh add: level 1, default next review, and a sentence
// regenerated for the copied word. Words already present in the target are
// silently skipped; the target is created lazily. Returns the number of
// words actually copied.
func (s *WordService) CopyList(ctx context.Context, sourceOwner, sourceList, targetOwner, targetList string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entries, err := s.listStore.ListWords(ctx, sourceOwner, sourceList)
	if err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			return 0, ErrListNotFound
		}
		return 0, fmt.Errorf("failed to load source list: %w", err)
	}

	copied := 0
	for _, entry := range entries {
		added, err := s.AddWord(ctx, targetOwner, targetList, entry.Text, entry.Language)
		if err != nil {
			return copied, fmt.Errorf("failed to copy word %q: %w", entry.Text, err)
		}
		if added {
			copied++
		}
	}

	log.Info("list copied",
		slog.String("source_owner", sourceOwner),
		slog.String("source_list", sourceList),
		slog.String("target_owner", targetOwner),
		slog.String("target_list", targetList),
		slog.Int("copied", copied),
		slog.Int("skipped", len(entries)-copied))
	return copied, nil
}

// enrichSentence asks the generator for an example sentence under the
// configured timeout. Any failure degrades to an empty sentence; enrichment
// is best effort and never fails the parent operation.
func (s *WordService) enrichSentence(ctx context.Context, language, text string) string {
	log := logger.FromContextOrDefault(ctx, s.logger)

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GenerationTimeout)
	defer cancel()

	sentence, err := s.generator.GenerateSentence(genCtx, language, text)
	if err != nil {
		if !errors.Is(err, generation.ErrGenerationDisabled) {
			log.Warn("sentence enrichment unavailable, storing word without sentence",
				slog.String("error", err.Error()),
				slog.String("word", text))
		}
		return ""
	}

	return sentence
}
