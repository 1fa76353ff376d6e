package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katigar/wordbank-api/internal/domain"
	"github.com/katigar/wordbank-api/internal/platform/logger"
	"github.com/katigar/wordbank-api/internal/store"
)

// maxWriteAttempts bounds the internal retries of a conditional write when
// it races another writer to the same list document.
const maxWriteAttempts = 3

// PostgresWordListStore implements the store.WordListStore interface
// using a PostgreSQL database as the storage backend. Each list is one row
// holding a JSONB array of word entries plus a version counter.
type PostgresWordListStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordListStore creates a new PostgreSQL implementation of the
// WordListStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordListStore(db store.DBTX, logger *slog.Logger) *PostgresWordListStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordListStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_list_store")),
	}
}

// Ensure PostgresWordListStore implements store.WordListStore
var _ store.WordListStore = (*PostgresWordListStore)(nil)

// CreateList implements store.WordListStore.CreateList.
// It is idempotent: an existing list is left exactly as it is.
func (s *PostgresWordListStore) CreateList(ctx context.Context, owner, listName string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO word_lists (id, owner, list_name, entries, version, created_at, updated_at)
		VALUES ($1, $2, $3, '[]'::jsonb, 1, now(), now())
		ON CONFLICT (owner, list_name) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query, uuid.New(), owner, listName)
	if err != nil {
		log.Error("failed to create word list",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("list_name", listName))
		return mapError("create list", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("create list", err)
	}

	if rows == 0 {
		log.Debug("word list already exists, create is a no-op",
			slog.String("owner", owner),
			slog.String("list_name", listName))
		return nil
	}

	log.Info("word list created",
		slog.String("owner", owner),
		slog.String("list_name", listName))
	return nil
}

// ResetList implements store.WordListStore.ResetList.
// The destructive counterpart of CreateList: any existing entries are wiped.
func (s *PostgresWordListStore) ResetList(ctx context.Context, owner, listName string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO word_lists (id, owner, list_name, entries, version, created_at, updated_at)
		VALUES ($1, $2, $3, '[]'::jsonb, 1, now(), now())
		ON CONFLICT (owner, list_name)
		DO UPDATE SET entries = '[]'::jsonb,
		              version = word_lists.version + 1,
		              updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, query, uuid.New(), owner, listName); err != nil {
		log.Error("failed to reset word list",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("list_name", listName))
		return mapError("reset list", err)
	}

	log.Info("word list reset",
		slog.String("owner", owner),
		slog.String("list_name", listName))
	return nil
}

// ListWords implements store.WordListStore.ListWords.
// Returns store.ErrListNotFound if the (owner, listName) key was never created.
func (s *PostgresWordListStore) ListWords(ctx context.Context, owner, listName string) ([]domain.WordEntry, error) {
	entries, _, err := s.loadDocument(ctx, owner, listName)
	return entries, err
}

// AppendWord implements store.WordListStore.AppendWord.
// The duplicate check and the append happen against the same document
// version; a concurrent writer forces a reread and a fresh check.
func (s *PostgresWordListStore) AppendWord(ctx context.Context, owner, listName string, entry domain.WordEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		return err
	}

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		entries, version, err := s.loadDocument(ctx, owner, listName)
		if err != nil {
			return err
		}

		for _, existing := range entries {
			if existing.Text == entry.Text {
				log.Debug("word already present, append suppressed",
					slog.String("owner", owner),
					slog.String("list_name", listName),
					slog.String("word", entry.Text))
				return store.ErrWordExists
			}
		}

		entries = append(entries, entry)

		err = s.writeDocument(ctx, owner, listName, entries, version)
		if errors.Is(err, store.ErrVersionConflict) {
			log.Debug("append lost a write race, retrying",
				slog.String("owner", owner),
				slog.String("list_name", listName),
				slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return err
		}

		log.Info("word appended",
			slog.String("owner", owner),
			slog.String("list_name", listName),
			slog.String("word", entry.Text))
		return nil
	}

	return store.ErrVersionConflict
}

// SaveReview implements store.WordListStore.SaveReview.
// Only the level and next-review fields of the first matching entry change;
// the rest of the document is written back untouched.
func (s *PostgresWordListStore) SaveReview(
	ctx context.Context,
	owner, listName, text string,
	newLevel int,
	newNextReview time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		entries, version, err := s.loadDocument(ctx, owner, listName)
		if err != nil {
			return err
		}

		// First match wins; later duplicates, should any exist, stay untouched.
		idx := -1
		for i := range entries {
			if entries[i].Text == text {
				idx = i
				break
			}
		}
		if idx < 0 {
			log.Debug("word not found for review",
				slog.String("owner", owner),
				slog.String("list_name", listName),
				slog.String("word", text))
			return store.ErrWordNotFound
		}

		entries[idx].Level = newLevel
		entries[idx].NextReview = newNextReview.UTC()

		err = s.writeDocument(ctx, owner, listName, entries, version)
		if errors.Is(err, store.ErrVersionConflict) {
			log.Debug("review save lost a write race, retrying",
				slog.String("owner", owner),
				slog.String("list_name", listName),
				slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return err
		}

		log.Info("review saved",
			slog.String("owner", owner),
			slog.String("list_name", listName),
			slog.String("word", text),
			slog.Int("level", newLevel))
		return nil
	}

	return store.ErrVersionConflict
}

// loadDocument fetches the entry array and version for one list row.
func (s *PostgresWordListStore) loadDocument(
	ctx context.Context,
	owner, listName string,
) ([]domain.WordEntry, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT entries, version
		FROM word_lists
		WHERE owner = $1 AND list_name = $2
	`

	var raw []byte
	var version int64
	err := s.db.QueryRowContext(ctx, query, owner, listName).Scan(&raw, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word list not found",
				slog.String("owner", owner),
				slog.String("list_name", listName))
			return nil, 0, store.ErrListNotFound
		}
		log.Error("failed to load word list",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("list_name", listName))
		return nil, 0, mapError("load list", err)
	}

	var entries []domain.WordEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Error("failed to decode word list document",
			slog.String("error", err.Error()),
			slog.String("owner", owner),
			slog.String("list_name", listName))
		return nil, 0, mapError("decode list", err)
	}

	return entries, version, nil
}

// writeDocument persists the full entry array, guarded by the version read
// at load time. Zero rows affected means another writer got there first.
func (s *PostgresWordListStore) writeDocument(
	ctx context.Context,
	owner, listName string,
	entries []domain.WordEntry,
	version int64,
) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return mapError("encode list", err)
	}

	query := `
		UPDATE word_lists
		SET entries = $1, version = version + 1, updated_at = now()
		WHERE owner = $2 AND list_name = $3 AND version = $4
	`

	result, err := s.db.ExecContext(ctx, query, raw, owner, listName, version)
	if err != nil {
		return mapError("write list", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return mapError("write list", err)
	}

	if rows == 0 {
		return store.ErrVersionConflict
	}

	return nil
}
