package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katigar/wordbank-api/internal/domain"
	"github.com/katigar/wordbank-api/internal/generation"
	"github.com/katigar/wordbank-api/internal/platform/memory"
	"github.com/katigar/wordbank-api/internal/service"
	"github.com/katigar/wordbank-api/internal/store"
)

// fixedGenerator returns a deterministic sentence for every word so response
// bodies can be asserted exactly.
type fixedGenerator struct{}

func (fixedGenerator) GenerateSentence(_ context.Context, language, word string) (string, error) {
	return fmt.Sprintf("A %s sentence with %s.", language, word), nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *service.WordService) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewWordService(
		memory.NewWordListStore(),
		fixedGenerator{},
		service.Config{InitialIntervalDays: 1, GenerationTimeout: time.Second},
		log,
	)

	words := NewWordHandler(svc, log)
	lists := NewListHandler(svc, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/lists", lists.CreateList)
		r.Post("/lists/reset", lists.ResetList)
		r.Post("/lists/copy", lists.CopyList)
		r.Post("/words", words.AddWord)
		r.Get("/words", words.GetWords)
		r.Post("/words/review", words.ReviewWord)
	})

	return r, svc
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWordHandler_AddWord(t *testing.T) {
	t.Parallel()

	t.Run("creates_word_with_sentence", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/words", AddWordRequest{
			Owner:    "user-1",
			ListName: "spanish",
			Word:     "gato",
			Language: "Spanish",
		})

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp WordResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "gato", resp.Word)
		assert.Equal(t, "Spanish", resp.Language)
		assert.Equal(t, "A Spanish sentence with gato.", resp.Sentence)
		assert.Equal(t, 1, resp.Level)
		assert.False(t, resp.NextReview.IsZero())
	})

	t.Run("duplicate_word_conflicts", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		body := AddWordRequest{Owner: "user-1", ListName: "spanish", Word: "gato", Language: "Spanish"}
		rec := doJSON(t, router, http.MethodPost, "/api/words", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/words", body)
		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Word already exists in list", resp.Error)
	})

	t.Run("missing_fields_rejected", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/words", AddWordRequest{
			Owner: "user-1",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("whitespace_word_rejected", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		// A whitespace-only word satisfies the struct validator's required
		// tag but fails domain validation; that is a client error, not a
		// server one.
		rec := doJSON(t, router, http.MethodPost, "/api/words", AddWordRequest{
			Owner:    "user-1",
			ListName: "spanish",
			Word:     "   ",
			Language: "Spanish",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Word text cannot be empty", resp.Error)
	})

	t.Run("malformed_json_rejected", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/words", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWordHandler_GetWords(t *testing.T) {
	t.Parallel()

	t.Run("returns_entries_in_insertion_order", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		for _, w := range []string{"uno", "dos", "tres"} {
			rec := doJSON(t, router, http.MethodPost, "/api/words", AddWordRequest{
				Owner: "user-1", ListName: "spanish", Word: w, Language: "Spanish",
			})
			require.Equal(t, http.StatusCreated, rec.Code)
		}

		rec := doJSON(t, router, http.MethodGet, "/api/words?owner=user-1&list=spanish", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []WordResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp, 3)
		assert.Equal(t, "uno", resp[0].Word)
		assert.Equal(t, "dos", resp[1].Word)
		assert.Equal(t, "tres", resp[2].Word)
	})

	t.Run("empty_list_returns_empty_array", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/lists", CreateListRequest{
			Owner: "user-1", ListName: "spanish",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/api/words?owner=user-1&list=spanish", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("missing_list_is_404", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodGet, "/api/words?owner=user-1&list=nope", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing_query_params_rejected", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodGet, "/api/words?owner=user-1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWordHandler_ReviewWord(t *testing.T) {
	t.Parallel()

	t.Run("advances_level_and_reschedules", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/words", AddWordRequest{
			Owner: "user-1", ListName: "spanish", Word: "gato", Language: "Spanish",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var created WordResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

		rec = doJSON(t, router, http.MethodPost, "/api/words/review", ReviewWordRequest{
			Owner: "user-1", ListName: "spanish", Word: "gato",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var reviewed WordResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviewed))
		assert.Equal(t, 2, reviewed.Level)
		assert.Equal(t, created.NextReview.AddDate(0, 0, 1), reviewed.NextReview)
		assert.Equal(t, created.Sentence, reviewed.Sentence)
	})

	t.Run("unknown_word_is_404", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/lists", CreateListRequest{
			Owner: "user-1", ListName: "spanish",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/words/review", ReviewWordRequest{
			Owner: "user-1", ListName: "spanish", Word: "perro",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown_list_is_404", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/words/review", ReviewWordRequest{
			Owner: "user-1", ListName: "nope", Word: "gato",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListHandler_Lifecycle(t *testing.T) {
	t.Parallel()

	t.Run("create_is_idempotent", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		body := CreateListRequest{Owner: "user-1", ListName: "spanish"}
		rec := doJSON(t, router, http.MethodPost, "/api/lists", body)
		assert.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/lists", body)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("reset_clears_entries", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/words", AddWordRequest{
			Owner: "user-1", ListName: "spanish", Word: "gato", Language: "Spanish",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/lists/reset", CreateListRequest{
			Owner: "user-1", ListName: "spanish",
		})
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/api/words?owner=user-1&list=spanish", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("copy_reports_count_and_resets_progress", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		for _, w := range []string{"gato", "perro"} {
			rec := doJSON(t, router, http.MethodPost, "/api/words", AddWordRequest{
				Owner: "user-1", ListName: "spanish", Word: w, Language: "Spanish",
			})
			require.Equal(t, http.StatusCreated, rec.Code)
		}

		rec := doJSON(t, router, http.MethodPost, "/api/words/review", ReviewWordRequest{
			Owner: "user-1", ListName: "spanish", Word: "gato",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/lists/copy", CopyListRequest{
			SourceOwner: "user-1", SourceList: "spanish",
			TargetOwner: "user-2", TargetList: "spanish",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp CopyListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Copied)

		rec = doJSON(t, router, http.MethodGet, "/api/words?owner=user-2&list=spanish", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var words []WordResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &words))
		require.Len(t, words, 2)
		for _, w := range words {
			assert.Equal(t, 1, w.Level)
		}
	})

	t.Run("copy_missing_source_is_404", func(t *testing.T) {
		t.Parallel()
		router, _ := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/lists/copy", CopyListRequest{
			SourceOwner: "user-1", SourceList: "nope",
			TargetOwner: "user-2", TargetList: "spanish",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// unavailableStore fails every operation with a wrapped store.ErrUnavailable,
// simulating a database outage.
type unavailableStore struct{}

func (unavailableStore) CreateList(context.Context, string, string) error {
	return fmt.Errorf("create list: %w", store.ErrUnavailable)
}

func (unavailableStore) ResetList(context.Context, string, string) error {
	return fmt.Errorf("reset list: %w", store.ErrUnavailable)
}

func (unavailableStore) ListWords(context.Context, string, string) ([]domain.WordEntry, error) {
	return nil, fmt.Errorf("load list: %w", store.ErrUnavailable)
}

func (unavailableStore) AppendWord(context.Context, string, string, domain.WordEntry) error {
	return fmt.Errorf("write list: %w", store.ErrUnavailable)
}

func (unavailableStore) SaveReview(context.Context, string, string, string, int, time.Time) error {
	return fmt.Errorf("write list: %w", store.ErrUnavailable)
}

func TestHandlers_StoreUnavailable(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewWordService(
		unavailableStore{},
		fixedGenerator{},
		service.Config{InitialIntervalDays: 1, GenerationTimeout: time.Second},
		log,
	)

	words := NewWordHandler(svc, log)
	router := chi.NewRouter()
	router.Get("/api/words", words.GetWords)
	router.Post("/api/words", words.AddWord)

	rec := doJSON(t, router, http.MethodGet, "/api/words?owner=user-1&list=spanish", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Storage temporarily unavailable, please retry", resp.Error)

	rec = doJSON(t, router, http.MethodPost, "/api/words", AddWordRequest{
		Owner: "user-1", ListName: "spanish", Word: "gato", Language: "Spanish",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

var _ generation.SentenceGenerator = fixedGenerator{}
var _ store.WordListStore = unavailableStore{}
