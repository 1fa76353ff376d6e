package api

import (
	"time"

	"github.com/katigar/wordbank-api/internal/domain"
)

// Request/response structures for the word-list API.

// CreateListRequest defines the payload for the list-creation endpoints.
// The same shape serves both the safe create and the destructive reset.
type CreateListRequest struct {
	Owner    string `json:"owner"     validate:"required"`
	ListName string `json:"list_name" validate:"required"`
}

// AddWordRequest defines the payload for the add-word endpoint.
// Language is optional and selects the sentence-generation locale.
type AddWordRequest struct {
	Owner    string `json:"owner"     validate:"required"`
	ListName string `json:"list_name" validate:"required"`
	Word     string `json:"word"      validate:"required"`
	Language string `json:"language"`
}

// ReviewWordRequest defines the payload for the review endpoint.
type ReviewWordRequest struct {
	Owner    string `json:"owner"     validate:"required"`
	ListName string `json:"list_name" validate:"required"`
	Word     string `json:"word"      validate:"required"`
}

// CopyListRequest defines the payload for the copy-list endpoint.
type CopyListRequest struct {
	SourceOwner string `json:"source_owner" validate:"required"`
	SourceList  string `json:"source_list"  validate:"required"`
	TargetOwner string `json:"target_owner" validate:"required"`
	TargetList  string `json:"target_list"  validate:"required"`
}

// CopyListResponse reports how many words the copy actually added.
type CopyListResponse struct {
	Copied int `json:"copied"`
}

// WordResponse is the wire projection of a word entry.
type WordResponse struct {
	Word       string    `json:"word"`
	Language   string    `json:"language"`
	Sentence   string    `json:"sentence"`
	Level      int       `json:"level"`
	NextReview time.Time `json:"nextReview"`
}

// wordToResponse converts a domain entry to its wire projection.
func wordToResponse(entry domain.WordEntry) WordResponse {
	return WordResponse{
		Word:       entry.Text,
		Language:   entry.Language,
		Sentence:   entry.Sentence,
		Level:      entry.Level,
		NextReview: entry.NextReview,
	}
}

// wordsToResponse converts a snapshot to wire projections, never nil so the
// JSON body is always an array.
func wordsToResponse(entries []domain.WordEntry) []WordResponse {
	out := make([]WordResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, wordToResponse(entry))
	}
	return out
}
