package domain

import (
	"errors"
	"strings"
	"time"
)

// Word-entry validation errors
var (
	// ErrWordTextEmpty is returned when a word entry's text is empty or blank.
	ErrWordTextEmpty = errors.New("word text cannot be empty")

	// ErrWordLevelInvalid is returned when a word entry's level is below 1.
	ErrWordLevelInvalid = errors.New("word level must be at least 1")

	// ErrWordNextReviewZero is returned when a word entry has no next-review timestamp.
	ErrWordNextReviewZero = errors.New("word next review time cannot be zero")
)

// WordEntry represents one vocabulary item inside a user's word list.
// Text is the uniqueness key within a list (case-sensitive exact match).
// Level is the mastery counter, starting at 1 and incremented on every
// successful review; NextReview is when the word is due again.
type WordEntry struct {
	Text       string    `json:"word"`
	Language   string    `json:"language"`
	Sentence   string    `json:"sentence"`
	Level      int       `json:"level"`
	NextReview time.Time `json:"nextReview"`
}

// NewWordEntry creates a fresh entry at level 1 with the given first review
// time. The sentence starts empty; enrichment fills it in later, best effort.
// Returns an error if validation fails.
func NewWordEntry(text, language string, firstReview time.Time) (*WordEntry, error) {
	entry := &WordEntry{
		Text:       text,
		Language:   language,
		Level:      1,
		NextReview: firstReview.UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the WordEntry has valid data.
// Returns an error if any field fails validation.
func (e *WordEntry) Validate() error {
	if strings.TrimSpace(e.Text) == "" {
		return ErrWordTextEmpty
	}

	if e.Level < 1 {
		return ErrWordLevelInvalid
	}

	if e.NextReview.IsZero() {
		return ErrWordNextReviewZero
	}

	return nil
}
