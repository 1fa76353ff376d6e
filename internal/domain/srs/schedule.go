package srs

import (
	"github.com/katigar/wordbank-api/internal/domain"
)

// NextReview computes the review transition for a word entry, returning an
// updated copy and leaving the input untouched.
//
// The new level is the current level plus one. The new next-review time is
// the entry's current next-review time pushed out by the interval of the
// level just graduated from: the wait before the next review is a function
// of the pre-increment level, which is what governs the spacing.
//
// Both returned fields strictly exceed the entry's current level and
// next-review time, so repeated reviews are never idempotent.
func NextReview(entry domain.WordEntry) domain.WordEntry {
	updated := entry
	updated.Level = entry.Level + 1
	updated.NextReview = entry.NextReview.AddDate(0, 0, IntervalDays(entry.Level))
	return updated
}
