// Package srs implements the spaced-repetition schedule for word reviews.
package srs

// baseIntervals holds the review intervals, in days, for the first four
// mastery levels. Beyond level 4 the curve continues recursively.
var baseIntervals = [...]int{
	1: 1,
	2: 7,
	3: 16,
	4: 35,
}

// IntervalDays returns the number of days to wait after graduating from the
// given mastery level before the word is due again.
//
// Levels 1 through 4 use a fixed table (1, 7, 16, 35). From level 5 on, each
// interval is 2*previous - 1, continuing the roughly-doubling growth of the
// table (69, 137, 273, ...). The function is total for all levels: inputs
// below 1 are clamped to level 1.
func IntervalDays(level int) int {
	if level < 1 {
		level = 1
	}

	if level < len(baseIntervals) {
		return baseIntervals[level]
	}

	return 2*IntervalDays(level-1) - 1
}
