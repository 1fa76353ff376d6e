package generation

import "errors"

// Common errors returned by sentence generators.
var (
	// ErrGenerationFailed is returned when sentence generation fails for any
	// general reason.
	ErrGenerationFailed = errors.New("failed to generate sentence")

	// ErrInvalidResponse is returned when the model response is empty or
	// cannot be interpreted as a sentence.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to
	// safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve
	// on retry.
	ErrTransientFailure = errors.New("transient error during sentence generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrGenerationDisabled is returned when no generator is configured.
	ErrGenerationDisabled = errors.New("sentence generation is disabled")
)
