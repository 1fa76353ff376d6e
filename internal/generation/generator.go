// Package generation defines the boundary to the sentence-enrichment
// collaborator. The core treats it as an injected capability: best effort,
// cancellable, and never fatal to the operation that invoked it.
package generation

import "context"

// SentenceGenerator produces one example sentence containing the given word
// in the given language. The language tag may be empty, in which case the
// generator picks a sensible default.
//
// Implementations must honor ctx cancellation and deadlines; callers bound
// the call with a timeout and degrade to an empty sentence on failure.
type SentenceGenerator interface {
	GenerateSentence(ctx context.Context, language, word string) (string, error)
}

// Disabled is a SentenceGenerator that always reports the collaborator as
// unavailable. It is used when no API key is configured.
type Disabled struct{}

// GenerateSentence implements SentenceGenerator.
func (Disabled) GenerateSentence(ctx context.Context, language, word string) (string, error) {
	return "", ErrGenerationDisabled
}
