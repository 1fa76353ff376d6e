// Package gemini implements the sentence-enrichment boundary against
// Google's Gemini API.
package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"google.golang.org/genai"

	"github.com/katigar/wordbank-api/internal/config"
	"github.com/katigar/wordbank-api/internal/generation"
)

// defaultLanguage is used when a word carries no language tag.
const defaultLanguage = "English"

// sentencePrompt asks for exactly one sentence and nothing else; anything
// extra the model adds around it gets trimmed, not parsed.
const sentencePrompt = `Give me a sentence in '{{.Language}}' containing the word '{{.Word}}'. Reply with only the sentence, nothing else.`

type promptData struct {
	Language string
	Word     string
}

// SentenceGenerator implements generation.SentenceGenerator using the
// Gemini API.
type SentenceGenerator struct {
	logger         *slog.Logger
	config         config.GenerationConfig
	promptTemplate *template.Template
	client         *genai.Client
	model          string
}

// NewSentenceGenerator creates a Gemini-backed sentence generator.
//
// Returns generation.ErrInvalidConfig if the API key or model name is
// missing, or an error if the Gemini client cannot be constructed.
func NewSentenceGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.GenerationConfig,
) (*SentenceGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("sentence").Parse(sentencePrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &SentenceGenerator{
		logger:         logger.With(slog.String("component", "sentence_generator")),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// Ensure SentenceGenerator implements generation.SentenceGenerator
var _ generation.SentenceGenerator = (*SentenceGenerator)(nil)

// GenerateSentence implements generation.SentenceGenerator.
// It calls the Gemini API with bounded exponential-backoff retries for
// transient failures; permanent failures (blocked content, malformed
// responses) return immediately.
func (g *SentenceGenerator) GenerateSentence(ctx context.Context, language, word string) (string, error) {
	if strings.TrimSpace(word) == "" {
		return "", fmt.Errorf("%w: word cannot be empty", generation.ErrGenerationFailed)
	}

	if language == "" {
		language = defaultLanguage
	}

	prompt, err := g.buildPrompt(language, word)
	if err != nil {
		return "", err
	}

	sentence, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return "", err
	}

	return sentence, nil
}

func (g *SentenceGenerator) buildPrompt(language, word string) (string, error) {
	var buf bytes.Buffer
	if err := g.promptTemplate.Execute(&buf, promptData{Language: language, Word: word}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// callWithRetry makes a call to the Gemini API with exponential backoff.
// It attempts the call up to MaxRetries+1 times, with jittered delays for
// transient errors. Permanent errors return immediately without retrying.
func (g *SentenceGenerator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", 3)
		maxRetries = 3
	}

	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay value, using default", "base_delay_seconds", 2)
		baseDelaySeconds = 2
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		attemptNum := attempt + 1
		g.logger.DebugContext(ctx, "making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		sentence, err, transient := g.callOnce(ctx, prompt)
		if err == nil {
			g.logger.DebugContext(ctx, "Gemini API call successful", "attempt", attemptNum)
			return sentence, nil
		}

		g.logger.WarnContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if !transient {
			return "", err
		}

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}

	return "", fmt.Errorf("%w: failed after %d attempts",
		generation.ErrTransientFailure, maxRetries+1)
}

// callOnce performs a single API call. The third return value reports
// whether a failure is worth retrying.
func (g *SentenceGenerator) callOnce(ctx context.Context, prompt string) (string, error, bool) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		// API-level errors are assumed transient (rate limits, 5xx).
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err), true
	}

	sentence, err := sentenceFromResponse(resp)
	return sentence, err, false
}

// sentenceFromResponse extracts the sentence text from a model response.
// All failures here are permanent: retrying the same prompt against a
// response the model already refused or mangled gains nothing.
func sentenceFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: sentence blocked by safety filters", generation.ErrContentBlocked)
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}

	sentence := strings.TrimSpace(text.String())
	if sentence == "" {
		return "", fmt.Errorf("%w: empty sentence in response", generation.ErrInvalidResponse)
	}

	return sentence, nil
}
