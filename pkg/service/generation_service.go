// Generation client - the Gemini boundary
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/clarityhq/clarity/pkg/utils"
)

// Generator produces one answer for an ordered prompt-part sequence. It must
// not retry and must not persist anything; both belong to the caller.
type Generator interface {
	Generate(ctx context.Context, parts []PromptPart) (string, error)
}

// GeminiGenerator calls the Gemini API. The credential is checked at call
// time so a missing key surfaces as ErrGenerationNotConfigured per request
// rather than failing startup.
type GeminiGenerator struct {
	apiKey  string
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewGeminiGenerator creates a Gemini-backed generator
func NewGeminiGenerator(apiKey, model string, timeout time.Duration) *GeminiGenerator {
	return &GeminiGenerator{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		logger:  utils.GetLogger(),
	}
}

// Generate sends the prompt parts and returns the answer text. A timeout is
// treated like any other provider failure.
func (g *GeminiGenerator) Generate(ctx context.Context, parts []PromptPart) (string, error) {
	if g.apiKey == "" {
		return "", ErrGenerationNotConfigured
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	genaiParts := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.IsText() {
			genaiParts = append(genaiParts, genai.NewPartFromText(p.Text))
		} else {
			genaiParts = append(genaiParts, genai.NewPartFromBytes(p.Data, p.MimeType))
		}
	}
	contents := []*genai.Content{genai.NewContentFromParts(genaiParts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	answer := resp.Text()
	if answer == "" {
		return "", &GenerationError{Err: errors.New("model returned an empty response")}
	}
	return answer, nil
}
