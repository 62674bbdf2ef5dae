package probe

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/keyprobe/internal"
	"codeberg.org/snonux/keyprobe/internal/credential"
)

// OpenAIProber validates an OpenAI API key via the SDK's model-listing
// call. It normalizes the outcome into the same Report shape as the
// Gemini prober so the rest of the tool treats providers uniformly.
type OpenAIProber struct {
	apiKey string
	client *openai.Client
}

// NewOpenAIProber creates a prober for the given API key.
func NewOpenAIProber(apiKey string) *OpenAIProber {
	return &OpenAIProber{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// Name returns the provider name.
func (p *OpenAIProber) Name() string {
	return "openai"
}

// MaskedKey returns the redacted form of the key under test.
func (p *OpenAIProber) MaskedKey() string {
	return internal.MaskKey(p.apiKey)
}

// Probe lists the models available to the key. API-level failures are
// translated into *StatusError so callers get the same diagnostics as
// for the Gemini REST probe.
func (p *OpenAIProber) Probe(ctx context.Context) (*Report, error) {
	if !credential.Valid(p.apiKey) {
		return nil, fmt.Errorf("no valid API key configured")
	}

	list, err := p.client.ListModels(ctx)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &StatusError{
				Provider:   p.Name(),
				StatusCode: apiErr.HTTPStatusCode,
				Body:       apiErr.Message,
			}
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	models := make([]Model, 0, len(list.Models))
	for _, m := range list.Models {
		models = append(models, Model{Name: m.ID})
	}

	return &Report{
		Provider:   p.Name(),
		MaskedKey:  p.MaskedKey(),
		Valid:      true,
		StatusCode: 200,
		Models:     models,
	}, nil
}
