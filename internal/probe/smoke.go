package probe

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"codeberg.org/snonux/keyprobe/internal/credential"
)

// SupportsSmokeTest reports whether the provider can run the
// CountTokens smoke test. Only the Gemini SDK exposes one.
func SupportsSmokeTest(provider string) bool {
	return provider == "gemini"
}

// SmokeTest goes one step beyond listing models: it sends a minimal
// CountTokens request through the official SDK to verify the key can
// actually exercise the given model. Returns the token count of the
// probe text on success.
func SmokeTest(ctx context.Context, apiKey, model string) (int32, error) {
	if !credential.Valid(apiKey) {
		return 0, fmt.Errorf("no valid API key configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create client: %w", err)
	}

	resp, err := client.Models.CountTokens(ctx, model, genai.Text("ping"), nil)
	if err != nil {
		return 0, fmt.Errorf("smoke test against %s failed: %w", model, err)
	}

	return resp.TotalTokens, nil
}
