package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codeberg.org/snonux/keyprobe/internal"
	"codeberg.org/snonux/keyprobe/internal/credential"
)

const (
	geminiAPIURL  = "https://generativelanguage.googleapis.com/v1beta/models"
	geminiTimeout = 30 * time.Second

	// quotaMarker appears in Gemini error bodies when the key has
	// exhausted its usage allowance.
	quotaMarker = "QUOTA_EXCEEDED"
)

// GeminiProber validates a Gemini API key against the model-listing
// endpoint of the generative language API.
type GeminiProber struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// geminiListResponse is the REST response of GET /v1beta/models.
type geminiListResponse struct {
	Models []Model `json:"models"`
}

// NewGeminiProber creates a prober for the given API key.
func NewGeminiProber(apiKey string) *GeminiProber {
	return &GeminiProber{
		apiKey:  apiKey,
		baseURL: geminiAPIURL,
		httpClient: &http.Client{
			Timeout: geminiTimeout,
		},
	}
}

// SetTimeout overrides the default HTTP timeout.
func (p *GeminiProber) SetTimeout(d time.Duration) {
	p.httpClient.Timeout = d
}

// Name returns the provider name.
func (p *GeminiProber) Name() string {
	return "gemini"
}

// MaskedKey returns the redacted form of the key under test.
func (p *GeminiProber) MaskedKey() string {
	return internal.MaskKey(p.apiKey)
}

// Probe issues a single GET to the model-listing endpoint with the key
// as a query parameter. A single best-effort call: no retries, no
// backoff. Non-200 answers are returned as *StatusError (or *QuotaError
// when the body contains the quota marker) carrying the raw body.
func (p *GeminiProber) Probe(ctx context.Context) (*Report, error) {
	if !credential.Valid(p.apiKey) {
		return nil, fmt.Errorf("no valid API key configured")
	}

	params := url.Values{}
	params.Set("key", p.apiKey)
	reqURL := p.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := StatusError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
		if strings.Contains(string(body), quotaMarker) {
			return nil, &QuotaError{StatusError: statusErr}
		}
		return nil, &statusErr
	}

	var listResp geminiListResponse
	if err := json.Unmarshal(body, &listResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &Report{
		Provider:   p.Name(),
		MaskedKey:  p.MaskedKey(),
		Valid:      true,
		StatusCode: resp.StatusCode,
		Models:     listResp.Models,
	}, nil
}
