package probe

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Prober is implemented by provider-specific key probers.
type Prober interface {
	// Probe issues a single validation call for the configured key.
	Probe(ctx context.Context) (*Report, error)

	// Name returns the provider name (e.g. "gemini").
	Name() string

	// MaskedKey returns a redacted form of the key safe for display.
	MaskedKey() string
}

// Model describes a single model returned by a provider's listing
// endpoint. Gemini model names look like "models/gemini-1.5-pro".
type Model struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	Description                string   `json:"description"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	InputTokenLimit            int      `json:"inputTokenLimit"`
	OutputTokenLimit           int      `json:"outputTokenLimit"`
}

// Report is the outcome of a successful probe. Failed probes are
// reported as errors (*StatusError, *QuotaError) instead.
type Report struct {
	Provider   string
	MaskedKey  string
	Valid      bool
	StatusCode int
	Models     []Model
}

// HasModel reports whether any listed model name contains substr.
func (r *Report) HasModel(substr string) bool {
	for _, m := range r.Models {
		if strings.Contains(m.Name, substr) {
			return true
		}
	}
	return false
}

// Outcome classifies a probe result for logging. It returns one of
// "ok", "quota", "failed" (provider answered non-200) or "error"
// (transport-level failure), plus the status code and model count
// where known.
func Outcome(report *Report, err error) (outcome string, statusCode, modelCount int) {
	if err == nil {
		return "ok", report.StatusCode, len(report.Models)
	}
	var quotaErr *QuotaError
	if errors.As(err, &quotaErr) {
		return "quota", quotaErr.StatusCode, 0
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return "failed", statusErr.StatusCode, 0
	}
	return "error", 0, 0
}

// StatusError indicates the provider answered with a non-200 status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: API call returned status %d", e.Provider, e.StatusCode)
}

// QuotaError is a StatusError whose body marks the key as out of quota.
type QuotaError struct {
	StatusError
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s: quota exceeded (status %d)", e.Provider, e.StatusCode)
}
