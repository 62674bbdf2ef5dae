package probe

import (
	"context"
	"os"
	"testing"
)

func TestNewOpenAIProber(t *testing.T) {
	prober := NewOpenAIProber("sk-test-12345678")

	if prober == nil {
		t.Fatal("NewOpenAIProber returned nil")
	}
	if prober.Name() != "openai" {
		t.Errorf("Expected provider name 'openai', got '%s'", prober.Name())
	}
	if prober.MaskedKey() != "sk-t...5678" {
		t.Errorf("Expected masked key 'sk-t...5678', got '%s'", prober.MaskedKey())
	}
	if prober.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestOpenAIProbe_NoKey(t *testing.T) {
	prober := NewOpenAIProber("")

	_, err := prober.Probe(context.Background())
	if err == nil {
		t.Error("Expected error for missing API key")
	}
}

func TestOpenAIProbe_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	prober := NewOpenAIProber(apiKey)
	report, err := prober.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if len(report.Models) == 0 {
		t.Error("Expected at least one model from the live endpoint")
	}
}
