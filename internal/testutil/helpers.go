// Package testutil provides shared helpers for keyprobe tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// WriteEnvFile creates an .env-style file with the given content in dir
// and returns its path.
func WriteEnvFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create env file %s: %v", path, err)
	}
	return path
}

// GeminiModelsJSON builds a model-listing REST response body containing
// one descriptor per name, each supporting generateContent.
func GeminiModelsJSON(t *testing.T, names ...string) string {
	t.Helper()

	type model struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	}
	var resp struct {
		Models []model `json:"models"`
	}
	for _, name := range names {
		resp.Models = append(resp.Models, model{
			Name:                       name,
			SupportedGenerationMethods: []string{"generateContent"},
		})
	}

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal models response: %v", err)
	}
	return string(body)
}
