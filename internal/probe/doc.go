// Package probe verifies AI-provider API keys by calling the provider's
// model-listing endpoint and reporting what the key can access. The
// Gemini probe talks to the REST endpoint directly so that the exact
// HTTP status and raw response body can be surfaced in diagnostics.
package probe
