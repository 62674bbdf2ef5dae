// Package credential resolves provider API keys from the environment,
// .env-style files, and the viper configuration. It deliberately tolerates
// malformed .env files: only the requested variable's line is inspected.
package credential
