package internal

import "strings"

// MaskKey returns a redacted form of an API key safe for display and
// storage: the first and last 4 characters with "..." in between.
// Short keys are fully redacted so that they cannot be reconstructed.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "..." + key[len(key)-4:]
}
