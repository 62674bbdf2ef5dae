package batch

import (
	"fmt"
	"os"
	"strings"
)

// KeyEntry represents a single key to probe with an optional label.
type KeyEntry struct {
	Label string
	Key   string
}

// ReadKeyFile reads API keys from a file and returns KeyEntry slice.
// Supported line formats:
//   - bare key: "AIzaSyA..."
//   - labeled key: "staging = AIzaSyB..."
//
// Blank lines and lines starting with '#' are ignored.
func ReadKeyFile(filename string) ([]KeyEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	var entries []KeyEntry
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			label := strings.TrimSpace(parts[0])
			key := strings.TrimSpace(parts[1])
			if key == "" {
				// Label without a key is useless; skip it.
				continue
			}
			entries = append(entries, KeyEntry{Label: label, Key: key})
		} else {
			entries = append(entries, KeyEntry{Key: line})
		}
	}

	return entries, nil
}
