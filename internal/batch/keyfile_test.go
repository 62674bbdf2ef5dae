package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func writeKeyFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "keys.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write key file: %v", err)
	}
	return path
}

func TestReadKeyFile(t *testing.T) {
	content := `# production keys
prod = AIzaSyProd123

AIzaSyBare456
staging=AIzaSyStaging789
`
	entries, err := ReadKeyFile(writeKeyFile(t, content))
	if err != nil {
		t.Fatalf("ReadKeyFile failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	expected := []KeyEntry{
		{Label: "prod", Key: "AIzaSyProd123"},
		{Label: "", Key: "AIzaSyBare456"},
		{Label: "staging", Key: "AIzaSyStaging789"},
	}
	for i, want := range expected {
		if entries[i] != want {
			t.Errorf("Entry %d: expected %+v, got %+v", i, want, entries[i])
		}
	}
}

func TestReadKeyFile_SkipsEmptyKeys(t *testing.T) {
	entries, err := ReadKeyFile(writeKeyFile(t, "orphan-label =\n"))
	if err != nil {
		t.Fatalf("ReadKeyFile failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries for label without key, got %d", len(entries))
	}
}

func TestReadKeyFile_CRLF(t *testing.T) {
	entries, err := ReadKeyFile(writeKeyFile(t, "AIzaSyKey1\r\nAIzaSyKey2\r\n"))
	if err != nil {
		t.Fatalf("ReadKeyFile failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Key != "AIzaSyKey1" {
		t.Errorf("Expected carriage return stripped, got %q", entries[0].Key)
	}
}

func TestReadKeyFile_MissingFile(t *testing.T) {
	_, err := ReadKeyFile(filepath.Join(t.TempDir(), "nonexistent"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
