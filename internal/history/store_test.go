package history

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state", "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_CreatesStateDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state", "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("Expected state directory to exist: %v", err)
	}
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	entries := []Entry{
		{Timestamp: time.Unix(1000, 0), Provider: "gemini", MaskedKey: "AIza...abcd", Outcome: "ok", StatusCode: 200, ModelCount: 42},
		{Timestamp: time.Unix(2000, 0), Provider: "gemini", MaskedKey: "AIza...efgh", Outcome: "quota", StatusCode: 429},
		{Timestamp: time.Unix(3000, 0), Provider: "openai", MaskedKey: "sk-t...ijkl", Outcome: "failed", StatusCode: 401},
	}
	for _, e := range entries {
		if err := store.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(got))
	}

	// Newest first
	if got[0].Provider != "openai" || got[0].Outcome != "failed" {
		t.Errorf("Expected newest entry first, got %+v", got[0])
	}
	if got[2].ModelCount != 42 {
		t.Errorf("Expected model count preserved, got %+v", got[2])
	}
}

func TestRecent_Limit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		e := Entry{
			Timestamp: time.Unix(int64(1000+i), 0),
			Provider:  "gemini",
			MaskedKey: "AIza...abcd",
			Outcome:   "ok",
		}
		if err := store.Record(e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected limit of 2 entries, got %d", len(got))
	}
}

func TestRecord_DefaultsTimestamp(t *testing.T) {
	store := openTestStore(t)

	if err := store.Record(Entry{Provider: "gemini", MaskedKey: "AIza...abcd", Outcome: "ok"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := store.Recent(1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(got))
	}
	if time.Since(got[0].Timestamp) > time.Minute {
		t.Errorf("Expected recent timestamp, got %v", got[0].Timestamp)
	}
}

func TestPrint(t *testing.T) {
	store := openTestStore(t)

	e := Entry{
		Timestamp:  time.Unix(1700000000, 0),
		Provider:   "gemini",
		MaskedKey:  "AIza...abcd",
		Outcome:    "ok",
		StatusCode: 200,
		ModelCount: 7,
	}
	if err := store.Record(e); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	var buf bytes.Buffer
	if err := store.Print(&buf, 10); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"gemini", "AIza...abcd", "ok", "status=200", "models=7"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrint_Empty(t *testing.T) {
	store := openTestStore(t)

	var buf bytes.Buffer
	if err := store.Print(&buf, 10); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No probes recorded yet") {
		t.Errorf("Expected empty marker, got:\n%s", buf.String())
	}
}
