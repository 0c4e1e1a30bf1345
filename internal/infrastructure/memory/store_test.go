package memory

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/ports"
)

func sampleEntries() []domain.MemoryEntry {
	return []domain.MemoryEntry{
		{ID: "a", Timestamp: 100, UserInput: "first", AssistantReply: "ok", Intent: domain.IntentGeneralStatement, Tags: []string{"work"}},
		{ID: "b", Timestamp: 200, UserInput: "second", AssistantReply: "sure", Intent: domain.IntentQuestion},
		{ID: "c", Timestamp: 300, UserInput: "third", AssistantReply: "done", Intent: domain.IntentReminder, Tags: []string{"date", "meeting"}},
	}
}

func testStore(t *testing.T, store ports.MemoryStore) {
	t.Helper()
	for _, entry := range sampleEntries() {
		if err := store.Insert(entry); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	entries, err := store.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// newest first
	want := []string{"c", "b", "a"}
	for i, id := range want {
		if entries[i].ID != id {
			t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, id)
		}
	}
	if diff := cmp.Diff([]string{"date", "meeting"}, entries[0].Tags); diff != "" {
		t.Errorf("tags round-trip (-want +got):\n%s", diff)
	}

	if err := store.Truncate(2); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	entries, _ = store.Entries()
	if len(entries) != 2 || entries[0].ID != "c" || entries[1].ID != "b" {
		t.Errorf("after Truncate(2): %+v", entries)
	}

	if err := store.Delete("c"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	entries, _ = store.Entries()
	if len(entries) != 1 || entries[0].ID != "b" {
		t.Errorf("after Delete: %+v", entries)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err = store.Entries()
	if err != nil {
		t.Fatalf("Entries after Clear: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty store after Clear, got %d entries", len(entries))
	}
}

func TestFileStore(t *testing.T) {
	testStore(t, NewFileStoreAt(filepath.Join(t.TempDir(), "memory.json")))
}

func TestSQLiteStore(t *testing.T) {
	testStore(t, NewSQLiteStoreAt(filepath.Join(t.TempDir(), "memory.db")))
}
