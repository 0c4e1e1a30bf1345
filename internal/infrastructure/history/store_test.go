package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ariahq/aria/internal/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "history.jsonl"))

	msgs := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hello", Timestamp: 100},
		{Role: domain.RoleAssistant, Content: "hi there", Timestamp: 200},
	}
	for _, msg := range msgs {
		if err := store.Append(msg); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Messages()
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if diff := cmp.Diff(msgs, got); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStoreSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := `{"role":"user","content":"first","timestamp":1}
not valid json at all
{"role":"assistant","content":"second","timestamp":2}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewFileStoreAt(path)
	got, err := store.Messages()
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Content != "first" || got[1].Content != "second" {
		t.Errorf("unexpected messages: %+v", got)
	}
}

func TestFileStoreReplaceAndClear(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "history.jsonl"))
	if err := store.Append(domain.ChatMessage{Role: domain.RoleUser, Content: "old", Timestamp: 1}); err != nil {
		t.Fatal(err)
	}

	replacement := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "new", Timestamp: 2},
	}
	if err := store.Replace(replacement); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, _ := store.Messages()
	if diff := cmp.Diff(replacement, got); diff != "" {
		t.Errorf("after Replace (-want +got):\n%s", diff)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err := store.Messages()
	if err != nil {
		t.Fatalf("Messages after Clear: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty store after Clear, got %d messages", len(got))
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := NewSQLiteStoreAt(filepath.Join(t.TempDir(), "history.db"))

	msgs := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hello", Timestamp: 100},
		{Role: domain.RoleAssistant, Content: "hi there", Timestamp: 200},
	}
	for _, msg := range msgs {
		if err := store.Append(msg); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.Messages()
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if diff := cmp.Diff(msgs, got); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}

	if err := store.Replace(msgs[:1]); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, _ = store.Messages()
	if len(got) != 1 || got[0].Content != "hello" {
		t.Errorf("after Replace: %+v", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, _ = store.Messages()
	if len(got) != 0 {
		t.Errorf("expected empty store after Clear, got %d messages", len(got))
	}
}
