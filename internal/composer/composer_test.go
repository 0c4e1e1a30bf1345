package composer

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ariahq/aria/internal/domain"
)

func clock(hour int) time.Time {
	return time.Date(2025, time.March, 10, hour, 0, 0, 0, time.UTC)
}

func TestActiveInstructionMorningCondition(t *testing.T) {
	c := New()
	commands := []domain.CustomCommand{
		{Name: "greet", Instruction: "Greet cheerfully.", Condition: "morning"},
	}

	if got := c.ActiveInstruction(commands, clock(8)); got != "Greet cheerfully." {
		t.Fatalf("expected morning command active at 08:00, got %q", got)
	}
	if got := c.ActiveInstruction(commands, clock(22)); got != "" {
		t.Fatalf("expected morning command inactive at 22:00, got %q", got)
	}
}

func TestActiveInstructionJoinsWithBlankLines(t *testing.T) {
	c := New()
	commands := []domain.CustomCommand{
		{Instruction: "Always answer in English."},
		{Instruction: "Keep replies short.", Condition: "evening"},
		{Instruction: "Sign off politely.", Condition: "gibberish condition"},
	}

	got := c.ActiveInstruction(commands, clock(18))
	want := "Always answer in English.\n\nKeep replies short."
	if got != want {
		t.Fatalf("ActiveInstruction = %q, want %q", got, want)
	}
}

func TestInjectIsIdempotent(t *testing.T) {
	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi", Timestamp: 100},
		{Role: domain.RoleAssistant, Content: "hello", Timestamp: 101},
	}

	once := Inject(history, "be concise", 200)
	twice := Inject(once, "be concise", 300)

	systems := 0
	for _, msg := range twice {
		if msg.IsSystem() {
			systems++
		}
	}
	if systems != 1 {
		t.Fatalf("expected exactly one system message, got %d", systems)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second inject changed history (-once +twice):\n%s", diff)
	}
}

func TestInjectReplacesStaleSystemMessage(t *testing.T) {
	history := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "old instruction", Timestamp: 50},
		{Role: domain.RoleUser, Content: "hi", Timestamp: 100},
	}

	got := Inject(history, "new instruction", 200)

	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].Content != "new instruction" || !got[0].IsSystem() {
		t.Fatalf("expected new system message first, got %+v", got[0])
	}
	if got[0].Timestamp != 199 {
		t.Fatalf("expected system timestamp just before user message, got %d", got[0].Timestamp)
	}
}

func TestInjectEmptyInstructionIsNoop(t *testing.T) {
	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi", Timestamp: 100},
	}
	if got := Inject(history, "", 200); len(got) != 1 {
		t.Fatalf("expected history unchanged, got %d messages", len(got))
	}
}
