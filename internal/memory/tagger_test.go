package memory

import (
	"testing"

	"github.com/ariahq/aria/internal/domain"
)

func TestClassifyIntentPriorityOrder(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"remind me to call Alice", domain.IntentReminder},
		{"can you remind me about the meeting?", domain.IntentReminder},
		{"what time is the standup?", domain.IntentQuestion},
		{"how does this work", domain.IntentQuestion},
		{"thanks, that was helpful", domain.IntentGratitude},
		{"can you help with the report", domain.IntentHelpRequest},
		{"I moved to Berlin last month", domain.IntentGeneralStatement},
	}

	for _, tt := range tests {
		if got := ClassifyIntent(tt.text); got != tt.want {
			t.Errorf("ClassifyIntent(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDeriveTags(t *testing.T) {
	tags := DeriveTags(
		"Schedule a meeting with Alice on Friday",
		"Done, I emailed alice@example.com about the project.",
	)

	want := map[string]bool{
		"alice": true, "friday": true, "date": true,
		"email": true, "meeting": true, "project": true,
	}
	got := make(map[string]bool, len(tags))
	for _, tag := range tags {
		got[tag] = true
	}
	for tag := range want {
		if !got[tag] {
			t.Errorf("expected tag %q in %v", tag, tags)
		}
	}
}

func TestDeriveTagsSkipsSentenceStarters(t *testing.T) {
	tags := DeriveTags("What should I cook tonight", "Maybe pasta.")
	for _, tag := range tags {
		if tag == "what" {
			t.Fatalf("sentence starter leaked into tags: %v", tags)
		}
	}
}
