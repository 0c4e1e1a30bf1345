package domain

import "time"

// MemoryEntry is a stored (question, answer) pair from a completed chat turn.
// Intent and Tags are derived at save time; the entry is immutable thereafter
// and deletable individually or en masse.
type MemoryEntry struct {
	ID             string   `json:"id"`
	Timestamp      int64    `json:"timestamp"`
	UserInput      string   `json:"user_input"`
	AssistantReply string   `json:"assistant_reply"`
	Intent         string   `json:"intent"`
	Tags           []string `json:"tags,omitempty"`
}

// Time converts the entry timestamp back to a time.Time.
func (e MemoryEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Derived intent classifications, first-match-wins in this priority order.
const (
	IntentReminder         = "reminder"
	IntentQuestion         = "question"
	IntentGratitude        = "gratitude"
	IntentHelpRequest      = "help_request"
	IntentGeneralStatement = "general_statement"
)

// MemoryQuery is a parsed relevance-search request. Zero Start/End leave the
// corresponding bound open; empty Tags skips tag filtering.
type MemoryQuery struct {
	Text  string
	Limit int
	Start time.Time
	End   time.Time
	Tags  []string
}

// MemorySearchResult pairs an entry with its relevance score in [0, 1].
type MemorySearchResult struct {
	Entry MemoryEntry
	Score float64
}
