// Package memory stores (question, answer) pairs from past chat turns and
// retrieves them by relevance search over derived intents and tags.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/pkg/events"
	"github.com/ariahq/aria/internal/ports"
)

// Engine owns the relevance-search algorithm on top of a MemoryStore. Every
// public method degrades to an empty result on storage failure rather than
// raising; a corrupt store never takes the assistant down.
type Engine struct {
	Store        ports.MemoryStore
	Parser       ports.QueryParser
	MaxEntries   int
	MinRelevance float64
	Emitter      *events.Emitter
	Now          func() time.Time
}

// NewEngine applies defaults for zero-valued settings.
func NewEngine(store ports.MemoryStore, settings domain.MemorySettings, emitter *events.Emitter) *Engine {
	e := &Engine{
		Store:        store,
		Parser:       NaturalParser{},
		MaxEntries:   settings.MaxEntries,
		MinRelevance: settings.MinRelevance,
		Emitter:      emitter,
		Now:          time.Now,
	}
	if e.MaxEntries <= 0 {
		e.MaxEntries = domain.DefaultMaxMemories
	}
	if e.MinRelevance <= 0 {
		e.MinRelevance = domain.DefaultMinRelevance
	}
	return e
}

// Save derives intent and tags for a completed turn and stores the entry at
// the front of the collection, evicting the oldest entries past the maximum.
func (e *Engine) Save(userInput, assistantReply string) (domain.MemoryEntry, error) {
	entry := domain.MemoryEntry{
		ID:             uuid.NewString(),
		Timestamp:      e.Now().UnixMilli(),
		UserInput:      userInput,
		AssistantReply: assistantReply,
		Intent:         ClassifyIntent(userInput),
		Tags:           DeriveTags(userInput, assistantReply),
	}
	if err := e.Store.Insert(entry); err != nil {
		return domain.MemoryEntry{}, err
	}
	if err := e.Store.Truncate(e.MaxEntries); err != nil {
		return domain.MemoryEntry{}, err
	}
	if e.Emitter != nil {
		e.Emitter.Emit(events.TopicMemoryChanged)
	}
	return entry, nil
}

// Search filters candidates by timestamp range and tag intersection, scores
// the rest, drops results under the relevance threshold, and returns them
// sorted by descending score, capped to the query limit.
func (e *Engine) Search(q domain.MemoryQuery) []domain.MemorySearchResult {
	entries, err := e.Store.Entries()
	if err != nil {
		return nil
	}
	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	now := e.Now()

	var results []domain.MemorySearchResult
	for _, entry := range entries {
		if !q.Start.IsZero() && entry.Time().Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && !entry.Time().Before(q.End) {
			continue
		}
		if len(q.Tags) > 0 && !hasAnyTag(entry.Tags, q.Tags) {
			continue
		}
		score := relevance(q.Text, entry, now)
		if score < e.MinRelevance {
			continue
		}
		results = append(results, domain.MemorySearchResult{Entry: entry, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Recall answers a natural-language memory query entirely from the store,
// with no network call. The reply is plain text suitable as a chat bubble.
func (e *Engine) Recall(text string) string {
	q := e.Parser.Parse(text, e.Now())
	results := e.Search(q)
	if len(results) == 0 {
		return "I couldn't find anything matching that in our past conversations."
	}

	var b strings.Builder
	b.WriteString("Here's what I remember:\n")
	for i, r := range results {
		when := r.Entry.Time().Format("Jan 2")
		fmt.Fprintf(&b, "%d. (%s) You said: %q, I replied: %q\n",
			i+1, when, r.Entry.UserInput, snippet(r.Entry.AssistantReply, 120))
	}
	return strings.TrimRight(b.String(), "\n")
}

// All returns every stored entry, newest first; empty on storage failure.
func (e *Engine) All() []domain.MemoryEntry {
	entries, err := e.Store.Entries()
	if err != nil {
		return nil
	}
	return entries
}

// Delete removes a single entry by id.
func (e *Engine) Delete(id string) error {
	if err := e.Store.Delete(id); err != nil {
		return err
	}
	if e.Emitter != nil {
		e.Emitter.Emit(events.TopicMemoryChanged)
	}
	return nil
}

// Clear removes all entries.
func (e *Engine) Clear() error {
	if err := e.Store.Clear(); err != nil {
		return err
	}
	if e.Emitter != nil {
		e.Emitter.Emit(events.TopicMemoryChanged)
	}
	return nil
}

func hasAnyTag(entryTags, queryTags []string) bool {
	for _, want := range queryTags {
		for _, have := range entryTags {
			if have == want {
				return true
			}
		}
	}
	return false
}

func snippet(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
