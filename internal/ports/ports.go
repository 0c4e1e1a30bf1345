// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// (Hexagonal) pattern, these interfaces allow the core to remain independent
// of specific implementations like databases, HTTP clients, or CLI frameworks.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Provider, MessageStore)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"time"

	"github.com/ariahq/aria/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.aria/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ProviderFactory builds provider instances for a backend configuration.
// It abstracts the creation of the per-provider wire-format adapters.
type ProviderFactory interface {
	ForConfig(domain.ProviderConfig) (Provider, error)
}

// Provider sends a prepared message list to one LLM backend and returns the
// normalized textual reply. Implementations make a single HTTP attempt and
// never retry; callers own appending the result to history.
type Provider interface {
	Name() string
	Send(ctx context.Context, messages []domain.ChatMessage) (string, error)
}

// MessageStore persists the ordered conversation log.
type MessageStore interface {
	Append(domain.ChatMessage) error
	Messages() ([]domain.ChatMessage, error)
	Replace([]domain.ChatMessage) error
	Clear() error
}

// MemoryStore persists memory entries, newest first.
type MemoryStore interface {
	Insert(domain.MemoryEntry) error
	Entries() ([]domain.MemoryEntry, error)
	Replace([]domain.MemoryEntry) error
	Delete(id string) error
	Truncate(max int) error
	Clear() error
}

// CommandSource exposes the user's custom commands, read-only. Editing
// happens through the settings surface that owns the backing file.
type CommandSource interface {
	Commands(context.Context) ([]domain.CustomCommand, error)
}

// ConditionEvaluator decides whether a free-text temporal predicate holds at
// the given instant. A condition that matches no known pattern is inactive.
// The evaluator is a pluggable strategy so the heuristics can be swapped
// without touching the composer contract.
type ConditionEvaluator interface {
	Active(condition string, now time.Time) bool
}

// QueryParser extracts structured search parameters (date ranges, tags) from
// a natural-language memory query, leaving the residual text for scoring.
type QueryParser interface {
	Parse(text string, now time.Time) domain.MemoryQuery
}

// RouteClassifier classifies a user utterance as a memory query, an external
// service request, or a plain chat turn. Pure and stateless.
type RouteClassifier interface {
	Classify(text string) domain.Route
}

// ServiceHandler performs an external integration call for one service kind
// and returns formatted text consumed as if it were a provider reply.
type ServiceHandler interface {
	Kind() domain.ServiceKind
	Handle(ctx context.Context, text string) (string, error)
}

// SyncClient talks to the remote sync backend. Categories are opaque JSON
// blobs keyed by user id; conflict resolution is remote-wins-if-non-empty.
type SyncClient interface {
	Fetch(ctx context.Context, category string) ([]byte, error)
	Push(ctx context.Context, category string, payload []byte) error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
