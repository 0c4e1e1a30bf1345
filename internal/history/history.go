// Package history owns the ordered conversation log and the windowing policy
// that bounds the message list sent to a provider.
package history

import (
	"errors"
	"strings"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/pkg/events"
	"github.com/ariahq/aria/internal/ports"
)

// ErrEmptyContent rejects user/assistant messages without content.
var ErrEmptyContent = errors.New("message content must not be empty")

// Manager wraps the message store with the retained-length bound and the
// dispatch windowing policy.
type Manager struct {
	Store       ports.MessageStore
	MaxMessages int
	WindowSize  int
	Stride      int
	Emitter     *events.Emitter
}

// NewManager applies defaults for zero-valued settings.
func NewManager(store ports.MessageStore, settings domain.HistorySettings, emitter *events.Emitter) *Manager {
	m := &Manager{
		Store:       store,
		MaxMessages: settings.MaxMessages,
		WindowSize:  settings.WindowSize,
		Stride:      settings.WindowStride,
		Emitter:     emitter,
	}
	if m.MaxMessages <= 0 {
		m.MaxMessages = domain.DefaultMaxMessages
	}
	if m.WindowSize <= 0 {
		m.WindowSize = domain.DefaultWindowSize
	}
	if m.Stride <= 0 {
		m.Stride = domain.DefaultWindowStride
	}
	return m
}

// Append adds a message to the end of the log and trims the oldest entries
// beyond the retained maximum. User and assistant messages require content.
func (m *Manager) Append(msg domain.ChatMessage) error {
	if msg.Role != domain.RoleSystem && strings.TrimSpace(msg.Content) == "" {
		return ErrEmptyContent
	}
	if err := m.Store.Append(msg); err != nil {
		return err
	}
	if err := m.trim(); err != nil {
		return err
	}
	m.emit()
	return nil
}

// Messages returns the full retained log. Store corruption degrades to an
// empty history rather than an error.
func (m *Manager) Messages() []domain.ChatMessage {
	msgs, err := m.Store.Messages()
	if err != nil {
		return nil
	}
	return msgs
}

// Clear empties the log entirely; no recovery.
func (m *Manager) Clear() error {
	if err := m.Store.Clear(); err != nil {
		return err
	}
	m.emit()
	return nil
}

// WindowForDispatch bounds the current log for a provider call using the
// manager's configured size and stride.
func (m *Manager) WindowForDispatch(msgs []domain.ChatMessage) []domain.ChatMessage {
	return Window(msgs, m.WindowSize, m.Stride)
}

func (m *Manager) trim() error {
	msgs, err := m.Store.Messages()
	if err != nil || len(msgs) <= m.MaxMessages {
		return err
	}
	return m.Store.Replace(msgs[len(msgs)-m.MaxMessages:])
}

func (m *Manager) emit() {
	if m.Emitter != nil {
		m.Emitter.Emit(events.TopicHistoryChanged)
	}
}

// Window bounds a history for dispatch. Short histories pass through
// unchanged. Longer ones keep every system message, a sparse sample of the
// older portion (every stride-th non-system message, at most windowSize/2),
// and the densest possible recent context (the last windowSize/2 non-system
// messages), in that order. The sparse sample keeps long-range context that
// a pure sliding window would lose.
func Window(msgs []domain.ChatMessage, windowSize, stride int) []domain.ChatMessage {
	if windowSize <= 0 || len(msgs) <= windowSize {
		return msgs
	}
	if stride <= 0 {
		stride = domain.DefaultWindowStride
	}

	var system, rest []domain.ChatMessage
	for _, msg := range msgs {
		if msg.IsSystem() {
			system = append(system, msg)
		} else {
			rest = append(rest, msg)
		}
	}

	half := windowSize / 2
	recentStart := len(rest) - half
	if recentStart < 0 {
		recentStart = 0
	}
	recent := rest[recentStart:]
	older := rest[:recentStart]

	var sampled []domain.ChatMessage
	for i := 0; i < len(older); i += stride {
		sampled = append(sampled, older[i])
	}
	if len(sampled) > half {
		sampled = sampled[:half]
	}
	// System messages always survive; the sample shrinks to keep the
	// total within the window.
	if overflow := len(system) + len(sampled) + len(recent) - windowSize; overflow > 0 {
		if overflow > len(sampled) {
			overflow = len(sampled)
		}
		sampled = sampled[:len(sampled)-overflow]
	}

	out := make([]domain.ChatMessage, 0, len(system)+len(sampled)+len(recent))
	out = append(out, system...)
	out = append(out, sampled...)
	out = append(out, recent...)
	return out
}
