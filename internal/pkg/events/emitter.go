// Package events provides a minimal in-process observer used to broadcast
// storage-change notifications between components. It replaces the cross-tab
// storage signal a browser host would provide, so the same core logic runs
// in tests and non-browser hosts.
package events

import "sync"

// Well-known topics emitted by the stores.
const (
	TopicHistoryChanged  = "history.changed"
	TopicMemoryChanged   = "memory.changed"
	TopicCommandsChanged = "commands.changed"
)

// Emitter is a topic-keyed fan-out of plain notifications. Safe for
// concurrent use, though the chat pipeline itself is sequential.
type Emitter struct {
	mu   sync.Mutex
	subs map[string][]func(topic string)
}

// New creates an empty Emitter.
func New() *Emitter {
	return &Emitter{subs: make(map[string][]func(topic string))}
}

// Subscribe registers fn for a topic and returns an unsubscribe func.
func (e *Emitter) Subscribe(topic string, fn func(topic string)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs[topic] = append(e.subs[topic], fn)
	index := len(e.subs[topic]) - 1
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		handlers := e.subs[topic]
		if index < len(handlers) && handlers[index] != nil {
			handlers[index] = nil
		}
	}
}

// Emit notifies every live subscriber of the topic, in subscription order.
func (e *Emitter) Emit(topic string) {
	e.mu.Lock()
	handlers := append([]func(string){}, e.subs[topic]...)
	e.mu.Unlock()
	for _, fn := range handlers {
		if fn != nil {
			fn(topic)
		}
	}
}
