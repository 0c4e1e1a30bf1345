// Package domain defines core business entities and value objects for Aria.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures. Conversation messages, memory
// entries, and custom commands all live here.
package domain

import "time"

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is a single entry in the conversation log.
//
// Timestamp is epoch milliseconds and doubles as the ordering key and the
// de-facto unique id of a message. Messages are never mutated once created;
// the log is append-only and cleared wholesale.
type ChatMessage struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// NewChatMessage builds a message stamped with the current wall clock.
func NewChatMessage(role Role, content string) ChatMessage {
	return ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: NowMillis(),
	}
}

// NowMillis returns the current time as epoch milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// Time converts the message timestamp back to a time.Time.
func (m ChatMessage) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// IsSystem reports whether the message carries the system role.
func (m ChatMessage) IsSystem() bool {
	return m.Role == RoleSystem
}
