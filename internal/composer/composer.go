// Package composer computes the system instruction active at send time from
// the user's conditional custom commands and injects it into a message list
// at most once, always first.
package composer

import (
	"strings"
	"time"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/ports"
)

// Composer evaluates custom-command conditions through a pluggable strategy.
type Composer struct {
	Evaluator ports.ConditionEvaluator
}

// New returns a Composer backed by the default clock-based evaluator.
func New() *Composer {
	return &Composer{Evaluator: ClockEvaluator{}}
}

// ActiveInstruction concatenates, blank-line separated, the instruction text
// of every command whose condition holds at now. Commands without a
// condition are always included; a condition the evaluator cannot match
// excludes the command.
func (c *Composer) ActiveInstruction(commands []domain.CustomCommand, now time.Time) string {
	var parts []string
	for _, cmd := range commands {
		if strings.TrimSpace(cmd.Instruction) == "" {
			continue
		}
		if cmd.Condition == "" || c.Evaluator.Active(cmd.Condition, now) {
			parts = append(parts, strings.TrimSpace(cmd.Instruction))
		}
	}
	return strings.Join(parts, "\n\n")
}

// Inject prepends a system message carrying instruction to the message list,
// stamped just before userTimestamp. Idempotent: if any existing system
// message already has exactly this content the list is returned unchanged;
// otherwise all prior system messages are removed first, so repeated sends
// never accumulate duplicates while the instruction can still change between
// sends as time-of-day conditions change.
func Inject(msgs []domain.ChatMessage, instruction string, userTimestamp int64) []domain.ChatMessage {
	if instruction == "" {
		return msgs
	}
	for _, msg := range msgs {
		if msg.IsSystem() && msg.Content == instruction {
			return msgs
		}
	}

	out := make([]domain.ChatMessage, 0, len(msgs)+1)
	out = append(out, domain.ChatMessage{
		Role:      domain.RoleSystem,
		Content:   instruction,
		Timestamp: userTimestamp - 1,
	})
	for _, msg := range msgs {
		if !msg.IsSystem() {
			out = append(out, msg)
		}
	}
	return out
}
