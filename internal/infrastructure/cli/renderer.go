package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/ariahq/aria/internal/application/doctor"
	"github.com/ariahq/aria/internal/domain"
)

func renderReply(w io.Writer, result domain.TurnResult) {
	prefix := "aria"
	if result.Failed {
		prefix = "aria (error)"
	}
	fmt.Fprintf(w, "%s: %s\n", prefix, result.Reply)
}

func renderHistory(w io.Writer, msgs []domain.ChatMessage) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No conversation history yet.")
		return
	}
	for _, msg := range msgs {
		fmt.Fprintf(w, "[%s] %s: %s\n", msg.Time().Format(time.DateTime), msg.Role, msg.Content)
	}
}

func renderMemories(w io.Writer, entries []domain.MemoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No memories stored yet.")
		return
	}
	for _, entry := range entries {
		ts := time.UnixMilli(entry.Timestamp).Format(time.DateTime)
		fmt.Fprintf(w, "%s  [%s] %s\n", entry.ID, ts, entry.UserInput)
		if len(entry.Tags) > 0 {
			fmt.Fprintf(w, "      tags: %v\n", entry.Tags)
		}
	}
}

func renderChecks(w io.Writer, checks []doctor.Check) {
	marks := map[doctor.Status]string{
		doctor.StatusOK:   "✓",
		doctor.StatusWarn: "!",
		doctor.StatusFail: "✗",
	}
	for _, check := range checks {
		fmt.Fprintf(w, "%s %-20s %s\n", marks[check.Status], check.Name, check.Detail)
	}
}

func renderCommands(w io.Writer, cmds []domain.CustomCommand, active map[string]bool) {
	if len(cmds) == 0 {
		fmt.Fprintln(w, "No custom commands defined.")
		return
	}
	for _, cmd := range cmds {
		state := "active"
		if !active[cmd.ID] {
			state = "inactive"
		}
		condition := cmd.Condition
		if condition == "" {
			condition = "always"
		}
		fmt.Fprintf(w, "%-12s %-8s (%s)\n    %s\n", cmd.ID, state, condition, cmd.Instruction)
	}
}
