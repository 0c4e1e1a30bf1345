package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSourceReadsCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	content := `commands:
  - id: morning
    name: Morning greeting
    instruction: Greet the user warmly.
    condition: before 9am
  - id: concise
    name: Concise answers
    instruction: Keep answers short.
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	source := NewFileSourceAt(path)
	cmds, err := source.Commands(context.Background())
	if err != nil {
		t.Fatalf("Commands: %v", err)
	}
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[0].ID != "morning" || cmds[0].Condition != "before 9am" {
		t.Errorf("first command: %+v", cmds[0])
	}
	if cmds[1].Instruction != "Keep answers short." || cmds[1].Condition != "" {
		t.Errorf("second command: %+v", cmds[1])
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	source := NewFileSourceAt(filepath.Join(t.TempDir(), "missing.yaml"))
	cmds, err := source.Commands(context.Background())
	if err != nil {
		t.Fatalf("Commands: %v", err)
	}
	if cmds != nil {
		t.Errorf("expected nil commands, got %+v", cmds)
	}
}

func TestFileSourceCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o600); err != nil {
		t.Fatal(err)
	}

	source := NewFileSourceAt(path)
	cmds, err := source.Commands(context.Background())
	if err != nil {
		t.Fatalf("Commands: %v", err)
	}
	if len(cmds) != 0 {
		t.Errorf("expected no commands from corrupt file, got %+v", cmds)
	}
}
