// Package commands loads custom system-instruction commands from a YAML
// file. The file is edited by hand (or by a settings surface); the client
// only reads it.
package commands

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/pkg/filesystem"
	"github.com/ariahq/aria/internal/ports"
)

type commandsFile struct {
	Commands []domain.CustomCommand `yaml:"commands"`
}

// FileSource reads custom commands from ~/.aria/commands.yaml.
type FileSource struct {
	path string
}

// NewFileSource creates a source at the default path.
func NewFileSource() *FileSource {
	return &FileSource{path: filepath.Join(filesystem.UserHomeDir(), ".aria", "commands.yaml")}
}

// NewFileSourceAt creates a source at an explicit path (used in tests).
func NewFileSourceAt(path string) *FileSource {
	return &FileSource{path: path}
}

// Commands returns the configured commands. A missing or unreadable file
// means no commands, never an error that aborts a chat turn.
func (s *FileSource) Commands(ctx context.Context) ([]domain.CustomCommand, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var file commandsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		// corrupt file, treat as empty
		return nil, nil
	}
	return file.Commands, nil
}

// Replace rewrites the commands file. Only the sync layer writes commands;
// chat turns read them.
func (s *FileSource) Replace(cmds []domain.CustomCommand) error {
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := yaml.Marshal(commandsFile{Commands: cmds})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, domain.SecureFilePermissions)
}

// Path returns the commands file path.
func (s *FileSource) Path() string {
	return s.path
}

var _ ports.CommandSource = (*FileSource)(nil)
