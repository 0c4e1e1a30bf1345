package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/pkg/filesystem"
	"github.com/ariahq/aria/internal/ports"
)

// FileStore persists chat messages as JSON lines. It exists as the degraded
// mode of SQLiteStore and is also handy in tests.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store at ~/.aria/history/history.jsonl.
func NewFileStore() *FileStore {
	return &FileStore{path: filepath.Join(filesystem.UserHomeDir(), ".aria", "history", "history.jsonl")}
}

// NewFileStoreAt creates a store at an explicit path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Append(msg domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return err
	}
	defer f.Close()
	line, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = f.Write(append(line, '\n'))
	return err
}

func (s *FileStore) Messages() ([]domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var msgs []domain.ChatMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg domain.ChatMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			// corrupt line, skip
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs, scanner.Err()
}

func (s *FileStore) Replace(msgs []domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.SecureFilePermissions)
	if err != nil {
		return err
	}
	for _, msg := range msgs {
		line, err := json.Marshal(msg)
		if err != nil {
			f.Close()
			return err
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			f.Close()
			return err
		}
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

var _ ports.MessageStore = (*FileStore)(nil)
