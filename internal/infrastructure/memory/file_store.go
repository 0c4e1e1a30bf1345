package memory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/pkg/filesystem"
	"github.com/ariahq/aria/internal/ports"
)

// FileStore persists memory entries as a single JSON array, newest first.
// It is the degraded mode of SQLiteStore.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store at ~/.aria/memory/memory.json.
func NewFileStore() *FileStore {
	return &FileStore{path: filepath.Join(filesystem.UserHomeDir(), ".aria", "memory", "memory.json")}
}

// NewFileStoreAt creates a store at an explicit path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() []domain.MemoryEntry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var entries []domain.MemoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// corrupt file, start over
		return nil
	}
	return entries
}

func (s *FileStore) save(entries []domain.MemoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, domain.SecureFilePermissions)
}

func (s *FileStore) Insert(entry domain.MemoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := append([]domain.MemoryEntry{entry}, s.load()...)
	return s.save(entries)
}

func (s *FileStore) Entries() ([]domain.MemoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.load()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}

func (s *FileStore) Replace(entries []domain.MemoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(entries)
}

func (s *FileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.load()
	kept := entries[:0]
	for _, entry := range entries {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	return s.save(kept)
}

func (s *FileStore) Truncate(max int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if max < 0 {
		max = 0
	}
	entries := s.load()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	if len(entries) > max {
		entries = entries[:max]
	}
	return s.save(entries)
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

var _ ports.MemoryStore = (*FileStore)(nil)
