// Package memory persists long-term memory entries in SQLite, with a JSON
// file fallback when the database is unavailable.
package memory

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/pkg/filesystem"
	"github.com/ariahq/aria/internal/ports"
)

// SQLiteStore persists memory entries in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.aria/memory/memory.db database.
func NewSQLiteStore() *SQLiteStore {
	path := filepath.Join(filesystem.UserHomeDir(), ".aria", "memory", "memory.db")
	return NewSQLiteStoreAt(path)
}

// NewSQLiteStoreAt opens the database at an explicit path (used in tests).
func NewSQLiteStoreAt(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS memories (
		id TEXT PRIMARY KEY,
		timestamp INTEGER,
		user_input TEXT,
		assistant_reply TEXT,
		intent TEXT,
		tags TEXT
	);`)
	return err
}

func (s *SQLiteStore) fallback() *FileStore {
	return &FileStore{path: s.path + ".json"}
}

// Insert adds one entry.
func (s *SQLiteStore) Insert(entry domain.MemoryEntry) error {
	if s.db == nil {
		return s.fallback().Insert(entry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO memories (id, timestamp, user_input, assistant_reply, intent, tags)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.UserInput, entry.AssistantReply, entry.Intent, string(tags))
	return err
}

// Entries returns all entries, newest first.
func (s *SQLiteStore) Entries() ([]domain.MemoryEntry, error) {
	if s.db == nil {
		return s.fallback().Entries()
	}
	rows, err := s.db.Query(`SELECT id, timestamp, user_input, assistant_reply, intent, tags
		FROM memories ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.MemoryEntry
	for rows.Next() {
		var entry domain.MemoryEntry
		var tags string
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.UserInput, &entry.AssistantReply, &entry.Intent, &tags); err != nil {
			continue
		}
		if tags != "" {
			if err := json.Unmarshal([]byte(tags), &entry.Tags); err != nil {
				entry.Tags = nil
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Replace swaps the whole set of entries in one transaction.
func (s *SQLiteStore) Replace(entries []domain.MemoryEntry) error {
	if s.db == nil {
		return s.fallback().Replace(entries)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM memories`); err != nil {
		tx.Rollback()
		return err
	}
	for _, entry := range entries {
		tags, err := json.Marshal(entry.Tags)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.Exec(`INSERT INTO memories (id, timestamp, user_input, assistant_reply, intent, tags)
			VALUES (?, ?, ?, ?, ?, ?)`,
			entry.ID, entry.Timestamp, entry.UserInput, entry.AssistantReply, entry.Intent, string(tags)); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Delete removes the entry with the given id. Unknown ids are not an error.
func (s *SQLiteStore) Delete(id string) error {
	if s.db == nil {
		return s.fallback().Delete(id)
	}
	_, err := s.db.Exec(`DELETE FROM memories WHERE id = ?`, id)
	return err
}

// Truncate drops the oldest entries so that at most max remain.
func (s *SQLiteStore) Truncate(max int) error {
	if s.db == nil {
		return s.fallback().Truncate(max)
	}
	if max < 0 {
		max = 0
	}
	_, err := s.db.Exec(`DELETE FROM memories WHERE id NOT IN (
		SELECT id FROM memories ORDER BY timestamp DESC LIMIT ?)`, max)
	return err
}

// Clear deletes all entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	_, err := s.db.Exec(`DELETE FROM memories`)
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

var _ ports.MemoryStore = (*SQLiteStore)(nil)
