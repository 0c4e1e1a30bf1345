// Package history persists the conversation log. The primary store is a
// SQLite database; when the database cannot be opened or initialized the
// store degrades to an append-only JSONL file.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/ariahq/aria/internal/domain"
	"github.com/ariahq/aria/internal/pkg/filesystem"
	"github.com/ariahq/aria/internal/ports"
)

// SQLiteStore persists chat messages in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the ~/.aria/history/history.db database.
func NewSQLiteStore() *SQLiteStore {
	path := filepath.Join(filesystem.UserHomeDir(), ".aria", "history", "history.db")
	return NewSQLiteStoreAt(path)
}

// NewSQLiteStoreAt opens the database at an explicit path (used in tests).
func NewSQLiteStoreAt(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		// fallback to file store
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
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		role TEXT,
		content TEXT,
		timestamp INTEGER
	);`)
	return err
}

func (s *SQLiteStore) fallback() *FileStore {
	return &FileStore{path: s.path + ".jsonl"}
}

// Append inserts a message at the end of the log.
func (s *SQLiteStore) Append(msg domain.ChatMessage) error {
	if s.db == nil {
		return s.fallback().Append(msg)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO messages (role, content, timestamp) VALUES (?, ?, ?)`,
		string(msg.Role), msg.Content, msg.Timestamp)
	return err
}

// Messages returns the full log in insertion order.
func (s *SQLiteStore) Messages() ([]domain.ChatMessage, error) {
	if s.db == nil {
		return s.fallback().Messages()
	}
	rows, err := s.db.Query(`SELECT role, content, timestamp FROM messages ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		var role string
		if err := rows.Scan(&role, &msg.Content, &msg.Timestamp); err != nil {
			// corrupt row, skip
			continue
		}
		msg.Role = domain.Role(role)
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// Replace swaps the whole log for msgs in one transaction.
func (s *SQLiteStore) Replace(msgs []domain.ChatMessage) error {
	if s.db == nil {
		return s.fallback().Replace(msgs)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM messages`); err != nil {
		tx.Rollback()
		return err
	}
	for _, msg := range msgs {
		if _, err := tx.Exec(`INSERT INTO messages (role, content, timestamp) VALUES (?, ?, ?)`,
			string(msg.Role), msg.Content, msg.Timestamp); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Clear deletes all messages.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	_, err := s.db.Exec(`DELETE FROM messages`)
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

var _ ports.MessageStore = (*SQLiteStore)(nil)
