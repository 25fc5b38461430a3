package chatstore

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements chatstore.API with SQLite-backed persistence. It
// delegates runtime logic (ordering, staging, cancel-on-delete) to an
// embedded in-memory Store and writes confirmed state through to SQLite.
// Staged messages are memory-only until confirmed; a crash mid-review simply
// loses the tentative turn, which is the retry semantics the UI wants.
type SQLiteStore struct {
	inner *Store
	db    *sqlx.DB

	// mu serializes write-through operations and is held across the
	// in-memory mutation, the snapshot, and the matching DB write. A delete
	// and a confirm are therefore atomic with respect to each other: a
	// confirm can never snapshot before a delete and write its rows back
	// afterwards.
	mu sync.Mutex
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS conversations (
	conversation_id TEXT PRIMARY KEY,
	title           TEXT NOT NULL DEFAULT '',
	user_id         TEXT NOT NULL,
	created_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	message_id      TEXT PRIMARY KEY,
	conversation_id TEXT NOT NULL,
	role            TEXT NOT NULL,
	content         TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	position        INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation
	ON messages (conversation_id, position);
`

func NewSQLiteStore(dbPath string, cfg Config) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &SQLiteStore{inner: NewStore(cfg), db: db}
	if err := s.loadAll(); err != nil {
		db.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}

	if len(s.inner.ListConversations("")) == 0 {
		if err := seedExamples(s); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed examples: %w", err)
		}
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) loadAll() error {
	if err := s.loadConversations(); err != nil {
		return err
	}
	return s.loadMessages()
}

func (s *SQLiteStore) loadConversations() error {
	rows, err := s.db.Query("SELECT conversation_id, title, user_id, created_at FROM conversations")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c Conversation
		var createdAt string
		if err := rows.Scan(&c.ConversationID, &c.Title, &c.UserID, &createdAt); err != nil {
			return err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		s.inner.conversations[c.ConversationID] = &c
		s.inner.conversationMessages[c.ConversationID] = []string{}
	}
	return rows.Err()
}

func (s *SQLiteStore) loadMessages() error {
	rows, err := s.db.Query("SELECT message_id, conversation_id, role, content, created_at FROM messages ORDER BY conversation_id, position")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var m Message
		var role, contentJSON, createdAt string
		if err := rows.Scan(&m.MessageID, &m.ConversationID, &role, &contentJSON, &createdAt); err != nil {
			return err
		}
		m.Role = Role(role)
		if err := json.Unmarshal([]byte(contentJSON), &m.Content); err != nil {
			return fmt.Errorf("decode message %s content: %w", m.MessageID, err)
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		s.inner.messages[m.MessageID] = &m
		s.inner.conversationMessages[m.ConversationID] = append(s.inner.conversationMessages[m.ConversationID], m.MessageID)
		if c, ok := s.inner.conversations[m.ConversationID]; ok {
			c.MessageCount++
		}
	}
	return rows.Err()
}

func timeToString(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func (s *SQLiteStore) saveConversation(c Conversation) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO conversations (conversation_id, title, user_id, created_at) VALUES (?, ?, ?, ?)`,
		c.ConversationID, c.Title, c.UserID, timeToString(c.CreatedAt))
	return err
}

func (s *SQLiteStore) saveMessage(m Message, position int) error {
	blob, err := json.Marshal(m.Content)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO messages (message_id, conversation_id, role, content, created_at, position) VALUES (?, ?, ?, ?, ?, ?)`,
		m.MessageID, m.ConversationID, string(m.Role), string(blob), timeToString(m.CreatedAt), position)
	return err
}

// --- chatstore.API implementation ---

func (s *SQLiteStore) CreateConversation(input CreateConversationInput) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.inner.CreateConversation(input)
	if err != nil {
		return nil, err
	}
	if perr := s.saveConversation(*out); perr != nil {
		return nil, perr
	}
	return out, nil
}

func (s *SQLiteStore) ListConversations(userID string) []Conversation {
	return s.inner.ListConversations(userID)
}

func (s *SQLiteStore) GetConversation(conversationID string) (*Conversation, []Message, error) {
	return s.inner.GetConversation(conversationID)
}

func (s *SQLiteStore) RenameConversation(conversationID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inner.RenameConversation(conversationID, title); err != nil {
		return err
	}
	c, ok := s.inner.snapshotConversation(conversationID)
	if !ok {
		return nil
	}
	return s.saveConversation(c)
}

func (s *SQLiteStore) DeleteConversation(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inner.DeleteConversation(conversationID); err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM messages WHERE conversation_id = ?`, conversationID); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM conversations WHERE conversation_id = ?`, conversationID)
	return err
}

func (s *SQLiteStore) StageMessage(input StageMessageInput) (*Message, error) {
	return s.inner.StageMessage(input)
}

func (s *SQLiteStore) ConfirmMessage(conversationID, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.inner.ConfirmMessage(conversationID, messageID); err != nil {
		return err
	}
	m, position, ok := s.inner.snapshotMessage(messageID)
	if !ok {
		return nil
	}
	if err := s.saveMessage(m, position); err != nil {
		return err
	}
	if c, haveConv := s.inner.snapshotConversation(conversationID); haveConv {
		return s.saveConversation(c)
	}
	return nil
}

func (s *SQLiteStore) RevertMessage(conversationID, messageID string) error {
	// Staged messages were never written; memory-only undo suffices.
	return s.inner.RevertMessage(conversationID, messageID)
}

var _ API = (*SQLiteStore)(nil)
