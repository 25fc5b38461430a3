package chatstore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	Clock func() time.Time
}

// Store is the in-memory conversation store. SQLiteStore embeds it and adds
// write-through persistence; the runtime logic (ordering, staging,
// cancel-on-delete) all lives here.
type Store struct {
	mu sync.Mutex

	cfg Config

	conversations        map[string]*Conversation
	messages             map[string]*Message
	conversationMessages map[string][]string
}

func NewStore(cfg Config) *Store {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Store{
		cfg:                  cfg,
		conversations:        map[string]*Conversation{},
		messages:             map[string]*Message{},
		conversationMessages: map[string][]string{},
	}
}

func (s *Store) CreateConversation(input CreateConversationInput) (*Conversation, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, NewValidationError("user_id is required")
	}
	id := strings.TrimSpace(input.ConversationID)
	if id == "" {
		id = uuid.NewString()
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = "New Review"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.conversations[id]; exists {
		return nil, NewConflictError("conversation already exists: " + id)
	}
	c := &Conversation{
		ConversationID: id,
		Title:          title,
		UserID:         userID,
		CreatedAt:      s.cfg.Clock().UTC(),
	}
	s.conversations[id] = c
	s.conversationMessages[id] = []string{}
	cp := *c
	return &cp, nil
}

func (s *Store) ListConversations(userID string) []Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Conversation{}
	for _, c := range s.conversations {
		if userID != "" && c.UserID != userID {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ConversationID < out[j].ConversationID
	})
	return out
}

func (s *Store) GetConversation(conversationID string) (*Conversation, []Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[conversationID]
	if !ok {
		return nil, nil, NewNotFoundError("conversation not found: " + conversationID)
	}
	msgs := make([]Message, 0, len(s.conversationMessages[conversationID]))
	for _, mid := range s.conversationMessages[conversationID] {
		if m, ok := s.messages[mid]; ok {
			msgs = append(msgs, *m)
		}
	}
	cp := *c
	return &cp, msgs, nil
}

func (s *Store) RenameConversation(conversationID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return NewValidationError("title is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[conversationID]
	if !ok {
		return NewNotFoundError("conversation not found: " + conversationID)
	}
	c.Title = title
	return nil
}

func (s *Store) DeleteConversation(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[conversationID]; !ok {
		return NewNotFoundError("conversation not found: " + conversationID)
	}
	for _, mid := range s.conversationMessages[conversationID] {
		delete(s.messages, mid)
	}
	delete(s.conversationMessages, conversationID)
	delete(s.conversations, conversationID)
	return nil
}

func (s *Store) StageMessage(input StageMessageInput) (*Message, error) {
	if input.Role != RoleUser && input.Role != RoleAssistant {
		return nil, NewValidationError("role must be user or assistant")
	}
	if input.Content.Text == "" && input.Content.Review == nil {
		return nil, NewValidationError("message content is required")
	}
	id := strings.TrimSpace(input.MessageID)
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[input.ConversationID]; !ok {
		return nil, NewNotFoundError("conversation not found: " + input.ConversationID)
	}
	if _, exists := s.messages[id]; exists {
		return nil, NewConflictError("message already exists: " + id)
	}
	m := &Message{
		MessageID:      id,
		ConversationID: input.ConversationID,
		Role:           input.Role,
		Content:        input.Content,
		CreatedAt:      s.cfg.Clock().UTC(),
		Staged:         true,
	}
	s.messages[id] = m
	s.conversationMessages[input.ConversationID] = append(s.conversationMessages[input.ConversationID], id)
	s.conversations[input.ConversationID].MessageCount++
	cp := *m
	return &cp, nil
}

// ConfirmMessage commits a staged message. A message whose conversation was
// deleted while it was in flight is already gone from the maps, so the
// confirm fails with not_found and the result stays discarded.
func (s *Store) ConfirmMessage(conversationID, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmLocked(conversationID, messageID)
}

func (s *Store) confirmLocked(conversationID, messageID string) error {
	if _, ok := s.conversations[conversationID]; !ok {
		return NewNotFoundError("conversation not found: " + conversationID)
	}
	m, ok := s.messages[messageID]
	if !ok || m.ConversationID != conversationID {
		return NewNotFoundError("message not found: " + messageID)
	}
	m.Staged = false
	return nil
}

func (s *Store) RevertMessage(conversationID, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revertLocked(conversationID, messageID)
}

func (s *Store) revertLocked(conversationID, messageID string) error {
	m, ok := s.messages[messageID]
	if !ok || m.ConversationID != conversationID {
		// Conversation deletion already discarded it; nothing to undo.
		return nil
	}
	if !m.Staged {
		return NewConflictError("message already confirmed: " + messageID)
	}
	delete(s.messages, messageID)
	ids := s.conversationMessages[conversationID]
	for i, id := range ids {
		if id == messageID {
			s.conversationMessages[conversationID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if c, ok := s.conversations[conversationID]; ok {
		c.MessageCount--
	}
	return nil
}

// snapshotMessage returns a copy for persistence layers.
func (s *Store) snapshotMessage(messageID string) (Message, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[messageID]
	if !ok {
		return Message{}, 0, false
	}
	position := -1
	for i, id := range s.conversationMessages[m.ConversationID] {
		if id == messageID {
			position = i
			break
		}
	}
	return *m, position, position >= 0
}

func (s *Store) snapshotConversation(conversationID string) (Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.conversations[conversationID]
	if !ok {
		return Conversation{}, false
	}
	return *c, true
}

var _ API = (*Store)(nil)
