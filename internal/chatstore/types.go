package chatstore

import (
	"time"

	"github.com/joelkehle/proposal-desk/internal/review"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Content is a message payload: raw proposal text for user turns, a
// structured review for assistant turns. Exactly one side is set.
type Content struct {
	Text   string         `json:"text,omitempty"`
	Review *review.Review `json:"review,omitempty"`
}

// Message is append-only within a conversation and immutable once created.
// A staged message is visible to readers but not yet persisted; it either
// gets confirmed or reverted.
type Message struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	Role           Role      `json:"role"`
	Content        Content   `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	Staged         bool      `json:"staged,omitempty"`
}

type Conversation struct {
	ConversationID string    `json:"conversation_id"`
	Title          string    `json:"title"`
	UserID         string    `json:"user_id"`
	MessageCount   int       `json:"message_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateConversationInput struct {
	ConversationID string
	Title          string
	UserID         string
}

type StageMessageInput struct {
	ConversationID string
	MessageID      string
	Role           Role
	Content        Content
}

// API is the conversation storage interface used by the HTTP layer. It
// allows swapping the in-memory store and the SQLite-backed one.
type API interface {
	CreateConversation(input CreateConversationInput) (*Conversation, error)
	ListConversations(userID string) []Conversation
	GetConversation(conversationID string) (*Conversation, []Message, error)
	RenameConversation(conversationID, title string) error
	DeleteConversation(conversationID string) error

	// Two-phase append. StageMessage tentatively adds a message;
	// ConfirmMessage commits it, RevertMessage withdraws it. Confirming into
	// a conversation deleted in the meantime fails with not_found and the
	// message is discarded, never resurrected.
	StageMessage(input StageMessageInput) (*Message, error)
	ConfirmMessage(conversationID, messageID string) error
	RevertMessage(conversationID, messageID string) error
}
