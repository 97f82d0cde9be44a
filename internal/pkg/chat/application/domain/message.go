package chat

import (
	"strings"
	"time"
)

// MessageStatus tracks delivery progress: sent -> delivered -> read.
// Transitions only move forward; content never changes after creation.
type MessageStatus int16

const (
	MessageStatusSent      MessageStatus = 0
	MessageStatusDelivered MessageStatus = 1
	MessageStatusRead      MessageStatus = 2
)

// Message is an immutable log entry in a conversation.
type Message struct {
	ID             string        `db:"id"`
	ConversationID string        `db:"conversation_id"`
	SenderID       string        `db:"sender_id"`
	Body           string        `db:"body"`
	Status         MessageStatus `db:"status"`
	CreatedAt      time.Time     `db:"created_at"`
}

// IsRead reports whether the recipient has acknowledged the message.
func (m Message) IsRead() bool {
	return m.Status >= MessageStatusRead
}

// NewMessage validates and normalizes a message before persistence.
// The body is trimmed and must be non-empty; the creation timestamp is
// server-assigned unless already stamped.
func NewMessage(m Message) (*Message, error) {
	if m.ConversationID == "" || m.SenderID == "" {
		return nil, ErrInvalidConversation
	}

	m.Body = strings.TrimSpace(m.Body)
	if m.Body == "" {
		return nil, ErrEmptyMessage
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	m.Status = MessageStatusSent

	return &m, nil
}
