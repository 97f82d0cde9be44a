package chat

import (
	"errors"
	"time"
)

// Domain-level errors for chat behaviors
var (
	ErrInvalidConversation = errors.New("chat: conversation/message mismatch")
	ErrNotParticipant      = errors.New("chat: user is not a participant in the conversation")
	ErrNotRecipient        = errors.New("chat: only the recipient may mark a message read")
	ErrSelfConversation    = errors.New("chat: cannot open a conversation with yourself")
	ErrEmptyMessage        = errors.New("chat: message body is empty")
	ErrBackdatedMessage    = errors.New("chat: message timestamp is backdated")
)

// Chat is the aggregate for a conversation and its invariants. The
// application layer hydrates it with participants and the last message
// timestamp before invoking behaviors; persistence stays in repositories.
type Chat struct {
	Conversation  Conversation
	Participants  map[string]Participant // keyed by userID
	LastMessageAt *time.Time             // last persisted message CreatedAt, if known
}

// HasParticipant tells whether userID is part of this chat.
func (c *Chat) HasParticipant(userID string) bool {
	if c == nil || c.Participants == nil {
		return false
	}
	_, ok := c.Participants[userID]
	return ok
}

// OtherParticipant returns the counterparty of userID. The system is strictly
// two-party, so there is always at most one.
func (c *Chat) OtherParticipant(userID string) (Participant, bool) {
	if c == nil {
		return Participant{}, false
	}
	for id, p := range c.Participants {
		if id != userID {
			return p, true
		}
	}
	return Participant{}, false
}

// PostMessage applies domain rules and returns a validated message ready to
// persist. The sender must be a participant, the body non-empty, and the
// timestamp must not regress behind the last known message. On success the
// in-memory watermark advances to the message's timestamp.
func (c *Chat) PostMessage(m Message, now time.Time) (Message, error) {
	if m.ConversationID == "" || c.Conversation.ID == "" || m.ConversationID != c.Conversation.ID {
		return Message{}, ErrInvalidConversation
	}

	if !c.HasParticipant(m.SenderID) {
		return Message{}, ErrNotParticipant
	}

	if m.CreatedAt.IsZero() {
		if now.IsZero() {
			now = time.Now().UTC()
		}
		m.CreatedAt = now.UTC()
	}

	if c.LastMessageAt != nil && m.CreatedAt.Before(c.LastMessageAt.UTC()) {
		return Message{}, ErrBackdatedMessage
	}

	validated, err := NewMessage(m)
	if err != nil {
		return Message{}, err
	}

	ts := validated.CreatedAt
	c.LastMessageAt = &ts

	return *validated, nil
}

// AuthorizeRead checks that requester may transition the message to read:
// a participant of the conversation who is not the sender. Re-reading an
// already-read message is allowed; idempotence is handled at persistence.
func (c *Chat) AuthorizeRead(m Message, requesterID string) error {
	if m.ConversationID != c.Conversation.ID {
		return ErrInvalidConversation
	}
	if !c.HasParticipant(requesterID) {
		return ErrNotParticipant
	}
	if m.SenderID == requesterID {
		return ErrNotRecipient
	}
	return nil
}
