package repository

import (
	"context"
	"errors"

	chat "kejayangu/internal/pkg/chat/application/domain"
)

// ErrNoRows signals that the requested record does not exist. Adapters
// translate their driver's sentinel to this one.
var ErrNoRows = errors.New("chat repository: no rows")

// ConversationSummary is a conversation as shown in a user's inbox listing.
type ConversationSummary struct {
	Conversation chat.Conversation
	Participants []chat.Participant
	UnreadCount  int
}

// ChatRepository defines persistence operations for the chat domain.
// Mutations that touch more than one row run in a single transaction.
type ChatRepository interface {
	// CreateOrGetConversation atomically inserts the conversation and its
	// participants, or fetches the existing conversation with the same pair
	// key. The returned bool is true when a new row was created.
	CreateOrGetConversation(ctx context.Context, c chat.Conversation, participants []chat.Participant) (*chat.Conversation, bool, error)

	GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error)
	ListConversations(ctx context.Context, userID string, limit, offset int) ([]ConversationSummary, int, error)
	DeleteConversation(ctx context.Context, conversationID string) error

	ListParticipants(ctx context.Context, conversationID string) ([]chat.Participant, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)

	// SaveMessage persists the message and advances the conversation's
	// updated_at in the same transaction.
	SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error)

	// GetMessagesByConversation returns one page ordered newest-first along
	// with the total message count for pagination.
	GetMessagesByConversation(ctx context.Context, conversationID string, limit, offset int) ([]chat.Message, int, error)

	GetMessage(ctx context.Context, messageID string) (*chat.Message, error)

	// MarkMessageRead transitions the message to read. Returns false when the
	// message was already read (a no-op, not an error).
	MarkMessageRead(ctx context.Context, messageID string) (bool, error)

	// MarkDelivered moves all sent messages addressed to recipientID in the
	// conversation to delivered.
	MarkDelivered(ctx context.Context, conversationID, recipientID string) error

	// CountUnread sums unread messages across every conversation where userID
	// participates and is not the sender.
	CountUnread(ctx context.Context, userID string) (int, error)
}
