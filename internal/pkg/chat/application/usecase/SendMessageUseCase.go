package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	chat "kejayangu/internal/pkg/chat/application/domain"
	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to send a new message.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Body           string
}

// SendMessageUseCase persists a message after the aggregate validates it.
// The message and the conversation's updated_at advance in one transaction;
// realtime delivery happens after the commit, never before.
type SendMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewSendMessageUseCase(repo repository.ChatRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	if in.ConversationID == "" || in.SenderID == "" {
		return nil, fmt.Errorf("conversationId and senderId are required")
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if errors.Is(err, repository.ErrNoRows) {
		return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, in.ConversationID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	participants, err := uc.Repo.ListParticipants(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// updated_at advances with every persisted message, so it is the
	// conversation's ordering watermark.
	last := conv.UpdatedAt
	aggregate := &chat.Chat{
		Conversation:  *conv,
		Participants:  make(map[string]chat.Participant, len(participants)),
		LastMessageAt: &last,
	}
	for _, p := range participants {
		aggregate.Participants[p.UserID] = p
	}

	msg, err := aggregate.PostMessage(chat.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		Body:           in.Body,
	}, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	saved, err := uc.Repo.SaveMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return saved, nil
}
