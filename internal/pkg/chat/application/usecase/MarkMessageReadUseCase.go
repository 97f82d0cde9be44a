package usecase

import (
	"context"
	"errors"
	"fmt"

	cacheport "kejayangu/internal/infrastructure/cache/port"
	chat "kejayangu/internal/pkg/chat/application/domain"
	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
)

// MarkMessageReadInput identifies the message and the acknowledging participant.
type MarkMessageReadInput struct {
	MessageID   string
	RequesterID string
}

// MarkMessageReadUseCase transitions a message to read. Only the recipient
// may acknowledge; re-marking an already-read message is a no-op. The
// requester's cached unread count is dropped after a successful transition.
type MarkMessageReadUseCase struct {
	Repo  repository.ChatRepository
	Cache cacheport.Cache // optional
}

func NewMarkMessageReadUseCase(repo repository.ChatRepository, cache cacheport.Cache) *MarkMessageReadUseCase {
	return &MarkMessageReadUseCase{Repo: repo, Cache: cache}
}

func (uc *MarkMessageReadUseCase) Execute(ctx context.Context, in MarkMessageReadInput) error {
	if in.MessageID == "" || in.RequesterID == "" {
		return fmt.Errorf("messageId and requesterId are required")
	}

	msg, err := uc.Repo.GetMessage(ctx, in.MessageID)
	if errors.Is(err, repository.ErrNoRows) {
		return fmt.Errorf("%w: message %s", ErrNotFound, in.MessageID)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	conv, err := uc.Repo.GetConversation(ctx, msg.ConversationID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	participants, err := uc.Repo.ListParticipants(ctx, msg.ConversationID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	aggregate := &chat.Chat{
		Conversation: *conv,
		Participants: make(map[string]chat.Participant, len(participants)),
	}
	for _, p := range participants {
		aggregate.Participants[p.UserID] = p
	}

	if err := aggregate.AuthorizeRead(*msg, in.RequesterID); err != nil {
		return err
	}

	updated, err := uc.Repo.MarkMessageRead(ctx, in.MessageID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if updated && uc.Cache != nil {
		// best effort; the count is recomputed from messages on the next miss
		_, _ = uc.Cache.Del(ctx, UnreadCountKey(in.RequesterID))
	}
	return nil
}
