package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "kejayangu/internal/pkg/chat/application/domain"
	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
)

// DeleteChatInput identifies the conversation and the requesting participant.
type DeleteChatInput struct {
	ConversationID string
	RequesterID    string
}

// DeleteChatUseCase removes a conversation and its messages. This is a hard
// delete: afterwards both participants see 404 for the conversation id.
type DeleteChatUseCase struct {
	Repo repository.ChatRepository
}

func NewDeleteChatUseCase(repo repository.ChatRepository) *DeleteChatUseCase {
	return &DeleteChatUseCase{Repo: repo}
}

func (uc *DeleteChatUseCase) Execute(ctx context.Context, in DeleteChatInput) error {
	if in.ConversationID == "" || in.RequesterID == "" {
		return fmt.Errorf("conversationId and requesterId are required")
	}

	if _, err := uc.Repo.GetConversation(ctx, in.ConversationID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return fmt.Errorf("%w: conversation %s", ErrNotFound, in.ConversationID)
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	ok, err := uc.Repo.IsParticipant(ctx, in.ConversationID, in.RequesterID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return chat.ErrNotParticipant
	}

	if err := uc.Repo.DeleteConversation(ctx, in.ConversationID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			// already gone; deletion is terminal either way
			return nil
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
