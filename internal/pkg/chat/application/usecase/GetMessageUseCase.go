package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "kejayangu/internal/pkg/chat/application/domain"
	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
)

// GetMessageInput carries parameters to fetch one page of a conversation's history.
type GetMessageInput struct {
	ConversationID string
	RequesterID    string
	Page           int
	Limit          int
}

// GetMessageResult is one page plus its pagination metadata. Pages run
// newest-first (page 1 holds the latest messages) while messages within a
// page are chronological ascending; concatenating pages last-to-first
// reproduces the full ordered history.
type GetMessageResult struct {
	Messages   []chat.Message
	Pagination Pagination
}

// GetMessageUseCase fetches paginated messages for a participant.
// Reading never mutates read state.
type GetMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessageUseCase(repo repository.ChatRepository) *GetMessageUseCase {
	return &GetMessageUseCase{Repo: repo}
}

func (uc *GetMessageUseCase) Execute(ctx context.Context, in GetMessageInput) (*GetMessageResult, error) {
	if in.ConversationID == "" || in.RequesterID == "" {
		return nil, fmt.Errorf("conversationId and requesterId are required")
	}

	if _, err := uc.Repo.GetConversation(ctx, in.ConversationID); err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, in.ConversationID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	ok, err := uc.Repo.IsParticipant(ctx, in.ConversationID, in.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return nil, chat.ErrNotParticipant
	}

	page := NewPagination(0, in.Page, in.Limit)
	msgs, total, err := uc.Repo.GetMessagesByConversation(ctx, in.ConversationID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// Repository returns newest-first; flip so each page reads top-down.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	return &GetMessageResult{
		Messages:   msgs,
		Pagination: NewPagination(total, page.Page, page.Limit),
	}, nil
}
