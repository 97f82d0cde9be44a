package usecase

import (
	"context"
	"fmt"

	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
)

// ListChatsInput pages through the requester's conversations.
type ListChatsInput struct {
	UserID string
	Page   int
	Limit  int
}

type ListChatsResult struct {
	Conversations []repository.ConversationSummary
	Pagination    Pagination
}

// ListChatsUseCase returns the requester's conversations ordered by most
// recent activity, each with its unread count.
type ListChatsUseCase struct {
	Repo repository.ChatRepository
}

func NewListChatsUseCase(repo repository.ChatRepository) *ListChatsUseCase {
	return &ListChatsUseCase{Repo: repo}
}

func (uc *ListChatsUseCase) Execute(ctx context.Context, in ListChatsInput) (*ListChatsResult, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("userId is required")
	}

	page := NewPagination(0, in.Page, in.Limit)
	summaries, total, err := uc.Repo.ListConversations(ctx, in.UserID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &ListChatsResult{
		Conversations: summaries,
		Pagination:    NewPagination(total, page.Page, page.Limit),
	}, nil
}
