package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	cacheport "kejayangu/internal/infrastructure/cache/port"
	repository "kejayangu/internal/pkg/chat/persistence/repository/port"
)

const unreadCountTTL = 30 * time.Second

// UnreadCountKey is the cache key for a user's aggregate unread count.
func UnreadCountKey(userID string) string {
	return "chat:unread:" + userID
}

// GetUnreadCountInput identifies the requesting participant.
type GetUnreadCountInput struct {
	UserID string
}

// GetUnreadCountUseCase sums unread messages across all of the requester's
// conversations. The count is derived from message state, so it can always
// be recomputed; the cache only shaves load off hot dashboards.
type GetUnreadCountUseCase struct {
	Repo  repository.ChatRepository
	Cache cacheport.Cache // optional
}

func NewGetUnreadCountUseCase(repo repository.ChatRepository, cache cacheport.Cache) *GetUnreadCountUseCase {
	return &GetUnreadCountUseCase{Repo: repo, Cache: cache}
}

func (uc *GetUnreadCountUseCase) Execute(ctx context.Context, in GetUnreadCountInput) (int, error) {
	if in.UserID == "" {
		return 0, fmt.Errorf("userId is required")
	}

	if uc.Cache != nil {
		if cached, err := uc.Cache.Get(ctx, UnreadCountKey(in.UserID)); err == nil {
			if n, convErr := strconv.Atoi(cached); convErr == nil {
				return n, nil
			}
		}
		// miss or transport trouble: recompute from the database
	}

	count, err := uc.Repo.CountUnread(ctx, in.UserID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		_ = uc.Cache.Set(ctx, UnreadCountKey(in.UserID), strconv.Itoa(count), unreadCountTTL)
	}
	return count, nil
}
