package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"kejayangu/internal/pkg/chat/application/usecase"
	"kejayangu/internal/pkg/chat/persistence/repository/adapter"
)

// ListChatsController handles the conversation inbox listing endpoint.
type ListChatsController struct {
	UC *usecase.ListChatsUseCase
}

func NewListChatsController(pool *pgxpool.Pool) *ListChatsController {
	return &ListChatsController{UC: usecase.NewListChatsUseCase(adapter.NewPgChatRepository(pool))}
}

func (h *ListChatsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := usecase.ListChatsInput{
			UserID: currentUserID(c),
			Page:   queryInt(c, "page", 1),
			Limit:  queryInt(c, "limit", 20),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		result, err := h.UC.Execute(ctx, in)
		if err != nil {
			respondUseCaseError(c, err)
			return
		}

		views := make([]conversationView, 0, len(result.Conversations))
		for _, s := range result.Conversations {
			unread := s.UnreadCount
			views = append(views, toConversationView(s.Conversation, s.Participants, &unread))
		}

		respondData(c, http.StatusOK, gin.H{
			"conversations": views,
			"pagination":    result.Pagination,
		})
	}
}

func queryInt(c *gin.Context, name string, fallback int) int {
	if v := c.Query(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
