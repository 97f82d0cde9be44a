package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"kejayangu/internal/pkg/chat/application/usecase"
	"kejayangu/internal/pkg/chat/persistence/repository/adapter"
)

// GetMessageController handles the paginated message history endpoint.
// Page 1 holds the newest messages; within a page the order is chronological
// ascending. Reading never marks anything as read.
type GetMessageController struct {
	UC *usecase.GetMessageUseCase
}

func NewGetMessageController(pool *pgxpool.Pool) *GetMessageController {
	return &GetMessageController{UC: usecase.NewGetMessageUseCase(adapter.NewPgChatRepository(pool))}
}

func (h *GetMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if chatID == "" {
			respondMessage(c, http.StatusBadRequest, "chatId is required")
			return
		}

		in := usecase.GetMessageInput{
			ConversationID: chatID,
			RequesterID:    currentUserID(c),
			Page:           queryInt(c, "page", 1),
			Limit:          queryInt(c, "limit", 50),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		result, err := h.UC.Execute(ctx, in)
		if err != nil {
			respondUseCaseError(c, err)
			return
		}

		views := make([]messageView, 0, len(result.Messages))
		for _, m := range result.Messages {
			views = append(views, toMessageView(m))
		}

		respondData(c, http.StatusOK, gin.H{
			"messages":   views,
			"pagination": result.Pagination,
		})
	}
}
