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

// DeleteChatController handles the terminal delete-conversation endpoint.
type DeleteChatController struct {
	UC *usecase.DeleteChatUseCase
}

func NewDeleteChatController(pool *pgxpool.Pool) *DeleteChatController {
	return &DeleteChatController{UC: usecase.NewDeleteChatUseCase(adapter.NewPgChatRepository(pool))}
}

func (h *DeleteChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if chatID == "" {
			respondMessage(c, http.StatusBadRequest, "chatId is required")
			return
		}

		in := usecase.DeleteChatInput{
			ConversationID: chatID,
			RequesterID:    currentUserID(c),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, in); err != nil {
			respondUseCaseError(c, err)
			return
		}

		respondData(c, http.StatusOK, gin.H{"deleted": true})
	}
}
