package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cacheport "kejayangu/internal/infrastructure/cache/port"
	"kejayangu/internal/pkg/chat/application/usecase"
	"kejayangu/internal/pkg/chat/persistence/repository/adapter"
)

// MarkMessageReadController handles the read acknowledgment endpoint.
// The transition is idempotent; acknowledging twice succeeds quietly.
type MarkMessageReadController struct {
	UC *usecase.MarkMessageReadUseCase
}

func NewMarkMessageReadController(pool *pgxpool.Pool, cache cacheport.Cache) *MarkMessageReadController {
	return &MarkMessageReadController{
		UC: usecase.NewMarkMessageReadUseCase(adapter.NewPgChatRepository(pool), cache),
	}
}

func (h *MarkMessageReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		messageID := c.Param("messageId")
		if messageID == "" {
			respondMessage(c, http.StatusBadRequest, "messageId is required")
			return
		}

		in := usecase.MarkMessageReadInput{
			MessageID:   messageID,
			RequesterID: currentUserID(c),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := h.UC.Execute(ctx, in); err != nil {
			respondUseCaseError(c, err)
			return
		}

		respondData(c, http.StatusOK, gin.H{"messageId": messageID, "isRead": true})
	}
}
