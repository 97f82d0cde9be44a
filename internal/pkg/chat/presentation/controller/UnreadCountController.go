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

// UnreadCountController handles the aggregate unread badge endpoint.
type UnreadCountController struct {
	UC *usecase.GetUnreadCountUseCase
}

func NewUnreadCountController(pool *pgxpool.Pool, cache cacheport.Cache) *UnreadCountController {
	return &UnreadCountController{
		UC: usecase.NewGetUnreadCountUseCase(adapter.NewPgChatRepository(pool), cache),
	}
}

func (h *UnreadCountController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := usecase.GetUnreadCountInput{UserID: currentUserID(c)}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		count, err := h.UC.Execute(ctx, in)
		if err != nil {
			respondUseCaseError(c, err)
			return
		}

		respondData(c, http.StatusOK, gin.H{"unreadCount": count})
	}
}
