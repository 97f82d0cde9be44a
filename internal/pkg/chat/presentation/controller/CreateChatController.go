package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"kejayangu/internal/pkg/chat/application/usecase"
	"kejayangu/internal/pkg/chat/persistence/repository/adapter"
	propAdapter "kejayangu/internal/pkg/property/persistence/repository/adapter"
	userAdapter "kejayangu/internal/pkg/user/persistence/repository/adapter"
)

// CreateChatController handles the create-or-get conversation endpoint.
// One controller per endpoint.
type CreateChatController struct {
	UC *usecase.CreateChatUseCase
}

func NewCreateChatController(pool *pgxpool.Pool) *CreateChatController {
	uc := usecase.NewCreateChatUseCase(
		adapter.NewPgChatRepository(pool),
		userAdapter.NewPgUserRepository(pool),
		propAdapter.NewPgPropertyRepository(pool),
	)
	return &CreateChatController{UC: uc}
}

type createChatRequest struct {
	AgentID    string  `json:"agentId" binding:"required"`
	PropertyID *string `json:"propertyId"`
}

func (h *CreateChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondMessage(c, http.StatusBadRequest, err.Error())
			return
		}

		in := usecase.CreateChatInput{
			RequesterID:    currentUserID(c),
			CounterpartyID: req.AgentID,
			PropertyID:     req.PropertyID,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		result, err := h.UC.Execute(ctx, in)
		if err != nil {
			respondUseCaseError(c, err)
			return
		}

		code := http.StatusOK
		if result.Created {
			code = http.StatusCreated
		}
		respondData(c, code, toConversationView(*result.Conversation, nil, nil))
	}
}
