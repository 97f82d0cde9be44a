package controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"kejayangu/internal/infrastructure/auth"
	user "kejayangu/internal/pkg/user/application/domain"
	"kejayangu/internal/pkg/user/persistence/repository/adapter"
	repository "kejayangu/internal/pkg/user/persistence/repository/port"
)

// LoginController exchanges credentials for a bearer token.
type LoginController struct {
	Repo   repository.UserRepository
	Signer *auth.Signer
}

func NewLoginController(pool *pgxpool.Pool, signer *auth.Signer) *LoginController {
	return &LoginController{Repo: adapter.NewPgUserRepository(pool), Signer: signer}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		u, err := h.Repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
		if errors.Is(err, repository.ErrNoRows) {
			fail(c, http.StatusUnauthorized, user.ErrInvalidCredentials.Error())
			return
		}
		if err != nil {
			fail(c, http.StatusInternalServerError, "internal error")
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
			fail(c, http.StatusUnauthorized, user.ErrInvalidCredentials.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data": gin.H{
				"id":    u.ID,
				"email": u.Email,
				"name":  u.Name,
				"role":  int16(u.Role),
				"token": h.Signer.Issue(u.ID),
			},
		})
	}
}
