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

// RegisterController handles account creation and issues a token on success.
type RegisterController struct {
	Repo   repository.UserRepository
	Signer *auth.Signer
}

func NewRegisterController(pool *pgxpool.Pool, signer *auth.Signer) *RegisterController {
	return &RegisterController{Repo: adapter.NewPgUserRepository(pool), Signer: signer}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     *int16 `json:"role"`
}

func (h *RegisterController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			fail(c, http.StatusInternalServerError, "internal error")
			return
		}

		role := user.RoleUser
		if req.Role != nil && (*req.Role == int16(user.RoleAgent) || *req.Role == int16(user.RoleUser)) {
			role = user.Role(*req.Role)
		}

		u := user.User{
			Email:        strings.ToLower(strings.TrimSpace(req.Email)),
			Name:         strings.TrimSpace(req.Name),
			PasswordHash: string(hash),
			Role:         role,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		id, err := h.Repo.Create(ctx, u)
		if err != nil {
			if errors.Is(err, user.ErrEmailTaken) {
				fail(c, http.StatusBadRequest, "email already registered")
				return
			}
			fail(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status": "success",
			"data": gin.H{
				"id":    id,
				"email": u.Email,
				"name":  u.Name,
				"role":  int16(u.Role),
				"token": h.Signer.Issue(id),
			},
		})
	}
}

func fail(c *gin.Context, code int, message string) {
	status := "fail"
	if code >= http.StatusInternalServerError {
		status = "error"
	}
	c.JSON(code, gin.H{"status": status, "message": message})
}
