package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"kejayangu/internal/infrastructure/auth"
	"kejayangu/internal/pkg/user/presentation/controller"
)

// RegisterRoutes registers the identity endpoints. These stay outside the
// authenticated group since they are how a client obtains a token.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, signer *auth.Signer) {
	registerCtl := controller.NewRegisterController(pool, signer)
	loginCtl := controller.NewLoginController(pool, signer)

	g.POST("/auth/register", registerCtl.Handle())
	g.POST("/auth/login", loginCtl.Handle())
}
