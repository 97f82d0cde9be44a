package v1

import (
	"github.com/gin-gonic/gin"

	"kejayangu/internal/infrastructure/auth"
	"kejayangu/internal/middleware"
	chathttp "kejayangu/internal/pkg/chat/presentation/http"
	userhttp "kejayangu/internal/pkg/user/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1. Identity
// endpoints are open; everything else requires a bearer token.
func RegisterRoutes(r *gin.Engine, signer *auth.Signer, chatOpts chathttp.Options) {
	v1 := r.Group("/api/v1")

	userhttp.RegisterRoutes(v1, chatOpts.Pool, signer)

	authed := v1.Group("", middleware.Authenticate(signer))
	chathttp.RegisterRoutes(authed, chatOpts)
}
