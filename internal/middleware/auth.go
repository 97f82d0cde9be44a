package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kejayangu/internal/infrastructure/auth"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

// Authenticate resolves the bearer token into a user id and aborts with 401
// when the token is missing, invalid, or expired. Websocket clients may pass
// the token as a query parameter since browsers cannot set headers there.
func Authenticate(signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c, "missing token")
			return
		}

		userID, err := signer.Verify(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "fail",
		"message": message,
	})
}
