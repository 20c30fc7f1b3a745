package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole gates an endpoint to a single role. Runs after
// JWTAuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxActorRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This action is not available for your role",
			})
			return
		}
		c.Next()
	}
}
