package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vilamar/restaurante-app/utils"
)

// WebSocketAuthMiddleware re-verifies the token passed in the handshake
// query string before the connection is upgraded.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}
