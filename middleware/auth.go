package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"soothely/utils"
)

// AdminAuth guards the admin surface with a bearer JWT. The token subject
// is stashed in the context for downstream handlers.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing bearer token", "")
			c.Abort()
			return
		}

		token, err := utils.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil || !token.Valid {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", "")
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(string); ok {
				c.Set("adminId", sub)
			}
		}
		c.Next()
	}
}
