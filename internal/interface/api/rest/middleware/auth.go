package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-presence-api/internal/infrastructure/jwt"
)

const (
	CtxUsername = "username"
	CtxUserID   = "userID"
)

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxUsername, claims.Username)
		c.Set(CtxUserID, claims.UserID)

		c.Next()
	}
}

// SelfOnly lets a request through only when the authenticated user is the one
// named by the path parameter. It must run after AuthMiddleware.
func SelfOnly(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserID) != c.Param(param) {
			c.AbortWithStatusJSON(
				http.StatusForbidden,
				gin.H{"error": "not allowed to act on another user"},
			)
			return
		}

		c.Next()
	}
}
