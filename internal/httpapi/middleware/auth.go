package middleware

import (
	"net/http"
	"strings"

	"carshare/internal/httpapi/dto"
	"carshare/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// AuthMiddleware authenticates API requests from the Authorization header.
// It validates the bearer token (signature, expiry, revocation watermark)
// and binds the acting user's identity into the request context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.Response{Success: false, Message: "missing authorization header"})
			c.Abort()
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, dto.Response{Success: false, Message: "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.Response{Success: false, Message: "invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)

		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id from the context, or
// empty when the request carries no valid actor.
func CurrentUserID(c *gin.Context) string {
	id, exists := c.Get(ContextUserID)
	if !exists {
		return ""
	}
	userID, ok := id.(string)
	if !ok {
		return ""
	}
	return userID
}
