package middleware

import (
	"net/http"
	"strings"

	"filmlog/internal/api/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization
// header and rejects the request otherwise.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, token, ok := claimsFromHeader(c, authService)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			c.Abort()
			return
		}

		// Set user info in context for handlers to use
		c.Set("claims", claims)
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("accessToken", token)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller's identity when a valid token is
// present but lets anonymous requests through. Used on endpoints open to
// anonymous callers that still attribute actions when they can, like comment
// creation.
func OptionalAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, token, ok := claimsFromHeader(c, authService); ok {
			c.Set("claims", claims)
			c.Set("userID", claims.UserID)
			c.Set("username", claims.Username)
			c.Set("accessToken", token)
		}
		c.Next()
	}
}

// claimsFromHeader extracts and validates the bearer token, if any.
func claimsFromHeader(c *gin.Context, authService service.AuthService) (*service.Claims, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "", false
	}

	// Extract token (format: "Bearer <token>")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "", false
	}

	claims, err := authService.ValidateToken(c.Request.Context(), parts[1])
	if err != nil {
		return nil, "", false
	}
	return claims, parts[1], true
}
