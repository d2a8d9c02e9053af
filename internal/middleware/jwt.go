package middleware

import (
	"admin_panel/internal/utils" // JWT utility functions
	"net/http"                   // HTTP status codes
	"strings"                    // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// ContextClaimsKey is where the verified token claims live on the request context
const ContextClaimsKey = "claims"

// JWTAuthMiddleware validates the bearer token and attaches its verified
// claims to the request context. It never reads the database; downstream
// authorization trusts the embedded claims for the token's lifetime.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token invalid or expired"})
			return
		}
		c.Set(ContextClaimsKey, claims) // Store verified claims in context
		c.Next()                        // Proceed to the next handler
	}
}

// ClaimsFromContext returns the claims attached by JWTAuthMiddleware
func ClaimsFromContext(c *gin.Context) (*utils.Claims, bool) {
	v, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*utils.Claims)
	return claims, ok && claims != nil
}
