package middleware

import (
	"admin_panel/internal/domain" // Importing domain models
	"net/http"                    // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware restricts a route to callers whose verified token
// carries the admin role. The check is stateless and reads only the claims
// set by JWTAuthMiddleware; a role change or deactivation after issuance
// takes effect when the token expires.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c) // Get verified claims from context
		// Check if claims exist in context
		if !ok {
			// If not, the auth middleware never ran; abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}
		// Check if the caller's role is admin
		if claims.Role != domain.RoleAdmin {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access only"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
