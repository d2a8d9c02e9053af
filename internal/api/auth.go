package api

import (
	"admin_panel/internal/domain"     // Importing domain models
	"admin_panel/internal/middleware" // Claims access
	"admin_panel/internal/session"    // Server-held session records
	"admin_panel/internal/utils"      // Utility functions
	"errors"                          // Error inspection
	"net/http"                        // HTTP status codes
	"time"                            // Token TTL

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// LoginUser is the redacted user projection returned on login; it never
// carries the password hash
type LoginUser struct {
	ID       uint   `json:"id"`       // Internal numeric ID
	Username string `json:"username"` // Login name
	FullName string `json:"fullName"` // Display name
	Role     string `json:"role"`     // admin or user
}

// LoginHandler authenticates a user and returns a JWT token plus a redacted
// user projection. The checks run in a fixed order: credentials first, then
// the active flag, so account status cannot be probed without a valid
// password, and an unknown username and a wrong password are
// indistinguishable from outside.
func LoginHandler(db *gorm.DB, sessions *session.Store, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Missing required fields"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// If user not found, return unauthorized
				c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
				return
			}
			logrus.WithError(err).Error("login: user lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		// MySQL's default collation matches case-insensitively; the username
		// comparison must be byte-exact to keep lookalike names apart
		if user.Username != req.Username {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		ok, err := utils.CheckPassword(req.Password, user.PasswordHash)
		if err != nil {
			logrus.WithError(err).Error("login: password verification failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		if !ok {
			// Same body as the unknown-username case so usernames cannot be enumerated
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		// Active check runs only after the credentials verified
		if !user.Active {
			c.JSON(http.StatusForbidden, gin.H{"message": "User account is deactivated"})
			return
		}
		// Generate JWT token scoped with the user's id, username and role
		token, err := utils.GenerateJWT(user.ID, user.Username, user.Role, jwtSecret, tokenTTL)
		if err != nil {
			logrus.WithError(err).Error("login: token generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		resp := LoginUser{
			ID:       user.ID,       // Internal numeric ID
			Username: user.Username, // Login name
			FullName: user.FullName, // Display name
			Role:     user.Role,     // Role
		}
		// Best-effort session record; the client keeps its own copy and the
		// JWT stays the enforcement point, so a cache failure does not block login
		if err := sessions.Save(c.Request.Context(), user.ID, token, resp, tokenTTL); err != nil {
			logrus.WithError(err).Warn("login: session save failed")
		}
		// Return the token and the redacted user in the response
		c.JSON(http.StatusOK, gin.H{"token": token, "user": resp})
	}
}

// LogoutHandler clears the caller's server-held session record
func LogoutHandler(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.ClaimsFromContext(c) // Get verified claims from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}
		// Clearing is best-effort: the record expires on its own and the
		// client drops its copy regardless
		if err := sessions.Clear(c.Request.Context(), claims.UserID); err != nil {
			logrus.WithError(err).Warn("logout: session clear failed")
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// SessionHandler returns the caller's stored session record, or 401 once the
// record's advisory expiry has lapsed
func SessionHandler(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.ClaimsFromContext(c) // Get verified claims from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}
		rec, found, err := sessions.Load(c.Request.Context(), claims.UserID)
		if err != nil {
			logrus.WithError(err).Error("session: load failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		if !found {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Session expired"})
			return
		}
		c.JSON(http.StatusOK, rec) // Return the stored record
	}
}
