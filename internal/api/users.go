package api

import (
	"admin_panel/internal/domain"     // Importing domain models
	"admin_panel/internal/middleware" // Claims access
	"admin_panel/internal/utils"      // Utility functions
	"errors"                          // Error inspection
	"net/http"                        // HTTP status codes
	"regexp"                          // Regular expressions
	"strconv"                         // String conversion
	"strings"                         // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for user creation
type CreateUserRequest struct {
	UserID   string `json:"userId" binding:"required"`   // Human-chosen user code
	Username string `json:"username" binding:"required"` // Login name
	FullName string `json:"fullName" binding:"required"` // Display name
	Email    string `json:"email" binding:"required"`    // Email address
	Mobile   string `json:"mobile" binding:"required"`   // Mobile with country-code prefix
	Password string `json:"password" binding:"required"` // Plaintext, hashed before storage
	UserType string `json:"userType"`                    // Free-form role label, normalized server-side
	Country  string `json:"country"`                     // Free-text address fields
	State    string `json:"state"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Pincode  string `json:"pincode"`
}

// Request struct for user update; same shape as creation minus the password
type UpdateUserRequest struct {
	UserID   string `json:"userId" binding:"required"`   // Human-chosen user code
	Username string `json:"username" binding:"required"` // Login name
	FullName string `json:"fullName" binding:"required"` // Display name
	Email    string `json:"email" binding:"required"`    // Email address
	Mobile   string `json:"mobile" binding:"required"`   // Mobile with country-code prefix
	UserType string `json:"userType"`                    // Free-form role label, normalized server-side
	Country  string `json:"country"`                     // Free-text address fields
	State    string `json:"state"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Pincode  string `json:"pincode"`
}

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`) // Basic email shape
	mobilePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)           // Digits with optional country-code prefix
)

// isValidEmail checks the basic shape of an email address
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// isValidMobile checks the mobile number: 7-15 digits, optional leading +
func isValidMobile(mobile string) bool {
	return mobilePattern.MatchString(mobile)
}

// isValidPassword checks if the password length is between 8 and 15 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 15
}

// duplicateResponse writes the field-addressable duplicate error so the
// caller can annotate the specific form inputs
func duplicateResponse(c *gin.Context, fields []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "DUPLICATE",                                   // Error kind
		"fields":  fields,                                        // Exactly the colliding field names
		"message": "Duplicate fields: " + strings.Join(fields, ", "), // Human-readable summary
	})
}

// ListUsersHandler returns users scoped by the caller's role. A non-admin
// only ever sees normal users; an admin sees every row except their own.
// An optional ?q= term applies a substring search across the text columns.
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := middleware.ClaimsFromContext(c) // Get verified claims from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}
		query := db.Model(&domain.User{}) // Start building the query
		if claims.Role == domain.RoleAdmin {
			query = query.Where("id <> ?", claims.UserID) // Admins see everyone but themselves
		} else {
			query = query.Where("role = ?", domain.RoleUser) // Non-admins see normal users only
		}
		// Apply the search term identically for both roles
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			like := "%" + q + "%"
			query = query.Where(
				"username LIKE ? OR full_name LIKE ? OR email LIKE ? OR mobile LIKE ? OR user_id LIKE ? OR city LIKE ? OR state LIKE ?",
				like, like, like, like, like, like, like,
			)
		}
		var users []domain.User // Slice to hold users
		if err := query.Order("created_at desc").Find(&users).Error; err != nil {
			logrus.WithError(err).Error("users: list failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, users) // Password hash is excluded by the model's JSON tags
	}
}

// CreateUserHandler creates a user after validating the payload and checking
// the four unique fields against existing records
func CreateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Missing required fields"})
			return
		}
		mobile := strings.TrimSpace(req.Mobile) // Store the mobile exactly as provided, trimmed
		// Validate field shapes before touching the store
		if !isValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Invalid email address"})
			return
		}
		if !isValidMobile(mobile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Mobile must be 7-15 digits"})
			return
		}
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Password must be 8-15 characters"})
			return
		}
		// Fetch every record colliding on any unique field, then compute
		// exactly which fields collide
		var existing []domain.User
		if err := db.Where(
			"user_id = ? OR username = ? OR email = ? OR mobile = ?",
			req.UserID, req.Username, req.Email, mobile,
		).Find(&existing).Error; err != nil {
			logrus.WithError(err).Error("users: conflict query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		candidate := domain.User{UserID: req.UserID, Username: req.Username, Email: req.Email, Mobile: mobile}
		if fields := domain.DuplicateFields(candidate, existing); len(fields) > 0 {
			duplicateResponse(c, fields)
			return
		}
		// Hash the password and create the user
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			logrus.WithError(err).Error("users: password hashing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		user := domain.User{
			UserID:       req.UserID,                       // Human-chosen user code
			Username:     req.Username,                     // Login name
			FullName:     req.FullName,                     // Display name
			Email:        req.Email,                        // Email address
			Mobile:       mobile,                           // Mobile with country-code prefix
			Country:      req.Country,                      // Free-text address fields
			State:        req.State,
			City:         req.City,
			Address:      req.Address,
			Pincode:      req.Pincode,
			PasswordHash: hash,                             // Bcrypt digest
			Role:         domain.NormalizeRole(req.UserType), // Closed two-value role
			Active:       true,                             // New accounts start active
		}
		if err := db.Create(&user).Error; err != nil {
			// A concurrent create can still hit the unique index after the
			// pre-check passed; report it as a duplicate, not a server error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "DUPLICATE", "message": "Entry already exists"})
				return
			}
			logrus.WithError(err).Error("users: create failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "USER_CREATED"})
	}
}

// UpdateUserHandler updates a user's profile fields and role. The conflict
// query excludes the record's own id so it never conflicts with itself.
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Missing id"})
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Missing required fields"})
			return
		}
		mobile := strings.TrimSpace(req.Mobile) // Store the mobile exactly as provided, trimmed
		if !isValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Invalid email address"})
			return
		}
		if !isValidMobile(mobile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Mobile must be 7-15 digits"})
			return
		}
		// Conflict check over all four unique fields, excluding this record
		var existing []domain.User
		if err := db.Where(
			"(user_id = ? OR username = ? OR email = ? OR mobile = ?) AND id <> ?",
			req.UserID, req.Username, req.Email, mobile, id,
		).Find(&existing).Error; err != nil {
			logrus.WithError(err).Error("users: conflict query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		candidate := domain.User{UserID: req.UserID, Username: req.Username, Email: req.Email, Mobile: mobile}
		if fields := domain.DuplicateFields(candidate, existing); len(fields) > 0 {
			duplicateResponse(c, fields)
			return
		}
		updates := map[string]any{
			"user_id":   req.UserID,                         // Human-chosen user code
			"username":  req.Username,                       // Login name
			"full_name": req.FullName,                       // Display name
			"email":     req.Email,                          // Email address
			"mobile":    mobile,                             // Mobile with country-code prefix
			"country":   req.Country,                        // Free-text address fields
			"state":     req.State,
			"city":      req.City,
			"address":   req.Address,
			"pincode":   req.Pincode,
			"role":      domain.NormalizeRole(req.UserType), // Closed two-value role
		}
		if err := db.Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			// The unique index remains the race guard for concurrent updates
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "DUPLICATE", "message": "Entry already exists"})
				return
			}
			logrus.WithError(err).Error("users: update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "USER_UPDATED"})
	}
}

// DeactivateUserHandler soft-deletes a user: the row is kept and the account
// is marked inactive, which blocks future logins. Deactivating an already
// inactive record is a no-op success.
func DeactivateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Missing id"})
			return
		}
		if err := db.Model(&domain.User{}).Where("id = ?", id).Update("active", false).Error; err != nil {
			logrus.WithError(err).Error("users: deactivate failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "USER_DEACTIVATED"})
	}
}

// ActivateUserHandler reverses a soft-delete; idempotent like deactivation
func ActivateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Missing id"})
			return
		}
		if err := db.Model(&domain.User{}).Where("id = ?", id).Update("active", true).Error; err != nil {
			logrus.WithError(err).Error("users: activate failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "USER_ACTIVATED"})
	}
}
