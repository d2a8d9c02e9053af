package domain

import "time"

// Roles known to the system
const (
	RoleAdmin = "admin" // Full access, can manage users and items
	RoleUser  = "user"  // Can view items only
)

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                          // Primary key
	UserID       string    `gorm:"size:50;uniqueIndex;not null" json:"user_id"`   // Human-chosen user code (e.g. ADM001)
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"` // Unique login name
	FullName     string    `gorm:"size:255;not null" json:"full_name"`            // Display name
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`    // Unique email address
	Mobile       string    `gorm:"size:20;uniqueIndex;not null" json:"mobile"`    // Unique, stored with country-code prefix
	Country      string    `gorm:"size:100" json:"country"`                       // Free-text address fields
	State        string    `gorm:"size:100" json:"state"`
	City         string    `gorm:"size:100" json:"city"`
	Address      string    `gorm:"size:255" json:"address"`
	Pincode      string    `gorm:"size:20" json:"pincode"`
	PasswordHash string    `gorm:"not null" json:"-"`                   // Bcrypt digest, never serialized
	Role         string    `gorm:"size:20;default:user" json:"role"`    // admin or user
	Active       bool      `gorm:"not null;default:true" json:"active"` // Soft-deactivated accounts cannot log in
	CreatedAt    time.Time `json:"created_at"`                          // Set by GORM on insert
}
