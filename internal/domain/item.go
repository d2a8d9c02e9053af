package domain

import "time"

// Item Model
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                           // Primary key
	ItemName  string    `gorm:"size:255;uniqueIndex;not null" json:"item_name"` // Unique item name
	ItemPrice float64   `gorm:"not null" json:"item_price"`                     // Unit price
	ItemType  string    `gorm:"size:100" json:"item_type"`                      // Free-text category
	CreatedAt time.Time `json:"created_at"`                                     // Set by GORM on insert
}
