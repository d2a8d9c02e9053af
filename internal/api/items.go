package api

import (
	"admin_panel/internal/domain" // Importing domain models
	"admin_panel/internal/utils"  // Utility functions
	"errors"                      // Error inspection
	"net/http"                    // HTTP status codes
	"strconv"                     // String conversion
	"time"                        // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
	"gorm.io/gorm"                 // GORM ORM library
)

// Request struct for item creation and update
type ItemRequest struct {
	ItemName  string  `json:"itemName" binding:"required"` // Unique item name
	ItemPrice float64 `json:"itemPrice"`                   // Unit price
	ItemType  string  `json:"itemType" binding:"required"` // Free-text category
}

// Cache key and TTL for the item listing
const (
	itemsCacheKey = "items:all"
	itemsCacheTTL = 60 * time.Second
)

// invalidateItemsCache drops the cached listing after a write; best-effort,
// the short TTL bounds staleness if Redis is unreachable
func invalidateItemsCache(c *gin.Context, rdb *redis.Client) {
	if err := utils.DeleteCache(c.Request.Context(), rdb, itemsCacheKey); err != nil {
		logrus.WithError(err).Warn("items: cache invalidation failed")
	}
}

// ListItemsHandler returns all items, serving from the Redis cache when a
// fresh copy exists
func ListItemsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		// Try to get a cached listing first
		var cached []domain.Item
		if found, err := utils.GetCache(ctx, rdb, itemsCacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached) // Serve the cached listing
			return
		}
		var items []domain.Item // Slice to hold items
		if err := db.Order("created_at desc").Find(&items).Error; err != nil {
			logrus.WithError(err).Error("items: list failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		// Cache the listing for future requests
		_ = utils.SetCache(ctx, rdb, itemsCacheKey, items, itemsCacheTTL)
		c.JSON(http.StatusOK, items) // Return the listing
	}
}

// CreateItemHandler creates an item after checking the name against existing
// records
func CreateItemHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Missing required fields"})
			return
		}
		if req.ItemPrice < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Price must not be negative"})
			return
		}
		// Fetch records colliding on the unique name
		var existing []domain.Item
		if err := db.Where("item_name = ?", req.ItemName).Find(&existing).Error; err != nil {
			logrus.WithError(err).Error("items: conflict query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		candidate := domain.Item{ItemName: req.ItemName}
		if fields := domain.DuplicateFields(candidate, existing); len(fields) > 0 {
			duplicateResponse(c, fields)
			return
		}
		item := domain.Item{
			ItemName:  req.ItemName,  // Unique item name
			ItemPrice: req.ItemPrice, // Unit price
			ItemType:  req.ItemType,  // Free-text category
		}
		if err := db.Create(&item).Error; err != nil {
			// Concurrent creates can still hit the unique index
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "DUPLICATE", "message": "Entry already exists"})
				return
			}
			logrus.WithError(err).Error("items: create failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		invalidateItemsCache(c, rdb) // Listing changed
		c.JSON(http.StatusCreated, gin.H{"message": "Item created"})
	}
}

// UpdateItemHandler updates an item; the name conflict check excludes the
// item's own row
func UpdateItemHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Missing id"})
			return
		}
		var req ItemRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Missing required fields"})
			return
		}
		if req.ItemPrice < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Price must not be negative"})
			return
		}
		// Conflict check on the name, excluding this record
		var existing []domain.Item
		if err := db.Where("item_name = ? AND id <> ?", req.ItemName, id).Find(&existing).Error; err != nil {
			logrus.WithError(err).Error("items: conflict query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		candidate := domain.Item{ItemName: req.ItemName}
		if fields := domain.DuplicateFields(candidate, existing); len(fields) > 0 {
			duplicateResponse(c, fields)
			return
		}
		updates := map[string]any{
			"item_name":  req.ItemName,  // Unique item name
			"item_price": req.ItemPrice, // Unit price
			"item_type":  req.ItemType,  // Free-text category
		}
		if err := db.Model(&domain.Item{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "DUPLICATE", "message": "Entry already exists"})
				return
			}
			logrus.WithError(err).Error("items: update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		invalidateItemsCache(c, rdb) // Listing changed
		c.JSON(http.StatusOK, gin.H{"message": "Item updated"})
	}
}

// DeleteItemHandler removes an item; items carry no lifecycle, so this is a
// hard delete unlike the user master's soft-deactivation
func DeleteItemHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "Missing id"})
			return
		}
		if err := db.Delete(&domain.Item{}, id).Error; err != nil {
			logrus.WithError(err).Error("items: delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		invalidateItemsCache(c, rdb) // Listing changed
		c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
	}
}
