package main

import (
	"admin_panel/internal/api"        // Custom package for API handlers
	"admin_panel/internal/config"     // Custom package for configuration
	"admin_panel/internal/middleware" // Custom package for middleware
	"admin_panel/internal/session"    // Custom package for session records
	"context"                         // context package is needed for Redis operations
	"log"                             // log package is needed for logging

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database; TranslateError maps unique-index violations to
	// gorm.ErrDuplicatedKey so the handlers can report duplicates from races
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Session records live alongside the listing cache in Redis
	sessions := session.NewStore(redisClient)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/api/auth/login", api.LoginHandler(db, sessions, cfg.JWTSecret, cfg.TokenTTL)) // Login endpoint
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authGroup.POST("/logout", api.LogoutHandler(sessions))  // Logout endpoint
	authGroup.GET("/session", api.SessionHandler(sessions)) // Stored session endpoint

	// User master routes (protected by JWT; listing is role-scoped, writes are admin only)
	userGroup := r.Group("/api/users")
	userGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	userGroup.GET("", api.ListUsersHandler(db)) // List users endpoint
	userAdmin := userGroup.Group("")
	userAdmin.Use(middleware.AdminOnlyMiddleware())
	userAdmin.POST("", api.CreateUserHandler(db))                  // Create user endpoint
	userAdmin.PUT("/:id", api.UpdateUserHandler(db))               // Update user endpoint
	userAdmin.DELETE("/:id", api.DeactivateUserHandler(db))        // Soft-deactivate endpoint
	userAdmin.POST("/:id/activate", api.ActivateUserHandler(db))   // Reactivate endpoint

	// Item master routes (anyone logged in can view, only admin can modify)
	itemGroup := r.Group("/api/items")
	itemGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	itemGroup.GET("", api.ListItemsHandler(db, redisClient)) // List items endpoint
	itemAdmin := itemGroup.Group("")
	itemAdmin.Use(middleware.AdminOnlyMiddleware())
	itemAdmin.POST("", api.CreateItemHandler(db, redisClient))       // Create item endpoint
	itemAdmin.PUT("/:id", api.UpdateItemHandler(db, redisClient))    // Update item endpoint
	itemAdmin.DELETE("/:id", api.DeleteItemHandler(db, redisClient)) // Delete item endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
