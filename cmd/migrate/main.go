package main

import (
	"admin_panel/internal/config" // Custom import path (Config)
	"admin_panel/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run schema migration
}
