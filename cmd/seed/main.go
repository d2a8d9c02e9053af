package main

import (
	"admin_panel/internal/config" // Custom import path (Config)
	"admin_panel/internal/domain" // Custom import path (Models)
	"admin_panel/internal/utils"  // Password hashing
	"errors"                      // Error inspection

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Seeds the stock admin and normal user accounts. Existing rows with the
// same username are left untouched, so the seeder is safe to re-run.
func main() {
	cfg := config.LoadConfig() // Load configuration

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	adminHash, err := utils.HashPassword("Admin@123")
	if err != nil {
		logrus.Fatalf("failed to hash admin password: %v", err)
	}
	userHash, err := utils.HashPassword("User@123")
	if err != nil {
		logrus.Fatalf("failed to hash user password: %v", err)
	}

	seeds := []domain.User{
		{
			UserID:       "ADM001",
			Username:     "admin",
			FullName:     "System Admin",
			Email:        "admin@example.com",
			Mobile:       "+919999999999",
			Country:      "India",
			State:        "Maharashtra",
			City:         "Mumbai",
			Address:      "Admin Address",
			Pincode:      "400001",
			PasswordHash: adminHash,
			Role:         domain.RoleAdmin,
			Active:       true,
		},
		{
			UserID:       "USR001",
			Username:     "user1",
			FullName:     "Normal User",
			Email:        "user1@example.com",
			Mobile:       "+918888888888",
			Country:      "India",
			State:        "Maharashtra",
			City:         "Mumbai",
			Address:      "User Address",
			Pincode:      "400002",
			PasswordHash: userHash,
			Role:         domain.RoleUser,
			Active:       true,
		},
	}

	for _, seed := range seeds {
		var existing domain.User
		err := db.Where("username = ?", seed.Username).First(&existing).Error
		if err == nil {
			logrus.Infof("user %q already present, skipping", seed.Username)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.Fatalf("failed to check for user %q: %v", seed.Username, err)
		}
		if err := db.Create(&seed).Error; err != nil {
			logrus.Fatalf("failed to seed user %q: %v", seed.Username, err)
		}
		logrus.Infof("seeded user %q", seed.Username)
	}
	logrus.Info("Seeding completed.")
}
