package config

import (
	"voter-registration-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedInitialOfficer creates the first election officer account when the
// officers table is empty, so a fresh deployment can be logged into.
func SeedInitialOfficer(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Officer{}).Count(&count).Error; err != nil {
		Logger.Error("Failed to count officers for seeding", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	email := GetEnvOrDefault("INITIAL_OFFICER_EMAIL", "eo@comelec.local")
	password := GetEnv("INITIAL_OFFICER_PASSWORD")
	if password == "" {
		Logger.Warn("INITIAL_OFFICER_PASSWORD not set, skipping officer seeding")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		Logger.Error("Failed to hash initial officer password", zap.Error(err))
		return
	}

	officer := models.Officer{
		ID:        uuid.New(),
		FirstName: "Election",
		LastName:  "Officer",
		Email:     email,
		Position:  models.ElectionOfficerPosition,
		Password:  string(hashed),
		Active:    true,
	}

	if err := db.Create(&officer).Error; err != nil {
		Logger.Error("Failed to seed initial officer", zap.Error(err))
		return
	}

	Logger.Info("Seeded initial officer account", zap.String("email", email))
}
