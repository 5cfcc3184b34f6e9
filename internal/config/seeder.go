package config

import (
	"log"

	"nomadtax/internal/adapters/persistence/models"
	"nomadtax/internal/core/domain"
	"nomadtax/internal/pkg/password"
)

// SeedAdminUser creates the default admin user if it doesn't exist
func SeedAdminUser() error {
	var count int64
	if err := DB.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("ℹ️  Admin user already exists, skipping seed")
		return nil
	}

	hashed, err := password.Hash("admin1234")
	if err != nil {
		return err
	}

	admin := models.User{
		Username: "admin",
		Email:    "admin@nomadtax.io",
		Password: hashed,
		FullName: "System Administrator",
		Role:     string(domain.RoleAdmin),
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded (username: admin)")
	log.Println("⚠️  Remember to change the default admin password!")
	return nil
}
