package database

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"careers-portal-backend/internal/models"
)

// Connect opens the Postgres connection and runs migrations.
func Connect(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		log.Fatal("Migration failed: ", err)
	}
	return db
}

// Migrate creates/updates the tables. Split out so tests can run it
// against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Application{})
}

// SeedUsers inserts the default accounts (one admin, five candidates)
// when the users table is empty. Passwords are bcrypt-hashed; the
// plaintexts only exist here and in the onboarding docs.
func SeedUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []models.User{
		{Email: "admin@example.com", PasswordHash: mustHash("Admin123!"), Role: "admin", IsActive: true},
		{Email: "user1@example.com", PasswordHash: mustHash("User123!"), Role: "user", IsActive: true},
		{Email: "user2@example.com", PasswordHash: mustHash("User123!"), Role: "user", IsActive: true},
		{Email: "user3@example.com", PasswordHash: mustHash("User123!"), Role: "user", IsActive: true},
		{Email: "user4@example.com", PasswordHash: mustHash("User123!"), Role: "user", IsActive: true},
		{Email: "user5@example.com", PasswordHash: mustHash("User123!"), Role: "user", IsActive: true},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d users", len(users))
	return nil
}

func mustHash(plain string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt: ", err)
	}
	return string(h)
}
