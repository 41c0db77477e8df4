package main

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forkfeed/backend/config"
	"github.com/forkfeed/backend/internal/database"
	"github.com/forkfeed/backend/internal/models"
)

// Demo accounts for local development. All share the same password and are
// pre-verified so the whole API surface is reachable immediately.
const testUserPassword = "Password123!"

var testUsers = []models.User{
	{Username: "ada", Email: "ada@forkfeed.dev", Bio: "Weeknight cook, pasta enthusiast."},
	{Username: "basil", Email: "basil@forkfeed.dev", Bio: "Everything tastes better with herbs."},
	{Username: "carmen", Email: "carmen@forkfeed.dev", Bio: "Testing the limits of my slow cooker."},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testUserPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	created := 0
	for _, u := range testUsers {
		var existing models.User
		err := db.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check for existing user: %v", err)
		}

		u.PasswordHash = string(hash)
		u.EmailVerified = true
		if err := db.Create(&u).Error; err != nil {
			log.Fatalf("Failed to create user %q: %v", u.Username, err)
		}
		created++
	}

	log.Printf("Seeded %d test users (%d already present)", created, len(testUsers)-created)
}
