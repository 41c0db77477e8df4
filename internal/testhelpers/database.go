package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forkfeed/backend/internal/database"
	"github.com/forkfeed/backend/internal/models"
	"github.com/forkfeed/backend/internal/service"
)

// SetupTestDatabase opens an isolated in-memory SQLite database with the
// full schema. Each call gets its own database, so tests never share state.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache memory database survives gorm's connection
	// pooling; the random name keeps tests isolated from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestUser inserts a verified user with the given username. The
// password is always "password123".
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		ID:            uuid.New(),
		Username:      username,
		Email:         username + "@example.com",
		PasswordHash:  string(hash),
		EmailVerified: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

// CreateTestRecipe inserts a recipe owned by authorID.
func CreateTestRecipe(t *testing.T, db *gorm.DB, authorID uuid.UUID, title string, ingredients []string) *models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		Title:       title,
		Ingredients: ingredients,
		Steps:       models.JSONBStringArray{"Cook it."},
		Difficulty:  models.DifficultyEasy,
		Embedding:   service.GenerateEmbedding(title),
		AuthorID:    authorID,
	}
	if err := db.Create(&recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return &recipe
}
