package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

type Recipe struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
	Title          string           `gorm:"size:255;not null" json:"title"`
	Ingredients    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps          JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Tags           JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	ImageURL       string           `gorm:"size:255" json:"image_url"`
	CookingHours   int              `json:"cooking_hours"`
	CookingMinutes int              `json:"cooking_minutes"`
	Difficulty     string           `gorm:"size:10;not null;default:'easy'" json:"difficulty"`
	Likes          int              `gorm:"not null;default:0;check:likes >= 0" json:"likes"`
	Dislikes       int              `gorm:"not null;default:0;check:dislikes >= 0" json:"dislikes"`
	Embedding      pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
	AuthorID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"author_id"`
}

// Difficulty levels a recipe may carry.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether d is a known difficulty level.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
