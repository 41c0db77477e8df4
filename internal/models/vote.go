package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeVote is the per-(user, recipe) vote ledger. The aggregate counters
// on Recipe can always be recomputed from these rows.
type RecipeVote struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_recipe_voter" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_recipe_voter" json:"user_id"`
	Value     string    `gorm:"size:10;not null" json:"value"` // like or dislike
}

func (RecipeVote) TableName() string {
	return "recipe_votes"
}

func (v *RecipeVote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
