package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/forkfeed/backend/internal/engagement"
	"github.com/forkfeed/backend/internal/models"
	"github.com/forkfeed/backend/internal/types"
)

var ErrEmptyIngredientQuery = errors.New("no ingredients in query")

// SearchService answers "what can I cook with what I have": it loads the
// recipe set and ranks it with the engagement matcher.
type SearchService struct {
	db *gorm.DB
}

func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// SearchByIngredients parses the raw comma-separated input and returns every
// recipe annotated with its match, best match first. Ties keep the feed's
// newest-first order.
func (s *SearchService) SearchByIngredients(ctx context.Context, rawQuery string) ([]types.IngredientSearchResult, error) {
	userIngredients := engagement.ParseIngredientQuery(rawQuery)
	if len(userIngredients) == 0 {
		return nil, ErrEmptyIngredientQuery
	}

	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}

	ranked := engagement.Rank(recipes, func(r models.Recipe) []string { return r.Ingredients }, userIngredients)

	results := make([]types.IngredientSearchResult, len(ranked))
	for i, entry := range ranked {
		results[i] = types.IngredientSearchResult{
			Recipe:  entry.Recipe,
			Covered: entry.Match.Covered,
			Missing: entry.Match.Missing,
			Percent: entry.Match.Percent,
		}
	}
	return results, nil
}
