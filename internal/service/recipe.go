package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/forkfeed/backend/internal/engagement"
	"github.com/forkfeed/backend/internal/models"
	"github.com/forkfeed/backend/internal/types"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotRecipeOwner = errors.New("only the recipe author may modify it")
)

// voteCacheTTL bounds how long a cached vote state may outlive the ledger
// row that backs it.
const voteCacheTTL = 24 * time.Hour

// RecipeService handles recipe documents, the vote ledger and the aggregate
// like/dislike counters.
type RecipeService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewRecipeService(db *gorm.DB, redisClient *redis.Client) *RecipeService {
	return &RecipeService{
		db:    db,
		redis: redisClient,
	}
}

// CreateRecipe stores a new recipe for the author.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	recipe := models.Recipe{
		Title:          req.Title,
		Ingredients:    req.Ingredients,
		Steps:          req.Steps,
		Tags:           req.Tags,
		ImageURL:       req.ImageURL,
		CookingHours:   req.CookingHours,
		CookingMinutes: req.CookingMinutes,
		Difficulty:     req.Difficulty,
		AuthorID:       authorID,
		Embedding:      GenerateEmbedding(req.Title + " " + strings.Join(req.Tags, " ")),
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipe retrieves a recipe by ID.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe applies the non-empty fields of req. Only the author may
// update; counters are never touched here.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, requesterID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != requesterID {
		return nil, ErrNotRecipeOwner
	}

	if req.Title != "" {
		recipe.Title = req.Title
	}
	if req.Ingredients != nil {
		recipe.Ingredients = req.Ingredients
	}
	if req.Steps != nil {
		recipe.Steps = req.Steps
	}
	if req.Tags != nil {
		recipe.Tags = req.Tags
	}
	if req.ImageURL != "" {
		recipe.ImageURL = req.ImageURL
	}
	if req.CookingHours != nil {
		recipe.CookingHours = *req.CookingHours
	}
	if req.CookingMinutes != nil {
		recipe.CookingMinutes = *req.CookingMinutes
	}
	if req.Difficulty != "" {
		recipe.Difficulty = req.Difficulty
	}
	recipe.Embedding = GenerateEmbedding(recipe.Title + " " + strings.Join(recipe.Tags, " "))

	if err := s.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// DeleteRecipe removes a recipe together with its comments and votes. Only
// the author may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, requesterID uuid.UUID) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if recipe.AuthorID != requesterID {
		return ErrNotRecipeOwner
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// ListRecipes lists recipes, newest first. A free-text query filters by
// title on every dialect and additionally orders by embedding distance on
// postgres; author, difficulty and the following feed narrow the set.
func (s *RecipeService) ListRecipes(ctx context.Context, q types.RecipeListQuery) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx)

	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(title) LIKE ?", like)
		if s.db.Dialector.Name() == "postgres" {
			vec := GenerateEmbedding(q.Search)
			query = query.Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
			})
		}
	} else {
		query = query.Order("created_at DESC")
	}

	if q.Difficulty != "" {
		query = query.Where("difficulty = ?", q.Difficulty)
	}
	if q.AuthorID != nil {
		query = query.Where("author_id = ?", *q.AuthorID)
	}
	if q.FollowedBy != nil {
		followed := s.db.Model(&models.UserFollow{}).
			Select("followee_id").
			Where("follower_id = ?", *q.FollowedBy)
		query = query.Where("author_id IN (?)", followed)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Vote applies a like or dislike action for a user. The transition is
// computed by the engagement core; the ledger row change and both counter
// deltas are committed in one transaction, so the like→dislike switch is a
// single write from the store's point of view. The resulting vote state is
// written through to the cache.
func (s *RecipeService) Vote(ctx context.Context, recipeID, userID uuid.UUID, action engagement.VoteState) (*types.VoteResponse, error) {
	if action != engagement.VoteLike && action != engagement.VoteDislike {
		return nil, fmt.Errorf("invalid vote action %q", action)
	}

	var next engagement.VoteState
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Row lock serializes concurrent votes on the same recipe.
		// SQLite (tests) locks the whole database per write transaction
		// already and rejects FOR UPDATE.
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var recipe models.Recipe
		if err := q.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		previous := engagement.VoteNone
		var ledger models.RecipeVote
		hasLedgerRow := false
		if err := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).First(&ledger).Error; err == nil {
			previous = engagement.VoteState(ledger.Value)
			hasLedgerRow = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var delta engagement.VoteDelta
		next, delta = engagement.ApplyVote(previous, action)

		switch {
		case next == engagement.VoteNone && hasLedgerRow:
			if err := tx.Delete(&ledger).Error; err != nil {
				return err
			}
		case hasLedgerRow:
			ledger.Value = string(next)
			if err := tx.Save(&ledger).Error; err != nil {
				return err
			}
		default:
			ledger = models.RecipeVote{
				RecipeID: recipeID,
				UserID:   userID,
				Value:    string(next),
			}
			if err := tx.Create(&ledger).Error; err != nil {
				return err
			}
		}

		if delta.Likes != 0 || delta.Dislikes != 0 {
			updates := map[string]interface{}{}
			if delta.Likes != 0 {
				updates["likes"] = gorm.Expr("likes + ?", delta.Likes)
			}
			if delta.Dislikes != 0 {
				updates["dislikes"] = gorm.Expr("dislikes + ?", delta.Dislikes)
			}
			if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cacheVoteState(ctx, userID, recipeID, next)

	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return &types.VoteResponse{
		RecipeID: recipeID,
		Vote:     next,
		Likes:    recipe.Likes,
		Dislikes: recipe.Dislikes,
	}, nil
}

// UserVotes returns all of a user's current vote states keyed by recipe id.
// The cache is write-through only; the ledger is authoritative, so the map
// is rebuilt from it and the cache repopulated.
func (s *RecipeService) UserVotes(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]engagement.VoteState, error) {
	var rows []models.RecipeVote
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}

	votes := make(map[uuid.UUID]engagement.VoteState, len(rows))
	for _, row := range rows {
		votes[row.RecipeID] = engagement.VoteState(row.Value)
		s.cacheVoteState(ctx, userID, row.RecipeID, engagement.VoteState(row.Value))
	}
	return votes, nil
}

// CachedVoteState returns the cached vote state for one recipe, falling back
// to the ledger on a cache miss.
func (s *RecipeService) CachedVoteState(ctx context.Context, userID, recipeID uuid.UUID) (engagement.VoteState, error) {
	if s.redis != nil {
		val, err := s.redis.Get(ctx, voteCacheKey(userID, recipeID)).Result()
		if err == nil && engagement.VoteState(val).Valid() {
			return engagement.VoteState(val), nil
		}
	}

	var ledger models.RecipeVote
	err := s.db.WithContext(ctx).Where("recipe_id = ? AND user_id = ?", recipeID, userID).First(&ledger).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.cacheVoteState(ctx, userID, recipeID, engagement.VoteNone)
		return engagement.VoteNone, nil
	}
	if err != nil {
		return engagement.VoteNone, err
	}

	state := engagement.VoteState(ledger.Value)
	s.cacheVoteState(ctx, userID, recipeID, state)
	return state, nil
}

func (s *RecipeService) cacheVoteState(ctx context.Context, userID, recipeID uuid.UUID, state engagement.VoteState) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, voteCacheKey(userID, recipeID), string(state), voteCacheTTL).Err(); err != nil {
		log.Printf("failed to cache vote state for user %s recipe %s: %v", userID, recipeID, err)
	}
}

func voteCacheKey(userID, recipeID uuid.UUID) string {
	return fmt.Sprintf("vote:%s:%s", userID, recipeID)
}
