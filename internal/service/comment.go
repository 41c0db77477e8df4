package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkfeed/backend/internal/engagement"
	"github.com/forkfeed/backend/internal/models"
)

// CommentService persists the comment sequences the engagement core
// computes. Ownership and validation rules live in the core; this layer only
// loads snapshots and stores results.
type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// ListComments returns a recipe's comments in insertion order.
func (s *CommentService) ListComments(ctx context.Context, recipeID uuid.UUID) ([]models.Comment, error) {
	if err := s.ensureRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := s.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment validates through the core and appends a comment row.
func (s *CommentService) AddComment(ctx context.Context, recipeID, authorID uuid.UUID, text string) (*models.Comment, error) {
	snapshot, err := s.snapshot(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	_, created, err := engagement.AddComment(snapshot, authorID, text)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:       created.ID,
		RecipeID: recipeID,
		AuthorID: created.AuthorID,
		Text:     created.Text,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// EditComment replaces a comment's text after the core's ownership check.
func (s *CommentService) EditComment(ctx context.Context, recipeID, commentID, requesterID uuid.UUID, newText string) (*models.Comment, error) {
	snapshot, err := s.snapshot(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	updated, err := engagement.EditComment(snapshot, commentID, requesterID, newText)
	if err != nil {
		return nil, err
	}

	var text string
	for _, c := range updated {
		if c.ID == commentID {
			text = c.Text
			break
		}
	}
	if err := s.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", commentID).Update("text", text).Error; err != nil {
		return nil, err
	}

	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, "id = ?", commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment after the core's ownership check.
func (s *CommentService) DeleteComment(ctx context.Context, recipeID, commentID, requesterID uuid.UUID) error {
	snapshot, err := s.snapshot(ctx, recipeID)
	if err != nil {
		return err
	}

	if _, err := engagement.DeleteComment(snapshot, commentID, requesterID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", commentID).Error
}

// snapshot loads a recipe's comments as the core's value type.
func (s *CommentService) snapshot(ctx context.Context, recipeID uuid.UUID) ([]engagement.Comment, error) {
	rows, err := s.ListComments(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	snapshot := make([]engagement.Comment, len(rows))
	for i, row := range rows {
		snapshot[i] = engagement.Comment{
			ID:        row.ID,
			AuthorID:  row.AuthorID,
			Text:      row.Text,
			CreatedAt: row.CreatedAt,
		}
	}
	return snapshot, nil
}

func (s *CommentService) ensureRecipe(ctx context.Context, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	return nil
}
