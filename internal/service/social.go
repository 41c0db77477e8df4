package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkfeed/backend/internal/models"
	"github.com/forkfeed/backend/internal/types"
)

var (
	ErrSelfFollow       = errors.New("you cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)

// SocialService maintains the follow graph. Each follow is a single edge
// row, so the follower and following views can never diverge.
type SocialService struct {
	db *gorm.DB
}

func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{db: db}
}

// Follow creates the edge follower→followee.
func (s *SocialService) Follow(ctx context.Context, followerID uuid.UUID, followeeUsername string) (*types.UserProfileResponse, error) {
	followee, err := s.userByUsername(ctx, followeeUsername)
	if err != nil {
		return nil, err
	}
	if followee.ID == followerID {
		return nil, ErrSelfFollow
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.UserFollow
		if err := tx.Where("follower_id = ? AND followee_id = ?", followerID, followee.ID).First(&existing).Error; err == nil {
			return ErrAlreadyFollowing
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		edge := models.UserFollow{
			FollowerID: followerID,
			FolloweeID: followee.ID,
		}
		return tx.Create(&edge).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, followeeUsername)
}

// Unfollow removes the edge follower→followee.
func (s *SocialService) Unfollow(ctx context.Context, followerID uuid.UUID, followeeUsername string) (*types.UserProfileResponse, error) {
	followee, err := s.userByUsername(ctx, followeeUsername)
	if err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followee.ID).
		Delete(&models.UserFollow{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFollowing
	}

	return s.GetProfile(ctx, followeeUsername)
}

// GetProfile returns a user's public profile with both sides of the follow
// graph, derived from the edge table.
func (s *SocialService) GetProfile(ctx context.Context, username string) (*types.UserProfileResponse, error) {
	user, err := s.userByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.edgeIDs(ctx, "followee_id = ?", user.ID, "follower_id")
	if err != nil {
		return nil, err
	}
	following, err := s.edgeIDs(ctx, "follower_id = ?", user.ID, "followee_id")
	if err != nil {
		return nil, err
	}

	return &types.UserProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		Followers: followers,
		Following: following,
	}, nil
}

// ListUsers returns all users' public profiles without follow lists.
func (s *SocialService) ListUsers(ctx context.Context) ([]types.UserProfileResponse, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	profiles := make([]types.UserProfileResponse, len(users))
	for i, user := range users {
		profiles[i] = types.UserProfileResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Bio:       user.Bio,
			AvatarURL: user.AvatarURL,
			Followers: []uuid.UUID{},
			Following: []uuid.UUID{},
		}
	}
	return profiles, nil
}

// UpdateProfile updates the caller's bio and avatar.
func (s *SocialService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.UserProfileResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, user.Username)
}

func (s *SocialService) userByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("LOWER(username) = LOWER(?)", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *SocialService) edgeIDs(ctx context.Context, condition string, id uuid.UUID, column string) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := s.db.WithContext(ctx).Model(&models.UserFollow{}).
		Where(condition, id).
		Order("created_at ASC").
		Pluck(column, &ids).Error
	return ids, err
}
