package types

import (
	"github.com/forkfeed/backend/internal/engagement"
	"github.com/forkfeed/backend/internal/models"
	"github.com/google/uuid"
)

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// VerifyEmailRequest carries the six-digit code sent by email
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// ResendCodeRequest asks for a fresh verification code
type ResendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title          string   `json:"title" binding:"required,max=255"`
	Ingredients    []string `json:"ingredients" binding:"required,min=1"`
	Steps          []string `json:"steps" binding:"required,min=1"`
	Tags           []string `json:"tags"`
	ImageURL       string   `json:"image_url"`
	CookingHours   int      `json:"cooking_hours" binding:"min=0"`
	CookingMinutes int      `json:"cooking_minutes" binding:"min=0,max=59"`
	Difficulty     string   `json:"difficulty" binding:"required,oneof=easy medium hard"`
}

// UpdateRecipeRequest represents the request body for updating a recipe
type UpdateRecipeRequest struct {
	Title          string   `json:"title"`
	Ingredients    []string `json:"ingredients"`
	Steps          []string `json:"steps"`
	Tags           []string `json:"tags"`
	ImageURL       string   `json:"image_url"`
	CookingHours   *int     `json:"cooking_hours"`
	CookingMinutes *int     `json:"cooking_minutes"`
	Difficulty     string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// RecipeListQuery narrows the recipe feed. Zero values mean no filter.
type RecipeListQuery struct {
	Search     string
	Difficulty string
	AuthorID   *uuid.UUID
	// FollowedBy restricts the feed to recipes whose authors this user
	// follows.
	FollowedBy *uuid.UUID
}

// RecipeDetailResponse is a recipe together with the viewer's current vote
// state on it
type RecipeDetailResponse struct {
	models.Recipe
	ViewerVote engagement.VoteState `json:"viewer_vote"`
}

// VoteRequest represents the request body for voting on a recipe
type VoteRequest struct {
	Action string `json:"action" binding:"required,oneof=like dislike"`
}

// VoteResponse returns the recipe's counters and the caller's vote state
// after the vote was applied
type VoteResponse struct {
	RecipeID uuid.UUID            `json:"recipe_id"`
	Vote     engagement.VoteState `json:"vote"`
	Likes    int                  `json:"likes"`
	Dislikes int                  `json:"dislikes"`
}

// CommentRequest represents the request body for adding or editing a comment
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// IngredientSearchRequest carries the raw comma-separated ingredient input
type IngredientSearchRequest struct {
	Ingredients string `json:"ingredients" binding:"required"`
}

// IngredientSearchResult is one ranked recipe with its match annotation
type IngredientSearchResult struct {
	Recipe  models.Recipe `json:"recipe"`
	Covered []string      `json:"covered"`
	Missing []string      `json:"missing"`
	Percent float64       `json:"percent"`
}

// UpdateProfileRequest represents a request to update a user's profile
type UpdateProfileRequest struct {
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// UserProfileResponse is the public view of a user
type UserProfileResponse struct {
	ID        uuid.UUID   `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Bio       string      `json:"bio"`
	AvatarURL string      `json:"avatar_url"`
	Followers []uuid.UUID `json:"followers"`
	Following []uuid.UUID `json:"following"`
}
