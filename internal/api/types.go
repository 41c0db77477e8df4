package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forkfeed/backend/internal/engagement"
	"github.com/forkfeed/backend/internal/service"
)

// statusOf maps service and engagement errors onto HTTP status codes.
// Validation failures are 400, missing snapshots 404, ownership violations
// 403; anything unrecognized is a 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, engagement.ErrEmptyText),
		errors.Is(err, service.ErrEmptyIngredientQuery),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrAlreadyVerified),
		errors.Is(err, service.ErrWrongCode),
		errors.Is(err, service.ErrCodeExpired),
		errors.Is(err, service.ErrUnsupportedImageType):
		return http.StatusBadRequest
	case errors.Is(err, engagement.ErrNotCommentAuthor),
		errors.Is(err, service.ErrNotRecipeOwner):
		return http.StatusForbidden
	case errors.Is(err, engagement.ErrCommentNotFound),
		errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the mapped status and message for err.
func abortWithError(c *gin.Context, err error) {
	status := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}

// currentUserID pulls the authenticated user id the auth middleware stored.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}
