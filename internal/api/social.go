package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkfeed/backend/internal/service"
	"github.com/forkfeed/backend/internal/types"
)

type SocialHandler struct {
	socialService *service.SocialService
}

func NewSocialHandler(socialService *service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

func (h *SocialHandler) ListUsers(c *gin.Context) {
	users, err := h.socialService.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *SocialHandler) GetProfile(c *gin.Context) {
	profile, err := h.socialService.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *SocialHandler) Follow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.socialService.Follow(c.Request.Context(), userID, c.Param("username"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *SocialHandler) Unfollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.socialService.Unfollow(c.Request.Context(), userID, c.Param("username"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *SocialHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.socialService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
