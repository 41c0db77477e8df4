package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forkfeed/backend/internal/engagement"
	"github.com/forkfeed/backend/internal/service"
	"github.com/forkfeed/backend/internal/types"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
}

func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// ListRecipes returns the feed, optionally filtered by q, difficulty and
// author. feed=following narrows it to recipes by authors the caller
// follows.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	query := types.RecipeListQuery{
		Search:     c.Query("q"),
		Difficulty: c.Query("difficulty"),
	}

	if author := c.Query("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		query.AuthorID = &id
	}

	switch feed := c.Query("feed"); feed {
	case "", "all":
	case "following":
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		query.FollowedBy = &userID
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown feed " + strconv.Quote(feed)})
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), query)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns one recipe annotated with the caller's vote state, so
// clients can render the vote buttons without a second request.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	viewerVote, err := h.recipeService.CachedVoteState(c.Request.Context(), userID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RecipeDetailResponse{
		Recipe:     *recipe,
		ViewerVote: viewerVote,
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

// Vote applies a like or dislike action for the authenticated user and
// returns the new counters plus the caller's resulting vote state.
func (h *RecipeHandler) Vote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.recipeService.Vote(c.Request.Context(), id, userID, engagement.VoteState(req.Action))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UserVotes returns every vote state of the authenticated user, keyed by
// recipe id. Clients call it after login to rebuild their local vote cache.
func (h *RecipeHandler) UserVotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	votes, err := h.recipeService.UserVotes(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"votes": votes})
}
