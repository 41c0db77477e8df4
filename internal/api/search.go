package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkfeed/backend/internal/service"
	"github.com/forkfeed/backend/internal/types"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchByIngredients ranks the whole catalog by how much of each recipe the
// caller's pantry covers. The ingredient list arrives as one comma-separated
// string.
func (h *SearchHandler) SearchByIngredients(c *gin.Context) {
	var req types.IngredientSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.searchService.SearchByIngredients(c.Request.Context(), req.Ingredients)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
