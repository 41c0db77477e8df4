package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/forkfeed/backend/internal/api"
	"github.com/forkfeed/backend/internal/database"
	"github.com/forkfeed/backend/internal/middleware"
	"github.com/forkfeed/backend/internal/service"
)

// Handlers bundles every API handler the router mounts.
type Handlers struct {
	Auth    *api.AuthHandler
	Recipe  *api.RecipeHandler
	Comment *api.CommentHandler
	Search  *api.SearchHandler
	Social  *api.SocialHandler
	Image   *api.ImageHandler
}

// SetupRouter configures the application routes. Mutating recipe and vote
// endpoints sit behind the email-verification gate and per-user rate limits;
// reads only require a valid token.
func SetupRouter(
	h Handlers,
	authService service.IAuthService,
	db *gorm.DB,
	redisClient *redis.Client,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/verify", h.Auth.Verify)
		auth.POST("/resend-code", h.Auth.ResendCode)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.GET("/auth/me", h.Auth.Me)

		recipes := protected.Group("/recipes")
		{
			recipes.GET("", h.Recipe.ListRecipes)
			recipes.GET("/:id", h.Recipe.GetRecipe)
			recipes.GET("/:id/comments", h.Comment.ListComments)
		}

		protected.POST("/search/ingredients", h.Search.SearchByIngredients)

		users := protected.Group("/users")
		{
			users.GET("", h.Social.ListUsers)
			users.GET("/:username", h.Social.GetProfile)
		}

		protected.GET("/votes", h.Recipe.UserVotes)
		protected.PUT("/profile", h.Social.UpdateProfile)

		// Everything below writes shared state, so unverified accounts
		// are turned away here.
		verified := protected.Group("")
		verified.Use(middleware.RequireEmailVerification(db))
		{
			creationLimiter := middleware.NewRecipeCreationRateLimiter(redisClient)
			voteLimiter := middleware.NewVoteRateLimiter(redisClient)

			verified.POST("/recipes", creationLimiter.RateLimitMiddleware(), h.Recipe.CreateRecipe)
			verified.PUT("/recipes/:id", h.Recipe.UpdateRecipe)
			verified.DELETE("/recipes/:id", h.Recipe.DeleteRecipe)
			verified.POST("/recipes/:id/vote", voteLimiter.RateLimitMiddleware(), h.Recipe.Vote)

			verified.POST("/recipes/:id/comments", h.Comment.AddComment)
			verified.PUT("/recipes/:id/comments/:commentId", h.Comment.EditComment)
			verified.DELETE("/recipes/:id/comments/:commentId", h.Comment.DeleteComment)

			verified.POST("/users/:username/follow", h.Social.Follow)
			verified.DELETE("/users/:username/follow", h.Social.Unfollow)

			verified.POST("/images", h.Image.UploadImage)
		}
	}

	return router
}
