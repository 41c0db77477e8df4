package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/forkfeed/backend/config"
	"github.com/forkfeed/backend/internal/api"
	"github.com/forkfeed/backend/internal/database"
	"github.com/forkfeed/backend/internal/router"
	"github.com/forkfeed/backend/internal/server"
	"github.com/forkfeed/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.WaitForDatabase(cfg, 30*time.Second); err != nil {
		log.Fatalf("Database not available: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Fatalf("Failed to configure S3: %v", err)
	}
	if os.Getenv("S3_SETUP_BUCKET_POLICY") == "true" {
		if err := s3Config.SetupBucketPolicy(context.Background()); err != nil {
			log.Printf("Failed to apply S3 bucket policy: %v", err)
		}
	}

	emailService := service.NewEmailService()
	authService := service.NewAuthService(db, emailService, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, redisClient)
	commentService := service.NewCommentService(db)
	searchService := service.NewSearchService(db)
	socialService := service.NewSocialService(db)
	imageService := service.NewImageService(s3Config)

	engine := router.SetupRouter(router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Recipe:  api.NewRecipeHandler(recipeService),
		Comment: api.NewCommentHandler(commentService),
		Search:  api.NewSearchHandler(searchService),
		Social:  api.NewSocialHandler(socialService),
		Image:   api.NewImageHandler(imageService),
	}, authService, db, redisClient)

	srv := server.New(engine)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
