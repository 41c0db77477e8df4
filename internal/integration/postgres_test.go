package integration

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forkfeed/backend/internal/database"
	"github.com/forkfeed/backend/internal/engagement"
	"github.com/forkfeed/backend/internal/models"
	"github.com/forkfeed/backend/internal/service"
	"github.com/forkfeed/backend/internal/types"
)

// setupPostgres starts a disposable pgvector-enabled postgres and returns a
// migrated gorm handle.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "pgvector/pgvector:pg16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "forkfeed",
			"POSTGRES_PASSWORD": "forkfeed",
			"POSTGRES_DB":       "forkfeed_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=forkfeed password=forkfeed dbname=forkfeed_test sslmode=disable", host, port.Port())

	var db *gorm.DB
	deadline := time.Now().Add(30 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("postgres not ready: %v", err)
		}
		time.Sleep(time.Second)
	}

	require.NoError(t, db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Username:      username,
		Email:         username + "@example.com",
		PasswordHash:  "irrelevant",
		EmailVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestVoteLifecycleOnPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	svc := service.NewRecipeService(db, nil)

	author := createUser(t, db, "ada")
	voter := createUser(t, db, "basil")

	recipe := models.Recipe{
		Title:       "Toast",
		Ingredients: models.JSONBStringArray{"bread"},
		Steps:       models.JSONBStringArray{"Toast it."},
		Difficulty:  models.DifficultyEasy,
		Embedding:   service.GenerateEmbedding("Toast"),
		AuthorID:    author.ID,
	}
	require.NoError(t, db.Create(&recipe).Error)

	res, err := svc.Vote(ctx, recipe.ID, voter.ID, engagement.VoteLike)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Likes)

	// Switching is a single transaction, so the counters stay conserved.
	res, err = svc.Vote(ctx, recipe.ID, voter.ID, engagement.VoteDislike)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Likes)
	assert.Equal(t, 1, res.Dislikes)

	// The unique ledger index admits one row per (recipe, voter).
	var count int64
	require.NoError(t, db.Model(&models.RecipeVote{}).
		Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEmbeddingOrderingOnPostgres(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	svc := service.NewRecipeService(db, nil)

	author := createUser(t, db, "ada")
	for _, title := range []string{"Tomato Soup", "Creamy Tomato Soup", "Extra Special Deluxe Tomato Soup Supreme", "Plain Toast"} {
		recipe := models.Recipe{
			Title:       title,
			Ingredients: models.JSONBStringArray{"x"},
			Steps:       models.JSONBStringArray{"Cook."},
			Difficulty:  models.DifficultyEasy,
			Embedding:   service.GenerateEmbedding(title),
			AuthorID:    author.ID,
		}
		require.NoError(t, db.Create(&recipe).Error)
	}

	results, err := svc.ListRecipes(ctx, types.RecipeListQuery{Search: "Tomato Soup"})
	require.NoError(t, err)
	// The title filter drops the toast; the matches come back nearest
	// embedding first, and the query text itself is the closest.
	require.Len(t, results, 3)
	assert.Equal(t, "Tomato Soup", results[0].Title)
}
