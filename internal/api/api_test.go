package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forkfeed/backend/internal/api"
	"github.com/forkfeed/backend/internal/mocks"
	"github.com/forkfeed/backend/internal/router"
	"github.com/forkfeed/backend/internal/service"
	"github.com/forkfeed/backend/internal/testhelpers"
)

// testEnv wires a complete router against an in-memory database with a
// recording mail sink and no Redis.
type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	email  *mocks.EmailService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	email := mocks.NewEmailService()
	authService := service.NewAuthService(db, email, "test-secret")
	recipeService := service.NewRecipeService(db, nil)

	engine := router.SetupRouter(router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Recipe:  api.NewRecipeHandler(recipeService),
		Comment: api.NewCommentHandler(service.NewCommentService(db)),
		Search:  api.NewSearchHandler(service.NewSearchService(db)),
		Social:  api.NewSocialHandler(service.NewSocialService(db)),
		Image:   api.NewImageHandler(nil),
	}, authService, db, nil)

	return &testEnv{engine: engine, db: db, email: email}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// registerAndVerify walks a user through the whole signup flow over HTTP and
// returns a usable token.
func (e *testEnv) registerAndVerify(t *testing.T, username string) string {
	t.Helper()
	email := username + "@example.com"

	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	code := e.email.LastCode(email)
	require.Len(t, code, 6)

	w = e.do(t, http.MethodPost, "/api/v1/auth/verify", "", gin.H{
		"email": email,
		"code":  code,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (e *testEnv) createRecipe(t *testing.T, token, title string, ingredients []string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/recipes", token, gin.H{
		"title":       title,
		"ingredients": ingredients,
		"steps":       []string{"Cook."},
		"difficulty":  "easy",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func recipePath(id string, parts ...string) string {
	path := "/api/v1/recipes/" + id
	for _, p := range parts {
		path += "/" + p
	}
	return path
}

func voteBody(action string) gin.H { return gin.H{"action": action} }

func fmtVote(likes, dislikes int, vote string) string {
	return fmt.Sprintf("likes=%d dislikes=%d vote=%s", likes, dislikes, vote)
}
