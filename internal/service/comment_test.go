package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forkfeed/backend/internal/engagement"
	"github.com/forkfeed/backend/internal/models"
	"github.com/forkfeed/backend/internal/service"
	"github.com/forkfeed/backend/internal/testhelpers"
)

func commentFixture(t *testing.T) (*service.CommentService, *gorm.DB, *models.User, *models.Recipe) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	author := testhelpers.CreateTestUser(t, db, "ada")
	recipe := testhelpers.CreateTestRecipe(t, db, author.ID, "Toast", []string{"bread"})
	return service.NewCommentService(db), db, author, recipe
}

func TestAddAndListComments(t *testing.T) {
	svc, db, author, recipe := commentFixture(t)
	ctx := context.Background()

	first, err := svc.AddComment(ctx, recipe.ID, author.ID, "First!")
	require.NoError(t, err)
	assert.Equal(t, author.ID, first.AuthorID)

	other := testhelpers.CreateTestUser(t, db, "basil")
	_, err = svc.AddComment(ctx, recipe.ID, other.ID, "Looks great.")
	require.NoError(t, err)

	comments, err := svc.ListComments(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "First!", comments[0].Text)
	assert.Equal(t, "Looks great.", comments[1].Text)
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	svc, _, author, recipe := commentFixture(t)

	_, err := svc.AddComment(context.Background(), recipe.ID, author.ID, "   ")
	assert.ErrorIs(t, err, engagement.ErrEmptyText)
}

func TestAddCommentMissingRecipe(t *testing.T) {
	svc, _, author, _ := commentFixture(t)

	_, err := svc.AddComment(context.Background(), uuid.New(), author.ID, "Hello")
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestEditCommentOwnership(t *testing.T) {
	svc, db, author, recipe := commentFixture(t)
	ctx := context.Background()

	comment, err := svc.AddComment(ctx, recipe.ID, author.ID, "Original")
	require.NoError(t, err)

	stranger := testhelpers.CreateTestUser(t, db, "basil")
	_, err = svc.EditComment(ctx, recipe.ID, comment.ID, stranger.ID, "Hijacked")
	assert.ErrorIs(t, err, engagement.ErrNotCommentAuthor)

	edited, err := svc.EditComment(ctx, recipe.ID, comment.ID, author.ID, "Revised")
	require.NoError(t, err)
	assert.Equal(t, "Revised", edited.Text)

	_, err = svc.EditComment(ctx, recipe.ID, uuid.New(), author.ID, "Nope")
	assert.ErrorIs(t, err, engagement.ErrCommentNotFound)
}

func TestDeleteCommentPreservesOrder(t *testing.T) {
	svc, db, author, recipe := commentFixture(t)
	ctx := context.Background()

	c1, err := svc.AddComment(ctx, recipe.ID, author.ID, "one")
	require.NoError(t, err)
	c2, err := svc.AddComment(ctx, recipe.ID, author.ID, "two")
	require.NoError(t, err)
	c3, err := svc.AddComment(ctx, recipe.ID, author.ID, "three")
	require.NoError(t, err)

	stranger := testhelpers.CreateTestUser(t, db, "basil")
	assert.ErrorIs(t, svc.DeleteComment(ctx, recipe.ID, c2.ID, stranger.ID), engagement.ErrNotCommentAuthor)

	require.NoError(t, svc.DeleteComment(ctx, recipe.ID, c2.ID, author.ID))

	comments, err := svc.ListComments(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, c1.ID, comments[0].ID)
	assert.Equal(t, c3.ID, comments[1].ID)
}
