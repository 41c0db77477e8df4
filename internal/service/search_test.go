package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkfeed/backend/internal/service"
	"github.com/forkfeed/backend/internal/testhelpers"
)

func TestSearchByIngredientsRanksByCoverage(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSearchService(db)
	ctx := context.Background()
	author := testhelpers.CreateTestUser(t, db, "ada")

	testhelpers.CreateTestRecipe(t, db, author.ID, "Tomato Salad", []string{"tomato", "onion", "olive oil"})
	testhelpers.CreateTestRecipe(t, db, author.ID, "Plain Toast", []string{"bread", "butter"})
	testhelpers.CreateTestRecipe(t, db, author.ID, "Salsa", []string{"tomato", "onion"})

	results, err := svc.SearchByIngredients(ctx, "Tomato, onion")
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Full coverage first, then partial, then none.
	assert.Equal(t, "Salsa", results[0].Recipe.Title)
	assert.InDelta(t, 100.0, results[0].Percent, 0.01)
	assert.Empty(t, results[0].Missing)

	assert.Equal(t, "Tomato Salad", results[1].Recipe.Title)
	assert.InDelta(t, 66.67, results[1].Percent, 0.01)
	assert.Equal(t, []string{"olive oil"}, results[1].Missing)

	assert.Equal(t, "Plain Toast", results[2].Recipe.Title)
	assert.Zero(t, results[2].Percent)
	assert.Empty(t, results[2].Covered)
}

func TestSearchByIngredientsEmptyQuery(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSearchService(db)

	_, err := svc.SearchByIngredients(context.Background(), " , , ")
	assert.ErrorIs(t, err, service.ErrEmptyIngredientQuery)
}
