package engagement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIngredientQuery(t *testing.T) {
	assert.Equal(t, []string{"tomato", "onion"}, ParseIngredientQuery("Tomato, Onion"))
	assert.Equal(t, []string{"salt"}, ParseIngredientQuery("  Salt ,, "))
	assert.Nil(t, ParseIngredientQuery(" , ,"))
	assert.Nil(t, ParseIngredientQuery(""))
}

func TestMatchPartitionsIngredients(t *testing.T) {
	result := Match([]string{"Tomato", "Onion", "Salt"}, ParseIngredientQuery("tomato, onion"))

	assert.Equal(t, []string{"Tomato", "Onion"}, result.Covered)
	assert.Equal(t, []string{"Salt"}, result.Missing)
	assert.InDelta(t, 66.67, result.Percent, 0.01)
}

func TestMatchSubstringBothDirections(t *testing.T) {
	// User ingredient contained in recipe ingredient.
	result := Match([]string{"cherry tomatoes"}, []string{"tomato"})
	assert.Equal(t, []string{"cherry tomatoes"}, result.Covered)
	assert.Equal(t, 100.0, result.Percent)

	// Recipe ingredient contained in user ingredient.
	result = Match([]string{"tomato"}, []string{"cherry tomatoes"})
	assert.Equal(t, []string{"tomato"}, result.Covered)
	assert.Equal(t, 100.0, result.Percent)
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	result := Match([]string{"OLIVE OIL"}, []string{"Olive Oil"})
	assert.Equal(t, []string{"OLIVE OIL"}, result.Covered)
	assert.Empty(t, result.Missing)
}

func TestMatchNoOverlap(t *testing.T) {
	result := Match([]string{"Flour", "Eggs"}, []string{"tomato"})
	assert.Empty(t, result.Covered)
	assert.Equal(t, []string{"Flour", "Eggs"}, result.Missing)
	assert.Equal(t, 0.0, result.Percent)
}

func TestMatchEmptyRecipeIngredients(t *testing.T) {
	result := Match(nil, []string{"tomato"})
	assert.Equal(t, 100.0, result.Percent)
	assert.Empty(t, result.Covered)
	assert.Empty(t, result.Missing)
}

type namedRecipe struct {
	name        string
	ingredients []string
}

func TestRankOrdersByPercentDescending(t *testing.T) {
	recipes := []namedRecipe{
		{"pasta", []string{"pasta", "garlic", "cream"}},
		{"salad", []string{"tomato", "onion"}},
		{"soup", []string{"tomato", "onion", "salt", "water"}},
	}

	ranked := Rank(recipes, func(r namedRecipe) []string { return r.ingredients }, ParseIngredientQuery("tomato, onion"))

	assert.Equal(t, "salad", ranked[0].Recipe.name)
	assert.Equal(t, 100.0, ranked[0].Match.Percent)
	assert.Equal(t, "soup", ranked[1].Recipe.name)
	assert.Equal(t, "pasta", ranked[2].Recipe.name)
}

func TestRankStableOnTies(t *testing.T) {
	recipes := []namedRecipe{
		{"first", []string{"tomato", "flour"}},
		{"second", []string{"tomato", "sugar"}},
		{"third", []string{"tomato", "rice"}},
	}

	ranked := Rank(recipes, func(r namedRecipe) []string { return r.ingredients }, []string{"tomato"})

	// All tie at 50%; input order must be preserved.
	assert.Equal(t, "first", ranked[0].Recipe.name)
	assert.Equal(t, "second", ranked[1].Recipe.name)
	assert.Equal(t, "third", ranked[2].Recipe.name)
}
