package engagement

import (
	"sort"
	"strings"
)

// MatchResult describes how well a user's available ingredients cover a
// recipe's required ingredients. Covered and Missing partition the recipe's
// ingredient list and keep its original casing and order.
type MatchResult struct {
	Covered []string `json:"covered"`
	Missing []string `json:"missing"`
	Percent float64  `json:"percent"`
}

// ParseIngredientQuery normalizes free-text, comma-separated ingredient
// input: lower-cased, trimmed, empty tokens dropped.
func ParseIngredientQuery(query string) []string {
	var ingredients []string
	for _, token := range strings.Split(strings.ToLower(query), ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		ingredients = append(ingredients, token)
	}
	return ingredients
}

// Match scores userIngredients against recipeIngredients. Comparison is
// case-insensitive substring containment in either direction: a recipe
// ingredient is covered if it contains a user ingredient or a user ingredient
// contains it. The loose matching is deliberate; "tomato" should satisfy
// "cherry tomatoes".
//
// An empty recipe ingredient list counts as a full match (percent 100) so
// the percentage is always defined.
func Match(recipeIngredients, userIngredients []string) MatchResult {
	if len(recipeIngredients) == 0 {
		return MatchResult{Covered: []string{}, Missing: []string{}, Percent: 100}
	}

	covered := make([]string, 0, len(recipeIngredients))
	missing := make([]string, 0, len(recipeIngredients))
	for _, ingredient := range recipeIngredients {
		if isCovered(strings.ToLower(ingredient), userIngredients) {
			covered = append(covered, ingredient)
		} else {
			missing = append(missing, ingredient)
		}
	}

	percent := float64(len(covered)) / float64(len(recipeIngredients)) * 100
	return MatchResult{Covered: covered, Missing: missing, Percent: percent}
}

func isCovered(recipeIngredient string, userIngredients []string) bool {
	for _, userIngredient := range userIngredients {
		userIngredient = strings.ToLower(strings.TrimSpace(userIngredient))
		if userIngredient == "" {
			continue
		}
		if strings.Contains(recipeIngredient, userIngredient) || strings.Contains(userIngredient, recipeIngredient) {
			return true
		}
	}
	return false
}

// RankedRecipe pairs a ranked item with its match result. The type parameter
// keeps the matcher independent of the storage model.
type RankedRecipe[T any] struct {
	Recipe T
	Match  MatchResult
}

// Rank scores every recipe and orders the results by descending match
// percentage. The sort is stable: recipes with equal percentages keep their
// input order.
func Rank[T any](recipes []T, ingredientsOf func(T) []string, userIngredients []string) []RankedRecipe[T] {
	ranked := make([]RankedRecipe[T], len(recipes))
	for i, recipe := range recipes {
		ranked[i] = RankedRecipe[T]{
			Recipe: recipe,
			Match:  Match(ingredientsOf(recipe), userIngredients),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Match.Percent > ranked[j].Match.Percent
	})
	return ranked
}
