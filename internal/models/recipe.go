package models

import "strconv"

// QuickRecipeMaxMinutes is the inclusive upper bound on prep + cook time
// for a recipe to count as quick.
const QuickRecipeMaxMinutes float64 = 20

// Recipe is a single record as returned by the recipes API.
// Only ID, PrepTimeMinutes and CookTimeMinutes drive any logic,
// the rest is carried through for rendering.
type Recipe struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Ingredients        []string `json:"ingredients,omitempty"`
	Instructions       []string `json:"instructions,omitempty"`
	PrepTimeMinutes    float64  `json:"prepTimeMinutes"`
	CookTimeMinutes    float64  `json:"cookTimeMinutes"`
	Servings           int      `json:"servings,omitempty"`
	Difficulty         string   `json:"difficulty,omitempty"`
	Cuisine            string   `json:"cuisine,omitempty"`
	CaloriesPerServing int      `json:"caloriesPerServing,omitempty"`
	Tags               []string `json:"tags,omitempty"`
	Image              string   `json:"image,omitempty"`
	Rating             float64  `json:"rating,omitempty"`
	ReviewCount        int      `json:"reviewCount,omitempty"`
	MealType           []string `json:"mealType,omitempty"`
}

// TotalMinutes is prep time plus cook time.
func (r Recipe) TotalMinutes() float64 {
	return r.PrepTimeMinutes + r.CookTimeMinutes
}

// IsQuick reports whether the recipe fits in QuickRecipeMaxMinutes.
func (r Recipe) IsQuick() bool {
	return r.TotalMinutes() <= QuickRecipeMaxMinutes
}

// FormatMinutes renders a duration with no trailing zeros: 15 -> "15", 7.5 -> "7.5".
func FormatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}

// QuickRecipes returns the recipes that are quick, keeping their order.
// The input slice is left untouched.
func QuickRecipes(recipes []Recipe) []Recipe {
	quick := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.IsQuick() {
			quick = append(quick, r)
		}
	}
	return quick
}

// RecipeList is the envelope the API wraps list and search responses in.
type RecipeList struct {
	Recipes []Recipe `json:"recipes"`
	Total   int      `json:"total"`
	Skip    int      `json:"skip"`
	Limit   int      `json:"limit"`
}
