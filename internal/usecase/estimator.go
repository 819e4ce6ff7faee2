package usecase

import (
	"strings"

	"github.com/eatwise/backend/internal/domain"
	"github.com/eatwise/backend/internal/reference"
)

// Classify assigns a food name to exactly one category by walking the
// ordered keyword rule table; the first rule whose keyword appears in the
// name wins, which is the deliberate tie-break ("chicken soup" is meat, not
// vegetable). Names matching no rule fall through to the default category.
func Classify(name string) reference.FoodCategory {
	lower := strings.ToLower(name)
	for _, rule := range reference.CategoryRules() {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Category
			}
		}
	}
	return reference.DefaultCategory
}

// EstimateByCategory produces a fallback nutrition estimate for a food
// absent from the reference table, by scaling the category-average per-100g
// profile to the given gram quantity. Intentionally coarse: its job is to
// keep one unrecognized ingredient from silently zeroing out nutrients in
// the meal total.
func EstimateByCategory(name string, grams float64) (domain.NutritionProfile, reference.FoodCategory) {
	category := Classify(name)
	profile := reference.CategoryProfile(category).Scale(grams / 100)
	return profile, category
}
