package reference

import "github.com/eatwise/backend/internal/domain"

// FoodCategory is a coarse food class used only by the fallback estimator.
type FoodCategory string

const (
	CategoryMeat      FoodCategory = "meat"
	CategoryFish      FoodCategory = "fish"
	CategoryVegetable FoodCategory = "vegetable"
	CategoryFruit     FoodCategory = "fruit"
	CategoryGrain     FoodCategory = "grain"
	CategoryLegume    FoodCategory = "legume"
	CategoryDairy     FoodCategory = "dairy"
	CategoryOil       FoodCategory = "oil"
)

// categoryProfiles holds the per-100g average profile for each category.
// Deliberately coarse: the fallback exists so an unrecognized ingredient
// never causes the meal estimate to omit nutrients outright.
var categoryProfiles = map[FoodCategory]domain.NutritionProfile{
	CategoryMeat:      {Calories: 200, Protein: 26, Carbs: 0, Fat: 10, Fiber: 0, Sodium: 80, Sugar: 0},
	CategoryFish:      {Calories: 150, Protein: 20, Carbs: 0, Fat: 7, Fiber: 0, Sodium: 50, Sugar: 0},
	CategoryVegetable: {Calories: 40, Protein: 2, Carbs: 8, Fat: 0.3, Fiber: 2, Sodium: 30, Sugar: 2},
	CategoryFruit:     {Calories: 60, Protein: 0.7, Carbs: 15, Fat: 0.2, Fiber: 2, Sodium: 5, Sugar: 10},
	CategoryGrain:     {Calories: 130, Protein: 4, Carbs: 28, Fat: 1, Fiber: 2, Sodium: 5, Sugar: 0.5},
	CategoryLegume:    {Calories: 140, Protein: 8, Carbs: 25, Fat: 1, Fiber: 6, Sodium: 10, Sugar: 1},
	CategoryDairy:     {Calories: 150, Protein: 8, Carbs: 5, Fat: 8, Fiber: 0, Sodium: 200, Sugar: 4},
	CategoryOil:       {Calories: 884, Protein: 0, Carbs: 0, Fat: 100, Fiber: 0, Sodium: 0, Sugar: 0},
}

// CategoryRule binds a category to the keywords that select it.
type CategoryRule struct {
	Category FoodCategory
	Keywords []string
}

// categoryRules is the ordered classification rule table. The first rule
// whose keyword appears in the food name wins, so the order is the
// tie-break: "chicken soup" classifies as meat, not vegetable. Vegetable is
// the unconditional default when nothing matches and is therefore absent
// from the list.
var categoryRules = []CategoryRule{
	{CategoryMeat, []string{"chicken", "beef", "pork", "meat", "turkey", "lamb", "steak"}},
	{CategoryFish, []string{"fish", "salmon", "tuna", "cod", "shrimp", "seafood"}},
	{CategoryFruit, []string{"apple", "banana", "orange", "fruit", "berry", "grape"}},
	{CategoryGrain, []string{"rice", "bread", "pasta", "grain", "cereal", "oat"}},
	{CategoryLegume, []string{"bean", "lentil", "chickpea", "legume", "pea"}},
	{CategoryDairy, []string{"cheese", "milk", "yogurt", "butter", "dairy"}},
	{CategoryOil, []string{"oil", "fat", "butter", "mayo"}},
}

// DefaultCategory is used when no classification rule matches.
const DefaultCategory = CategoryVegetable

// CategoryRules returns the ordered rule table.
func CategoryRules() []CategoryRule {
	return categoryRules
}

// CategoryProfile returns the per-100g average profile for a category,
// falling back to the default category's profile for unknown tags.
func CategoryProfile(cat FoodCategory) domain.NutritionProfile {
	if p, ok := categoryProfiles[cat]; ok {
		return p
	}
	return categoryProfiles[DefaultCategory]
}
