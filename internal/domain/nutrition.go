package domain

import "time"

// NutritionProfile holds the seven tracked nutrition values for some
// quantity of food. Calories are kcal, sodium is mg, everything else grams.
type NutritionProfile struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium"`
	Sugar    float64 `json:"sugar"`
}

// Add returns the field-wise sum of two profiles.
func (p NutritionProfile) Add(other NutritionProfile) NutritionProfile {
	return NutritionProfile{
		Calories: p.Calories + other.Calories,
		Protein:  p.Protein + other.Protein,
		Carbs:    p.Carbs + other.Carbs,
		Fat:      p.Fat + other.Fat,
		Fiber:    p.Fiber + other.Fiber,
		Sodium:   p.Sodium + other.Sodium,
		Sugar:    p.Sugar + other.Sugar,
	}
}

// Scale returns the profile with every field multiplied by factor.
// Scaling is linear with no clamping; plausibility is the validator's job.
func (p NutritionProfile) Scale(factor float64) NutritionProfile {
	return NutritionProfile{
		Calories: p.Calories * factor,
		Protein:  p.Protein * factor,
		Carbs:    p.Carbs * factor,
		Fat:      p.Fat * factor,
		Fiber:    p.Fiber * factor,
		Sodium:   p.Sodium * factor,
		Sugar:    p.Sugar * factor,
	}
}

// IsZero reports whether every field is exactly zero.
func (p NutritionProfile) IsZero() bool {
	return p == NutritionProfile{}
}

// DetectedIngredient is one item extracted from a meal photo or description
// by the language model. Quantity and unit are untrusted free-text output
// and are parsed defensively downstream.
type DetectedIngredient struct {
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Preparation string  `json:"preparation,omitempty"`
}

// NutritionSource identifies where an ingredient's nutrition values came from.
type NutritionSource string

const (
	SourceReference NutritionSource = "matched"   // reference table hit
	SourceEstimated NutritionSource = "estimated" // category fallback
)

// IngredientProvenance records how one ingredient's contribution was derived.
// Diagnostics only; never shown to end users.
type IngredientProvenance struct {
	Name        string           `json:"name"`
	Source      NutritionSource  `json:"source"`
	MatchedKey  string           `json:"matchedKey,omitempty"`
	Category    string           `json:"category,omitempty"`
	Grams       float64          `json:"grams"`
	Preparation string           `json:"preparation,omitempty"`
	Profile     NutritionProfile `json:"profile"`
}

// MealTotal is the validated, rounded aggregate for one meal.
type MealTotal struct {
	Profile     NutritionProfile       `json:"profile"`
	Ingredients []IngredientProvenance `json:"ingredients,omitempty"`
}

// UserProfile carries the personalization context supplied by the caller.
// The estimation core never reads it; only the narrative generator does.
type UserProfile struct {
	Name               string   `json:"name,omitempty"`
	AgeGroup           string   `json:"ageGroup,omitempty"`
	HealthConditions   []string `json:"healthConditions,omitempty"`
	DietaryPreferences []string `json:"dietaryPreferences,omitempty"`
	HealthGoal         string   `json:"healthGoal,omitempty"`
}

// ExtractionResult is the structured output of the ingredient-extraction
// model call: the detected items plus a short meal description.
type ExtractionResult struct {
	Items           []DetectedIngredient `json:"items"`
	MealDescription string               `json:"meal_description"`
}

// MealAnalysis is one completed analysis: the input description, the
// corrected totals, and the generated narrative.
type MealAnalysis struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Total       MealTotal `json:"total"`
	Narrative   string    `json:"narrative,omitempty"`
	Source      string    `json:"source"` // "text" or "image"
	CreatedAt   time.Time `json:"createdAt"`
}
