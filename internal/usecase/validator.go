package usecase

import (
	"math"

	"github.com/eatwise/backend/internal/domain"
)

// Correction constants.
const (
	// carbEpsilon is the slack under the carb floor. Fiber and sugar are
	// subcomponents of total carbohydrate, so carbs materially below their
	// sum is implausible; deviations within the epsilon are rounding noise.
	carbEpsilon = 0.5 // grams

	// calorieTolerance is the relative band around the macro-derived
	// calorie figure. A reported value deviating more than this is replaced
	// outright: the macro fields are more reliable than a possibly
	// hallucinated calorie figure.
	calorieTolerance = 0.25

	// calorieFloor is the absolute minimum width of the tolerance band, in
	// kcal. At small magnitudes a purely relative band collapses below the
	// 1-decimal output resolution and the check would churn on its own
	// rounded output.
	calorieFloor = 1.0

	// Standard Atwater energy factors, kcal per gram.
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// ValidateProfile applies the corrective checks to an aggregated meal
// profile and returns the corrected result, rounded to one decimal place.
// The checks run in a fixed order because the calorie recompute depends on
// the carb floor having already run. The transformation is idempotent:
// applying it to its own output is a no-op.
func ValidateProfile(p domain.NutritionProfile) domain.NutritionProfile {
	// Upstream estimation quirks can produce negative fields; sanitize
	// before the floor and recompute read them.
	p = clampNonNegative(p)

	p = applyCarbFloor(p)

	// Round before the calorie check, not after. The recompute must see the
	// same macro values a second pass would, or rounding drift lets the
	// replacement re-fire on the validator's own output.
	p = roundProfile(p)

	return applyCalorieConsistency(p)
}

// applyCarbFloor raises carbs to at least fiber + sugar when it sits
// implausibly below their sum. The epsilon keeps the check from re-firing
// on rounding noise, which preserves idempotence.
func applyCarbFloor(p domain.NutritionProfile) domain.NutritionProfile {
	floor := p.Fiber + p.Sugar
	if p.Carbs < floor-carbEpsilon {
		p.Carbs = floor
	}
	return p
}

// applyCalorieConsistency recomputes expected calories from the macros and
// replaces the reported figure when it deviates beyond the tolerance band.
// It runs on rounded macros and writes a rounded replacement, so a repeat
// run recomputes the identical expected value and either keeps the figure
// or rewrites it to the same thing.
func applyCalorieConsistency(p domain.NutritionProfile) domain.NutritionProfile {
	expected := p.Protein*kcalPerGramProtein +
		p.Carbs*kcalPerGramCarbs +
		p.Fat*kcalPerGramFat

	if math.Abs(p.Calories-expected) > math.Max(calorieTolerance*expected, calorieFloor) {
		p.Calories = round1(expected)
	}
	return p
}

func clampNonNegative(p domain.NutritionProfile) domain.NutritionProfile {
	p.Calories = math.Max(p.Calories, 0)
	p.Protein = math.Max(p.Protein, 0)
	p.Carbs = math.Max(p.Carbs, 0)
	p.Fat = math.Max(p.Fat, 0)
	p.Fiber = math.Max(p.Fiber, 0)
	p.Sodium = math.Max(p.Sodium, 0)
	p.Sugar = math.Max(p.Sugar, 0)
	return p
}

func roundProfile(p domain.NutritionProfile) domain.NutritionProfile {
	p.Calories = round1(p.Calories)
	p.Protein = round1(p.Protein)
	p.Carbs = round1(p.Carbs)
	p.Fat = round1(p.Fat)
	p.Fiber = round1(p.Fiber)
	p.Sodium = round1(p.Sodium)
	p.Sugar = round1(p.Sugar)
	return p
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
