package usecase

import (
	"log"
	"math"
	"strings"

	"github.com/eatwise/backend/internal/domain"
)

// defaultQuantity is assumed when the model omits or mangles an
// ingredient's quantity. One bad ingredient must never abort aggregation
// of the rest.
const defaultQuantity = 100

// defaultUnit is assumed when the model omits an ingredient's unit.
const defaultUnit = "g"

// AnalyzerConfig holds configuration for the estimation pipeline
type AnalyzerConfig struct {
	MinSharedTokens    int
	EnableDebugLogging bool
}

// Analyzer is the hybrid estimation pipeline: reference-table values for
// foods the matcher recognizes, category averages for the rest, then
// aggregation and correction. It holds no mutable state and is safe for
// concurrent use.
type Analyzer struct {
	matcher            *Matcher
	enableDebugLogging bool
}

// NewAnalyzer creates the estimation pipeline
func NewAnalyzer(config AnalyzerConfig) *Analyzer {
	return &Analyzer{
		matcher: NewMatcher(MatcherConfig{
			MinSharedTokens:    config.MinSharedTokens,
			EnableDebugLogging: config.EnableDebugLogging,
		}),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Analyze computes the validated nutrition total for one meal from the
// detected ingredient list. An empty list yields an all-zero, fully valid
// total rather than an error.
func (a *Analyzer) Analyze(items []domain.DetectedIngredient) domain.MealTotal {
	contributions := make([]domain.NutritionProfile, 0, len(items))
	provenance := make([]domain.IngredientProvenance, 0, len(items))

	for _, item := range items {
		profile, prov := a.analyzeIngredient(item)
		contributions = append(contributions, profile)
		provenance = append(provenance, prov)
	}

	total := ValidateProfile(Aggregate(contributions))

	return domain.MealTotal{
		Profile:     total,
		Ingredients: provenance,
	}
}

// analyzeIngredient computes one ingredient's contribution, defaulting
// malformed fields instead of failing.
func (a *Analyzer) analyzeIngredient(item domain.DetectedIngredient) (domain.NutritionProfile, domain.IngredientProvenance) {
	name := strings.TrimSpace(strings.ToLower(item.Name))

	quantity := item.Quantity
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		quantity = defaultQuantity
	}

	unit := strings.TrimSpace(item.Unit)
	if unit == "" {
		unit = defaultUnit
	}

	grams, knownUnit := NormalizeToGrams(quantity, unit)
	if !knownUnit && a.enableDebugLogging {
		log.Printf("[ANALYZE] unknown unit %q for %q, treating quantity as grams", unit, name)
	}

	prov := domain.IngredientProvenance{
		Name:        name,
		Grams:       grams,
		Preparation: item.Preparation,
	}

	if candidates := a.matcher.Match(name); len(candidates) > 0 {
		best := candidates[0]
		profile := best.Profile.Scale(grams / 100)
		prov.Source = domain.SourceReference
		prov.MatchedKey = best.Key
		prov.Profile = roundProfile(profile)
		return profile, prov
	}

	profile, category := EstimateByCategory(name, grams)
	if a.enableDebugLogging {
		log.Printf("[ANALYZE] no match for %q, estimated as %s", name, category)
	}
	prov.Source = domain.SourceEstimated
	prov.Category = string(category)
	prov.Profile = roundProfile(profile)
	return profile, prov
}

// Aggregate sums ingredient contributions field-wise. Addition is
// commutative, so no ordering guarantee is required or relied upon; an
// empty input yields the zero profile.
func Aggregate(contributions []domain.NutritionProfile) domain.NutritionProfile {
	var total domain.NutritionProfile
	for _, c := range contributions {
		total = total.Add(c)
	}
	return total
}
