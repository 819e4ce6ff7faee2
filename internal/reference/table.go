// Package reference holds the static lookup tables the estimation engine
// reads: the per-100g nutrition table, the unit conversion table, and the
// category fallback profiles. All tables are initialized at compile time
// and never mutated, so unsynchronized concurrent reads are safe.
package reference

import (
	"fmt"

	"github.com/eatwise/backend/internal/domain"
)

// nutritionTable maps canonical food names to per-100g nutrition values.
// Keys are lowercase; lookups go through the matcher, which tolerates
// noisy query names. Values follow USDA figures for the common raw or
// plainly-cooked form of each food.
var nutritionTable = map[string]domain.NutritionProfile{
	// Proteins
	"chicken breast": {Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6, Fiber: 0, Sodium: 74, Sugar: 0},
	"chicken thigh":  {Calories: 209, Protein: 26, Carbs: 0, Fat: 10.9, Fiber: 0, Sodium: 88, Sugar: 0},
	"beef steak":     {Calories: 271, Protein: 25, Carbs: 0, Fat: 19, Fiber: 0, Sodium: 54, Sugar: 0},
	"ground beef":    {Calories: 250, Protein: 26, Carbs: 0, Fat: 15, Fiber: 0, Sodium: 75, Sugar: 0},
	"pork chop":      {Calories: 231, Protein: 25.7, Carbs: 0, Fat: 13.8, Fiber: 0, Sodium: 62, Sugar: 0},
	"turkey breast":  {Calories: 135, Protein: 29, Carbs: 0, Fat: 1.7, Fiber: 0, Sodium: 63, Sugar: 0},
	"salmon":         {Calories: 208, Protein: 20, Carbs: 0, Fat: 13, Fiber: 0, Sodium: 59, Sugar: 0},
	"tuna":           {Calories: 132, Protein: 28, Carbs: 0, Fat: 1.3, Fiber: 0, Sodium: 47, Sugar: 0},
	"shrimp":         {Calories: 99, Protein: 24, Carbs: 0.2, Fat: 0.3, Fiber: 0, Sodium: 111, Sugar: 0},
	"eggs":           {Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11, Fiber: 0, Sodium: 124, Sugar: 1.1},
	"tofu":           {Calories: 76, Protein: 8, Carbs: 1.9, Fat: 4.8, Fiber: 0.3, Sodium: 7, Sugar: 0.6},

	// Vegetables
	"broccoli":     {Calories: 34, Protein: 2.8, Carbs: 7, Fat: 0.4, Fiber: 2.6, Sodium: 33, Sugar: 1.7},
	"carrot":       {Calories: 41, Protein: 0.9, Carbs: 10, Fat: 0.2, Fiber: 2.8, Sodium: 69, Sugar: 4.7},
	"potato":       {Calories: 77, Protein: 2, Carbs: 17, Fat: 0.1, Fiber: 2.2, Sodium: 6, Sugar: 0.8},
	"sweet potato": {Calories: 86, Protein: 1.6, Carbs: 20, Fat: 0.1, Fiber: 3, Sodium: 55, Sugar: 4.2},
	"spinach":      {Calories: 23, Protein: 2.9, Carbs: 3.6, Fat: 0.4, Fiber: 2.2, Sodium: 79, Sugar: 0.4},
	"tomato":       {Calories: 18, Protein: 0.9, Carbs: 3.9, Fat: 0.2, Fiber: 1.2, Sodium: 5, Sugar: 2.6},
	"cucumber":     {Calories: 15, Protein: 0.7, Carbs: 3.6, Fat: 0.1, Fiber: 0.5, Sodium: 2, Sugar: 1.7},
	"lettuce":      {Calories: 15, Protein: 1.4, Carbs: 2.9, Fat: 0.2, Fiber: 1.3, Sodium: 28, Sugar: 0.8},
	"onion":        {Calories: 40, Protein: 1.1, Carbs: 9.3, Fat: 0.1, Fiber: 1.7, Sodium: 4, Sugar: 4.2},
	"bell pepper":  {Calories: 31, Protein: 1, Carbs: 6, Fat: 0.3, Fiber: 2.1, Sodium: 4, Sugar: 4.2},

	// Fruits
	"banana":     {Calories: 89, Protein: 1.1, Carbs: 23, Fat: 0.3, Fiber: 2.6, Sodium: 1, Sugar: 12},
	"apple":      {Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2, Fiber: 2.4, Sodium: 1, Sugar: 10},
	"orange":     {Calories: 47, Protein: 0.9, Carbs: 12, Fat: 0.1, Fiber: 2.4, Sodium: 0, Sugar: 9},
	"strawberry": {Calories: 32, Protein: 0.7, Carbs: 7.7, Fat: 0.3, Fiber: 2, Sodium: 1, Sugar: 4.9},
	"blueberry":  {Calories: 57, Protein: 0.7, Carbs: 14, Fat: 0.3, Fiber: 2.4, Sodium: 1, Sugar: 10},
	"avocado":    {Calories: 160, Protein: 2, Carbs: 8.5, Fat: 14.7, Fiber: 6.7, Sodium: 7, Sugar: 0.7},

	// Grains
	"white rice":        {Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3, Fiber: 0.4, Sodium: 1, Sugar: 0.1},
	"brown rice":        {Calories: 111, Protein: 2.6, Carbs: 23, Fat: 0.9, Fiber: 1.8, Sodium: 5, Sugar: 0.4},
	"pasta":             {Calories: 131, Protein: 5, Carbs: 25, Fat: 1.1, Fiber: 1.8, Sodium: 1, Sugar: 0.6},
	"white bread":       {Calories: 265, Protein: 9, Carbs: 49, Fat: 3.2, Fiber: 2.7, Sodium: 491, Sugar: 5},
	"whole wheat bread": {Calories: 247, Protein: 13, Carbs: 41, Fat: 3.4, Fiber: 7, Sodium: 400, Sugar: 6},
	"oats":              {Calories: 389, Protein: 16.9, Carbs: 66, Fat: 6.9, Fiber: 10.6, Sodium: 2, Sugar: 0},
	"quinoa":            {Calories: 120, Protein: 4.4, Carbs: 21, Fat: 1.9, Fiber: 2.8, Sodium: 7, Sugar: 0.9},

	// Legumes
	"black beans": {Calories: 132, Protein: 8.9, Carbs: 24, Fat: 0.5, Fiber: 8.7, Sodium: 1, Sugar: 0.3},
	"lentils":     {Calories: 116, Protein: 9, Carbs: 20, Fat: 0.4, Fiber: 7.9, Sodium: 2, Sugar: 1.8},
	"chickpeas":   {Calories: 164, Protein: 8.9, Carbs: 27, Fat: 2.6, Fiber: 7.6, Sodium: 7, Sugar: 4.8},

	// Dairy
	"milk":           {Calories: 61, Protein: 3.2, Carbs: 4.8, Fat: 3.3, Fiber: 0, Sodium: 43, Sugar: 5.1},
	"cheddar cheese": {Calories: 403, Protein: 25, Carbs: 1.3, Fat: 33, Fiber: 0, Sodium: 621, Sugar: 0.5},
	"greek yogurt":   {Calories: 59, Protein: 10, Carbs: 3.6, Fat: 0.4, Fiber: 0, Sodium: 36, Sugar: 3.2},
	"butter":         {Calories: 717, Protein: 0.9, Carbs: 0.1, Fat: 81, Fiber: 0, Sodium: 11, Sugar: 0.1},

	// Oils & fats
	"olive oil":     {Calories: 884, Protein: 0, Carbs: 0, Fat: 100, Fiber: 0, Sodium: 2, Sugar: 0},
	"vegetable oil": {Calories: 884, Protein: 0, Carbs: 0, Fat: 100, Fiber: 0, Sodium: 0, Sugar: 0},
	"peanut butter": {Calories: 588, Protein: 25, Carbs: 20, Fat: 50, Fiber: 6, Sodium: 17, Sugar: 9},
	"almonds":       {Calories: 579, Protein: 21, Carbs: 22, Fat: 50, Fiber: 12.5, Sodium: 1, Sugar: 4.4},
}

// Lookup returns the per-100g profile for an exact canonical key.
func Lookup(key string) (domain.NutritionProfile, bool) {
	p, ok := nutritionTable[key]
	return p, ok
}

// Keys returns all canonical food names in the table. Order is not defined;
// callers that need determinism must sort.
func Keys() []string {
	keys := make([]string, 0, len(nutritionTable))
	for k := range nutritionTable {
		keys = append(keys, k)
	}
	return keys
}

// Size returns the number of foods in the table.
func Size() int {
	return len(nutritionTable)
}

// Validate checks the structural invariants the estimation engine trusts as
// preconditions: every baked-in value must be non-negative, every unit
// multiplier positive. A violation here is a fatal configuration error.
func Validate() error {
	for key, p := range nutritionTable {
		if err := checkNonNegative(key, p); err != nil {
			return err
		}
	}
	for cat, p := range categoryProfiles {
		if err := checkNonNegative(string(cat), p); err != nil {
			return err
		}
	}
	for unit, mult := range unitMultipliers {
		if mult <= 0 {
			return fmt.Errorf("%w: unit %q has non-positive multiplier %v",
				domain.ErrInvalidReferenceData, unit, mult)
		}
	}
	return nil
}

func checkNonNegative(key string, p domain.NutritionProfile) error {
	fields := map[string]float64{
		"calories": p.Calories,
		"protein":  p.Protein,
		"carbs":    p.Carbs,
		"fat":      p.Fat,
		"fiber":    p.Fiber,
		"sodium":   p.Sodium,
		"sugar":    p.Sugar,
	}
	for name, v := range fields {
		if v < 0 {
			return fmt.Errorf("%w: %q has negative %s (%v)",
				domain.ErrInvalidReferenceData, key, name, v)
		}
	}
	return nil
}
