package reference

// unitMultipliers maps a lowercase unit token to how many 100g-units one
// unit of that token represents ("g" -> 0.01, "cup" -> 2.4). The volume and
// size entries are density-agnostic approximations; per-food densities are
// out of scope, so these are a documented source of estimation error rather
// than a correctness bug.
var unitMultipliers = map[string]float64{
	// Mass
	"g":      0.01,
	"gram":   0.01,
	"grams":  0.01,
	"kg":     10,
	"mg":     0.00001,
	"oz":     0.2835,
	"ounce":  0.2835,
	"ounces": 0.2835,
	"lb":     4.5359,
	"lbs":    4.5359,
	"pound":  4.5359,
	"pounds": 4.5359,

	// Volume, assuming typical food density
	"ml":          0.01,
	"l":           10,
	"liter":       10,
	"cup":         2.4,
	"cups":        2.4,
	"tbsp":        0.15,
	"tablespoon":  0.15,
	"tablespoons": 0.15,
	"tsp":         0.05,
	"teaspoon":    0.05,
	"teaspoons":   0.05,

	// Countable portions
	"slice":  0.3,
	"slices": 0.3,
	"piece":  1.0,
	"pieces": 1.0,

	// Size qualifiers for produce and egg-like items. Coarse constants,
	// not per-food-aware.
	"small":  0.8,
	"medium": 1.2,
	"large":  1.5,
}

// UnitMultiplier returns the 100g-unit multiplier for a lowercase unit
// token. The second return is false for unrecognized tokens.
func UnitMultiplier(unit string) (float64, bool) {
	m, ok := unitMultipliers[unit]
	return m, ok
}
