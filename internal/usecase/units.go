package usecase

import (
	"strings"

	"github.com/eatwise/backend/internal/reference"
)

// NormalizeToGrams converts a (quantity, unit) pair into grams using the
// unit table. Unrecognized units fail soft: the quantity is treated as
// already being grams, so one bad unit never aborts a meal calculation.
// The second return reports whether the unit was recognized, for
// diagnostic logging only.
//
// The conversion is linear in quantity: NormalizeToGrams(2q, u) is exactly
// twice NormalizeToGrams(q, u) for any fixed unit.
func NormalizeToGrams(quantity float64, unit string) (float64, bool) {
	token := strings.ToLower(strings.TrimSpace(unit))

	multiplier, known := reference.UnitMultiplier(token)
	if !known {
		// Gram interpretation: multiplier of one 100g-unit per 100 units.
		multiplier = 0.01
	}

	return quantity * multiplier * 100, known
}
