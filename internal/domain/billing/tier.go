// Package billing classifies monthly attendance and prices it.
package billing

import (
	"math"

	"badminton/internal/domain/fee"
)

// RegularThreshold is the monthly attendance count at which a player pays the regular rate.
const RegularThreshold = 4

// Tier is the rate class a player falls into for a month.
type Tier string

// Tier values.
const (
	TierRegular Tier = "Regular"
	TierCasual  Tier = "Casual"
)

// Classify maps a monthly attended count to its tier.
// POST: TierRegular iff count >= RegularThreshold
func Classify(count int) Tier {
	if count >= RegularThreshold {
		return TierRegular
	}
	return TierCasual
}

// RateFor returns the schedule's rate for the tier.
func RateFor(s fee.Schedule, t Tier) float64 {
	if t == TierRegular {
		return s.RegularRate
	}
	return s.CasualRate
}

// Amount prices count sessions at rate.
func Amount(count int, rate float64) float64 {
	return float64(count) * rate
}

// RoundCents rounds an amount half away from zero to two decimals for display.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
