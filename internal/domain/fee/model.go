package fee

import (
	"math"

	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
)

// Schedule holds the per-session rates charged in a period.
type Schedule struct {
	Period      period.Period
	RegularRate float64
	CasualRate  float64
}

// Validate checks if the Schedule has valid data.
// PRE: Schedule struct is initialized
// POST: Returns an error wrapping ledger.ErrValidation if validation fails, nil otherwise
// INVARIANT: Both rates are finite and >= 0
func (s *Schedule) Validate() error {
	if s.Period.IsZero() {
		return ledger.Validationf("fee schedule period is required")
	}
	if err := validRate("regular", s.RegularRate); err != nil {
		return err
	}
	return validRate("casual", s.CasualRate)
}

func validRate(kind string, r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return ledger.Validationf("%s rate must be a number", kind)
	}
	if r < 0 {
		return ledger.Validationf("%s rate cannot be negative", kind)
	}
	return nil
}

// Default returns the zero-rate schedule used when a period has none.
func Default(p period.Period) Schedule {
	return Schedule{Period: p}
}
