package attendance

import (
	"strings"

	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
)

// TotalWeeks is the number of session weeks tracked per period.
const TotalWeeks = 5

// Record marks whether a player attended a given week of a period.
type Record struct {
	PlayerName string
	Period     period.Period
	Week       int
	Attended   bool
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns an error wrapping ledger.ErrValidation if validation fails, nil otherwise
// INVARIANT: PlayerName non-empty, Week in [1, TotalWeeks]
func (r *Record) Validate() error {
	if strings.TrimSpace(r.PlayerName) == "" {
		return ledger.Validationf("attendance must be associated with a player")
	}
	if r.Period.IsZero() {
		return ledger.Validationf("attendance period is required")
	}
	return ValidateWeek(r.Week)
}

// ValidateWeek rejects weeks outside [1, TotalWeeks].
func ValidateWeek(week int) error {
	if week < 1 || week > TotalWeeks {
		return ledger.Validationf("week %d is outside 1..%d", week, TotalWeeks)
	}
	return nil
}

// Flag coerces attended to the stored binary flag.
func Flag(attended bool) int {
	if attended {
		return 1
	}
	return 0
}
