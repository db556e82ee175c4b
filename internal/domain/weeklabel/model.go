package weeklabel

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"badminton/internal/domain/attendance"
	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
)

// MaxLabelLength bounds the free-text label, in characters.
const MaxLabelLength = 60

// Label is a display name for one week of a period, e.g. "Club night 12 Jun".
type Label struct {
	Period period.Period
	Week   int
	Text   string
}

// Validate checks if the Label has valid data.
// PRE: Label struct is initialized
// POST: Returns an error wrapping ledger.ErrValidation if validation fails, nil otherwise
func (l *Label) Validate() error {
	if l.Period.IsZero() {
		return ledger.Validationf("week label period is required")
	}
	if err := attendance.ValidateWeek(l.Week); err != nil {
		return err
	}
	if utf8.RuneCountInString(l.Text) > MaxLabelLength {
		return ledger.Validationf("week label cannot exceed %d characters", MaxLabelLength)
	}
	return nil
}

// IsBlank reports whether the label carries no text and should fall back to the default.
func (l *Label) IsBlank() bool {
	return strings.TrimSpace(l.Text) == ""
}

// Default is the label shown for a week nobody has named.
func Default(week int) string {
	return fmt.Sprintf("Week %d", week)
}
