package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"badminton/internal/domain/ledger"
)

// Layout is the canonical text form of a period.
const Layout = "2006-01"

// YearSpan is how many years either side of the current year the year picker offers.
const YearSpan = 2

// Period is a year-month bucket used to key fees and attendance.
type Period struct {
	Year  int
	Month time.Month
}

// Parse reads a period in YYYY-MM form.
// PRE: none
// POST: Returns a valid Period or an error wrapping ledger.ErrValidation
func Parse(s string) (Period, error) {
	s = strings.TrimSpace(s)
	year, month, ok := strings.Cut(s, "-")
	if !ok || len(year) != 4 || len(month) != 2 {
		return Period{}, ledger.Validationf("period %q must be in YYYY-MM form", s)
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 {
		return Period{}, ledger.Validationf("period %q has an invalid year", s)
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return Period{}, ledger.Validationf("period %q has an invalid month", s)
	}
	return Period{Year: y, Month: time.Month(m)}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Period {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Current returns the calendar period containing now.
func Current(now time.Time) Period {
	return Period{Year: now.Year(), Month: now.Month()}
}

// String renders the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// MonthName returns the English month name, e.g. "June".
func (p Period) MonthName() string {
	return p.Month.String()
}

// IsZero reports whether p is the zero Period.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// YearOptions lists the selectable years around now, oldest first.
// POST: Returns 2*YearSpan+1 consecutive years centred on now.Year()
func YearOptions(now time.Time) []int {
	years := make([]int, 0, 2*YearSpan+1)
	for y := now.Year() - YearSpan; y <= now.Year()+YearSpan; y++ {
		years = append(years, y)
	}
	return years
}
