package period_test

import (
	"errors"
	"testing"
	"time"

	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
)

// TestParse tests parsing of YYYY-MM periods.
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    period.Period
		wantErr bool
	}{
		{"valid", "2025-06", period.Period{Year: 2025, Month: time.June}, false},
		{"surrounding spaces", " 2025-12 ", period.Period{Year: 2025, Month: time.December}, false},
		{"month zero", "2025-00", period.Period{}, true},
		{"month thirteen", "2025-13", period.Period{}, true},
		{"single digit month", "2025-6", period.Period{}, true},
		{"no separator", "202506", period.Period{}, true},
		{"empty", "", period.Period{}, true},
		{"letters", "abcd-ef", period.Period{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := period.Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ledger.ErrValidation) {
				t.Errorf("Parse(%q) error = %v, want ErrValidation", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

// TestPeriodString tests the canonical rendering.
func TestPeriodString(t *testing.T) {
	p := period.Period{Year: 2025, Month: time.March}
	if got := p.String(); got != "2025-03" {
		t.Errorf("String() = %q, want 2025-03", got)
	}
	if got := p.MonthName(); got != "March" {
		t.Errorf("MonthName() = %q, want March", got)
	}
}

// TestCurrent tests deriving the period from a clock reading.
func TestCurrent(t *testing.T) {
	now := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)
	if got := period.Current(now); got.String() != "2026-10" {
		t.Errorf("Current() = %s, want 2026-10", got)
	}
}

// TestYearOptions tests the year picker range.
func TestYearOptions(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	got := period.YearOptions(now)
	want := []int{2023, 2024, 2025, 2026, 2027}
	if len(got) != len(want) {
		t.Fatalf("YearOptions() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("YearOptions()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
