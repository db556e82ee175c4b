package billing_test

import (
	"testing"

	"badminton/internal/domain/billing"
	"badminton/internal/domain/fee"
)

// TestClassify tests the tier boundary.
func TestClassify(t *testing.T) {
	tests := []struct {
		count int
		want  billing.Tier
	}{
		{0, billing.TierCasual},
		{1, billing.TierCasual},
		{3, billing.TierCasual},
		{4, billing.TierRegular},
		{5, billing.TierRegular},
	}

	for _, tt := range tests {
		if got := billing.Classify(tt.count); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.count, got, tt.want)
		}
	}
}

// TestClassifyMatchesThreshold checks every count around the threshold.
func TestClassifyMatchesThreshold(t *testing.T) {
	for n := -1; n <= billing.RegularThreshold+3; n++ {
		regular := billing.Classify(n) == billing.TierRegular
		if regular != (n >= billing.RegularThreshold) {
			t.Errorf("Classify(%d) regular=%v, want %v", n, regular, n >= billing.RegularThreshold)
		}
	}
}

// TestRateFor tests rate selection per tier.
func TestRateFor(t *testing.T) {
	s := fee.Schedule{RegularRate: 10, CasualRate: 3}
	if got := billing.RateFor(s, billing.TierRegular); got != 10 {
		t.Errorf("RateFor(Regular) = %v, want 10", got)
	}
	if got := billing.RateFor(s, billing.TierCasual); got != 3 {
		t.Errorf("RateFor(Casual) = %v, want 3", got)
	}
}

// TestAmount tests pricing and display rounding.
func TestAmount(t *testing.T) {
	if got := billing.Amount(4, 10); got != 40 {
		t.Errorf("Amount(4, 10) = %v, want 40", got)
	}
	if got := billing.RoundCents(billing.Amount(1, 10.0/3)); got != 3.33 {
		t.Errorf("RoundCents(Amount(1, 10/3)) = %v, want 3.33", got)
	}
}
