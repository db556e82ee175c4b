package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"
)

var resetNow = time.Date(2025, time.June, 14, 9, 0, 0, 0, time.UTC)

// TestExecuteResetStore_Seeded verifies the baseline schedule targets the current period.
func TestExecuteResetStore_Seeded(t *testing.T) {
	resets := 0
	fees := newMockFeeStore()
	deps := ResetStoreDeps{
		Reset:    func(context.Context) error { resets++; return nil },
		FeeStore: fees,
		Now:      func() time.Time { return resetNow },
	}

	res, err := ExecuteResetStore(context.Background(), ResetStoreInput{Seed: true}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resets != 1 {
		t.Errorf("reset called %d times, want 1", resets)
	}
	if !res.Seeded || res.Schedule.Period.String() != "2025-06" {
		t.Errorf("result = %+v, want seeded 2025-06", res)
	}
	if s, ok := fees.schedules["2025-06"]; !ok || s.RegularRate != SeedRegularRate || s.CasualRate != SeedCasualRate {
		t.Errorf("seeded schedule = %+v", s)
	}
}

// TestExecuteResetStore_Unseeded verifies nothing is written without seed.
func TestExecuteResetStore_Unseeded(t *testing.T) {
	fees := newMockFeeStore()
	res, err := ExecuteResetStore(context.Background(), ResetStoreInput{}, ResetStoreDeps{
		Reset:    func(context.Context) error { return nil },
		FeeStore: fees,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Seeded || fees.upserts != 0 {
		t.Errorf("unseeded reset wrote data: %+v", res)
	}
}

// TestExecuteResetStore_ResetFails verifies seeding is skipped when the reset fails.
func TestExecuteResetStore_ResetFails(t *testing.T) {
	boom := errors.New("drop failed")
	fees := newMockFeeStore()
	_, err := ExecuteResetStore(context.Background(), ResetStoreInput{Seed: true}, ResetStoreDeps{
		Reset:    func(context.Context) error { return boom },
		FeeStore: fees,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	if fees.upserts != 0 {
		t.Error("seeded after failed reset")
	}
}
