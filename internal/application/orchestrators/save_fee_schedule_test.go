package orchestrators

import (
	"context"
	"errors"
	"math"
	"testing"

	"badminton/internal/domain/fee"
	"badminton/internal/domain/ledger"
)

// mockFeeStore implements FeeStore for testing.
type mockFeeStore struct {
	schedules map[string]fee.Schedule
	upserts   int
}

func newMockFeeStore() *mockFeeStore {
	return &mockFeeStore{schedules: make(map[string]fee.Schedule)}
}

// Upsert implements FeeStore.
// POST: the period's schedule is replaced
func (m *mockFeeStore) Upsert(_ context.Context, s fee.Schedule) error {
	m.upserts++
	m.schedules[s.Period.String()] = s
	return nil
}

// TestExecuteSaveFeeSchedule_Idempotent verifies repeated saves keep one schedule.
func TestExecuteSaveFeeSchedule_Idempotent(t *testing.T) {
	store := newMockFeeStore()
	deps := SaveFeeScheduleDeps{FeeStore: store}
	input := SaveFeeScheduleInput{Period: "2025-06", RegularRate: 10, CasualRate: 15}

	for i := 0; i < 2; i++ {
		if _, err := ExecuteSaveFeeSchedule(context.Background(), input, deps); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	if len(store.schedules) != 1 {
		t.Fatalf("schedules = %d, want 1", len(store.schedules))
	}
	got := store.schedules["2025-06"]
	if got.RegularRate != 10 || got.CasualRate != 15 {
		t.Errorf("stored %+v, want 10/15", got)
	}
}

// TestExecuteSaveFeeSchedule_Rejects covers malformed input.
func TestExecuteSaveFeeSchedule_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input SaveFeeScheduleInput
	}{
		{"negative regular", SaveFeeScheduleInput{Period: "2025-06", RegularRate: -1, CasualRate: 5}},
		{"negative casual", SaveFeeScheduleInput{Period: "2025-06", RegularRate: 1, CasualRate: -0.01}},
		{"not a number", SaveFeeScheduleInput{Period: "2025-06", RegularRate: math.NaN()}},
		{"infinite", SaveFeeScheduleInput{Period: "2025-06", CasualRate: math.Inf(1)}},
		{"bad period", SaveFeeScheduleInput{Period: "June 2025", RegularRate: 1}},
		{"month 13", SaveFeeScheduleInput{Period: "2025-13", RegularRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockFeeStore()
			_, err := ExecuteSaveFeeSchedule(context.Background(), tt.input, SaveFeeScheduleDeps{FeeStore: store})
			if !errors.Is(err, ledger.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
			if store.upserts != 0 {
				t.Errorf("store written %d times on rejected input", store.upserts)
			}
		})
	}
}
