package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"badminton/internal/domain/fee"
	"badminton/internal/domain/period"
)

// Baseline rates written by a seeded reset.
const (
	SeedRegularRate = 10.0
	SeedCasualRate  = 15.0
)

// ResetStoreInput carries input for the orchestrator.
type ResetStoreInput struct {
	Seed bool
}

// ResetStoreResult describes the store after a reset.
type ResetStoreResult struct {
	Seeded   bool
	Schedule fee.Schedule
}

// ResetStoreDeps holds dependencies for ResetStore.
type ResetStoreDeps struct {
	Reset    func(ctx context.Context) error
	FeeStore FeeStore
	Now      func() time.Time
}

// ExecuteResetStore drops and recreates every ledger table, then optionally seeds baseline data.
// PRE: Reset recreates the schema
// POST: All tables are empty, or hold only the current period's baseline fee schedule when seeded
func ExecuteResetStore(ctx context.Context, input ResetStoreInput, deps ResetStoreDeps) (ResetStoreResult, error) {
	if err := deps.Reset(ctx); err != nil {
		return ResetStoreResult{}, err
	}
	slog.Warn("store_event", "event", "store_reset", "seed", input.Seed)

	if !input.Seed {
		return ResetStoreResult{}, nil
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	s := fee.Schedule{
		Period:      period.Current(now()),
		RegularRate: SeedRegularRate,
		CasualRate:  SeedCasualRate,
	}
	if err := deps.FeeStore.Upsert(ctx, s); err != nil {
		return ResetStoreResult{}, err
	}

	slog.Info("store_event", "event", "store_seeded", "period", s.Period.String())
	return ResetStoreResult{Seeded: true, Schedule: s}, nil
}
