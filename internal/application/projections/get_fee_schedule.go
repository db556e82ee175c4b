package projections

import (
	"context"
	"errors"

	"badminton/internal/domain/fee"
	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
)

// FeeScheduleQuery carries query parameters.
type FeeScheduleQuery struct {
	Period string
}

// FeeScheduleResult carries the query result.
type FeeScheduleResult struct {
	Schedule   fee.Schedule
	Configured bool
}

// FeeScheduleDeps holds dependencies for FeeSchedule.
type FeeScheduleDeps struct {
	FeeStore FeeStore
}

// QueryFeeSchedule returns the rates for a period.
// PRE: Period in YYYY-MM form
// POST: An unconfigured period yields zero rates with Configured=false
func QueryFeeSchedule(ctx context.Context, query FeeScheduleQuery, deps FeeScheduleDeps) (FeeScheduleResult, error) {
	p, err := period.Parse(query.Period)
	if err != nil {
		return FeeScheduleResult{}, err
	}
	return lookupSchedule(ctx, deps.FeeStore, p)
}

func lookupSchedule(ctx context.Context, store FeeStore, p period.Period) (FeeScheduleResult, error) {
	s, err := store.Get(ctx, p)
	if errors.Is(err, ledger.ErrNotFound) {
		return FeeScheduleResult{Schedule: fee.Default(p)}, nil
	}
	if err != nil {
		return FeeScheduleResult{}, err
	}
	return FeeScheduleResult{Schedule: s, Configured: true}, nil
}
