package orchestrators

import (
	"context"
	"log/slog"

	"badminton/internal/domain/fee"
	"badminton/internal/domain/period"
)

// FeeStore defines the fee persistence needed by commands.
type FeeStore interface {
	Upsert(ctx context.Context, s fee.Schedule) error
}

// SaveFeeScheduleInput carries input for the orchestrator.
type SaveFeeScheduleInput struct {
	Period      string
	RegularRate float64
	CasualRate  float64
}

// SaveFeeScheduleDeps holds dependencies for SaveFeeSchedule.
type SaveFeeScheduleDeps struct {
	FeeStore FeeStore
}

// ExecuteSaveFeeSchedule creates or replaces the rates for a period.
// PRE: Period in YYYY-MM form
// POST: The period has exactly one schedule carrying the given rates
// INVARIANT: Rates are finite and >= 0
func ExecuteSaveFeeSchedule(ctx context.Context, input SaveFeeScheduleInput, deps SaveFeeScheduleDeps) (fee.Schedule, error) {
	p, err := period.Parse(input.Period)
	if err != nil {
		return fee.Schedule{}, err
	}

	s := fee.Schedule{Period: p, RegularRate: input.RegularRate, CasualRate: input.CasualRate}
	if err := s.Validate(); err != nil {
		return fee.Schedule{}, err
	}

	if err := deps.FeeStore.Upsert(ctx, s); err != nil {
		return fee.Schedule{}, err
	}

	slog.Info("fee_event", "event", "fee_schedule_saved", "period", p.String(), "regular_rate", s.RegularRate, "casual_rate", s.CasualRate)
	return s, nil
}
