package projections

import (
	"context"

	"badminton/internal/domain/fee"
)

// FeeHistoryStore lists every configured fee schedule.
type FeeHistoryStore interface {
	List(ctx context.Context) ([]fee.Schedule, error)
}

// FeeHistoryQuery carries query parameters.
type FeeHistoryQuery struct{}

// FeeHistoryRow is one configured period.
type FeeHistoryRow struct {
	Period      string  `json:"period"`
	RegularRate float64 `json:"regularRate"`
	CasualRate  float64 `json:"casualRate"`
}

// FeeHistoryDeps holds dependencies for FeeHistory.
type FeeHistoryDeps struct {
	FeeStore FeeHistoryStore
}

// QueryFeeHistory lists the configured schedules, oldest period first.
// POST: Returns an empty, non-nil slice when nothing is configured
func QueryFeeHistory(ctx context.Context, _ FeeHistoryQuery, deps FeeHistoryDeps) ([]FeeHistoryRow, error) {
	schedules, err := deps.FeeStore.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]FeeHistoryRow, 0, len(schedules))
	for _, s := range schedules {
		rows = append(rows, FeeHistoryRow{
			Period:      s.Period.String(),
			RegularRate: s.RegularRate,
			CasualRate:  s.CasualRate,
		})
	}
	return rows, nil
}
