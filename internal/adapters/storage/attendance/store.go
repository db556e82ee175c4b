package attendance

import (
	"context"

	domain "badminton/internal/domain/attendance"
	"badminton/internal/domain/period"
)

// Store persists attendance records keyed by (player, period, week).
type Store interface {
	Upsert(ctx context.Context, r domain.Record) error
	Get(ctx context.Context, playerName string, p period.Period, week int) (domain.Record, error)
	ListByPeriod(ctx context.Context, p period.Period) ([]domain.Record, error)
	ListByPlayer(ctx context.Context, playerName string) ([]domain.Record, error)
	CountAttendedByPeriod(ctx context.Context, p period.Period) (map[string]int, error)
}
