package fee

import (
	"context"

	domain "badminton/internal/domain/fee"
	"badminton/internal/domain/period"
)

// Store persists fee schedules, one per period.
type Store interface {
	Upsert(ctx context.Context, s domain.Schedule) error
	Get(ctx context.Context, p period.Period) (domain.Schedule, error)
	List(ctx context.Context) ([]domain.Schedule, error)
}
