package weeklabel

import (
	"context"

	"badminton/internal/domain/period"
	domain "badminton/internal/domain/weeklabel"
)

// Store persists custom week labels keyed by (period, week).
type Store interface {
	Upsert(ctx context.Context, l domain.Label) error
	Delete(ctx context.Context, p period.Period, week int) error
	Get(ctx context.Context, p period.Period, week int) (domain.Label, error)
	ListByPeriod(ctx context.Context, p period.Period) ([]domain.Label, error)
}
