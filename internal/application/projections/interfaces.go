package projections

import (
	"context"

	domainAttendance "badminton/internal/domain/attendance"
	domainFee "badminton/internal/domain/fee"
	"badminton/internal/domain/period"
	domainPlayer "badminton/internal/domain/player"
	domainWeekLabel "badminton/internal/domain/weeklabel"
)

// PlayerStore interface for player queries.
type PlayerStore interface {
	List(ctx context.Context) ([]domainPlayer.Player, error)
}

// FeeStore interface for fee schedule queries.
type FeeStore interface {
	Get(ctx context.Context, p period.Period) (domainFee.Schedule, error)
}

// AttendanceStore interface for attendance queries.
type AttendanceStore interface {
	Get(ctx context.Context, playerName string, p period.Period, week int) (domainAttendance.Record, error)
	ListByPeriod(ctx context.Context, p period.Period) ([]domainAttendance.Record, error)
	CountAttendedByPeriod(ctx context.Context, p period.Period) (map[string]int, error)
}

// WeekLabelStore interface for week label queries.
type WeekLabelStore interface {
	Get(ctx context.Context, p period.Period, week int) (domainWeekLabel.Label, error)
	ListByPeriod(ctx context.Context, p period.Period) ([]domainWeekLabel.Label, error)
}
