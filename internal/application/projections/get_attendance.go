package projections

import (
	"context"
	"errors"

	"badminton/internal/domain/attendance"
	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
)

// AttendanceQuery carries query parameters.
type AttendanceQuery struct {
	PlayerName string
	Period     string
	Week       int
}

// AttendanceDeps holds dependencies for Attendance.
type AttendanceDeps struct {
	AttendanceStore AttendanceStore
}

// QueryAttendance reports whether a player attended a week.
// PRE: Week in [1, attendance.TotalWeeks]
// POST: false when no row exists
func QueryAttendance(ctx context.Context, query AttendanceQuery, deps AttendanceDeps) (bool, error) {
	p, err := period.Parse(query.Period)
	if err != nil {
		return false, err
	}
	if err := attendance.ValidateWeek(query.Week); err != nil {
		return false, err
	}

	r, err := deps.AttendanceStore.Get(ctx, query.PlayerName, p, query.Week)
	if errors.Is(err, ledger.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return r.Attended, nil
}
