package orchestrators

import (
	"context"
	"log/slog"

	"badminton/internal/domain/attendance"
	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
)

// AttendanceStore defines the attendance persistence needed by commands.
type AttendanceStore interface {
	Upsert(ctx context.Context, r attendance.Record) error
}

// RecordAttendanceInput carries input for the orchestrator.
type RecordAttendanceInput struct {
	PlayerName string
	Period     string
	Week       int
	Attended   bool
}

// RecordAttendanceDeps holds dependencies for RecordAttendance.
type RecordAttendanceDeps struct {
	PlayerStore     PlayerStore
	AttendanceStore AttendanceStore
}

// ExecuteRecordAttendance sets whether a player attended one week of a period.
// PRE: Week in [1, attendance.TotalWeeks]; player is on the roster
// POST: Exactly one attendance row exists for (player, period, week)
func ExecuteRecordAttendance(ctx context.Context, input RecordAttendanceInput, deps RecordAttendanceDeps) (attendance.Record, error) {
	p, err := period.Parse(input.Period)
	if err != nil {
		return attendance.Record{}, err
	}

	r := attendance.Record{PlayerName: input.PlayerName, Period: p, Week: input.Week, Attended: input.Attended}
	if err := r.Validate(); err != nil {
		return attendance.Record{}, err
	}

	ok, err := deps.PlayerStore.Exists(ctx, r.PlayerName)
	if err != nil {
		return attendance.Record{}, err
	}
	if !ok {
		return attendance.Record{}, ledger.Validationf("player %q is not on the roster", r.PlayerName)
	}

	if err := deps.AttendanceStore.Upsert(ctx, r); err != nil {
		return attendance.Record{}, err
	}

	slog.Info("attendance_event", "event", "attendance_recorded", "player", r.PlayerName, "period", p.String(), "week", r.Week, "attended", r.Attended)
	return r, nil
}
