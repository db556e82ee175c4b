package projections

import (
	"context"
	"strings"

	"badminton/internal/application/listutil"
	"badminton/internal/domain/attendance"
	"badminton/internal/domain/ledger"
)

// PlayerAttendanceStore lists one player's attendance across periods.
type PlayerAttendanceStore interface {
	ListByPlayer(ctx context.Context, playerName string) ([]attendance.Record, error)
}

// PlayerAttendanceQuery carries query parameters.
type PlayerAttendanceQuery struct {
	PlayerName string
	Page       listutil.PageParams
}

// PlayerAttendanceRow is one recorded week.
type PlayerAttendanceRow struct {
	Period   string `json:"period"`
	Week     int    `json:"week"`
	Attended bool   `json:"attended"`
}

// PlayerAttendanceResult carries the query result.
type PlayerAttendanceResult struct {
	Player        string                `json:"player"`
	Weeks         []PlayerAttendanceRow `json:"weeks"`
	AttendedCount int                   `json:"attendedCount"`
	Page          listutil.PageInfo     `json:"page"`
}

// PlayerAttendanceDeps holds dependencies for PlayerAttendance.
type PlayerAttendanceDeps struct {
	AttendanceStore PlayerAttendanceStore
}

// QueryPlayerAttendance returns a player's recorded weeks in store order.
// PRE: PlayerName is non-empty
// POST: Weeks is non-nil and holds the requested page; AttendedCount counts every attended row
func QueryPlayerAttendance(ctx context.Context, query PlayerAttendanceQuery, deps PlayerAttendanceDeps) (PlayerAttendanceResult, error) {
	name := strings.TrimSpace(query.PlayerName)
	if name == "" {
		return PlayerAttendanceResult{}, ledger.Validationf("player name is required")
	}

	records, err := deps.AttendanceStore.ListByPlayer(ctx, name)
	if err != nil {
		return PlayerAttendanceResult{}, err
	}

	rows := make([]PlayerAttendanceRow, 0, len(records))
	res := PlayerAttendanceResult{Player: name}
	for _, r := range records {
		rows = append(rows, PlayerAttendanceRow{Period: r.Period.String(), Week: r.Week, Attended: r.Attended})
		if r.Attended {
			res.AttendedCount++
		}
	}
	res.Weeks, res.Page = listutil.Paginate(rows, query.Page)
	return res, nil
}
