package projections

import (
	"context"

	"badminton/internal/domain/attendance"
	"badminton/internal/domain/period"
	"badminton/internal/domain/weeklabel"
)

// AttendanceSheetQuery carries query parameters.
type AttendanceSheetQuery struct {
	Period string
}

// SheetRow is one player's line of the attendance grid.
type SheetRow struct {
	Player string                      `json:"player"`
	Weeks  [attendance.TotalWeeks]bool `json:"weeks"`
}

// AttendanceSheetResult carries the query result.
type AttendanceSheetResult struct {
	Period string                        `json:"period"`
	Labels [attendance.TotalWeeks]string `json:"labels"`
	Rows   []SheetRow                    `json:"rows"`
}

// AttendanceSheetDeps holds dependencies for AttendanceSheet.
type AttendanceSheetDeps struct {
	PlayerStore     PlayerStore
	AttendanceStore AttendanceStore
	WeekLabelStore  WeekLabelStore
}

// QueryAttendanceSheet builds the week-by-player grid the dashboard edits.
// PRE: Period in YYYY-MM form
// POST: One row per player in store order, including players with no attendance
// INVARIANT: Labels[i] is the resolved label of week i+1
func QueryAttendanceSheet(ctx context.Context, query AttendanceSheetQuery, deps AttendanceSheetDeps) (AttendanceSheetResult, error) {
	p, err := period.Parse(query.Period)
	if err != nil {
		return AttendanceSheetResult{}, err
	}

	players, err := deps.PlayerStore.List(ctx)
	if err != nil {
		return AttendanceSheetResult{}, err
	}
	records, err := deps.AttendanceStore.ListByPeriod(ctx, p)
	if err != nil {
		return AttendanceSheetResult{}, err
	}
	labels, err := deps.WeekLabelStore.ListByPeriod(ctx, p)
	if err != nil {
		return AttendanceSheetResult{}, err
	}

	res := AttendanceSheetResult{Period: p.String(), Rows: make([]SheetRow, 0, len(players))}
	for i := range res.Labels {
		res.Labels[i] = weeklabel.Default(i + 1)
	}
	for _, l := range labels {
		if l.Week >= 1 && l.Week <= attendance.TotalWeeks {
			res.Labels[l.Week-1] = l.Text
		}
	}

	attended := make(map[string]*[attendance.TotalWeeks]bool)
	for _, r := range records {
		if r.Week < 1 || r.Week > attendance.TotalWeeks {
			continue
		}
		weeks, ok := attended[r.PlayerName]
		if !ok {
			weeks = new([attendance.TotalWeeks]bool)
			attended[r.PlayerName] = weeks
		}
		weeks[r.Week-1] = r.Attended
	}

	for _, pl := range players {
		row := SheetRow{Player: pl.Name}
		if weeks, ok := attended[pl.Name]; ok {
			row.Weeks = *weeks
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}
