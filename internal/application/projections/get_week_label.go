package projections

import (
	"context"
	"errors"

	"badminton/internal/domain/attendance"
	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
	"badminton/internal/domain/weeklabel"
)

// WeekLabelQuery carries query parameters.
type WeekLabelQuery struct {
	Period string
	Week   int
}

// WeekLabelDeps holds dependencies for WeekLabel.
type WeekLabelDeps struct {
	WeekLabelStore WeekLabelStore
}

// QueryWeekLabel returns the display label of a week.
// PRE: Week in [1, attendance.TotalWeeks]
// POST: "Week N" when no custom label is stored
func QueryWeekLabel(ctx context.Context, query WeekLabelQuery, deps WeekLabelDeps) (string, error) {
	p, err := period.Parse(query.Period)
	if err != nil {
		return "", err
	}
	return WeekLabels{Store: deps.WeekLabelStore}.WeekLabel(ctx, p, query.Week)
}

// WeekLabels resolves week labels for the navigator.
type WeekLabels struct {
	Store WeekLabelStore
}

// WeekLabel implements navigator.LabelResolver.
func (w WeekLabels) WeekLabel(ctx context.Context, p period.Period, week int) (string, error) {
	if err := attendance.ValidateWeek(week); err != nil {
		return "", err
	}
	l, err := w.Store.Get(ctx, p, week)
	if errors.Is(err, ledger.ErrNotFound) {
		return weeklabel.Default(week), nil
	}
	if err != nil {
		return "", err
	}
	return l.Text, nil
}
