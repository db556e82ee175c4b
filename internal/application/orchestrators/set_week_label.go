package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"badminton/internal/domain/period"
	"badminton/internal/domain/weeklabel"
)

// WeekLabelStore defines the week label persistence needed by commands.
type WeekLabelStore interface {
	Upsert(ctx context.Context, l weeklabel.Label) error
	Delete(ctx context.Context, p period.Period, week int) error
}

// SetWeekLabelInput carries input for the orchestrator.
type SetWeekLabelInput struct {
	Period string
	Week   int
	Label  string
}

// SetWeekLabelDeps holds dependencies for SetWeekLabel.
type SetWeekLabelDeps struct {
	WeekLabelStore WeekLabelStore
}

// ExecuteSetWeekLabel names a week, or clears the name when the label is blank.
// PRE: Week in [1, attendance.TotalWeeks]
// POST: The stored label is the trimmed text; a blank label restores the "Week N" default
func ExecuteSetWeekLabel(ctx context.Context, input SetWeekLabelInput, deps SetWeekLabelDeps) (weeklabel.Label, error) {
	p, err := period.Parse(input.Period)
	if err != nil {
		return weeklabel.Label{}, err
	}

	l := weeklabel.Label{Period: p, Week: input.Week, Text: strings.TrimSpace(input.Label)}
	if err := l.Validate(); err != nil {
		return weeklabel.Label{}, err
	}

	if l.IsBlank() {
		if err := deps.WeekLabelStore.Delete(ctx, p, l.Week); err != nil {
			return weeklabel.Label{}, err
		}
		slog.Info("week_label_event", "event", "week_label_cleared", "period", p.String(), "week", l.Week)
		l.Text = weeklabel.Default(l.Week)
		return l, nil
	}

	if err := deps.WeekLabelStore.Upsert(ctx, l); err != nil {
		return weeklabel.Label{}, err
	}

	slog.Info("week_label_event", "event", "week_label_set", "period", p.String(), "week", l.Week)
	return l, nil
}
