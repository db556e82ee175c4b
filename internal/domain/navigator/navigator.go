// Package navigator tracks which week of which period the dashboard is looking at.
package navigator

import (
	"context"
	"sync"

	"github.com/itbasis/go-clock"

	"badminton/internal/domain/attendance"
	"badminton/internal/domain/period"
)

// LabelResolver resolves the display label of a week.
type LabelResolver interface {
	WeekLabel(ctx context.Context, p period.Period, week int) (string, error)
}

// State is a point-in-time copy of the navigator position.
type State struct {
	Period period.Period
	Week   int
}

// Navigator bounds the active week to [1, attendance.TotalWeeks].
// INVARIANT: 1 <= week <= attendance.TotalWeeks
type Navigator struct {
	mu     sync.Mutex
	period period.Period
	week   int
}

// New starts at week 1 of the current calendar period read from c.
func New(c clock.Clock) *Navigator {
	return &Navigator{
		period: period.Current(c.Now()),
		week:   1,
	}
}

// Next advances one week; no-op at the last week.
func (n *Navigator) Next() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.week < attendance.TotalWeeks {
		n.week++
	}
	return n.stateLocked()
}

// Prev steps back one week; no-op at week 1.
func (n *Navigator) Prev() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.week > 1 {
		n.week--
	}
	return n.stateLocked()
}

// Jump moves directly to week.
// POST: Returns an error wrapping ledger.ErrValidation and leaves the state unchanged when week is out of range
func (n *Navigator) Jump(week int) (State, error) {
	if err := attendance.ValidateWeek(week); err != nil {
		return n.State(), err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.week = week
	return n.stateLocked(), nil
}

// SetPeriod switches the active period. The week position is kept.
func (n *Navigator) SetPeriod(p period.Period) State {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.period = p
	return n.stateLocked()
}

// Week returns the active week.
func (n *Navigator) Week() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.week
}

// Period returns the active period.
func (n *Navigator) Period() period.Period {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.period
}

// State returns a copy of the current position.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stateLocked()
}

// Label resolves the display label of the active week.
func (n *Navigator) Label(ctx context.Context, r LabelResolver) (string, error) {
	s := n.State()
	return r.WeekLabel(ctx, s.Period, s.Week)
}

func (n *Navigator) stateLocked() State {
	return State{Period: n.period, Week: n.week}
}
