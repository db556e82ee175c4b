package weeklabel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"badminton/internal/adapters/storage"
	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
	domain "badminton/internal/domain/weeklabel"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new week label Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Upsert stores the label text for a week.
// PRE: l has been validated and is not blank
// POST: Exactly one row exists for (l.Period, l.Week)
func (s *SQLiteStore) Upsert(ctx context.Context, l domain.Label) error {
	query := `INSERT INTO week_label (period, week, label)
		VALUES (?, ?, ?)
		ON CONFLICT(period, week) DO UPDATE SET label = excluded.label`

	_, err := s.db.ExecContext(ctx, query, l.Period.String(), l.Week, l.Text)
	return storage.TranslateError(err, fmt.Sprintf("week label %s week %d", l.Period, l.Week))
}

// Delete clears a week's label so the default applies again.
// POST: No row exists for (p, week); deleting an absent label is not an error
func (s *SQLiteStore) Delete(ctx context.Context, p period.Period, week int) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM week_label WHERE period = ? AND week = ?", p.String(), week)
	return err
}

// Get retrieves a stored label.
// POST: Returns the label or an error wrapping ledger.ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, p period.Period, week int) (domain.Label, error) {
	l := domain.Label{Period: p, Week: week}
	err := s.db.QueryRowContext(ctx,
		"SELECT label FROM week_label WHERE period = ? AND week = ?", p.String(), week,
	).Scan(&l.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Label{}, ledger.NotFoundf("no label for %s week %d", p, week)
	}
	if err != nil {
		return domain.Label{}, err
	}
	return l, nil
}

// ListByPeriod returns the stored labels of a period ordered by week.
func (s *SQLiteStore) ListByPeriod(ctx context.Context, p period.Period) ([]domain.Label, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT week, label FROM week_label WHERE period = ? ORDER BY week", p.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Label
	for rows.Next() {
		l := domain.Label{Period: p}
		if err := rows.Scan(&l.Week, &l.Text); err != nil {
			return nil, err
		}
		results = append(results, l)
	}
	return results, rows.Err()
}
