package fee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"badminton/internal/adapters/storage"
	domain "badminton/internal/domain/fee"
	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new fee Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Upsert stores the schedule for its period, replacing any previous rates.
// PRE: s has been validated
// POST: Exactly one row exists for s.Period carrying s's rates
func (s *SQLiteStore) Upsert(ctx context.Context, sched domain.Schedule) error {
	query := `INSERT INTO fee_schedule (period, regular_rate, casual_rate)
		VALUES (?, ?, ?)
		ON CONFLICT(period) DO UPDATE SET
			regular_rate = excluded.regular_rate,
			casual_rate = excluded.casual_rate`

	_, err := s.db.ExecContext(ctx, query, sched.Period.String(), sched.RegularRate, sched.CasualRate)
	return storage.TranslateError(err, fmt.Sprintf("fee schedule %s", sched.Period))
}

// Get retrieves the schedule for a period.
// POST: Returns the schedule or an error wrapping ledger.ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, p period.Period) (domain.Schedule, error) {
	sched := domain.Schedule{Period: p}
	err := s.db.QueryRowContext(ctx,
		"SELECT regular_rate, casual_rate FROM fee_schedule WHERE period = ?", p.String(),
	).Scan(&sched.RegularRate, &sched.CasualRate)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Schedule{}, ledger.NotFoundf("no fee schedule for %s", p)
	}
	if err != nil {
		return domain.Schedule{}, err
	}
	return sched, nil
}

// List returns every stored schedule, oldest period first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT period, regular_rate, casual_rate FROM fee_schedule ORDER BY period")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Schedule
	for rows.Next() {
		var raw string
		var sched domain.Schedule
		if err := rows.Scan(&raw, &sched.RegularRate, &sched.CasualRate); err != nil {
			return nil, err
		}
		if sched.Period, err = period.Parse(raw); err != nil {
			return nil, fmt.Errorf("stored fee schedule: %w", err)
		}
		results = append(results, sched)
	}
	return results, rows.Err()
}
