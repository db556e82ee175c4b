package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"badminton/internal/adapters/storage"
	domain "badminton/internal/domain/attendance"
	"badminton/internal/domain/ledger"
	"badminton/internal/domain/period"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new attendance Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectColumns = "player_name, period, week, attended"

// Upsert records whether a player attended a week, replacing any previous flag.
// PRE: r has been validated
// POST: Exactly one row exists for (r.PlayerName, r.Period, r.Week)
func (s *SQLiteStore) Upsert(ctx context.Context, r domain.Record) error {
	query := `INSERT INTO attendance (player_name, period, week, attended)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(player_name, period, week) DO UPDATE SET attended = excluded.attended`

	_, err := s.db.ExecContext(ctx, query, r.PlayerName, r.Period.String(), r.Week, domain.Flag(r.Attended))
	return storage.TranslateError(err, fmt.Sprintf("attendance for %q %s week %d", r.PlayerName, r.Period, r.Week))
}

// Get retrieves one attendance record.
// POST: Returns the record or an error wrapping ledger.ErrNotFound
func (s *SQLiteStore) Get(ctx context.Context, playerName string, p period.Period, week int) (domain.Record, error) {
	var flag int
	err := s.db.QueryRowContext(ctx,
		"SELECT attended FROM attendance WHERE player_name = ? AND period = ? AND week = ?",
		playerName, p.String(), week,
	).Scan(&flag)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, ledger.NotFoundf("no attendance for %q %s week %d", playerName, p, week)
	}
	if err != nil {
		return domain.Record{}, err
	}
	return domain.Record{PlayerName: playerName, Period: p, Week: week, Attended: flag == 1}, nil
}

// ListByPeriod returns every record in a period ordered by player then week.
func (s *SQLiteStore) ListByPeriod(ctx context.Context, p period.Period) ([]domain.Record, error) {
	return s.list(ctx, "SELECT "+selectColumns+" FROM attendance WHERE period = ? ORDER BY player_name, week", p.String())
}

// ListByPlayer returns every record for a player ordered by period then week.
func (s *SQLiteStore) ListByPlayer(ctx context.Context, playerName string) ([]domain.Record, error) {
	return s.list(ctx, "SELECT "+selectColumns+" FROM attendance WHERE player_name = ? ORDER BY period, week", playerName)
}

// CountAttendedByPeriod counts attended weeks per player for a period.
// POST: Players with no attended week are absent from the map
func (s *SQLiteStore) CountAttendedByPeriod(ctx context.Context, p period.Period) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_name, COUNT(*) FROM attendance
		WHERE period = ? AND attended = 1 AND week BETWEEN 1 AND ?
		GROUP BY player_name`, p.String(), domain.TotalWeeks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, rows.Err()
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Record
	for rows.Next() {
		var r domain.Record
		var raw string
		var flag int
		if err := rows.Scan(&r.PlayerName, &raw, &r.Week, &flag); err != nil {
			return nil, err
		}
		if r.Period, err = period.Parse(raw); err != nil {
			return nil, fmt.Errorf("stored attendance: %w", err)
		}
		r.Attended = flag == 1
		results = append(results, r)
	}
	return results, rows.Err()
}
