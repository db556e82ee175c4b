package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"badminton/internal/adapters/storage"
	"badminton/internal/domain/ledger"
	domain "badminton/internal/domain/player"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new player Store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Insert adds a new player at the end of the roster.
// PRE: p has been validated
// POST: Returns p with Position set; ledger.ErrDuplicateKey if the name is taken
func (s *SQLiteStore) Insert(ctx context.Context, p domain.Player) (domain.Player, error) {
	query := `INSERT INTO player (name, contact, position)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM player))
		RETURNING position`

	if err := s.db.QueryRowContext(ctx, query, p.Name, p.Contact).Scan(&p.Position); err != nil {
		return domain.Player{}, storage.TranslateError(err, fmt.Sprintf("player %q", p.Name))
	}
	return p, nil
}

// GetByName retrieves a player by name.
// PRE: name is non-empty
// POST: Returns the player or an error wrapping ledger.ErrNotFound
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Player, error) {
	var p domain.Player
	err := s.db.QueryRowContext(ctx,
		"SELECT name, contact, position FROM player WHERE name = ?", name,
	).Scan(&p.Name, &p.Contact, &p.Position)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Player{}, ledger.NotFoundf("player %q", name)
	}
	return p, err
}

// Exists reports whether a player with this exact name is on the roster.
func (s *SQLiteStore) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM player WHERE name = ?", name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns every player in insertion order.
// POST: Players ordered by Position ascending
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, contact, position FROM player ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Player
	for rows.Next() {
		var p domain.Player
		if err := rows.Scan(&p.Name, &p.Contact, &p.Position); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// Delete removes only the player row.
// POST: ledger.ErrReferentialIntegrity while attendance rows still reference the player
func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM player WHERE name = ?", name)
	if err != nil {
		return storage.TranslateError(err, fmt.Sprintf("player %q", name))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ledger.NotFoundf("player %q", name)
	}
	return nil
}

// DeleteWithAttendance removes a player and every attendance row referencing it in one transaction.
// PRE: name is non-empty
// POST: Returns the number of attendance rows removed; nothing changes on error
// INVARIANT: no attendance row references name after commit
func (s *SQLiteStore) DeleteWithAttendance(ctx context.Context, name string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM attendance WHERE player_name = ?", name)
	if err != nil {
		return 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	res, err = tx.ExecContext(ctx, "DELETE FROM player WHERE name = ?", name)
	if err != nil {
		return 0, storage.TranslateError(err, fmt.Sprintf("player %q", name))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ledger.NotFoundf("player %q", name)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(removed), nil
}
