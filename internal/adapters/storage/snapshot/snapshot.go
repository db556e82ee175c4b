// Package snapshot turns the in-memory ledger into portable bytes and back.
package snapshot

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"badminton/internal/adapters/storage"
	"badminton/internal/domain/ledger"
)

// MediaType is the content type of an exported image.
const MediaType = "application/vnd.sqlite3"

// header opens every SQLite database file.
var header = []byte("SQLite format 3\x00")

// headerSize is the fixed size of the SQLite file header.
const headerSize = 100

type serializer interface {
	Serialize() ([]byte, error)
}

// Export serializes the whole ledger into a SQLite database image.
// PRE: db is the store handle returned by storage.Open
// POST: Returns bytes that Load accepts; the store is unchanged
func Export(ctx context.Context, db *sql.DB) ([]byte, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	var image []byte
	err = conn.Raw(func(driverConn any) error {
		s, ok := driverConn.(serializer)
		if !ok {
			return fmt.Errorf("driver connection %T cannot serialize", driverConn)
		}
		image, err = s.Serialize()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("serialize ledger: %w", err)
	}
	slog.Info("snapshot_event", "event", "exported", "bytes", len(image), "digest", Digest(image))
	return image, nil
}

// Digest returns the hex BLAKE2b-256 digest of an image.
func Digest(image []byte) string {
	sum := blake2b.Sum256(image)
	return hex.EncodeToString(sum[:])
}

// Load copies an exported image into an empty store.
// PRE: target has the current schema applied
// POST: all four tables hold the image's rows; nothing changes on error
// INVARIANT: target must be empty, otherwise ledger.ErrDuplicateKey
func Load(ctx context.Context, target storage.SQLDB, image []byte) error {
	img, err := Read(ctx, image)
	if err != nil {
		return err
	}
	return img.apply(ctx, target, false)
}

// Replace swaps the store's contents for an exported image in one transaction.
// PRE: target has the current schema applied
// POST: the store holds exactly the image's rows; nothing changes on error
func Replace(ctx context.Context, target storage.SQLDB, image []byte) error {
	img, err := Read(ctx, image)
	if err != nil {
		return err
	}
	return img.apply(ctx, target, true)
}

// Image is the decoded content of an exported ledger.
type Image struct {
	Players    []playerRow
	Fees       []feeRow
	Attendance []attendanceRow
	WeekLabels []weekLabelRow
}

type playerRow struct {
	Name     string
	Contact  string
	Position int64
}

type feeRow struct {
	Period      string
	RegularRate float64
	CasualRate  float64
}

type attendanceRow struct {
	PlayerName string
	Period     string
	Week       int
	Attended   int
}

type weekLabelRow struct {
	Period string
	Week   int
	Label  string
}

// Read decodes an exported image without touching any store.
// PRE: none
// POST: Returns the image rows or an error wrapping ledger.ErrValidation for foreign bytes
func Read(ctx context.Context, image []byte) (*Image, error) {
	if len(image) < headerSize || !bytes.HasPrefix(image, header) {
		return nil, ledger.Validationf("snapshot is not a SQLite database image")
	}

	scratch, cleanup, err := openImage(ctx, image)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	version, err := storage.SchemaVersion(ctx, scratch)
	if err != nil {
		return nil, ledger.Validationf("snapshot has no schema version: %v", err)
	}
	if latest := storage.LatestSchemaVersion(); version != latest {
		return nil, ledger.Validationf("snapshot schema version %d does not match %d", version, latest)
	}

	img := &Image{}
	if err := img.read(ctx, scratch); err != nil {
		return nil, ledger.Validationf("snapshot tables unreadable: %v", err)
	}
	return img, nil
}

// openImage spills the image to a temporary file and opens it read-only.
// POST: cleanup closes the handle and removes the file
func openImage(ctx context.Context, image []byte) (*sql.DB, func(), error) {
	f, err := os.CreateTemp("", "ledger-snapshot-*.sqlite")
	if err != nil {
		return nil, nil, fmt.Errorf("create snapshot file: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(image); err != nil {
		f.Close()
		os.Remove(path)
		return nil, nil, fmt.Errorf("write snapshot file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, nil, fmt.Errorf("close snapshot file: %w", err)
	}

	dsn := (&url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: "mode=ro"}).String()
	db, err := sql.Open(storage.DriverName, dsn)
	if err != nil {
		os.Remove(path)
		return nil, nil, fmt.Errorf("open snapshot file: %w", err)
	}
	db.SetMaxOpenConns(1)
	cleanup := func() {
		db.Close()
		os.Remove(path)
	}
	if err := db.PingContext(ctx); err != nil {
		cleanup()
		return nil, nil, ledger.Validationf("snapshot could not be opened: %v", err)
	}
	return db, cleanup, nil
}

func (img *Image) read(ctx context.Context, db *sql.DB) error {
	if err := scanAll(ctx, db, "SELECT name, contact, position FROM player ORDER BY position", func(rows *sql.Rows) error {
		var r playerRow
		if err := rows.Scan(&r.Name, &r.Contact, &r.Position); err != nil {
			return err
		}
		img.Players = append(img.Players, r)
		return nil
	}); err != nil {
		return err
	}
	if err := scanAll(ctx, db, "SELECT period, regular_rate, casual_rate FROM fee_schedule ORDER BY period", func(rows *sql.Rows) error {
		var r feeRow
		if err := rows.Scan(&r.Period, &r.RegularRate, &r.CasualRate); err != nil {
			return err
		}
		img.Fees = append(img.Fees, r)
		return nil
	}); err != nil {
		return err
	}
	if err := scanAll(ctx, db, "SELECT player_name, period, week, attended FROM attendance ORDER BY player_name, period, week", func(rows *sql.Rows) error {
		var r attendanceRow
		if err := rows.Scan(&r.PlayerName, &r.Period, &r.Week, &r.Attended); err != nil {
			return err
		}
		img.Attendance = append(img.Attendance, r)
		return nil
	}); err != nil {
		return err
	}
	return scanAll(ctx, db, "SELECT period, week, label FROM week_label ORDER BY period, week", func(rows *sql.Rows) error {
		var r weekLabelRow
		if err := rows.Scan(&r.Period, &r.Week, &r.Label); err != nil {
			return err
		}
		img.WeekLabels = append(img.WeekLabels, r)
		return nil
	})
}

func scanAll(ctx context.Context, db *sql.DB, query string, each func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := each(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// ledgerTables lists the tables in dependency order: parents before children.
var ledgerTables = []string{"player", "fee_schedule", "week_label", "attendance"}

func (img *Image) apply(ctx context.Context, target storage.SQLDB, replace bool) error {
	tx, err := target.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if replace {
		for i := len(ledgerTables) - 1; i >= 0; i-- {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+ledgerTables[i]); err != nil {
				return fmt.Errorf("clear %s: %w", ledgerTables[i], err)
			}
		}
	} else {
		for _, table := range ledgerTables {
			var n int
			if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
				return err
			}
			if n > 0 {
				return ledger.DuplicateKeyf("store is not empty: %s has %d rows", table, n)
			}
		}
	}

	for _, r := range img.Players {
		if _, err := tx.ExecContext(ctx, "INSERT INTO player (name, contact, position) VALUES (?, ?, ?)",
			r.Name, r.Contact, r.Position); err != nil {
			return storage.TranslateError(err, fmt.Sprintf("snapshot player %q", r.Name))
		}
	}
	for _, r := range img.Fees {
		if _, err := tx.ExecContext(ctx, "INSERT INTO fee_schedule (period, regular_rate, casual_rate) VALUES (?, ?, ?)",
			r.Period, r.RegularRate, r.CasualRate); err != nil {
			return storage.TranslateError(err, fmt.Sprintf("snapshot fee schedule %s", r.Period))
		}
	}
	for _, r := range img.WeekLabels {
		if _, err := tx.ExecContext(ctx, "INSERT INTO week_label (period, week, label) VALUES (?, ?, ?)",
			r.Period, r.Week, r.Label); err != nil {
			return storage.TranslateError(err, fmt.Sprintf("snapshot week label %s/%d", r.Period, r.Week))
		}
	}
	for _, r := range img.Attendance {
		if _, err := tx.ExecContext(ctx, "INSERT INTO attendance (player_name, period, week, attended) VALUES (?, ?, ?, ?)",
			r.PlayerName, r.Period, r.Week, r.Attended); err != nil {
			return storage.TranslateError(err, fmt.Sprintf("snapshot attendance %q %s/%d", r.PlayerName, r.Period, r.Week))
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("snapshot_event", "event", "loaded",
		"players", len(img.Players),
		"fee_schedules", len(img.Fees),
		"attendance", len(img.Attendance),
		"week_labels", len(img.WeekLabels),
		"replace", replace,
	)
	return nil
}
