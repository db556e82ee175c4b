package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Open creates a fresh in-memory ledger with the schema applied.
// PRE: none
// POST: Returns a handle pinned to a single connection, foreign keys on, schema at LatestSchemaVersion
// INVARIANT: The in-memory image lives exactly as long as the returned handle
func Open(ctx context.Context) (*sql.DB, error) {
	db, err := OpenMemory(ctx)
	if err != nil {
		return nil, err
	}
	if err := MigrateDB(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenMemory opens an empty in-memory database without applying migrations.
// PRE: none
// POST: Returns a single-connection handle with foreign keys enabled
func OpenMemory(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(DriverName, MemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every pooled connection to :memory: is a separate database, so keep exactly one alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

// MigrateDB applies all pending migrations.
// PRE: db is a valid database connection
// POST: schema is at LatestSchemaVersion
func MigrateDB(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// ResetDB drops and recreates every ledger table.
// PRE: db was migrated by MigrateDB
// POST: all four tables exist and are empty
func ResetDB(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("drop schema: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("recreate schema: %w", err)
	}
	return nil
}

// newMigrate binds golang-migrate to db and the embedded migrations.
// The returned instance is never closed: closing the sqlite driver closes db,
// and db is the only handle on the in-memory image.
func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("create sqlite driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, DriverName, driver)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	m.Log = migrateLogger{}
	return m, nil
}

// SchemaVersion reads the applied migration version, 0 if none.
// PRE: db is a valid database connection
// POST: Returns the version recorded by golang-migrate
func SchemaVersion(ctx context.Context, db SQLDB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, "SELECT version FROM "+migratesqlite.DefaultMigrationsTable+" LIMIT 1").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// LatestSchemaVersion returns the highest migration number embedded in the binary.
func LatestSchemaVersion() int {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return 0
	}
	latest := 0
	for _, e := range entries {
		prefix, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			continue
		}
		if v, err := strconv.Atoi(prefix); err == nil && v > latest {
			latest = v
		}
	}
	return latest
}

// migrateLogger routes golang-migrate output through slog.
type migrateLogger struct{}

// Printf logs a migration progress line at debug level.
func (migrateLogger) Printf(format string, v ...any) {
	slog.Debug("migration", "detail", strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Verbose disables golang-migrate's per-statement output.
func (migrateLogger) Verbose() bool {
	return false
}
