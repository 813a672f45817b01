// Package store persists profiles, LLM request events, session events and
// teacher error reports.
//
// Tables are declared with ent's schema types and migrated with ent's
// migrate engine; queries are built with ent's dialect-aware SQL builder so
// the same code runs on SQLite, PostgreSQL and MySQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Database drivers.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite" // pure Go, no CGO
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Options selects the backing database.
type Options struct {
	Driver string
	DSN    string
	Logger *slog.Logger
}

// Store owns the database handle and hands out repositories.
type Store struct {
	db      *sql.DB
	drv     *entsql.Driver
	dialect string
	log     *slog.Logger
}

// Open connects, applies SQLite pragmas when relevant and migrates the
// schema.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Driver == "" {
		opts.Driver = DriverSQLite
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	dia, err := dialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if dia == dialect.SQLite {
		if err := applyPragmas(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	s := &Store{
		db:      db,
		drv:     entsql.OpenDB(dia, db),
		dialect: dia,
		log:     opts.Logger,
	}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	s.log.Debug("store opened", "driver", opts.Driver)
	return s, nil
}

// OpenSQLite opens a SQLite database file or URI.
func OpenSQLite(ctx context.Context, dsn string) (*Store, error) {
	return Open(ctx, Options{Driver: DriverSQLite, DSN: dsn})
}

func dialectFor(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return dialect.SQLite, nil
	case DriverPostgres:
		return dialect.Postgres, nil
	case DriverMySQL:
		return dialect.MySQL, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// DB returns the raw handle.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect returns the ent dialect name in use.
func (s *Store) Dialect() string { return s.dialect }

// Close closes the database.
func (s *Store) Close() error { return s.drv.Close() }

// builder returns a SQL builder for the active dialect.
func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

// Profiles returns the profile repository.
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{s: s} }

// Events returns the event repository.
func (s *Store) Events() *EventLog { return &EventLog{s: s} }

// Reports returns the error report repository.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{s: s} }

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
