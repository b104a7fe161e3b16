// Package store implements the durable local store for captured records.
// It owns the SQLite database that holds user-entered records while the
// device is offline, plus a generic key-value settings table used for app
// settings, credentials, and the consent blob.
//
// Storage faults are never fatal: every operation logs its failure and
// returns a safe default alongside the error, so a caller that ignores the
// error sees at worst "no data". Pending records simply wait for the next
// sync pass.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DefaultListLimit bounds unfiltered list queries.
const DefaultListLimit = 100

// DBFileName is the SQLite file created inside the data directory.
const DBFileName = "fishing.db"

// Store wraps the SQLite database. A single connection serializes writers;
// the driver queues concurrent callers rather than interleaving them.
type Store struct {
	db  *sql.DB
	log *slog.Logger

	// Guards multi-statement write sequences (insert parent + children).
	mu sync.Mutex
}

// Open opens (creating if needed) the database under dataDir and runs the
// schema migration. Migration is idempotent and never drops existing data.
func Open(dataDir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", filepath.Clean(dbPath))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	s := &Store{db: db, log: logger}
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates all tables if absent. Safe to call on every startup.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		s.log.Error("schema migration failed", "error", err)
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close releases the database connection. Idempotent.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Query selects records of a kind. The zero value lists everything,
// most recent first, capped at DefaultListLimit. Date filtering needs
// both ends: a query with only From or only To set is treated as having
// no date range and falls back to the default listing.
type Query struct {
	ByID        int64     // when > 0, select the single record with this id
	Unsubmitted bool      // only records pending sync
	From, To    time.Time // when both set, records with From <= date <= To, ascending
	Limit       int       // cap for list queries; 0 means DefaultListLimit
}

func (q Query) limit() int {
	if q.Limit > 0 {
		return q.Limit
	}
	return DefaultListLimit
}

func (q Query) dateRange() bool {
	return !q.From.IsZero() && !q.To.IsZero()
}

// Timestamps are stored as RFC 3339 UTC strings.

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func decodeTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func decodeNullTime(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t := decodeTime(ns.String)
	if t.IsZero() {
		return nil
	}
	return &t
}

func encodeNullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func decodeNullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}
