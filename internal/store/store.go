package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/franz/ai-directors-chair/internal/util"
)

const (
	currentSchemaVersion = 1

	// appFolder is the fixed directory name under the platform's
	// user data directory. Existing installations depend on it.
	appFolder = "ai-directors-chair"

	dbFileName = "projects.db"
)

// Sentinel errors for the store's failure taxonomy
var (
	// ErrNotFound indicates the requested row does not exist
	ErrNotFound = errors.New("no such row")

	// ErrConstraint indicates a required field is missing, a status
	// value is outside its allowed set, or a referenced parent row
	// does not exist
	ErrConstraint = errors.New("constraint violation")

	// ErrClosed indicates an operation was attempted against a store
	// that failed to initialize or has been closed
	ErrClosed = errors.New("store unavailable")
)

// Store is the application's persistent state: projects, characters,
// scenes, video generation jobs and settings in one SQLite file.
// Open it once per process run and pass the handle explicitly.
type Store struct {
	db *sql.DB

	// mu serializes transactions. Single local user, low throughput;
	// one global write lock keeps cascades invisible mid-flight.
	mu     sync.Mutex
	closed bool
}

// DefaultPath returns the canonical database location,
// <platform-user-data-dir>/ai-directors-chair/projects.db,
// creating the directory if needed. It never fails: when the
// platform directory cannot be determined it falls back to the
// current directory.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), dbFileName)
}

// DefaultDir returns the application data directory that holds the
// database file.
func DefaultDir() string {
	dir := filepath.Join(util.UserDataDir(), appFolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "."
	}
	return dir
}

// Open opens or creates the SQLite database at the given path and
// ensures the schema exists. Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &Store{db: db}

	if err := store.applyPragmas(); err != nil {
		db.Close()
		return nil, err
	}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema initialization failed: %w", err)
	}

	return store, nil
}

// applyPragmas configures the connection. foreign_keys is off by
// default in SQLite; without it the declared ON DELETE CASCADE
// clauses are inert and the cascade invariants do not hold.
func (s *Store) applyPragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection. Operations after Close
// return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// ready reports whether the store can accept operations.
func (s *Store) ready() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// DB returns the underlying database connection for custom queries
func (s *Store) DB() *sql.DB {
	return s.db
}

// SQLiteVersion returns the SQLite version string
func SQLiteVersion() string {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return ""
	}
	defer db.Close()

	var version string
	if err := db.QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		return ""
	}
	return version
}

// CheckIntegrity runs PRAGMA integrity_check on the database
func (s *Store) CheckIntegrity() error {
	if err := s.ready(); err != nil {
		return err
	}

	var result string
	err := s.db.QueryRow("PRAGMA integrity_check").Scan(&result)
	if err != nil {
		return fmt.Errorf("integrity check query failed: %w", err)
	}

	if result != "ok" {
		return fmt.Errorf("integrity check failed: %s", result)
	}

	return nil
}

// migrate applies the schema. Creation is idempotent (CREATE IF NOT
// EXISTS throughout), so repeated startups against the same file
// neither fail nor touch existing rows.
func (s *Store) migrate() error {
	version, err := s.getSchemaVersion()
	if err != nil {
		return err
	}

	if version >= currentSchemaVersion {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if version < 1 {
		if _, err := tx.Exec(schemaV1); err != nil {
			return fmt.Errorf("failed to apply schema v1: %w", err)
		}
		if err := s.setSchemaVersion(tx, 1); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	return nil
}

// getSchemaVersion returns the current schema version
func (s *Store) getSchemaVersion() (int, error) {
	var exists int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&exists)
	if err != nil {
		return 0, err
	}

	if exists == 0 {
		return 0, nil
	}

	var version int
	err = s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, err
	}

	return version, nil
}

// setSchemaVersion records a schema version in a transaction
func (s *Store) setSchemaVersion(tx *sql.Tx, version int) error {
	_, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version)
	return err
}

// Transaction executes a function within a transaction, serialized
// against all other transactions on this store. Either every change
// made by fn commits or none do.
func (s *Store) Transaction(fn func(*sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// wrapConstraint maps SQLite constraint failures (missing parent row,
// NOT NULL violations) onto the store's ErrConstraint sentinel.
func wrapConstraint(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "constraint") {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return err
}

// now returns the store's timestamp representation. RFC3339 with
// nanoseconds keeps updated_at strictly increasing across rapid
// successive updates, which second-resolution SQLite datetimes cannot.
func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
