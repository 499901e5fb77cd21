package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the service.Storage interface using SQLite.
type SQLiteStorage struct {
	db       *sql.DB
	notifier *notifier
	dbPath   string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	// Validate input
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("%w: failed to create database directory: %v", ErrStorageUnavailable, err)
	}

	// Open database with foreign keys on; referential integrity is enforced
	// by the schema, not by application code.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrStorageUnavailable, err)
	}

	// A single connection serializes all writes, so constraint checks always
	// observe a consistent snapshot. SQLite doesn't benefit from more.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Test connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to ping database: %v", ErrStorageUnavailable, err)
	}

	return &SQLiteStorage{
		db:       db,
		dbPath:   dbPath,
		notifier: newNotifier(),
	}, nil
}

// Close closes the database connection and drops all watchers.
func (s *SQLiteStorage) Close() error {
	s.notifier.closeAll()
	return s.db.Close()
}

// Watch registers interest in changes to the given tables. The returned
// channel receives a (coalesced) signal after any write to one of them; the
// cancel func unregisters the watcher and is safe to call more than once.
func (s *SQLiteStorage) Watch(tables ...string) (<-chan struct{}, func()) {
	return s.notifier.subscribe(tables...)
}
