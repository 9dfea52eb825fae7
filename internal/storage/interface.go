/*
Package storage persists search analytics.

This package provides SQLite-based storage for search history and result
selections with graceful degradation if the database is unavailable: a
storage that fails to open turns every operation into a no-op.

The database lives at ~/.docsearch/history.db by default and uses
modernc.org/sqlite (a pure Go, CGo-free implementation). Queries are only
ever stored as SHA-256 hashes.
*/
package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Storage defines the interface for persistent storage operations.
type Storage interface {
	// Init initializes the database and runs migrations.
	Init() error

	// RecordSearch records an executed search.
	RecordSearch(search SearchRecord) error

	// RecordSelection records a result the user opened.
	RecordSelection(selection SelectionRecord) error

	// TopSelections returns the most opened documents since a given time.
	TopSelections(since time.Time, limit int) ([]SelectionCount, error)

	// SearchStats summarizes searches since a given time.
	SearchStats(since time.Time) (SearchStats, error)

	// Cleanup removes old records based on retention policy.
	Cleanup(retention time.Duration) error

	// Close closes the database connection.
	Close() error
}

// SQLiteStorage implements the Storage interface using SQLite.
type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	mu       sync.Mutex
	initOnce sync.Once
	logger   *zap.Logger
}

// DefaultPath returns ~/.docsearch/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".docsearch", "history.db"), nil
}

// NewStorage creates a SQLite storage at dbPath (DefaultPath when empty).
//
// If the path cannot be resolved the storage is disabled, and operations
// will not fail.
func NewStorage(dbPath string, logger *zap.Logger) *SQLiteStorage {
	if logger == nil {
		logger = zap.NewNop()
	}

	if dbPath == "" {
		p, err := DefaultPath()
		if err != nil {
			logger.Warn("Search history disabled", zap.Error(err))
			return &SQLiteStorage{enabled: false, logger: logger}
		}
		dbPath = p
	}

	return &SQLiteStorage{
		dbPath:  dbPath,
		enabled: true,
		logger:  logger,
	}
}

// NewDisabled returns a storage whose operations are all no-ops.
func NewDisabled() *SQLiteStorage {
	return &SQLiteStorage{enabled: false, logger: zap.NewNop()}
}

// Enabled reports whether the database is usable.
func (s *SQLiteStorage) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled && s.db != nil
}

// Init initializes the database and runs migrations.
//
// If initialization fails, storage is disabled and subsequent operations
// become no-ops (graceful degradation).
func (s *SQLiteStorage) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := os.MkdirAll(filepath.Dir(s.dbPath), 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.disable(initErr)
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.disable(initErr)
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.disable(initErr)
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.disable(initErr)
			return
		}
	})

	return initErr
}

// disable turns the storage into a no-op after a failed Init. Caller holds mu.
func (s *SQLiteStorage) disable(cause error) {
	s.enabled = false
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
	s.logger.Warn("Search history disabled", zap.String("path", s.dbPath), zap.Error(cause))
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.db = nil
	return nil
}

// HashQuery creates a SHA256 hash of a query string for privacy.
func HashQuery(query string) string {
	hash := sha256.Sum256([]byte(query))
	return hex.EncodeToString(hash[:])
}
