package storage

import (
	"fmt"

	"go.uber.org/zap"
)

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	up      func() error
}

// runMigrations executes database schema migrations. Caller holds mu.
func (s *SQLiteStorage) runMigrations() error {
	if err := s.createMigrationsTable(); err != nil {
		return err
	}

	version, err := s.getCurrentMigrationVersion()
	if err != nil {
		return err
	}

	migrations := []migration{
		{version: 1, name: "initial_schema", up: s.migration001InitialSchema},
	}

	for _, m := range migrations {
		if version >= m.version {
			continue
		}
		s.logger.Info("Running migration", zap.Int("version", m.version), zap.String("name", m.name))
		if err := m.up(); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
		if err := s.setMigrationVersion(m); err != nil {
			return err
		}
	}

	return nil
}

// createMigrationsTable creates the schema_migrations table.
func (s *SQLiteStorage) createMigrationsTable() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	return err
}

// getCurrentMigrationVersion returns the highest applied migration version.
func (s *SQLiteStorage) getCurrentMigrationVersion() (int, error) {
	var version int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// setMigrationVersion records a migration as applied.
func (s *SQLiteStorage) setMigrationVersion(m migration) error {
	_, err := s.db.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name)
	return err
}

// migration001InitialSchema creates the search_history and result_selections tables.
func (s *SQLiteStorage) migration001InitialSchema() error {
	statements := []struct {
		what string
		sql  string
	}{
		{"search_history table", `
			CREATE TABLE IF NOT EXISTS search_history (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				search_id TEXT NOT NULL UNIQUE,
				query_hash TEXT NOT NULL,
				mode TEXT NOT NULL DEFAULT 'weighted',
				timestamp TEXT NOT NULL,
				results_count INTEGER NOT NULL
			)`},
		{"search_history timestamp index", `
			CREATE INDEX IF NOT EXISTS idx_search_history_timestamp
			ON search_history(timestamp DESC)`},
		{"result_selections table", `
			CREATE TABLE IF NOT EXISTS result_selections (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				search_id TEXT NOT NULL,
				slug TEXT NOT NULL,
				position INTEGER NOT NULL,
				timestamp TEXT NOT NULL
			)`},
		{"result_selections slug index", `
			CREATE INDEX IF NOT EXISTS idx_result_selections_slug
			ON result_selections(slug)`},
		{"result_selections timestamp index", `
			CREATE INDEX IF NOT EXISTS idx_result_selections_timestamp
			ON result_selections(timestamp DESC)`},
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt.sql); err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.what, err)
		}
	}

	return nil
}
