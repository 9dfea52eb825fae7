package storage

import (
	"time"

	"go.uber.org/zap"
)

// timestampFormat sorts lexically in the same order as time.
const timestampFormat = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

// RecordSearch records an executed search.
func (s *SQLiteStorage) RecordSearch(search SearchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil {
		return nil
	}

	mode := search.Mode
	if mode == "" {
		mode = "weighted"
	}

	_, err := s.db.Exec(`
		INSERT INTO search_history (search_id, query_hash, mode, timestamp, results_count)
		VALUES (?, ?, ?, ?, ?)
	`,
		search.SearchID,
		search.QueryHash,
		mode,
		formatTime(search.Timestamp),
		search.ResultsCount,
	)
	if err != nil {
		s.logger.Warn("Failed to record search", zap.String("search_id", search.SearchID), zap.Error(err))
	}

	return nil
}

// RecordSelection records a result the user opened.
func (s *SQLiteStorage) RecordSelection(selection SelectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil {
		return nil
	}

	_, err := s.db.Exec(`
		INSERT INTO result_selections (search_id, slug, position, timestamp)
		VALUES (?, ?, ?, ?)
	`,
		selection.SearchID,
		selection.Slug,
		selection.Position,
		formatTime(selection.Timestamp),
	)
	if err != nil {
		s.logger.Warn("Failed to record selection", zap.String("slug", selection.Slug), zap.Error(err))
	}

	return nil
}

// TopSelections returns the most opened documents since a given time.
func (s *SQLiteStorage) TopSelections(since time.Time, limit int) ([]SelectionCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil {
		return []SelectionCount{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT slug, COUNT(*) AS n
		FROM result_selections
		WHERE timestamp >= ?
		GROUP BY slug
		ORDER BY n DESC, slug ASC
		LIMIT ?
	`, formatTime(since), limit)
	if err != nil {
		s.logger.Warn("Failed to query selections", zap.Error(err))
		return []SelectionCount{}, nil
	}
	defer rows.Close()

	counts := []SelectionCount{}
	for rows.Next() {
		var c SelectionCount
		if err := rows.Scan(&c.Slug, &c.Count); err != nil {
			s.logger.Warn("Failed to scan selection row", zap.Error(err))
			continue
		}
		counts = append(counts, c)
	}

	return counts, nil
}

// SearchStats summarizes searches since a given time.
func (s *SQLiteStorage) SearchStats(since time.Time) (SearchStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stats SearchStats
	if !s.enabled || s.db == nil {
		return stats, nil
	}

	cutoff := formatTime(since)

	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN results_count = 0 THEN 1 ELSE 0 END), 0)
		FROM search_history
		WHERE timestamp >= ?
	`, cutoff).Scan(&stats.Searches, &stats.ZeroResultSearches)
	if err != nil {
		s.logger.Warn("Failed to query search stats", zap.Error(err))
		return SearchStats{}, nil
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM result_selections WHERE timestamp >= ?", cutoff).Scan(&stats.Selections)
	if err != nil {
		s.logger.Warn("Failed to query selection stats", zap.Error(err))
	}

	return stats, nil
}

// Cleanup removes old records based on retention policy.
func (s *SQLiteStorage) Cleanup(retention time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled || s.db == nil {
		return nil
	}

	cutoff := formatTime(time.Now().Add(-retention))

	if _, err := s.db.Exec("DELETE FROM search_history WHERE timestamp < ?", cutoff); err != nil {
		s.logger.Warn("Failed to cleanup search_history", zap.Error(err))
	}
	if _, err := s.db.Exec("DELETE FROM result_selections WHERE timestamp < ?", cutoff); err != nil {
		s.logger.Warn("Failed to cleanup result_selections", zap.Error(err))
	}
	if _, err := s.db.Exec("VACUUM"); err != nil {
		s.logger.Warn("Failed to vacuum database", zap.Error(err))
	}

	return nil
}
