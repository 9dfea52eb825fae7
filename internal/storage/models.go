package storage

import "time"

// SearchRecord represents an executed search.
type SearchRecord struct {
	// SearchID is a unique identifier for this search (UUID).
	SearchID string `json:"search_id"`

	// QueryHash is the SHA256 hash of the search query for privacy.
	QueryHash string `json:"query_hash"`

	// Mode is the ranking used: "weighted" or "keyword".
	Mode string `json:"mode"`

	// Timestamp is when the search was performed.
	Timestamp time.Time `json:"timestamp"`

	// ResultsCount is the number of results returned.
	ResultsCount int `json:"results_count"`
}

// SelectionRecord represents a search result the user opened.
type SelectionRecord struct {
	SearchID string `json:"search_id"`

	// Slug identifies the opened document.
	Slug string `json:"slug"`

	// Position is the zero-based rank of the result in the flattened list.
	Position int `json:"position"`

	Timestamp time.Time `json:"timestamp"`
}

// SelectionCount is how often a document was opened from search.
type SelectionCount struct {
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// SearchStats summarizes search history over a period.
type SearchStats struct {
	Searches           int `json:"searches"`
	ZeroResultSearches int `json:"zero_result_searches"`
	Selections         int `json:"selections"`
}
