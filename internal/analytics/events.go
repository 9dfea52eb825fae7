/*
Package analytics records search activity in the background.

Searches and result selections are queued without blocking the caller,
batched, and flushed to storage by a single goroutine. When the queue is
full, events are dropped rather than slowing down search.
*/
package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/khanglvm/docsearch/internal/storage"
)

// Kind distinguishes event types.
type Kind int

const (
	KindSearch Kind = iota
	KindSelection
)

// Event is a search or selection waiting to be persisted.
type Event struct {
	Kind      Kind
	Search    storage.SearchRecord
	Selection storage.SelectionRecord
}

// NewSearchID returns a fresh identifier that ties selections to their search.
func NewSearchID() string {
	return uuid.NewString()
}

// NewSearchEvent creates a search event. The query is hashed immediately.
func NewSearchEvent(searchID, query, mode string, resultsCount int) Event {
	return Event{
		Kind: KindSearch,
		Search: storage.SearchRecord{
			SearchID:     searchID,
			QueryHash:    storage.HashQuery(query),
			Mode:         mode,
			Timestamp:    time.Now(),
			ResultsCount: resultsCount,
		},
	}
}

// NewSelectionEvent creates an event for a result opened from a search.
func NewSelectionEvent(searchID, slug string, position int) Event {
	return Event{
		Kind: KindSelection,
		Selection: storage.SelectionRecord{
			SearchID:  searchID,
			Slug:      slug,
			Position:  position,
			Timestamp: time.Now(),
		},
	}
}
