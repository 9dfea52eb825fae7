package search

import (
	"slices"
	"sync/atomic"

	"github.com/khanglvm/docsearch/internal/docs"
)

// Index serves searches over a document collection. The collection is an
// immutable snapshot; Replace swaps in a new one without blocking readers.
type Index struct {
	opts     Options
	snapshot atomic.Pointer[snapshot]
}

type snapshot struct {
	documents  []docs.Document
	candidates []candidate
}

// NewIndex creates an index over documents.
func NewIndex(documents []docs.Document, opts Options) *Index {
	idx := &Index{opts: opts}
	idx.Replace(documents)
	return idx
}

// Replace installs a new collection. Searches already running finish against the old one.
func (i *Index) Replace(documents []docs.Document) {
	docsCopy := slices.Clone(documents)
	i.snapshot.Store(&snapshot{
		documents:  docsCopy,
		candidates: prepare(docsCopy),
	})
}

// Search ranks the current collection against query.
func (i *Index) Search(query string) GroupedResults {
	return rank(ParseQuery(query), i.snapshot.Load().candidates, i.opts)
}

// SearchLimit is Search with the result limit overridden. A limit of 0
// keeps the index's configured limit.
func (i *Index) SearchLimit(query string, limit int) GroupedResults {
	opts := i.opts
	if limit > 0 {
		opts.Limit = limit
	}
	return rank(ParseQuery(query), i.snapshot.Load().candidates, opts)
}

// Documents returns a copy of the current collection, unpublished pages included.
func (i *Index) Documents() []docs.Document {
	return slices.Clone(i.snapshot.Load().documents)
}

// Len returns the number of searchable (published) documents.
func (i *Index) Len() int {
	return len(i.snapshot.Load().candidates)
}

// Options returns the ranking options the index was built with.
func (i *Index) Options() Options {
	return i.opts
}
