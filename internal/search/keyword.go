package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"go.uber.org/zap"

	"github.com/khanglvm/docsearch/internal/docs"
)

// KeywordIndex ranks documents with BM25 over an in-memory Bleve index.
type KeywordIndex struct {
	bleveIndex bleve.Index
	documents  map[string]docs.Document
	mu         sync.RWMutex
	logger     *zap.Logger
}

// NewKeywordIndex builds an in-memory Bleve index over the published documents.
func NewKeywordIndex(documents []docs.Document, logger *zap.Logger) (*KeywordIndex, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	k := &KeywordIndex{logger: logger}
	if err := k.Rebuild(documents); err != nil {
		return nil, err
	}
	return k, nil
}

// buildIndexMapping creates the Bleve index mapping.
func buildIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	docMapping.AddFieldMappingsAt("title", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("description", bleve.NewTextFieldMapping())
	docMapping.AddFieldMappingsAt("plaintext", bleve.NewTextFieldMapping())

	// Category is matched as a whole value for scoped searches.
	categoryMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("category", categoryMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

// Rebuild replaces the indexed collection.
func (k *KeywordIndex) Rebuild(documents []docs.Document) error {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("failed to create bleve index: %w", err)
	}

	byID := make(map[string]docs.Document, len(documents))
	batch := index.NewBatch()
	for _, doc := range documents {
		if !doc.Published {
			continue
		}
		fields := map[string]interface{}{
			"title":       doc.Title,
			"description": doc.Description,
			"category":    doc.Category,
			"plaintext":   doc.Plaintext,
		}
		if err := batch.Index(doc.Slug, fields); err != nil {
			k.logger.Warn("Failed to index document", zap.String("slug", doc.Slug), zap.Error(err))
			continue
		}
		byID[doc.Slug] = doc
	}

	if err := index.Batch(batch); err != nil {
		index.Close()
		return fmt.Errorf("failed to batch index documents: %w", err)
	}

	k.mu.Lock()
	old := k.bleveIndex
	k.bleveIndex = index
	k.documents = byID
	k.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			k.logger.Warn("Failed to close previous keyword index", zap.Error(err))
		}
	}

	return nil
}

// Search performs a BM25 match query across all fields.
func (k *KeywordIndex) Search(text string, limit int) ([]KeywordHit, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return k.run(k.buildMatchQuery(text), limit)
}

// SearchCategory performs a BM25 search scoped to one category.
func (k *KeywordIndex) SearchCategory(text, category string, limit int) ([]KeywordHit, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	categoryQuery := bleve.NewTermQuery(category)
	categoryQuery.SetField("category")

	return k.run(bleve.NewConjunctionQuery(k.buildMatchQuery(text), categoryQuery), limit)
}

// buildMatchQuery matches the text against every indexed text field.
func (k *KeywordIndex) buildMatchQuery(text string) query.Query {
	fields := []string{"title", "description", "plaintext"}
	disjuncts := make([]query.Query, 0, len(fields))
	for _, field := range fields {
		q := bleve.NewMatchQuery(text)
		q.SetField(field)
		disjuncts = append(disjuncts, q)
	}
	return bleve.NewDisjunctionQuery(disjuncts...)
}

func (k *KeywordIndex) run(q query.Query, limit int) ([]KeywordHit, error) {
	if limit <= 0 {
		limit = 10
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	request := bleve.NewSearchRequestOptions(q, limit, 0, false)
	results, err := k.bleveIndex.Search(request)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	hits := make([]KeywordHit, 0, len(results.Hits))
	for _, hit := range results.Hits {
		doc, ok := k.documents[hit.ID]
		if !ok {
			continue
		}
		hits = append(hits, KeywordHit{Document: doc, Score: hit.Score})
	}
	return hits, nil
}

// Count returns the number of indexed documents.
func (k *KeywordIndex) Count() (uint64, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	count, err := k.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}
	return count, nil
}

// Close releases the Bleve index.
func (k *KeywordIndex) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.bleveIndex != nil {
		return k.bleveIndex.Close()
	}
	return nil
}
