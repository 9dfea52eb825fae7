/*
Package search ranks documentation pages against a free-text query.

The default ranking is a conjunctive substring filter followed by a
weighted per-field score (title, description, category, body) with
exact-match bonuses. Results are sorted by descending score, ties keep
their input order, and the ranked list is grouped by category for
display. Each result carries a snippet of the body around the first
occurrence of the query and highlighted title/snippet fragments.

A BM25 keyword mode backed by an in-memory Bleve index is available as
an alternative ranking.
*/
package search

import "github.com/khanglvm/docsearch/internal/docs"

// ScoredResult is a matching document with its score and display text.
type ScoredResult struct {
	Document           docs.Document `json:"document"`
	Score              int           `json:"score"`
	Snippet            string        `json:"snippet"`
	TitleHighlighted   Highlighted   `json:"titleHighlighted"`
	SnippetHighlighted Highlighted   `json:"snippetHighlighted"`
}

// Group holds the results of one category, in ranked order.
type Group struct {
	Category string         `json:"category"`
	Results  []ScoredResult `json:"results"`
}

// GroupedResults is the ranked output partitioned by category. The group of
// the highest-scoring document comes first.
type GroupedResults []Group

// Len returns the total number of results across all groups.
func (g GroupedResults) Len() int {
	n := 0
	for _, group := range g {
		n += len(group.Results)
	}
	return n
}

// Flatten returns the results in ranked group order.
func (g GroupedResults) Flatten() []ScoredResult {
	out := make([]ScoredResult, 0, g.Len())
	for _, group := range g {
		out = append(out, group.Results...)
	}
	return out
}

// KeywordHit is a result of the BM25 keyword mode.
type KeywordHit struct {
	Document docs.Document `json:"document"`
	Score    float64       `json:"score"`
}
