package search

import (
	"slices"
	"strings"

	"github.com/khanglvm/docsearch/internal/docs"
)

// Weights are the points a query term earns per field.
type Weights struct {
	Title       int `yaml:"title" json:"title"`
	Description int `yaml:"description" json:"description"`
	Category    int `yaml:"category" json:"category"`
	Plaintext   int `yaml:"plaintext" json:"plaintext"`

	// ExactTitle and ExactDescription are added when a term equals the whole field.
	ExactTitle       int `yaml:"exact_title" json:"exactTitle"`
	ExactDescription int `yaml:"exact_description" json:"exactDescription"`
}

// DefaultWeights ranks title matches highest and body matches lowest.
var DefaultWeights = Weights{
	Title:            10,
	Description:      5,
	Category:         3,
	Plaintext:        1,
	ExactTitle:       5,
	ExactDescription: 3,
}

// Options tune ranking and snippet extraction.
type Options struct {
	Weights       Weights
	ContextLength int

	// Limit caps the number of ranked results before grouping. Zero means no cap.
	Limit int
}

// DefaultOptions returns the default weights and a 100-rune snippet window.
func DefaultOptions() Options {
	return Options{
		Weights:       DefaultWeights,
		ContextLength: DefaultContextLength,
	}
}

// candidate is a published document with its lowercased fields precomputed.
type candidate struct {
	doc         docs.Document
	title       string
	description string
	category    string
	plaintext   string
	haystack    string
}

func newCandidate(doc docs.Document) candidate {
	c := candidate{
		doc:         doc,
		title:       strings.ToLower(doc.Title),
		description: strings.ToLower(doc.Description),
		category:    strings.ToLower(doc.Category),
		plaintext:   strings.ToLower(doc.Plaintext),
	}
	c.haystack = c.title + " " + c.description + " " + c.category + " " + c.plaintext
	return c
}

// prepare drops unpublished documents and lowercases the rest, keeping input order.
func prepare(documents []docs.Document) []candidate {
	out := make([]candidate, 0, len(documents))
	for _, doc := range documents {
		if !doc.Published {
			continue
		}
		out = append(out, newCandidate(doc))
	}
	return out
}

// matches reports whether every term occurs somewhere in the document.
func (c *candidate) matches(terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(c.haystack, term) {
			return false
		}
	}
	return true
}

// score sums the per-field weights earned by each term.
func (c *candidate) score(terms []string, w Weights) int {
	total := 0
	for _, term := range terms {
		if strings.Contains(c.title, term) {
			total += w.Title
		}
		if strings.Contains(c.description, term) {
			total += w.Description
		}
		if strings.Contains(c.category, term) {
			total += w.Category
		}
		if strings.Contains(c.plaintext, term) {
			total += w.Plaintext
		}
		if c.title == term {
			total += w.ExactTitle
		}
		if c.description == term {
			total += w.ExactDescription
		}
	}
	return total
}

// Score returns the relevance of doc for query, regardless of whether it matches every term.
func Score(doc docs.Document, query string, w Weights) int {
	c := newCandidate(doc)
	return c.score(ParseQuery(query).Terms, w)
}

// Search ranks documents against query and groups the results by category.
// It never modifies documents and returns nil when nothing matches.
func Search(query string, documents []docs.Document, opts Options) GroupedResults {
	q := ParseQuery(query)
	if q.Empty() {
		return nil
	}
	return rank(q, prepare(documents), opts)
}

func rank(q Query, candidates []candidate, opts Options) GroupedResults {
	if q.Empty() {
		return nil
	}

	type scored struct {
		c     *candidate
		score int
	}

	var hits []scored
	for i := range candidates {
		c := &candidates[i]
		if !c.matches(q.Terms) {
			continue
		}
		hits = append(hits, scored{c: c, score: c.score(q.Terms, opts.Weights)})
	}
	if len(hits) == 0 {
		return nil
	}

	slices.SortStableFunc(hits, func(a, b scored) int {
		return b.score - a.score
	})

	if opts.Limit > 0 && len(hits) > opts.Limit {
		hits = hits[:opts.Limit]
	}

	results := make([]ScoredResult, len(hits))
	for i, h := range hits {
		snippet := MatchContext(h.c.doc.Plaintext, q.Raw, opts.ContextLength)
		results[i] = ScoredResult{
			Document:           h.c.doc,
			Score:              h.score,
			Snippet:            snippet,
			TitleHighlighted:   Highlight(h.c.doc.Title, q.Raw),
			SnippetHighlighted: Highlight(snippet, q.Raw),
		}
	}

	return GroupByCategory(results)
}

// GroupByCategory partitions ranked results by category. Categories appear in
// the order first seen and results keep their relative order.
func GroupByCategory(results []ScoredResult) GroupedResults {
	var groups GroupedResults
	index := make(map[string]int)

	for _, r := range results {
		i, ok := index[r.Document.Category]
		if !ok {
			i = len(groups)
			index[r.Document.Category] = i
			groups = append(groups, Group{Category: r.Document.Category})
		}
		groups[i].Results = append(groups[i].Results, r)
	}

	return groups
}
