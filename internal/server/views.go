package server

import "github.com/khanglvm/docsearch/internal/search"

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type searchResponse struct {
	SearchID string      `json:"searchId"`
	Query    string      `json:"query"`
	Mode     string      `json:"mode"`
	Total    int         `json:"total"`
	Groups   []groupView `json:"groups"`
}

// emptySearchResponse answers a blank query, which is not a search.
type emptySearchResponse struct {
	Groups []groupView `json:"groups"`
}

type groupView struct {
	Category string       `json:"category"`
	Results  []resultView `json:"results"`
}

// resultView carries the highlighted title and snippet as escaped HTML
// with matches wrapped in <mark>.
type resultView struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
	Snippet     string  `json:"snippet"`
	TitleHTML   string  `json:"titleHtml"`
	SnippetHTML string  `json:"snippetHtml"`
}

type sidebarResponse struct {
	Sections []sectionView `json:"sections"`
}

type sectionView struct {
	Category  string       `json:"category"`
	Documents []docSummary `json:"documents"`
}

type docSummary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       *int   `json:"order,omitempty"`
}

func weightedGroups(grouped search.GroupedResults) []groupView {
	out := make([]groupView, 0, len(grouped))
	for _, group := range grouped {
		view := groupView{Category: group.Category, Results: make([]resultView, 0, len(group.Results))}
		for _, r := range group.Results {
			view.Results = append(view.Results, resultView{
				Slug:        r.Document.Slug,
				Title:       r.Document.Title,
				Description: r.Document.Description,
				Category:    r.Document.Category,
				Score:       float64(r.Score),
				Snippet:     r.Snippet,
				TitleHTML:   r.TitleHighlighted.HTML(),
				SnippetHTML: r.SnippetHighlighted.HTML(),
			})
		}
		out = append(out, view)
	}
	return out
}

// keywordGroups groups BM25 hits by category in first-seen order and adds
// the same snippet and highlights the weighted mode produces.
func keywordGroups(hits []search.KeywordHit, query string, contextLength int) []groupView {
	var out []groupView
	index := make(map[string]int)

	for _, hit := range hits {
		doc := hit.Document
		snippet := search.MatchContext(doc.Plaintext, query, contextLength)
		view := resultView{
			Slug:        doc.Slug,
			Title:       doc.Title,
			Description: doc.Description,
			Category:    doc.Category,
			Score:       hit.Score,
			Snippet:     snippet,
			TitleHTML:   search.Highlight(doc.Title, query).HTML(),
			SnippetHTML: search.Highlight(snippet, query).HTML(),
		}

		i, ok := index[doc.Category]
		if !ok {
			i = len(out)
			index[doc.Category] = i
			out = append(out, groupView{Category: doc.Category})
		}
		out[i].Results = append(out[i].Results, view)
	}
	return out
}
