package docs

import (
	"sort"
	"strings"
)

// Section is one sidebar category with its documents.
type Section struct {
	Category  string     `json:"category"`
	Documents []Document `json:"documents"`
}

// Sidebar groups published documents by category. Categories appear in the
// order they are first seen; within a category documents are sorted by
// their order field when both have one, otherwise by title.
func Sidebar(documents []Document) []Section {
	var sections []Section
	index := make(map[string]int)

	for _, doc := range documents {
		if !doc.Published {
			continue
		}
		i, ok := index[doc.Category]
		if !ok {
			i = len(sections)
			index[doc.Category] = i
			sections = append(sections, Section{Category: doc.Category})
		}
		sections[i].Documents = append(sections[i].Documents, doc)
	}

	for _, section := range sections {
		docs := section.Documents
		// Mixing ordered and unordered pages in one category makes this
		// comparison non-transitive; the sidebar has always sorted this way.
		sort.SliceStable(docs, func(a, b int) bool {
			if docs[a].Order != nil && docs[b].Order != nil {
				return *docs[a].Order < *docs[b].Order
			}
			return compareTitles(docs[a].Title, docs[b].Title) < 0
		})
	}

	return sections
}

// compareTitles orders case-insensitively, falling back to byte order on ties.
func compareTitles(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
