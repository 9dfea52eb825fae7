package search

import "strings"

// Query is a parsed search input.
type Query struct {
	// Raw is the trimmed input, used for snippets and highlighting.
	Raw string

	// Terms are the distinct lowercase whitespace-separated tokens, in first-seen order.
	Terms []string
}

// ParseQuery lowercases and tokenizes input. Inputs with no terms yield an
// empty Query, which matches nothing.
func ParseQuery(input string) Query {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Query{}
	}

	fields := strings.Fields(strings.ToLower(raw))
	terms := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		terms = append(terms, f)
	}

	return Query{Raw: raw, Terms: terms}
}

// Empty reports whether the query has no terms.
func (q Query) Empty() bool {
	return len(q.Terms) == 0
}
