package search

import (
	"html"
	"strings"
	"unicode"
)

// DefaultContextLength is the snippet window used when none is configured.
const DefaultContextLength = 100

// ellipsis marks text cut from either end of a snippet.
const ellipsis = "..."

// MatchContext returns an excerpt of text around the first case-insensitive
// occurrence of query. Lengths count runes. When query does not occur, the
// first contextLength runes are returned followed by an ellipsis.
func MatchContext(text, query string, contextLength int) string {
	if contextLength <= 0 {
		contextLength = DefaultContextLength
	}

	runes := []rune(text)
	needle := lowerRunes(query)
	idx := indexRunes(lowerRunes(text), needle, 0)

	if idx < 0 || len(needle) == 0 {
		return string(runes[:min(contextLength, len(runes))]) + ellipsis
	}

	half := contextLength / 2
	start := max(0, idx-half)
	end := min(len(runes), idx+len(needle)+half)

	var b strings.Builder
	if start > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(string(runes[start:end]))
	if end < len(runes) {
		b.WriteString(ellipsis)
	}
	return b.String()
}

// Fragment is a run of text, marked when it matched the query.
type Fragment struct {
	Text  string `json:"text"`
	Match bool   `json:"match,omitempty"`
}

// Highlighted is text split into plain and matched fragments. Concatenating
// the fragments reproduces the input exactly.
type Highlighted []Fragment

// Highlight marks every non-overlapping, case-insensitive occurrence of query in text.
func Highlight(text, query string) Highlighted {
	if text == "" {
		return nil
	}

	needle := lowerRunes(query)
	if len(needle) == 0 {
		return Highlighted{{Text: text}}
	}

	runes := []rune(text)
	lowered := lowerRunes(text)

	var out Highlighted
	pos := 0
	for pos < len(runes) {
		idx := indexRunes(lowered, needle, pos)
		if idx < 0 {
			break
		}
		if idx > pos {
			out = append(out, Fragment{Text: string(runes[pos:idx])})
		}
		out = append(out, Fragment{Text: string(runes[idx : idx+len(needle)]), Match: true})
		pos = idx + len(needle)
	}
	if pos < len(runes) {
		out = append(out, Fragment{Text: string(runes[pos:])})
	}

	return out
}

// String returns the text without markers.
func (h Highlighted) String() string {
	var b strings.Builder
	for _, f := range h {
		b.WriteString(f.Text)
	}
	return b.String()
}

// Wrap renders matches between the before and after markers.
func (h Highlighted) Wrap(before, after string) string {
	var b strings.Builder
	for _, f := range h {
		if f.Match {
			b.WriteString(before)
			b.WriteString(f.Text)
			b.WriteString(after)
			continue
		}
		b.WriteString(f.Text)
	}
	return b.String()
}

// HTML renders escaped text with matches wrapped in <mark> elements.
func (h Highlighted) HTML() string {
	var b strings.Builder
	for _, f := range h {
		if f.Match {
			b.WriteString("<mark>")
			b.WriteString(html.EscapeString(f.Text))
			b.WriteString("</mark>")
			continue
		}
		b.WriteString(html.EscapeString(f.Text))
	}
	return b.String()
}

// lowerRunes lowercases rune by rune so indexes line up with []rune(s).
func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// indexRunes returns the first index of needle in haystack at or after from, or -1.
func indexRunes(haystack, needle []rune, from int) int {
	n := len(needle)
	if n == 0 {
		return from
	}
	for i := from; i+n <= len(haystack); i++ {
		if haystack[i] != needle[0] {
			continue
		}
		match := true
		for j := 1; j < n; j++ {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
