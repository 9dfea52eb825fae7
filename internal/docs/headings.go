package docs

import (
	"bufio"
	"strconv"
	"strings"
	"unicode"
)

// extractHeadings collects `##` and `###` headings outside fenced code blocks.
// IDs follow the rehype-slug scheme so they match the rendered anchors.
func extractHeadings(body string) []Heading {
	var headings []Heading
	slugger := newSlugger()
	inFence := false

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		trimmed := strings.TrimLeft(line, " ")

		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		level := 0
		switch {
		case strings.HasPrefix(trimmed, "### "):
			level = 3
		case strings.HasPrefix(trimmed, "## "):
			level = 2
		default:
			continue
		}

		text := headingText(trimmed[level+1:])
		if text == "" {
			continue
		}
		headings = append(headings, Heading{
			ID:    slugger.slug(text),
			Text:  text,
			Level: level,
		})
	}

	return headings
}

// headingText reduces inline markdown to the text a reader sees.
func headingText(raw string) string {
	text := strings.TrimSpace(strings.TrimRight(raw, "#"))
	text = linkPattern.ReplaceAllString(text, "$1")
	text = strings.NewReplacer("`", "", "*", "", "__", "").Replace(text)
	return strings.TrimSpace(text)
}

// slugger hands out unique anchor IDs within a single document.
type slugger struct {
	seen map[string]int
}

func newSlugger() *slugger {
	return &slugger{seen: make(map[string]int)}
}

func (s *slugger) slug(text string) string {
	base := slugify(text)
	id := base

	if n, ok := s.seen[base]; ok {
		for {
			n++
			id = base + "-" + strconv.Itoa(n)
			if _, taken := s.seen[id]; !taken {
				break
			}
		}
		s.seen[base] = n
	}
	s.seen[id] = 0

	return id
}

// slugify lowercases text, drops punctuation and turns spaces into hyphens.
func slugify(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}
