package docs

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter mirrors the fields a documentation page declares.
type frontmatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Published   *bool  `yaml:"published"`
	Order       *int   `yaml:"order"`
}

// splitFrontmatter separates the leading `---` delimited YAML block from the body.
// Files without a frontmatter block return an empty header and the whole input.
func splitFrontmatter(data []byte) (header []byte, body []byte, err error) {
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	if !strings.HasPrefix(text, "---\n") {
		return nil, []byte(text), nil
	}

	rest := "\n" + text[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated frontmatter block")
	}

	if end > 0 {
		header = []byte(rest[1:end])
	}
	body = []byte(strings.TrimPrefix(rest[end+len("\n---"):], "\n"))
	return header, body, nil
}

// parseFrontmatter decodes and validates the YAML header.
func parseFrontmatter(header []byte) (frontmatter, error) {
	var fm frontmatter
	if len(bytes.TrimSpace(header)) == 0 {
		return fm, fmt.Errorf("missing frontmatter")
	}
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return fm, fmt.Errorf("invalid frontmatter: %w", err)
	}

	var missing []string
	if strings.TrimSpace(fm.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(fm.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(fm.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return fm, fmt.Errorf("missing required field(s): %s", strings.Join(missing, ", "))
	}

	return fm, nil
}
