package docs

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fencedCodePattern = regexp.MustCompile("(?s)```.*?```")
	inlineCodePattern = regexp.MustCompile("`.*?`")
	linkPattern       = regexp.MustCompile(`\[([^\]]*)\]\(.*?\)`)
	markupPattern     = regexp.MustCompile(`[#*_\[\]]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

var (
	tagPolicy     *bluemonday.Policy
	tagPolicyOnce sync.Once
)

// stripTags removes embedded HTML/JSX tags (e.g. <Callout>) and keeps their text.
func stripTags(s string) string {
	tagPolicyOnce.Do(func() {
		tagPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(tagPolicy.Sanitize(s))
}

// Plaintext derives the searchable text of an MDX body: code is dropped,
// links keep their label, markdown punctuation is removed and whitespace
// collapses to single spaces.
func Plaintext(body string) string {
	text := fencedCodePattern.ReplaceAllString(body, "")
	text = inlineCodePattern.ReplaceAllString(text, "")
	text = stripTags(text)
	text = linkPattern.ReplaceAllString(text, "$1")
	text = markupPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
