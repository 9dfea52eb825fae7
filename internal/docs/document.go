/*
Package docs loads the documentation set from MDX/Markdown source files.

Each file carries a YAML frontmatter block (title, description, category,
published, order) followed by the body. The loader derives the plaintext
used for search, the table-of-contents headings, and the slug from the
file path. The resulting collection is read-only: callers reload and
replace it wholesale when the content changes.
*/
package docs

import "errors"

// ErrNotFound is returned when no document matches a slug.
var ErrNotFound = errors.New("document not found")

// Document is a single documentation page.
type Document struct {
	// Slug is the path relative to the content root, without extension.
	Slug string `json:"slug"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`

	// Plaintext is the body with markup stripped.
	Plaintext string `json:"plaintext"`

	// Published defaults to true when the frontmatter omits it.
	Published bool `json:"published"`

	// Order positions the document within its sidebar category (optional).
	Order *int `json:"order,omitempty"`

	// Headings are the level-2 and level-3 headings, in document order.
	Headings []Heading `json:"headings,omitempty"`

	// Path is the source file path relative to the content root.
	Path string `json:"path,omitempty"`
}

// Heading is a table-of-contents entry.
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Find returns the document with the given slug.
func Find(documents []Document, slug string) (Document, error) {
	for _, doc := range documents {
		if doc.Slug == slug {
			return doc, nil
		}
	}
	return Document{}, ErrNotFound
}
