package search

import (
	"reflect"
	"testing"

	"github.com/khanglvm/docsearch/internal/docs"
)

func published(slug, title, description, category, plaintext string) docs.Document {
	return docs.Document{
		Slug:        slug,
		Title:       title,
		Description: description,
		Category:    category,
		Plaintext:   plaintext,
		Published:   true,
	}
}

func slugs(results GroupedResults) []string {
	var out []string
	for _, r := range results.Flatten() {
		out = append(out, r.Document.Slug)
	}
	return out
}

func TestSearchScenario(t *testing.T) {
	documents := []docs.Document{
		published("intro", "Introduction", "", "Guides", "Getting started with auth."),
		published("database", "Database Setup", "", "Guides", "Configuring your database connection."),
	}

	results := Search("database", documents, DefaultOptions())

	if len(results) != 1 {
		t.Fatalf("expected 1 group, got %d", len(results))
	}
	if results[0].Category != "Guides" {
		t.Errorf("expected category 'Guides', got %q", results[0].Category)
	}
	if len(results[0].Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results[0].Results))
	}

	got := results[0].Results[0]
	if got.Document.Slug != "database" {
		t.Errorf("expected 'database', got %q", got.Document.Slug)
	}
	if got.Score != 11 {
		t.Errorf("expected score 11 (title 10 + plaintext 1), got %d", got.Score)
	}
}

func TestSearchConjunctiveFilter(t *testing.T) {
	documents := []docs.Document{
		published("a", "Guide", "", "Docs", "how to configure authentication and database"),
		published("b", "Guide", "", "Docs", "authentication only"),
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"auth database", []string{"a"}},
		{"auth payment", nil},
		{"AUTH", []string{"a", "b"}},
		{"guide docs", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := slugs(Search(tt.query, documents, DefaultOptions()))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	documents := []docs.Document{
		published("a", "Anything", "", "Docs", "text"),
	}

	for _, q := range []string{"", "   ", "\t\n"} {
		if got := Search(q, documents, DefaultOptions()); got.Len() != 0 {
			t.Errorf("Search(%q) returned %d results, want 0", q, got.Len())
		}
	}
}

func TestSearchExcludesUnpublished(t *testing.T) {
	hidden := published("hidden", "Webhook", "Webhook", "Webhook", "webhook webhook")
	hidden.Published = false
	documents := []docs.Document{
		hidden,
		published("shown", "Other", "", "Docs", "mentions webhook once"),
	}

	got := slugs(Search("webhook", documents, DefaultOptions()))
	if !reflect.DeepEqual(got, []string{"shown"}) {
		t.Errorf("expected only 'shown', got %v", got)
	}
}

func TestSearchTitleOutranksBody(t *testing.T) {
	documents := []docs.Document{
		published("body", "Events", "", "API", "configure a webhook endpoint"),
		published("title", "Webhook Setup", "", "API", "configure an endpoint"),
	}

	results := Search("webhook", documents, DefaultOptions()).Flatten()
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Document.Slug != "title" {
		t.Errorf("expected title match first, got %q", results[0].Document.Slug)
	}
	if results[0].Score < 10 || results[1].Score != 1 {
		t.Errorf("unexpected scores: %d, %d", results[0].Score, results[1].Score)
	}
}

func TestSearchStableOnTies(t *testing.T) {
	documents := []docs.Document{
		published("first", "Alpha", "", "One", "shared term"),
		published("second", "Beta", "", "Two", "shared term"),
		published("third", "Gamma", "", "One", "shared term"),
	}

	got := Search("shared", documents, DefaultOptions())

	// Categories follow first appearance in the ranked list.
	if len(got) != 2 || got[0].Category != "One" || got[1].Category != "Two" {
		t.Fatalf("unexpected grouping: %+v", got)
	}
	if !reflect.DeepEqual(slugs(got), []string{"first", "third", "second"}) {
		t.Errorf("unexpected order: %v", slugs(got))
	}
}

func TestSearchIdempotent(t *testing.T) {
	documents := []docs.Document{
		published("a", "Auth", "Sign in", "Guides", "auth flows"),
		published("b", "Billing", "Payments", "Guides", "auth for billing"),
	}
	before := append([]docs.Document(nil), documents...)

	first := Search("auth", documents, DefaultOptions())
	second := Search("auth", documents, DefaultOptions())

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated searches returned different results")
	}
	if !reflect.DeepEqual(before, documents) {
		t.Error("search modified its input")
	}
}

func TestScoreWeights(t *testing.T) {
	doc := published("x", "Auth", "auth", "Auth Guides", "auth everywhere")

	tests := []struct {
		name  string
		query string
		want  int
	}{
		// 10 + 5 + 3 + 1 + exact title 5 + exact description 3
		{"every field and both exact bonuses", "auth", 27},
		{"category and body", "guides", 3},
		{"duplicate terms collapse", "auth auth", 27},
		{"no match", "missing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(doc, tt.query, DefaultWeights); got != tt.want {
				t.Errorf("Score(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearchCustomWeights(t *testing.T) {
	documents := []docs.Document{
		published("title", "Deploy", "", "Ops", "steps"),
		published("body", "Steps", "", "Ops", "how to deploy"),
	}

	opts := DefaultOptions()
	opts.Weights = Weights{Title: 1, Plaintext: 20}

	got := slugs(Search("deploy", documents, opts))
	if !reflect.DeepEqual(got, []string{"body", "title"}) {
		t.Errorf("expected body match first with inverted weights, got %v", got)
	}
}

func TestSearchLimit(t *testing.T) {
	documents := []docs.Document{
		published("a", "Term", "", "A", "term"),
		published("b", "Other", "", "B", "term"),
		published("c", "Another", "", "C", "term"),
	}

	opts := DefaultOptions()
	opts.Limit = 2

	got := slugs(Search("term", documents, opts))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected top 2, got %v", got)
	}
}

func TestSearchResultsCarryHighlights(t *testing.T) {
	documents := []docs.Document{
		published("db", "Database Setup", "", "Guides", "Configuring your database connection."),
	}

	r := Search("DATABASE", documents, DefaultOptions()).Flatten()[0]

	if r.Snippet != "Configuring your database connection." {
		t.Errorf("unexpected snippet %q", r.Snippet)
	}
	if got := r.TitleHighlighted.Wrap("[", "]"); got != "[Database] Setup" {
		t.Errorf("unexpected title highlight %q", got)
	}
	if got := r.SnippetHighlighted.Wrap("[", "]"); got != "Configuring your [database] connection." {
		t.Errorf("unexpected snippet highlight %q", got)
	}
}

func TestParseQuery(t *testing.T) {
	q := ParseQuery("  Auth   DATABASE auth\tsetup ")

	if q.Raw != "Auth   DATABASE auth\tsetup" {
		t.Errorf("unexpected raw %q", q.Raw)
	}
	if !reflect.DeepEqual(q.Terms, []string{"auth", "database", "setup"}) {
		t.Errorf("unexpected terms %v", q.Terms)
	}
	if !ParseQuery(" \n ").Empty() {
		t.Error("whitespace query should be empty")
	}
}
