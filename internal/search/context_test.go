package search

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMatchContext(t *testing.T) {
	long := strings.Repeat("a", 80) + " webhook " + strings.Repeat("b", 80)

	tests := []struct {
		name          string
		text          string
		query         string
		contextLength int
		want          string
	}{
		{
			name:          "not found returns prefix",
			text:          "short text",
			query:         "missing",
			contextLength: 5,
			want:          "short...",
		},
		{
			name:          "found near start has no leading ellipsis",
			text:          "webhook setup guide",
			query:         "WEBHOOK",
			contextLength: 10,
			want:          "webhook setu...",
		},
		{
			name:          "found in middle has both ellipses",
			text:          long,
			query:         "webhook",
			contextLength: 10,
			want:          "...aaaa webhook bbbb...",
		},
		{
			name:          "window reaching the end has no trailing ellipsis",
			text:          "configure the webhook",
			query:         "webhook",
			contextLength: 8,
			want:          "...the webhook",
		},
		{
			name:          "zero context length uses default",
			text:          "webhook",
			query:         "webhook",
			contextLength: 0,
			want:          "webhook",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchContext(tt.text, tt.query, tt.contextLength); got != tt.want {
				t.Errorf("MatchContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatchContextContainsQuery(t *testing.T) {
	text := strings.Repeat("lorem ipsum ", 40) + "Stripe Webhooks" + strings.Repeat(" dolor sit", 40)
	query := "stripe webhooks"
	contextLength := 100

	got := MatchContext(text, query, contextLength)

	if !strings.Contains(strings.ToLower(got), query) {
		t.Fatalf("snippet %q does not contain query", got)
	}

	body := strings.TrimSuffix(strings.TrimPrefix(got, ellipsis), ellipsis)
	if n := utf8.RuneCountInString(body); n > 2*contextLength+len(query) {
		t.Errorf("snippet body has %d runes, want at most %d", n, 2*contextLength+len(query))
	}
}

func TestMatchContextMultibyte(t *testing.T) {
	text := "日本語のドキュメント検索はとても便利です"

	got := MatchContext(text, "検索", 4)

	if got != "...ント検索はと..." {
		t.Errorf("unexpected snippet %q", got)
	}
	if !utf8.ValidString(got) {
		t.Error("snippet is not valid UTF-8")
	}
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  string
	}{
		{"single", "Database Setup", "database", "<Database> Setup"},
		{"repeated", "auth and AUTH", "auth", "<auth> and <AUTH>"},
		{"none", "nothing here", "missing", "nothing here"},
		{"empty query", "keep as is", "", "keep as is"},
		{"regex characters are literal", "use a+b (not ab)", "a+b", "use <a+b> (not ab)"},
		{"non-overlapping", "aaaa", "aa", "<aa><aa>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Highlight(tt.text, tt.query)
			if got := h.Wrap("<", ">"); got != tt.want {
				t.Errorf("Highlight().Wrap() = %q, want %q", got, tt.want)
			}
			if h.String() != tt.text {
				t.Errorf("fragments do not reproduce input: %q", h.String())
			}
		})
	}
}

func TestHighlightHTML(t *testing.T) {
	h := Highlight("<b>Auth</b> & auth", "auth")

	want := "&lt;b&gt;<mark>Auth</mark>&lt;/b&gt; &amp; <mark>auth</mark>"
	if got := h.HTML(); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}
