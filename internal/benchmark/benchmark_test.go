package benchmark

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/khanglvm/docsearch/internal/docs"
	"github.com/khanglvm/docsearch/internal/search"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		samples []time.Duration
		want    Stats
	}{
		{
			name: "empty",
			want: Stats{},
		},
		{
			name:    "single sample",
			samples: []time.Duration{5 * time.Millisecond},
			want:    Stats{Min: 5 * time.Millisecond, Avg: 5 * time.Millisecond, P95: 5 * time.Millisecond, Max: 5 * time.Millisecond},
		},
		{
			name:    "unsorted input",
			samples: []time.Duration{4, 1, 3, 2},
			want:    Stats{Min: 1, Avg: 2, P95: 4, Max: 4}, // (1+2+3+4)/4 truncates to 2
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.samples); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSummarizeP95(t *testing.T) {
	samples := make([]time.Duration, 100)
	for i := range samples {
		samples[i] = time.Duration(100 - i) // 100 down to 1
	}

	got := Summarize(samples)
	if got.P95 != 95 {
		t.Errorf("P95 = %d, want 95", got.P95)
	}
	if got.Min != 1 || got.Max != 100 {
		t.Errorf("Min/Max = %d/%d, want 1/100", got.Min, got.Max)
	}
}

func TestRun(t *testing.T) {
	documents := []docs.Document{
		{Slug: "a", Title: "Database Setup", Category: "Guides", Plaintext: "database", Published: true},
		{Slug: "b", Title: "Webhooks", Category: "Guides", Plaintext: "events", Published: true},
	}
	idx := search.NewIndex(documents, search.DefaultOptions())

	result, err := Run(context.Background(), WeightedSearcher(idx), []string{"database", "nothing"}, 5)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Iterations != 5 {
		t.Errorf("Iterations = %d, want 5", result.Iterations)
	}
	if len(result.Queries) != 2 {
		t.Fatalf("len(Queries) = %d, want 2", len(result.Queries))
	}
	if result.Queries[0].Results != 1 {
		t.Errorf("database results = %d, want 1", result.Queries[0].Results)
	}
	if result.Queries[1].Results != 0 {
		t.Errorf("nothing results = %d, want 0", result.Queries[1].Results)
	}
	if result.Overall.Max < result.Overall.Min {
		t.Errorf("overall max %v < min %v", result.Overall.Max, result.Overall.Min)
	}
}

func TestRunErrors(t *testing.T) {
	noop := func(string) (int, error) { return 0, nil }

	if _, err := Run(context.Background(), noop, nil, 1); err == nil {
		t.Error("expected error for empty query list")
	}

	failing := func(string) (int, error) { return 0, errors.New("index closed") }
	if _, err := Run(context.Background(), failing, []string{"q"}, 1); err == nil || !strings.Contains(err.Error(), "index closed") {
		t.Errorf("expected searcher error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, noop, []string{"q"}, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunDefaultIterations(t *testing.T) {
	calls := 0
	counting := func(string) (int, error) { calls++; return 0, nil }

	if _, err := Run(context.Background(), counting, []string{"q"}, 0); err != nil {
		t.Fatal(err)
	}
	if calls != DefaultIterations {
		t.Errorf("calls = %d, want %d", calls, DefaultIterations)
	}
}

func TestDefaultQueries(t *testing.T) {
	documents := []docs.Document{
		{Title: "Database Setup", Published: true},
		{Title: "database tuning", Published: true},
		{Title: "Draft Page", Published: false},
		{Title: "Webhooks", Published: true},
	}

	got := DefaultQueries(documents)
	want := []string{"database", "webhooks", missQuery}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("DefaultQueries() = %v, want %v", got, want)
	}
}

func TestFormatResult(t *testing.T) {
	out := FormatResult(&Result{
		Mode:       "weighted",
		Documents:  2,
		Iterations: 3,
		Queries:    []QueryResult{{Query: "a-very-long-query-that-will-be-truncated", Results: 1}},
	})

	for _, want := range []string{"SEARCH LATENCY BENCHMARK", "Mode: weighted", "a-very-long-query-that-…", "overall"} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatResult() missing %q in:\n%s", want, out)
		}
	}
}
