/*
Package benchmark measures search latency over the loaded documentation.

Each query is run a fixed number of times against a Searcher; the
per-query and overall latencies are summarised as min, average, p95 and
max. Queries default to terms drawn from the document titles plus one
query that matches nothing, so both the hit and miss paths are timed.
*/
package benchmark

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/khanglvm/docsearch/internal/docs"
	"github.com/khanglvm/docsearch/internal/search"
)

// DefaultIterations is the number of runs per query when none is given.
const DefaultIterations = 100

// maxDefaultQueries caps the queries derived from titles.
const maxDefaultQueries = 10

// missQuery is a query no realistic page contains.
const missQuery = "zzqxj-no-match"

// Searcher runs one query and reports how many results it produced.
type Searcher func(query string) (int, error)

// WeightedSearcher times the default weighted ranking.
func WeightedSearcher(idx *search.Index) Searcher {
	return func(query string) (int, error) {
		return idx.Search(query).Len(), nil
	}
}

// KeywordSearcher times the BM25 keyword mode.
func KeywordSearcher(k *search.KeywordIndex, limit int) Searcher {
	return func(query string) (int, error) {
		hits, err := k.Search(query, limit)
		return len(hits), err
	}
}

// Stats summarises a set of latency samples.
type Stats struct {
	Min time.Duration `json:"min"`
	Avg time.Duration `json:"avg"`
	P95 time.Duration `json:"p95"`
	Max time.Duration `json:"max"`
}

// QueryResult is the outcome for a single query.
type QueryResult struct {
	Query   string `json:"query"`
	Results int    `json:"results"`
	Stats   Stats  `json:"stats"`
}

// Result contains the whole benchmark run.
type Result struct {
	Mode       string        `json:"mode"`
	Documents  int           `json:"documents"`
	Iterations int           `json:"iterations"`
	Queries    []QueryResult `json:"queries"`
	Overall    Stats         `json:"overall"`
}

// Run executes every query iterations times. It stops early when ctx is cancelled.
func Run(ctx context.Context, searcher Searcher, queries []string, iterations int) (*Result, error) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if len(queries) == 0 {
		return nil, fmt.Errorf("no queries to benchmark")
	}

	result := &Result{Iterations: iterations}
	all := make([]time.Duration, 0, len(queries)*iterations)

	for _, q := range queries {
		samples := make([]time.Duration, 0, iterations)
		count := 0
		for i := 0; i < iterations; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			start := time.Now()
			n, err := searcher(q)
			elapsed := time.Since(start)
			if err != nil {
				return nil, fmt.Errorf("query %q: %w", q, err)
			}
			samples = append(samples, elapsed)
			count = n
		}
		all = append(all, samples...)
		result.Queries = append(result.Queries, QueryResult{
			Query:   q,
			Results: count,
			Stats:   Summarize(samples),
		})
	}

	result.Overall = Summarize(all)
	return result, nil
}

// Summarize computes min, average, nearest-rank p95 and max.
func Summarize(samples []time.Duration) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, s := range sorted {
		total += s
	}

	rank := int(math.Ceil(0.95*float64(len(sorted)))) - 1
	return Stats{
		Min: sorted[0],
		Avg: total / time.Duration(len(sorted)),
		P95: sorted[rank],
		Max: sorted[len(sorted)-1],
	}
}

// DefaultQueries picks the first word of each published title, lowercased
// and deduplicated, plus a query that matches nothing.
func DefaultQueries(documents []docs.Document) []string {
	seen := make(map[string]bool)
	var queries []string
	for _, doc := range documents {
		if !doc.Published || len(queries) >= maxDefaultQueries {
			continue
		}
		fields := strings.Fields(strings.ToLower(doc.Title))
		if len(fields) == 0 || seen[fields[0]] {
			continue
		}
		seen[fields[0]] = true
		queries = append(queries, fields[0])
	}
	return append(queries, missQuery)
}

// FormatResult formats the benchmark result for display.
func FormatResult(result *Result) string {
	var sb strings.Builder

	sb.WriteString("╔══════════════════════════════════════════════════════════════╗\n")
	sb.WriteString("║                 SEARCH LATENCY BENCHMARK                     ║\n")
	sb.WriteString("╚══════════════════════════════════════════════════════════════╝\n")
	fmt.Fprintf(&sb, "  Mode: %s   Documents: %d   Iterations: %d\n\n", result.Mode, result.Documents, result.Iterations)

	fmt.Fprintf(&sb, "  %-24s %7s %10s %10s %10s %10s\n", "QUERY", "RESULTS", "MIN", "AVG", "P95", "MAX")
	for _, q := range result.Queries {
		fmt.Fprintf(&sb, "  %-24s %7d %10s %10s %10s %10s\n",
			truncate(q.Query, 24), q.Results,
			round(q.Stats.Min), round(q.Stats.Avg), round(q.Stats.P95), round(q.Stats.Max))
	}

	sb.WriteString("  ────────────────────────────────────────────────────────────\n")
	fmt.Fprintf(&sb, "  %-24s %7s %10s %10s %10s %10s\n", "overall", "",
		round(result.Overall.Min), round(result.Overall.Avg), round(result.Overall.P95), round(result.Overall.Max))

	return sb.String()
}

func round(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
