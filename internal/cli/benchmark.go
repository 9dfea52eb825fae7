package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/docsearch/internal/benchmark"
	"github.com/khanglvm/docsearch/internal/search"
)

// NewBenchmarkCmd creates the 'benchmark' command for search latency testing.
func NewBenchmarkCmd() *cobra.Command {
	var iterations int
	var mode string
	var queries []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Measure search latency over the loaded documentation",
		Long: `Run each query repeatedly against an in-memory index and report
min, average, p95 and max latency per query and overall.

Without --query, the first word of up to ten page titles is used, plus
one query that matches nothing.`,
		Example: `  # Benchmark with queries drawn from titles
  docsearch benchmark

  # Specific queries, more iterations
  docsearch benchmark -q database -q "webhook setup" -n 1000

  # BM25 keyword mode, JSON output
  docsearch benchmark --mode keyword --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd, mode, queries, iterations, jsonOutput)
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", benchmark.DefaultIterations, "Runs per query")
	cmd.Flags().StringVarP(&mode, "mode", "m", "weighted", "Ranking mode: weighted or keyword")
	cmd.Flags().StringArrayVarP(&queries, "query", "q", nil, "Query to benchmark (repeatable)")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

// runBenchmark executes the search latency benchmark.
func runBenchmark(cmd *cobra.Command, mode string, queries []string, iterations int, jsonOutput bool) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	index := search.NewIndex(a.documents, a.cfg.SearchOptions())
	if index.Len() == 0 {
		return fmt.Errorf("no published documents in %s", a.cfg.Content.Dir)
	}

	var searcher benchmark.Searcher
	switch mode {
	case "weighted":
		searcher = benchmark.WeightedSearcher(index)
	case "keyword":
		keyword, err := search.NewKeywordIndex(a.documents, a.logger)
		if err != nil {
			return fmt.Errorf("failed to build keyword index: %w", err)
		}
		defer keyword.Close()
		searcher = benchmark.KeywordSearcher(keyword, 10)
	default:
		return fmt.Errorf("unknown mode %q (want weighted or keyword)", mode)
	}

	if len(queries) == 0 {
		queries = benchmark.DefaultQueries(a.documents)
	}

	result, err := benchmark.Run(cmd.Context(), searcher, queries, iterations)
	if err != nil {
		return err
	}
	result.Mode = mode
	result.Documents = index.Len()

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, result)
	}
	fmt.Fprint(out, benchmark.FormatResult(result))
	return nil
}
