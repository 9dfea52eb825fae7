package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/khanglvm/docsearch/internal/analytics"
	"github.com/khanglvm/docsearch/internal/docs"
	"github.com/khanglvm/docsearch/internal/search"
)

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

type searchOptions struct {
	mode     string
	category string
	limit    int
	json     bool
	noColor  bool
}

// NewSearchCmd creates the 'search' command.
func NewSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search the documentation",
		Long: `Rank documentation pages against a query and print them grouped by category.

The default weighted mode requires every term to appear somewhere in a page.
--mode keyword uses BM25 relevance instead and matches any term.`,
		Example: `  docsearch search database
  docsearch search "webhook setup" --limit 5
  docsearch search auth --category Guides --json
  docsearch search token refresh --mode keyword`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "weighted", "Ranking mode: weighted or keyword")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "Only show results from this category")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 0, "Maximum number of results (0 = config default)")
	cmd.Flags().BoolVarP(&opts.json, "json", "j", false, "Output as JSON")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable highlighting")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts searchOptions) error {
	if opts.mode != "weighted" && opts.mode != "keyword" {
		return fmt.Errorf("unknown mode %q (want weighted or keyword)", opts.mode)
	}
	if opts.limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.logger.Sync() //nolint:errcheck

	store := openStorage(a.cfg, a.logger)
	defer store.Close()
	tracker := analytics.NewTracker(store, a.logger)
	defer tracker.Stop()

	out := cmd.OutOrStdout()
	searchOpts := a.cfg.SearchOptions()
	if opts.limit > 0 {
		searchOpts.Limit = opts.limit
	}

	var total int
	if opts.mode == "keyword" {
		total, err = runKeywordSearch(out, a, query, opts, searchOpts.Limit)
		if err != nil {
			return err
		}
	} else {
		documents := a.documents
		if opts.category != "" {
			documents = filterCategory(documents, opts.category)
		}
		results := search.NewIndex(documents, searchOpts).Search(query)
		total = results.Len()

		if opts.json {
			if err := writeJSON(out, nonNilGroups(results)); err != nil {
				return err
			}
		} else {
			printGroups(out, results, !opts.noColor)
		}
	}

	if strings.TrimSpace(query) != "" {
		tracker.Track(analytics.NewSearchEvent(analytics.NewSearchID(), query, opts.mode, total))
	}
	return nil
}

func runKeywordSearch(out io.Writer, a *app, query string, opts searchOptions, limit int) (int, error) {
	keyword, err := search.NewKeywordIndex(a.documents, a.logger)
	if err != nil {
		return 0, fmt.Errorf("failed to build keyword index: %w", err)
	}
	defer keyword.Close()

	var hits []search.KeywordHit
	if opts.category != "" {
		hits, err = keyword.SearchCategory(query, opts.category, limit)
	} else {
		hits, err = keyword.Search(query, limit)
	}
	if err != nil {
		return 0, err
	}

	if opts.json {
		if hits == nil {
			hits = []search.KeywordHit{}
		}
		return len(hits), writeJSON(out, hits)
	}

	if len(hits) == 0 {
		fmt.Fprintln(out, "No results.")
		return 0, nil
	}
	contextLength := a.cfg.SearchOptions().ContextLength
	for i, hit := range hits {
		doc := hit.Document
		fmt.Fprintf(out, "%2d. %s  %s  [%s]  (%.3f)\n", i+1,
			render(search.Highlight(doc.Title, query), !opts.noColor), doc.Slug, doc.Category, hit.Score)
		snippet := search.MatchContext(doc.Plaintext, query, contextLength)
		fmt.Fprintf(out, "    %s\n", render(search.Highlight(snippet, query), !opts.noColor))
	}
	a.logger.Debug("Keyword search", zap.String("mode", "keyword"), zap.Int("hits", len(hits)))
	return len(hits), nil
}

// filterCategory keeps the documents in category, ignoring case. It runs
// before ranking so --limit counts only results from that category.
func filterCategory(documents []docs.Document, category string) []docs.Document {
	var out []docs.Document
	for _, doc := range documents {
		if strings.EqualFold(doc.Category, category) {
			out = append(out, doc)
		}
	}
	return out
}

func nonNilGroups(results search.GroupedResults) search.GroupedResults {
	if results == nil {
		return search.GroupedResults{}
	}
	return results
}

func printGroups(out io.Writer, results search.GroupedResults, color bool) {
	if results.Len() == 0 {
		fmt.Fprintln(out, "No results.")
		return
	}

	for gi, group := range results {
		if gi > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s (%d)\n", group.Category, len(group.Results))
		for _, r := range group.Results {
			fmt.Fprintf(out, "  %s  %s  (%d)\n", render(r.TitleHighlighted, color), r.Document.Slug, r.Score)
			if r.Snippet != "" {
				fmt.Fprintf(out, "    %s\n", render(r.SnippetHighlighted, color))
			}
		}
	}
}

func render(h search.Highlighted, color bool) string {
	if !color {
		return h.String()
	}
	return h.Wrap(ansiBold, ansiReset)
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
