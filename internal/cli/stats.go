package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanglvm/docsearch/internal/storage"
)

// statsReport is the --json shape of the stats command.
type statsReport struct {
	Days          int                      `json:"days"`
	Searches      int                      `json:"searches"`
	ZeroResults   int                      `json:"zeroResults"`
	Selections    int                      `json:"selections"`
	TopSelections []storage.SelectionCount `json:"topSelections"`
}

// NewStatsCmd creates the 'stats' command for search history.
func NewStatsCmd() *cobra.Command {
	var days int
	var top int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show search history statistics",
		Long: `Summarise recorded searches: how many ran, how many found nothing,
and which pages were opened most from search results.

Queries are stored as SHA-256 hashes, so the report never shows query text.`,
		Example: `  docsearch stats
  docsearch stats --days 7 --top 5
  docsearch stats --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, days, top, jsonOutput)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 30, "Look back this many days")
	cmd.Flags().IntVarP(&top, "top", "t", 10, "Number of most-selected pages to show")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

func runStats(cmd *cobra.Command, days, top int, jsonOutput bool) error {
	if days <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	store := openStorage(cfg, log)
	defer store.Close()

	if err := store.Init(); err != nil || !store.Enabled() {
		fmt.Fprintln(out, "Search history is disabled.")
		if err != nil {
			fmt.Fprintf(out, "  %v\n", err)
		}
		return nil
	}

	since := time.Now().AddDate(0, 0, -days)
	stats, err := store.SearchStats(since)
	if err != nil {
		return fmt.Errorf("failed to read search stats: %w", err)
	}
	selections, err := store.TopSelections(since, top)
	if err != nil {
		return fmt.Errorf("failed to read selections: %w", err)
	}
	if selections == nil {
		selections = []storage.SelectionCount{}
	}

	if jsonOutput {
		return writeJSON(out, statsReport{
			Days:          days,
			Searches:      stats.Searches,
			ZeroResults:   stats.ZeroResultSearches,
			Selections:    stats.Selections,
			TopSelections: selections,
		})
	}

	fmt.Fprintf(out, "Search history (last %d days)\n\n", days)
	fmt.Fprintf(out, "  Searches:      %d\n", stats.Searches)
	fmt.Fprintf(out, "  Zero results:  %d", stats.ZeroResultSearches)
	if stats.Searches > 0 {
		fmt.Fprintf(out, " (%.1f%%)", float64(stats.ZeroResultSearches)/float64(stats.Searches)*100)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Selections:    %d\n", stats.Selections)

	if len(selections) > 0 {
		fmt.Fprintln(out, "\nMost opened from search:")
		for i, s := range selections {
			fmt.Fprintf(out, "  %2d. %-40s %d\n", i+1, s.Slug, s.Count)
		}
	}

	return nil
}
