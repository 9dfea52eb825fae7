package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/docsearch/internal/docs"
)

// NewListCmd creates the 'list' command for printing the sidebar.
func NewListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List published documents by category",
		Long: `Print the documentation sidebar: published pages grouped by category.

Within a category, pages with an order field are sorted by it; otherwise by title.`,
		Example: `  docsearch list
  docsearch ls --dir ./content/docs
  docsearch list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")

	return cmd
}

// runList prints the sidebar sections.
func runList(cmd *cobra.Command, jsonOutput bool) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sections := docs.Sidebar(a.documents)

	if jsonOutput {
		if sections == nil {
			sections = []docs.Section{}
		}
		return writeJSON(out, sections)
	}

	if len(sections) == 0 {
		fmt.Fprintln(out, "No published documents.")
		fmt.Fprintf(out, "Add .mdx files with frontmatter under %s\n", a.cfg.Content.Dir)
		return nil
	}

	count := 0
	for _, s := range sections {
		count += len(s.Documents)
	}
	fmt.Fprintf(out, "Documents (%d):\n\n", count)

	for _, section := range sections {
		fmt.Fprintf(out, "  %s\n", section.Category)
		for _, doc := range section.Documents {
			fmt.Fprintf(out, "    %-32s %s\n", doc.Slug, doc.Title)
		}
		fmt.Fprintln(out)
	}

	return nil
}
