package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/docsearch/internal/docs"
)

// NewShowCmd creates the 'show' command for a single document.
func NewShowCmd() *cobra.Command {
	var jsonOutput bool
	var tocOnly bool

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a document with its table of contents",
		Example: `  docsearch show guides/authentication
  docsearch show guides/authentication --toc
  docsearch show reference/api --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], jsonOutput, tocOnly)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().BoolVar(&tocOnly, "toc", false, "Only print the table of contents")

	return cmd
}

func runShow(cmd *cobra.Command, slug string, jsonOutput, tocOnly bool) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	doc, err := docs.Find(a.documents, strings.Trim(slug, "/"))
	if err != nil {
		return fmt.Errorf("%w: %q\nRun 'docsearch list' to see available slugs", err, slug)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, doc)
	}

	if !tocOnly {
		fmt.Fprintf(out, "%s\n", doc.Title)
		fmt.Fprintf(out, "%s\n\n", doc.Description)
		fmt.Fprintf(out, "  Category:  %s\n", doc.Category)
		fmt.Fprintf(out, "  Slug:      %s\n", doc.Slug)
		if !doc.Published {
			fmt.Fprintln(out, "  Status:    draft (hidden from search)")
		}
		fmt.Fprintln(out)
	}

	if len(doc.Headings) > 0 {
		fmt.Fprintln(out, "On this page:")
		for _, h := range doc.Headings {
			indent := "  "
			if h.Level == 3 {
				indent = "    "
			}
			fmt.Fprintf(out, "%s%s  #%s\n", indent, h.Text, h.ID)
		}
		fmt.Fprintln(out)
	}

	if !tocOnly && doc.Plaintext != "" {
		fmt.Fprintln(out, doc.Plaintext)
	}

	return nil
}
