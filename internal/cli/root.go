/*
Package cli implements the docsearch command tree.

Every command resolves the configuration (see package config), builds a
logger and loads the documentation from content.dir before doing its work.
The persistent --config and --dir flags override the config file location
and the content directory.
*/
package cli

import (
	"github.com/spf13/cobra"

	"github.com/khanglvm/docsearch/internal/version"
)

// NewRootCmd assembles the docsearch command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "docsearch",
		Short: "Search, browse and serve a documentation site",
		Long: `docsearch loads MDX/Markdown documentation with YAML frontmatter and
ranks pages against free-text queries.

Every query term must appear in a page's title, description, category or
body. Matches score 10 per title hit, 5 per description hit, 3 per
category hit and 1 per body hit, with bonuses when a term is the whole
title or description. Results are grouped by category.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./docsearch.yaml, then ~/.docsearch.yaml)")
	rootCmd.PersistentFlags().String("dir", "", "Content directory (overrides content.dir)")

	rootCmd.AddCommand(NewSearchCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewShowCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewExportIndexCmd())
	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewBenchmarkCmd())
	rootCmd.AddCommand(NewVersionCmd())

	rootCmd.SetVersionTemplate("docsearch {{.Version}}\n")

	return rootCmd
}
