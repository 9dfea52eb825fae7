/*
Package main is the entry point for the docsearch CLI.

docsearch loads a documentation site written in MDX/Markdown with YAML
frontmatter and searches it from the terminal or over HTTP.

Usage:

	docsearch [command]

Available Commands:

	search        Search the documentation
	list          List published documents by category
	show          Show a document with its table of contents
	serve         Run the search HTTP server
	export-index  Export the document index for grep/jq search
	stats         Show search history statistics
	benchmark     Measure search latency over the loaded documentation
	version       Show version information

Examples:

	# Search from the terminal
	docsearch search "webhook setup"

	# Serve the API on :8080
	docsearch serve --dir ./content/docs
*/
package main

import (
	"fmt"
	"os"

	"github.com/khanglvm/docsearch/internal/cli"
	ver "github.com/khanglvm/docsearch/internal/version"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if version != "dev" {
		ver.Version, ver.Commit, ver.Date = version, commit, date
	}

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
