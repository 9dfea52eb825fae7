package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/khanglvm/docsearch/internal/docs"
)

// NewExportIndexCmd creates the export-index command.
func NewExportIndexCmd() *cobra.Command {
	var format string
	var output string
	var includeDrafts bool

	cmd := &cobra.Command{
		Use:   "export-index",
		Short: "Export the document index for grep/jq search",
		Long: `Write every loaded document (slug, title, description, category,
headings and plaintext) to a file for offline searching.

Default output: ~/.docsearch-index.jsonl
Default format: JSONL (one document per line)

The file is written under an exclusive lock so concurrent exports do not
interleave.`,
		Example: `  # Export to default location
  docsearch export-index

  # Export as JSON array
  docsearch export-index --format json --output ./docs.json

Grep usage examples:
  # Pages in a category
  jq -r 'select(.category == "Guides") | .slug' ~/.docsearch-index.jsonl

  # Pages mentioning a term
  grep -i "webhook" ~/.docsearch-index.jsonl | jq -r '.title'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportIndex(cmd, format, output, includeDrafts)
		},
	}

	cmd.Flags().StringVar(&format, "format", "jsonl", "Output format: json or jsonl")
	cmd.Flags().StringVar(&output, "output", "", "Output path (default: ~/.docsearch-index.jsonl)")
	cmd.Flags().BoolVar(&includeDrafts, "include-drafts", false, "Also export unpublished documents")

	return cmd
}

// runExportIndex executes the export-index command.
func runExportIndex(cmd *cobra.Command, format, output string, includeDrafts bool) error {
	if format != "json" && format != "jsonl" {
		return fmt.Errorf("unknown format %q (want json or jsonl)", format)
	}

	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	if output == "" {
		output, err = defaultIndexPath(format)
		if err != nil {
			return err
		}
	}

	documents := a.documents
	if !includeDrafts {
		documents = publishedOnly(documents)
	}

	lockFile, err := acquireFileLock(output)
	if err != nil {
		return fmt.Errorf("failed to acquire file lock: %w", err)
	}
	defer releaseFileLock(lockFile) //nolint:errcheck

	return writeIndex(cmd.OutOrStdout(), documents, output, format)
}

func defaultIndexPath(format string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	ext := ".jsonl"
	if format == "json" {
		ext = ".json"
	}
	return filepath.Join(home, ".docsearch-index"+ext), nil
}

func publishedOnly(documents []docs.Document) []docs.Document {
	out := make([]docs.Document, 0, len(documents))
	for _, doc := range documents {
		if doc.Published {
			out = append(out, doc)
		}
	}
	return out
}

// writeIndex writes the documents to path and reports the count on out.
func writeIndex(out io.Writer, documents []docs.Document, path, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	return exportDocuments(out, file, documents, path, format)
}

// exportDocuments encodes documents into dst and closes it. Success is
// reported only once dst has closed cleanly.
func exportDocuments(out io.Writer, dst io.WriteCloser, documents []docs.Document, path, format string) error {
	if err := encodeIndex(dst, documents, format); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}

	fmt.Fprintf(out, "✓ Exported %d documents to %s\n", len(documents), path)
	return nil
}

func encodeIndex(w io.Writer, documents []docs.Document, format string) error {
	encoder := json.NewEncoder(w)

	if format == "json" {
		if documents == nil {
			documents = []docs.Document{}
		}
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(documents); err != nil {
			return fmt.Errorf("failed to encode documents: %w", err)
		}
		return nil
	}

	for _, doc := range documents {
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode document %s: %w", doc.Slug, err)
		}
	}
	return nil
}

// acquireFileLock acquires an exclusive lock on the index file.
func acquireFileLock(path string) (*os.File, error) {
	lockPath := path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	// Non-blocking: a second exporter fails fast instead of queueing.
	if err := unix.Flock(int(lockFile.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		lockFile.Close()
		return nil, fmt.Errorf("failed to acquire lock (another export in progress?): %w", err)
	}

	return lockFile, nil
}

// releaseFileLock releases the file lock and removes the lock file.
func releaseFileLock(lockFile *os.File) error {
	if lockFile == nil {
		return nil
	}

	lockPath := lockFile.Name()
	_ = unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)
	lockFile.Close()

	return os.Remove(lockPath)
}
