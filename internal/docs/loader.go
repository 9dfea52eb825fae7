package docs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"
)

// LoadError reports a source file that could not be turned into a Document.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// contentExtensions lists the file types treated as documentation pages.
var contentExtensions = map[string]bool{
	".mdx": true,
	".md":  true,
}

// Load reads every documentation page under dir.
//
// Malformed files are skipped; their *LoadError values are joined into the
// returned error alongside the documents that did load. Callers that can
// live with a partial set should log the error and keep the documents.
func Load(ctx context.Context, dir string, logger *zap.Logger) ([]Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path is not a directory: %s", dir)
	}
	return LoadFS(ctx, os.DirFS(dir), logger)
}

// LoadFS reads every documentation page in fsys, in lexical path order.
func LoadFS(ctx context.Context, fsys fs.FS, logger *zap.Logger) ([]Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var documents []Document
	var loadErrs []error
	seen := make(map[string]string)

	walkErr := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !contentExtensions[path.Ext(p)] {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			loadErrs = append(loadErrs, &LoadError{Path: p, Err: err})
			return nil
		}

		doc, err := parseDocument(p, data)
		if err != nil {
			logger.Warn("Skipping malformed document", zap.String("path", p), zap.Error(err))
			loadErrs = append(loadErrs, &LoadError{Path: p, Err: err})
			return nil
		}

		if prev, dup := seen[doc.Slug]; dup {
			err := fmt.Errorf("duplicate slug %q (already defined by %s)", doc.Slug, prev)
			loadErrs = append(loadErrs, &LoadError{Path: p, Err: err})
			return nil
		}
		seen[doc.Slug] = p

		documents = append(documents, doc)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk content: %w", walkErr)
	}

	logger.Debug("Loaded documents",
		zap.Int("count", len(documents)),
		zap.Int("errors", len(loadErrs)),
	)

	return documents, errors.Join(loadErrs...)
}

// parseDocument builds a Document from a single source file.
func parseDocument(p string, data []byte) (Document, error) {
	header, body, err := splitFrontmatter(data)
	if err != nil {
		return Document{}, err
	}

	fm, err := parseFrontmatter(header)
	if err != nil {
		return Document{}, err
	}

	published := true
	if fm.Published != nil {
		published = *fm.Published
	}

	text := string(body)
	return Document{
		Slug:        slugFromPath(p),
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Category:    strings.TrimSpace(fm.Category),
		Plaintext:   Plaintext(text),
		Published:   published,
		Order:       fm.Order,
		Headings:    extractHeadings(text),
		Path:        p,
	}, nil
}

// slugFromPath turns "guides/setup.mdx" into "guides/setup".
func slugFromPath(p string) string {
	return strings.TrimSuffix(path.Clean(p), path.Ext(p))
}
