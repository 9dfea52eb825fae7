/*
Package server exposes the documentation search over HTTP.

Routes:

	GET  /api/search?q=&mode=            grouped results
	POST /api/search/{searchID}/select   record an opened result
	GET  /api/docs                       sidebar
	GET  /api/docs/*                     one document with its headings
	GET  /healthz
	GET  /metrics

The server owns the weighted Index and the optional KeywordIndex. Reload
re-reads the content and swaps both without interrupting running searches.
*/
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/khanglvm/docsearch/internal/analytics"
	"github.com/khanglvm/docsearch/internal/docs"
	"github.com/khanglvm/docsearch/internal/metrics"
	"github.com/khanglvm/docsearch/internal/search"
)

// LoadFunc reads the current documentation set.
type LoadFunc func(ctx context.Context) ([]docs.Document, error)

// Server serves search requests over a reloadable document collection.
type Server struct {
	index   *search.Index
	keyword *search.KeywordIndex
	tracker *analytics.Tracker
	load    LoadFunc
	logger  *zap.Logger

	reloadMu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithKeywordIndex enables mode=keyword.
func WithKeywordIndex(k *search.KeywordIndex) Option {
	return func(s *Server) { s.keyword = k }
}

// WithTracker records searches and selections.
func WithTracker(t *analytics.Tracker) Option {
	return func(s *Server) { s.tracker = t }
}

// WithLoader sets the function Reload uses to re-read content.
func WithLoader(load LoadFunc) Option {
	return func(s *Server) { s.load = load }
}

// New creates a server over index.
func New(index *search.Index, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{index: index, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	metrics.IndexedDocuments.Set(float64(index.Len()))
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Post("/search/{searchID}/select", s.handleSelect)
		r.Get("/docs", s.handleSidebar)
		r.Get("/docs/*", s.handleDocument)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}

// Reload re-reads the content and swaps the indexes. Files that fail to
// parse are skipped and reported; a load that yields nothing leaves the
// current collection in place.
func (s *Server) Reload(ctx context.Context) error {
	if s.load == nil {
		return errors.New("reload: no loader configured")
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	documents, err := s.load(ctx)
	if err != nil && len(documents) == 0 {
		metrics.IndexReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("reload content: %w", err)
	}
	if err != nil {
		s.logger.Warn("Some documents failed to load", zap.Error(err))
	}

	s.index.Replace(documents)
	if s.keyword != nil {
		if kerr := s.keyword.Rebuild(documents); kerr != nil {
			s.logger.Warn("Keyword index rebuild failed, keeping previous", zap.Error(kerr))
		}
	}

	metrics.IndexedDocuments.Set(float64(s.index.Len()))
	metrics.IndexReloadsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Content reloaded", zap.Int("documents", s.index.Len()))
	return nil
}

func (s *Server) track(event analytics.Event) {
	if s.tracker != nil {
		s.tracker.Track(event)
	}
}
