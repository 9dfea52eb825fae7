package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/khanglvm/docsearch/internal/analytics"
	"github.com/khanglvm/docsearch/internal/docs"
	logpkg "github.com/khanglvm/docsearch/internal/logger"
	"github.com/khanglvm/docsearch/internal/metrics"
	"github.com/khanglvm/docsearch/internal/search"
)

const (
	modeWeighted = "weighted"
	modeKeyword  = "keyword"

	defaultKeywordLimit = 10
	maxLimit            = 100
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"documents": s.index.Len(),
	})
}

// handleSearch handles GET /api/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := strings.TrimSpace(params.Get("q"))
	mode := params.Get("mode")
	if mode == "" {
		mode = modeWeighted
	}

	if mode != modeWeighted && mode != modeKeyword {
		writeError(w, http.StatusBadRequest, "bad_request", "mode must be weighted or keyword")
		return
	}
	if mode == modeKeyword && s.keyword == nil {
		writeError(w, http.StatusNotImplemented, "not_implemented", "keyword search is not enabled")
		return
	}

	limit, err := parseLimit(params.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if search.ParseQuery(q).Empty() {
		writeJSON(w, http.StatusOK, emptySearchResponse{Groups: []groupView{}})
		return
	}

	start := time.Now()
	var groups []groupView
	switch mode {
	case modeKeyword:
		if limit == 0 {
			limit = defaultKeywordLimit
		}
		hits, err := s.keyword.Search(q, limit)
		if err != nil {
			logpkg.FromContext(r.Context()).Error("keyword search failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		groups = keywordGroups(hits, q, s.index.Options().ContextLength)
	default:
		groups = weightedGroups(s.index.SearchLimit(q, limit))
	}

	total := 0
	for _, g := range groups {
		total += len(g.Results)
	}
	metrics.ObserveSearch(mode, time.Since(start), total)

	searchID := analytics.NewSearchID()
	s.track(analytics.NewSearchEvent(searchID, q, mode, total))

	if groups == nil {
		groups = []groupView{}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		SearchID: searchID,
		Query:    q,
		Mode:     mode,
		Total:    total,
		Groups:   groups,
	})
}

var errInvalidLimit = errors.New("limit must be between 1 and 100")

// parseLimit reads the optional limit parameter. Empty means no override.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > maxLimit {
		return 0, errInvalidLimit
	}
	return n, nil
}

type selectRequest struct {
	Slug     string `json:"slug"`
	Position *int   `json:"position"`
}

// handleSelect handles POST /api/search/{searchID}/select.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	searchID := chi.URLParam(r, "searchID")

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.Slug == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "slug is required")
		return
	}
	if req.Position == nil || *req.Position < 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "position must be a non-negative integer")
		return
	}

	if _, err := s.findPublished(req.Slug); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.track(analytics.NewSelectionEvent(searchID, req.Slug, *req.Position))
	metrics.ResultSelectionsTotal.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// handleSidebar handles GET /api/docs.
func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	sections := docs.Sidebar(s.index.Documents())

	out := make([]sectionView, 0, len(sections))
	for _, section := range sections {
		view := sectionView{Category: section.Category, Documents: make([]docSummary, 0, len(section.Documents))}
		for _, doc := range section.Documents {
			view.Documents = append(view.Documents, docSummary{
				Slug:        doc.Slug,
				Title:       doc.Title,
				Description: doc.Description,
				Order:       doc.Order,
			})
		}
		out = append(out, view)
	}

	writeJSON(w, http.StatusOK, sidebarResponse{Sections: out})
}

// handleDocument handles GET /api/docs/*.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(chi.URLParam(r, "*"), "/")

	doc, err := s.findPublished(slug)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// findPublished hides drafts behind ErrNotFound.
func (s *Server) findPublished(slug string) (docs.Document, error) {
	doc, err := docs.Find(s.index.Documents(), slug)
	if err != nil {
		return docs.Document{}, err
	}
	if !doc.Published {
		return docs.Document{}, docs.ErrNotFound
	}
	return doc, nil
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, docs.ErrNotFound) {
		writeError(w, http.StatusNotFound, "document_not_found", "document not found")
		return
	}
	logpkg.FromContext(r.Context()).Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
