package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/history"
	"github.com/ziadkadry99/docfind/internal/search"
)

type searchResponse struct {
	Query   string             `json:"query"`
	Total   int                `json:"total"`
	Results []searchResultJSON `json:"results"`
}

type searchResultJSON struct {
	ID       string   `json:"id"`
	Score    float64  `json:"score"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Path     string   `json:"path"`
	Tags     []string `json:"tags,omitempty"`
}

type documentJSON struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Path     string   `json:"path"`
	Tags     []string `json:"tags,omitempty"`
	Body     string   `json:"body"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, idx := s.holder.Current()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"documents": idx.DocCount(),
	})
}

// handleSearch serves GET /api/search?q=...&category=...&tag=...&limit=N.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	filter := search.Filter{
		Category: q.Get("category"),
		Tags:     q["tag"],
	}

	docs, idx := s.holder.Current()
	engine := search.New(docs, idx)

	start := time.Now()
	results, err := engine.Search(r.Context(), query, filter, limit)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "query has no searchable terms")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.recordHistory(r, history.Entry{
		Query:       query,
		Category:    filter.Category,
		Tags:        filter.Tags,
		Limit:       limit,
		ResultCount: len(results),
		Duration:    time.Since(start),
	})

	resp := searchResponse{
		Query:   query,
		Total:   len(results),
		Results: make([]searchResultJSON, len(results)),
	}
	for i, res := range results {
		resp.Results[i] = searchResultJSON{
			ID:       res.Document.ID,
			Score:    res.Score,
			Category: res.Document.Category,
			Title:    res.Document.Title,
			Path:     res.Document.Path,
			Tags:     res.Document.Tags,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetDocument serves GET /api/documents/{id}.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	docs, _ := s.holder.Current()
	doc, err := docs.Get(id)
	if err != nil {
		if errors.Is(err, corpus.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("document %s not found", id))
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, documentJSON{
		ID:       doc.ID,
		Category: doc.Category,
		Title:    doc.Title,
		Path:     doc.Path,
		Tags:     doc.Tags,
		Body:     doc.Body,
	})
}

// handleCategories serves GET /api/categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	docs, _ := s.holder.Current()
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": docs.Categories(),
	})
}

// handleReindex rebuilds the index from the corpus on disk and swaps it
// in atomically. In-flight searches keep their old snapshot.
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	docs, idx, err := s.reindex(r.Context())
	if err != nil {
		writeError(w, http.StatusConflict, fmt.Sprintf("reindex failed: %v", err))
		return
	}
	s.holder.Swap(docs, idx)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "reindexed",
		"documents": idx.DocCount(),
		"terms":     idx.TermCount(),
	})
}

// recordHistory appends a search_history row; failures are logged, not
// surfaced.
func (s *Server) recordHistory(r *http.Request, entry history.Entry) {
	if s.history == nil {
		return
	}
	if err := s.history.Record(r.Context(), entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: recording search history: %v\n", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: encoding response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
