package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/index"
)

func newTestServer(t *testing.T, reindex ReindexFunc) *Server {
	t.Helper()
	store := corpus.NewStore()
	err := store.Ingest([]corpus.RawDocument{
		{
			Category: "02-JavaScript",
			Title:    "Closures",
			Path:     "02-JavaScript/closures.md",
			Body:     "closure closure captured variables",
			Tags:     []string{"javascript"},
		},
		{
			Category: "01-React",
			Title:    "Hooks",
			Path:     "01-React/hooks.md",
			Body:     "hooks closure state",
		},
		{
			Category: "03-CSS",
			Title:    "Flexbox",
			Path:     "03-CSS/flexbox.md",
			Body:     "flexbox layout alignment",
		},
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	idx, err := index.Build(store)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return New(Config{Port: 0}, index.NewHolder(store, idx), nil, reindex)
}

func doRequest(t *testing.T, srv *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doRequest(t, srv, "GET", "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
	if body["documents"] != float64(3) {
		t.Errorf("documents = %v, want 3", body["documents"])
	}
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doRequest(t, srv, "GET", "/api/search?q=closure")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Query   string `json:"query"`
		Total   int    `json:"total"`
		Results []struct {
			ID    string  `json:"id"`
			Title string  `json:"title"`
			Score float64 `json:"score"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Total)
	}
	if resp.Results[0].Title != "Closures" {
		t.Errorf("top result = %q, want Closures", resp.Results[0].Title)
	}
}

func TestSearchEndpointFilters(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doRequest(t, srv, "GET", "/api/search?q=closure&category=01-react")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestSearchEndpointEmptyQuery(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, target := range []string{"/api/search", "/api/search?q=the"} {
		w := doRequest(t, srv, "GET", target)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, w.Code)
		}
	}
}

func TestSearchEndpointBadLimit(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, limit := range []string{"0", "-5", "abc"} {
		w := doRequest(t, srv, "GET", "/api/search?q=closure&limit="+limit)
		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want 400", limit, w.Code)
		}
	}
}

func TestGetDocumentEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	id := corpus.DocumentID("02-JavaScript", "Closures")
	w := doRequest(t, srv, "GET", "/api/documents/"+id)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var doc struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.ID != id {
		t.Errorf("id = %q, want %q", doc.ID, id)
	}
	if doc.Body == "" {
		t.Error("body missing from document response")
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doRequest(t, srv, "GET", "/api/documents/ffffffffffffffff")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	w := doRequest(t, srv, "GET", "/api/categories")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Categories []struct {
			Name      string `json:"name"`
			Documents int    `json:"documents"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(resp.Categories))
	}
	if resp.Categories[0].Name != "01-React" {
		t.Errorf("categories not sorted: %v", resp.Categories)
	}
}

func TestReindexEndpoint(t *testing.T) {
	reindex := func(ctx context.Context) (*corpus.Store, *index.Index, error) {
		store := corpus.NewStore()
		if err := store.Ingest([]corpus.RawDocument{
			{Category: "x", Title: "Fresh", Path: "x/fresh.md", Body: "freshly rebuilt corpus"},
		}); err != nil {
			return nil, nil, err
		}
		idx, err := index.Build(store)
		return store, idx, err
	}
	srv := newTestServer(t, reindex)

	w := doRequest(t, srv, "POST", "/api/reindex")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	// The swapped snapshot is what subsequent requests see.
	w = doRequest(t, srv, "GET", "/healthz")
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["documents"] != float64(1) {
		t.Errorf("documents after reindex = %v, want 1", body["documents"])
	}
}

func TestReindexFailureKeepsSnapshot(t *testing.T) {
	reindex := func(ctx context.Context) (*corpus.Store, *index.Index, error) {
		return nil, nil, fmt.Errorf("corpus unreadable")
	}
	srv := newTestServer(t, reindex)

	w := doRequest(t, srv, "POST", "/api/reindex")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}

	w = doRequest(t, srv, "GET", "/healthz")
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["documents"] != float64(3) {
		t.Errorf("documents = %v, want the original 3", body["documents"])
	}
}
