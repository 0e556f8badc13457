package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/docfind/internal/corpus"
)

func newTestStore(t *testing.T) *corpus.Store {
	t.Helper()
	store := corpus.NewStore()
	err := store.Ingest([]corpus.RawDocument{
		{
			Category: "01-React",
			Title:    "Hooks",
			Path:     "01-React/hooks.md",
			Body:     "# Hooks\n\nHooks let components hold **state**.",
			Tags:     []string{"react"},
		},
		{
			Category: "07-Bundlers",
			Title:    "Vite",
			Path:     "07-Bundlers/vite.md",
			Body:     "# Vite\n\nNative ES modules in dev.",
		},
	})
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	return store
}

func TestGenerate(t *testing.T) {
	outDir := t.TempDir()
	gen := NewGenerator(newTestStore(t), outDir, "Interview Notes")

	pages, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if pages != 3 {
		t.Errorf("pages = %d, want 3 (two documents plus index)", pages)
	}

	for _, name := range []string{
		"index.html",
		"style.css",
		"search-index.json",
		filepath.Join("01-React", "hooks.html"),
		filepath.Join("07-Bundlers", "vite.html"),
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}

	page, err := os.ReadFile(filepath.Join(outDir, "01-React", "hooks.html"))
	if err != nil {
		t.Fatalf("reading page: %v", err)
	}
	html := string(page)
	if !strings.Contains(html, "<strong>state</strong>") {
		t.Error("markdown body not rendered to HTML")
	}
	if !strings.Contains(html, "Interview Notes") {
		t.Error("site name missing from page")
	}
	if !strings.Contains(html, "doc-nav") {
		t.Error("navigation missing from page")
	}
}

func TestGenerateSearchIndex(t *testing.T) {
	outDir := t.TempDir()
	gen := NewGenerator(newTestStore(t), outDir, "Interview Notes")
	if _, err := gen.Generate(); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "search-index.json"))
	if err != nil {
		t.Fatalf("reading search index: %v", err)
	}

	var entries []SearchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.URL, ".html") {
			t.Errorf("entry URL %q does not point at a page", e.URL)
		}
		if e.Excerpt == "" {
			t.Errorf("entry %s has empty excerpt", e.ID)
		}
		if strings.Contains(e.Excerpt, "#") {
			t.Errorf("headings leaked into excerpt: %q", e.Excerpt)
		}
	}
}

func TestGenerateEmptyStore(t *testing.T) {
	gen := NewGenerator(corpus.NewStore(), t.TempDir(), "Empty")
	if _, err := gen.Generate(); err == nil {
		t.Error("expected error for empty store")
	}
}

func TestExcerpt(t *testing.T) {
	body := "# Heading\n\nFirst paragraph line.\n\nSecond line."
	got := excerpt(body, 300)
	if got != "First paragraph line. Second line." {
		t.Errorf("excerpt = %q", got)
	}

	long := strings.Repeat("word ", 100)
	if len(excerpt(long, 40)) > 40 {
		t.Error("excerpt exceeds max length")
	}
}
