// Package site renders the corpus into a static HTML site with a
// client-side search index.
package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/docfind/internal/corpus"
)

// Generator converts an ingested corpus into a static HTML site.
type Generator struct {
	Store     *corpus.Store
	OutputDir string
	SiteName  string
}

// NewGenerator creates a Generator over the given store.
func NewGenerator(store *corpus.Store, outputDir, siteName string) *Generator {
	return &Generator{Store: store, OutputDir: outputDir, SiteName: siteName}
}

// SearchEntry is one row of the client-side search index.
type SearchEntry struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Excerpt  string `json:"excerpt"`
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title    string
	SiteName string
	Content  template.HTML
	NavHTML  template.HTML
	BasePath string
}

// Generate builds the full static site. Returns the number of pages written.
func (g *Generator) Generate() (int, error) {
	docs := g.Store.All()
	if len(docs) == 0 {
		return 0, fmt.Errorf("no documents to render")
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return 0, fmt.Errorf("parsing page template: %w", err)
	}

	nav := buildNav(docs)

	var searchEntries []SearchEntry
	for _, doc := range docs {
		rel := pageURL(doc)

		if err := g.renderPage(md, tmpl, nav, doc, rel); err != nil {
			return 0, fmt.Errorf("rendering %s: %w", doc.Path, err)
		}

		searchEntries = append(searchEntries, SearchEntry{
			ID:       doc.ID,
			Category: doc.Category,
			Title:    doc.Title,
			URL:      rel,
			Excerpt:  excerpt(doc.Body, 300),
		})
	}

	if err := g.writeIndexPage(tmpl, nav, docs); err != nil {
		return 0, fmt.Errorf("writing index page: %w", err)
	}
	if err := g.writeSearchIndex(searchEntries); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}

	return len(docs) + 1, nil
}

// renderPage converts a single document to an HTML page.
func (g *Generator) renderPage(md goldmark.Markdown, tmpl *template.Template, nav template.HTML, doc corpus.Document, rel string) error {
	var htmlBuf bytes.Buffer
	if err := md.Convert([]byte(doc.Body), &htmlBuf); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	outPath := filepath.Join(g.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	var page bytes.Buffer
	if err := tmpl.Execute(&page, pageData{
		Title:    doc.Title,
		SiteName: g.SiteName,
		Content:  template.HTML(htmlBuf.String()),
		NavHTML:  nav,
		BasePath: basePathFor(rel),
	}); err != nil {
		return err
	}

	return os.WriteFile(outPath, page.Bytes(), 0o644)
}

// writeIndexPage renders the landing page listing every category.
func (g *Generator) writeIndexPage(tmpl *template.Template, nav template.HTML, docs []corpus.Document) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", template.HTMLEscapeString(g.SiteName)))
	sb.WriteString(fmt.Sprintf("<p>%d documents.</p>\n", len(docs)))
	sb.WriteString(string(nav))

	var page bytes.Buffer
	if err := tmpl.Execute(&page, pageData{
		Title:    g.SiteName,
		SiteName: g.SiteName,
		Content:  template.HTML(sb.String()),
		NavHTML:  nav,
		BasePath: ".",
	}); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.OutputDir, "index.html"), page.Bytes(), 0o644)
}

// writeSearchIndex writes the client search index as JSON.
func (g *Generator) writeSearchIndex(entries []SearchEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(g.OutputDir, "search-index.json"), data, 0o644)
}

// buildNav renders a category-grouped link list used on every page.
func buildNav(docs []corpus.Document) template.HTML {
	byCategory := make(map[string][]corpus.Document)
	for _, doc := range docs {
		byCategory[doc.Category] = append(byCategory[doc.Category], doc)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString(`<nav class="doc-nav">`)
	for _, c := range categories {
		name := c
		if name == "" {
			name = "(uncategorized)"
		}
		sb.WriteString(fmt.Sprintf("<h3>%s</h3><ul>", template.HTMLEscapeString(name)))
		items := byCategory[c]
		sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
		for _, doc := range items {
			sb.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a></li>`,
				pageURL(doc), template.HTMLEscapeString(doc.Title)))
		}
		sb.WriteString("</ul>")
	}
	sb.WriteString("</nav>")
	return template.HTML(sb.String())
}

// pageURL maps a document to its output path within the site.
func pageURL(doc corpus.Document) string {
	rel := strings.TrimSuffix(doc.Path, filepath.Ext(doc.Path)) + ".html"
	return filepath.ToSlash(rel)
}

// basePathFor returns the relative prefix from a page back to the site root.
func basePathFor(rel string) string {
	depth := strings.Count(rel, "/")
	if depth == 0 {
		return "."
	}
	return strings.TrimSuffix(strings.Repeat("../", depth), "/")
}

// excerpt returns the first max bytes of text with markdown headings
// and blank lines stripped.
func excerpt(body string, max int) string {
	var lines []string
	for _, l := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, trimmed)
	}
	out := strings.Join(lines, " ")
	if len(out) > max {
		out = out[:max]
	}
	return out
}
