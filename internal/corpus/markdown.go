package corpus

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// frontMatter is the optional YAML block at the top of a corpus file.
// The study-note corpora this tool targets usually have none.
type frontMatter struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

// splitFrontMatter separates an optional leading YAML front-matter
// block from the markdown body. Files without a block are returned
// unchanged.
func splitFrontMatter(content string) (frontMatter, string, error) {
	var fm frontMatter

	if !strings.HasPrefix(content, frontMatterDelim+"\n") {
		return fm, content, nil
	}

	rest := content[len(frontMatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontMatterDelim)
	if end < 0 {
		// Unterminated block: treat the whole file as body.
		return fm, content, nil
	}

	block := rest[:end]
	body := rest[end+len(frontMatterDelim)+1:]
	body = strings.TrimPrefix(body, "\n")

	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return frontMatter{}, "", fmt.Errorf("parsing front matter: %w", err)
	}
	return fm, body, nil
}

// extractTitle returns the text of the first level-one heading in the
// markdown source, or "" when there is none.
func extractTitle(source []byte) string {
	doc := goldmark.New().Parser().Parse(gmtext.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(string(h.Text(source)))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

// ParseMarkdown turns raw file content into title, body and tags.
// Title precedence: front-matter title, first H1, then the given
// fallback (normally the file slug).
func ParseMarkdown(content, fallbackTitle string) (title, body string, tags []string, err error) {
	fm, body, err := splitFrontMatter(content)
	if err != nil {
		return "", "", nil, err
	}

	title = fm.Title
	if title == "" {
		title = extractTitle([]byte(body))
	}
	if title == "" {
		title = fallbackTitle
	}
	return title, body, fm.Tags, nil
}
