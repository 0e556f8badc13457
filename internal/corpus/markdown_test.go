package corpus

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseMarkdown(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		fallback  string
		wantTitle string
		wantTags  []string
		wantErr   bool
	}{
		{
			name:      "title from first h1",
			content:   "# React Hooks Basics\n\nHooks let components hold state.",
			fallback:  "hooks-basics",
			wantTitle: "React Hooks Basics",
		},
		{
			name:      "fallback slug when no heading",
			content:   "**How do you stream output?**\n\nRead the body with a reader.",
			fallback:  "streaming-responses",
			wantTitle: "streaming-responses",
		},
		{
			name:      "front matter title wins over h1",
			content:   "---\ntitle: Override\n---\n\n# Ignored Heading\n\nbody",
			fallback:  "slug",
			wantTitle: "Override",
		},
		{
			name:      "front matter tags",
			content:   "---\ntags: [react, hooks]\n---\n\n# With Tags\n\nbody",
			fallback:  "slug",
			wantTitle: "With Tags",
			wantTags:  []string{"react", "hooks"},
		},
		{
			name:      "later h1 still found",
			content:   "Some intro text.\n\n# Actual Title\n\nmore",
			fallback:  "slug",
			wantTitle: "Actual Title",
		},
		{
			name:      "h2 does not count as title",
			content:   "## Section\n\nbody",
			fallback:  "notes",
			wantTitle: "notes",
		},
		{
			name:      "unterminated front matter treated as body",
			content:   "---\ntags: [react]\n\n# Heading After Broken Block",
			fallback:  "slug",
			wantTitle: "Heading After Broken Block",
		},
		{
			name:     "invalid front matter yaml",
			content:  "---\ntags: [unclosed\n---\nbody",
			fallback: "slug",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body, tags, err := ParseMarkdown(tt.content, tt.fallback)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMarkdown: %v", err)
			}
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if tt.wantTags != nil && !reflect.DeepEqual(tags, tt.wantTags) {
				t.Errorf("tags = %v, want %v", tags, tt.wantTags)
			}
			if body == "" {
				t.Error("body is empty")
			}
		})
	}
}

func TestParseMarkdownStripsFrontMatterFromBody(t *testing.T) {
	content := "---\ntags: [react]\n---\n\n# Title\n\nThe body text."
	_, body, _, err := ParseMarkdown(content, "slug")
	if err != nil {
		t.Fatalf("ParseMarkdown: %v", err)
	}
	if strings.Contains(body, "tags:") {
		t.Errorf("front matter leaked into body: %q", body)
	}
	if !strings.Contains(body, "The body text.") {
		t.Errorf("body content missing: %q", body)
	}
}
