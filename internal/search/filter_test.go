package search

import (
	"testing"

	"github.com/ziadkadry99/docfind/internal/corpus"
)

func TestFilterIsZero(t *testing.T) {
	if !(Filter{}).IsZero() {
		t.Error("empty filter should be zero")
	}
	if (Filter{Category: "01-React"}).IsZero() {
		t.Error("category filter should not be zero")
	}
	if (Filter{Tags: []string{"react"}}).IsZero() {
		t.Error("tag filter should not be zero")
	}
}

func TestMatches(t *testing.T) {
	doc := corpus.Document{
		Category: "01-React",
		Tags:     []string{"react", "hooks"},
	}
	untagged := corpus.Document{Category: "07-Bundlers"}

	tests := []struct {
		name   string
		doc    corpus.Document
		filter Filter
		want   bool
	}{
		{"zero filter matches everything", untagged, Filter{}, true},
		{"category exact", doc, Filter{Category: "01-React"}, true},
		{"category case-insensitive", doc, Filter{Category: "01-REACT"}, true},
		{"category mismatch", doc, Filter{Category: "07-Bundlers"}, false},
		{"single tag", doc, Filter{Tags: []string{"hooks"}}, true},
		{"tag case-insensitive", doc, Filter{Tags: []string{"React"}}, true},
		{"any tag suffices", doc, Filter{Tags: []string{"vue", "hooks"}}, true},
		{"no tag matches", doc, Filter{Tags: []string{"vue", "angular"}}, false},
		{"tag filter on untagged doc", untagged, Filter{Tags: []string{"react"}}, false},
		{"category and tags both required", doc, Filter{Category: "01-React", Tags: []string{"hooks"}}, true},
		{"category passes but tags fail", doc, Filter{Category: "01-React", Tags: []string{"vue"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.doc, tt.filter); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}
