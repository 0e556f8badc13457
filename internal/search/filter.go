package search

import (
	"strings"

	"github.com/ziadkadry99/docfind/internal/corpus"
)

// Filter narrows a result set by category and/or tags before scoring.
// A zero Filter matches every document.
type Filter struct {
	// Category must equal the document's category, case-insensitively.
	Category string

	// Tags match when any one of them is present on the document
	// (OR semantics).
	Tags []string
}

// IsZero reports whether the filter imposes no constraint.
func (f Filter) IsZero() bool {
	return f.Category == "" && len(f.Tags) == 0
}

// Matches is a pure predicate: it reports whether the document passes
// the filter.
func Matches(doc corpus.Document, f Filter) bool {
	if f.Category != "" && !strings.EqualFold(doc.Category, f.Category) {
		return false
	}
	if len(f.Tags) > 0 {
		any := false
		for _, tag := range f.Tags {
			if doc.HasTag(tag) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}
