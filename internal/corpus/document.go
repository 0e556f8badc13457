// Package corpus holds the document store and the Markdown loader that
// feeds it. Documents are immutable once ingested; the store is only
// ever replaced wholesale by a fresh ingestion.
package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Document is a single Q&A article from the corpus.
type Document struct {
	// ID is a stable identifier derived from category and title.
	ID string

	// Category is the top-level folder the source file lives in.
	Category string

	// Title is the first level-one heading of the file, or the file
	// slug when no heading exists.
	Title string

	// Path is the source file path relative to the corpus root.
	Path string

	// Body is the full raw text of the file, front matter excluded.
	Body string

	// Tags come from optional YAML front matter. Most corpus files
	// carry none.
	Tags []string

	// TokenCount is the number of tokens the body produced at
	// ingestion time, kept for index statistics.
	TokenCount int
}

// RawDocument is the loader's output before ids are assigned.
type RawDocument struct {
	Category string
	Title    string
	Path     string
	Body     string
	Tags     []string
}

// DocumentID derives the stable id for a category/title pair: the first
// 16 hex characters of a SHA-256 digest. The NUL separator keeps
// ("ab","c") and ("a","bc") distinct.
func DocumentID(category, title string) string {
	h := sha256.Sum256([]byte(category + "\x00" + title))
	return hex.EncodeToString(h[:])[:16]
}

// HasTag reports whether the document carries the given tag
// (case-insensitive).
func (d Document) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
