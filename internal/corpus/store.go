package corpus

import (
	"fmt"
	"sort"

	"github.com/ziadkadry99/docfind/internal/tokenizer"
)

// Store is an in-memory document set. Ingest replaces the whole set
// atomically; there are no partial updates. After ingestion the store
// is read-only and safe for concurrent readers.
type Store struct {
	docs map[string]Document
	ids  []string // sorted, for deterministic iteration
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[string]Document)}
}

// Ingest replaces the store's contents with the given raw documents.
// Each document gets an id derived from its category and title; a
// collision fails the whole ingestion with a DuplicateIDError and
// leaves the previous contents untouched.
func (s *Store) Ingest(raw []RawDocument) error {
	docs := make(map[string]Document, len(raw))
	for _, r := range raw {
		id := DocumentID(r.Category, r.Title)
		if prev, exists := docs[id]; exists {
			return &DuplicateIDError{
				ID:    id,
				Paths: []string{prev.Path, r.Path},
			}
		}
		docs[id] = Document{
			ID:         id,
			Category:   r.Category,
			Title:      r.Title,
			Path:       r.Path,
			Body:       r.Body,
			Tags:       append([]string(nil), r.Tags...),
			TokenCount: len(tokenizer.Tokenize(r.Body)),
		}
	}

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	s.docs = docs
	s.ids = ids
	return nil
}

// Get returns the document with the given id, or ErrNotFound.
func (s *Store) Get(id string) (Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return Document{}, fmt.Errorf("id %q: %w", id, ErrNotFound)
	}
	return doc, nil
}

// All returns every document, ordered by id.
func (s *Store) All() []Document {
	out := make([]Document, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.docs[id])
	}
	return out
}

// Count returns the number of documents in the store.
func (s *Store) Count() int {
	return len(s.docs)
}

// Categories returns the distinct categories present in the store,
// sorted, with per-category document counts.
func (s *Store) Categories() []CategoryCount {
	counts := make(map[string]int)
	for _, doc := range s.docs {
		counts[doc.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Documents: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CategoryCount pairs a category name with its document count.
type CategoryCount struct {
	Name      string `json:"name"`
	Documents int    `json:"documents"`
}
