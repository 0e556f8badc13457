// Package vectordb wraps a chromem-go collection for the optional
// semantic search path over corpus documents.
package vectordb

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/embeddings"
)

const collectionName = "documents"

// exportFile is the gob snapshot written under the data dir.
const exportFile = "chromem.gob.gz"

// Result is one semantic hit.
type Result struct {
	ID         string
	Category   string
	Title      string
	Path       string
	Similarity float32
}

// Store holds document embeddings in an in-memory chromem collection
// with gob persistence.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewStore creates an empty Store using the given embedder.
func NewStore(embedder embeddings.Embedder) (*Store, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Store{db: db, collection: col, embedFunc: ef}, nil
}

// AddDocuments embeds and stores the given corpus documents. Existing
// entries with the same id are replaced.
func (s *Store) AddDocuments(ctx context.Context, docs []corpus.Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:      doc.ID,
			Content: doc.Title + "\n\n" + doc.Body,
			Metadata: map[string]string{
				"category": doc.Category,
				"title":    doc.Title,
				"path":     doc.Path,
				"tags":     strings.Join(doc.Tags, ","),
			},
		}
	}

	return s.collection.AddDocuments(ctx, chromDocs, 1)
}

// Search embeds the query and returns the most similar documents,
// optionally restricted to one category.
func (s *Store) Search(ctx context.Context, query string, limit int, category string) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	var where map[string]string
	if category != "" {
		where = map[string]string{"category": category}
	}

	hits, err := s.collection.Query(ctx, query, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{
			ID:         h.ID,
			Category:   h.Metadata["category"],
			Title:      h.Metadata["title"],
			Path:       h.Metadata["path"],
			Similarity: h.Similarity,
		}
	}
	return results, nil
}

// Persist saves the store's data to the given directory.
func (s *Store) Persist(dir string) error {
	return s.db.ExportToFile(filepath.Join(dir, exportFile), true, "")
}

// Load restores the store's data from the given directory.
func (s *Store) Load(dir string) error {
	if err := s.db.ImportFromFile(filepath.Join(dir, exportFile), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

// Count returns the number of embedded documents.
func (s *Store) Count() int {
	return s.collection.Count()
}
