// Package search ranks documents against a query using TF-IDF over the
// inverted index.
package search

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/index"
	"github.com/ziadkadry99/docfind/internal/tokenizer"
)

// ErrEmptyQuery is returned when a query normalises to zero tokens.
var ErrEmptyQuery = errors.New("query has no searchable terms")

// DefaultLimit caps results when the caller passes a non-positive limit.
const DefaultLimit = 10

// Result is one ranked hit, ephemeral and never persisted.
type Result struct {
	Document corpus.Document
	Score    float64
}

// Engine answers queries against one immutable store/index snapshot.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	docs *corpus.Store
	idx  *index.Index
}

// New creates an Engine over the given snapshot.
func New(docs *corpus.Store, idx *index.Index) *Engine {
	return &Engine{docs: docs, idx: idx}
}

// Search tokenizes the query, scores candidate documents with
// score(d) = Σ tf(t,d) * ln(N/df(t)), and returns at most limit results
// ordered by descending score, ties broken by ascending document id.
// Documents failing the filter are excluded before any scoring work.
func (e *Engine) Search(ctx context.Context, query string, filter Filter, limit int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	tokens := tokenizer.Tokenize(query)
	if len(tokens) == 0 {
		return nil, ErrEmptyQuery
	}

	// Resolve the filter to an allowed-id set up front so filtered-out
	// documents never reach the scoring loop.
	var allowed map[string]bool
	if !filter.IsZero() {
		allowed = make(map[string]bool)
		for _, doc := range e.docs.All() {
			if Matches(doc, filter) {
				allowed[doc.ID] = true
			}
		}
	}

	n := float64(e.idx.DocCount())
	scores := make(map[string]float64)
	for _, tok := range tokens {
		df := e.idx.DocFreq(tok.Term)
		if df == 0 {
			continue
		}
		idf := math.Log(n / float64(df))
		for _, p := range e.idx.Postings(tok.Term) {
			if allowed != nil && !allowed[p.DocID] {
				continue
			}
			scores[p.DocID] += float64(p.Frequency) * idf
		}
	}

	results := make([]Result, 0, len(scores))
	for docID, score := range scores {
		doc, err := e.docs.Get(docID)
		if err != nil {
			// A posting pointing at a missing document means the index
			// and store are from different generations.
			return nil, err
		}
		results = append(results, Result{Document: doc, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
