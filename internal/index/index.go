package index

import (
	"errors"
	"sort"

	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/tokenizer"
)

// ErrEmptyCorpus is returned when an index is requested over zero
// documents, including when a query command runs before `docfind index`.
var ErrEmptyCorpus = errors.New("corpus is empty")

// Index is an immutable inverted index over a document store
// generation. Readers may share it freely; it is never mutated after
// Build or Restore returns.
type Index struct {
	postings    map[string]map[string]*Posting
	docLengths  map[string]int
	docCount    int
	totalTokens int64
}

// Build tokenizes every document body in one pass and accumulates term
// frequencies and positions. It fails with ErrEmptyCorpus when the
// store holds no documents.
func Build(store *corpus.Store) (*Index, error) {
	return BuildWithProgress(store, nil)
}

// BuildWithProgress is Build with a per-document callback for progress
// reporting. onDoc may be nil.
func BuildWithProgress(store *corpus.Store, onDoc func(done int, doc corpus.Document)) (*Index, error) {
	if store.Count() == 0 {
		return nil, ErrEmptyCorpus
	}

	idx := &Index{
		postings:   make(map[string]map[string]*Posting),
		docLengths: make(map[string]int),
	}

	for _, doc := range store.All() {
		tokens := tokenizer.Tokenize(doc.Body)

		for _, tok := range tokens {
			byDoc, ok := idx.postings[tok.Term]
			if !ok {
				byDoc = make(map[string]*Posting)
				idx.postings[tok.Term] = byDoc
			}
			p, ok := byDoc[doc.ID]
			if !ok {
				p = &Posting{DocID: doc.ID, Positions: make([]int, 0, 4)}
				byDoc[doc.ID] = p
			}
			p.Frequency++
			p.Positions = append(p.Positions, tok.Position)
		}

		idx.docLengths[doc.ID] = len(tokens)
		idx.totalTokens += int64(len(tokens))
		idx.docCount++

		if onDoc != nil {
			onDoc(idx.docCount, doc)
		}
	}

	return idx, nil
}

// Postings returns the postings for a term, ordered by DocID. The
// result is a copy; callers may keep it.
func (x *Index) Postings(term string) PostingList {
	byDoc, ok := x.postings[term]
	if !ok {
		return nil
	}
	out := make(PostingList, 0, len(byDoc))
	for _, p := range byDoc {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocID < out[j].DocID })
	return out
}

// DocFreq returns the number of documents containing the term.
func (x *Index) DocFreq(term string) int {
	return len(x.postings[term])
}

// DocCount returns the number of documents the index was built from.
func (x *Index) DocCount() int {
	return x.docCount
}

// DocLength returns the token count of the given document's body.
func (x *Index) DocLength(docID string) int {
	return x.docLengths[docID]
}

// AvgDocLength returns the mean body token count across the corpus.
func (x *Index) AvgDocLength() float64 {
	if x.docCount == 0 {
		return 0
	}
	return float64(x.totalTokens) / float64(x.docCount)
}

// TermCount returns the number of distinct terms in the index.
func (x *Index) TermCount() int {
	return len(x.postings)
}

// Snapshot returns every term entry ordered by term, postings ordered
// by DocID. Used for persistence and tests.
func (x *Index) Snapshot() []TermEntry {
	entries := make([]TermEntry, 0, len(x.postings))
	for term := range x.postings {
		entries = append(entries, TermEntry{Term: term, Postings: x.Postings(term)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Term < entries[j].Term })
	return entries
}

// Restore rebuilds an Index from persisted term entries and document
// lengths. Used when loading a previously saved index from SQLite.
func Restore(entries []TermEntry, docLengths map[string]int) *Index {
	idx := &Index{
		postings:   make(map[string]map[string]*Posting, len(entries)),
		docLengths: make(map[string]int, len(docLengths)),
	}
	for _, e := range entries {
		byDoc := make(map[string]*Posting, len(e.Postings))
		for i := range e.Postings {
			p := e.Postings[i]
			byDoc[p.DocID] = &p
		}
		idx.postings[e.Term] = byDoc
	}
	for id, n := range docLengths {
		idx.docLengths[id] = n
		idx.totalTokens += int64(n)
	}
	idx.docCount = len(docLengths)
	return idx
}
