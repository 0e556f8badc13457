package index

import (
	"sync"

	"github.com/ziadkadry99/docfind/internal/corpus"
)

// Holder guards the current store/index pair for concurrent readers.
// A rebuild produces a fresh pair and swaps it in atomically; queries
// in flight keep reading the snapshot they started with.
type Holder struct {
	mu   sync.RWMutex
	docs *corpus.Store
	idx  *Index
}

// NewHolder creates a Holder with an initial snapshot.
func NewHolder(docs *corpus.Store, idx *Index) *Holder {
	return &Holder{docs: docs, idx: idx}
}

// Current returns the store/index pair readers should use.
func (h *Holder) Current() (*corpus.Store, *Index) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.docs, h.idx
}

// Swap installs a freshly built snapshot.
func (h *Holder) Swap(docs *corpus.Store, idx *Index) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.docs = docs
	h.idx = idx
}
