package index

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/db"
)

func setupDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSaveLoadRoundTrip(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	store := newTestStore(t)
	idx, err := Build(store)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := Save(ctx, database, store, idx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loadedStore, err := LoadStore(ctx, database)
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	if loadedStore.Count() != store.Count() {
		t.Errorf("loaded Count = %d, want %d", loadedStore.Count(), store.Count())
	}
	for _, doc := range store.All() {
		got, err := loadedStore.Get(doc.ID)
		if err != nil {
			t.Fatalf("loaded store missing %s: %v", doc.ID, err)
		}
		if !reflect.DeepEqual(got, doc) {
			t.Errorf("loaded doc %s = %+v, want %+v", doc.ID, got, doc)
		}
	}

	loadedIdx, err := LoadIndex(ctx, database, loadedStore)
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if !reflect.DeepEqual(loadedIdx.Snapshot(), idx.Snapshot()) {
		t.Error("loaded index postings differ from saved index")
	}
	if loadedIdx.DocCount() != idx.DocCount() {
		t.Errorf("loaded DocCount = %d, want %d", loadedIdx.DocCount(), idx.DocCount())
	}
}

func TestSaveReplacesPreviousGeneration(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	store := newTestStore(t)
	idx, err := Build(store)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := Save(ctx, database, store, idx); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	// Second generation holds a single different document.
	store2 := corpus.NewStore()
	if err := store2.Ingest([]corpus.RawDocument{{
		Category: "errors",
		Title:    "Wrapping",
		Path:     "errors/wrapping.md",
		Body:     "wrap errors preserve sentinel values",
	}}); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	idx2, err := Build(store2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := Save(ctx, database, store2, idx2); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	loaded, err := LoadStore(ctx, database)
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	if loaded.Count() != 1 {
		t.Errorf("Count after replacement = %d, want 1", loaded.Count())
	}
	loadedIdx, err := LoadIndex(ctx, database, loaded)
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if df := loadedIdx.DocFreq("goroutine"); df != 0 {
		t.Errorf("old generation term survived replacement: df = %d", df)
	}
}

func TestLoadStoreEmpty(t *testing.T) {
	database := setupDB(t)

	_, err := LoadStore(context.Background(), database)
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("LoadStore on empty db: err = %v, want ErrEmptyCorpus", err)
	}
}
