package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ziadkadry99/docfind/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestRecordAndRecent(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entry := Entry{
		ID:          "h-1",
		Query:       "closure scope",
		Category:    "02-JavaScript",
		Tags:        []string{"javascript"},
		Limit:       5,
		ResultCount: 3,
		Duration:    42 * time.Millisecond,
		Mode:        ModeKeyword,
	}
	if err := store.Record(ctx, entry); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	got := entries[0]
	if got.ID != "h-1" {
		t.Errorf("ID = %q, want h-1", got.ID)
	}
	if got.Query != "closure scope" {
		t.Errorf("Query = %q", got.Query)
	}
	if got.Category != "02-JavaScript" {
		t.Errorf("Category = %q", got.Category)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "javascript" {
		t.Errorf("Tags = %v, want [javascript]", got.Tags)
	}
	if got.Limit != 5 || got.ResultCount != 3 {
		t.Errorf("Limit/ResultCount = %d/%d, want 5/3", got.Limit, got.ResultCount)
	}
	if got.Duration != 42*time.Millisecond {
		t.Errorf("Duration = %v, want 42ms", got.Duration)
	}
	if got.Mode != ModeKeyword {
		t.Errorf("Mode = %q, want keyword", got.Mode)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}
}

func TestRecordDefaults(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, Entry{Query: "hooks"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].ID == "" {
		t.Error("expected generated id")
	}
	if entries[0].Mode != ModeKeyword {
		t.Errorf("Mode = %q, want keyword default", entries[0].Mode)
	}
}

func TestRecentLimit(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.Record(ctx, Entry{Query: fmt.Sprintf("query-%d", i)}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}
}

func TestRecordSemanticMode(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, Entry{Query: "hooks", Mode: ModeSemantic}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	entries, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if entries[0].Mode != ModeSemantic {
		t.Errorf("Mode = %q, want semantic", entries[0].Mode)
	}
}
