package index

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ziadkadry99/docfind/internal/corpus"
	"github.com/ziadkadry99/docfind/internal/db"
)

// Save replaces the persisted documents and postings with the given
// snapshot in a single transaction, so readers never observe a
// half-written generation.
func Save(ctx context.Context, database *db.DB, store *corpus.Store, idx *Index) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM postings`); err != nil {
		return fmt.Errorf("clearing postings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}

	docStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, category, title, path, body, tags, token_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing document insert: %w", err)
	}
	defer docStmt.Close()

	for _, doc := range store.All() {
		tags, err := json.Marshal(doc.Tags)
		if err != nil {
			return fmt.Errorf("marshalling tags for %s: %w", doc.ID, err)
		}
		if _, err := docStmt.ExecContext(ctx,
			doc.ID, doc.Category, doc.Title, doc.Path, doc.Body, string(tags), doc.TokenCount,
		); err != nil {
			return fmt.Errorf("inserting document %s: %w", doc.ID, err)
		}
	}

	postStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO postings (term, doc_id, frequency, positions)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing posting insert: %w", err)
	}
	defer postStmt.Close()

	for _, entry := range idx.Snapshot() {
		for _, p := range entry.Postings {
			positions, err := json.Marshal(p.Positions)
			if err != nil {
				return fmt.Errorf("marshalling positions: %w", err)
			}
			if _, err := postStmt.ExecContext(ctx,
				entry.Term, p.DocID, p.Frequency, string(positions),
			); err != nil {
				return fmt.Errorf("inserting posting %s/%s: %w", entry.Term, p.DocID, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO index_meta (key, value) VALUES ('built_at', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("recording build time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}

// LoadStore reads the persisted documents back into a fresh Store.
// Returns ErrEmptyCorpus when no documents have been indexed yet.
func LoadStore(ctx context.Context, database *db.DB) (*corpus.Store, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT category, title, path, body, tags FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var raw []corpus.RawDocument
	for rows.Next() {
		var r corpus.RawDocument
		var tagsJSON string
		if err := rows.Scan(&r.Category, &r.Title, &r.Path, &r.Body, &tagsJSON); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsJSON), &r.Tags); err != nil {
			return nil, fmt.Errorf("unmarshalling tags: %w", err)
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyCorpus
	}

	store := corpus.NewStore()
	if err := store.Ingest(raw); err != nil {
		return nil, fmt.Errorf("restoring store: %w", err)
	}
	return store, nil
}

// LoadIndex reads the persisted postings back into an Index. The store
// must come from the same database generation (Save writes both
// atomically).
func LoadIndex(ctx context.Context, database *db.DB, store *corpus.Store) (*Index, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT term, doc_id, frequency, positions FROM postings ORDER BY term, doc_id`)
	if err != nil {
		return nil, fmt.Errorf("querying postings: %w", err)
	}
	defer rows.Close()

	var entries []TermEntry
	var current *TermEntry
	for rows.Next() {
		var term string
		var p Posting
		var positionsJSON string
		if err := rows.Scan(&term, &p.DocID, &p.Frequency, &positionsJSON); err != nil {
			return nil, fmt.Errorf("scanning posting: %w", err)
		}
		if err := json.Unmarshal([]byte(positionsJSON), &p.Positions); err != nil {
			return nil, fmt.Errorf("unmarshalling positions: %w", err)
		}
		if current == nil || current.Term != term {
			entries = append(entries, TermEntry{Term: term})
			current = &entries[len(entries)-1]
		}
		current.Postings = append(current.Postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating postings: %w", err)
	}
	if len(entries) == 0 && store.Count() == 0 {
		return nil, ErrEmptyCorpus
	}

	docLengths := make(map[string]int, store.Count())
	for _, doc := range store.All() {
		docLengths[doc.ID] = doc.TokenCount
	}
	return Restore(entries, docLengths), nil
}
