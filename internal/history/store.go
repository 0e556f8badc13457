// Package history records executed searches so `docfind stats` can show
// recent activity. Recording failures are reported but never fail the
// search itself.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/docfind/internal/db"
)

// Mode distinguishes keyword from semantic searches.
type Mode string

const (
	ModeKeyword  Mode = "keyword"
	ModeSemantic Mode = "semantic"
)

// Entry is a single recorded search.
type Entry struct {
	ID          string
	Query       string
	Category    string
	Tags        []string
	Limit       int
	ResultCount int
	Duration    time.Duration
	Mode        Mode
	CreatedAt   time.Time
}

// Store provides access to the search history table.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a history entry. If entry.ID is empty a UUID is
// generated. Mode defaults to keyword.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Mode == "" {
		entry.Mode = ModeKeyword
	}

	tags, err := json.Marshal(entry.Tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO search_history (
			id, query, category, tags, result_limit, result_count, duration_ms, mode
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Query,
		entry.Category,
		string(tags),
		entry.Limit,
		entry.ResultCount,
		entry.Duration.Milliseconds(),
		string(entry.Mode),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, category, tags, result_limit, result_count, duration_ms, mode, created_at
		FROM search_history
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var tagsJSON, mode, createdAt string
		var durationMS int64
		if err := rows.Scan(
			&e.ID, &e.Query, &e.Category, &tagsJSON,
			&e.Limit, &e.ResultCount, &durationMS, &mode, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		if t, parseErr := time.Parse(time.DateTime, createdAt); parseErr == nil {
			e.CreatedAt = t
		} else if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			e.CreatedAt = t
		}
		if err := json.Unmarshal([]byte(tagsJSON), &e.Tags); err != nil {
			return nil, fmt.Errorf("unmarshalling tags: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.Mode = Mode(mode)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
