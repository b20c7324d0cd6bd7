// Package store keeps a best-effort durable record of completed
// pipeline runs in an embedded SQLite database. Store unavailability
// never fails a request; callers log the error and move on.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"veracity/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS checks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	cache_key TEXT NOT NULL,
	claim_text TEXT NOT NULL,
	status TEXT NOT NULL,
	explanation TEXT NOT NULL,
	response TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checks_cache_key ON checks (cache_key);
`

// Record summarizes one persisted run
type Record struct {
	ID        int64
	CacheKey  string
	ClaimText string
	Status    model.Status
	CreatedAt time.Time
}

// Writer persists completed pipeline runs. The caller should call
// Close when the writer is no longer needed.
type Writer struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at the given path and
// ensures the schema exists.
func Open(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Writer{db: db}, nil
}

// Close closes the underlying database connection
func (w *Writer) Close() error {
	return w.db.Close()
}

// Save inserts the completed run. The full response is stored as JSON
// alongside the indexed columns.
func (w *Writer) Save(ctx context.Context, cacheKey string, resp model.CheckResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	_, err = w.db.ExecContext(ctx, `
		INSERT INTO checks (cache_key, claim_text, status, explanation, response, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		cacheKey,
		resp.ClaimText,
		string(resp.Status),
		resp.Explanation,
		string(payload),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert check: %w", err)
	}
	return nil
}

// Recent returns the most recent persisted runs, newest first
func (w *Writer) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := w.db.QueryContext(ctx, `
		SELECT id, cache_key, claim_text, status, created_at
		FROM checks
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query checks: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var status string
		if err := rows.Scan(&rec.ID, &rec.CacheKey, &rec.ClaimText, &status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		rec.Status = model.Status(status)
		records = append(records, rec)
	}
	return records, rows.Err()
}
